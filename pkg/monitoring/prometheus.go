package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus 指标定义
var (
	// HTTP 请求相关指标
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP请求耗时分布",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// 报表计算相关指标
	reportComputations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_computations_total",
			Help: "报表计算总数",
		},
		[]string{"report", "status"},
	)

	reportDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "report_computation_duration_seconds",
			Help:    "报表计算耗时分布",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 2.5, 5.0},
		},
		[]string{"report"},
	)

	reportCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_cache_hits_total",
			Help: "报表缓存命中总数",
		},
		[]string{"report", "result"},
	)

	snapshotRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "snapshot_rows_current",
			Help: "当前快照各表行数",
		},
		[]string{"table"},
	)

	ingestFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ingest_failures_total",
			Help: "摄入校验失败总数",
		},
	)
)

// PrometheusMiddleware Gin中间件，用于收集HTTP指标
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		// 处理请求
		c.Next()

		// 记录指标
		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			statusCode,
		).Inc()

		httpRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

// 业务指标记录函数

func RecordReportComputation(report, status string, duration time.Duration) {
	reportComputations.WithLabelValues(report, status).Inc()
	reportDuration.WithLabelValues(report).Observe(duration.Seconds())
}

func RecordReportCache(report, result string) {
	reportCacheHits.WithLabelValues(report, result).Inc()
}

func UpdateSnapshotRows(customers, orders, orderItems int) {
	snapshotRows.WithLabelValues("customers").Set(float64(customers))
	snapshotRows.WithLabelValues("orders").Set(float64(orders))
	snapshotRows.WithLabelValues("order_items").Set(float64(orderItems))
}

func RecordIngestFailure() {
	ingestFailures.Inc()
}
