package admin

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"ecom-insight/inout"
	"ecom-insight/pkg/config"
	"ecom-insight/pkg/monitoring"
	"ecom-insight/pkg/response"
	"ecom-insight/services/analytics_service"
	"ecom-insight/services/ingest_service"
	"ecom-insight/services/report_service"
	"ecom-insight/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// bindErrMsg 把参数校验错误转成可读消息
func bindErrMsg(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s校验失败(%s)", fe.Field(), fe.Tag()))
		}
		return strings.Join(fields, "; ")
	}
	return err.Error()
}

// 分析引擎的运行态：快照只在摄入或刷新时整体替换，报表期间只读
var (
	engineMu sync.RWMutex
	snapshot *ingest_service.Snapshot
	engine   *analytics_service.AnalyticsService

	dataSource ingest_service.Source
	runner     *report_service.Runner
	ossUtil    *utils.OSSUtil
)

// InitAnalytics 初始化分析引擎：加载快照并完成聚合
func InitAnalytics(src ingest_service.Source, r *report_service.Runner, oss *utils.OSSUtil) error {
	dataSource = src
	runner = r
	ossUtil = oss
	return reloadSnapshot()
}

// reloadSnapshot 从数据来源重新加载快照，完整性校验失败则保留旧快照
func reloadSnapshot() error {
	snap, err := ingest_service.Load(dataSource)
	if err != nil {
		monitoring.RecordIngestFailure()
		return err
	}

	params := analytics_service.ParamsFromConfig(config.GetConfig().Analytics, time.Now().UTC())
	svc := analytics_service.NewAnalyticsService(snap, params)

	engineMu.Lock()
	snapshot = snap
	engine = svc
	engineMu.Unlock()

	monitoring.UpdateSnapshotRows(len(snap.Customers), len(snap.Orders), len(snap.OrderItems))
	log.Printf("快照已加载: customers=%d orders=%d order_items=%d fingerprint=%s",
		len(snap.Customers), len(snap.Orders), len(snap.OrderItems), snap.Fingerprint())
	return nil
}

// ListReports 报表名称列表
func ListReports(c *gin.Context) {
	engineMu.RLock()
	svc := engine
	engineMu.RUnlock()

	if svc == nil {
		Resp.Err(c, response.INTERNAL_ERROR, "分析引擎未初始化")
		return
	}

	names := make([]string, 0)
	for _, r := range svc.Reports() {
		names = append(names, r.Name)
	}
	Resp.Succ(c, gin.H{"reports": names})
}

// GetReport 按名称计算单个报表
func GetReport(c *gin.Context) {
	var params inout.GetReportReq
	if err := c.ShouldBindUri(&params); err != nil {
		Resp.Err(c, response.INVALID_PARAMS, bindErrMsg(err))
		return
	}

	engineMu.RLock()
	svc := engine
	snap := snapshot
	engineMu.RUnlock()

	if svc == nil {
		Resp.Err(c, response.INTERNAL_ERROR, "分析引擎未初始化")
		return
	}

	rows, ok := svc.Report(params.Name)
	if !ok {
		Resp.Err(c, response.NOT_FOUND, "未知报表: "+params.Name)
		return
	}

	Resp.Succ(c, gin.H{
		"report":      params.Name,
		"fingerprint": snap.Fingerprint(),
		"rows":        rows,
	})
}

// RunReports 并行执行全部报表，可选导出与上传
func RunReports(c *gin.Context) {
	var params inout.RunReportsReq
	if err := c.ShouldBind(&params); err != nil {
		Resp.Err(c, response.INVALID_PARAMS, bindErrMsg(err))
		return
	}

	engineMu.RLock()
	snap := snapshot
	engineMu.RUnlock()

	if snap == nil || runner == nil {
		Resp.Err(c, response.INTERNAL_ERROR, "分析引擎未初始化")
		return
	}

	cfg := config.GetConfig()
	analyticsParams := analytics_service.ParamsFromConfig(cfg.Analytics, time.Now().UTC())
	record := runner.RunAll(c.Request.Context(), snap, analyticsParams)

	result := gin.H{
		"run_id":      record.RunID,
		"fingerprint": record.Fingerprint,
		"succeeded":   record.Succeeded,
		"failed":      record.Failed,
		"results":     record.Results,
	}

	if params.Export {
		format := params.Format
		if format == "" {
			format = cfg.Export.Format
		}
		files, err := report_service.ExportRun(record, cfg.Export.Dir, format)
		if err != nil {
			Resp.Err(c, response.ERROR, err.Error())
			return
		}
		result["exported_files"] = files

		if params.Upload {
			if ossUtil == nil {
				Resp.Err(c, response.INVALID_PARAMS, "对象存储未配置")
				return
			}
			objects, err := report_service.UploadRun(ossUtil, files, "reports")
			if err != nil {
				Resp.Err(c, response.ERROR, err.Error())
				return
			}
			result["uploaded_objects"] = objects
		}
	}

	Resp.Succ(c, result)
}

// ListRuns 查询最近的报表运行归档记录
func ListRuns(c *gin.Context) {
	if runner == nil {
		Resp.Err(c, response.INTERNAL_ERROR, "分析引擎未初始化")
		return
	}

	limit := int64(20)
	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil || parsed <= 0 || parsed > 200 {
			Resp.Err(c, response.INVALID_PARAMS, "limit 必须是 1-200 之间的整数")
			return
		}
		limit = parsed
	}

	records, err := runner.RecentRuns(c.Request.Context(), limit)
	if err != nil {
		Resp.Err(c, response.ERROR, err.Error())
		return
	}
	Resp.Succ(c, gin.H{"runs": records, "count": len(records)})
}

// RefreshSnapshot 从数据来源重新摄入快照
func RefreshSnapshot(c *gin.Context) {
	if err := reloadSnapshot(); err != nil {
		var integrityErr *ingest_service.IntegrityError
		if errors.As(err, &integrityErr) {
			Resp.Err(c, response.INGEST_ERROR, integrityErr.Error())
			return
		}
		Resp.Err(c, response.ERROR, err.Error())
		return
	}

	engineMu.RLock()
	snap := snapshot
	engineMu.RUnlock()

	Resp.Succ(c, gin.H{
		"fingerprint": snap.Fingerprint(),
		"customers":   len(snap.Customers),
		"orders":      len(snap.Orders),
		"order_items": len(snap.OrderItems),
	})
}
