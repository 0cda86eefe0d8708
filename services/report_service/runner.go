package report_service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"runtime/debug"
	"sync"
	"time"

	"ecom-insight/pkg/cache"
	"ecom-insight/pkg/monitoring"
	"ecom-insight/services/analytics_service"
	"ecom-insight/services/ingest_service"

	"github.com/google/uuid"
)

// ReportResult 单个报表的计算结果，Err 不为空时 Rows 无效
type ReportResult struct {
	Name     string          `json:"name"`
	Rows     json.RawMessage `json:"rows,omitempty"`
	Err      string          `json:"error,omitempty"`
	Cached   bool            `json:"cached"`
	Duration time.Duration   `json:"duration_ns"`
}

// RunRecord 一次完整报表运行的记录
type RunRecord struct {
	RunID       string         `json:"run_id" bson:"run_id"`
	Fingerprint string         `json:"fingerprint" bson:"fingerprint"`
	StartedAt   time.Time      `json:"started_at" bson:"started_at"`
	FinishedAt  time.Time      `json:"finished_at" bson:"finished_at"`
	Succeeded   int            `json:"succeeded" bson:"succeeded"`
	Failed      int            `json:"failed" bson:"failed"`
	Results     []ReportResult `json:"results" bson:"results"`
}

// Runner 报表运行器：聚合层完成后并行计算全部报表模块，
// 单个报表失败只影响自身，不阻断其他报表。
type Runner struct {
	workers   int
	cache     *cache.ReportCache
	archive   *RunArchive
	publisher *EventPublisher
}

// NewRunner 创建报表运行器，cache/archive/publisher 均可为 nil
func NewRunner(workers int, c *cache.ReportCache, archive *RunArchive, publisher *EventPublisher) *Runner {
	if workers <= 0 {
		workers = 8
	}
	return &Runner{workers: workers, cache: c, archive: archive, publisher: publisher}
}

// RecentRuns 查询最近的运行记录，未配置归档时返回空列表
func (r *Runner) RecentRuns(ctx context.Context, limit int64) ([]RunRecord, error) {
	if r.archive == nil {
		return []RunRecord{}, nil
	}
	return r.archive.Recent(ctx, limit)
}

// RunAll 对一个快照执行全部报表
func (r *Runner) RunAll(ctx context.Context, snap *ingest_service.Snapshot, params analytics_service.Params) *RunRecord {
	record := &RunRecord{
		RunID:       uuid.NewString(),
		Fingerprint: snap.Fingerprint(),
		StartedAt:   time.Now(),
	}

	// 同步屏障：聚合层在报表模块启动之前完成并只读
	svc := analytics_service.NewAnalyticsService(snap, params)
	reports := svc.Reports()

	results := make([]ReportResult, len(reports))
	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = r.computeOne(ctx, snap.Fingerprint(), reports[i])
			}
		}()
	}
	for i := range reports {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	record.Results = results
	record.FinishedAt = time.Now()
	for _, res := range results {
		if res.Err == "" {
			record.Succeeded++
		} else {
			record.Failed++
		}
	}

	if r.archive != nil {
		if err := r.archive.Save(ctx, record); err != nil {
			log.Printf("报表运行归档失败: %v", err)
		}
	}
	if r.publisher != nil {
		if err := r.publisher.PublishRunCompleted(record); err != nil {
			log.Printf("报表完成事件发布失败: %v", err)
		}
	}

	return record
}

// computeOne 计算单个报表，panic 就地捕获并转为该报表的错误
func (r *Runner) computeOne(ctx context.Context, fingerprint string, report analytics_service.NamedReport) (result ReportResult) {
	result.Name = report.Name
	start := time.Now()

	defer func() {
		if recovered := recover(); recovered != nil {
			log.Printf("[PANIC RECOVERY] report %s: %v\n%s", report.Name, recovered, debug.Stack())
			result.Err = fmt.Sprintf("panic: %v", recovered)
			result.Duration = time.Since(start)
			monitoring.RecordReportComputation(report.Name, "panic", result.Duration)
		}
	}()

	// 缓存命中则跳过计算
	if r.cache != nil {
		key := cache.Key(fingerprint, report.Name)
		if rows, found := r.cache.Get(ctx, key); found {
			monitoring.RecordReportCache(report.Name, "hit")
			result.Rows = rows
			result.Cached = true
			result.Duration = time.Since(start)
			return result
		}
		monitoring.RecordReportCache(report.Name, "miss")
	}

	rows, err := report.Compute()
	result.Duration = time.Since(start)
	if err != nil {
		result.Err = err.Error()
		monitoring.RecordReportComputation(report.Name, "error", result.Duration)
		return result
	}

	data, err := json.Marshal(rows)
	if err != nil {
		result.Err = fmt.Sprintf("序列化失败: %v", err)
		monitoring.RecordReportComputation(report.Name, "error", result.Duration)
		return result
	}
	result.Rows = data
	monitoring.RecordReportComputation(report.Name, "ok", result.Duration)

	if r.cache != nil {
		if err := r.cache.Set(ctx, cache.Key(fingerprint, report.Name), rows); err != nil {
			log.Printf("报表缓存写入失败: %v", err)
		}
	}
	return result
}
