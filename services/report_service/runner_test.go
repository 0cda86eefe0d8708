package report_service

import (
	"context"
	"testing"
	"time"

	"ecom-insight/pkg/cache"
	"ecom-insight/services/analytics_service"
	"ecom-insight/services/ingest_service"
)

func fixtureSnapshot(t *testing.T) *ingest_service.Snapshot {
	t.Helper()
	opts := ingest_service.DefaultFixtureOptions(11)
	opts.CustomerCount = 50
	snap, err := ingest_service.Load(ingest_service.NewFixtureSource(opts))
	if err != nil {
		t.Fatalf("构建快照失败: %v", err)
	}
	return snap
}

func fixedParams() analytics_service.Params {
	return analytics_service.DefaultParams(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
}

func TestRunAll(t *testing.T) {
	snap := fixtureSnapshot(t)
	runner := NewRunner(4, nil, nil, nil)

	record := runner.RunAll(context.Background(), snap, fixedParams())

	if record.RunID == "" {
		t.Error("RunID 不应为空")
	}
	if record.Fingerprint != snap.Fingerprint() {
		t.Error("指纹应来自快照")
	}
	if record.Failed != 0 {
		t.Errorf("失败报表数 = %d, want 0: %+v", record.Failed, record.Results)
	}
	if record.Succeeded != 20 || len(record.Results) != 20 {
		t.Errorf("成功报表数 = %d, 结果数 = %d, want 20", record.Succeeded, len(record.Results))
	}

	for _, res := range record.Results {
		if res.Err != "" {
			t.Errorf("报表 %s 失败: %s", res.Name, res.Err)
		}
		if len(res.Rows) == 0 {
			t.Errorf("报表 %s 无数据", res.Name)
		}
		if res.Cached {
			t.Errorf("冷启动不应命中缓存: %s", res.Name)
		}
	}
	if record.FinishedAt.Before(record.StartedAt) {
		t.Error("结束时间早于开始时间")
	}
}

func TestRunAllCacheHits(t *testing.T) {
	snap := fixtureSnapshot(t)
	c := cache.NewReportCache(nil, time.Minute)
	runner := NewRunner(4, c, nil, nil)

	first := runner.RunAll(context.Background(), snap, fixedParams())
	if first.Failed != 0 {
		t.Fatalf("首次运行失败: %+v", first.Results)
	}

	second := runner.RunAll(context.Background(), snap, fixedParams())
	for _, res := range second.Results {
		if !res.Cached {
			t.Errorf("第二次运行应命中缓存: %s", res.Name)
		}
	}

	// 首次与第二次的报表内容应一致
	firstRows := make(map[string]string)
	for _, res := range first.Results {
		firstRows[res.Name] = string(res.Rows)
	}
	for _, res := range second.Results {
		if firstRows[res.Name] != string(res.Rows) {
			t.Errorf("缓存内容与计算结果不一致: %s", res.Name)
		}
	}
}

// 单个报表 panic 只影响自身，不影响其他报表
func TestComputeOnePanicIsolation(t *testing.T) {
	runner := NewRunner(2, nil, nil, nil)

	bad := analytics_service.NamedReport{
		Name:    "exploding",
		Compute: func() (interface{}, error) { panic("boom") },
	}
	result := runner.computeOne(context.Background(), "fp", bad)
	if result.Err == "" {
		t.Fatal("panic 应转为报表错误")
	}
	if result.Name != "exploding" {
		t.Errorf("Name = %q", result.Name)
	}

	good := analytics_service.NamedReport{
		Name:    "fine",
		Compute: func() (interface{}, error) { return []int{1, 2, 3}, nil },
	}
	if res := runner.computeOne(context.Background(), "fp", good); res.Err != "" {
		t.Errorf("正常报表不应受影响: %s", res.Err)
	}
}

func TestNewRunnerDefaults(t *testing.T) {
	runner := NewRunner(0, nil, nil, nil)
	if runner.workers <= 0 {
		t.Error("worker 数应回退到默认值")
	}
}
