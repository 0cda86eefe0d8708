package report_service

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"ecom-insight/inout"
)

func TestExportJSON(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "sub", "trend.json")

	rows := []inout.MonthlyTrendRow{
		{Month: "2024-01", Revenue: 150, Orders: 2, ActiveCustomers: 1},
	}
	if err := ExportJSON(file, rows); err != nil {
		t.Fatalf("ExportJSON 失败: %v", err)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	var decoded []inout.MonthlyTrendRow
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("导出的JSON无法解析: %v", err)
	}
	if len(decoded) != 1 || decoded[0].Month != "2024-01" {
		t.Errorf("解析结果 = %+v", decoded)
	}
	// 首月增长为 null
	if !strings.Contains(string(data), `"growth_pct": null`) {
		t.Errorf("growth_pct 应序列化为 null: %s", data)
	}
}

func TestExportCSVRows(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "gaps.csv")

	rows := []inout.OrderGapRow{
		{CustomerID: 1, Name: "Asha", OrderCount: 3, AvgGapDays: 15},
		{CustomerID: 2, Name: "Ravi", OrderCount: 2, AvgGapDays: 7.5},
	}
	if err := ExportCSV(file, rows); err != nil {
		t.Fatalf("ExportCSV 失败: %v", err)
	}

	f, err := os.Open(file)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("CSV行数 = %d, want 3（表头+2行）", len(records))
	}

	// 列名取字典序
	wantHeader := []string{"avg_gap_days", "customer_id", "name", "order_count"}
	for i, col := range wantHeader {
		if records[0][i] != col {
			t.Fatalf("表头 = %v, want %v", records[0], wantHeader)
		}
	}
	if records[1][2] != "Asha" || records[2][0] != "7.5" {
		t.Errorf("数据行错误: %v", records[1:])
	}
}

func TestExportCSVSingleObject(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "churn.csv")

	pct := 66.67
	rep := inout.ChurnRep{CustomersWithOrders: 3, OneOrderCustomers: 2, EarlyChurnRatePct: &pct}
	if err := ExportCSV(file, rep); err != nil {
		t.Fatalf("单对象报表应导出为单行CSV: %v", err)
	}

	f, err := os.Open(file)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("CSV行数 = %d, want 2", len(records))
	}
}

func TestExportCSVEmpty(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "empty.csv")
	if err := ExportCSV(file, []inout.OrderGapRow{}); err != nil {
		t.Fatalf("空报表导出不应报错: %v", err)
	}
}

func TestTimestampedFilename(t *testing.T) {
	name := TimestampedFilename("out", "monthly_trend", "json")
	base := filepath.Base(name)

	matched, err := regexp.MatchString(`^monthly_trend_\d{8}_\d{6}\.json$`, base)
	if err != nil {
		t.Fatal(err)
	}
	if !matched {
		t.Errorf("文件名格式错误: %s", base)
	}
	if filepath.Dir(name) != "out" {
		t.Errorf("目录 = %s, want out", filepath.Dir(name))
	}
}
