package analytics_service

import (
	"testing"

	"ecom-insight/model/store_model"
)

func TestRevenueSplit(t *testing.T) {
	customers := []store_model.Customer{cust(1, "A", ""), cust(2, "B", ""), cust(3, "C", "")}
	orders := []store_model.Order{
		ord(10, 1, day(2024, 1, 1), "100.00"),
		ord(11, 1, day(2024, 2, 1), "100.00"),
		ord(12, 2, day(2024, 1, 1), "300.00"),
		ord(13, 3, day(2024, 1, 1), "100.00"),
	}
	svc := newService(t, customers, orders, nil)

	rep := svc.RevenueSplit()
	if rep.RepeatCustomers != 1 || rep.OneTimeCustomers != 2 {
		t.Errorf("客户拆分 = %d/%d, want 1/2", rep.RepeatCustomers, rep.OneTimeCustomers)
	}
	if !floatEq(rep.RepeatRevenue, 200) || !floatEq(rep.OneTimeRevenue, 400) {
		t.Errorf("收入拆分 = %v/%v, want 200/400", rep.RepeatRevenue, rep.OneTimeRevenue)
	}
	if !floatEq(rep.RepeatRevenue+rep.OneTimeRevenue, rep.TotalRevenue) {
		t.Error("拆分不闭合")
	}
	wantPct(t, rep.RepeatSharePct, 33.33, "复购收入占比")
}

func TestRevenueConcentrationFewerThanN(t *testing.T) {
	customers := []store_model.Customer{cust(1, "A", ""), cust(2, "B", "")}
	orders := []store_model.Order{
		ord(10, 1, day(2024, 1, 1), "100.00"),
		ord(11, 2, day(2024, 1, 1), "300.00"),
	}
	svc := newService(t, customers, orders, nil)

	rep := svc.RevenueConcentration()
	if rep.TopN != 10 {
		t.Errorf("TopN = %d, want 10", rep.TopN)
	}
	if rep.TopCustomers != 2 {
		t.Errorf("实际取数 = %d, want 2", rep.TopCustomers)
	}
	// 客户不足N名时前N占比恒为100%
	wantPct(t, rep.TopSharePct, 100, "前N收入占比")
}

func TestRevenueConcentrationTopN(t *testing.T) {
	customers := []store_model.Customer{
		cust(1, "A", ""), cust(2, "B", ""), cust(3, "C", ""), cust(4, "D", ""),
	}
	orders := []store_model.Order{
		ord(10, 1, day(2024, 1, 1), "400.00"),
		ord(11, 2, day(2024, 1, 1), "300.00"),
		ord(12, 3, day(2024, 1, 1), "200.00"),
		ord(13, 4, day(2024, 1, 1), "100.00"),
	}
	params := DefaultParams(day(2024, 7, 1))
	params.TopCustomerCount = 2
	svc := newServiceWithParams(t, customers, orders, nil, params)

	rep := svc.RevenueConcentration()
	if !floatEq(rep.TopRevenue, 700) {
		t.Errorf("前2名收入 = %v, want 700", rep.TopRevenue)
	}
	wantPct(t, rep.TopSharePct, 70, "前2名收入占比")
}

func TestTopCustomersTiebreak(t *testing.T) {
	customers := []store_model.Customer{cust(5, "E", ""), cust(2, "B", ""), cust(9, "I", "")}
	orders := []store_model.Order{
		ord(10, 5, day(2024, 1, 1), "100.00"),
		ord(11, 2, day(2024, 1, 1), "100.00"),
		ord(12, 9, day(2024, 1, 1), "500.00"),
	}
	svc := newService(t, customers, orders, nil)

	rows := svc.TopCustomers()
	if len(rows) != 3 {
		t.Fatalf("行数 = %d", len(rows))
	}
	if rows[0].CustomerID != 9 {
		t.Errorf("第1名 = %d, want 9", rows[0].CustomerID)
	}
	// 收入相同按 customer_id 升序
	if rows[1].CustomerID != 2 || rows[2].CustomerID != 5 {
		t.Errorf("并列收入顺序错误: %d, %d", rows[1].CustomerID, rows[2].CustomerID)
	}
	for i, row := range rows {
		if row.Rank != i+1 {
			t.Errorf("Rank = %d, want %d", row.Rank, i+1)
		}
	}
}

func TestAtRiskCustomers(t *testing.T) {
	now := day(2024, 7, 1)
	customers := []store_model.Customer{
		cust(1, "Stale", "Mumbai"),  // 高于均值且61天未下单 → 风险
		cust(2, "Recent", "Delhi"),  // 高于均值但最近下过单 → 非风险
		cust(3, "Small", "Pune"),    // 低于均值 → 非风险
		cust(4, "Border", "Kochi"),  // 高于均值但恰好60天 → 非风险（须超过窗口）
	}
	orders := []store_model.Order{
		ord(10, 1, day(2024, 5, 1), "1000.00"), // 距now 61天
		ord(11, 2, day(2024, 6, 25), "1000.00"),
		ord(12, 3, day(2024, 1, 1), "10.00"),
		ord(13, 4, day(2024, 5, 2), "1000.00"), // 距now 60天整
	}
	params := DefaultParams(now)
	svc := newServiceWithParams(t, customers, orders, nil, params)

	rows := svc.AtRiskCustomers()
	if len(rows) != 1 {
		t.Fatalf("风险客户数 = %d, want 1: %+v", len(rows), rows)
	}
	if rows[0].CustomerID != 1 {
		t.Errorf("风险客户 = %d, want 1", rows[0].CustomerID)
	}
	if rows[0].DaysSinceLastOrder != 61 {
		t.Errorf("距最近一单 = %d, want 61", rows[0].DaysSinceLastOrder)
	}
	if rows[0].LastOrderDate != "2024-05-01" {
		t.Errorf("最近一单日期 = %q", rows[0].LastOrderDate)
	}
}

func TestAtRiskEmpty(t *testing.T) {
	svc := newService(t, nil, nil, nil)
	if rows := svc.AtRiskCustomers(); len(rows) != 0 {
		t.Errorf("空输入应无风险客户, got %d", len(rows))
	}
}

func TestRetentionROI(t *testing.T) {
	customers := []store_model.Customer{
		cust(1, "A", ""), cust(2, "B", ""), cust(3, "C", ""), cust(4, "D", ""),
	}
	orders := []store_model.Order{
		// 复购客户1：400，复购客户2：600 → 平均500
		ord(10, 1, day(2024, 1, 1), "100.00"),
		ord(11, 1, day(2024, 2, 1), "300.00"),
		ord(12, 2, day(2024, 1, 1), "200.00"),
		ord(13, 2, day(2024, 2, 1), "400.00"),
		ord(14, 3, day(2024, 1, 1), "50.00"),
	}
	svc := newService(t, customers, orders, nil)

	rep := svc.RetentionROI()
	if rep.TotalCustomers != 4 || rep.RepeatCustomers != 2 {
		t.Errorf("客户数 = %d/%d, want 4/2", rep.TotalCustomers, rep.RepeatCustomers)
	}
	if !floatEq(rep.AvgRepeatRevenue, 500) {
		t.Errorf("复购平均收入 = %v, want 500", rep.AvgRepeatRevenue)
	}
	if !floatEq(rep.UpliftRate, 0.05) {
		t.Errorf("提升率 = %v, want 0.05", rep.UpliftRate)
	}
	// 4 × 0.05 × 500 = 100
	if !floatEq(rep.ProjectedUplift, 100) {
		t.Errorf("预估收益 = %v, want 100", rep.ProjectedUplift)
	}
}

func TestRetentionROINoRepeat(t *testing.T) {
	customers := []store_model.Customer{cust(1, "A", "")}
	orders := []store_model.Order{ord(10, 1, day(2024, 1, 1), "100.00")}
	svc := newService(t, customers, orders, nil)

	rep := svc.RetentionROI()
	if rep.RepeatCustomers != 0 || rep.AvgRepeatRevenue != 0 || rep.ProjectedUplift != 0 {
		t.Errorf("无复购客户时收益应为零: %+v", rep)
	}
}

func TestCustomerSummariesOrdered(t *testing.T) {
	customers := []store_model.Customer{cust(2, "B", "Delhi"), cust(1, "A", "Mumbai")}
	orders := []store_model.Order{
		ord(10, 2, day(2024, 1, 1), "100.00"),
		ord(11, 1, day(2024, 1, 2), "50.00"),
	}
	svc := newService(t, customers, orders, nil)

	rows := svc.CustomerSummaries()
	if len(rows) != 2 || rows[0].CustomerID != 1 || rows[1].CustomerID != 2 {
		t.Errorf("应按ID升序输出: %+v", rows)
	}
	if rows[0].FirstOrderDate != "2024-01-02" {
		t.Errorf("首单日期 = %q", rows[0].FirstOrderDate)
	}
}
