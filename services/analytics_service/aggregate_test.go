package analytics_service

import (
	"testing"

	"ecom-insight/model/store_model"
	"ecom-insight/services/ingest_service"
)

func TestBuildAggregates(t *testing.T) {
	customers := []store_model.Customer{
		cust(1, "Asha", "Mumbai"),
		cust(2, "Ravi", "Delhi"),
		cust(3, "Meera", "Pune"), // 无订单客户
	}
	orders := []store_model.Order{
		ord(10, 1, day(2024, 1, 15), "100.00"),
		ord(11, 1, day(2024, 2, 20), "200.00"),
		ord(12, 2, day(2024, 2, 5), "300.00"),
	}

	svc := newService(t, customers, orders, nil)
	agg := svc.Aggregates()

	if got := agg.TotalRevenue.String(); got != "600" {
		t.Errorf("总收入 = %s, want 600", got)
	}
	if agg.TotalOrders != 3 {
		t.Errorf("总订单数 = %d, want 3", agg.TotalOrders)
	}

	// 无订单客户不出现在汇总中
	if len(agg.SummaryByCustomer) != 2 {
		t.Fatalf("有订单客户数 = %d, want 2", len(agg.SummaryByCustomer))
	}
	if _, ok := agg.SummaryByCustomer[3]; ok {
		t.Error("无订单客户不应出现在汇总中")
	}

	s1 := agg.SummaryByCustomer[1]
	if s1.OrderCount != 2 || s1.LifetimeRevenue.String() != "300" {
		t.Errorf("客户1汇总错误: orders=%d revenue=%s", s1.OrderCount, s1.LifetimeRevenue)
	}
	if !s1.FirstOrderDate.Equal(day(2024, 1, 15)) || !s1.LastOrderDate.Equal(day(2024, 2, 20)) {
		t.Errorf("客户1首末单日期错误: %v / %v", s1.FirstOrderDate, s1.LastOrderDate)
	}
	if s1.AvgOrderValue.String() != "150" {
		t.Errorf("客户1客单价 = %s, want 150", s1.AvgOrderValue)
	}

	if !agg.FirstOrderMonth[1].Equal(day(2024, 1, 1)) {
		t.Errorf("客户1首单月份 = %v, want 2024-01-01", agg.FirstOrderMonth[1])
	}

	// 月度序列按月份升序
	if len(agg.Monthly) != 2 {
		t.Fatalf("月份数 = %d, want 2", len(agg.Monthly))
	}
	if !agg.Monthly[0].Month.Equal(day(2024, 1, 1)) || !agg.Monthly[1].Month.Equal(day(2024, 2, 1)) {
		t.Errorf("月份顺序错误: %v", agg.Monthly)
	}
	if agg.Monthly[1].Revenue.String() != "500" || agg.Monthly[1].Orders != 2 {
		t.Errorf("2月汇总错误: %+v", agg.Monthly[1])
	}
	if agg.Monthly[1].ActiveCustomers != 2 {
		t.Errorf("2月活跃客户 = %d, want 2", agg.Monthly[1].ActiveCustomers)
	}
}

func TestSortedCustomerIDs(t *testing.T) {
	customers := []store_model.Customer{cust(3, "C", ""), cust(1, "A", ""), cust(2, "B", "")}
	orders := []store_model.Order{
		ord(10, 3, day(2024, 1, 1), "1.00"),
		ord(11, 1, day(2024, 1, 1), "1.00"),
		ord(12, 2, day(2024, 1, 1), "1.00"),
	}
	svc := newService(t, customers, orders, nil)

	ids := svc.Aggregates().SortedCustomerIDs()
	want := []int{1, 2, 3}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ID顺序 = %v, want %v", ids, want)
		}
	}
}

// 分区一致性：月度收入合计等于总收入，复购与单次收入合计等于总收入，
// 每月新客加回头客等于活跃客户数。用合成数据验证。
func TestPartitionConsistency(t *testing.T) {
	opts := ingest_service.DefaultFixtureOptions(99)
	opts.CustomerCount = 120
	snap, err := ingest_service.Load(ingest_service.NewFixtureSource(opts))
	if err != nil {
		t.Fatal(err)
	}
	svc := NewAnalyticsService(snap, DefaultParams(day(2025, 1, 1)))
	agg := svc.Aggregates()

	monthlySum := 0.0
	for _, m := range agg.Monthly {
		monthlySum += m.Revenue.InexactFloat64()
	}
	if !floatEq(monthlySum, agg.TotalRevenue.InexactFloat64()) {
		t.Errorf("月度收入合计 %v != 总收入 %v", monthlySum, agg.TotalRevenue)
	}

	split := svc.RevenueSplit()
	if !floatEq(split.RepeatRevenue+split.OneTimeRevenue, split.TotalRevenue) {
		t.Errorf("收入拆分不闭合: %v + %v != %v", split.RepeatRevenue, split.OneTimeRevenue, split.TotalRevenue)
	}
	if split.RepeatCustomers+split.OneTimeCustomers != len(agg.SummaryByCustomer) {
		t.Errorf("客户拆分不闭合")
	}

	for _, row := range svc.NewVsReturning() {
		found := false
		for _, m := range agg.Monthly {
			if row.Month == m.Month.Format("2006-01") {
				found = true
				if row.NewCustomers+row.ReturningCustomers != m.ActiveCustomers {
					t.Errorf("%s 新客+回头客 %d+%d != 活跃 %d",
						row.Month, row.NewCustomers, row.ReturningCustomers, m.ActiveCustomers)
				}
			}
		}
		if !found {
			t.Errorf("未知月份 %s", row.Month)
		}
	}

	// 同期群累计获客数最终等于有订单客户总数
	summary := svc.CohortSummary()
	if len(summary) > 0 {
		last := summary[len(summary)-1]
		if last.RunningTotalCustomers != len(agg.SummaryByCustomer) {
			t.Errorf("累计获客 %d != 有订单客户 %d", last.RunningTotalCustomers, len(agg.SummaryByCustomer))
		}
	}
}
