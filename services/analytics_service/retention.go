package analytics_service

import (
	"ecom-insight/inout"
	"ecom-insight/utils"

	"github.com/shopspring/decimal"
)

// MonthlyRetention 月度留存率：当月活跃且上一个自然月也活跃的客户占比。
// 按自然月判断而不是固定30天窗口。
func (s *AnalyticsService) MonthlyRetention() []inout.RetentionRow {
	rows := make([]inout.RetentionRow, 0, len(s.agg.Monthly))

	for _, m := range s.agg.Monthly {
		prevActive := s.agg.ActiveByMonth[utils.PrevMonth(m.Month)]
		retained := 0
		for cid := range s.agg.ActiveByMonth[m.Month] {
			if prevActive[cid] {
				retained++
			}
		}
		rows = append(rows, inout.RetentionRow{
			Month:           utils.FormatMonth(m.Month),
			ActiveCustomers: m.ActiveCustomers,
			Retained:        retained,
			RetentionRatePct: pctPtr(
				decimal.NewFromInt(int64(retained)),
				decimal.NewFromInt(int64(m.ActiveCustomers)),
			),
		})
	}
	return rows
}

// EarlyChurn 早期流失率：只下过一单的客户占有订单客户的比例
func (s *AnalyticsService) EarlyChurn() inout.ChurnRep {
	rep := inout.ChurnRep{}
	for _, sum := range s.agg.SummaryByCustomer {
		rep.CustomersWithOrders++
		if sum.OrderCount == 1 {
			rep.OneOrderCustomers++
		}
	}
	rep.EarlyChurnRatePct = pctPtr(
		decimal.NewFromInt(int64(rep.OneOrderCustomers)),
		decimal.NewFromInt(int64(rep.CustomersWithOrders)),
	)
	return rep
}

// OrderGaps 客户相邻订单平均间隔天数，单订单客户没有间隔，不输出
func (s *AnalyticsService) OrderGaps() []inout.OrderGapRow {
	rows := make([]inout.OrderGapRow, 0)

	for _, cid := range s.agg.SortedCustomerIDs() {
		orders := s.snap.OrdersByCust[cid] // 已按日期升序
		if len(orders) < 2 {
			continue
		}
		totalDays := 0
		for i := 1; i < len(orders); i++ {
			totalDays += utils.DaysBetween(orders[i-1].OrderDate, orders[i].OrderDate)
		}
		gaps := len(orders) - 1
		rows = append(rows, inout.OrderGapRow{
			CustomerID: cid,
			Name:       s.agg.SummaryByCustomer[cid].Name,
			OrderCount: len(orders),
			AvgGapDays: round2(decimal.NewFromInt(int64(totalDays)).Div(decimal.NewFromInt(int64(gaps)))),
		})
	}
	return rows
}

// 首月消费分档标签
const (
	SegmentLow  = "low"
	SegmentMid  = "mid"
	SegmentHigh = "high"
)

// SpendSegments 按首个活跃月消费分档，并统计各档留存（首单之后还有订单）。
// 档位边界：low < 低档上限，mid 为闭区间 [低档上限, 高档下限]，high > 高档下限。
func (s *AnalyticsService) SpendSegments() []inout.SpendSegmentRow {
	type bucket struct {
		customers int
		retained  int
		spend     decimal.Decimal
	}
	buckets := map[string]*bucket{
		SegmentLow:  {spend: decimal.Zero},
		SegmentMid:  {spend: decimal.Zero},
		SegmentHigh: {spend: decimal.Zero},
	}

	for cid, sum := range s.agg.SummaryByCustomer {
		firstMonth := s.agg.FirstOrderMonth[cid]

		// 首月消费
		spend := decimal.Zero
		for _, o := range s.snap.OrdersByCust[cid] {
			if utils.TruncateToMonth(o.OrderDate).Equal(firstMonth) {
				spend = spend.Add(o.OrderAmount)
			}
		}

		var seg string
		switch {
		case spend.LessThan(s.params.SpendSegmentLow):
			seg = SegmentLow
		case spend.LessThanOrEqual(s.params.SpendSegmentHigh):
			seg = SegmentMid
		default:
			seg = SegmentHigh
		}

		b := buckets[seg]
		b.customers++
		b.spend = b.spend.Add(spend)

		// 留存：首单日期之后还有任何订单
		if sum.LastOrderDate.After(sum.FirstOrderDate) {
			b.retained++
		}
	}

	order := []string{SegmentLow, SegmentMid, SegmentHigh}
	rows := make([]inout.SpendSegmentRow, 0, len(order))
	for _, seg := range order {
		b := buckets[seg]
		rows = append(rows, inout.SpendSegmentRow{
			Segment:   seg,
			Customers: b.customers,
			Retained:  b.retained,
			RetentionRatePct: pctPtr(
				decimal.NewFromInt(int64(b.retained)),
				decimal.NewFromInt(int64(b.customers)),
			),
			FirstMonthSpend: round2(b.spend),
		})
	}
	return rows
}
