package analytics_service

import (
	"ecom-insight/inout"
	"ecom-insight/utils"

	"github.com/shopspring/decimal"
)

// MonthlyTrend 月度收入趋势与环比增长，首月无上月基数，增长为 null
func (s *AnalyticsService) MonthlyTrend() []inout.MonthlyTrendRow {
	rows := make([]inout.MonthlyTrendRow, 0, len(s.agg.Monthly))

	var prev decimal.Decimal
	for i, m := range s.agg.Monthly {
		row := inout.MonthlyTrendRow{
			Month:           utils.FormatMonth(m.Month),
			Revenue:         round2(m.Revenue),
			Orders:          m.Orders,
			ActiveCustomers: m.ActiveCustomers,
		}
		if i > 0 {
			row.GrowthPct = pctPtr(m.Revenue.Sub(prev), prev)
		}
		prev = m.Revenue
		rows = append(rows, row)
	}
	return rows
}

// AOV 整体与月度客单价
func (s *AnalyticsService) AOV() inout.AOVRep {
	rep := inout.AOVRep{
		TotalOrders: s.agg.TotalOrders,
		Monthly:     make([]inout.MonthAOVRow, 0, len(s.agg.Monthly)),
	}

	if s.agg.TotalOrders > 0 {
		v := s.agg.TotalRevenue.Div(decimal.NewFromInt(int64(s.agg.TotalOrders))).Round(2).InexactFloat64()
		rep.OverallAOV = &v
	}

	for _, m := range s.agg.Monthly {
		// 出现在 Monthly 里的月份至少有一笔订单
		aov := m.Revenue.Div(decimal.NewFromInt(int64(m.Orders)))
		rep.Monthly = append(rep.Monthly, inout.MonthAOVRow{
			Month:   utils.FormatMonth(m.Month),
			Orders:  m.Orders,
			Revenue: round2(m.Revenue),
			AOV:     round2(aov),
		})
	}
	return rep
}

// NewVsReturning 每月新客（首单在当月）与回头客数量
func (s *AnalyticsService) NewVsReturning() []inout.NewVsReturningRow {
	rows := make([]inout.NewVsReturningRow, 0, len(s.agg.Monthly))

	for _, m := range s.agg.Monthly {
		newCount := 0
		for cid := range s.agg.ActiveByMonth[m.Month] {
			if s.agg.FirstOrderMonth[cid].Equal(m.Month) {
				newCount++
			}
		}
		rows = append(rows, inout.NewVsReturningRow{
			Month:              utils.FormatMonth(m.Month),
			NewCustomers:       newCount,
			ReturningCustomers: m.ActiveCustomers - newCount,
		})
	}
	return rows
}
