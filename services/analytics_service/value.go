package analytics_service

import (
	"sort"

	"ecom-insight/inout"
	"ecom-insight/utils"

	"github.com/shopspring/decimal"
)

// RevenueSplit 复购客户与单次客户的收入拆分，两部分互斥且合计等于总收入
func (s *AnalyticsService) RevenueSplit() inout.RevenueSplitRep {
	repeatRev, oneTimeRev := decimal.Zero, decimal.Zero
	rep := inout.RevenueSplitRep{}

	for _, sum := range s.agg.SummaryByCustomer {
		if sum.OrderCount > 1 {
			rep.RepeatCustomers++
			repeatRev = repeatRev.Add(sum.LifetimeRevenue)
		} else {
			rep.OneTimeCustomers++
			oneTimeRev = oneTimeRev.Add(sum.LifetimeRevenue)
		}
	}

	rep.RepeatRevenue = round2(repeatRev)
	rep.OneTimeRevenue = round2(oneTimeRev)
	rep.TotalRevenue = round2(s.agg.TotalRevenue)
	rep.RepeatSharePct = pctPtr(repeatRev, s.agg.TotalRevenue)
	return rep
}

// rankedSummaries 按生命周期收入降序，收入相同按 customer_id 升序保证确定性
func (s *AnalyticsService) rankedSummaries() []*CustomerSummary {
	ranked := make([]*CustomerSummary, 0, len(s.agg.SummaryByCustomer))
	for _, sum := range s.agg.SummaryByCustomer {
		ranked = append(ranked, sum)
	}
	sort.Slice(ranked, func(i, j int) bool {
		cmp := ranked[i].LifetimeRevenue.Cmp(ranked[j].LifetimeRevenue)
		if cmp != 0 {
			return cmp > 0
		}
		return ranked[i].CustomerID < ranked[j].CustomerID
	})
	return ranked
}

// RevenueConcentration 前N名客户收入占总收入的比例
func (s *AnalyticsService) RevenueConcentration() inout.ConcentrationRep {
	ranked := s.rankedSummaries()

	topN := s.params.TopCustomerCount
	if topN > len(ranked) {
		topN = len(ranked)
	}

	topRev := decimal.Zero
	for _, sum := range ranked[:topN] {
		topRev = topRev.Add(sum.LifetimeRevenue)
	}

	return inout.ConcentrationRep{
		TopN:         s.params.TopCustomerCount,
		TopCustomers: topN,
		TopRevenue:   round2(topRev),
		TotalRevenue: round2(s.agg.TotalRevenue),
		TopSharePct:  pctPtr(topRev, s.agg.TotalRevenue),
	}
}

// TopCustomers 客户生命周期价值排名，取前N名
func (s *AnalyticsService) TopCustomers() []inout.TopCustomerRow {
	ranked := s.rankedSummaries()
	if len(ranked) > s.params.TopCustomerCount {
		ranked = ranked[:s.params.TopCustomerCount]
	}

	rows := make([]inout.TopCustomerRow, 0, len(ranked))
	for i, sum := range ranked {
		rows = append(rows, inout.TopCustomerRow{
			Rank:            i + 1,
			CustomerID:      sum.CustomerID,
			Name:            sum.Name,
			City:            sum.City,
			Orders:          sum.OrderCount,
			LifetimeRevenue: round2(sum.LifetimeRevenue),
			AvgOrderValue:   round2(sum.AvgOrderValue),
		})
	}
	return rows
}

// AtRiskCustomers 高价值流失风险客户：生命周期收入高于均值，
// 且距最近一单超过配置天数。当前时间为注入参数，结果可复现。
func (s *AnalyticsService) AtRiskCustomers() []inout.AtRiskRow {
	n := len(s.agg.SummaryByCustomer)
	if n == 0 {
		return []inout.AtRiskRow{}
	}
	avg := s.agg.TotalRevenue.Div(decimal.NewFromInt(int64(n)))

	rows := make([]inout.AtRiskRow, 0)
	for _, sum := range s.rankedSummaries() {
		if !sum.LifetimeRevenue.GreaterThan(avg) {
			// 排名已按收入降序，后面不会再有高于均值的客户
			break
		}
		days := utils.DaysBetween(sum.LastOrderDate, s.params.Now)
		if days > s.params.AtRiskDays {
			rows = append(rows, inout.AtRiskRow{
				CustomerID:         sum.CustomerID,
				Name:               sum.Name,
				City:               sum.City,
				LifetimeRevenue:    round2(sum.LifetimeRevenue),
				LastOrderDate:      utils.FormatDate(sum.LastOrderDate),
				DaysSinceLastOrder: days,
			})
		}
	}
	return rows
}

// RetentionROI 留存提升收益预估：
// 总客户数 × 提升率 × 复购客户平均生命周期收入。提升率为配置参数。
func (s *AnalyticsService) RetentionROI() inout.RetentionROIRep {
	rep := inout.RetentionROIRep{
		TotalCustomers: len(s.snap.Customers),
		UpliftRate:     s.params.RetentionUplift.InexactFloat64(),
	}

	repeatRev := decimal.Zero
	for _, sum := range s.agg.SummaryByCustomer {
		if sum.OrderCount > 1 {
			rep.RepeatCustomers++
			repeatRev = repeatRev.Add(sum.LifetimeRevenue)
		}
	}
	if rep.RepeatCustomers == 0 {
		return rep
	}

	avgRepeat := repeatRev.Div(decimal.NewFromInt(int64(rep.RepeatCustomers)))
	rep.AvgRepeatRevenue = round2(avgRepeat)
	rep.ProjectedUplift = round2(
		decimal.NewFromInt(int64(rep.TotalCustomers)).Mul(s.params.RetentionUplift).Mul(avgRepeat))
	return rep
}

// CustomerSummaries 聚合层的客户汇总以报表形式输出，ID升序
func (s *AnalyticsService) CustomerSummaries() []inout.CustomerSummaryRow {
	ids := s.agg.SortedCustomerIDs()
	rows := make([]inout.CustomerSummaryRow, 0, len(ids))
	for _, cid := range ids {
		sum := s.agg.SummaryByCustomer[cid]
		rows = append(rows, inout.CustomerSummaryRow{
			CustomerID:      sum.CustomerID,
			Name:            sum.Name,
			City:            sum.City,
			OrderCount:      sum.OrderCount,
			LifetimeRevenue: round2(sum.LifetimeRevenue),
			FirstOrderDate:  utils.FormatDate(sum.FirstOrderDate),
			LastOrderDate:   utils.FormatDate(sum.LastOrderDate),
			AvgOrderValue:   round2(sum.AvgOrderValue),
		})
	}
	return rows
}
