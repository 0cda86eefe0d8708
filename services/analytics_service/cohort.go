package analytics_service

import (
	"sort"
	"time"

	"ecom-insight/inout"
	"ecom-insight/utils"

	"github.com/shopspring/decimal"
)

// CohortMatrix 同期群留存矩阵：按首单月份分群，统计每个活跃月份的去重客户数。
// 矩阵是稀疏三角形，activity_month 恒不早于 cohort_month。
func (s *AnalyticsService) CohortMatrix() []inout.CohortCellRow {
	type cellKey struct {
		cohort   time.Time
		activity time.Time
	}
	cells := make(map[cellKey]int)

	for month, active := range s.agg.ActiveByMonth {
		for cid := range active {
			cells[cellKey{cohort: s.agg.FirstOrderMonth[cid], activity: month}]++
		}
	}

	rows := make([]inout.CohortCellRow, 0, len(cells))
	for key, count := range cells {
		rows = append(rows, inout.CohortCellRow{
			CohortMonth:     utils.FormatMonth(key.cohort),
			ActivityMonth:   utils.FormatMonth(key.activity),
			ActiveCustomers: count,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].CohortMonth != rows[j].CohortMonth {
			return rows[i].CohortMonth < rows[j].CohortMonth
		}
		return rows[i].ActivityMonth < rows[j].ActivityMonth
	})
	return rows
}

// CohortSummary 同期群首月收入与次月留存率，含累计获客数
func (s *AnalyticsService) CohortSummary() []inout.CohortSummaryRow {
	type cohortStat struct {
		newCustomers      int
		firstMonthRevenue decimal.Decimal
		retainedNext      int
	}
	stats := make(map[time.Time]*cohortStat)

	for cid, cohort := range s.agg.FirstOrderMonth {
		st, ok := stats[cohort]
		if !ok {
			st = &cohortStat{firstMonthRevenue: decimal.Zero}
			stats[cohort] = st
		}
		st.newCustomers++

		// 首月收入：该客户在其同期群月份内的全部订单金额
		for _, o := range s.snap.OrdersByCust[cid] {
			if utils.TruncateToMonth(o.OrderDate).Equal(cohort) {
				st.firstMonthRevenue = st.firstMonthRevenue.Add(o.OrderAmount)
			}
		}

		// 次月留存：下一个自然月仍活跃
		if s.agg.ActiveByMonth[utils.NextMonth(cohort)][cid] {
			st.retainedNext++
		}
	}

	months := make([]time.Time, 0, len(stats))
	for month := range stats {
		months = append(months, month)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	rows := make([]inout.CohortSummaryRow, 0, len(months))
	running := 0
	for _, month := range months {
		st := stats[month]
		running += st.newCustomers
		rows = append(rows, inout.CohortSummaryRow{
			CohortMonth:           utils.FormatMonth(month),
			NewCustomers:          st.newCustomers,
			FirstMonthRevenue:     round2(st.firstMonthRevenue),
			RunningTotalCustomers: running,
			RetainedNextMonth:     st.retainedNext,
			NextMonthRetentionPct: pctPtr(
				decimal.NewFromInt(int64(st.retainedNext)),
				decimal.NewFromInt(int64(st.newCustomers)),
			),
		})
	}
	return rows
}
