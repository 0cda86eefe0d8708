package analytics_service

import (
	"sort"

	"ecom-insight/inout"
	"ecom-insight/utils"
)

// RFM 分层标签
const (
	RFMChampions = "Champions"
	RFMLoyal     = "Loyal"
	RFMAtRisk    = "At Risk"
	RFMLost      = "Lost"
)

// RFMSegments 客户RFM评分与分层。
// Recency=距最近一单天数，Frequency=订单数，Monetary=生命周期收入，
// 货币分通过五分位排名换算。输出按总分降序，总分相同按货币值降序。
func (s *AnalyticsService) RFMSegments() []inout.RFMRow {
	summaries := make([]*CustomerSummary, 0, len(s.agg.SummaryByCustomer))
	for _, sum := range s.agg.SummaryByCustomer {
		summaries = append(summaries, sum)
	}
	if len(summaries) == 0 {
		return []inout.RFMRow{}
	}

	// 货币值降序五分位，NTILE语义：余数分配给靠前的分位
	sort.Slice(summaries, func(i, j int) bool {
		cmp := summaries[i].LifetimeRevenue.Cmp(summaries[j].LifetimeRevenue)
		if cmp != 0 {
			return cmp > 0
		}
		return summaries[i].CustomerID < summaries[j].CustomerID
	})
	ntile := make(map[int]int, len(summaries))
	assignNtile(len(summaries), 5, func(pos, tile int) {
		ntile[summaries[pos].CustomerID] = tile
	})

	rows := make([]inout.RFMRow, 0, len(summaries))
	for _, sum := range summaries {
		recencyDays := utils.DaysBetween(sum.LastOrderDate, s.params.Now)
		recencyScore := scoreRecency(recencyDays)
		frequencyScore := scoreFrequency(sum.OrderCount)
		monetaryScore := 6 - ntile[sum.CustomerID] // 分位1为货币值最高 → 得5分

		total := recencyScore + frequencyScore + monetaryScore
		rows = append(rows, inout.RFMRow{
			CustomerID:     sum.CustomerID,
			Name:           sum.Name,
			RecencyDays:    recencyDays,
			Frequency:      sum.OrderCount,
			Monetary:       round2(sum.LifetimeRevenue),
			RecencyScore:   recencyScore,
			FrequencyScore: frequencyScore,
			MonetaryScore:  monetaryScore,
			RFMScore:       total,
			Segment:        rfmSegment(total),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].RFMScore != rows[j].RFMScore {
			return rows[i].RFMScore > rows[j].RFMScore
		}
		if rows[i].Monetary != rows[j].Monetary {
			return rows[i].Monetary > rows[j].Monetary
		}
		return rows[i].CustomerID < rows[j].CustomerID
	})
	return rows
}

// assignNtile 按NTILE(k)把n行分到k个分位，前面的分位多分到余数行
func assignNtile(n, k int, assign func(pos, tile int)) {
	base := n / k
	extra := n % k
	pos := 0
	for tile := 1; tile <= k; tile++ {
		size := base
		if tile <= extra {
			size++
		}
		for i := 0; i < size && pos < n; i++ {
			assign(pos, tile)
			pos++
		}
	}
	// n < k 时后面的分位为空，已分配的行已覆盖全部n行
}

func scoreRecency(days int) int {
	switch {
	case days <= 30:
		return 5
	case days <= 90:
		return 4
	case days <= 180:
		return 3
	case days <= 365:
		return 2
	default:
		return 1
	}
}

func scoreFrequency(orders int) int {
	switch {
	case orders >= 20:
		return 5
	case orders >= 11:
		return 4
	case orders >= 6:
		return 3
	case orders >= 3:
		return 2
	default:
		return 1
	}
}

func rfmSegment(score int) string {
	switch {
	case score >= 12:
		return RFMChampions
	case score >= 9:
		return RFMLoyal
	case score >= 6:
		return RFMAtRisk
	default:
		return RFMLost
	}
}
