package analytics_service

import (
	"fmt"
	"sort"

	"ecom-insight/inout"

	"github.com/shopspring/decimal"
)

// PaymentMix 支付方式构成：订单数、收入与收入占比
func (s *AnalyticsService) PaymentMix() []inout.PaymentMixRow {
	type stat struct {
		orders  int
		revenue decimal.Decimal
	}
	stats := make(map[string]*stat)

	for _, o := range s.snap.Orders {
		st, ok := stats[o.PaymentMethod]
		if !ok {
			st = &stat{revenue: decimal.Zero}
			stats[o.PaymentMethod] = st
		}
		st.orders++
		st.revenue = st.revenue.Add(o.OrderAmount)
	}

	rows := make([]inout.PaymentMixRow, 0, len(stats))
	for method, st := range stats {
		rows = append(rows, inout.PaymentMixRow{
			Method:          method,
			Orders:          st.orders,
			Revenue:         round2(st.revenue),
			RevenueSharePct: pctPtr(st.revenue, s.agg.TotalRevenue),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Revenue != rows[j].Revenue {
			return rows[i].Revenue > rows[j].Revenue
		}
		return rows[i].Method < rows[j].Method
	})
	return rows
}

// CategoryPerformance 品类表现。收入口径为明细行 price*quantity，
// 与订单金额口径相互独立，不做对账。
func (s *AnalyticsService) CategoryPerformance() []inout.CategoryRow {
	type stat struct {
		units   int
		revenue decimal.Decimal
		orders  map[int]bool
	}
	stats := make(map[string]*stat)

	for _, it := range s.snap.OrderItems {
		st, ok := stats[it.ProductCategory]
		if !ok {
			st = &stat{revenue: decimal.Zero, orders: make(map[int]bool)}
			stats[it.ProductCategory] = st
		}
		st.units += it.Quantity
		st.revenue = st.revenue.Add(it.LineRevenue())
		st.orders[it.OrderID] = true
	}

	rows := make([]inout.CategoryRow, 0, len(stats))
	for category, st := range stats {
		rows = append(rows, inout.CategoryRow{
			Category: category,
			Units:    st.units,
			Orders:   len(st.orders),
			Revenue:  round2(st.revenue),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Revenue != rows[j].Revenue {
			return rows[i].Revenue > rows[j].Revenue
		}
		return rows[i].Category < rows[j].Category
	})
	return rows
}

// CityRevenue 城市维度：注册客户数、有订单客户数与收入
func (s *AnalyticsService) CityRevenue() []inout.CityRow {
	type stat struct {
		customers int
		buyers    int
		revenue   decimal.Decimal
	}
	stats := make(map[string]*stat)

	for _, c := range s.snap.Customers {
		st, ok := stats[c.City]
		if !ok {
			st = &stat{revenue: decimal.Zero}
			stats[c.City] = st
		}
		st.customers++
		if sum, has := s.agg.SummaryByCustomer[c.CustomerID]; has {
			st.buyers++
			st.revenue = st.revenue.Add(sum.LifetimeRevenue)
		}
	}

	rows := make([]inout.CityRow, 0, len(stats))
	for city, st := range stats {
		rows = append(rows, inout.CityRow{
			City:      city,
			Customers: st.customers,
			Buyers:    st.buyers,
			Revenue:   round2(st.revenue),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Revenue != rows[j].Revenue {
			return rows[i].Revenue > rows[j].Revenue
		}
		return rows[i].City < rows[j].City
	})
	return rows
}

// OrderValueDistribution 订单金额按固定桶宽的分布
func (s *AnalyticsService) OrderValueDistribution() []inout.OrderValueBucketRow {
	type stat struct {
		orders  int
		revenue decimal.Decimal
	}
	stats := make(map[int64]*stat)

	for _, o := range s.snap.Orders {
		idx := o.OrderAmount.Div(s.params.BucketSize).IntPart()
		st, ok := stats[idx]
		if !ok {
			st = &stat{revenue: decimal.Zero}
			stats[idx] = st
		}
		st.orders++
		st.revenue = st.revenue.Add(o.OrderAmount)
	}

	indexes := make([]int64, 0, len(stats))
	for idx := range stats {
		indexes = append(indexes, idx)
	}
	sort.Slice(indexes, func(i, j int) bool { return indexes[i] < indexes[j] })

	rows := make([]inout.OrderValueBucketRow, 0, len(indexes))
	for _, idx := range indexes {
		st := stats[idx]
		lo := s.params.BucketSize.Mul(decimal.NewFromInt(idx))
		hi := lo.Add(s.params.BucketSize)
		rows = append(rows, inout.OrderValueBucketRow{
			Bucket:  fmt.Sprintf("%s-%s", lo.StringFixed(0), hi.StringFixed(0)),
			Orders:  st.orders,
			Revenue: round2(st.revenue),
		})
	}
	return rows
}
