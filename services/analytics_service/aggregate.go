package analytics_service

import (
	"sort"
	"time"

	"ecom-insight/services/ingest_service"
	"ecom-insight/utils"

	"github.com/shopspring/decimal"
)

// CustomerSummary 单客户订单汇总，无订单客户不出现在任何派生结构中
type CustomerSummary struct {
	CustomerID      int
	Name            string
	City            string
	OrderCount      int
	LifetimeRevenue decimal.Decimal
	FirstOrderDate  time.Time
	LastOrderDate   time.Time
	AvgOrderValue   decimal.Decimal
}

// MonthRevenue 单个自然月的收入汇总
type MonthRevenue struct {
	Month           time.Time
	Revenue         decimal.Decimal
	Orders          int
	ActiveCustomers int
}

// Aggregates 聚合层输出，构建完成后只读，所有报表模块共用
type Aggregates struct {
	SummaryByCustomer map[int]*CustomerSummary
	Monthly           []MonthRevenue // 按月份升序
	FirstOrderMonth   map[int]time.Time
	ActiveByMonth     map[time.Time]map[int]bool
	TotalRevenue      decimal.Decimal
	TotalOrders       int
}

// BuildAggregates 单趟扫描订单构建全部聚合结构
func BuildAggregates(snap *ingest_service.Snapshot) *Aggregates {
	agg := &Aggregates{
		SummaryByCustomer: make(map[int]*CustomerSummary),
		FirstOrderMonth:   make(map[int]time.Time),
		ActiveByMonth:     make(map[time.Time]map[int]bool),
		TotalRevenue:      decimal.Zero,
	}

	monthly := make(map[time.Time]*MonthRevenue)

	for _, o := range snap.Orders {
		// 客户汇总
		s, ok := agg.SummaryByCustomer[o.CustomerID]
		if !ok {
			c := snap.CustomerByID[o.CustomerID]
			s = &CustomerSummary{
				CustomerID:      o.CustomerID,
				Name:            c.Name,
				City:            c.City,
				LifetimeRevenue: decimal.Zero,
				FirstOrderDate:  o.OrderDate,
				LastOrderDate:   o.OrderDate,
			}
			agg.SummaryByCustomer[o.CustomerID] = s
		}
		s.OrderCount++
		s.LifetimeRevenue = s.LifetimeRevenue.Add(o.OrderAmount)
		if o.OrderDate.Before(s.FirstOrderDate) {
			s.FirstOrderDate = o.OrderDate
		}
		if o.OrderDate.After(s.LastOrderDate) {
			s.LastOrderDate = o.OrderDate
		}

		// 月度汇总
		month := utils.TruncateToMonth(o.OrderDate)
		m, ok := monthly[month]
		if !ok {
			m = &MonthRevenue{Month: month, Revenue: decimal.Zero}
			monthly[month] = m
		}
		m.Revenue = m.Revenue.Add(o.OrderAmount)
		m.Orders++

		// 月度活跃客户
		active, ok := agg.ActiveByMonth[month]
		if !ok {
			active = make(map[int]bool)
			agg.ActiveByMonth[month] = active
		}
		active[o.CustomerID] = true

		agg.TotalRevenue = agg.TotalRevenue.Add(o.OrderAmount)
		agg.TotalOrders++
	}

	// 客单价与首单月份，OrderCount 恒为正，不需要除零保护
	for cid, s := range agg.SummaryByCustomer {
		s.AvgOrderValue = s.LifetimeRevenue.Div(decimal.NewFromInt(int64(s.OrderCount)))
		agg.FirstOrderMonth[cid] = utils.TruncateToMonth(s.FirstOrderDate)
	}

	// 月份升序排列
	agg.Monthly = make([]MonthRevenue, 0, len(monthly))
	for month, m := range monthly {
		m.ActiveCustomers = len(agg.ActiveByMonth[month])
		agg.Monthly = append(agg.Monthly, *m)
	}
	sort.Slice(agg.Monthly, func(i, j int) bool {
		return agg.Monthly[i].Month.Before(agg.Monthly[j].Month)
	})

	return agg
}

// SortedCustomerIDs 有订单客户ID升序列表，报表输出顺序确定性用
func (a *Aggregates) SortedCustomerIDs() []int {
	ids := make([]int, 0, len(a.SummaryByCustomer))
	for cid := range a.SummaryByCustomer {
		ids = append(ids, cid)
	}
	sort.Ints(ids)
	return ids
}
