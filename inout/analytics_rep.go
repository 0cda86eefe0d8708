package inout

// MonthlyTrendRow 月度收入趋势行，首月环比增长为 null
type MonthlyTrendRow struct {
	Month           string   `json:"month"`
	Revenue         float64  `json:"revenue"`
	Orders          int      `json:"orders"`
	ActiveCustomers int      `json:"active_customers"`
	GrowthPct       *float64 `json:"growth_pct"`
}

// RevenueSplitRep 复购与单次客户收入拆分
type RevenueSplitRep struct {
	RepeatCustomers  int      `json:"repeat_customers"`
	RepeatRevenue    float64  `json:"repeat_revenue"`
	OneTimeCustomers int      `json:"one_time_customers"`
	OneTimeRevenue   float64  `json:"one_time_revenue"`
	TotalRevenue     float64  `json:"total_revenue"`
	RepeatSharePct   *float64 `json:"repeat_share_pct"`
}

// OrderGapRow 客户订单平均间隔天数，单订单客户不出现
type OrderGapRow struct {
	CustomerID int     `json:"customer_id"`
	Name       string  `json:"name"`
	OrderCount int     `json:"order_count"`
	AvgGapDays float64 `json:"avg_gap_days"`
}

// ChurnRep 早期流失率
type ChurnRep struct {
	CustomersWithOrders int      `json:"customers_with_orders"`
	OneOrderCustomers   int      `json:"one_order_customers"`
	EarlyChurnRatePct   *float64 `json:"early_churn_rate_pct"`
}

// RetentionRow 月度留存率，上月活跃且本月仍活跃
type RetentionRow struct {
	Month            string   `json:"month"`
	ActiveCustomers  int      `json:"active_customers"`
	Retained         int      `json:"retained"`
	RetentionRatePct *float64 `json:"retention_rate_pct"`
}

// SpendSegmentRow 首月消费分档及各档留存
type SpendSegmentRow struct {
	Segment          string   `json:"segment"`
	Customers        int      `json:"customers"`
	Retained         int      `json:"retained"`
	RetentionRatePct *float64 `json:"retention_rate_pct"`
	FirstMonthSpend  float64  `json:"first_month_spend"`
}

// CohortCellRow 同期群留存矩阵单元格，activity_month >= cohort_month
type CohortCellRow struct {
	CohortMonth     string `json:"cohort_month"`
	ActivityMonth   string `json:"activity_month"`
	ActiveCustomers int    `json:"active_customers"`
}

// CohortSummaryRow 同期群首月收入与次月留存
type CohortSummaryRow struct {
	CohortMonth           string   `json:"cohort_month"`
	NewCustomers          int      `json:"new_customers"`
	FirstMonthRevenue     float64  `json:"first_month_revenue"`
	RunningTotalCustomers int      `json:"running_total_customers"`
	RetainedNextMonth     int      `json:"retained_next_month"`
	NextMonthRetentionPct *float64 `json:"next_month_retention_pct"`
}

// ConcentrationRep 收入集中度，前N名客户收入占比
type ConcentrationRep struct {
	TopN         int      `json:"top_n"`
	TopCustomers int      `json:"top_customers"`
	TopRevenue   float64  `json:"top_revenue"`
	TotalRevenue float64  `json:"total_revenue"`
	TopSharePct  *float64 `json:"top_share_pct"`
}

// AtRiskRow 高价值流失风险客户
type AtRiskRow struct {
	CustomerID         int     `json:"customer_id"`
	Name               string  `json:"name"`
	City               string  `json:"city"`
	LifetimeRevenue    float64 `json:"lifetime_revenue"`
	LastOrderDate      string  `json:"last_order_date"`
	DaysSinceLastOrder int     `json:"days_since_last_order"`
}

// RetentionROIRep 留存提升收益预估
type RetentionROIRep struct {
	TotalCustomers   int     `json:"total_customers"`
	RepeatCustomers  int     `json:"repeat_customers"`
	AvgRepeatRevenue float64 `json:"avg_repeat_revenue"`
	UpliftRate       float64 `json:"uplift_rate"`
	ProjectedUplift  float64 `json:"projected_uplift"`
}

// TopCustomerRow 客户生命周期价值排名
type TopCustomerRow struct {
	Rank            int     `json:"rank"`
	CustomerID      int     `json:"customer_id"`
	Name            string  `json:"name"`
	City            string  `json:"city"`
	Orders          int     `json:"orders"`
	LifetimeRevenue float64 `json:"lifetime_revenue"`
	AvgOrderValue   float64 `json:"avg_order_value"`
}

// MonthAOVRow 月度客单价
type MonthAOVRow struct {
	Month   string  `json:"month"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
	AOV     float64 `json:"aov"`
}

// AOVRep 客单价报表
type AOVRep struct {
	OverallAOV  *float64      `json:"overall_aov"`
	TotalOrders int           `json:"total_orders"`
	Monthly     []MonthAOVRow `json:"monthly"`
}

// PaymentMixRow 支付方式收入构成
type PaymentMixRow struct {
	Method          string   `json:"method"`
	Orders          int      `json:"orders"`
	Revenue         float64  `json:"revenue"`
	RevenueSharePct *float64 `json:"revenue_share_pct"`
}

// CategoryRow 品类表现，收入口径为明细行 price*quantity
type CategoryRow struct {
	Category string  `json:"category"`
	Units    int     `json:"units"`
	Orders   int     `json:"orders"`
	Revenue  float64 `json:"revenue"`
}

// CityRow 城市维度收入
type CityRow struct {
	City      string  `json:"city"`
	Customers int     `json:"customers"`
	Buyers    int     `json:"buyers"`
	Revenue   float64 `json:"revenue"`
}

// NewVsReturningRow 每月新客与回头客
type NewVsReturningRow struct {
	Month              string `json:"month"`
	NewCustomers       int    `json:"new_customers"`
	ReturningCustomers int    `json:"returning_customers"`
}

// OrderValueBucketRow 订单金额分布
type OrderValueBucketRow struct {
	Bucket  string  `json:"bucket"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// RFMRow 客户RFM评分与分层
type RFMRow struct {
	CustomerID     int     `json:"customer_id"`
	Name           string  `json:"name"`
	RecencyDays    int     `json:"recency_days"`
	Frequency      int     `json:"frequency"`
	Monetary       float64 `json:"monetary"`
	RecencyScore   int     `json:"recency_score"`
	FrequencyScore int     `json:"frequency_score"`
	MonetaryScore  int     `json:"monetary_score"`
	RFMScore       int     `json:"rfm_score"`
	Segment        string  `json:"segment"`
}

// CustomerSummaryRow 客户订单汇总
type CustomerSummaryRow struct {
	CustomerID      int     `json:"customer_id"`
	Name            string  `json:"name"`
	City            string  `json:"city"`
	OrderCount      int     `json:"order_count"`
	LifetimeRevenue float64 `json:"lifetime_revenue"`
	FirstOrderDate  string  `json:"first_order_date"`
	LastOrderDate   string  `json:"last_order_date"`
	AvgOrderValue   float64 `json:"avg_order_value"`
}
