package analytics_service

import (
	"ecom-insight/services/ingest_service"

	"github.com/shopspring/decimal"
)

// 报表名称
const (
	ReportMonthlyTrend     = "monthly_trend"
	ReportRevenueSplit     = "revenue_split"
	ReportOrderGaps        = "order_gaps"
	ReportEarlyChurn       = "early_churn"
	ReportMonthlyRetention = "monthly_retention"
	ReportSpendSegments    = "spend_segments"
	ReportCohortMatrix     = "cohort_matrix"
	ReportCohortSummary    = "cohort_summary"
	ReportConcentration    = "revenue_concentration"
	ReportAtRisk           = "at_risk_customers"
	ReportRetentionROI     = "retention_roi"
	ReportTopCustomers     = "top_customers"
	ReportAOV              = "aov"
	ReportPaymentMix       = "payment_mix"
	ReportCategories       = "category_performance"
	ReportCityRevenue      = "city_revenue"
	ReportNewVsReturning   = "new_vs_returning"
	ReportOrderValueDist   = "order_value_distribution"
	ReportRFM              = "rfm_segments"
	ReportCustomerSummary  = "customer_summary"
)

// AnalyticsService 分析引擎，持有只读快照与聚合结果
type AnalyticsService struct {
	snap   *ingest_service.Snapshot
	agg    *Aggregates
	params Params
}

// NewAnalyticsService 构建分析引擎，聚合层在此完成，之后所有报表只读
func NewAnalyticsService(snap *ingest_service.Snapshot, params Params) *AnalyticsService {
	return &AnalyticsService{
		snap:   snap,
		agg:    BuildAggregates(snap),
		params: params,
	}
}

// Aggregates 暴露聚合层输出，测试用
func (s *AnalyticsService) Aggregates() *Aggregates {
	return s.agg
}

// NamedReport 一个可独立计算的报表
type NamedReport struct {
	Name    string
	Compute func() (interface{}, error)
}

// Reports 全部报表的注册表，各报表互不依赖，可并行计算
func (s *AnalyticsService) Reports() []NamedReport {
	return []NamedReport{
		{ReportMonthlyTrend, func() (interface{}, error) { return s.MonthlyTrend(), nil }},
		{ReportRevenueSplit, func() (interface{}, error) { return s.RevenueSplit(), nil }},
		{ReportOrderGaps, func() (interface{}, error) { return s.OrderGaps(), nil }},
		{ReportEarlyChurn, func() (interface{}, error) { return s.EarlyChurn(), nil }},
		{ReportMonthlyRetention, func() (interface{}, error) { return s.MonthlyRetention(), nil }},
		{ReportSpendSegments, func() (interface{}, error) { return s.SpendSegments(), nil }},
		{ReportCohortMatrix, func() (interface{}, error) { return s.CohortMatrix(), nil }},
		{ReportCohortSummary, func() (interface{}, error) { return s.CohortSummary(), nil }},
		{ReportConcentration, func() (interface{}, error) { return s.RevenueConcentration(), nil }},
		{ReportAtRisk, func() (interface{}, error) { return s.AtRiskCustomers(), nil }},
		{ReportRetentionROI, func() (interface{}, error) { return s.RetentionROI(), nil }},
		{ReportTopCustomers, func() (interface{}, error) { return s.TopCustomers(), nil }},
		{ReportAOV, func() (interface{}, error) { return s.AOV(), nil }},
		{ReportPaymentMix, func() (interface{}, error) { return s.PaymentMix(), nil }},
		{ReportCategories, func() (interface{}, error) { return s.CategoryPerformance(), nil }},
		{ReportCityRevenue, func() (interface{}, error) { return s.CityRevenue(), nil }},
		{ReportNewVsReturning, func() (interface{}, error) { return s.NewVsReturning(), nil }},
		{ReportOrderValueDist, func() (interface{}, error) { return s.OrderValueDistribution(), nil }},
		{ReportRFM, func() (interface{}, error) { return s.RFMSegments(), nil }},
		{ReportCustomerSummary, func() (interface{}, error) { return s.CustomerSummaries(), nil }},
	}
}

// Report 按名称计算单个报表，未知名称返回 (nil, false)
func (s *AnalyticsService) Report(name string) (interface{}, bool) {
	for _, r := range s.Reports() {
		if r.Name == name {
			rows, err := r.Compute()
			if err != nil {
				return nil, false
			}
			return rows, true
		}
	}
	return nil, false
}

var hundred = decimal.NewFromInt(100)

// pctPtr 百分比除法保护，分母为零返回 nil 而不是 NaN
func pctPtr(num, den decimal.Decimal) *float64 {
	if den.IsZero() {
		return nil
	}
	v := num.Div(den).Mul(hundred).Round(2).InexactFloat64()
	return &v
}

// round2 金额保留两位小数转 float64
func round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
