package analytics_service

import (
	"time"

	"ecom-insight/pkg/config"

	"github.com/shopspring/decimal"
)

// Params 分析参数，全部可配置，Now 为注入时钟保证结果可复现
type Params struct {
	TopCustomerCount int
	AtRiskDays       int
	RetentionUplift  decimal.Decimal
	SpendSegmentLow  decimal.Decimal
	SpendSegmentHigh decimal.Decimal
	BucketSize       decimal.Decimal
	Now              time.Time
}

// ParamsFromConfig 从配置构建分析参数
func ParamsFromConfig(cfg config.AnalyticsConfig, now time.Time) Params {
	return Params{
		TopCustomerCount: cfg.TopCustomerCount,
		AtRiskDays:       cfg.AtRiskDays,
		RetentionUplift:  decimal.NewFromFloat(cfg.RetentionUplift),
		SpendSegmentLow:  decimal.NewFromFloat(cfg.SpendSegmentLow),
		SpendSegmentHigh: decimal.NewFromFloat(cfg.SpendSegmentHigh),
		BucketSize:       decimal.NewFromFloat(cfg.BucketSize),
		Now:              now,
	}
}

// DefaultParams 默认分析参数，测试用
func DefaultParams(now time.Time) Params {
	return Params{
		TopCustomerCount: 10,
		AtRiskDays:       60,
		RetentionUplift:  decimal.NewFromFloat(0.05),
		SpendSegmentLow:  decimal.NewFromInt(1000),
		SpendSegmentHigh: decimal.NewFromInt(3000),
		BucketSize:       decimal.NewFromInt(500),
		Now:              now,
	}
}
