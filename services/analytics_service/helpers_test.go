package analytics_service

import (
	"testing"
	"time"

	"ecom-insight/model/store_model"
	"ecom-insight/services/ingest_service"

	"github.com/shopspring/decimal"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func amt(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return d
}

func cust(id int, name, city string) store_model.Customer {
	return store_model.Customer{CustomerID: id, Name: name, City: city, SignupDate: day(2024, 1, 1)}
}

func ord(id, cid int, date time.Time, amount string) store_model.Order {
	return store_model.Order{
		OrderID:       id,
		CustomerID:    cid,
		OrderDate:     date,
		OrderAmount:   amt(amount),
		PaymentMethod: store_model.PaymentUPI,
	}
}

// newService 构建快照与分析引擎，时钟固定为 2024-07-01
func newService(t *testing.T, customers []store_model.Customer, orders []store_model.Order, items []store_model.OrderItem) *AnalyticsService {
	t.Helper()
	snap, err := ingest_service.BuildSnapshot(customers, orders, items)
	if err != nil {
		t.Fatalf("构建快照失败: %v", err)
	}
	return NewAnalyticsService(snap, DefaultParams(day(2024, 7, 1)))
}

func newServiceWithParams(t *testing.T, customers []store_model.Customer, orders []store_model.Order, items []store_model.OrderItem, params Params) *AnalyticsService {
	t.Helper()
	snap, err := ingest_service.BuildSnapshot(customers, orders, items)
	if err != nil {
		t.Fatalf("构建快照失败: %v", err)
	}
	return NewAnalyticsService(snap, params)
}

func floatEq(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < 0.005
}

func wantPct(t *testing.T, got *float64, want float64, label string) {
	t.Helper()
	if got == nil {
		t.Fatalf("%s 应有值, got nil", label)
	}
	if !floatEq(*got, want) {
		t.Errorf("%s = %v, want %v", label, *got, want)
	}
}
