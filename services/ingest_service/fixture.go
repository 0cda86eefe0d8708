package ingest_service

import (
	"fmt"
	"math/rand"
	"time"

	"ecom-insight/model/store_model"

	"github.com/shopspring/decimal"
)

// 合成数据取值范围
var (
	fixtureCities = []string{"Mumbai", "Delhi", "Bengaluru", "Chennai", "Kolkata", "Pune", "Hyderabad", "Ahmedabad"}

	fixtureCategories = []string{"Electronics", "Fashion", "Grocery", "Books", "Beauty", "Sports", "Home"}

	fixturePayments = []string{
		store_model.PaymentUPI,
		store_model.PaymentCard,
		store_model.PaymentWallet,
		store_model.PaymentCOD,
	}
)

// FixtureOptions 合成数据参数
type FixtureOptions struct {
	Seed          int64
	CustomerCount int
	MaxOrders     int // 每个客户最多订单数，含0单客户
	MaxItems      int // 每个订单最多明细行数
	Start         time.Time
	End           time.Time
}

// DefaultFixtureOptions 默认合成数据参数
func DefaultFixtureOptions(seed int64) FixtureOptions {
	return FixtureOptions{
		Seed:          seed,
		CustomerCount: 200,
		MaxOrders:     8,
		MaxItems:      4,
		Start:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:           time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
	}
}

// FixtureSource 确定性的合成数据来源，种子相同则数据相同
type FixtureSource struct {
	opts FixtureOptions

	customers  []store_model.Customer
	orders     []store_model.Order
	orderItems []store_model.OrderItem
}

// NewFixtureSource 按参数生成合成数据
func NewFixtureSource(opts FixtureOptions) *FixtureSource {
	if opts.CustomerCount <= 0 {
		opts.CustomerCount = 200
	}
	if opts.MaxOrders <= 0 {
		opts.MaxOrders = 8
	}
	if opts.MaxItems <= 0 {
		opts.MaxItems = 4
	}
	if opts.End.Before(opts.Start) {
		opts.Start, opts.End = opts.End, opts.Start
	}

	src := &FixtureSource{opts: opts}
	src.generate()
	return src
}

func (s *FixtureSource) LoadCustomers() ([]store_model.Customer, error) {
	return s.customers, nil
}

func (s *FixtureSource) LoadOrders() ([]store_model.Order, error) {
	return s.orders, nil
}

func (s *FixtureSource) LoadOrderItems() ([]store_model.OrderItem, error) {
	return s.orderItems, nil
}

// generate 生成三张表的数据，全部用注入种子保证可复现
func (s *FixtureSource) generate() {
	rng := rand.New(rand.NewSource(s.opts.Seed))
	spanDays := utilsDaysSpan(s.opts.Start, s.opts.End)

	orderID := 0
	itemID := 0
	for cid := 1; cid <= s.opts.CustomerCount; cid++ {
		signup := s.opts.Start.AddDate(0, 0, rng.Intn(spanDays))
		s.customers = append(s.customers, store_model.Customer{
			CustomerID: cid,
			Name:       fmt.Sprintf("Customer %03d", cid),
			SignupDate: signup,
			City:       fixtureCities[rng.Intn(len(fixtureCities))],
		})

		// 允许0单客户，聚合层边界用例依赖这一点
		orderCount := rng.Intn(s.opts.MaxOrders + 1)
		for n := 0; n < orderCount; n++ {
			orderID++
			remaining := utilsDaysSpan(signup, s.opts.End)
			orderDate := signup.AddDate(0, 0, rng.Intn(remaining))

			// 金额范围 50.00 ~ 5049.99
			amount := decimal.NewFromInt(int64(rng.Intn(500000) + 5000)).Div(decimal.NewFromInt(100))

			s.orders = append(s.orders, store_model.Order{
				OrderID:       orderID,
				CustomerID:    cid,
				OrderDate:     orderDate,
				OrderAmount:   amount,
				PaymentMethod: fixturePayments[rng.Intn(len(fixturePayments))],
			})

			itemCount := rng.Intn(s.opts.MaxItems) + 1
			for k := 0; k < itemCount; k++ {
				itemID++
				price := decimal.NewFromInt(int64(rng.Intn(200000) + 1000)).Div(decimal.NewFromInt(100))
				s.orderItems = append(s.orderItems, store_model.OrderItem{
					OrderItemID:     itemID,
					OrderID:         orderID,
					ProductCategory: fixtureCategories[rng.Intn(len(fixtureCategories))],
					Quantity:        rng.Intn(5) + 1,
					Price:           price,
				})
			}
		}
	}
}

// utilsDaysSpan 两个日期之间的天数，至少为1，Intn的参数不能为0
func utilsDaysSpan(start, end time.Time) int {
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	return days
}
