package ingest_service

import (
	"errors"
	"testing"
	"time"

	"ecom-insight/model/store_model"

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

func validCustomers() []store_model.Customer {
	return []store_model.Customer{
		{CustomerID: 1, Name: "Asha", SignupDate: day(2024, 1, 1), City: "Mumbai"},
		{CustomerID: 2, Name: "Ravi", SignupDate: day(2024, 1, 10), City: "Delhi"},
	}
}

func validOrders() []store_model.Order {
	return []store_model.Order{
		{OrderID: 10, CustomerID: 1, OrderDate: day(2024, 2, 5), OrderAmount: amt("100.00"), PaymentMethod: store_model.PaymentUPI},
		{OrderID: 11, CustomerID: 2, OrderDate: day(2024, 2, 7), OrderAmount: amt("250.50"), PaymentMethod: store_model.PaymentCard},
	}
}

func validItems() []store_model.OrderItem {
	return []store_model.OrderItem{
		{OrderItemID: 100, OrderID: 10, ProductCategory: "Books", Quantity: 2, Price: amt("50.00")},
		{OrderItemID: 101, OrderID: 11, ProductCategory: "Fashion", Quantity: 1, Price: amt("250.50")},
	}
}

func TestBuildSnapshotValid(t *testing.T) {
	snap, err := BuildSnapshot(validCustomers(), validOrders(), validItems())
	if err != nil {
		t.Fatalf("合法输入不应报错: %v", err)
	}
	if len(snap.CustomerByID) != 2 {
		t.Errorf("CustomerByID 数量 = %d, want 2", len(snap.CustomerByID))
	}
	if len(snap.OrdersByCust[1]) != 1 || len(snap.OrdersByCust[2]) != 1 {
		t.Errorf("OrdersByCust 索引错误: %v", snap.OrdersByCust)
	}
	if len(snap.ItemsByOrder[10]) != 1 {
		t.Errorf("ItemsByOrder 索引错误: %v", snap.ItemsByOrder)
	}
	if snap.Fingerprint() == "" {
		t.Error("指纹不应为空")
	}
}

func TestBuildSnapshotRejections(t *testing.T) {
	cases := []struct {
		name      string
		customers []store_model.Customer
		orders    []store_model.Order
		items     []store_model.OrderItem
		entity    string
	}{
		{
			name:      "客户主键重复",
			customers: append(validCustomers(), store_model.Customer{CustomerID: 1, Name: "Dup"}),
			orders:    validOrders(),
			items:     validItems(),
			entity:    "customer",
		},
		{
			name:      "订单主键重复",
			customers: validCustomers(),
			orders: append(validOrders(),
				store_model.Order{OrderID: 10, CustomerID: 1, OrderDate: day(2024, 3, 1), OrderAmount: amt("1.00"), PaymentMethod: store_model.PaymentUPI}),
			items:  validItems(),
			entity: "order",
		},
		{
			name:      "订单引用不存在的客户",
			customers: validCustomers(),
			orders: append(validOrders(),
				store_model.Order{OrderID: 12, CustomerID: 99, OrderDate: day(2024, 3, 1), OrderAmount: amt("1.00"), PaymentMethod: store_model.PaymentUPI}),
			items:  validItems(),
			entity: "order",
		},
		{
			name:      "订单金额为负",
			customers: validCustomers(),
			orders: append(validOrders(),
				store_model.Order{OrderID: 12, CustomerID: 1, OrderDate: day(2024, 3, 1), OrderAmount: amt("-5.00"), PaymentMethod: store_model.PaymentUPI}),
			items:  validItems(),
			entity: "order",
		},
		{
			name:      "未知支付方式",
			customers: validCustomers(),
			orders: append(validOrders(),
				store_model.Order{OrderID: 12, CustomerID: 1, OrderDate: day(2024, 3, 1), OrderAmount: amt("5.00"), PaymentMethod: "Cheque"}),
			items:  validItems(),
			entity: "order",
		},
		{
			name:      "明细主键重复",
			customers: validCustomers(),
			orders:    validOrders(),
			items: append(validItems(),
				store_model.OrderItem{OrderItemID: 100, OrderID: 10, Quantity: 1, Price: amt("1.00")}),
			entity: "order_item",
		},
		{
			name:      "明细引用不存在的订单",
			customers: validCustomers(),
			orders:    validOrders(),
			items: append(validItems(),
				store_model.OrderItem{OrderItemID: 102, OrderID: 999, Quantity: 1, Price: amt("1.00")}),
			entity: "order_item",
		},
		{
			name:      "明细数量为零",
			customers: validCustomers(),
			orders:    validOrders(),
			items: append(validItems(),
				store_model.OrderItem{OrderItemID: 102, OrderID: 10, Quantity: 0, Price: amt("1.00")}),
			entity: "order_item",
		},
		{
			name:      "明细单价为负",
			customers: validCustomers(),
			orders:    validOrders(),
			items: append(validItems(),
				store_model.OrderItem{OrderItemID: 102, OrderID: 10, Quantity: 1, Price: amt("-1.00")}),
			entity: "order_item",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := BuildSnapshot(c.customers, c.orders, c.items)
			if err == nil {
				t.Fatal("应当整体拒绝")
			}
			var ie *IntegrityError
			if !errors.As(err, &ie) {
				t.Fatalf("错误类型应为 IntegrityError, got %T", err)
			}
			if ie.Entity != c.entity {
				t.Errorf("Entity = %q, want %q", ie.Entity, c.entity)
			}
		})
	}
}

func TestOrdersByCustSorted(t *testing.T) {
	customers := []store_model.Customer{{CustomerID: 1, Name: "Asha"}}
	orders := []store_model.Order{
		{OrderID: 3, CustomerID: 1, OrderDate: day(2024, 3, 1), OrderAmount: amt("1.00"), PaymentMethod: store_model.PaymentUPI},
		{OrderID: 2, CustomerID: 1, OrderDate: day(2024, 1, 1), OrderAmount: amt("1.00"), PaymentMethod: store_model.PaymentUPI},
		{OrderID: 1, CustomerID: 1, OrderDate: day(2024, 3, 1), OrderAmount: amt("1.00"), PaymentMethod: store_model.PaymentUPI},
	}
	snap, err := BuildSnapshot(customers, orders, nil)
	if err != nil {
		t.Fatal(err)
	}

	got := snap.OrdersByCust[1]
	wantIDs := []int{2, 1, 3} // 日期升序，同日期按order_id升序
	for i, want := range wantIDs {
		if got[i].OrderID != want {
			t.Errorf("位置 %d 的 order_id = %d, want %d", i, got[i].OrderID, want)
		}
	}
}

func TestLoadFromSliceSource(t *testing.T) {
	src := &SliceSource{
		Customers:  validCustomers(),
		Orders:     validOrders(),
		OrderItems: validItems(),
	}
	snap, err := Load(src)
	if err != nil {
		t.Fatalf("Load 失败: %v", err)
	}
	if len(snap.Orders) != 2 {
		t.Errorf("订单数 = %d, want 2", len(snap.Orders))
	}
}

func TestFingerprintDeterministic(t *testing.T) {
	a, err := BuildSnapshot(validCustomers(), validOrders(), validItems())
	if err != nil {
		t.Fatal(err)
	}
	b, err := BuildSnapshot(validCustomers(), validOrders(), validItems())
	if err != nil {
		t.Fatal(err)
	}
	if a.Fingerprint() != b.Fingerprint() {
		t.Errorf("相同数据的指纹应一致: %s vs %s", a.Fingerprint(), b.Fingerprint())
	}

	orders := validOrders()
	orders[0].OrderAmount = amt("100.01")
	c, err := BuildSnapshot(validCustomers(), orders, validItems())
	if err != nil {
		t.Fatal(err)
	}
	if c.Fingerprint() == a.Fingerprint() {
		t.Error("金额变化后指纹应不同")
	}
}

func TestFixtureSourceDeterministic(t *testing.T) {
	opts := DefaultFixtureOptions(7)
	opts.CustomerCount = 30

	first, err := Load(NewFixtureSource(opts))
	if err != nil {
		t.Fatalf("合成数据应通过完整性校验: %v", err)
	}
	second, err := Load(NewFixtureSource(opts))
	if err != nil {
		t.Fatal(err)
	}
	if first.Fingerprint() != second.Fingerprint() {
		t.Error("相同种子的合成数据指纹应一致")
	}
	if len(first.Customers) != 30 {
		t.Errorf("客户数 = %d, want 30", len(first.Customers))
	}
}
