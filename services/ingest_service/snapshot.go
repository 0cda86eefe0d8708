package ingest_service

import (
	"fmt"
	"hash/fnv"
	"sort"

	"ecom-insight/model/store_model"
)

// IntegrityError 引用完整性错误，摄入阶段整体拒绝
type IntegrityError struct {
	Entity string // 出错实体
	ID     int    // 出错记录主键
	Reason string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("integrity error: %s(%d): %s", e.Entity, e.ID, e.Reason)
}

// Snapshot 三张表的只读快照，构建完成后不再变更
type Snapshot struct {
	Customers  []store_model.Customer
	Orders     []store_model.Order
	OrderItems []store_model.OrderItem

	// 索引，构建时生成
	CustomerByID map[int]store_model.Customer
	OrdersByCust map[int][]store_model.Order
	ItemsByOrder map[int][]store_model.OrderItem
	fingerprint  string
}

// Load 从数据来源一次性加载并构建快照
func Load(src Source) (*Snapshot, error) {
	customers, err := src.LoadCustomers()
	if err != nil {
		return nil, fmt.Errorf("加载客户失败: %w", err)
	}
	orders, err := src.LoadOrders()
	if err != nil {
		return nil, fmt.Errorf("加载订单失败: %w", err)
	}
	items, err := src.LoadOrderItems()
	if err != nil {
		return nil, fmt.Errorf("加载订单明细失败: %w", err)
	}
	return BuildSnapshot(customers, orders, items)
}

// BuildSnapshot 校验引用完整性并构建快照，任何违规都拒绝整个加载
func BuildSnapshot(customers []store_model.Customer, orders []store_model.Order, items []store_model.OrderItem) (*Snapshot, error) {
	snap := &Snapshot{
		Customers:    customers,
		Orders:       orders,
		OrderItems:   items,
		CustomerByID: make(map[int]store_model.Customer, len(customers)),
		OrdersByCust: make(map[int][]store_model.Order),
		ItemsByOrder: make(map[int][]store_model.OrderItem),
	}

	for _, c := range customers {
		if _, dup := snap.CustomerByID[c.CustomerID]; dup {
			return nil, &IntegrityError{Entity: "customer", ID: c.CustomerID, Reason: "duplicate customer_id"}
		}
		snap.CustomerByID[c.CustomerID] = c
	}

	orderIDs := make(map[int]bool, len(orders))
	for _, o := range orders {
		if orderIDs[o.OrderID] {
			return nil, &IntegrityError{Entity: "order", ID: o.OrderID, Reason: "duplicate order_id"}
		}
		orderIDs[o.OrderID] = true

		if _, ok := snap.CustomerByID[o.CustomerID]; !ok {
			return nil, &IntegrityError{Entity: "order", ID: o.OrderID,
				Reason: fmt.Sprintf("customer_id %d 不存在", o.CustomerID)}
		}
		if o.OrderAmount.IsNegative() {
			return nil, &IntegrityError{Entity: "order", ID: o.OrderID, Reason: "order_amount 为负数"}
		}
		if !store_model.ValidPaymentMethods[o.PaymentMethod] {
			return nil, &IntegrityError{Entity: "order", ID: o.OrderID,
				Reason: fmt.Sprintf("未知支付方式 %q", o.PaymentMethod)}
		}
		snap.OrdersByCust[o.CustomerID] = append(snap.OrdersByCust[o.CustomerID], o)
	}

	itemIDs := make(map[int]bool, len(items))
	for _, it := range items {
		if itemIDs[it.OrderItemID] {
			return nil, &IntegrityError{Entity: "order_item", ID: it.OrderItemID, Reason: "duplicate order_item_id"}
		}
		itemIDs[it.OrderItemID] = true

		if !orderIDs[it.OrderID] {
			return nil, &IntegrityError{Entity: "order_item", ID: it.OrderItemID,
				Reason: fmt.Sprintf("order_id %d 不存在", it.OrderID)}
		}
		if it.Quantity <= 0 {
			return nil, &IntegrityError{Entity: "order_item", ID: it.OrderItemID, Reason: "quantity 必须为正数"}
		}
		if it.Price.IsNegative() {
			return nil, &IntegrityError{Entity: "order_item", ID: it.OrderItemID, Reason: "price 为负数"}
		}
		snap.ItemsByOrder[it.OrderID] = append(snap.ItemsByOrder[it.OrderID], it)
	}

	// 客户内订单按日期升序，日期相同按order_id升序，窗口扫描依赖此顺序
	for cid := range snap.OrdersByCust {
		list := snap.OrdersByCust[cid]
		sort.Slice(list, func(i, j int) bool {
			if list[i].OrderDate.Equal(list[j].OrderDate) {
				return list[i].OrderID < list[j].OrderID
			}
			return list[i].OrderDate.Before(list[j].OrderDate)
		})
	}

	snap.fingerprint = computeFingerprint(snap)
	return snap, nil
}

// Fingerprint 快照指纹，作为报表缓存键的一部分
func (s *Snapshot) Fingerprint() string {
	return s.fingerprint
}

// computeFingerprint 基于记录主键与金额计算确定性指纹
func computeFingerprint(s *Snapshot) string {
	h := fnv.New64a()
	for _, c := range s.Customers {
		fmt.Fprintf(h, "c:%d:%s;", c.CustomerID, c.SignupDate.Format("2006-01-02"))
	}
	for _, o := range s.Orders {
		fmt.Fprintf(h, "o:%d:%d:%s:%s;", o.OrderID, o.CustomerID, o.OrderDate.Format("2006-01-02"), o.OrderAmount.String())
	}
	for _, it := range s.OrderItems {
		fmt.Fprintf(h, "i:%d:%d:%d:%s;", it.OrderItemID, it.OrderID, it.Quantity, it.Price.String())
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
