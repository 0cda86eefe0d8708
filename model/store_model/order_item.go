package store_model

import "github.com/shopspring/decimal"

// OrderItem 订单明细表
type OrderItem struct {
	OrderItemID     int             `json:"order_item_id" gorm:"column:order_item_id;primaryKey"`
	OrderID         int             `json:"order_id" gorm:"column:order_id;index"`
	ProductCategory string          `json:"product_category" gorm:"column:product_category;type:varchar(50)"`
	Quantity        int             `json:"quantity" gorm:"column:quantity"`
	Price           decimal.Decimal `json:"price" gorm:"column:price;type:decimal(12,2)"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// LineRevenue 明细行收入 = 单价 * 数量
func (i OrderItem) LineRevenue() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
