package store_model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 支付方式枚举
const (
	PaymentUPI    = "UPI"
	PaymentCard   = "Card"
	PaymentWallet = "Wallet"
	PaymentCOD    = "COD"
)

// ValidPaymentMethods 合法支付方式集合
var ValidPaymentMethods = map[string]bool{
	PaymentUPI:    true,
	PaymentCard:   true,
	PaymentWallet: true,
	PaymentCOD:    true,
}

// Order 订单表
type Order struct {
	OrderID       int             `json:"order_id" gorm:"column:order_id;primaryKey"`
	CustomerID    int             `json:"customer_id" gorm:"column:customer_id;index"`
	OrderDate     time.Time       `json:"order_date" gorm:"column:order_date;type:date"`
	OrderAmount   decimal.Decimal `json:"order_amount" gorm:"column:order_amount;type:decimal(12,2)"`
	PaymentMethod string          `json:"payment_method" gorm:"column:payment_method;type:enum('UPI','Card','Wallet','COD')"`
}

func (Order) TableName() string {
	return "orders"
}
