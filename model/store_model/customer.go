package store_model

import "time"

// Customer 客户表
type Customer struct {
	CustomerID int       `json:"customer_id" gorm:"column:customer_id;primaryKey"`
	Name       string    `json:"name" gorm:"column:name;type:varchar(100)"`
	SignupDate time.Time `json:"signup_date" gorm:"column:signup_date;type:date"`
	City       string    `json:"city" gorm:"column:city;type:varchar(50)"`
}

func (Customer) TableName() string {
	return "customers"
}
