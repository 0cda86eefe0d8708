package ingest_service

import (
	"fmt"

	"ecom-insight/model/store_model"

	"gorm.io/gorm"
)

// Source 数据来源接口，提供三张表的完整记录序列
type Source interface {
	LoadCustomers() ([]store_model.Customer, error)
	LoadOrders() ([]store_model.Order, error)
	LoadOrderItems() ([]store_model.OrderItem, error)
}

// GormSource 基于 gorm 的数据来源
type GormSource struct {
	DB *gorm.DB
}

// NewGormSource 创建数据库数据来源
func NewGormSource(db *gorm.DB) *GormSource {
	return &GormSource{DB: db}
}

// LoadCustomers 加载全部客户
func (s *GormSource) LoadCustomers() ([]store_model.Customer, error) {
	var data []store_model.Customer
	if err := s.DB.Model(&store_model.Customer{}).Order("customer_id ASC").Find(&data).Error; err != nil {
		return nil, fmt.Errorf("查询客户失败: %w", err)
	}
	return data, nil
}

// LoadOrders 加载全部订单
func (s *GormSource) LoadOrders() ([]store_model.Order, error) {
	var data []store_model.Order
	if err := s.DB.Model(&store_model.Order{}).Order("order_id ASC").Find(&data).Error; err != nil {
		return nil, fmt.Errorf("查询订单失败: %w", err)
	}
	return data, nil
}

// LoadOrderItems 加载全部订单明细
func (s *GormSource) LoadOrderItems() ([]store_model.OrderItem, error) {
	var data []store_model.OrderItem
	if err := s.DB.Model(&store_model.OrderItem{}).Order("order_item_id ASC").Find(&data).Error; err != nil {
		return nil, fmt.Errorf("查询订单明细失败: %w", err)
	}
	return data, nil
}

// SliceSource 基于内存切片的数据来源，测试和预载数据用
type SliceSource struct {
	Customers  []store_model.Customer
	Orders     []store_model.Order
	OrderItems []store_model.OrderItem
}

func (s *SliceSource) LoadCustomers() ([]store_model.Customer, error) {
	return s.Customers, nil
}

func (s *SliceSource) LoadOrders() ([]store_model.Order, error) {
	return s.Orders, nil
}

func (s *SliceSource) LoadOrderItems() ([]store_model.OrderItem, error) {
	return s.OrderItems, nil
}
