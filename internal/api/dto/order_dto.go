package dto

import "time"

// ==================== 下单 ====================

// OrderItemInput 下单明细
type OrderItemInput struct {
	ProductID int64   `json:"product_id" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
	Price     float64 `json:"price" binding:"required,gt=0"` // 下单时锁定的单价快照
}

// CreateOrderRequest 创建订单
type CreateOrderRequest struct {
	StoreID    int64            `json:"store_id" binding:"required"`
	CustomerID int64            `json:"customer_id" binding:"required"`
	Discount   float64          `json:"discount" binding:"gte=0,lte=100"` // 折扣百分比，开票时才生效
	Items      []OrderItemInput `json:"items" binding:"required,min=1,dive"`
}

// UpdateOrderStatusRequest 更新订单状态
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ==================== 订单视图 ====================

// OrderItemVO 订单明细视图对象
type OrderItemVO struct {
	ID          int64   `json:"id"`
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name,omitempty"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Subtotal    float64 `json:"subtotal"`
}

// OrderVO 订单视图对象
type OrderVO struct {
	ID           int64         `json:"id"`
	StoreID      int64         `json:"store_id"`
	CustomerID   int64         `json:"customer_id"`
	CustomerName string        `json:"customer_name,omitempty"`
	Total        float64       `json:"total"`
	Discount     float64       `json:"discount"`
	Status       string        `json:"status"`
	ItemCount    int           `json:"item_count"`
	Items        []OrderItemVO `json:"items,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}
