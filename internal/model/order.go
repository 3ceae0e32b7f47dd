package model

// ==================== 订单状态常量 ====================

// 订单状态为自由文本，这里只约定默认值与常用取值
const (
	OrderStatusPending   = "Pending"
	OrderStatusCompleted = "Completed"
	OrderStatusCanceled  = "Canceled"
)

// ==================== Order 订单主表 ====================

// Order 订单
// Total 恒等于 Σ(items[].quantity * items[].price)，创建时由订单引擎计算，
// 不允许独立设置；Discount 为百分比，只在开票时参与计算，不折入 Total
type Order struct {
	BaseModel
	StoreID    int64   `gorm:"index;not null" json:"store_id"`
	CustomerID int64   `gorm:"index;not null" json:"customer_id"`
	Total      float64 `gorm:"not null;default:0" json:"total"`
	Discount   float64 `gorm:"not null;default:0" json:"discount"` // 折扣百分比
	Status     string  `gorm:"size:100;default:Pending" json:"status"`

	// 关联：删除订单时级联删除订单项
	Items    []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	Customer *Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Store    *Store      `gorm:"foreignKey:StoreID" json:"store,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// ItemCount 订单项数量
func (o *Order) ItemCount() int {
	return len(o.Items)
}

// ==================== OrderItem 订单项 ====================

// OrderItem 订单项
// Price 为下单时的单价快照，商品后续改价不影响历史发票
type OrderItem struct {
	BaseModel
	OrderID   int64   `gorm:"index;not null" json:"order_id"`
	ProductID int64   `gorm:"index;not null" json:"product_id"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	Price     float64 `gorm:"not null" json:"price"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// Subtotal 行小计
func (i *OrderItem) Subtotal() float64 {
	return float64(i.Quantity) * i.Price
}
