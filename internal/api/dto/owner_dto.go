package dto

import "time"

// ==================== 店主 ====================

// CreateOwnerRequest 创建店主
type CreateOwnerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Mobile   string `json:"mobile" binding:"required"`
	ShopName string `json:"shop_name"`
	Address  string `json:"address"`
}

// UpdateOwnerRequest 更新店主，字段均可选
type UpdateOwnerRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" binding:"omitempty,email"`
	ShopName *string `json:"shop_name"`
	Address  *string `json:"address"`
}

// OwnerVO 店主视图对象
type OwnerVO struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Mobile    string    `json:"mobile"`
	ShopName  string    `json:"shop_name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// ==================== 门店操作员 ====================

// CreateStoreManRequest 创建门店操作员
type CreateStoreManRequest struct {
	Name    string `json:"name" binding:"required"`
	Mobile  string `json:"mobile" binding:"required"`
	StoreID int64  `json:"store_id" binding:"required"`
}

// StoreManVO 门店操作员视图对象
type StoreManVO struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Mobile    string    `json:"mobile"`
	StoreID   int64     `json:"store_id"`
	CreatedAt time.Time `json:"created_at"`
}
