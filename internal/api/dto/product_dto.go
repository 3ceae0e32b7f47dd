package dto

import "time"

// ==================== 商品 ====================

// CreateProductRequest 创建商品（multipart 表单，支持图片上传）
type CreateProductRequest struct {
	Name        string  `form:"name" binding:"required"`
	Price       float64 `form:"price" binding:"required,gt=0"`
	Description string  `form:"description"`
	StoreID     int64   `form:"store_id" binding:"required"`
}

// UpdateProductRequest 更新商品
type UpdateProductRequest struct {
	Name        *string  `form:"name"`
	Price       *float64 `form:"price" binding:"omitempty,gt=0"`
	Description *string  `form:"description"`
}

// ProductVO 商品视图对象
type ProductVO struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url,omitempty"`
	StoreID     int64     `json:"store_id"`
	CreatedAt   time.Time `json:"created_at"`
}
