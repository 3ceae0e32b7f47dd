package dto

import "time"

// ==================== 客户 ====================

// CreateCustomerRequest 创建客户
type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"required"`
	Address string `json:"address"`
	StoreID int64  `json:"store_id" binding:"required"`
}

// UpdateCustomerRequest 更新客户
type UpdateCustomerRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// CustomerVO 客户视图对象
type CustomerVO struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	StoreID   int64     `json:"store_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ==================== 批量导入 ====================

// BulkImportResponse 批量导入结果
type BulkImportResponse struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}
