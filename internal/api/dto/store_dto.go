package dto

import "time"

// ==================== 门店 ====================

// CreateStoreRequest 创建门店
type CreateStoreRequest struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location"`
	OwnerID  int64  `json:"owner_id" binding:"required"`
}

// UpdateStoreRequest 更新门店
type UpdateStoreRequest struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
}

// StoreVO 门店视图对象
type StoreVO struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	OwnerID   int64     `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}
