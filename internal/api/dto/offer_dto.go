package dto

import "time"

// ==================== 优惠活动 ====================

// CreateOfferRequest 创建优惠活动
type CreateOfferRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Discount    float64  `json:"discount" binding:"required,gt=0,lte=100"`
	ValidUntil  string   `json:"valid_until" binding:"required"` // 2026-12-31T00:00:00Z
	StoreID     *int64   `json:"store_id"`                       // 为空表示全局活动
	Channels    []string `json:"channels"`                       // sms / email，缺省 sms
}

// UpdateOfferRequest 更新优惠活动，nil 字段不更新
type UpdateOfferRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Discount    *float64 `json:"discount" binding:"omitempty,gt=0,lte=100"`
	ValidUntil  *string  `json:"valid_until"`
}

// OfferVO 优惠活动视图对象
type OfferVO struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Discount    float64   `json:"discount"`
	ValidUntil  time.Time `json:"valid_until"`
	StoreID     *int64    `json:"store_id,omitempty"`
	Channels    []string  `json:"channels"`
	Expired     bool      `json:"expired"`
	CreatedAt   time.Time `json:"created_at"`
}

// SendOfferResponse 活动群发结果
type SendOfferResponse struct {
	OfferID  int64 `json:"offer_id"`
	Notified int   `json:"notified"`
	Failed   int   `json:"failed"`
}

// ==================== 客户咨询 ====================

// CreateInquiryRequest 创建客户咨询
type CreateInquiryRequest struct {
	CustomerID int64  `json:"customer_id" binding:"required"`
	StoreID    int64  `json:"store_id" binding:"required"`
	Subject    string `json:"subject" binding:"required"`
	Message    string `json:"message" binding:"required"`
}

// UpdateInquiryRequest 更新咨询状态
type UpdateInquiryRequest struct {
	Status string `json:"status" binding:"required"` // pending / resolved / closed
}

// InquiryVO 咨询视图对象
type InquiryVO struct {
	ID           int64     `json:"id"`
	CustomerID   int64     `json:"customer_id"`
	CustomerName string    `json:"customer_name,omitempty"`
	StoreID      int64     `json:"store_id"`
	Subject      string    `json:"subject"`
	Message      string    `json:"message"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}
