package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// ==================== Offer 促销活动 ====================

// Offer 促销活动
// StoreID 为空时表示全平台活动，推送给所有客户
type Offer struct {
	BaseModel
	Title       string         `gorm:"size:255;not null" json:"title"`
	Description string         `gorm:"size:500" json:"description"`
	Discount    float64        `gorm:"not null" json:"discount"` // 折扣百分比
	ValidUntil  time.Time      `gorm:"not null" json:"valid_until"`
	StoreID     *int64         `gorm:"index" json:"store_id,omitempty"`
	Channels    pq.StringArray `gorm:"type:text[]" json:"channels"` // 推送渠道: sms / email
}

func (Offer) TableName() string {
	return "offers"
}

// Expired 活动是否已过期
func (o *Offer) Expired(now time.Time) bool {
	return now.After(o.ValidUntil)
}

// ==================== Notification 通知记录 ====================

// 通知状态
const (
	NotifyStatusSent   = "sent"   // 已提交网关
	NotifyStatusLogged = "logged" // 未配置网关，仅落库+日志
	NotifyStatusFailed = "failed"
)

// Notification 促销推送的落库记录，一个受众一行
// 推送为 fire-and-forget，状态只记录首次结果，不重试
type Notification struct {
	BaseModel
	CustomerID int64             `gorm:"index;not null" json:"customer_id"`
	OfferID    *int64            `gorm:"index" json:"offer_id,omitempty"`
	Channel    string            `gorm:"size:20" json:"channel"`
	Status     string            `gorm:"size:20" json:"status"`
	Payload    datatypes.JSONMap `gorm:"type:jsonb" json:"payload"`
}

func (Notification) TableName() string {
	return "notifications"
}

// ==================== Inquiry 客户咨询 ====================

// 咨询状态
const (
	InquiryStatusPending  = "Pending"
	InquiryStatusResolved = "Resolved"
	InquiryStatusClosed   = "Closed"
)

// ValidInquiryStatus 校验咨询状态取值
func ValidInquiryStatus(s string) bool {
	switch s {
	case InquiryStatusPending, InquiryStatusResolved, InquiryStatusClosed:
		return true
	}
	return false
}

// Inquiry 客户咨询，属于一个客户与一个门店
type Inquiry struct {
	BaseModel
	CustomerID int64  `gorm:"index;not null" json:"customer_id"`
	StoreID    int64  `gorm:"index;not null" json:"store_id"`
	Subject    string `gorm:"size:255;not null" json:"subject"`
	Message    string `gorm:"size:2000" json:"message"`
	Status     string `gorm:"size:20;default:Pending" json:"status"`

	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}

func (Inquiry) TableName() string {
	return "inquiries"
}
