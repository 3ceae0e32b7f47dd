package model

import "time"

// OtpCode 一次性验证码
// 独立成表（而非挂在用户行上），以 (mobile, role) 为键；
// 核销通过条件删除一步完成，见 repository.OtpStore
type OtpCode struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Mobile    string    `gorm:"size:15;not null;uniqueIndex:idx_otp_mobile_role" json:"mobile"`
	Role      string    `gorm:"size:20;not null;uniqueIndex:idx_otp_mobile_role" json:"role"`
	Code      string    `gorm:"size:10;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (OtpCode) TableName() string {
	return "otp_codes"
}
