package model

import "time"

// BaseModel 公共字段
// 本系统为硬删除（父实体删除时数据库级联清理子表），不使用 gorm 软删除
type BaseModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
