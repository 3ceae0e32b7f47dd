package repository

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"storelink_erp_v1/internal/model"
)

// setupTestDB 内存 sqlite，开启外键以验证级联删除
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("开启外键失败: %v", err)
	}

	err = db.AutoMigrate(
		&model.Owner{}, &model.StoreMan{},
		&model.Store{}, &model.Customer{}, &model.Product{},
		&model.Order{}, &model.OrderItem{},
		&model.Offer{}, &model.Notification{}, &model.Inquiry{},
		&model.OtpCode{},
	)
	if err != nil {
		t.Fatalf("建表失败: %v", err)
	}
	return db
}

// seedStore 造一个店主+门店
func seedStore(t *testing.T, db *gorm.DB) *model.Store {
	t.Helper()
	owner := &model.Owner{Name: "张三", Mobile: "13800000001", Email: "zhangsan@example.com"}
	if err := db.Create(owner).Error; err != nil {
		t.Fatalf("造店主失败: %v", err)
	}
	store := &model.Store{Name: "旗舰店", Location: "上海", OwnerID: owner.ID}
	if err := db.Create(store).Error; err != nil {
		t.Fatalf("造门店失败: %v", err)
	}
	return store
}
