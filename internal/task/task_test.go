package task

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"storelink_erp_v1/internal/model"
	"storelink_erp_v1/internal/repository"
)

// ==================== 辅助函数 ====================

func setupTaskTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	err = db.AutoMigrate(&model.OtpCode{}, &model.Offer{})
	if err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return db
}

// ==================== OtpPurgeTask 测试 ====================

func TestOtpPurgeTask_PurgeJob(t *testing.T) {
	db := setupTaskTestDB(t)
	store := repository.NewOtpStore(db)
	ctx := context.Background()
	now := time.Now()

	// 一条过期、一条有效
	if err := store.Set(ctx, "13800000001", "owner", "111111", now.Add(-time.Minute)); err != nil {
		t.Fatalf("写入过期验证码失败: %v", err)
	}
	if err := store.Set(ctx, "13800000002", "owner", "222222", now.Add(5*time.Minute)); err != nil {
		t.Fatalf("写入有效验证码失败: %v", err)
	}

	task := NewOtpPurgeTask(store)
	task.purgeJob(ctx)

	var count int64
	db.Model(&model.OtpCode{}).Count(&count)
	if count != 1 {
		t.Errorf("清理后应只剩 1 条验证码, got %d", count)
	}

	ok, err := store.ConsumeIfValid(ctx, "13800000002", "owner", "222222", now)
	if err != nil {
		t.Fatalf("核销失败: %v", err)
	}
	if !ok {
		t.Error("有效验证码不应被清理")
	}
}

// ==================== OfferSweepTask 测试 ====================

func TestOfferSweepTask_SweepJob(t *testing.T) {
	db := setupTaskTestDB(t)
	repo := repository.NewOfferRepository(db)
	ctx := context.Background()
	now := time.Now()

	offers := []model.Offer{
		{Title: "已过期", Discount: 5, ValidUntil: now.Add(-time.Hour), Channels: []string{"sms"}},
		{Title: "进行中", Discount: 5, ValidUntil: now.Add(time.Hour), Channels: []string{"sms"}},
	}
	for i := range offers {
		if err := db.Create(&offers[i]).Error; err != nil {
			t.Fatalf("造活动失败: %v", err)
		}
	}

	expired, err := repo.ListExpiredBefore(ctx, now)
	if err != nil {
		t.Fatalf("查询过期活动失败: %v", err)
	}
	if len(expired) != 1 {
		t.Fatalf("过期活动数量 = %d, want 1", len(expired))
	}
	if expired[0].Title != "已过期" {
		t.Errorf("过期活动标题 = %s, want 已过期", expired[0].Title)
	}

	// 巡检只记日志，不改也不删数据
	task := NewOfferSweepTask(repo)
	task.sweepJob(ctx)

	var count int64
	db.Model(&model.Offer{}).Count(&count)
	if count != 2 {
		t.Errorf("巡检后活动数量 = %d, want 2", count)
	}
}
