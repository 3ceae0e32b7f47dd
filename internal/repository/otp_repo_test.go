package repository

import (
	"context"
	"testing"
	"time"
)

func TestOtpStore_ConsumeOnce(t *testing.T) {
	db := setupTestDB(t)
	store := NewOtpStore(db)
	ctx := context.Background()
	now := time.Now()

	if err := store.Set(ctx, "13800000001", "owner", "123456", now.Add(5*time.Minute)); err != nil {
		t.Fatalf("写入验证码失败: %v", err)
	}

	// 错码不消费
	ok, err := store.ConsumeIfValid(ctx, "13800000001", "owner", "000000", now)
	if err != nil {
		t.Fatalf("核销失败: %v", err)
	}
	if ok {
		t.Fatal("错误的验证码不应通过")
	}

	// 正确码只成功一次
	ok, err = store.ConsumeIfValid(ctx, "13800000001", "owner", "123456", now)
	if err != nil {
		t.Fatalf("核销失败: %v", err)
	}
	if !ok {
		t.Fatal("正确的验证码应通过")
	}

	ok, _ = store.ConsumeIfValid(ctx, "13800000001", "owner", "123456", now)
	if ok {
		t.Fatal("验证码重放不应通过")
	}
}

func TestOtpStore_Expiry(t *testing.T) {
	db := setupTestDB(t)
	store := NewOtpStore(db)
	ctx := context.Background()
	now := time.Now()

	if err := store.Set(ctx, "13800000002", "storeman", "654321", now.Add(-time.Second)); err != nil {
		t.Fatalf("写入验证码失败: %v", err)
	}

	ok, err := store.ConsumeIfValid(ctx, "13800000002", "storeman", "654321", now)
	if err != nil {
		t.Fatalf("核销失败: %v", err)
	}
	if ok {
		t.Fatal("过期验证码不应通过")
	}
}

func TestOtpStore_OverwriteInvalidatesOldCode(t *testing.T) {
	db := setupTestDB(t)
	store := NewOtpStore(db)
	ctx := context.Background()
	now := time.Now()

	if err := store.Set(ctx, "13800000003", "owner", "111111", now.Add(5*time.Minute)); err != nil {
		t.Fatalf("写入验证码失败: %v", err)
	}
	if err := store.Set(ctx, "13800000003", "owner", "222222", now.Add(5*time.Minute)); err != nil {
		t.Fatalf("覆盖验证码失败: %v", err)
	}

	if ok, _ := store.ConsumeIfValid(ctx, "13800000003", "owner", "111111", now); ok {
		t.Fatal("被覆盖的旧码不应通过")
	}
	if ok, _ := store.ConsumeIfValid(ctx, "13800000003", "owner", "222222", now); !ok {
		t.Fatal("新码应通过")
	}
}

func TestOtpStore_RoleIsolation(t *testing.T) {
	db := setupTestDB(t)
	store := NewOtpStore(db)
	ctx := context.Background()
	now := time.Now()

	if err := store.Set(ctx, "13800000004", "owner", "333333", now.Add(5*time.Minute)); err != nil {
		t.Fatalf("写入验证码失败: %v", err)
	}

	// 同号码不同角色不共享验证码
	if ok, _ := store.ConsumeIfValid(ctx, "13800000004", "storeman", "333333", now); ok {
		t.Fatal("角色不匹配不应通过")
	}
}

func TestOtpStore_PurgeExpired(t *testing.T) {
	db := setupTestDB(t)
	store := NewOtpStore(db)
	ctx := context.Background()
	now := time.Now()

	_ = store.Set(ctx, "13800000005", "owner", "111111", now.Add(-time.Minute))
	_ = store.Set(ctx, "13800000006", "owner", "222222", now.Add(5*time.Minute))

	purged, err := store.PurgeExpired(ctx, now)
	if err != nil {
		t.Fatalf("清理失败: %v", err)
	}
	if purged != 1 {
		t.Fatalf("应清理 1 条，实际 %d", purged)
	}

	// 未过期的码仍可用
	if ok, _ := store.ConsumeIfValid(ctx, "13800000006", "owner", "222222", now); !ok {
		t.Fatal("未过期的码应保留")
	}
}

func TestMemoryOtpStore(t *testing.T) {
	store := NewMemoryOtpStore()
	ctx := context.Background()
	now := time.Now()

	_ = store.Set(ctx, "13800000007", "owner", "888888", now.Add(time.Minute))

	if ok, _ := store.ConsumeIfValid(ctx, "13800000007", "owner", "888888", now); !ok {
		t.Fatal("内存实现正确码应通过")
	}
	if ok, _ := store.ConsumeIfValid(ctx, "13800000007", "owner", "888888", now); ok {
		t.Fatal("内存实现重放不应通过")
	}
}
