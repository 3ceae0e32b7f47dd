package repository

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storelink_erp_v1/internal/model"
)

// ==================== OtpStore 验证码存储 ====================

// OtpStore 一次性验证码存储接口。
// 同一 (mobile, role) 只保留最新一条验证码，消费成功即删除，不可复用。
type OtpStore interface {
	// Set 写入验证码，覆盖同号码同角色的旧码
	Set(ctx context.Context, mobile, role, code string, expiresAt time.Time) error
	// ConsumeIfValid 校验并消费，返回 true 表示码正确且未过期且本次成功删除。
	// 校验与删除在同一条条件删除语句内完成，并发重放只会有一次成功。
	ConsumeIfValid(ctx context.Context, mobile, role, code string, now time.Time) (bool, error)
	// PurgeExpired 清理过期验证码，返回删除条数
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// ==================== gorm 实现 ====================

type gormOtpStore struct {
	db *gorm.DB
}

// NewOtpStore 创建数据库验证码存储
func NewOtpStore(db *gorm.DB) OtpStore {
	return &gormOtpStore{db: db}
}

func (s *gormOtpStore) Set(ctx context.Context, mobile, role, code string, expiresAt time.Time) error {
	otp := model.OtpCode{
		Mobile:    mobile,
		Role:      role,
		Code:      code,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "mobile"}, {Name: "role"}},
		DoUpdates: clause.AssignmentColumns([]string{"code", "expires_at", "created_at"}),
	}).Create(&otp).Error
}

func (s *gormOtpStore) ConsumeIfValid(ctx context.Context, mobile, role, code string, now time.Time) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("mobile = ? AND role = ? AND code = ? AND expires_at > ?", mobile, role, code, now).
		Delete(&model.OtpCode{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (s *gormOtpStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&model.OtpCode{})
	return res.RowsAffected, res.Error
}

// ==================== 内存实现（测试与单机场景） ====================

type memoryOtpEntry struct {
	code      string
	expiresAt time.Time
}

type memoryOtpStore struct {
	mu    sync.Mutex
	codes map[string]memoryOtpEntry
}

// NewMemoryOtpStore 创建内存验证码存储
func NewMemoryOtpStore() OtpStore {
	return &memoryOtpStore{codes: make(map[string]memoryOtpEntry)}
}

func otpKey(mobile, role string) string {
	return mobile + "|" + role
}

func (s *memoryOtpStore) Set(_ context.Context, mobile, role, code string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[otpKey(mobile, role)] = memoryOtpEntry{code: code, expiresAt: expiresAt}
	return nil
}

func (s *memoryOtpStore) ConsumeIfValid(_ context.Context, mobile, role, code string, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := otpKey(mobile, role)
	entry, ok := s.codes[key]
	if !ok || entry.code != code || !entry.expiresAt.After(now) {
		return false, nil
	}
	delete(s.codes, key)
	return true, nil
}

func (s *memoryOtpStore) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var purged int64
	for key, entry := range s.codes {
		if !entry.expiresAt.After(now) {
			delete(s.codes, key)
			purged++
		}
	}
	return purged, nil
}
