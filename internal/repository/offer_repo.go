package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"storelink_erp_v1/internal/model"
)

// ==================== OfferRepository 优惠活动仓库 ====================

// OfferRepository 优惠活动仓库接口
type OfferRepository interface {
	Create(ctx context.Context, offer *model.Offer) error
	GetByID(ctx context.Context, id int64) (*model.Offer, error)
	List(ctx context.Context) ([]model.Offer, error)
	ListByStore(ctx context.Context, storeID int64) ([]model.Offer, error)
	// ListExpiredBefore 找出截止时间早于给定时刻的活动，供定时清理
	ListExpiredBefore(ctx context.Context, t time.Time) ([]model.Offer, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
}

type offerRepository struct {
	db *gorm.DB
}

// NewOfferRepository 创建优惠活动仓库
func NewOfferRepository(db *gorm.DB) OfferRepository {
	return &offerRepository{db: db}
}

func (r *offerRepository) Create(ctx context.Context, offer *model.Offer) error {
	return r.db.WithContext(ctx).Create(offer).Error
}

func (r *offerRepository) GetByID(ctx context.Context, id int64) (*model.Offer, error) {
	var offer model.Offer
	err := r.db.WithContext(ctx).First(&offer, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

func (r *offerRepository) List(ctx context.Context) ([]model.Offer, error) {
	var offers []model.Offer
	err := r.db.WithContext(ctx).Order("id DESC").Find(&offers).Error
	return offers, err
}

func (r *offerRepository) ListByStore(ctx context.Context, storeID int64) ([]model.Offer, error) {
	var offers []model.Offer
	// 门店专属活动加上全局活动
	err := r.db.WithContext(ctx).
		Where("store_id = ? OR store_id IS NULL", storeID).
		Order("id DESC").
		Find(&offers).Error
	return offers, err
}

func (r *offerRepository) ListExpiredBefore(ctx context.Context, t time.Time) ([]model.Offer, error) {
	var offers []model.Offer
	err := r.db.WithContext(ctx).Where("valid_until < ?", t).Find(&offers).Error
	return offers, err
}

func (r *offerRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Offer{}).Where("id = ?", id).Updates(fields).Error
}

func (r *offerRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Offer{}, id).Error
}

// ==================== NotificationRepository 通知记录仓库 ====================

// NotificationRepository 通知记录仓库接口
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	CreateBatch(ctx context.Context, ns []model.Notification) error
	ListByCustomer(ctx context.Context, customerID int64) ([]model.Notification, error)
	CountByOffer(ctx context.Context, offerID int64) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository 创建通知记录仓库
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepository) CreateBatch(ctx context.Context, ns []model.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&ns).Error
}

func (r *notificationRepository) ListByCustomer(ctx context.Context, customerID int64) ([]model.Notification, error) {
	var ns []model.Notification
	err := r.db.WithContext(ctx).Where("customer_id = ?", customerID).Order("id DESC").Find(&ns).Error
	return ns, err
}

func (r *notificationRepository) CountByOffer(ctx context.Context, offerID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Notification{}).Where("offer_id = ?", offerID).Count(&count).Error
	return count, err
}
