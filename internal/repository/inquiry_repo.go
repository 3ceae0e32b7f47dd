package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"storelink_erp_v1/internal/model"
)

// ==================== InquiryRepository 客户咨询仓库 ====================

// InquiryRepository 客户咨询仓库接口
type InquiryRepository interface {
	Create(ctx context.Context, inquiry *model.Inquiry) error
	GetByID(ctx context.Context, id int64) (*model.Inquiry, error)
	ListByStore(ctx context.Context, storeID int64) ([]model.Inquiry, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]model.Inquiry, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
}

type inquiryRepository struct {
	db *gorm.DB
}

// NewInquiryRepository 创建客户咨询仓库
func NewInquiryRepository(db *gorm.DB) InquiryRepository {
	return &inquiryRepository{db: db}
}

func (r *inquiryRepository) Create(ctx context.Context, inquiry *model.Inquiry) error {
	return r.db.WithContext(ctx).Create(inquiry).Error
}

func (r *inquiryRepository) GetByID(ctx context.Context, id int64) (*model.Inquiry, error) {
	var inquiry model.Inquiry
	err := r.db.WithContext(ctx).Preload("Customer").First(&inquiry, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inquiry, nil
}

func (r *inquiryRepository) ListByStore(ctx context.Context, storeID int64) ([]model.Inquiry, error) {
	var inquiries []model.Inquiry
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Where("store_id = ?", storeID).
		Order("id DESC").
		Find(&inquiries).Error
	return inquiries, err
}

func (r *inquiryRepository) ListByCustomer(ctx context.Context, customerID int64) ([]model.Inquiry, error) {
	var inquiries []model.Inquiry
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("id DESC").
		Find(&inquiries).Error
	return inquiries, err
}

func (r *inquiryRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	return r.db.WithContext(ctx).Model(&model.Inquiry{}).Where("id = ?", id).Update("status", status).Error
}

func (r *inquiryRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Inquiry{}, id).Error
}
