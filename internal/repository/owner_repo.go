package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"storelink_erp_v1/internal/model"
)

// ==================== OwnerRepository 店主仓库 ====================

// OwnerRepository 店主仓库接口
type OwnerRepository interface {
	Create(ctx context.Context, owner *model.Owner) error
	GetByID(ctx context.Context, id int64) (*model.Owner, error)
	GetByMobile(ctx context.Context, mobile string) (*model.Owner, error)
	List(ctx context.Context) ([]model.Owner, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
	ExistsByMobile(ctx context.Context, mobile string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type ownerRepository struct {
	db *gorm.DB
}

// NewOwnerRepository 创建店主仓库
func NewOwnerRepository(db *gorm.DB) OwnerRepository {
	return &ownerRepository{db: db}
}

func (r *ownerRepository) Create(ctx context.Context, owner *model.Owner) error {
	return r.db.WithContext(ctx).Create(owner).Error
}

func (r *ownerRepository) GetByID(ctx context.Context, id int64) (*model.Owner, error) {
	var owner model.Owner
	err := r.db.WithContext(ctx).First(&owner, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &owner, nil
}

func (r *ownerRepository) GetByMobile(ctx context.Context, mobile string) (*model.Owner, error) {
	var owner model.Owner
	err := r.db.WithContext(ctx).Where("mobile = ?", mobile).First(&owner).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &owner, nil
}

func (r *ownerRepository) List(ctx context.Context) ([]model.Owner, error) {
	var owners []model.Owner
	err := r.db.WithContext(ctx).Order("id ASC").Find(&owners).Error
	return owners, err
}

func (r *ownerRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Owner{}).Where("id = ?", id).Updates(fields).Error
}

func (r *ownerRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Owner{}, id).Error
}

func (r *ownerRepository) ExistsByMobile(ctx context.Context, mobile string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Owner{}).Where("mobile = ?", mobile).Count(&count).Error
	return count > 0, err
}

func (r *ownerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Owner{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// ==================== StoreManRepository 门店操作员仓库 ====================

// StoreManRepository 门店操作员仓库接口
type StoreManRepository interface {
	Create(ctx context.Context, sm *model.StoreMan) error
	GetByID(ctx context.Context, id int64) (*model.StoreMan, error)
	GetByMobile(ctx context.Context, mobile string) (*model.StoreMan, error)
	GetByStoreID(ctx context.Context, storeID int64) (*model.StoreMan, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
}

type storeManRepository struct {
	db *gorm.DB
}

// NewStoreManRepository 创建门店操作员仓库
func NewStoreManRepository(db *gorm.DB) StoreManRepository {
	return &storeManRepository{db: db}
}

func (r *storeManRepository) Create(ctx context.Context, sm *model.StoreMan) error {
	return r.db.WithContext(ctx).Create(sm).Error
}

func (r *storeManRepository) GetByID(ctx context.Context, id int64) (*model.StoreMan, error) {
	var sm model.StoreMan
	err := r.db.WithContext(ctx).First(&sm, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sm, nil
}

func (r *storeManRepository) GetByMobile(ctx context.Context, mobile string) (*model.StoreMan, error) {
	var sm model.StoreMan
	err := r.db.WithContext(ctx).Where("mobile = ?", mobile).First(&sm).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sm, nil
}

func (r *storeManRepository) GetByStoreID(ctx context.Context, storeID int64) (*model.StoreMan, error) {
	var sm model.StoreMan
	err := r.db.WithContext(ctx).Where("store_id = ?", storeID).First(&sm).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sm, nil
}

func (r *storeManRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.StoreMan{}).Where("id = ?", id).Updates(fields).Error
}

func (r *storeManRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.StoreMan{}, id).Error
}
