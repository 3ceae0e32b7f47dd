package service

import (
	"context"

	"storelink_erp_v1/internal/api/dto"
	"storelink_erp_v1/internal/apperr"
	"storelink_erp_v1/internal/model"
	"storelink_erp_v1/internal/repository"
)

// ==================== StoreService 门店服务 ====================

// StoreService 门店管理
type StoreService struct {
	storeRepo repository.StoreRepository
	ownerRepo repository.OwnerRepository
}

// NewStoreService 创建门店服务
func NewStoreService(storeRepo repository.StoreRepository, ownerRepo repository.OwnerRepository) *StoreService {
	return &StoreService{storeRepo: storeRepo, ownerRepo: ownerRepo}
}

func toStoreVO(st *model.Store) *dto.StoreVO {
	return &dto.StoreVO{
		ID:        st.ID,
		Name:      st.Name,
		Location:  st.Location,
		OwnerID:   st.OwnerID,
		CreatedAt: st.CreatedAt,
	}
}

// Create 开店，店主必须已存在
func (s *StoreService) Create(ctx context.Context, req *dto.CreateStoreRequest) (*dto.StoreVO, error) {
	owner, err := s.ownerRepo.GetByID(ctx, req.OwnerID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if owner == nil {
		return nil, apperr.NotFound("店主 %d 不存在", req.OwnerID)
	}

	store := &model.Store{
		Name:     req.Name,
		Location: req.Location,
		OwnerID:  req.OwnerID,
	}
	if err := s.storeRepo.Create(ctx, store); err != nil {
		return nil, apperr.Internal(err)
	}
	return toStoreVO(store), nil
}

// Get 查门店
func (s *StoreService) Get(ctx context.Context, id int64) (*dto.StoreVO, error) {
	store, err := s.storeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if store == nil {
		return nil, apperr.NotFound("门店 %d 不存在", id)
	}
	return toStoreVO(store), nil
}

// ListByOwner 店主名下门店
func (s *StoreService) ListByOwner(ctx context.Context, ownerID int64) ([]dto.StoreVO, error) {
	stores, err := s.storeRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	vos := make([]dto.StoreVO, 0, len(stores))
	for i := range stores {
		vos = append(vos, *toStoreVO(&stores[i]))
	}
	return vos, nil
}

// List 全部门店（管理员用）
func (s *StoreService) List(ctx context.Context) ([]dto.StoreVO, error) {
	stores, err := s.storeRepo.List(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	vos := make([]dto.StoreVO, 0, len(stores))
	for i := range stores {
		vos = append(vos, *toStoreVO(&stores[i]))
	}
	return vos, nil
}

// Update 更新门店
func (s *StoreService) Update(ctx context.Context, id int64, req *dto.UpdateStoreRequest) (*dto.StoreVO, error) {
	store, err := s.storeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if store == nil {
		return nil, apperr.NotFound("门店 %d 不存在", id)
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Location != nil {
		fields["location"] = *req.Location
	}
	if len(fields) > 0 {
		if err := s.storeRepo.UpdateFields(ctx, id, fields); err != nil {
			return nil, apperr.Internal(err)
		}
	}
	return s.Get(ctx, id)
}

// Delete 删除门店，级联清理客户、商品、订单与操作员
func (s *StoreService) Delete(ctx context.Context, id int64) error {
	store, err := s.storeRepo.GetByID(ctx, id)
	if err != nil {
		return apperr.Internal(err)
	}
	if store == nil {
		return apperr.NotFound("门店 %d 不存在", id)
	}
	if err := s.storeRepo.Delete(ctx, id); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
