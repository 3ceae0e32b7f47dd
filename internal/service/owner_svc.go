package service

import (
	"context"

	"storelink_erp_v1/internal/api/dto"
	"storelink_erp_v1/internal/apperr"
	"storelink_erp_v1/internal/model"
	"storelink_erp_v1/internal/repository"
)

// ==================== OwnerService 店主服务 ====================

// OwnerService 店主与门店操作员管理
type OwnerService struct {
	ownerRepo    repository.OwnerRepository
	storeManRepo repository.StoreManRepository
	storeRepo    repository.StoreRepository
}

// NewOwnerService 创建店主服务
func NewOwnerService(
	ownerRepo repository.OwnerRepository,
	storeManRepo repository.StoreManRepository,
	storeRepo repository.StoreRepository,
) *OwnerService {
	return &OwnerService{
		ownerRepo:    ownerRepo,
		storeManRepo: storeManRepo,
		storeRepo:    storeRepo,
	}
}

func toOwnerVO(o *model.Owner) *dto.OwnerVO {
	return &dto.OwnerVO{
		ID:        o.ID,
		Name:      o.Name,
		Email:     o.Email,
		Mobile:    o.Mobile,
		ShopName:  o.ShopName,
		Address:   o.Address,
		CreatedAt: o.CreatedAt,
	}
}

// Create 注册店主，手机号与邮箱全局唯一
func (s *OwnerService) Create(ctx context.Context, req *dto.CreateOwnerRequest) (*dto.OwnerVO, error) {
	exists, err := s.ownerRepo.ExistsByMobile(ctx, req.Mobile)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if exists {
		return nil, apperr.Conflict("手机号 %s 已注册", req.Mobile)
	}
	if req.Email != "" {
		exists, err = s.ownerRepo.ExistsByEmail(ctx, req.Email)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		if exists {
			return nil, apperr.Conflict("邮箱 %s 已注册", req.Email)
		}
	}

	owner := &model.Owner{
		Name:     req.Name,
		Email:    req.Email,
		Mobile:   req.Mobile,
		ShopName: req.ShopName,
		Address:  req.Address,
	}
	if err := s.ownerRepo.Create(ctx, owner); err != nil {
		return nil, apperr.Internal(err)
	}
	return toOwnerVO(owner), nil
}

// Get 查店主
func (s *OwnerService) Get(ctx context.Context, id int64) (*dto.OwnerVO, error) {
	owner, err := s.ownerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if owner == nil {
		return nil, apperr.NotFound("店主 %d 不存在", id)
	}
	return toOwnerVO(owner), nil
}

// List 店主列表（管理员用）
func (s *OwnerService) List(ctx context.Context) ([]dto.OwnerVO, error) {
	owners, err := s.ownerRepo.List(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	vos := make([]dto.OwnerVO, 0, len(owners))
	for i := range owners {
		vos = append(vos, *toOwnerVO(&owners[i]))
	}
	return vos, nil
}

// Update 更新店主，只更新请求中出现的字段
func (s *OwnerService) Update(ctx context.Context, id int64, req *dto.UpdateOwnerRequest) (*dto.OwnerVO, error) {
	owner, err := s.ownerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if owner == nil {
		return nil, apperr.NotFound("店主 %d 不存在", id)
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Email != nil && *req.Email != owner.Email {
		if *req.Email != "" {
			exists, err := s.ownerRepo.ExistsByEmail(ctx, *req.Email)
			if err != nil {
				return nil, apperr.Internal(err)
			}
			if exists {
				return nil, apperr.Conflict("邮箱 %s 已注册", *req.Email)
			}
		}
		fields["email"] = *req.Email
	}
	if req.ShopName != nil {
		fields["shop_name"] = *req.ShopName
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	if len(fields) > 0 {
		if err := s.ownerRepo.UpdateFields(ctx, id, fields); err != nil {
			return nil, apperr.Internal(err)
		}
	}
	return s.Get(ctx, id)
}

// Delete 删除店主，数据库级联清理其门店、客户、订单
func (s *OwnerService) Delete(ctx context.Context, id int64) error {
	owner, err := s.ownerRepo.GetByID(ctx, id)
	if err != nil {
		return apperr.Internal(err)
	}
	if owner == nil {
		return apperr.NotFound("店主 %d 不存在", id)
	}
	if err := s.ownerRepo.Delete(ctx, id); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// ==================== 门店操作员 ====================

func toStoreManVO(sm *model.StoreMan) *dto.StoreManVO {
	return &dto.StoreManVO{
		ID:        sm.ID,
		Name:      sm.Name,
		Mobile:    sm.Mobile,
		StoreID:   sm.StoreID,
		CreatedAt: sm.CreatedAt,
	}
}

// CreateStoreMan 为门店指派操作员，一店至多一人，手机号全局唯一
func (s *OwnerService) CreateStoreMan(ctx context.Context, req *dto.CreateStoreManRequest) (*dto.StoreManVO, error) {
	store, err := s.storeRepo.GetByID(ctx, req.StoreID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if store == nil {
		return nil, apperr.NotFound("门店 %d 不存在", req.StoreID)
	}

	existing, err := s.storeManRepo.GetByStoreID(ctx, req.StoreID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if existing != nil {
		return nil, apperr.Conflict("门店 %d 已有操作员", req.StoreID)
	}

	dup, err := s.storeManRepo.GetByMobile(ctx, req.Mobile)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if dup != nil {
		return nil, apperr.Conflict("手机号 %s 已注册为操作员", req.Mobile)
	}

	sm := &model.StoreMan{
		Name:    req.Name,
		Mobile:  req.Mobile,
		StoreID: req.StoreID,
	}
	if err := s.storeManRepo.Create(ctx, sm); err != nil {
		return nil, apperr.Internal(err)
	}
	return toStoreManVO(sm), nil
}

// GetStoreMan 查操作员
func (s *OwnerService) GetStoreMan(ctx context.Context, id int64) (*dto.StoreManVO, error) {
	sm, err := s.storeManRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if sm == nil {
		return nil, apperr.NotFound("操作员 %d 不存在", id)
	}
	return toStoreManVO(sm), nil
}

// DeleteStoreMan 删除操作员
func (s *OwnerService) DeleteStoreMan(ctx context.Context, id int64) error {
	sm, err := s.storeManRepo.GetByID(ctx, id)
	if err != nil {
		return apperr.Internal(err)
	}
	if sm == nil {
		return apperr.NotFound("操作员 %d 不存在", id)
	}
	if err := s.storeManRepo.Delete(ctx, id); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
