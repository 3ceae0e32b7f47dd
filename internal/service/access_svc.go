package service

import (
	"context"

	"storelink_erp_v1/internal/apperr"
	"storelink_erp_v1/internal/model"
	"storelink_erp_v1/internal/repository"
)

// ==================== AccessService 归属校验 ====================

// AccessService 统一的租户归属判定。
// 所有门店级资源（客户、商品、订单、咨询）先还原到门店，再用同一条谓词判权限。
type AccessService struct {
	storeRepo    repository.StoreRepository
	storeManRepo repository.StoreManRepository
}

// NewAccessService 创建归属校验服务
func NewAccessService(storeRepo repository.StoreRepository, storeManRepo repository.StoreManRepository) *AccessService {
	return &AccessService{storeRepo: storeRepo, storeManRepo: storeManRepo}
}

// CheckStore 校验当前用户可否操作指定门店。
// admin 全通过；owner 要求门店归属本人；storeman 要求正是本店操作员。
// 门店不存在返回 NotFound，归属不符返回 Forbidden。
func (s *AccessService) CheckStore(ctx context.Context, userID int64, role string, storeID int64) error {
	store, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return apperr.Internal(err)
	}
	if store == nil {
		return apperr.NotFound("门店 %d 不存在", storeID)
	}

	switch role {
	case model.RoleAdmin:
		return nil
	case model.RoleOwner:
		if store.OwnerID != userID {
			return apperr.Forbidden("门店不属于当前店主")
		}
		return nil
	case model.RoleStoreMan:
		sm, err := s.storeManRepo.GetByID(ctx, userID)
		if err != nil {
			return apperr.Internal(err)
		}
		if sm == nil || sm.StoreID != storeID {
			return apperr.Forbidden("无权操作该门店")
		}
		return nil
	default:
		return apperr.Forbidden("未知角色")
	}
}

// CheckOwner 校验当前用户可否操作指定店主资源。
// admin 全通过；owner 只能操作本人。
func (s *AccessService) CheckOwner(_ context.Context, userID int64, role string, ownerID int64) error {
	if role == model.RoleAdmin {
		return nil
	}
	if role == model.RoleOwner && userID == ownerID {
		return nil
	}
	return apperr.Forbidden("无权操作该店主资源")
}
