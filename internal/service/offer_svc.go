package service

import (
	"context"
	"fmt"
	"time"

	"storelink_erp_v1/internal/api/dto"
	"storelink_erp_v1/internal/apperr"
	"storelink_erp_v1/internal/model"
	"storelink_erp_v1/internal/repository"
)

// ==================== OfferService 促销活动服务 ====================

// OfferService 促销活动与群发
type OfferService struct {
	offerRepo    repository.OfferRepository
	customerRepo repository.CustomerRepository
	storeRepo    repository.StoreRepository
	notify       *NotifyService
}

// NewOfferService 创建促销活动服务
func NewOfferService(
	offerRepo repository.OfferRepository,
	customerRepo repository.CustomerRepository,
	storeRepo repository.StoreRepository,
	notify *NotifyService,
) *OfferService {
	return &OfferService{
		offerRepo:    offerRepo,
		customerRepo: customerRepo,
		storeRepo:    storeRepo,
		notify:       notify,
	}
}

func toOfferVO(o *model.Offer, now time.Time) *dto.OfferVO {
	return &dto.OfferVO{
		ID:          o.ID,
		Title:       o.Title,
		Description: o.Description,
		Discount:    o.Discount,
		ValidUntil:  o.ValidUntil,
		StoreID:     o.StoreID,
		Channels:    []string(o.Channels),
		Expired:     o.Expired(now),
		CreatedAt:   o.CreatedAt,
	}
}

// Create 创建促销活动，store_id 为空表示全平台活动
func (s *OfferService) Create(ctx context.Context, req *dto.CreateOfferRequest) (*dto.OfferVO, error) {
	validUntil, err := time.Parse(time.RFC3339, req.ValidUntil)
	if err != nil {
		return nil, apperr.Validation("valid_until 格式不合法，应为 RFC3339: %v", err)
	}

	if req.StoreID != nil {
		store, err := s.storeRepo.GetByID(ctx, *req.StoreID)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		if store == nil {
			return nil, apperr.NotFound("门店 %d 不存在", *req.StoreID)
		}
	}

	channels := req.Channels
	if len(channels) == 0 {
		channels = []string{"sms"}
	}
	for _, ch := range channels {
		if ch != "sms" && ch != "email" {
			return nil, apperr.Validation("不支持的推送渠道: %s", ch)
		}
	}

	offer := &model.Offer{
		Title:       req.Title,
		Description: req.Description,
		Discount:    req.Discount,
		ValidUntil:  validUntil,
		StoreID:     req.StoreID,
		Channels:    channels,
	}
	if err := s.offerRepo.Create(ctx, offer); err != nil {
		return nil, apperr.Internal(err)
	}
	return toOfferVO(offer, time.Now()), nil
}

// Get 查活动
func (s *OfferService) Get(ctx context.Context, id int64) (*dto.OfferVO, error) {
	offer, err := s.offerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if offer == nil {
		return nil, apperr.NotFound("活动 %d 不存在", id)
	}
	return toOfferVO(offer, time.Now()), nil
}

// List 全部活动
func (s *OfferService) List(ctx context.Context) ([]dto.OfferVO, error) {
	offers, err := s.offerRepo.List(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	now := time.Now()
	vos := make([]dto.OfferVO, 0, len(offers))
	for i := range offers {
		vos = append(vos, *toOfferVO(&offers[i], now))
	}
	return vos, nil
}

// ListByStore 门店可见活动（门店专属 + 全平台）
func (s *OfferService) ListByStore(ctx context.Context, storeID int64) ([]dto.OfferVO, error) {
	offers, err := s.offerRepo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	now := time.Now()
	vos := make([]dto.OfferVO, 0, len(offers))
	for i := range offers {
		vos = append(vos, *toOfferVO(&offers[i], now))
	}
	return vos, nil
}

// Update 部分字段更新
func (s *OfferService) Update(ctx context.Context, id int64, req *dto.UpdateOfferRequest) (*dto.OfferVO, error) {
	offer, err := s.offerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if offer == nil {
		return nil, apperr.NotFound("活动 %d 不存在", id)
	}

	fields := make(map[string]interface{})
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Discount != nil {
		fields["discount"] = *req.Discount
	}
	if req.ValidUntil != nil {
		validUntil, err := time.Parse(time.RFC3339, *req.ValidUntil)
		if err != nil {
			return nil, apperr.Validation("valid_until 格式不合法，应为 RFC3339: %v", err)
		}
		fields["valid_until"] = validUntil
	}
	if len(fields) == 0 {
		return toOfferVO(offer, time.Now()), nil
	}

	if err := s.offerRepo.UpdateFields(ctx, id, fields); err != nil {
		return nil, apperr.Internal(err)
	}
	return s.Get(ctx, id)
}

// Delete 删除活动
func (s *OfferService) Delete(ctx context.Context, id int64) error {
	offer, err := s.offerRepo.GetByID(ctx, id)
	if err != nil {
		return apperr.Internal(err)
	}
	if offer == nil {
		return apperr.NotFound("活动 %d 不存在", id)
	}
	if err := s.offerRepo.Delete(ctx, id); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// Send 群发活动通知。受众为活动门店的客户，全平台活动则为全部客户。
// 已过期的活动不允许群发。逐客户发送，统计成功与失败数。
func (s *OfferService) Send(ctx context.Context, id int64) (*dto.SendOfferResponse, error) {
	offer, err := s.offerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if offer == nil {
		return nil, apperr.NotFound("活动 %d 不存在", id)
	}
	if offer.Expired(time.Now()) {
		return nil, apperr.Validation("活动 %d 已过期，不能群发", id)
	}

	var customers []model.Customer
	if offer.StoreID != nil {
		customers, err = s.customerRepo.ListByStore(ctx, *offer.StoreID)
	} else {
		customers, err = s.customerRepo.List(ctx)
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}

	message := fmt.Sprintf("【促销】%s：%s，立减 %.0f%%，有效期至 %s",
		offer.Title, offer.Description, offer.Discount,
		offer.ValidUntil.Format("2006-01-02"))

	channels := []string(offer.Channels)
	if len(channels) == 0 {
		channels = []string{"sms"}
	}

	resp := &dto.SendOfferResponse{OfferID: offer.ID}
	for i := range customers {
		for _, ch := range channels {
			// 没有手机号的客户收不到短信，跳过且不计入触达
			if ch == "sms" && customers[i].Phone == "" {
				continue
			}
			n := s.notify.NotifyCustomer(ctx, &customers[i], &offer.ID, ch, message)
			if n.Status == model.NotifyStatusFailed {
				resp.Failed++
			} else {
				resp.Notified++
			}
		}
	}
	return resp, nil
}
