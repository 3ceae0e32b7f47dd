package service

import (
	"context"

	"storelink_erp_v1/internal/api/dto"
	"storelink_erp_v1/internal/apperr"
	"storelink_erp_v1/internal/model"
	"storelink_erp_v1/internal/repository"
)

// ==================== InquiryService 客户咨询服务 ====================

// InquiryService 客户咨询工单
type InquiryService struct {
	inquiryRepo  repository.InquiryRepository
	customerRepo repository.CustomerRepository
	storeRepo    repository.StoreRepository
}

// NewInquiryService 创建客户咨询服务
func NewInquiryService(
	inquiryRepo repository.InquiryRepository,
	customerRepo repository.CustomerRepository,
	storeRepo repository.StoreRepository,
) *InquiryService {
	return &InquiryService{
		inquiryRepo:  inquiryRepo,
		customerRepo: customerRepo,
		storeRepo:    storeRepo,
	}
}

func toInquiryVO(q *model.Inquiry) *dto.InquiryVO {
	vo := &dto.InquiryVO{
		ID:         q.ID,
		CustomerID: q.CustomerID,
		StoreID:    q.StoreID,
		Subject:    q.Subject,
		Message:    q.Message,
		Status:     q.Status,
		CreatedAt:  q.CreatedAt,
	}
	if q.Customer != nil {
		vo.CustomerName = q.Customer.Name
	}
	return vo
}

// Create 创建咨询，客户必须属于指定门店
func (s *InquiryService) Create(ctx context.Context, req *dto.CreateInquiryRequest) (*dto.InquiryVO, error) {
	customer, err := s.customerRepo.GetByID(ctx, req.CustomerID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if customer == nil {
		return nil, apperr.NotFound("客户 %d 不存在", req.CustomerID)
	}
	if customer.StoreID != req.StoreID {
		return nil, apperr.Validation("客户 %d 不属于门店 %d", req.CustomerID, req.StoreID)
	}

	inquiry := &model.Inquiry{
		CustomerID: req.CustomerID,
		StoreID:    req.StoreID,
		Subject:    req.Subject,
		Message:    req.Message,
		Status:     model.InquiryStatusPending,
	}
	if err := s.inquiryRepo.Create(ctx, inquiry); err != nil {
		return nil, apperr.Internal(err)
	}
	return toInquiryVO(inquiry), nil
}

// Get 查咨询
func (s *InquiryService) Get(ctx context.Context, id int64) (*dto.InquiryVO, error) {
	inquiry, err := s.inquiryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if inquiry == nil {
		return nil, apperr.NotFound("咨询 %d 不存在", id)
	}
	return toInquiryVO(inquiry), nil
}

// ListByStore 门店咨询列表
func (s *InquiryService) ListByStore(ctx context.Context, storeID int64) ([]dto.InquiryVO, error) {
	inquiries, err := s.inquiryRepo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	vos := make([]dto.InquiryVO, 0, len(inquiries))
	for i := range inquiries {
		vos = append(vos, *toInquiryVO(&inquiries[i]))
	}
	return vos, nil
}

// UpdateStatus 流转咨询状态: Pending -> Resolved / Closed
func (s *InquiryService) UpdateStatus(ctx context.Context, id int64, status string) (*dto.InquiryVO, error) {
	if !model.ValidInquiryStatus(status) {
		return nil, apperr.Validation("不支持的咨询状态: %s", status)
	}
	inquiry, err := s.inquiryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if inquiry == nil {
		return nil, apperr.NotFound("咨询 %d 不存在", id)
	}
	if err := s.inquiryRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, apperr.Internal(err)
	}
	return s.Get(ctx, id)
}

// Delete 删除咨询
func (s *InquiryService) Delete(ctx context.Context, id int64) error {
	inquiry, err := s.inquiryRepo.GetByID(ctx, id)
	if err != nil {
		return apperr.Internal(err)
	}
	if inquiry == nil {
		return apperr.NotFound("咨询 %d 不存在", id)
	}
	if err := s.inquiryRepo.Delete(ctx, id); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
