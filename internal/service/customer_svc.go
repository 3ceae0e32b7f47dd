package service

import (
	"context"

	"storelink_erp_v1/internal/api/dto"
	"storelink_erp_v1/internal/apperr"
	"storelink_erp_v1/internal/importer"
	"storelink_erp_v1/internal/model"
	"storelink_erp_v1/internal/repository"
)

// ==================== CustomerService 客户服务 ====================

// CustomerService 客户管理与批量导入导出
type CustomerService struct {
	customerRepo repository.CustomerRepository
	storeRepo    repository.StoreRepository
}

// NewCustomerService 创建客户服务
func NewCustomerService(customerRepo repository.CustomerRepository, storeRepo repository.StoreRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo, storeRepo: storeRepo}
}

func toCustomerVO(c *model.Customer) *dto.CustomerVO {
	return &dto.CustomerVO{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		StoreID:   c.StoreID,
		CreatedAt: c.CreatedAt,
	}
}

// Create 创建客户，门店必须存在，同店内手机号唯一
func (s *CustomerService) Create(ctx context.Context, req *dto.CreateCustomerRequest) (*dto.CustomerVO, error) {
	store, err := s.storeRepo.GetByID(ctx, req.StoreID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if store == nil {
		return nil, apperr.NotFound("门店 %d 不存在", req.StoreID)
	}

	existing, err := s.customerRepo.ListByStore(ctx, req.StoreID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	for i := range existing {
		if existing[i].Phone == req.Phone {
			return nil, apperr.Conflict("手机号 %s 在门店 %d 下已存在", req.Phone, req.StoreID)
		}
	}

	customer := &model.Customer{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		StoreID: req.StoreID,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, apperr.Internal(err)
	}
	return toCustomerVO(customer), nil
}

// Get 查客户
func (s *CustomerService) Get(ctx context.Context, id int64) (*dto.CustomerVO, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if customer == nil {
		return nil, apperr.NotFound("客户 %d 不存在", id)
	}
	return toCustomerVO(customer), nil
}

// GetModel 查客户实体，供其他服务复用
func (s *CustomerService) GetModel(ctx context.Context, id int64) (*model.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if customer == nil {
		return nil, apperr.NotFound("客户 %d 不存在", id)
	}
	return customer, nil
}

// ListByStore 门店客户列表
func (s *CustomerService) ListByStore(ctx context.Context, storeID int64) ([]dto.CustomerVO, error) {
	customers, err := s.customerRepo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	vos := make([]dto.CustomerVO, 0, len(customers))
	for i := range customers {
		vos = append(vos, *toCustomerVO(&customers[i]))
	}
	return vos, nil
}

// Update 更新客户
func (s *CustomerService) Update(ctx context.Context, id int64, req *dto.UpdateCustomerRequest) (*dto.CustomerVO, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if customer == nil {
		return nil, apperr.NotFound("客户 %d 不存在", id)
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	if len(fields) > 0 {
		if err := s.customerRepo.UpdateFields(ctx, id, fields); err != nil {
			return nil, apperr.Internal(err)
		}
	}
	return s.Get(ctx, id)
}

// Delete 删除客户，级联清理其订单与咨询
func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return apperr.Internal(err)
	}
	if customer == nil {
		return apperr.NotFound("客户 %d 不存在", id)
	}
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// ==================== 批量导入导出 ====================

// BulkImport 批量导入客户，按文件后缀解析 csv / xlsx。
// 全量导入或一条不导：任何一行解析失败或撞库冲突，整批回滚。
func (s *CustomerService) BulkImport(ctx context.Context, storeID int64, filename string, data []byte) (*dto.BulkImportResponse, error) {
	store, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if store == nil {
		return nil, apperr.NotFound("门店 %d 不存在", storeID)
	}

	rows, err := importer.ParseCustomers(filename, data)
	if err != nil {
		return nil, apperr.Validation("导入文件不合法: %v", err)
	}
	if len(rows) == 0 {
		return nil, apperr.Validation("导入文件没有数据行")
	}

	// 店内手机号去重：与库内已有客户比对，文件内部也不允许重复
	existing, err := s.customerRepo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	seen := make(map[string]bool, len(existing)+len(rows))
	for i := range existing {
		seen[existing[i].Phone] = true
	}

	customers := make([]model.Customer, 0, len(rows))
	for _, row := range rows {
		if seen[row.Phone] {
			return nil, apperr.Conflict("第 %d 行: 手机号 %s 重复", row.Line, row.Phone)
		}
		seen[row.Phone] = true
		customers = append(customers, model.Customer{
			Name:    row.Name,
			Email:   row.Email,
			Phone:   row.Phone,
			Address: row.Address,
			StoreID: storeID,
		})
	}

	if err := s.customerRepo.CreateBatch(ctx, customers); err != nil {
		return nil, apperr.Internal(err)
	}
	return &dto.BulkImportResponse{Imported: len(customers)}, nil
}

// ExportXLSX 导出门店客户清单
func (s *CustomerService) ExportXLSX(ctx context.Context, storeID int64) ([]byte, error) {
	store, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if store == nil {
		return nil, apperr.NotFound("门店 %d 不存在", storeID)
	}

	customers, err := s.customerRepo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	out, err := importer.ExportCustomersXLSX(customers)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}
