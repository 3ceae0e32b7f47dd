package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"storelink_erp_v1/internal/api/dto"
	"storelink_erp_v1/internal/apperr"
	"storelink_erp_v1/internal/model"
	"storelink_erp_v1/internal/repository"
)

// ==================== ProductService 商品服务 ====================

// ProductService 商品管理，图片走 StorageProvider
type ProductService struct {
	productRepo repository.ProductRepository
	storeRepo   repository.StoreRepository
	storage     StorageProvider
}

// NewProductService 创建商品服务
func NewProductService(
	productRepo repository.ProductRepository,
	storeRepo repository.StoreRepository,
	storage StorageProvider,
) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		storeRepo:   storeRepo,
		storage:     storage,
	}
}

// 签名地址有效期，私有存储时客户端在此窗口内取图
const imageURLTTL = 15 * time.Minute

func (s *ProductService) toProductVO(ctx context.Context, p *model.Product) *dto.ProductVO {
	return &dto.ProductVO{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		ImageURL:    s.imageURL(ctx, p.ImagePath),
		StoreID:     p.StoreID,
		CreatedAt:   p.CreatedAt,
	}
}

// imageURL 把落库的图片地址换成对外可访问的签名地址。
// 公开存储的签名就是原地址本身，签名失败时退回原地址。
func (s *ProductService) imageURL(ctx context.Context, path string) string {
	if path == "" {
		return ""
	}
	signed, err := s.storage.GetSignedURL(ctx, path, imageURLTTL)
	if err != nil {
		zap.L().Warn("图片地址签名失败", zap.String("path", path), zap.Error(err))
		return path
	}
	return signed
}

// Create 创建商品，image 可为空
func (s *ProductService) Create(ctx context.Context, req *dto.CreateProductRequest, imageName string, imageData []byte) (*dto.ProductVO, error) {
	store, err := s.storeRepo.GetByID(ctx, req.StoreID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if store == nil {
		return nil, apperr.NotFound("门店 %d 不存在", req.StoreID)
	}

	product := &model.Product{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		StoreID:     req.StoreID,
	}

	if len(imageData) > 0 {
		url, err := s.storage.Upload(ctx, imageData, imageName, "")
		if err != nil {
			return nil, apperr.Internal(err)
		}
		product.ImagePath = url
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, apperr.Internal(err)
	}
	return s.toProductVO(ctx, product), nil
}

// Get 查商品
func (s *ProductService) Get(ctx context.Context, id int64) (*dto.ProductVO, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if product == nil {
		return nil, apperr.NotFound("商品 %d 不存在", id)
	}
	return s.toProductVO(ctx, product), nil
}

// ListByStore 门店商品列表
func (s *ProductService) ListByStore(ctx context.Context, storeID int64) ([]dto.ProductVO, error) {
	products, err := s.productRepo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	vos := make([]dto.ProductVO, 0, len(products))
	for i := range products {
		vos = append(vos, *s.toProductVO(ctx, &products[i]))
	}
	return vos, nil
}

// Update 更新商品，带新图片时替换旧图
func (s *ProductService) Update(ctx context.Context, id int64, req *dto.UpdateProductRequest, imageName string, imageData []byte) (*dto.ProductVO, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if product == nil {
		return nil, apperr.NotFound("商品 %d 不存在", id)
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}

	if len(imageData) > 0 {
		url, err := s.storage.Upload(ctx, imageData, imageName, "")
		if err != nil {
			return nil, apperr.Internal(err)
		}
		if product.ImagePath != "" {
			_ = s.storage.Delete(ctx, product.ImagePath)
		}
		fields["image_path"] = url
	}

	if len(fields) > 0 {
		if err := s.productRepo.UpdateFields(ctx, id, fields); err != nil {
			return nil, apperr.Internal(err)
		}
	}
	return s.Get(ctx, id)
}

// Delete 删除商品并清理图片
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return apperr.Internal(err)
	}
	if product == nil {
		return apperr.NotFound("商品 %d 不存在", id)
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return apperr.Internal(err)
	}
	if product.ImagePath != "" {
		_ = s.storage.Delete(ctx, product.ImagePath)
	}
	return nil
}
