package service

import (
	"context"

	"github.com/shopspring/decimal"

	"storelink_erp_v1/internal/api/dto"
	"storelink_erp_v1/internal/apperr"
	"storelink_erp_v1/internal/model"
	"storelink_erp_v1/internal/repository"
)

// ==================== OrderService 订单服务 ====================

// OrderService 下单与订单查询
type OrderService struct {
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	storeRepo    repository.StoreRepository
}

// NewOrderService 创建订单服务
func NewOrderService(
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	storeRepo repository.StoreRepository,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		storeRepo:    storeRepo,
	}
}

func toOrderItemVO(item *model.OrderItem) dto.OrderItemVO {
	vo := dto.OrderItemVO{
		ID:        item.ID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		Price:     item.Price,
		Subtotal:  item.Subtotal(),
	}
	if item.Product != nil {
		vo.ProductName = item.Product.Name
	}
	return vo
}

func toOrderVO(order *model.Order) *dto.OrderVO {
	vo := &dto.OrderVO{
		ID:         order.ID,
		StoreID:    order.StoreID,
		CustomerID: order.CustomerID,
		Total:      order.Total,
		Discount:   order.Discount,
		Status:     order.Status,
		ItemCount:  order.ItemCount(),
		CreatedAt:  order.CreatedAt,
	}
	if order.Customer != nil {
		vo.CustomerName = order.Customer.Name
	}
	for i := range order.Items {
		vo.Items = append(vo.Items, toOrderItemVO(&order.Items[i]))
	}
	return vo
}

// Create 创建订单。
// 校验客户归属门店、商品归属门店；单价取下单时刻的商品价快照；
// Total = Σ(数量×单价)，精确到分；折扣只入库不折总额，开票时才生效。
// 订单头与明细同一事务写入，任何校验失败均不落库。
func (s *OrderService) Create(ctx context.Context, req *dto.CreateOrderRequest) (*dto.OrderVO, error) {
	store, err := s.storeRepo.GetByID(ctx, req.StoreID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if store == nil {
		return nil, apperr.NotFound("门店 %d 不存在", req.StoreID)
	}

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

	total := decimal.Zero
	items := make([]model.OrderItem, 0, len(req.Items))
	for _, in := range req.Items {
		if in.Quantity <= 0 {
			return nil, apperr.Validation("商品 %d 数量必须大于 0", in.ProductID)
		}
		if in.Price <= 0 {
			return nil, apperr.Validation("商品 %d 单价必须大于 0", in.ProductID)
		}
		product, err := s.productRepo.GetByID(ctx, in.ProductID)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		if product == nil {
			return nil, apperr.NotFound("商品 %d 不存在", in.ProductID)
		}
		if product.StoreID != req.StoreID {
			return nil, apperr.Validation("商品 %d 不属于门店 %d", in.ProductID, req.StoreID)
		}

		// 单价以下单时的报价为准，落库后不随商品改价变动
		line := decimal.NewFromFloat(in.Price).Mul(decimal.NewFromInt(int64(in.Quantity)))
		total = total.Add(line)
		items = append(items, model.OrderItem{
			ProductID: product.ID,
			Quantity:  in.Quantity,
			Price:     in.Price,
		})
	}

	order := &model.Order{
		StoreID:    req.StoreID,
		CustomerID: req.CustomerID,
		Total:      total.Round(2).InexactFloat64(),
		Discount:   req.Discount,
		Status:     model.OrderStatusPending,
		Items:      items,
	}
	if err := s.orderRepo.CreateWithItems(ctx, order); err != nil {
		return nil, apperr.Internal(err)
	}
	return toOrderVO(order), nil
}

// Get 订单详情，带明细、商品与客户
func (s *OrderService) Get(ctx context.Context, id int64) (*dto.OrderVO, error) {
	order, err := s.orderRepo.GetByIDWithRelations(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if order == nil {
		return nil, apperr.NotFound("订单 %d 不存在", id)
	}
	return toOrderVO(order), nil
}

// GetModel 查订单实体（带全部关联），供开票复用
func (s *OrderService) GetModel(ctx context.Context, id int64) (*model.Order, error) {
	order, err := s.orderRepo.GetByIDWithRelations(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if order == nil {
		return nil, apperr.NotFound("订单 %d 不存在", id)
	}
	return order, nil
}

// ListByCustomer 客户订单列表
func (s *OrderService) ListByCustomer(ctx context.Context, customerID int64) ([]dto.OrderVO, error) {
	orders, err := s.orderRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	vos := make([]dto.OrderVO, 0, len(orders))
	for i := range orders {
		vos = append(vos, *toOrderVO(&orders[i]))
	}
	return vos, nil
}

// ListByStore 门店订单列表
func (s *OrderService) ListByStore(ctx context.Context, storeID int64) ([]dto.OrderVO, error) {
	orders, err := s.orderRepo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	vos := make([]dto.OrderVO, 0, len(orders))
	for i := range orders {
		vos = append(vos, *toOrderVO(&orders[i]))
	}
	return vos, nil
}

// UpdateStatus 更新订单状态
func (s *OrderService) UpdateStatus(ctx context.Context, id int64, status string) (*dto.OrderVO, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if order == nil {
		return nil, apperr.NotFound("订单 %d 不存在", id)
	}
	if err := s.orderRepo.UpdateFields(ctx, id, map[string]interface{}{"status": status}); err != nil {
		return nil, apperr.Internal(err)
	}
	return s.Get(ctx, id)
}

// Delete 删除订单，级联清理明细
func (s *OrderService) Delete(ctx context.Context, id int64) error {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return apperr.Internal(err)
	}
	if order == nil {
		return apperr.NotFound("订单 %d 不存在", id)
	}
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
