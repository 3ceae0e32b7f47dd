package service

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"storelink_erp_v1/internal/api/dto"
	"storelink_erp_v1/internal/model"
	"storelink_erp_v1/internal/repository"
)

func seedInvoiceOrder(t *testing.T, discount float64) (*OrderService, *gorm.DB, int64) {
	t.Helper()
	db := setupTestDB(t)
	_, store := seedOwnerStore(t, db)

	customer := &model.Customer{Name: "李四", Phone: "13900000001", StoreID: store.ID}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("造客户失败: %v", err)
	}
	product := &model.Product{Name: "保温杯", Price: 12.5, StoreID: store.ID}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("造商品失败: %v", err)
	}

	orders := NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewCustomerRepository(db),
		repository.NewProductRepository(db),
		repository.NewStoreRepository(db),
	)
	vo, err := orders.Create(context.Background(), &dto.CreateOrderRequest{
		StoreID:    store.ID,
		CustomerID: customer.ID,
		Discount:   discount,
		Items:      []dto.OrderItemInput{{ProductID: product.ID, Quantity: 2, Price: 12.5}}, // 小计 25.00
	})
	if err != nil {
		t.Fatalf("下单失败: %v", err)
	}
	return orders, db, vo.ID
}

func TestInvoiceService_DiscountMode(t *testing.T) {
	orders, _, orderID := seedInvoiceOrder(t, 10)
	svc := NewInvoiceService(orders, nil, InvoiceOptions{Mode: InvoiceModeDiscount, Currency: "$"})

	inv, err := svc.Generate(context.Background(), orderID)
	if err != nil {
		t.Fatalf("开票失败: %v", err)
	}

	if inv.InvoiceNo != InvoiceNo(orderID) {
		t.Fatalf("发票号应为 INV-%d，实际 %s", orderID, inv.InvoiceNo)
	}
	if inv.Subtotal != "25.00" {
		t.Fatalf("小计应为 25.00，实际 %s", inv.Subtotal)
	}
	if inv.DiscountAmt != "2.50" {
		t.Fatalf("折扣额应为 2.50，实际 %s", inv.DiscountAmt)
	}
	if inv.Total != "22.50" {
		t.Fatalf("应付应为 22.50，实际 %s", inv.Total)
	}
	if inv.TaxAmt != "" {
		t.Fatalf("折扣模式不应有税费，实际 %s", inv.TaxAmt)
	}
}

func TestInvoiceService_DiscountMode_NoDiscount(t *testing.T) {
	orders, _, orderID := seedInvoiceOrder(t, 0)
	svc := NewInvoiceService(orders, nil, InvoiceOptions{Mode: InvoiceModeDiscount})

	inv, err := svc.Generate(context.Background(), orderID)
	if err != nil {
		t.Fatalf("开票失败: %v", err)
	}
	if inv.Total != "25.00" {
		t.Fatalf("无折扣应付应等于小计 25.00，实际 %s", inv.Total)
	}
	if inv.DiscountAmt != "" {
		t.Fatalf("无折扣不应有折扣行，实际 %s", inv.DiscountAmt)
	}
}

func TestInvoiceService_FlatTaxMode(t *testing.T) {
	// flat_tax 模式忽略订单折扣，加收固定税率
	orders, _, orderID := seedInvoiceOrder(t, 10)
	svc := NewInvoiceService(orders, nil, InvoiceOptions{Mode: InvoiceModeFlatTax, TaxPct: 5})

	inv, err := svc.Generate(context.Background(), orderID)
	if err != nil {
		t.Fatalf("开票失败: %v", err)
	}
	if inv.TaxAmt != "1.25" {
		t.Fatalf("税费应为 1.25，实际 %s", inv.TaxAmt)
	}
	if inv.Total != "26.25" {
		t.Fatalf("应付应为 26.25，实际 %s", inv.Total)
	}
	if inv.DiscountAmt != "" {
		t.Fatalf("flat_tax 模式不应出折扣行，实际 %s", inv.DiscountAmt)
	}
}

func TestInvoiceService_Idempotent(t *testing.T) {
	orders, _, orderID := seedInvoiceOrder(t, 20)
	svc := NewInvoiceService(orders, nil, InvoiceOptions{Mode: InvoiceModeDiscount})
	ctx := context.Background()

	first, err := svc.Generate(ctx, orderID)
	if err != nil {
		t.Fatalf("开票失败: %v", err)
	}
	second, err := svc.Generate(ctx, orderID)
	if err != nil {
		t.Fatalf("重复开票失败: %v", err)
	}
	if first.Total != second.Total || first.InvoiceNo != second.InvoiceNo {
		t.Fatalf("重复开票结果应一致: %s/%s vs %s/%s",
			first.InvoiceNo, first.Total, second.InvoiceNo, second.Total)
	}
}
