package repository

import (
	"context"
	"testing"

	"storelink_erp_v1/internal/model"
)

// 硬删除语义：父实体删除后，子表数据由数据库级联清理

func TestDeleteStore_CascadesToChildren(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	store := seedStore(t, db)

	customer := &model.Customer{Name: "李四", Phone: "13900000001", Email: "lisi@example.com", StoreID: store.ID}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("造客户失败: %v", err)
	}
	product := &model.Product{Name: "保温杯", Price: 25, StoreID: store.ID}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("造商品失败: %v", err)
	}
	order := &model.Order{
		StoreID:    store.ID,
		CustomerID: customer.ID,
		Total:      50,
		Status:     model.OrderStatusPending,
		Items:      []model.OrderItem{{ProductID: product.ID, Quantity: 2, Price: 25}},
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("造订单失败: %v", err)
	}

	storeRepo := NewStoreRepository(db)
	if err := storeRepo.Delete(ctx, store.ID); err != nil {
		t.Fatalf("删除门店失败: %v", err)
	}

	var count int64
	db.Model(&model.Customer{}).Where("store_id = ?", store.ID).Count(&count)
	if count != 0 {
		t.Fatalf("门店删除后客户应级联清理，剩余 %d", count)
	}
	db.Model(&model.Order{}).Where("store_id = ?", store.ID).Count(&count)
	if count != 0 {
		t.Fatalf("门店删除后订单应级联清理，剩余 %d", count)
	}
	db.Model(&model.OrderItem{}).Count(&count)
	if count != 0 {
		t.Fatalf("订单级联删除后订单项应清理，剩余 %d", count)
	}
	db.Model(&model.Product{}).Where("store_id = ?", store.ID).Count(&count)
	if count != 0 {
		t.Fatalf("门店删除后商品应级联清理，剩余 %d", count)
	}
}

func TestDeleteCustomer_CascadesToOrdersAndInquiries(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	store := seedStore(t, db)

	customer := &model.Customer{Name: "王五", Phone: "13900000002", StoreID: store.ID}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("造客户失败: %v", err)
	}
	order := &model.Order{StoreID: store.ID, CustomerID: customer.ID, Total: 10, Status: model.OrderStatusPending}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("造订单失败: %v", err)
	}
	inquiry := &model.Inquiry{CustomerID: customer.ID, StoreID: store.ID, Subject: "发货时间", Message: "何时发货", Status: model.InquiryStatusPending}
	if err := db.Create(inquiry).Error; err != nil {
		t.Fatalf("造咨询失败: %v", err)
	}

	customerRepo := NewCustomerRepository(db)
	if err := customerRepo.Delete(ctx, customer.ID); err != nil {
		t.Fatalf("删除客户失败: %v", err)
	}

	var count int64
	db.Model(&model.Order{}).Where("customer_id = ?", customer.ID).Count(&count)
	if count != 0 {
		t.Fatalf("客户删除后订单应级联清理，剩余 %d", count)
	}
	db.Model(&model.Inquiry{}).Where("customer_id = ?", customer.ID).Count(&count)
	if count != 0 {
		t.Fatalf("客户删除后咨询应级联清理，剩余 %d", count)
	}
}

func TestOrderRepo_CreateWithItemsAndPreload(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	store := seedStore(t, db)

	customer := &model.Customer{Name: "赵六", Phone: "13900000003", StoreID: store.ID}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("造客户失败: %v", err)
	}
	product := &model.Product{Name: "马克杯", Price: 12.5, StoreID: store.ID}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("造商品失败: %v", err)
	}

	orderRepo := NewOrderRepository(db)
	order := &model.Order{
		StoreID:    store.ID,
		CustomerID: customer.ID,
		Total:      25,
		Status:     model.OrderStatusPending,
		Items:      []model.OrderItem{{ProductID: product.ID, Quantity: 2, Price: 12.5}},
	}
	if err := orderRepo.CreateWithItems(ctx, order); err != nil {
		t.Fatalf("创建订单失败: %v", err)
	}

	got, err := orderRepo.GetByIDWithRelations(ctx, order.ID)
	if err != nil {
		t.Fatalf("查询订单失败: %v", err)
	}
	if got == nil {
		t.Fatal("订单应存在")
	}
	if len(got.Items) != 1 {
		t.Fatalf("应带 1 条明细，实际 %d", len(got.Items))
	}
	if got.Items[0].Product == nil || got.Items[0].Product.Name != "马克杯" {
		t.Fatal("明细应带商品信息")
	}
	if got.Customer == nil || got.Customer.Name != "赵六" {
		t.Fatal("订单应带客户信息")
	}
}
