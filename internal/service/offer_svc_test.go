package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"storelink_erp_v1/internal/api/dto"
	"storelink_erp_v1/internal/apperr"
	"storelink_erp_v1/internal/model"
	"storelink_erp_v1/internal/repository"
)

func newTestOfferService(t *testing.T) (*OfferService, *gorm.DB, *model.Store) {
	t.Helper()
	db := setupTestDB(t)
	_, store := seedOwnerStore(t, db)

	notify := NewNotifyService(repository.NewNotificationRepository(db), &LogSMSSender{})
	svc := NewOfferService(
		repository.NewOfferRepository(db),
		repository.NewCustomerRepository(db),
		repository.NewStoreRepository(db),
		notify,
	)
	return svc, db, store
}

func TestOfferService_Send_StoreAudience(t *testing.T) {
	svc, db, store := newTestOfferService(t)
	ctx := context.Background()

	for i, phone := range []string{"13900000001", "13900000002", "13900000003"} {
		c := &model.Customer{Name: "客户", Phone: phone, StoreID: store.ID}
		if err := db.Create(c).Error; err != nil {
			t.Fatalf("造第 %d 个客户失败: %v", i+1, err)
		}
	}

	vo, err := svc.Create(ctx, &dto.CreateOfferRequest{
		Title:      "周年庆",
		Discount:   15,
		ValidUntil: time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		StoreID:    &store.ID,
	})
	if err != nil {
		t.Fatalf("建活动失败: %v", err)
	}

	result, err := svc.Send(ctx, vo.ID)
	if err != nil {
		t.Fatalf("群发失败: %v", err)
	}
	if result.Notified != 3 {
		t.Fatalf("应触达 3 个客户，实际 %d", result.Notified)
	}
	if result.Failed != 0 {
		t.Fatalf("日志发送器不应失败，实际 %d", result.Failed)
	}

	// 每个受众落一条通知记录
	var count int64
	db.Model(&model.Notification{}).Where("offer_id = ?", vo.ID).Count(&count)
	if count != 3 {
		t.Fatalf("应落 3 条通知记录，实际 %d", count)
	}
}

func TestOfferService_Send_SkipsPhonelessCustomer(t *testing.T) {
	svc, db, store := newTestOfferService(t)
	ctx := context.Background()

	withPhone := &model.Customer{Name: "有号", Phone: "13900000001", StoreID: store.ID}
	noPhone := &model.Customer{Name: "无号", StoreID: store.ID}
	if err := db.Create(withPhone).Error; err != nil {
		t.Fatalf("造客户失败: %v", err)
	}
	if err := db.Create(noPhone).Error; err != nil {
		t.Fatalf("造客户失败: %v", err)
	}

	vo, err := svc.Create(ctx, &dto.CreateOfferRequest{
		Title:      "会员日",
		Discount:   10,
		ValidUntil: time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		StoreID:    &store.ID,
	})
	if err != nil {
		t.Fatalf("建活动失败: %v", err)
	}

	result, err := svc.Send(ctx, vo.ID)
	if err != nil {
		t.Fatalf("群发失败: %v", err)
	}
	if result.Notified != 1 {
		t.Fatalf("无手机号客户不应计入触达，期望 1，实际 %d", result.Notified)
	}
	if result.Failed != 0 {
		t.Fatalf("跳过不算失败，实际 %d", result.Failed)
	}

	var count int64
	db.Model(&model.Notification{}).Where("customer_id = ?", noPhone.ID).Count(&count)
	if count != 0 {
		t.Fatalf("无手机号客户不应落通知记录，实际 %d", count)
	}
}

func TestOfferService_Send_GlobalAudience(t *testing.T) {
	svc, db, store := newTestOfferService(t)
	ctx := context.Background()

	other := &model.Store{Name: "分店", OwnerID: store.OwnerID}
	if err := db.Create(other).Error; err != nil {
		t.Fatalf("造门店失败: %v", err)
	}
	db.Create(&model.Customer{Name: "甲", Phone: "13900000001", StoreID: store.ID})
	db.Create(&model.Customer{Name: "乙", Phone: "13900000002", StoreID: other.ID})

	vo, err := svc.Create(ctx, &dto.CreateOfferRequest{
		Title:      "全平台大促",
		Discount:   20,
		ValidUntil: time.Now().Add(24 * time.Hour).Format(time.RFC3339),
	})
	if err != nil {
		t.Fatalf("建活动失败: %v", err)
	}

	result, err := svc.Send(ctx, vo.ID)
	if err != nil {
		t.Fatalf("群发失败: %v", err)
	}
	if result.Notified != 2 {
		t.Fatalf("全平台活动应触达全部 2 个客户，实际 %d", result.Notified)
	}
}

func TestOfferService_Send_ExpiredRejected(t *testing.T) {
	svc, db, store := newTestOfferService(t)
	ctx := context.Background()

	db.Create(&model.Customer{Name: "甲", Phone: "13900000001", StoreID: store.ID})

	// 直接落一条已过期活动
	offer := &model.Offer{
		Title:      "过期活动",
		Discount:   5,
		ValidUntil: time.Now().Add(-time.Hour),
		StoreID:    &store.ID,
		Channels:   []string{"sms"},
	}
	if err := db.Create(offer).Error; err != nil {
		t.Fatalf("造活动失败: %v", err)
	}

	_, err := svc.Send(ctx, offer.ID)
	if !errors.Is(err, apperr.Validation("")) {
		t.Fatalf("过期活动群发应返回 VALIDATION，实际: %v", err)
	}

	var count int64
	db.Model(&model.Notification{}).Count(&count)
	if count != 0 {
		t.Fatalf("过期活动不应落通知记录，实际 %d", count)
	}
}

func TestOfferService_Create_BadChannel(t *testing.T) {
	svc, _, store := newTestOfferService(t)

	_, err := svc.Create(context.Background(), &dto.CreateOfferRequest{
		Title:      "坏渠道",
		Discount:   5,
		ValidUntil: time.Now().Add(time.Hour).Format(time.RFC3339),
		StoreID:    &store.ID,
		Channels:   []string{"pigeon"},
	})
	if !errors.Is(err, apperr.Validation("")) {
		t.Fatalf("未知渠道应返回 VALIDATION，实际: %v", err)
	}
}

func TestOfferService_Update(t *testing.T) {
	svc, _, store := newTestOfferService(t)
	ctx := context.Background()

	vo, err := svc.Create(ctx, &dto.CreateOfferRequest{
		Title:      "周年庆",
		Discount:   15,
		ValidUntil: time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		StoreID:    &store.ID,
	})
	if err != nil {
		t.Fatalf("建活动失败: %v", err)
	}

	title := "双十一"
	discount := 30.0
	updated, err := svc.Update(ctx, vo.ID, &dto.UpdateOfferRequest{
		Title:    &title,
		Discount: &discount,
	})
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}
	if updated.Title != "双十一" || updated.Discount != 30 {
		t.Fatalf("更新未生效: %+v", updated)
	}

	// nil 字段不动
	if updated.Description != vo.Description {
		t.Fatalf("未指定字段不应改动")
	}

	badTime := "明天"
	if _, err := svc.Update(ctx, vo.ID, &dto.UpdateOfferRequest{ValidUntil: &badTime}); !errors.Is(err, apperr.Validation("")) {
		t.Fatalf("坏时间格式应返回 VALIDATION，实际: %v", err)
	}
}

func TestOfferService_ListByStore_IncludesGlobal(t *testing.T) {
	svc, _, store := newTestOfferService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, &dto.CreateOfferRequest{
		Title: "门店专属", Discount: 10,
		ValidUntil: time.Now().Add(time.Hour).Format(time.RFC3339),
		StoreID:    &store.ID,
	}); err != nil {
		t.Fatalf("建门店活动失败: %v", err)
	}
	if _, err := svc.Create(ctx, &dto.CreateOfferRequest{
		Title: "全平台", Discount: 10,
		ValidUntil: time.Now().Add(time.Hour).Format(time.RFC3339),
	}); err != nil {
		t.Fatalf("建全平台活动失败: %v", err)
	}

	vos, err := svc.ListByStore(ctx, store.ID)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if len(vos) != 2 {
		t.Fatalf("门店应看到专属+全平台共 2 个活动，实际 %d", len(vos))
	}
}
