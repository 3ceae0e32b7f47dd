package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"storelink_erp_v1/internal/api/dto"
	"storelink_erp_v1/internal/apperr"
	"storelink_erp_v1/internal/model"
	"storelink_erp_v1/internal/repository"
)

// signingStorage 记录上传并给出带签名前缀的访问地址
type signingStorage struct {
	uploaded []string
	deleted  []string
}

func (s *signingStorage) Upload(_ context.Context, _ []byte, filename string, _ string) (string, error) {
	url := "https://store.example.com/" + filename
	s.uploaded = append(s.uploaded, url)
	return url, nil
}

func (s *signingStorage) Delete(_ context.Context, url string) error {
	s.deleted = append(s.deleted, url)
	return nil
}

func (s *signingStorage) GetSignedURL(_ context.Context, url string, _ time.Duration) (string, error) {
	return url + "?sig=abc", nil
}

func newTestProductService(t *testing.T) (*ProductService, *signingStorage, *model.Store) {
	t.Helper()
	db := setupTestDB(t)
	_, store := seedOwnerStore(t, db)
	storage := &signingStorage{}
	svc := NewProductService(
		repository.NewProductRepository(db),
		repository.NewStoreRepository(db),
		storage,
	)
	return svc, storage, store
}

func TestProductService_Create_UnknownStore(t *testing.T) {
	svc, _, _ := newTestProductService(t)

	_, err := svc.Create(context.Background(), &dto.CreateProductRequest{
		Name: "茶杯", Price: 12.5, StoreID: 999,
	}, "", nil)
	if !errors.Is(err, apperr.NotFound("")) {
		t.Fatalf("门店不存在应返回 NOT_FOUND，实际: %v", err)
	}
}

func TestProductService_ImageURLIsSigned(t *testing.T) {
	svc, storage, store := newTestProductService(t)
	ctx := context.Background()

	vo, err := svc.Create(ctx, &dto.CreateProductRequest{
		Name: "茶杯", Price: 12.5, StoreID: store.ID,
	}, "cup.png", []byte("fake-png"))
	if err != nil {
		t.Fatalf("建商品失败: %v", err)
	}
	if len(storage.uploaded) != 1 {
		t.Fatalf("应上传 1 个文件，实际 %d", len(storage.uploaded))
	}
	// 对外地址走签名，落库地址不带签名参数
	if !strings.HasSuffix(vo.ImageURL, "?sig=abc") {
		t.Fatalf("响应中的图片地址应为签名地址，实际 %q", vo.ImageURL)
	}

	got, err := svc.Get(ctx, vo.ID)
	if err != nil {
		t.Fatalf("查商品失败: %v", err)
	}
	if got.ImageURL != storage.uploaded[0]+"?sig=abc" {
		t.Fatalf("查询返回的图片地址应为签名地址，实际 %q", got.ImageURL)
	}

	list, err := svc.ListByStore(ctx, store.ID)
	if err != nil {
		t.Fatalf("列商品失败: %v", err)
	}
	if len(list) != 1 || !strings.HasSuffix(list[0].ImageURL, "?sig=abc") {
		t.Fatalf("列表中的图片地址应为签名地址: %+v", list)
	}
}

func TestProductService_Delete_CleansImage(t *testing.T) {
	svc, storage, store := newTestProductService(t)
	ctx := context.Background()

	vo, err := svc.Create(ctx, &dto.CreateProductRequest{
		Name: "茶壶", Price: 58, StoreID: store.ID,
	}, "pot.png", []byte("fake-png"))
	if err != nil {
		t.Fatalf("建商品失败: %v", err)
	}

	if err := svc.Delete(ctx, vo.ID); err != nil {
		t.Fatalf("删商品失败: %v", err)
	}
	if len(storage.deleted) != 1 || storage.deleted[0] != storage.uploaded[0] {
		t.Fatalf("删除商品应清理图片: %+v", storage.deleted)
	}
}
