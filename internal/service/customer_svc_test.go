package service

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"storelink_erp_v1/internal/api/dto"
	"storelink_erp_v1/internal/apperr"
	"storelink_erp_v1/internal/model"
	"storelink_erp_v1/internal/repository"
)

func newTestCustomerService(t *testing.T) (*CustomerService, *gorm.DB, *model.Store) {
	t.Helper()
	db := setupTestDB(t)
	_, store := seedOwnerStore(t, db)
	svc := NewCustomerService(
		repository.NewCustomerRepository(db),
		repository.NewStoreRepository(db),
	)
	return svc, db, store
}

func TestCustomerService_Create_PhoneConflictInStore(t *testing.T) {
	svc, _, store := newTestCustomerService(t)
	ctx := context.Background()

	req := &dto.CreateCustomerRequest{Name: "王五", Email: "w@x.com", Phone: "13900000001", StoreID: store.ID}
	if _, err := svc.Create(ctx, req); err != nil {
		t.Fatalf("建客户失败: %v", err)
	}
	_, err := svc.Create(ctx, &dto.CreateCustomerRequest{Name: "赵六", Email: "z@x.com", Phone: "13900000001", StoreID: store.ID})
	if !errors.Is(err, apperr.Conflict("")) {
		t.Fatalf("同店重复手机号应返回 CONFLICT，实际: %v", err)
	}
}

func TestCustomerService_BulkImport_CSV(t *testing.T) {
	svc, db, store := newTestCustomerService(t)

	csvData := []byte("Customer_Name,Email Address,Mobile Number,Address\n" +
		"张三,zs@example.com,+86 139-0000-0001,上海市\n" +
		"李四,ls@example.com,13900000002,北京市\n")

	resp, err := svc.BulkImport(context.Background(), store.ID, "customers.csv", csvData)
	if err != nil {
		t.Fatalf("导入失败: %v", err)
	}
	if resp.Imported != 2 {
		t.Fatalf("应导入 2 条，实际 %d", resp.Imported)
	}

	var c model.Customer
	if err := db.Where("name = ?", "张三").First(&c).Error; err != nil {
		t.Fatalf("查导入客户失败: %v", err)
	}
	if c.Phone != "8613900000001" {
		t.Fatalf("手机号应只留数字，实际 %q", c.Phone)
	}
	if c.StoreID != store.ID {
		t.Fatalf("客户应挂在门店 %d，实际 %d", store.ID, c.StoreID)
	}
}

func TestCustomerService_BulkImport_BadRowNothingPersisted(t *testing.T) {
	svc, db, store := newTestCustomerService(t)

	// 第 3 行缺手机号，整批回绝
	csvData := []byte("name,email,phone\n" +
		"张三,zs@example.com,13900000001\n" +
		"李四,ls@example.com,\n")

	_, err := svc.BulkImport(context.Background(), store.ID, "customers.csv", csvData)
	if !errors.Is(err, apperr.Validation("")) {
		t.Fatalf("坏行应返回 VALIDATION，实际: %v", err)
	}

	var count int64
	db.Model(&model.Customer{}).Count(&count)
	if count != 0 {
		t.Fatalf("导入失败后不应落任何客户，实际 %d 条", count)
	}
}

func TestCustomerService_BulkImport_DuplicateAgainstExisting(t *testing.T) {
	svc, db, store := newTestCustomerService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, &dto.CreateCustomerRequest{
		Name: "老客户", Email: "old@x.com", Phone: "13900000001", StoreID: store.ID,
	}); err != nil {
		t.Fatalf("建客户失败: %v", err)
	}

	csvData := []byte("name,email,phone\n新客户,new@x.com,13900000001\n")
	_, err := svc.BulkImport(ctx, store.ID, "customers.csv", csvData)
	if !errors.Is(err, apperr.Conflict("")) {
		t.Fatalf("撞库手机号应返回 CONFLICT，实际: %v", err)
	}

	var count int64
	db.Model(&model.Customer{}).Count(&count)
	if count != 1 {
		t.Fatalf("冲突时不应新增客户，实际 %d 条", count)
	}
}

func TestCustomerService_BulkImport_DuplicateWithinFile(t *testing.T) {
	svc, _, store := newTestCustomerService(t)

	csvData := []byte("name,email,phone\n" +
		"甲,a@x.com,13900000001\n" +
		"乙,b@x.com,13900000001\n")
	_, err := svc.BulkImport(context.Background(), store.ID, "customers.csv", csvData)
	if !errors.Is(err, apperr.Conflict("")) {
		t.Fatalf("文件内重复手机号应返回 CONFLICT，实际: %v", err)
	}
}

func TestCustomerService_BulkImport_UnsupportedExtension(t *testing.T) {
	svc, _, store := newTestCustomerService(t)

	_, err := svc.BulkImport(context.Background(), store.ID, "customers.pdf", []byte("x"))
	if !errors.Is(err, apperr.Validation("")) {
		t.Fatalf("不支持的文件类型应返回 VALIDATION，实际: %v", err)
	}
}

func TestCustomerService_ExportXLSX(t *testing.T) {
	svc, _, store := newTestCustomerService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, &dto.CreateCustomerRequest{
		Name: "张三", Email: "zs@x.com", Phone: "13900000001", StoreID: store.ID,
	}); err != nil {
		t.Fatalf("建客户失败: %v", err)
	}

	data, err := svc.ExportXLSX(ctx, store.ID)
	if err != nil {
		t.Fatalf("导出失败: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("导出内容不应为空")
	}
}
