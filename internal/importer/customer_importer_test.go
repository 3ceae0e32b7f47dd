package importer

import (
	"strings"
	"testing"
	"time"

	"storelink_erp_v1/internal/model"
)

func TestParseCustomersCSV_HeaderAliases(t *testing.T) {
	data := "Customer_Name,Email Address,Mobile Number,Address\n" +
		"张三,zs@example.com,13900000001,上海市\n"

	rows, err := ParseCustomersCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("应解析出 1 行，实际 %d", len(rows))
	}
	r := rows[0]
	if r.Name != "张三" || r.Email != "zs@example.com" || r.Phone != "13900000001" || r.Address != "上海市" {
		t.Fatalf("列映射不正确: %+v", r)
	}
	if r.Line != 2 {
		t.Fatalf("数据行号应为 2，实际 %d", r.Line)
	}
}

func TestParseCustomersCSV_PhoneDigitsOnly(t *testing.T) {
	data := "name,email,phone\n" +
		"客户,c@x.com,+1 (555) 123-4567\n"

	rows, err := ParseCustomersCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if rows[0].Phone != "15551234567" {
		t.Fatalf("手机号应只留数字，实际 %q", rows[0].Phone)
	}
}

func TestParseCustomersCSV_MissingRequiredColumn(t *testing.T) {
	data := "name,email\n张三,zs@x.com\n"

	_, err := ParseCustomersCSV(strings.NewReader(data))
	if err == nil || !strings.Contains(err.Error(), "phone") {
		t.Fatalf("缺 phone 列应报错并点名，实际: %v", err)
	}
}

func TestParseCustomersCSV_EmptyFile(t *testing.T) {
	if _, err := ParseCustomersCSV(strings.NewReader("")); err == nil {
		t.Fatalf("空文件应报错")
	}
}

func TestParseCustomersCSV_SkipsBlankRows(t *testing.T) {
	data := "name,email,phone\n" +
		"甲,a@x.com,13900000001\n" +
		",,\n" +
		"乙,b@x.com,13900000002\n"

	rows, err := ParseCustomersCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("空行应跳过，期望 2 行，实际 %d", len(rows))
	}
}

func TestParseCustomersCSV_BadRowFailsFast(t *testing.T) {
	data := "name,email,phone\n" +
		"甲,a@x.com,13900000001\n" +
		"乙,b@x.com,无号码\n"

	_, err := ParseCustomersCSV(strings.NewReader(data))
	rowErr, ok := err.(RowError)
	if !ok {
		t.Fatalf("坏行应返回 RowError，实际: %v", err)
	}
	if rowErr.Line != 3 {
		t.Fatalf("错误行号应为 3，实际 %d", rowErr.Line)
	}
}

func TestParseCustomers_UnsupportedExtension(t *testing.T) {
	if _, err := ParseCustomers("customers.txt", []byte("x")); err == nil {
		t.Fatalf("不支持的后缀应报错")
	}
}

func TestExportAndReimportXLSX(t *testing.T) {
	customers := []model.Customer{
		{Name: "张三", Email: "zs@x.com", Phone: "13900000001", Address: "上海市"},
		{Name: "李四", Email: "ls@x.com", Phone: "13900000002", Address: "北京市"},
	}
	customers[0].CreatedAt = time.Now()
	customers[1].CreatedAt = time.Now()

	data, err := ExportCustomersXLSX(customers)
	if err != nil {
		t.Fatalf("导出失败: %v", err)
	}

	parsed, err := ParseCustomers("customers.xlsx", data)
	if err != nil {
		t.Fatalf("回读导出文件失败: %v", err)
	}
	if len(parsed) != 2 {
		t.Fatalf("应回读 2 行，实际 %d", len(parsed))
	}
	if parsed[0].Name != "张三" || parsed[1].Phone != "13900000002" {
		t.Fatalf("回读内容不正确: %+v", parsed)
	}
}
