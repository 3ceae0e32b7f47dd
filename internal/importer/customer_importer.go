package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"storelink_erp_v1/internal/model"
)

// ==================== 客户批量导入解析 ====================

// CustomerRow 导入文件中的一行客户
type CustomerRow struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Line    int // 数据行号（含表头，从 1 起）
}

// RowError 行级错误
type RowError struct {
	Line   int
	Reason string
}

func (e RowError) Error() string {
	return fmt.Sprintf("第 %d 行: %s", e.Line, e.Reason)
}

// 列名别名，全部小写去空格后比对
var headerAliases = map[string]string{
	"name":          "name",
	"customer_name": "name",
	"email":         "email",
	"email_address": "email",
	"phone":         "phone",
	"phone_number":  "phone",
	"mobile":        "phone",
	"mobile_number": "phone",
	"address":       "address",
}

var requiredColumns = []string{"name", "email", "phone"}

// normalizeHeader 清洗单个表头：小写、去首尾空白、空格转下划线
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, " ", "_")
	if canonical, ok := headerAliases[h]; ok {
		return canonical
	}
	return h
}

// digitsOnly 手机号只保留数字
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// resolveColumns 把表头映射为 列名 -> 下标，缺必填列时报错
func resolveColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[normalizeHeader(h)] = i
	}
	var missing []string
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("缺少必填列: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

func cell(row []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// buildRow 单行转 CustomerRow，校验必填
func buildRow(raw []string, cols map[string]int, line int) (CustomerRow, error) {
	row := CustomerRow{
		Name:    cell(raw, cols, "name"),
		Email:   cell(raw, cols, "email"),
		Phone:   digitsOnly(cell(raw, cols, "phone")),
		Address: cell(raw, cols, "address"),
		Line:    line,
	}
	if row.Name == "" {
		return row, RowError{Line: line, Reason: "name 为空"}
	}
	if row.Email == "" {
		return row, RowError{Line: line, Reason: "email 为空"}
	}
	if row.Phone == "" {
		return row, RowError{Line: line, Reason: "phone 为空或不含数字"}
	}
	return row, nil
}

// ParseCustomers 按文件名后缀选择 CSV 或 XLSX 解析。
// 任意一行不合法立即返回错误，调用方不应落库（全量导入或一条不导）。
func ParseCustomers(filename string, data []byte) ([]CustomerRow, error) {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".csv"):
		return ParseCustomersCSV(bytes.NewReader(data))
	case strings.HasSuffix(lower, ".xlsx"):
		return ParseCustomersXLSX(data)
	default:
		return nil, fmt.Errorf("不支持的文件类型: %s，仅支持 csv / xlsx", filename)
	}
}

// ParseCustomersCSV 解析 CSV
func ParseCustomersCSV(r io.Reader) ([]CustomerRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // 行宽不一致交给逐列取值处理

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("文件为空")
	}
	if err != nil {
		return nil, fmt.Errorf("读取表头失败: %v", err)
	}

	cols, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	var rows []CustomerRow
	line := 1
	for {
		raw, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("第 %d 行读取失败: %v", line+1, err)
		}
		line++
		if isEmptyRow(raw) {
			continue
		}
		row, err := buildRow(raw, cols, line)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ParseCustomersXLSX 解析 XLSX，取第一个工作表
func ParseCustomersXLSX(data []byte) ([]CustomerRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("打开 xlsx 失败: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("文件为空")
	}

	allRows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("读取工作表失败: %v", err)
	}
	if len(allRows) == 0 {
		return nil, fmt.Errorf("文件为空")
	}

	cols, err := resolveColumns(allRows[0])
	if err != nil {
		return nil, err
	}

	var rows []CustomerRow
	for i, raw := range allRows[1:] {
		line := i + 2
		if isEmptyRow(raw) {
			continue
		}
		row, err := buildRow(raw, cols, line)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func isEmptyRow(raw []string) bool {
	for _, c := range raw {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// ==================== 客户导出 ====================

// ExportCustomersXLSX 客户清单导出为 xlsx 字节流
func ExportCustomersXLSX(customers []model.Customer) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := []interface{}{"id", "name", "email", "phone", "address", "created_at"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, c := range customers {
		row := []interface{}{
			c.ID, c.Name, c.Email, c.Phone, c.Address,
			c.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cellRef, &row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
