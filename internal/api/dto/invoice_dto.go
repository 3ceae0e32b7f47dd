package dto

// ==================== 发票 ====================

// InvoiceLineVO 发票行
type InvoiceLineVO struct {
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Amount      string `json:"amount"`
}

// InvoiceVO 发票视图对象，金额一律两位小数字符串
type InvoiceVO struct {
	InvoiceNo    string          `json:"invoice_no"`
	OrderID      int64           `json:"order_id"`
	CustomerName string          `json:"customer_name"`
	StoreName    string          `json:"store_name"`
	Lines        []InvoiceLineVO `json:"lines"`
	Subtotal     string          `json:"subtotal"`
	DiscountPct  string          `json:"discount_pct,omitempty"`
	DiscountAmt  string          `json:"discount_amt,omitempty"`
	TaxPct       string          `json:"tax_pct,omitempty"`
	TaxAmt       string          `json:"tax_amt,omitempty"`
	Total        string          `json:"total"`
	Currency     string          `json:"currency"`
	IssuedAt     string          `json:"issued_at"`
}
