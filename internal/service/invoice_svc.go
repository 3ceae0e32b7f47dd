package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"storelink_erp_v1/internal/api/dto"
	"storelink_erp_v1/internal/apperr"
	"storelink_erp_v1/internal/model"
	"storelink_erp_v1/internal/render"
)

// ==================== InvoiceService 发票服务 ====================

// 计费模式
const (
	InvoiceModeDiscount = "discount" // 按订单折扣百分比减免
	InvoiceModeFlatTax  = "flat_tax" // 不打折，按固定税率加收
)

// InvoiceOptions 开票参数
type InvoiceOptions struct {
	Mode     string  // discount / flat_tax
	TaxPct   float64 // flat_tax 模式的税率百分比
	Currency string  // 货币符号
}

// InvoiceService 按订单开票。发票不落库，由订单数据即时推导，
// 同一订单重复开票结果一致。
type InvoiceService struct {
	orders   *OrderService
	renderer render.PDFRenderer
	opts     InvoiceOptions
}

// NewInvoiceService 创建发票服务，renderer 可为 nil（仅 JSON 开票）
func NewInvoiceService(orders *OrderService, renderer render.PDFRenderer, opts InvoiceOptions) *InvoiceService {
	if opts.Mode == "" {
		opts.Mode = InvoiceModeDiscount
	}
	if opts.Currency == "" {
		opts.Currency = "$"
	}
	return &InvoiceService{orders: orders, renderer: renderer, opts: opts}
}

// InvoiceNo 发票号规则: INV-{订单ID}
func InvoiceNo(orderID int64) string {
	return fmt.Sprintf("INV-%d", orderID)
}

// buildDocument 由订单推导发票单据，所有金额两位小数
func (s *InvoiceService) buildDocument(order *model.Order) *render.InvoiceDocument {
	doc := &render.InvoiceDocument{
		InvoiceNo: InvoiceNo(order.ID),
		IssuedAt:  time.Now().Format("2006-01-02 15:04"),
		Currency:  s.opts.Currency,
	}
	if order.Store != nil {
		doc.StoreName = order.Store.Name
		doc.StoreAddress = order.Store.Location
	}
	if order.Customer != nil {
		doc.CustomerName = order.Customer.Name
		doc.CustomerTel = order.Customer.Phone
	}

	subtotal := decimal.Zero
	for i := range order.Items {
		item := &order.Items[i]
		price := decimal.NewFromFloat(item.Price)
		amount := price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(amount)

		line := render.InvoiceLine{
			Quantity:  item.Quantity,
			UnitPrice: price.StringFixed(2),
			Amount:    amount.StringFixed(2),
		}
		if item.Product != nil {
			line.ProductName = item.Product.Name
		} else {
			line.ProductName = fmt.Sprintf("商品 %d", item.ProductID)
		}
		doc.Lines = append(doc.Lines, line)
	}
	doc.Subtotal = subtotal.StringFixed(2)

	hundred := decimal.NewFromInt(100)
	total := subtotal

	switch s.opts.Mode {
	case InvoiceModeFlatTax:
		taxPct := decimal.NewFromFloat(s.opts.TaxPct)
		taxAmt := subtotal.Mul(taxPct).Div(hundred).Round(2)
		total = subtotal.Add(taxAmt)
		doc.TaxPct = taxPct.StringFixed(1)
		doc.TaxAmt = taxAmt.StringFixed(2)
	default:
		// discount 模式：订单折扣百分比在开票时才兑现
		if order.Discount > 0 {
			discPct := decimal.NewFromFloat(order.Discount)
			discAmt := subtotal.Mul(discPct).Div(hundred).Round(2)
			total = subtotal.Sub(discAmt)
			doc.DiscountPct = discPct.StringFixed(1)
			doc.DiscountAmt = discAmt.StringFixed(2)
		}
	}
	doc.Total = total.Round(2).StringFixed(2)
	return doc
}

func toInvoiceVO(order *model.Order, doc *render.InvoiceDocument) *dto.InvoiceVO {
	vo := &dto.InvoiceVO{
		InvoiceNo:    doc.InvoiceNo,
		OrderID:      order.ID,
		CustomerName: doc.CustomerName,
		StoreName:    doc.StoreName,
		Subtotal:     doc.Subtotal,
		DiscountPct:  doc.DiscountPct,
		DiscountAmt:  doc.DiscountAmt,
		TaxPct:       doc.TaxPct,
		TaxAmt:       doc.TaxAmt,
		Total:        doc.Total,
		Currency:     doc.Currency,
		IssuedAt:     doc.IssuedAt,
	}
	for _, line := range doc.Lines {
		vo.Lines = append(vo.Lines, dto.InvoiceLineVO{
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Amount:      line.Amount,
		})
	}
	return vo
}

// Generate 生成发票
func (s *InvoiceService) Generate(ctx context.Context, orderID int64) (*dto.InvoiceVO, error) {
	order, err := s.orders.GetModel(ctx, orderID)
	if err != nil {
		return nil, err
	}
	doc := s.buildDocument(order)
	return toInvoiceVO(order, doc), nil
}

// GeneratePDF 生成发票 PDF
func (s *InvoiceService) GeneratePDF(ctx context.Context, orderID int64) ([]byte, error) {
	if s.renderer == nil {
		return nil, apperr.Validation("当前环境未启用 PDF 渲染")
	}
	order, err := s.orders.GetModel(ctx, orderID)
	if err != nil {
		return nil, err
	}
	doc := s.buildDocument(order)
	pdf, err := s.renderer.RenderPDF(ctx, doc)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return pdf, nil
}
