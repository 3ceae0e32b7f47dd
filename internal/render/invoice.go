package render

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// ==================== 发票单据模型 ====================

// InvoiceLine 发票行
type InvoiceLine struct {
	ProductName string
	Quantity    int
	UnitPrice   string
	Amount      string
}

// InvoiceDocument 渲染用的发票单据，金额均为两位小数字符串
type InvoiceDocument struct {
	InvoiceNo    string
	IssuedAt     string
	StoreName    string
	StoreAddress string
	CustomerName string
	CustomerTel  string
	Lines        []InvoiceLine
	Subtotal     string
	DiscountPct  string
	DiscountAmt  string
	TaxPct       string
	TaxAmt       string
	Total        string
	Currency     string
}

// ==================== HTML 渲染 ====================

var invoiceTmpl = template.Must(template.New("invoice").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: "Helvetica Neue", Arial, sans-serif; margin: 40px; color: #222; }
  .head { display: flex; justify-content: space-between; }
  h1 { font-size: 22px; margin: 0 0 4px; }
  .muted { color: #777; font-size: 12px; }
  table { width: 100%; border-collapse: collapse; margin-top: 24px; }
  th, td { padding: 8px 10px; border-bottom: 1px solid #ddd; font-size: 13px; text-align: left; }
  th { background: #f5f5f5; }
  td.num, th.num { text-align: right; }
  .totals { margin-top: 16px; width: 280px; margin-left: auto; font-size: 13px; }
  .totals div { display: flex; justify-content: space-between; padding: 3px 0; }
  .totals .grand { font-weight: bold; border-top: 1px solid #222; padding-top: 6px; }
</style>
</head>
<body>
<div class="head">
  <div>
    <h1>发票 {{.InvoiceNo}}</h1>
    <div class="muted">开票时间 {{.IssuedAt}}</div>
  </div>
  <div style="text-align:right">
    <div>{{.StoreName}}</div>
    {{if .StoreAddress}}<div class="muted">{{.StoreAddress}}</div>{{end}}
  </div>
</div>
<div style="margin-top:20px">
  <div class="muted">客户</div>
  <div>{{.CustomerName}}{{if .CustomerTel}}（{{.CustomerTel}}）{{end}}</div>
</div>
<table>
  <tr><th>商品</th><th class="num">数量</th><th class="num">单价</th><th class="num">金额</th></tr>
  {{range .Lines}}
  <tr>
    <td>{{.ProductName}}</td>
    <td class="num">{{.Quantity}}</td>
    <td class="num">{{$.Currency}}{{.UnitPrice}}</td>
    <td class="num">{{$.Currency}}{{.Amount}}</td>
  </tr>
  {{end}}
</table>
<div class="totals">
  <div><span>小计</span><span>{{.Currency}}{{.Subtotal}}</span></div>
  {{if .DiscountAmt}}<div><span>折扣 ({{.DiscountPct}}%)</span><span>-{{.Currency}}{{.DiscountAmt}}</span></div>{{end}}
  {{if .TaxAmt}}<div><span>税费 ({{.TaxPct}}%)</span><span>{{.Currency}}{{.TaxAmt}}</span></div>{{end}}
  <div class="grand"><span>应付</span><span>{{.Currency}}{{.Total}}</span></div>
</div>
</body>
</html>`))

// RenderHTML 渲染发票 HTML
func RenderHTML(doc *InvoiceDocument) ([]byte, error) {
	var buf bytes.Buffer
	if err := invoiceTmpl.Execute(&buf, doc); err != nil {
		return nil, fmt.Errorf("渲染发票模板失败: %v", err)
	}
	return buf.Bytes(), nil
}

// ==================== PDF 渲染 ====================

// PDFRenderer 单据转 PDF 接口
type PDFRenderer interface {
	RenderPDF(ctx context.Context, doc *InvoiceDocument) ([]byte, error)
}

// ChromePDFRenderer 通过无头 Chrome 打印 PDF
type ChromePDFRenderer struct{}

// NewChromePDFRenderer 创建 Chrome PDF 渲染器
func NewChromePDFRenderer() *ChromePDFRenderer {
	return &ChromePDFRenderer{}
}

func (r *ChromePDFRenderer) RenderPDF(ctx context.Context, doc *InvoiceDocument) ([]byte, error) {
	html, err := RenderHTML(doc)
	if err != nil {
		return nil, err
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.NoSandbox,
			chromedp.Headless,
		)...,
	)
	defer cancelAlloc()

	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	var pdf []byte
	err = chromedp.Run(tabCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, string(html)).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).  // A4
				WithPaperHeight(11.69).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("打印 PDF 失败: %v", err)
	}
	return pdf, nil
}
