// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/shopspring/decimal"

	"github.com/your-org/boutique-store/internal/config"
	"github.com/your-org/boutique-store/internal/domain/order"
)

// Service handles PDF generation
type Service struct {
	store config.StoreConfig
	tmpl  *template.Template
	now   func() time.Time
}

// NewService creates a new PDF service
func NewService(store config.StoreConfig) *Service {
	s := &Service{
		store: store,
		now:   time.Now,
	}
	s.tmpl = template.Must(template.New("invoice").Funcs(template.FuncMap{
		"money": func(d decimal.Decimal) string { return order.FormatAmount(store.CurrencySymbol, d) },
	}).Parse(invoiceTemplate))
	return s
}

// InvoiceData represents the data passed to the invoice template
type InvoiceData struct {
	InvoiceNumber string
	InvoiceDate   string
	Order         *order.Order
	Store         config.StoreConfig
}

// InvoiceNumber returns the printed invoice number of an order
func InvoiceNumber(o *order.Order) string {
	return fmt.Sprintf("INV-%06d", o.ID)
}

// RenderInvoiceHTML renders the printable invoice of an order
func (s *Service) RenderInvoiceHTML(o *order.Order) ([]byte, error) {
	data := InvoiceData{
		InvoiceNumber: InvoiceNumber(o),
		InvoiceDate:   s.now().Format("January 2, 2006"),
		Order:         o,
		Store:         s.store,
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateInvoice converts the invoice to PDF. Requires the wkhtmltopdf
// binary on PATH (or WKHTMLTOPDF_PATH).
func (s *Service) GenerateInvoice(o *order.Order) (*bytes.Buffer, error) {
	htmlContent, err := s.RenderInvoiceHTML(o)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)
	pdfg.Title.Set(InvoiceNumber(o))

	page := wkhtmltopdf.NewPageReader(bytes.NewReader(htmlContent))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

const invoiceTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Invoice {{.InvoiceNumber}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 20px; color: #333; }
        .header { margin-bottom: 30px; border-bottom: 2px solid #eee; padding-bottom: 20px; overflow: hidden; }
        .company-info { float: left; }
        .invoice-info { float: right; text-align: right; }
        .invoice-title { font-size: 28px; font-weight: bold; color: #7c2d5b; margin-bottom: 10px; }
        .section-title { font-size: 16px; font-weight: bold; margin-bottom: 10px; color: #374151; }
        .items-table { width: 100%; border-collapse: collapse; margin: 30px 0; }
        .items-table th, .items-table td { border: 1px solid #ddd; padding: 10px 8px; text-align: left; }
        .items-table th { background-color: #f8f9fa; }
        .num { text-align: right !important; width: 90px; }
        .totals { float: right; width: 300px; }
        .totals table { width: 100%; border-collapse: collapse; }
        .totals td { padding: 8px; border-bottom: 1px solid #eee; text-align: right; }
        .total-row td { font-size: 18px; font-weight: bold; border-top: 2px solid #333; }
        .bank { clear: both; padding-top: 30px; }
        .footer { margin-top: 50px; padding-top: 20px; border-top: 1px solid #eee; text-align: center; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="header">
        <div class="company-info">
            <h1>{{.Store.Name}}</h1>
        </div>
        <div class="invoice-info">
            <div class="invoice-title">INVOICE</div>
            <p><strong>Invoice #:</strong> {{.InvoiceNumber}}</p>
            <p><strong>Invoice Date:</strong> {{.InvoiceDate}}</p>
            <p><strong>Order #:</strong> {{.Order.ID}}</p>
            <p><strong>Order Date:</strong> {{.Order.CreatedAt.Format "January 2, 2006"}}</p>
            <p><strong>Status:</strong> {{.Order.Status}}</p>
        </div>
    </div>

    <div class="section-title">Bill To:</div>
    <p><strong>{{.Order.CustomerName}}</strong></p>
    <p>{{.Order.Address}}</p>
    <p>Phone: {{.Order.CustomerPhone}}</p>
    <p>Email: {{.Order.CustomerEmail}}</p>

    <table class="items-table">
        <thead>
            <tr>
                <th>Item</th>
                <th class="num">Qty</th>
                <th class="num">Price</th>
                <th class="num">Total</th>
            </tr>
        </thead>
        <tbody>
            {{range .Order.Items}}
            <tr>
                <td>{{.ProductName}}</td>
                <td class="num">{{.Quantity}}</td>
                <td class="num">{{money .UnitPrice}}</td>
                <td class="num">{{money .Amount}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>

    <div class="totals">
        <table>
            <tr><td>Subtotal:</td><td>{{money .Order.Subtotal}}</td></tr>
            <tr><td>Shipping:</td><td>{{money .Order.ShippingFee}}</td></tr>
            <tr class="total-row"><td>Total:</td><td>{{money .Order.TotalAmount}}</td></tr>
        </table>
    </div>

    <div class="bank">
        <div class="section-title">Bank Transfer Details</div>
        <p>Account Name: {{.Store.BankAccountName}}</p>
        <p>Account Number: {{.Store.BankAccountNo}}</p>
        <p>IFSC: {{.Store.BankIFSC}}</p>
        <p>Bank: {{.Store.BankName}}</p>
    </div>

    <div class="footer">
        <p>Thank you for shopping with {{.Store.Name}}!</p>
    </div>
</body>
</html>
`
