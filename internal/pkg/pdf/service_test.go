package pdf

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/boutique-store/internal/config"
	"github.com/your-org/boutique-store/internal/domain/order"
)

func TestRenderInvoiceHTML(t *testing.T) {
	svc := NewService(config.StoreConfig{
		Name:            "Glamozz Boutique",
		CurrencySymbol:  "Rs.",
		BankAccountName: "Glamozz Boutique",
		BankAccountNo:   "123456789012",
		BankIFSC:        "HDFC0001234",
		BankName:        "HDFC Bank",
	})
	svc.now = func() time.Time { return time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC) }

	o := &order.Order{
		ID:            12,
		CustomerName:  "Aisha <b>",
		CustomerEmail: "no-email@customer.com",
		CustomerPhone: "9876543210",
		Address:       "Chennai",
		Subtotal:      decimal.NewFromInt(1300),
		ShippingFee:   decimal.NewFromInt(50),
		TotalAmount:   decimal.NewFromInt(1350),
		Status:        order.StatusConfirmed,
		CreatedAt:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Items: []order.OrderItem{
			{ProductName: "Black Abaya", Quantity: 2, UnitPrice: decimal.NewFromInt(500)},
			{ProductName: "Niqab", Quantity: 1, UnitPrice: decimal.NewFromInt(300)},
		},
	}

	html, err := svc.RenderInvoiceHTML(o)
	require.NoError(t, err)
	out := string(html)

	assert.Contains(t, out, "INV-000012")
	assert.Contains(t, out, "March 4, 2026")
	assert.Contains(t, out, "Black Abaya")
	assert.Contains(t, out, "Rs.1000")
	assert.Contains(t, out, "Rs.1350")
	assert.Contains(t, out, "HDFC0001234")
	assert.Contains(t, out, "Aisha &lt;b&gt;", "customer input is escaped")
}
