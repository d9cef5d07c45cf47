// internal/domain/order/message.go
package order

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/your-org/boutique-store/internal/domain/pricing"
)

// FormatAmount renders money the way customers see it, e.g. "Rs.1350"
// or "Rs.499.50".
func FormatAmount(currency string, amount decimal.Decimal) string {
	if amount.Equal(amount.Truncate(0)) {
		return currency + amount.Truncate(0).String()
	}
	return currency + amount.StringFixed(2)
}

// SummaryMessage builds the plain-text order summary the customer sends to
// the merchant over WhatsApp along with the payment screenshot.
func SummaryMessage(o *Order, items []pricing.LineItem, totals pricing.Totals, currency string) string {
	var b strings.Builder

	b.WriteString("NEW ORDER RECEIVED\n")
	fmt.Fprintf(&b, "Order ID: %d\n", o.ID)
	b.WriteString("\n")
	fmt.Fprintf(&b, "Name: %s\n", o.CustomerName)
	fmt.Fprintf(&b, "Phone: %s\n", o.CustomerPhone)
	fmt.Fprintf(&b, "Email: %s\n", o.CustomerEmail)
	fmt.Fprintf(&b, "Address: %s\n", o.Address)
	b.WriteString("\n")
	b.WriteString("Items Ordered:\n")
	for _, it := range items {
		fmt.Fprintf(&b, "- %s x %d = %s\n", it.Name, it.Quantity, FormatAmount(currency, it.Amount()))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Subtotal: %s\n", FormatAmount(currency, totals.Subtotal))
	fmt.Fprintf(&b, "Shipping: %s\n", FormatAmount(currency, totals.ShippingFee))
	fmt.Fprintf(&b, "Total Amount: %s\n", FormatAmount(currency, totals.GrandTotal))
	b.WriteString("\n")
	b.WriteString("Please share payment screenshot to confirm order.")

	return b.String()
}

// WhatsAppURL returns a wa.me deep link that opens a chat with number and
// pre-fills text. Spaces are encoded as %20; wa.me shows a literal "+".
func WhatsAppURL(number, text string) string {
	encoded := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	return "https://wa.me/" + strings.TrimPrefix(number, "+") + "?text=" + encoded
}
