// internal/domain/pricing/calculator.go
package pricing

import (
	"github.com/shopspring/decimal"
)

// LineItem is a cart entry resolved against the catalog
type LineItem struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Amount returns quantity × unit price
func (l LineItem) Amount() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Totals represents calculated cart or order totals
type Totals struct {
	ItemCount     int             `json:"item_count"`     // Number of distinct lines
	TotalQuantity int             `json:"total_quantity"` // Sum of all quantities
	Subtotal      decimal.Decimal `json:"subtotal"`
	ShippingFee   decimal.Decimal `json:"shipping_fee"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
}

// shippingTier maps an inclusive total-quantity range to a flat fee
type shippingTier struct {
	MinQty int
	MaxQty int
	Fee    int64
}

// Quantities outside every tier (an empty cart, or more than 16 pieces) ship
// for 0: the merchant quotes those orders by hand.
var shippingTiers = []shippingTier{
	{MinQty: 1, MaxQty: 4, Fee: 50},
	{MinQty: 5, MaxQty: 8, Fee: 65},
	{MinQty: 9, MaxQty: 12, Fee: 100},
	{MinQty: 13, MaxQty: 16, Fee: 130},
}

// ShippingFee returns the flat shipping fee for the given total quantity
func ShippingFee(totalQuantity int) decimal.Decimal {
	for _, tier := range shippingTiers {
		if totalQuantity >= tier.MinQty && totalQuantity <= tier.MaxQty {
			return decimal.NewFromInt(tier.Fee)
		}
	}
	return decimal.Zero
}

// Calculate computes subtotal, total quantity, shipping fee and grand total
func Calculate(items []LineItem) Totals {
	totals := Totals{
		ItemCount: len(items),
		Subtotal:  decimal.Zero,
	}

	for _, item := range items {
		totals.TotalQuantity += item.Quantity
		totals.Subtotal = totals.Subtotal.Add(item.Amount())
	}

	totals.ShippingFee = ShippingFee(totals.TotalQuantity)
	totals.GrandTotal = totals.Subtotal.Add(totals.ShippingFee)

	return totals
}
