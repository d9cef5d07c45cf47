// internal/domain/order/entity.go
package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/your-org/boutique-store/internal/domain/pricing"
)

// Order statuses offered in the admin screen. Status is stored as free text
// and any non-empty value is accepted.
const (
	StatusPending   = "Pending"
	StatusPaid      = "Paid"
	StatusConfirmed = "Confirmed"
	StatusShipped   = "Shipped"
	StatusCancelled = "Cancelled"
)

// Statuses lists the known statuses in workflow order
func Statuses() []string {
	return []string{StatusPending, StatusPaid, StatusConfirmed, StatusShipped, StatusCancelled}
}

// Order represents the order entity
type Order struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	CustomerName  string `gorm:"not null;size:120" json:"customer_name"`
	CustomerEmail string `gorm:"not null;size:120" json:"customer_email"`
	CustomerPhone string `gorm:"not null;size:30" json:"customer_phone"`
	Address       string `gorm:"type:text;not null" json:"address"`

	// Financial Information. TotalAmount is fixed at creation.
	Subtotal    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"subtotal"`
	ShippingFee decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"shipping_fee"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`

	Status    string    `gorm:"not null;size:30;index" json:"status"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// OrderItem is a snapshot of one purchased line. ProductID is kept for
// reference only; the product may since have changed or been deleted.
type OrderItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	OrderID     uint            `gorm:"not null;index" json:"order_id"`
	ProductID   uint            `gorm:"not null" json:"product_id"`
	ProductName string          `gorm:"not null;size:200" json:"product_name"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TableName overrides
func (Order) TableName() string     { return "orders" }
func (OrderItem) TableName() string { return "order_items" }

// Amount returns quantity × unit price
func (i OrderItem) Amount() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// IsConfirmed reports whether the order is in the Confirmed status
func (o *Order) IsConfirmed() bool {
	return o.Status == StatusConfirmed
}

// LineItems converts the stored snapshots back into pricing line items
func (o *Order) LineItems() []pricing.LineItem {
	items := make([]pricing.LineItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, pricing.LineItem{
			ProductID: it.ProductID,
			Name:      it.ProductName,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return items
}

// Totals returns the stored totals of the order
func (o *Order) Totals() pricing.Totals {
	qty := 0
	for _, it := range o.Items {
		qty += it.Quantity
	}
	return pricing.Totals{
		ItemCount:     len(o.Items),
		TotalQuantity: qty,
		Subtotal:      o.Subtotal,
		ShippingFee:   o.ShippingFee,
		GrandTotal:    o.TotalAmount,
	}
}
