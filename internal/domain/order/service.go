// internal/domain/order/service.go
package order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/your-org/boutique-store/internal/config"
	"github.com/your-org/boutique-store/internal/domain/cart"
	"github.com/your-org/boutique-store/internal/domain/pricing"
)

var (
	ErrValidation    = errors.New("validation failed")
	ErrEmptyCart     = errors.New("cart is empty")
	ErrOrderNotFound = errors.New("order not found")
	ErrPersistence   = errors.New("failed to save order")
)

// CartSource is the session cart the finalizer reads and clears
type CartSource interface {
	Summary(ctx context.Context, sessionID string) (*cart.Summary, error)
	Clear(ctx context.Context, sessionID string) error
}

// Notifier is told when an order enters the Confirmed status. It returns
// the number of messages delivered; failures are its own concern.
type Notifier interface {
	OrderConfirmed(ctx context.Context, o *Order) int
}

// Service handles order business logic
type Service struct {
	db       *gorm.DB
	carts    CartSource
	notifier Notifier
	store    config.StoreConfig
	logger   *logrus.Logger
}

// NewService creates a new order service
func NewService(db *gorm.DB, carts CartSource, notifier Notifier, store config.StoreConfig, logger *logrus.Logger) *Service {
	return &Service{
		db:       db,
		carts:    carts,
		notifier: notifier,
		store:    store,
		logger:   logger,
	}
}

// CheckoutRequest represents the checkout form
type CheckoutRequest struct {
	Name    string `form:"name"`
	Email   string `form:"email"`
	Phone   string `form:"phone"`
	Address string `form:"address"`
}

// Normalize trims every field and fills in the placeholder email
func (r *CheckoutRequest) Normalize(placeholderEmail string) {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Address = strings.TrimSpace(r.Address)
	if r.Email == "" {
		r.Email = placeholderEmail
	}
}

// Validate checks the required checkout fields
func (r *CheckoutRequest) Validate() error {
	var missing []string
	if r.Name == "" {
		missing = append(missing, "name")
	}
	if r.Phone == "" {
		missing = append(missing, "phone")
	}
	if r.Address == "" {
		missing = append(missing, "address")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s required", ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

// Receipt is what the confirmation page renders after checkout
type Receipt struct {
	Order       *Order             `json:"order"`
	Items       []pricing.LineItem `json:"items"`
	Totals      pricing.Totals     `json:"totals"`
	Message     string             `json:"message"`
	WhatsAppURL string             `json:"whatsapp_url"`
}

// Finalize turns the session cart into a Pending order. The order and its
// items are written in one transaction; the cart is cleared only after commit.
func (s *Service) Finalize(ctx context.Context, sessionID string, req *CheckoutRequest) (*Receipt, error) {
	req.Normalize(s.store.PlaceholderEmail)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	summary, err := s.carts.Summary(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve cart: %w", err)
	}
	if summary.IsEmpty() {
		return nil, ErrEmptyCart
	}

	totals := summary.Totals
	order := Order{
		CustomerName:  req.Name,
		CustomerEmail: req.Email,
		CustomerPhone: req.Phone,
		Address:       req.Address,
		Subtotal:      totals.Subtotal,
		ShippingFee:   totals.ShippingFee,
		TotalAmount:   totals.GrandTotal,
		Status:        StatusPending,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Create(&order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		items := make([]OrderItem, 0, len(summary.Items))
		for _, li := range summary.Items {
			items = append(items, OrderItem{
				OrderID:     order.ID,
				ProductID:   li.ProductID,
				ProductName: li.Name,
				Quantity:    li.Quantity,
				UnitPrice:   li.UnitPrice,
			})
		}

		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}

		order.Items = items
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if err := s.carts.Clear(ctx, sessionID); err != nil {
		// The order stands; a stale cart is only an inconvenience.
		s.logger.WithError(err).WithField("order_id", order.ID).Warn("failed to clear cart after checkout")
	}

	s.logger.WithFields(logrus.Fields{
		"order_id": order.ID,
		"total":    order.TotalAmount.String(),
		"items":    len(order.Items),
	}).Info("order placed")

	message := SummaryMessage(&order, summary.Items, totals, s.store.CurrencySymbol)

	return &Receipt{
		Order:       &order,
		Items:       summary.Items,
		Totals:      totals,
		Message:     message,
		WhatsAppURL: WhatsAppURL(s.store.WhatsAppNumber, message),
	}, nil
}

// List retrieves all orders, newest first
func (s *Service) List(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := s.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC, id DESC").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}
	return orders, nil
}

// Latest retrieves the most recent orders
func (s *Service) Latest(ctx context.Context, limit int) ([]Order, error) {
	var orders []Order
	if err := s.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}
	return orders, nil
}

// Get retrieves a single order with its items
func (s *Service) Get(ctx context.Context, id uint) (*Order, error) {
	var order Order
	if err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", err)
	}
	return &order, nil
}

// UpdateStatus sets a new status. Moving into Confirmed from any other
// status notifies the customer and the merchant once the change is saved;
// saving Confirmed again does not.
func (s *Service) UpdateStatus(ctx context.Context, id uint, status string) (*Order, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, fmt.Errorf("%w: status is required", ErrValidation)
	}

	var previous string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current Order
		if err := tx.Select("id", "status").First(&current, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("failed to retrieve order: %w", err)
		}
		previous = current.Status

		if err := tx.Model(&Order{}).Where("id = ?", id).Update("status", status).Error; err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"order_id": id,
		"from":     previous,
		"to":       status,
	}).Info("order status updated")

	if previous != StatusConfirmed && status == StatusConfirmed && s.notifier != nil {
		sent := s.notifier.OrderConfirmed(ctx, order)
		s.logger.WithFields(logrus.Fields{"order_id": id, "sent": sent}).Info("confirmation notifications dispatched")
	}

	return order, nil
}

// Count returns the number of orders
func (s *Service) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&Order{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}
