// internal/domain/cart/service.go
package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/your-org/boutique-store/internal/domain/pricing"
	"github.com/your-org/boutique-store/internal/domain/product"
)

var (
	ErrSessionRequired    = errors.New("session ID required for cart")
	ErrProductUnavailable = errors.New("this product is not available")
)

// Catalog is the product lookup the cart needs
type Catalog interface {
	GetActive(ctx context.Context, id uint) (*product.Product, error)
	FindActiveByIDs(ctx context.Context, ids []uint) (map[uint]product.Product, error)
}

// Service handles cart business logic
type Service struct {
	store   Store
	catalog Catalog
}

// NewService creates a new cart service
func NewService(store Store, catalog Catalog) *Service {
	return &Service{
		store:   store,
		catalog: catalog,
	}
}

// Summary is a cart resolved against the catalog
type Summary struct {
	Cart   Cart               `json:"cart"`
	Items  []pricing.LineItem `json:"items"`
	Totals pricing.Totals     `json:"totals"`
}

// IsEmpty reports whether no purchasable line remains
func (s *Summary) IsEmpty() bool {
	return len(s.Items) == 0
}

// Get retrieves the cart of a session
func (s *Service) Get(ctx context.Context, sessionID string) (Cart, error) {
	return s.store.Load(ctx, sessionID)
}

// AddProduct puts one more piece of an active product into the cart
func (s *Service) AddProduct(ctx context.Context, sessionID string, productID uint) (Cart, error) {
	if _, err := s.catalog.GetActive(ctx, productID); err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			return nil, ErrProductUnavailable
		}
		return nil, err
	}

	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	c.Add(productID)

	if err := s.store.Save(ctx, sessionID, c); err != nil {
		return nil, err
	}
	return c, nil
}

// RemoveProduct drops a product's entry. Removing an absent product is a
// no-op; the bool reports whether an entry was removed.
func (s *Service) RemoveProduct(ctx context.Context, sessionID string, productID uint) (Cart, bool, error) {
	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}

	if !c.Remove(productID) {
		return c, false, nil
	}

	if err := s.store.Save(ctx, sessionID, c); err != nil {
		return nil, false, err
	}
	return c, true, nil
}

// Clear empties the cart of a session
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.store.Clear(ctx, sessionID)
}

// Materialize resolves cart entries into priced line items in ascending
// product id order. Unparsable, missing and inactive entries are dropped.
func (s *Service) Materialize(ctx context.Context, c Cart) ([]pricing.LineItem, error) {
	entries := c.Entries()
	if len(entries) == 0 {
		return []pricing.LineItem{}, nil
	}

	ids := make([]uint, len(entries))
	for i, e := range entries {
		ids[i] = e.ProductID
	}

	products, err := s.catalog.FindActiveByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cart items: %w", err)
	}

	items := make([]pricing.LineItem, 0, len(entries))
	for _, e := range entries {
		p, ok := products[e.ProductID]
		if !ok {
			continue
		}
		items = append(items, pricing.LineItem{
			ProductID: p.ID,
			Name:      p.Name,
			Quantity:  e.Quantity,
			UnitPrice: p.Price,
		})
	}
	return items, nil
}

// Summary loads, resolves and prices the cart of a session
func (s *Service) Summary(ctx context.Context, sessionID string) (*Summary, error) {
	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	items, err := s.Materialize(ctx, c)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Cart:   c,
		Items:  items,
		Totals: pricing.Calculate(items),
	}, nil
}
