// internal/domain/product/service.go
package product

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service handles product business logic
type Service struct {
	db *gorm.DB
}

// NewService creates a new product service
func NewService(db *gorm.DB) *Service {
	return &Service{
		db: db,
	}
}

// Filter narrows a category listing. Empty fields are ignored; non-empty
// fields must match exactly (case-sensitive).
type Filter struct {
	Brand string `form:"brand"`
	Size  string `form:"size"`
	Color string `form:"color"`
}

// Normalize trims surrounding whitespace from every field
func (f Filter) Normalize() Filter {
	return Filter{
		Brand: strings.TrimSpace(f.Brand),
		Size:  strings.TrimSpace(f.Size),
		Color: strings.TrimSpace(f.Color),
	}
}

// FilterOptions holds the distinct values offered in the filter dropdowns
type FilterOptions struct {
	Brands []string `json:"brands"`
	Sizes  []string `json:"sizes"`
	Colors []string `json:"colors"`
}

// ProductInput represents product create/update data from the admin form
type ProductInput struct {
	Name          string
	Description   string
	Brand         string
	Size          string
	Color         string
	Price         decimal.Decimal
	CategoryID    uint
	IsActive      bool
	ImageFilename string // empty keeps the current image on update
}

// ListActiveByCategory lists active products of a category matching the filter
func (s *Service) ListActiveByCategory(ctx context.Context, categoryID uint, filter Filter) ([]Product, error) {
	filter = filter.Normalize()

	query := s.db.WithContext(ctx).
		Where("category_id = ? AND is_active = ?", categoryID, true)

	if filter.Brand != "" {
		query = query.Where("brand = ?", filter.Brand)
	}
	if filter.Size != "" {
		query = query.Where("size = ?", filter.Size)
	}
	if filter.Color != "" {
		query = query.Where("color = ?", filter.Color)
	}

	var products []Product
	if err := query.Order("id ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}
	return products, nil
}

// FilterOptions returns the sorted distinct brands, sizes and colors of the
// active products in a category
func (s *Service) FilterOptions(ctx context.Context, categoryID uint) (*FilterOptions, error) {
	var products []Product
	if err := s.db.WithContext(ctx).
		Select("brand", "size", "color").
		Where("category_id = ? AND is_active = ?", categoryID, true).
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve filter options: %w", err)
	}

	brands := map[string]struct{}{}
	sizes := map[string]struct{}{}
	colors := map[string]struct{}{}
	for _, p := range products {
		if p.Brand != "" {
			brands[p.Brand] = struct{}{}
		}
		if p.Size != "" {
			sizes[p.Size] = struct{}{}
		}
		if p.Color != "" {
			colors[p.Color] = struct{}{}
		}
	}

	return &FilterOptions{
		Brands: sortedKeys(brands),
		Sizes:  sortedKeys(sizes),
		Colors: sortedKeys(colors),
	}, nil
}

// Latest returns the newest active products
func (s *Service) Latest(ctx context.Context, limit int) ([]Product, error) {
	var products []Product
	if err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id DESC").
		Limit(limit).
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve latest products: %w", err)
	}
	return products, nil
}

// ListAll returns every product, newest first, with its category
func (s *Service) ListAll(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := s.db.WithContext(ctx).
		Preload("Category").
		Order("id DESC").
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}
	return products, nil
}

// Get retrieves a product by ID regardless of its active flag
func (s *Service) Get(ctx context.Context, id uint) (*Product, error) {
	var product Product
	if err := s.db.WithContext(ctx).Preload("Category").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}
	return &product, nil
}

// GetActive retrieves a product that can be listed and added to a cart
func (s *Service) GetActive(ctx context.Context, id uint) (*Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.IsPurchasable() {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// FindActiveByIDs loads the active products among ids, keyed by ID.
// Missing and inactive products are simply absent from the result.
func (s *Service) FindActiveByIDs(ctx context.Context, ids []uint) (map[uint]Product, error) {
	result := make(map[uint]Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var products []Product
	if err := s.db.WithContext(ctx).
		Where("id IN ? AND is_active = ?", ids, true).
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}

	for _, p := range products {
		result[p.ID] = p
	}
	return result, nil
}

// Create creates a new product
func (s *Service) Create(ctx context.Context, input *ProductInput) (*Product, error) {
	if err := s.validateInput(ctx, input); err != nil {
		return nil, err
	}

	product := Product{
		Name:          strings.TrimSpace(input.Name),
		Description:   input.Description,
		Brand:         strings.TrimSpace(input.Brand),
		Size:          strings.TrimSpace(input.Size),
		Color:         strings.TrimSpace(input.Color),
		Price:         input.Price,
		CategoryID:    input.CategoryID,
		ImageFilename: input.ImageFilename,
		IsActive:      input.IsActive,
	}

	// gorm skips false on create when the column has a default
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&product).Error; err != nil {
			return err
		}
		if input.IsActive {
			return nil
		}
		product.IsActive = false
		return tx.Model(&Product{}).Where("id = ?", product.ID).Update("is_active", false).Error
	}); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return &product, nil
}

// Update replaces the editable fields of a product
func (s *Service) Update(ctx context.Context, id uint, input *ProductInput) (*Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validateInput(ctx, input); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"name":        strings.TrimSpace(input.Name),
		"description": input.Description,
		"brand":       strings.TrimSpace(input.Brand),
		"size":        strings.TrimSpace(input.Size),
		"color":       strings.TrimSpace(input.Color),
		"price":       input.Price,
		"category_id": input.CategoryID,
		"is_active":   input.IsActive,
	}
	if input.ImageFilename != "" {
		updates["image_filename"] = input.ImageFilename
	}

	if err := s.db.WithContext(ctx).Model(product).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return s.Get(ctx, id)
}

// Delete removes a product. Order items keep their snapshot.
func (s *Service) Delete(ctx context.Context, id uint) (*Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Delete(&Product{}, id).Error; err != nil {
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}
	return product, nil
}

// Count returns the number of products
func (s *Service) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&Product{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

func (s *Service) validateInput(ctx context.Context, input *ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: product name is required", ErrValidation)
	}
	if input.Price.IsNegative() {
		return fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&Category{}).Where("id = ?", input.CategoryID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check category: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("%w: %v", ErrValidation, ErrCategoryNotFound)
	}
	return nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
