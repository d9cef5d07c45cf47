// internal/domain/product/category_service.go
package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// CategoryService handles category business logic
type CategoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new category service
func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{
		db: db,
	}
}

// CategoryCreateRequest represents category creation data
type CategoryCreateRequest struct {
	Name string `form:"name"`
	Slug string `form:"slug"`
}

// CategoryWithProductCount represents category with product count
type CategoryWithProductCount struct {
	Category
	ProductCount int64 `json:"product_count"`
}

// List retrieves all categories ordered by name
func (s *CategoryService) List(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve categories: %w", err)
	}
	return categories, nil
}

// ListWithProductCount retrieves categories with the number of products
// (active or not) attached to each, for the admin screen.
func (s *CategoryService) ListWithProductCount(ctx context.Context) ([]CategoryWithProductCount, error) {
	categories, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]CategoryWithProductCount, 0, len(categories))
	for _, cat := range categories {
		var productCount int64
		if err := s.db.WithContext(ctx).Model(&Product{}).Where("category_id = ?", cat.ID).Count(&productCount).Error; err != nil {
			return nil, fmt.Errorf("failed to count products: %w", err)
		}

		result = append(result, CategoryWithProductCount{
			Category:     cat,
			ProductCount: productCount,
		})
	}

	return result, nil
}

// NavCategories returns slug → name for the storefront navigation
func (s *CategoryService) NavCategories(ctx context.Context) (map[string]string, error) {
	categories, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	nav := make(map[string]string, len(categories))
	for _, cat := range categories {
		nav[cat.Slug] = cat.Name
	}
	return nav, nil
}

// Get retrieves a single category by ID
func (s *CategoryService) Get(ctx context.Context, id uint) (*Category, error) {
	var category Category
	if err := s.db.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to retrieve category: %w", err)
	}
	return &category, nil
}

// GetBySlug retrieves a single category by slug
func (s *CategoryService) GetBySlug(ctx context.Context, slug string) (*Category, error) {
	var category Category
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to retrieve category: %w", err)
	}
	return &category, nil
}

// Create creates a new category. The slug is stored lowercased.
func (s *CategoryService) Create(ctx context.Context, req *CategoryCreateRequest) (*Category, error) {
	name := strings.TrimSpace(req.Name)
	slug := strings.ToLower(strings.TrimSpace(req.Slug))

	if name == "" || slug == "" {
		return nil, fmt.Errorf("%w: name and slug are required", ErrValidation)
	}

	var existing int64
	if err := s.db.WithContext(ctx).Model(&Category{}).Where("slug = ?", slug).Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("failed to check slug: %w", err)
	}
	if existing > 0 {
		return nil, ErrSlugTaken
	}

	category := Category{Name: name, Slug: slug}
	if err := s.db.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &category, nil
}

// Delete removes a category. Categories that still own products are kept.
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category Category
		if err := tx.First(&category, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return fmt.Errorf("failed to retrieve category: %w", err)
		}

		var productCount int64
		if err := tx.Model(&Product{}).Where("category_id = ?", id).Count(&productCount).Error; err != nil {
			return fmt.Errorf("failed to count products: %w", err)
		}
		if productCount > 0 {
			return ErrCategoryInUse
		}

		if err := tx.Delete(&category).Error; err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}
		return nil
	})
}

// EnsureCategory creates the category when its slug is not taken yet.
// Used for seeding.
func (s *CategoryService) EnsureCategory(ctx context.Context, slug, name string) error {
	_, err := s.Create(ctx, &CategoryCreateRequest{Name: name, Slug: slug})
	if err != nil && !errors.Is(err, ErrSlugTaken) {
		return err
	}
	return nil
}
