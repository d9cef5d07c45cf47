// internal/interfaces/http/handlers/shop.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/boutique-store/internal/domain/product"
)

// ShopHandler handles the public catalog pages
type ShopHandler struct {
	view       *View
	products   *product.Service
	categories *product.CategoryService
	latest     int
}

// NewShopHandler creates a new shop handler
func NewShopHandler(view *View, products *product.Service, categories *product.CategoryService, latest int) *ShopHandler {
	if latest <= 0 {
		latest = 6
	}
	return &ShopHandler{
		view:       view,
		products:   products,
		categories: categories,
		latest:     latest,
	}
}

// Index handles GET /
func (h *ShopHandler) Index(c *gin.Context) {
	ctx := c.Request.Context()

	categories, err := h.categories.List(ctx)
	if err != nil {
		h.view.Fail(c, err)
		return
	}

	latest, err := h.products.Latest(ctx, h.latest)
	if err != nil {
		h.view.Fail(c, err)
		return
	}

	h.view.Render(c, http.StatusOK, "index.html", gin.H{
		"Categories":     categories,
		"LatestProducts": latest,
	})
}

// Category handles GET /category/:slug with optional brand, size and color
// query filters
func (h *ShopHandler) Category(c *gin.Context) {
	ctx := c.Request.Context()

	category, err := h.categories.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		if errors.Is(err, product.ErrCategoryNotFound) {
			h.view.NotFound(c)
			return
		}
		h.view.Fail(c, err)
		return
	}

	var filter product.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		filter = product.Filter{}
	}
	filter = filter.Normalize()

	products, err := h.products.ListActiveByCategory(ctx, category.ID, filter)
	if err != nil {
		h.view.Fail(c, err)
		return
	}

	options, err := h.products.FilterOptions(ctx, category.ID)
	if err != nil {
		h.view.Fail(c, err)
		return
	}

	h.view.Render(c, http.StatusOK, "category.html", gin.H{
		"Category": category,
		"Products": products,
		"Options":  options,
		"Filter":   filter,
	})
}
