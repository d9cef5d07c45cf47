// internal/interfaces/http/handlers/category.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/boutique-store/internal/domain/product"
)

// CategoryHandler handles category administration
type CategoryHandler struct {
	view            *View
	categoryService *product.CategoryService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(view *View, categoryService *product.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		view:            view,
		categoryService: categoryService,
	}
}

// List handles GET /admin/categories
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.ListWithProductCount(c.Request.Context())
	if err != nil {
		h.view.Fail(c, err)
		return
	}

	h.view.Render(c, http.StatusOK, "admin_categories.html", gin.H{
		"Categories": categories,
	})
}

// Create handles POST /admin/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req product.CategoryCreateRequest
	_ = c.ShouldBind(&req)

	if _, err := h.categoryService.Create(c.Request.Context(), &req); err != nil {
		switch {
		case errors.Is(err, product.ErrValidation):
			h.view.Flash(c, "Name and slug are required.")
		case errors.Is(err, product.ErrSlugTaken):
			h.view.Flash(c, "Slug already exists.")
		default:
			h.view.Fail(c, err)
			return
		}
		h.view.Redirect(c, "/admin/categories")
		return
	}

	h.view.Flash(c, "Category added successfully.")
	h.view.Redirect(c, "/admin/categories")
}

// Delete handles POST /admin/categories/:id/delete
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		h.view.NotFound(c)
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, product.ErrCategoryNotFound):
			h.view.NotFound(c)
		case errors.Is(err, product.ErrCategoryInUse):
			h.view.Flash(c, "Cannot delete category with products.")
			h.view.Redirect(c, "/admin/categories")
		default:
			h.view.Fail(c, err)
		}
		return
	}

	h.view.Flash(c, "Category deleted.")
	h.view.Redirect(c, "/admin/categories")
}
