// internal/interfaces/http/handlers/product.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/your-org/boutique-store/internal/domain/product"
	"github.com/your-org/boutique-store/internal/domain/upload"
)

// ProductHandler handles product administration
type ProductHandler struct {
	view            *View
	productService  *product.Service
	categoryService *product.CategoryService
	uploadService   *upload.Service
}

// NewProductHandler creates a new product handler
func NewProductHandler(view *View, productService *product.Service, categoryService *product.CategoryService, uploadService *upload.Service) *ProductHandler {
	return &ProductHandler{
		view:            view,
		productService:  productService,
		categoryService: categoryService,
		uploadService:   uploadService,
	}
}

// productForm is the admin product form as posted
type productForm struct {
	Name        string `form:"name"`
	Description string `form:"description"`
	Brand       string `form:"brand"`
	Size        string `form:"size"`
	Color       string `form:"color"`
	Price       string `form:"price"`
	CategoryID  string `form:"category_id"`
	IsActive    string `form:"is_active"`
}

func (f *productForm) toInput() (*product.ProductInput, error) {
	price := decimal.Zero
	if p := strings.TrimSpace(f.Price); p != "" {
		parsed, err := decimal.NewFromString(p)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid price %q", product.ErrValidation, p)
		}
		price = parsed.Round(2)
	}

	categoryID, err := strconv.ParseUint(strings.TrimSpace(f.CategoryID), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: category is required", product.ErrValidation)
	}

	return &product.ProductInput{
		Name:        f.Name,
		Description: strings.TrimSpace(f.Description),
		Brand:       f.Brand,
		Size:        f.Size,
		Color:       f.Color,
		Price:       price,
		CategoryID:  uint(categoryID),
		IsActive:    f.IsActive != "",
	}, nil
}

// List handles GET /admin/products
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.productService.ListAll(c.Request.Context())
	if err != nil {
		h.view.Fail(c, err)
		return
	}

	h.view.Render(c, http.StatusOK, "admin_products.html", gin.H{
		"Products": products,
	})
}

// New handles GET /admin/products/new
func (h *ProductHandler) New(c *gin.Context) {
	h.renderForm(c, nil)
}

// Edit handles GET /admin/products/:id/edit
func (h *ProductHandler) Edit(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		h.view.NotFound(c)
		return
	}

	p, err := h.productService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			h.view.NotFound(c)
			return
		}
		h.view.Fail(c, err)
		return
	}

	h.renderForm(c, p)
}

func (h *ProductHandler) renderForm(c *gin.Context, p *product.Product) {
	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		h.view.Fail(c, err)
		return
	}

	h.view.Render(c, http.StatusOK, "admin_product_form.html", gin.H{
		"Product":    p,
		"Categories": categories,
	})
}

// Create handles POST /admin/products/new
func (h *ProductHandler) Create(c *gin.Context) {
	var form productForm
	_ = c.ShouldBind(&form)

	input, err := form.toInput()
	if err != nil {
		h.flashInvalid(c, err, "/admin/products/new")
		return
	}

	image, ok := h.saveImage(c, "/admin/products/new")
	if !ok {
		return
	}
	if image != nil {
		input.ImageFilename = image.Name
	}

	if _, err := h.productService.Create(c.Request.Context(), input); err != nil {
		h.discardImage(image)
		if errors.Is(err, product.ErrValidation) {
			h.flashInvalid(c, err, "/admin/products/new")
			return
		}
		h.view.Fail(c, err)
		return
	}

	h.view.Flash(c, "Product created.")
	h.view.Redirect(c, "/admin/products")
}

// Update handles POST /admin/products/:id/edit
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		h.view.NotFound(c)
		return
	}
	editPath := fmt.Sprintf("/admin/products/%d/edit", id)

	current, err := h.productService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			h.view.NotFound(c)
			return
		}
		h.view.Fail(c, err)
		return
	}

	var form productForm
	_ = c.ShouldBind(&form)

	input, err := form.toInput()
	if err != nil {
		h.flashInvalid(c, err, editPath)
		return
	}

	image, ok := h.saveImage(c, editPath)
	if !ok {
		return
	}
	if image != nil {
		input.ImageFilename = image.Name
	}

	if _, err := h.productService.Update(c.Request.Context(), id, input); err != nil {
		h.discardImage(image)
		if errors.Is(err, product.ErrValidation) {
			h.flashInvalid(c, err, editPath)
			return
		}
		h.view.Fail(c, err)
		return
	}

	// the replaced image is no longer referenced
	if image != nil && current.HasImage() {
		h.discardImage(&upload.StoredImage{Name: current.ImageFilename})
	}

	h.view.Flash(c, "Product updated.")
	h.view.Redirect(c, "/admin/products")
}

// Delete handles POST /admin/products/:id/delete
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		h.view.NotFound(c)
		return
	}

	deleted, err := h.productService.Delete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			h.view.NotFound(c)
			return
		}
		h.view.Fail(c, err)
		return
	}

	if deleted.HasImage() {
		h.discardImage(&upload.StoredImage{Name: deleted.ImageFilename})
	}

	h.view.Flash(c, "Product deleted.")
	h.view.Redirect(c, "/admin/products")
}

// saveImage stores the optional "image" upload. On failure it has already
// answered the request and returns false.
func (h *ProductHandler) saveImage(c *gin.Context, formPath string) (*upload.StoredImage, bool) {
	header, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, true
		}
		h.view.Flash(c, "The image could not be uploaded.")
		h.view.Redirect(c, formPath)
		return nil, false
	}

	image, err := h.uploadService.SaveProductImage(header)
	if err != nil {
		switch {
		case errors.Is(err, upload.ErrEmptyFile):
			return nil, true
		case errors.Is(err, upload.ErrFileTooLarge):
			h.view.Flash(c, "The image is too large.")
		default:
			_ = c.Error(err)
			h.view.Flash(c, "The image could not be uploaded.")
		}
		h.view.Redirect(c, formPath)
		return nil, false
	}
	return image, true
}

func (h *ProductHandler) discardImage(image *upload.StoredImage) {
	if image == nil {
		return
	}
	if err := h.uploadService.Remove(image.Name); err != nil {
		h.view.logger.WithError(err).WithField("image", image.Name).Warn("failed to remove product image")
	}
}

func (h *ProductHandler) flashInvalid(c *gin.Context, err error, formPath string) {
	h.view.Flash(c, "Please check the product details: "+strings.TrimPrefix(err.Error(), product.ErrValidation.Error()+": "))
	h.view.Redirect(c, formPath)
}
