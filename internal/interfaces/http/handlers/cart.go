// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/boutique-store/internal/domain/cart"
	"github.com/your-org/boutique-store/internal/interfaces/http/session"
)

// CartHandler handles the session cart pages
type CartHandler struct {
	view  *View
	carts *cart.Service
}

// NewCartHandler creates a new cart handler
func NewCartHandler(view *View, carts *cart.Service) *CartHandler {
	return &CartHandler{
		view:  view,
		carts: carts,
	}
}

// Show handles GET /cart
func (h *CartHandler) Show(c *gin.Context) {
	summary, err := h.carts.Summary(c.Request.Context(), session.ID(c))
	if err != nil {
		h.view.Fail(c, err)
		return
	}

	h.view.Render(c, http.StatusOK, "cart.html", gin.H{
		"Items":  summary.Items,
		"Totals": summary.Totals,
	})
}

// Add handles POST /cart/add/:id
func (h *CartHandler) Add(c *gin.Context) {
	productID, ok := paramID(c, "id")
	if !ok {
		h.view.NotFound(c)
		return
	}

	if _, err := h.carts.AddProduct(c.Request.Context(), session.ID(c), productID); err != nil {
		if errors.Is(err, cart.ErrProductUnavailable) {
			h.view.Flash(c, "This product is not available.")
			h.view.Redirect(c, backOr(c, "/"))
			return
		}
		h.view.Fail(c, err)
		return
	}

	h.view.Flash(c, "Item added to cart.")
	h.view.Redirect(c, backOr(c, "/"))
}

// Remove handles POST /cart/remove/:id
func (h *CartHandler) Remove(c *gin.Context) {
	productID, ok := paramID(c, "id")
	if !ok {
		h.view.NotFound(c)
		return
	}

	_, removed, err := h.carts.RemoveProduct(c.Request.Context(), session.ID(c), productID)
	if err != nil {
		h.view.Fail(c, err)
		return
	}

	if removed {
		h.view.Flash(c, "Item removed from cart.")
	}
	h.view.Redirect(c, "/cart")
}
