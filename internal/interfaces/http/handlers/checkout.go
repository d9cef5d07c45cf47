// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/boutique-store/internal/domain/cart"
	"github.com/your-org/boutique-store/internal/domain/order"
	"github.com/your-org/boutique-store/internal/interfaces/http/session"
)

// CheckoutHandler handles the checkout form and order placement
type CheckoutHandler struct {
	view   *View
	carts  *cart.Service
	orders *order.Service
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(view *View, carts *cart.Service, orders *order.Service) *CheckoutHandler {
	return &CheckoutHandler{
		view:   view,
		carts:  carts,
		orders: orders,
	}
}

// Show handles GET /checkout
func (h *CheckoutHandler) Show(c *gin.Context) {
	summary, err := h.carts.Summary(c.Request.Context(), session.ID(c))
	if err != nil {
		h.view.Fail(c, err)
		return
	}

	h.view.Render(c, http.StatusOK, "checkout.html", gin.H{
		"Items":  summary.Items,
		"Totals": summary.Totals,
	})
}

// PlaceOrder handles POST /checkout
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	var req order.CheckoutRequest
	if err := c.ShouldBind(&req); err != nil {
		h.view.Flash(c, "Please fill in your name, phone and address.")
		h.view.Redirect(c, "/checkout")
		return
	}

	receipt, err := h.orders.Finalize(c.Request.Context(), session.ID(c), &req)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrValidation):
			h.view.Flash(c, "Please fill in your name, phone and address.")
			h.view.Redirect(c, "/checkout")
		case errors.Is(err, order.ErrEmptyCart):
			h.view.Flash(c, "Your cart is empty.")
			h.view.Redirect(c, "/cart")
		case errors.Is(err, order.ErrPersistence):
			_ = c.Error(err)
			h.view.Flash(c, "We could not place your order. Please try again.")
			h.view.Redirect(c, "/checkout")
		default:
			h.view.Fail(c, err)
		}
		return
	}

	h.view.Render(c, http.StatusOK, "payment_success.html", gin.H{
		"Order":       receipt.Order,
		"Items":       receipt.Items,
		"Totals":      receipt.Totals,
		"WhatsAppURL": receipt.WhatsAppURL,
	})
}
