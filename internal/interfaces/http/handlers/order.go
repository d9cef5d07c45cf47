// internal/interfaces/http/handlers/order.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/boutique-store/internal/domain/order"
)

// OrderHandler handles order administration
type OrderHandler struct {
	view         *View
	orderService *order.Service
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(view *View, orderService *order.Service) *OrderHandler {
	return &OrderHandler{
		view:         view,
		orderService: orderService,
	}
}

// List handles GET /admin/orders
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.orderService.List(c.Request.Context())
	if err != nil {
		h.view.Fail(c, err)
		return
	}

	h.view.Render(c, http.StatusOK, "admin_orders.html", gin.H{
		"Orders": orders,
	})
}

// Detail handles GET /admin/orders/:id
func (h *OrderHandler) Detail(c *gin.Context) {
	o, ok := h.loadOrder(c)
	if !ok {
		return
	}

	h.view.Render(c, http.StatusOK, "admin_order_detail.html", gin.H{
		"Order":    o,
		"Statuses": order.Statuses(),
	})
}

// UpdateStatus handles POST /admin/orders/:id. Notifications for a newly
// confirmed order are sent by the order service; their failures never
// reach the admin.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		h.view.NotFound(c)
		return
	}

	if _, err := h.orderService.UpdateStatus(c.Request.Context(), id, c.PostForm("status")); err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			h.view.NotFound(c)
		case errors.Is(err, order.ErrValidation):
			h.view.Flash(c, "Please choose a status.")
			h.view.Redirect(c, fmt.Sprintf("/admin/orders/%d", id))
		default:
			h.view.Fail(c, err)
		}
		return
	}

	h.view.Flash(c, "Order status updated.")
	h.view.Redirect(c, "/admin/orders")
}

// loadOrder resolves the :id parameter. On failure it has already answered
// the request and returns false.
func (h *OrderHandler) loadOrder(c *gin.Context) (*order.Order, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		h.view.NotFound(c)
		return nil, false
	}

	o, err := h.orderService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			h.view.NotFound(c)
			return nil, false
		}
		h.view.Fail(c, err)
		return nil, false
	}
	return o, true
}
