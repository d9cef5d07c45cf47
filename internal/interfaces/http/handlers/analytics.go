// internal/interfaces/http/handlers/analytics.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/boutique-store/internal/domain/analytics"
)

// AnalyticsHandler handles the admin dashboard
type AnalyticsHandler struct {
	view      *View
	analytics *analytics.Service
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(view *View, analyticsService *analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{
		view:      view,
		analytics: analyticsService,
	}
}

// Dashboard handles GET /admin
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	stats, err := h.analytics.Dashboard(c.Request.Context(), 5)
	if err != nil {
		h.view.Fail(c, err)
		return
	}

	h.view.Render(c, http.StatusOK, "admin_dashboard.html", gin.H{
		"Stats": stats,
	})
}
