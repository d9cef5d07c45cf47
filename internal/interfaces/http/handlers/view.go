// internal/interfaces/http/handlers/view.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/your-org/boutique-store/internal/config"
	"github.com/your-org/boutique-store/internal/domain/cart"
	"github.com/your-org/boutique-store/internal/domain/product"
	"github.com/your-org/boutique-store/internal/interfaces/http/middleware"
	"github.com/your-org/boutique-store/internal/interfaces/http/session"
)

// View renders pages with the data every page shares (navigation, cart
// count, flash messages) and queues flash messages.
type View struct {
	sessions   *session.Manager
	categories *product.CategoryService
	carts      *cart.Service
	store      config.StoreConfig
	logger     *logrus.Logger
}

// NewView creates a new page renderer
func NewView(sessions *session.Manager, categories *product.CategoryService, carts *cart.Service, store config.StoreConfig, logger *logrus.Logger) *View {
	return &View{
		sessions:   sessions,
		categories: categories,
		carts:      carts,
		store:      store,
		logger:     logger,
	}
}

// Render writes the named template with the shared page data merged in
func (v *View) Render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	ctx := c.Request.Context()
	sid := session.ID(c)

	nav, err := v.categories.NavCategories(ctx)
	if err != nil {
		v.logger.WithError(err).Warn("failed to load navigation categories")
	}

	cartCount := 0
	if current, err := v.carts.Get(ctx, sid); err == nil {
		cartCount = current.TotalQuantity()
	} else {
		v.logger.WithError(err).Warn("failed to load cart")
	}

	flashes, err := v.sessions.Flashes(ctx, sid)
	if err != nil {
		v.logger.WithError(err).Warn("failed to load flash messages")
	}

	data["NavCategories"] = nav
	data["CartCount"] = cartCount
	data["Flashes"] = flashes
	data["IsAdmin"] = middleware.IsAdminFromContext(c)
	data["Store"] = v.store

	c.HTML(status, name, data)
}

// Flash queues a message for the next rendered page
func (v *View) Flash(c *gin.Context, message string) {
	if err := v.sessions.AddFlash(c.Request.Context(), session.ID(c), message); err != nil {
		v.logger.WithError(err).WithField("message", message).Warn("failed to store flash message")
	}
}

// Redirect answers a form post with a See Other redirect
func (v *View) Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}

// NotFound renders the 404 page
func (v *View) NotFound(c *gin.Context) {
	v.Render(c, http.StatusNotFound, "404.html", nil)
}

// Fail logs an unexpected error and renders the error page
func (v *View) Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	v.logger.WithError(err).WithFields(logrus.Fields{
		"path":       c.Request.URL.Path,
		"request_id": c.GetString("request_id"),
	}).Error("request failed")
	v.Render(c, http.StatusInternalServerError, "500.html", nil)
}

// paramID parses a positive numeric route parameter
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// backOr returns the Referer when it points back into this site
func backOr(c *gin.Context, fallback string) string {
	ref := c.GetHeader("Referer")
	if ref == "" {
		return fallback
	}
	if u, err := c.Request.URL.Parse(ref); err == nil && (u.Host == "" || u.Host == c.Request.Host) {
		return u.RequestURI()
	}
	return fallback
}
