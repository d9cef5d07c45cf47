// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/boutique-store/internal/domain/user"
	"github.com/your-org/boutique-store/internal/interfaces/http/middleware"
)

// AuthHandler handles admin sign in and sign out
type AuthHandler struct {
	view          *View
	userService   *user.Service
	cookieName    string
	secureCookies bool
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(view *View, userService *user.Service, cookieName string, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		view:          view,
		userService:   userService,
		cookieName:    cookieName,
		secureCookies: secureCookies,
	}
}

// LoginPage handles GET /admin/login
func (h *AuthHandler) LoginPage(c *gin.Context) {
	if middleware.IsAdminFromContext(c) {
		h.view.Redirect(c, "/admin")
		return
	}
	h.view.Render(c, http.StatusOK, "login.html", nil)
}

// Login handles POST /admin/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.view.Flash(c, "Invalid credentials or not an admin.")
		h.view.Redirect(c, "/admin/login")
		return
	}

	response, err := h.userService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			h.view.Flash(c, "Invalid credentials or not an admin.")
			h.view.Redirect(c, "/admin/login")
			return
		}
		h.view.Fail(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, response.AccessToken, int(response.ExpiresIn), "/", "", h.secureCookies, true)

	h.view.Flash(c, "Logged in as admin.")
	h.view.Redirect(c, "/admin")
}

// Logout handles POST /admin/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	// The token is stateless; dropping the cookie ends the admin session
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, "", -1, "/", "", h.secureCookies, true)

	h.view.Flash(c, "Logged out.")
	h.view.Redirect(c, "/")
}
