// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/boutique-store/internal/pkg/auth"
)

const loginPath = "/admin/login"

// Flasher queues a one-time message for the visitor
type Flasher interface {
	Flash(c *gin.Context, message string)
}

// claimsFromCookie validates the admin token cookie, if any
func claimsFromCookie(c *gin.Context, jwtManager *auth.JWTManager, cookieName string) (*auth.Claims, bool) {
	tokenString, err := c.Cookie(cookieName)
	if err != nil || tokenString == "" {
		return nil, false
	}

	claims, err := jwtManager.ValidateToken(tokenString)
	if err != nil {
		return nil, false
	}
	return claims, true
}

func setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set("user_id", claims.UserID)
	c.Set("username", claims.Username)
	c.Set("is_admin", claims.IsAdmin)
	c.Set("token_claims", claims)
}

// RequireAdmin gates the admin pages. Visitors without a valid token are
// sent to the login page; signed-in accounts without the admin flag are
// sent back to the storefront.
func RequireAdmin(jwtManager *auth.JWTManager, cookieName string, flasher Flasher) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFromCookie(c, jwtManager, cookieName)
		if !ok {
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
			return
		}

		if !claims.IsAdmin {
			flasher.Flash(c, "Admin access only.")
			c.Redirect(http.StatusSeeOther, "/")
			c.Abort()
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAdmin exposes a valid admin token to the pages without requiring one
func OptionalAdmin(jwtManager *auth.JWTManager, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := claimsFromCookie(c, jwtManager, cookieName); ok {
			setClaims(c, claims)
		}
		c.Next()
	}
}

// GetUserIDFromContext extracts user ID from gin context
func GetUserIDFromContext(c *gin.Context) (uint, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := userID.(uint)
	return id, ok
}

// IsAdminFromContext checks if user is admin from gin context
func IsAdminFromContext(c *gin.Context) bool {
	return c.GetBool("is_admin")
}
