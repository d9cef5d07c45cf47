// internal/interfaces/http/session/session.go
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/your-org/boutique-store/internal/config"
)

const contextKey = "session_id"

var ErrNoSession = errors.New("no session")

// Manager issues the visitor session cookie and keeps flash messages for
// the session in Redis. The cart lives under the same session id.
type Manager struct {
	client     *redis.Client
	cookieName string
	ttl        time.Duration
	secure     bool
}

// NewManager creates a new session manager
func NewManager(client *redis.Client, cfg config.SessionConfig, secureCookies bool) *Manager {
	name := cfg.CookieName
	if name == "" {
		name = "session_id"
	}
	return &Manager{
		client:     client,
		cookieName: name,
		ttl:        cfg.TTL,
		secure:     secureCookies,
	}
}

// Middleware makes sure every request carries a session id, issuing a
// fresh cookie when the visitor has none or sends a malformed one.
func (m *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(m.cookieName)
		if err != nil || !validID(sid) {
			sid = uuid.NewString()
		}

		// refreshed on every request so an active visitor keeps the cart
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(m.cookieName, sid, int(m.ttl.Seconds()), "/", "", m.secure, true)

		c.Set(contextKey, sid)
		c.Next()
	}
}

// ID returns the session id bound by Middleware
func ID(c *gin.Context) string {
	return c.GetString(contextKey)
}

func validID(sid string) bool {
	_, err := uuid.Parse(sid)
	return err == nil
}

func flashKey(sessionID string) string {
	return fmt.Sprintf("flash:session:%s", sessionID)
}

// AddFlash queues a one-time message for the session's next page
func (m *Manager) AddFlash(ctx context.Context, sessionID, message string) error {
	if sessionID == "" {
		return ErrNoSession
	}

	key := flashKey(sessionID)
	pipe := m.client.TxPipeline()
	pipe.RPush(ctx, key, message)
	pipe.Expire(ctx, key, m.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store flash message: %w", err)
	}
	return nil
}

// Flashes returns and removes the queued messages, oldest first
func (m *Manager) Flashes(ctx context.Context, sessionID string) ([]string, error) {
	if sessionID == "" {
		return nil, nil
	}

	key := flashKey(sessionID)
	pipe := m.client.TxPipeline()
	messages := pipe.LRange(ctx, key, 0, -1)
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to read flash messages: %w", err)
	}
	return messages.Val(), nil
}
