package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/boutique-store/internal/pkg/auth"
	"github.com/your-org/boutique-store/internal/testutil"
)

type recordingFlasher struct {
	messages []string
}

func (f *recordingFlasher) Flash(_ *gin.Context, message string) {
	f.messages = append(f.messages, message)
}

func init() {
	gin.SetMode(gin.TestMode)
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestRequireAdmin(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour, "boutique-test")
	flasher := &recordingFlasher{}

	r := gin.New()
	r.GET("/admin", RequireAdmin(jwtManager, "admin_token", flasher), func(c *gin.Context) {
		id, _ := GetUserIDFromContext(c)
		assert.True(t, IsAdminFromContext(c))
		c.String(http.StatusOK, "welcome %d", id)
	})

	call := func(token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		if token != "" {
			req.AddCookie(&http.Cookie{Name: "admin_token", Value: token})
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("no token", func(t *testing.T) {
		w := call("")
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/admin/login", w.Header().Get("Location"))
	})

	t.Run("garbage token", func(t *testing.T) {
		w := call("not-a-jwt")
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/admin/login", w.Header().Get("Location"))
	})

	t.Run("non admin", func(t *testing.T) {
		token, err := jwtManager.GenerateAccessToken(7, "shopper", false)
		require.NoError(t, err)

		w := call(token)
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
		assert.Equal(t, []string{"Admin access only."}, flasher.messages)
	})

	t.Run("admin", func(t *testing.T) {
		token, err := jwtManager.GenerateAccessToken(1, "admin", true)
		require.NoError(t, err)

		w := call(token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "welcome 1", w.Body.String())
	})
}

func TestRateLimit(t *testing.T) {
	client, _ := testutil.NewRedis(t)

	r := gin.New()
	r.POST("/checkout", RateLimit(client, 2, "checkout", quietLogger()), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	r.POST("/admin/login", RateLimit(client, 2, "login", quietLogger()), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	post := func(path string) int {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, nil))
		return w.Code
	}

	assert.Equal(t, http.StatusNoContent, post("/checkout"))
	assert.Equal(t, http.StatusNoContent, post("/checkout"))
	assert.Equal(t, http.StatusTooManyRequests, post("/checkout"))

	// separate counter per scope
	assert.Equal(t, http.StatusNoContent, post("/admin/login"))
}

func TestRequestIDAndSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), SecurityHeaders())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(requestIDKey)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	id := w.Header().Get("X-Request-ID")
	assert.NotEmpty(t, id)
	assert.Equal(t, id, w.Body.String())
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestRequestSizeLimit(t *testing.T) {
	r := gin.New()
	r.Use(RequestSizeLimit(8))
	r.POST("/", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("short")))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("much longer than eight bytes")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestTimeoutSetsDeadline(t *testing.T) {
	r := gin.New()
	r.Use(Timeout(time.Second))
	r.GET("/", func(c *gin.Context) {
		deadline, ok := c.Request.Context().Deadline()
		require.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(time.Second), deadline, time.Second)
		assert.NoError(t, c.Request.Context().Err())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil).WithContext(context.Background()))
	assert.Equal(t, http.StatusOK, w.Code)
}
