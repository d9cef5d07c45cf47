package http

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/your-org/boutique-store/internal/config"
	"github.com/your-org/boutique-store/internal/domain/order"
	"github.com/your-org/boutique-store/internal/domain/product"
	"github.com/your-org/boutique-store/internal/domain/user"
	"github.com/your-org/boutique-store/internal/infrastructure/database/postgres"
	"github.com/your-org/boutique-store/internal/pkg/auth"
	"github.com/your-org/boutique-store/internal/pkg/messaging"
	"github.com/your-org/boutique-store/internal/testutil"
)

const adminPassword = "S3cure!Passw0rd"

func init() {
	gin.SetMode(gin.TestMode)
}

type recordingSender struct {
	mu   sync.Mutex
	sent []*messaging.Message
}

func (s *recordingSender) Send(_ context.Context, msg *messaging.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return nil
}

type fixture struct {
	db        *gorm.DB
	engine    *gin.Engine
	sender    *recordingSender
	cfg       *config.Config
	category  *product.Category
	product   *product.Product
	jwt       *auth.JWTManager
	uploadDir string
}

func testConfig(uploadDir string) *config.Config {
	return &config.Config{
		App:    config.AppConfig{Name: "boutique-test", Environment: "test"},
		Server: config.ServerConfig{RequestTimeout: 5 * time.Second, MaxBodySize: 4 << 20},
		JWT:    config.JWTConfig{Secret: "test-secret", AccessTokenExpiry: time.Hour, CookieName: "admin_token"},
		Security: config.SecurityConfig{
			BcryptCost:         bcrypt.MinCost,
			RateLimitPerMinute: 100,
		},
		Session: config.SessionConfig{CookieName: "session_id", TTL: time.Hour},
		Messaging: config.MessagingConfig{
			Provider:            "log",
			MerchantAddress:     "whatsapp:+919345508442",
			ChannelPrefix:       "whatsapp:",
			CustomerCountryCode: "+91",
			Timeout:             time.Second,
		},
		Store: config.StoreConfig{
			Name:             "Glamozz Boutique",
			CurrencySymbol:   "Rs.",
			BankAccountName:  "Glamozz Boutique",
			BankAccountNo:    "123456789012",
			BankIFSC:         "HDFC0001234",
			BankName:         "HDFC Bank",
			WhatsAppNumber:   "919345508442",
			PlaceholderEmail: "no-email@customer.com",
			LatestProducts:   6,
		},
		Upload: config.UploadConfig{Dir: uploadDir, MaxSize: 1 << 20},
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	db := testutil.NewDB(t, postgres.Models()...)
	client, _ := testutil.NewRedis(t)

	uploadDir := t.TempDir()
	cfg := testConfig(uploadDir)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	sender := &recordingSender{}
	server := NewServer(cfg, db, client, logger, sender)
	engine, err := server.Engine()
	require.NoError(t, err)

	cat, err := product.NewCategoryService(db).Create(ctx, &product.CategoryCreateRequest{Name: "Abaya", Slug: "abaya"})
	require.NoError(t, err)
	p, err := product.NewService(db).Create(ctx, &product.ProductInput{
		Name:       "Black Abaya",
		Brand:      "Dubai",
		Size:       "54",
		Color:      "Black",
		Price:      decimal.NewFromInt(650),
		CategoryID: cat.ID,
		IsActive:   true,
	})
	require.NoError(t, err)

	passwords := auth.NewPasswordManager(bcrypt.MinCost)
	_, _, err = user.NewService(db, passwords, nil).EnsureAdmin(ctx, "admin", "admin@store.test", adminPassword)
	require.NoError(t, err)

	return &fixture{
		db:        db,
		engine:    engine,
		sender:    sender,
		cfg:       cfg,
		category:  cat,
		product:   p,
		jwt:       auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.App.Name),
		uploadDir: uploadDir,
	}
}

// browser keeps cookies between requests like a real visitor
type browser struct {
	engine  *gin.Engine
	cookies map[string]*http.Cookie
}

func (f *fixture) browser() *browser {
	return &browser{engine: f.engine, cookies: map[string]*http.Cookie{}}
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range b.cookies {
		req.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
	}
	w := httptest.NewRecorder()
	b.engine.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.MaxAge < 0 || c.Value == "" {
			delete(b.cookies, c.Name)
			continue
		}
		b.cookies[c.Name] = c
	}
	return w
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (b *browser) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

func (b *browser) loginAsAdmin(t *testing.T) {
	t.Helper()
	w := b.post("/admin/login", url.Values{"username": {"admin"}, "password": {adminPassword}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/admin", w.Header().Get("Location"))
	require.Contains(t, b.cookies, "admin_token")
}

func TestStorefrontPages(t *testing.T) {
	f := newFixture(t)
	b := f.browser()

	w := b.get("/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Black Abaya")
	assert.Contains(t, w.Body.String(), "Rs.650")
	assert.Contains(t, w.Body.String(), `href="/category/abaya"`)

	w = b.get("/category/abaya?color=Black")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Black Abaya")

	w = b.get("/category/abaya?color=Red")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "<h3>Black Abaya</h3>")

	assert.Equal(t, http.StatusNotFound, b.get("/category/unknown").Code)
	assert.Equal(t, http.StatusNotFound, b.get("/no/such/page").Code)
}

func TestCartFlow(t *testing.T) {
	f := newFixture(t)
	b := f.browser()
	addPath := "/cart/add/" + itoa(f.product.ID)

	req := httptest.NewRequest(http.MethodPost, addPath, nil)
	req.Header.Set("Referer", "http://example.com/category/abaya")
	w := b.do(req)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/category/abaya", w.Header().Get("Location"))

	w = b.post(addPath, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = b.get("/cart")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Item added to cart.")
	assert.Contains(t, body, "Cart (2)")
	assert.Contains(t, body, "Rs.1300") // 2 × 650
	assert.Contains(t, body, "Rs.50")   // shipping for two pieces

	// flash messages are shown once
	assert.NotContains(t, b.get("/cart").Body.String(), "Item added to cart.")

	w = b.post("/cart/add/9999", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, b.get("/").Body.String(), "This product is not available.")

	assert.Equal(t, http.StatusNotFound, b.post("/cart/add/abc", nil).Code)

	w = b.post("/cart/remove/"+itoa(f.product.ID), nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/cart", w.Header().Get("Location"))
	body = b.get("/cart").Body.String()
	assert.Contains(t, body, "Item removed from cart.")
	assert.Contains(t, body, "Your cart is empty.")

	// removing what is not there says nothing
	b.post("/cart/remove/"+itoa(f.product.ID), nil)
	assert.NotContains(t, b.get("/cart").Body.String(), "Item removed from cart.")
}

func TestCheckout(t *testing.T) {
	f := newFixture(t)
	b := f.browser()

	details := url.Values{"name": {"Aisha"}, "phone": {"9876543210"}, "address": {"12 Anna Salai, Chennai"}}

	t.Run("empty cart", func(t *testing.T) {
		w := b.post("/checkout", details)
		require.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/cart", w.Header().Get("Location"))
		assert.Contains(t, b.get("/cart").Body.String(), "Your cart is empty.")
	})

	b.post("/cart/add/"+itoa(f.product.ID), nil)

	t.Run("missing details keep the cart", func(t *testing.T) {
		w := b.post("/checkout", url.Values{"name": {"Aisha"}})
		require.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/checkout", w.Header().Get("Location"))

		body := b.get("/checkout").Body.String()
		assert.Contains(t, body, "Please fill in your name, phone and address.")
		assert.Contains(t, body, "Black Abaya")
		assert.Contains(t, body, "HDFC0001234")
	})

	t.Run("order placed", func(t *testing.T) {
		w := b.post("/checkout", details)
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "#1")
		assert.Contains(t, body, "Rs.700") // 650 + 50 shipping
		assert.Contains(t, body, "https://wa.me/919345508442?text=NEW%20ORDER%20RECEIVED")

		var saved order.Order
		require.NoError(t, f.db.Preload("Items").First(&saved).Error)
		assert.Equal(t, order.StatusPending, saved.Status)
		assert.Equal(t, "no-email@customer.com", saved.CustomerEmail)
		assert.True(t, decimal.NewFromInt(700).Equal(saved.TotalAmount))
		require.Len(t, saved.Items, 1)

		assert.Contains(t, b.get("/cart").Body.String(), "Your cart is empty.")
	})
}

func TestAdminAccess(t *testing.T) {
	f := newFixture(t)

	t.Run("anonymous visitors go to the login page", func(t *testing.T) {
		b := f.browser()
		for _, path := range []string{"/admin", "/admin/products", "/admin/orders/1"} {
			w := b.get(path)
			assert.Equal(t, http.StatusSeeOther, w.Code, path)
			assert.Equal(t, "/admin/login", w.Header().Get("Location"), path)
		}
		assert.Equal(t, http.StatusOK, b.get("/admin/login").Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		b := f.browser()
		w := b.post("/admin/login", url.Values{"username": {"admin"}, "password": {"nope"}})
		require.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/admin/login", w.Header().Get("Location"))
		assert.NotContains(t, b.cookies, "admin_token")
		assert.Contains(t, b.get("/admin/login").Body.String(), "Invalid credentials or not an admin.")
	})

	t.Run("non admin token", func(t *testing.T) {
		b := f.browser()
		token, err := f.jwt.GenerateAccessToken(42, "shopper", false)
		require.NoError(t, err)
		b.cookies["admin_token"] = &http.Cookie{Name: "admin_token", Value: token}

		w := b.get("/admin")
		require.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
		assert.Contains(t, b.get("/").Body.String(), "Admin access only.")
	})

	t.Run("admin session", func(t *testing.T) {
		b := f.browser()
		b.loginAsAdmin(t)

		w := b.get("/admin")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Logged in as admin.")
		assert.Contains(t, w.Body.String(), "Dashboard")

		w = b.post("/admin/logout", nil)
		require.Equal(t, http.StatusSeeOther, w.Code)
		assert.NotContains(t, b.cookies, "admin_token")
		assert.Equal(t, "/admin/login", b.get("/admin").Header().Get("Location"))
	})
}

func TestAdminCategories(t *testing.T) {
	f := newFixture(t)
	b := f.browser()
	b.loginAsAdmin(t)

	w := b.post("/admin/categories", url.Values{"name": {"Niqab"}, "slug": {"Niqab"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	body := b.get("/admin/categories").Body.String()
	assert.Contains(t, body, "Category added successfully.")
	assert.Contains(t, body, "niqab")

	b.post("/admin/categories", url.Values{"name": {"Other"}, "slug": {"niqab"}})
	assert.Contains(t, b.get("/admin/categories").Body.String(), "Slug already exists.")

	b.post("/admin/categories", url.Values{"name": {""}, "slug": {"x"}})
	assert.Contains(t, b.get("/admin/categories").Body.String(), "Name and slug are required.")

	b.post("/admin/categories/"+itoa(f.category.ID)+"/delete", nil)
	assert.Contains(t, b.get("/admin/categories").Body.String(), "Cannot delete category with products.")

	var niqab product.Category
	require.NoError(t, f.db.Where("slug = ?", "niqab").First(&niqab).Error)
	b.post("/admin/categories/"+itoa(niqab.ID)+"/delete", nil)
	assert.Contains(t, b.get("/admin/categories").Body.String(), "Category deleted.")

	assert.Equal(t, http.StatusNotFound, b.post("/admin/categories/999/delete", nil).Code)
}

func TestAdminProductWithImage(t *testing.T) {
	f := newFixture(t)
	b := f.browser()
	b.loginAsAdmin(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range map[string]string{
		"name":        "Pearl Niqab",
		"brand":       "Local",
		"size":        "Free",
		"color":       "White",
		"price":       "299.50",
		"category_id": itoa(f.category.ID),
		"is_active":   "1",
	} {
		require.NoError(t, mw.WriteField(k, v))
	}
	part, err := mw.CreateFormFile("image", "my photo.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("not really a jpeg"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/products/new", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := b.do(req)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/products", w.Header().Get("Location"))

	var created product.Product
	require.NoError(t, f.db.Where("name = ?", "Pearl Niqab").First(&created).Error)
	assert.True(t, decimal.RequireFromString("299.50").Equal(created.Price))
	assert.True(t, created.IsActive)
	require.NotEmpty(t, created.ImageFilename)
	assert.True(t, strings.HasSuffix(created.ImageFilename, "_my_photo.jpg"))

	_, err = os.Stat(filepath.Join(f.uploadDir, created.ImageFilename))
	require.NoError(t, err)

	body := b.get("/admin/products").Body.String()
	assert.Contains(t, body, "Product created.")
	assert.Contains(t, body, "/static/uploads/"+created.ImageFilename)

	// deactivate; the image is kept
	w = b.post("/admin/products/"+itoa(created.ID)+"/edit", url.Values{
		"name": {"Pearl Niqab"}, "price": {"299.50"}, "category_id": {itoa(f.category.ID)},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	var updated product.Product
	require.NoError(t, f.db.First(&updated, created.ID).Error)
	assert.False(t, updated.IsActive)
	assert.Equal(t, created.ImageFilename, updated.ImageFilename)

	w = b.post("/admin/products/new", url.Values{"name": {""}, "price": {"10"}, "category_id": {itoa(f.category.ID)}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/products/new", w.Header().Get("Location"))

	w = b.post("/admin/products/"+itoa(created.ID)+"/delete", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	_, err = os.Stat(filepath.Join(f.uploadDir, created.ImageFilename))
	assert.True(t, os.IsNotExist(err))

	assert.Equal(t, http.StatusNotFound, b.get("/admin/products/999/edit").Code)
}

func TestAdminOrderStatusNotifies(t *testing.T) {
	f := newFixture(t)

	shopper := f.browser()
	shopper.post("/cart/add/"+itoa(f.product.ID), nil)
	w := shopper.post("/checkout", url.Values{"name": {"Aisha"}, "phone": {"9876543210"}, "address": {"Chennai"}})
	require.Equal(t, http.StatusOK, w.Code)

	admin := f.browser()
	admin.loginAsAdmin(t)

	w = admin.get("/admin/orders")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Aisha")

	w = admin.get("/admin/orders/1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Black Abaya")

	w = admin.post("/admin/orders/1", url.Values{"status": {"Confirmed"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/orders", w.Header().Get("Location"))
	require.Len(t, f.sender.sent, 2)
	assert.Equal(t, "whatsapp:+919876543210", f.sender.sent[0].To)
	assert.Equal(t, "whatsapp:+919345508442", f.sender.sent[1].To)

	// saving Confirmed again sends nothing
	admin.post("/admin/orders/1", url.Values{"status": {"Confirmed"}})
	assert.Len(t, f.sender.sent, 2)

	admin.post("/admin/orders/1", url.Values{"status": {"  "}})
	assert.Contains(t, admin.get("/admin/orders/1").Body.String(), "Please choose a status.")

	assert.Equal(t, http.StatusNotFound, admin.post("/admin/orders/42", url.Values{"status": {"Paid"}}).Code)

	w = admin.get("/admin/orders/1/invoice?format=html")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "INV-000001")
	assert.Contains(t, w.Body.String(), "Rs.700")
}

func TestHealth(t *testing.T) {
	f := newFixture(t)

	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
