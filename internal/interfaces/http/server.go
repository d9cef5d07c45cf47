// internal/interfaces/http/server.go
package http

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/your-org/boutique-store/internal/config"
	"github.com/your-org/boutique-store/internal/domain/analytics"
	"github.com/your-org/boutique-store/internal/domain/cart"
	"github.com/your-org/boutique-store/internal/domain/notification"
	"github.com/your-org/boutique-store/internal/domain/order"
	"github.com/your-org/boutique-store/internal/domain/product"
	"github.com/your-org/boutique-store/internal/domain/upload"
	"github.com/your-org/boutique-store/internal/domain/user"
	"github.com/your-org/boutique-store/internal/infrastructure/database/postgres"
	"github.com/your-org/boutique-store/internal/interfaces/http/middleware"
	"github.com/your-org/boutique-store/internal/interfaces/http/routes"
	"github.com/your-org/boutique-store/internal/interfaces/http/session"
	"github.com/your-org/boutique-store/internal/pkg/auth"
	"github.com/your-org/boutique-store/internal/pkg/messaging"
	"github.com/your-org/boutique-store/internal/pkg/pdf"
	"github.com/your-org/boutique-store/web"
)

// Server represents the HTTP server
type Server struct {
	config      *config.Config
	gin         *gin.Engine
	httpServer  *http.Server
	db          *gorm.DB
	redisClient *redis.Client
	logger      *logrus.Logger
	deps        *routes.Dependencies
}

// NewServer creates a new HTTP server instance. sender delivers the order
// confirmation messages.
func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, logger *logrus.Logger, sender messaging.Sender) *Server {
	s := &Server{
		config:      cfg,
		db:          db,
		redisClient: redisClient,
		logger:      logger,
	}
	s.deps = s.buildDependencies(sender)
	return s
}

func (s *Server) buildDependencies(sender messaging.Sender) *routes.Dependencies {
	cfg := s.config

	products := product.NewService(s.db)
	carts := cart.NewService(cart.NewRedisStore(s.redisClient, cfg.Session.TTL), products)
	dispatcher := notification.NewDispatcher(sender, cfg.Messaging, cfg.Store.CurrencySymbol, s.logger)
	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.App.Name)

	return &routes.Dependencies{
		Config:      cfg,
		Logger:      s.logger,
		RedisClient: s.redisClient,
		Sessions:    session.NewManager(s.redisClient, cfg.Session, cfg.Security.SecureCookies),
		JWTManager:  jwtManager,

		Products:   products,
		Categories: product.NewCategoryService(s.db),
		Carts:      carts,
		Orders:     order.NewService(s.db, carts, dispatcher, cfg.Store, s.logger),
		Users:      user.NewService(s.db, auth.NewPasswordManager(cfg.Security.BcryptCost), jwtManager),
		Analytics:  analytics.NewService(s.db),
		Uploads:    upload.NewService(cfg.Upload),
		Invoices:   pdf.NewService(cfg.Store),
	}
}

// Engine builds the gin engine with middleware, templates and routes
func (s *Server) Engine() (*gin.Engine, error) {
	if s.gin != nil {
		return s.gin, nil
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(s.config.Security.TrustedProxies); err != nil {
		return nil, fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	tmpl, err := s.loadTemplates()
	if err != nil {
		return nil, err
	}
	engine.SetHTMLTemplate(tmpl)

	s.gin = engine
	s.setupMiddleware()

	if err := s.setupRoutes(); err != nil {
		return nil, err
	}
	return engine, nil
}

// Start starts the HTTP server
func (s *Server) Start() error {
	if s.config.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine, err := s.Engine()
	if err != nil {
		return err
	}

	s.httpServer = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      engine,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  s.config.Server.IdleTimeout,
	}

	log.Printf("🚀 HTTP Server starting on port %s", s.config.Server.Port)
	log.Printf("🛍️ Storefront: http://localhost:%s/", s.config.Server.Port)
	log.Printf("🔐 Admin: http://localhost:%s/admin", s.config.Server.Port)
	log.Printf("📊 Health Check: http://localhost:%s/health", s.config.Server.Port)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	log.Println("🛑 Shutting down HTTP server...")

	if s.httpServer == nil {
		return nil
	}
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	log.Println("✅ HTTP server stopped gracefully")
	return nil
}

// setupMiddleware configures all middleware for the server
func (s *Server) setupMiddleware() {
	s.gin.Use(gin.Recovery())
	s.gin.Use(middleware.RequestID())
	s.gin.Use(middleware.Logger(s.logger))
	s.gin.Use(middleware.SecurityHeaders())
	s.gin.Use(middleware.RequestSizeLimit(s.config.Server.MaxBodySize))
	s.gin.Use(middleware.Timeout(s.config.Server.RequestTimeout))
}

// setupRoutes configures static files, health checks and the pages
func (s *Server) setupRoutes() error {
	css, err := fs.Sub(web.FS, "static/css")
	if err != nil {
		return fmt.Errorf("failed to load stylesheets: %w", err)
	}
	s.gin.StaticFS("/static/css", http.FS(css))
	s.gin.Static("/static/uploads", s.deps.Uploads.Dir())

	s.gin.GET("/health", s.healthCheck)

	routes.SetupRoutes(s.gin, s.deps)
	return nil
}

func (s *Server) loadTemplates() (*template.Template, error) {
	currency := s.config.Store.CurrencySymbol

	funcs := template.FuncMap{
		"money":    func(d decimal.Decimal) string { return order.FormatAmount(currency, d) },
		"imageURL": s.deps.Uploads.URL,
		"date":     func(t time.Time) string { return t.Format("02 Jan 2006, 15:04") },
	}

	tmpl, err := template.New("").Funcs(funcs).ParseFS(web.FS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}

// healthCheck handles health check requests
func (s *Server) healthCheck(c *gin.Context) {
	ctx := c.Request.Context()

	if err := postgres.Ping(ctx, s.db); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  "database ping failed",
		})
		return
	}

	if err := s.redisClient.Ping(ctx).Err(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  "redis ping failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"version":     s.config.App.Version,
		"environment": s.config.App.Environment,
	})
}
