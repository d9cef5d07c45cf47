// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/your-org/boutique-store/internal/config"
	"github.com/your-org/boutique-store/internal/domain/analytics"
	"github.com/your-org/boutique-store/internal/domain/cart"
	"github.com/your-org/boutique-store/internal/domain/order"
	"github.com/your-org/boutique-store/internal/domain/product"
	"github.com/your-org/boutique-store/internal/domain/upload"
	"github.com/your-org/boutique-store/internal/domain/user"
	"github.com/your-org/boutique-store/internal/interfaces/http/handlers"
	"github.com/your-org/boutique-store/internal/interfaces/http/middleware"
	"github.com/your-org/boutique-store/internal/interfaces/http/session"
	"github.com/your-org/boutique-store/internal/pkg/auth"
	"github.com/your-org/boutique-store/internal/pkg/pdf"
)

// Dependencies holds the services the routes are built from
type Dependencies struct {
	Config      *config.Config
	Logger      *logrus.Logger
	RedisClient *redis.Client
	Sessions    *session.Manager
	JWTManager  *auth.JWTManager

	Products   *product.Service
	Categories *product.CategoryService
	Carts      *cart.Service
	Orders     *order.Service
	Users      *user.Service
	Analytics  *analytics.Service
	Uploads    *upload.Service
	Invoices   *pdf.Service
}

// SetupRoutes registers the storefront and admin pages
func SetupRoutes(r *gin.Engine, deps *Dependencies) {
	view := handlers.NewView(deps.Sessions, deps.Categories, deps.Carts, deps.Config.Store, deps.Logger)

	pages := r.Group("")
	pages.Use(deps.Sessions.Middleware())
	pages.Use(middleware.OptionalAdmin(deps.JWTManager, deps.Config.JWT.CookieName))

	SetupShopRoutes(pages, view, deps)
	SetupAdminRoutes(pages, view, deps)

	r.NoRoute(deps.Sessions.Middleware(), view.NotFound)
}

// SetupShopRoutes sets up the public storefront routes
func SetupShopRoutes(rg *gin.RouterGroup, view *handlers.View, deps *Dependencies) {
	shopHandler := handlers.NewShopHandler(view, deps.Products, deps.Categories, deps.Config.Store.LatestProducts)
	cartHandler := handlers.NewCartHandler(view, deps.Carts)
	checkoutHandler := handlers.NewCheckoutHandler(view, deps.Carts, deps.Orders)

	rg.GET("/", shopHandler.Index)
	rg.GET("/category/:slug", shopHandler.Category)

	cartGroup := rg.Group("/cart")
	{
		cartGroup.GET("", cartHandler.Show)
		cartGroup.POST("/add/:id", cartHandler.Add)
		cartGroup.POST("/remove/:id", cartHandler.Remove)
	}

	rg.GET("/checkout", checkoutHandler.Show)
	rg.POST("/checkout",
		middleware.RateLimit(deps.RedisClient, deps.Config.Security.RateLimitPerMinute, "checkout", deps.Logger),
		checkoutHandler.PlaceOrder,
	)
}

// SetupAdminRoutes sets up the admin routes
func SetupAdminRoutes(rg *gin.RouterGroup, view *handlers.View, deps *Dependencies) {
	authHandler := handlers.NewAuthHandler(view, deps.Users, deps.Config.JWT.CookieName, deps.Config.Security.SecureCookies)
	analyticsHandler := handlers.NewAnalyticsHandler(view, deps.Analytics)
	categoryHandler := handlers.NewCategoryHandler(view, deps.Categories)
	productHandler := handlers.NewProductHandler(view, deps.Products, deps.Categories, deps.Uploads)
	orderHandler := handlers.NewOrderHandler(view, deps.Orders)
	invoiceHandler := handlers.NewInvoiceHandler(view, deps.Orders, deps.Invoices)

	rg.GET("/admin/login", authHandler.LoginPage)
	rg.POST("/admin/login",
		middleware.RateLimit(deps.RedisClient, deps.Config.Security.RateLimitPerMinute, "login", deps.Logger),
		authHandler.Login,
	)

	admin := rg.Group("/admin")
	admin.Use(middleware.RequireAdmin(deps.JWTManager, deps.Config.JWT.CookieName, view))
	{
		admin.POST("/logout", authHandler.Logout)
		admin.GET("", analyticsHandler.Dashboard)

		categories := admin.Group("/categories")
		{
			categories.GET("", categoryHandler.List)
			categories.POST("", categoryHandler.Create)
			categories.POST("/:id/delete", categoryHandler.Delete)
		}

		products := admin.Group("/products")
		{
			products.GET("", productHandler.List)
			products.GET("/new", productHandler.New)
			products.POST("/new", productHandler.Create)
			products.GET("/:id/edit", productHandler.Edit)
			products.POST("/:id/edit", productHandler.Update)
			products.POST("/:id/delete", productHandler.Delete)
		}

		orders := admin.Group("/orders")
		{
			orders.GET("", orderHandler.List)
			orders.GET("/:id", orderHandler.Detail)
			orders.POST("/:id", orderHandler.UpdateStatus)
			orders.GET("/:id/invoice", invoiceHandler.GenerateInvoice)
		}
	}
}
