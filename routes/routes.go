package routes

import (
	"time"

	"agroweb-bff/cartview"
	"agroweb-bff/clients"
	"agroweb-bff/handlers"
	"agroweb-bff/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, users *clients.UsersClient, carts *clients.CartClient, catalog *clients.CatalogClient, views *cartview.Registry) {
	// Initialize handlers
	authHandler := &handlers.AuthHandler{DB: db, Users: users, Carts: carts, Views: views}
	cartHandler := &handlers.CartHandler{Views: views}
	productHandler := &handlers.ProductHandler{Catalog: catalog}
	dashboardHandler := &handlers.DashboardHandler{Catalog: catalog}

	authLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Public routes
	api := r.Group("/api")
	{
		// Auth routes
		api.POST("/auth/register", authLimiter.Middleware(), authHandler.Register)
		api.POST("/auth/login", authLimiter.Middleware(), authHandler.Login)

		// Catalog routes
		api.GET("/products", productHandler.GetProducts)
		api.GET("/products/:id", productHandler.GetProduct)
		api.POST("/products", productHandler.CreateProduct)

		// Dashboard routes
		api.GET("/dashboard/summary", dashboardHandler.GetSummary)
		api.GET("/dashboard/top-selling", dashboardHandler.GetTopSelling)
	}

	// Protected routes (require an authenticated session)
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(db))
	{
		protected.GET("/auth/profile", authHandler.Profile)
		protected.POST("/auth/logout", authHandler.Logout)

		// Cart view routes
		protected.GET("/cart", cartHandler.GetCart)
		protected.POST("/cart/retry", cartHandler.Retry)
		protected.POST("/cart/select-all", cartHandler.ToggleAll)
		protected.POST("/cart/items", cartHandler.AddToCart)
		protected.POST("/cart/items/:id/toggle", cartHandler.ToggleOne)
		protected.PUT("/cart/items/:id", cartHandler.UpdateQuantity)
		protected.DELETE("/cart/items/:id", cartHandler.RemoveFromCart)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
