package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agroweb-bff/cache"
	"agroweb-bff/cartview"
	"agroweb-bff/clients"
	"agroweb-bff/config"
	"agroweb-bff/database"
	"agroweb-bff/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load environment variables
	if err := config.LoadEnv(); err != nil {
		log.Fatal("Error loading .env file:", err)
	}

	// Validate critical environment variables
	if err := config.ValidateEnv(); err != nil {
		log.Fatal("Environment validation failed: ", err)
	}

	// Initialize the session database
	db, err := database.Connect()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	if err := database.CleanupExpiredSessions(db); err != nil {
		log.Printf("Warning: Could not clean up expired sessions: %v", err)
	}

	// Product image cache: Redis when configured, otherwise every lookup
	// goes to the products service.
	var images cache.ImageCache = cache.Noop{}
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Fatal("Invalid REDIS_URL: ", err)
		}
		images = cache.NewRedisCache(redis.NewClient(opts))
	}

	// Upstream service clients
	catalogClient := clients.NewCatalogClient(config.ProductsAPIURL(), images)
	cartClient := clients.NewCartClient(config.CartAPIURL(), catalogClient)
	usersClient := clients.NewUsersClient(config.UsersAPIURL())
	views := cartview.NewRegistry(cartClient, config.ShippingPerUnit())

	// Setup Gin router
	r := gin.Default()

	// Limit multipart form memory to 10MB (product registration uploads)
	r.MaxMultipartMemory = 10 << 20

	// CORS configuration - the storefront SPA is the only browser client
	origins := []string{os.Getenv("FRONTEND_URL")}
	var filteredOrigins []string
	for _, o := range origins {
		if o != "" {
			filteredOrigins = append(filteredOrigins, o)
		}
	}
	if len(filteredOrigins) == 0 {
		filteredOrigins = []string{"http://localhost:5173"}
		log.Println("WARNING: No CORS origins configured, defaulting to http://localhost:5173")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     filteredOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Setup routes
	routes.SetupRoutes(r, db, usersClient, cartClient, catalogClient, views)

	// Start server with graceful shutdown
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// Run server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	// Close database connection
	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("Error closing database connection: %v", err)
		} else {
			log.Println("Database connection closed")
		}
	}

	log.Println("Server exited gracefully")
}
