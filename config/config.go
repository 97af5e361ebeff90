package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

func LoadEnv() error {
	// Try to load .env file if it exists (for local development).
	// In deployed environments the variables are set directly.
	if err := godotenv.Load(); err != nil {
		// .env file not found is not an error.
		return nil
	}
	return nil
}

// ValidateEnv checks that critical environment variables are set.
// Returns an error if any critical variable is missing.
func ValidateEnv() error {
	var missing []string

	// Critical variables - application cannot function without these
	if os.Getenv("JWT_SECRET") == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if os.Getenv("DATABASE_URL") == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return fmt.Errorf("critical environment variables not set: %v", missing)
	}

	// Non-critical variables - log warnings but don't fail
	if os.Getenv("CART_API_URL") == "" {
		log.Println("WARNING: CART_API_URL not set - defaulting to http://localhost:5003")
	}
	if os.Getenv("PRODUCTS_API_URL") == "" {
		log.Println("WARNING: PRODUCTS_API_URL not set - defaulting to http://localhost:5000")
	}
	if os.Getenv("USERS_API_URL") == "" {
		log.Println("WARNING: USERS_API_URL not set - defaulting to http://localhost:5001")
	}
	if os.Getenv("REDIS_URL") == "" {
		log.Println("WARNING: REDIS_URL not set - product image cache disabled")
	}
	if os.Getenv("FRONTEND_URL") == "" {
		log.Println("WARNING: FRONTEND_URL not set - CORS may not work correctly")
	}

	return nil
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// CartAPIURL is the carrito service base URL.
func CartAPIURL() string {
	return GetEnv("CART_API_URL", "http://localhost:5003")
}

// ProductsAPIURL is the products service base URL.
func ProductsAPIURL() string {
	return GetEnv("PRODUCTS_API_URL", "http://localhost:5000")
}

// UsersAPIURL is the users service base URL.
func UsersAPIURL() string {
	return GetEnv("USERS_API_URL", "http://localhost:5001")
}

// ShippingPerUnit is the flat per-unit shipping amount in COP used for the
// cart summary. The default matches the storefront's 11300 for two units.
func ShippingPerUnit() int64 {
	raw := os.Getenv("SHIPPING_PER_UNIT")
	if raw == "" {
		return 5650
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value < 0 {
		log.Printf("WARNING: invalid SHIPPING_PER_UNIT %q - using default 5650", raw)
		return 5650
	}
	return value
}
