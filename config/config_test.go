package config

import (
	"testing"
)

func TestValidateEnvMissingCritical(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DATABASE_URL", "")

	if err := ValidateEnv(); err == nil {
		t.Fatal("expected error for missing critical variables")
	}
}

func TestValidateEnvAllCriticalSet(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DATABASE_URL", "host=localhost dbname=agroweb")

	if err := ValidateEnv(); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestGetEnvDefault(t *testing.T) {
	t.Setenv("SOME_UNSET_KEY", "")
	if got := GetEnv("SOME_UNSET_KEY", "fallback"); got != "fallback" {
		t.Errorf("expected fallback, got %s", got)
	}

	t.Setenv("SOME_SET_KEY", "value")
	if got := GetEnv("SOME_SET_KEY", "fallback"); got != "value" {
		t.Errorf("expected value, got %s", got)
	}
}

func TestServiceURLDefaults(t *testing.T) {
	t.Setenv("CART_API_URL", "")
	t.Setenv("PRODUCTS_API_URL", "")
	t.Setenv("USERS_API_URL", "")

	if got := CartAPIURL(); got != "http://localhost:5003" {
		t.Errorf("expected carrito default on :5003, got %s", got)
	}
	if got := ProductsAPIURL(); got != "http://localhost:5000" {
		t.Errorf("expected products default on :5000, got %s", got)
	}
	if got := UsersAPIURL(); got != "http://localhost:5001" {
		t.Errorf("expected users default on :5001, got %s", got)
	}
}

func TestShippingPerUnitDefault(t *testing.T) {
	t.Setenv("SHIPPING_PER_UNIT", "")
	if got := ShippingPerUnit(); got != 5650 {
		t.Errorf("expected default 5650, got %d", got)
	}
}

func TestShippingPerUnitOverride(t *testing.T) {
	t.Setenv("SHIPPING_PER_UNIT", "4000")
	if got := ShippingPerUnit(); got != 4000 {
		t.Errorf("expected 4000, got %d", got)
	}
}

func TestShippingPerUnitInvalidFallsBack(t *testing.T) {
	t.Setenv("SHIPPING_PER_UNIT", "not-a-number")
	if got := ShippingPerUnit(); got != 5650 {
		t.Errorf("expected fallback 5650, got %d", got)
	}

	t.Setenv("SHIPPING_PER_UNIT", "-100")
	if got := ShippingPerUnit(); got != 5650 {
		t.Errorf("expected fallback 5650 for negative value, got %d", got)
	}
}
