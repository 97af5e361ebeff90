package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"agroweb-bff/clients"
)

func seedCatalogProducts() []clients.Product {
	return []clients.Product{
		{ID: "1", Name: "Papas Pastusas", Category: "verduras", Price: 2000, Unit: "kg", ImageURL: "/img/papas.jpg", InStock: true, IsBestSeller: true},
		{ID: "2", Name: "Tomates Chonto", Category: "verduras", Price: 3500, Unit: "lb", InStock: true, IsOrganic: true},
		{ID: "3", Name: "Mangos Tommy", Category: "frutas", Price: 4200, Unit: "kg", InStock: false},
		{ID: "4", Name: "Aguacate Hass", Category: "frutas", Price: 6000, Unit: "unidad", InStock: true, IsOrganic: true, IsBestSeller: true},
	}
}

func TestGetProductsAll(t *testing.T) {
	catalog := newFakeCatalog(seedCatalogProducts())
	defer catalog.Close()
	router := setupProductRouter(catalog.URL())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/products", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := parseResponse(w)
	if resp["total"] != float64(4) {
		t.Errorf("expected total 4, got %v", resp["total"])
	}
	if resp["page"] != float64(1) {
		t.Errorf("expected page 1, got %v", resp["page"])
	}
}

func TestGetProductsFilterByCategory(t *testing.T) {
	catalog := newFakeCatalog(seedCatalogProducts())
	defer catalog.Close()
	router := setupProductRouter(catalog.URL())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/products?category=frutas", nil))

	resp := parseResponse(w)
	if resp["total"] != float64(2) {
		t.Errorf("expected 2 frutas, got %v", resp["total"])
	}
}

func TestGetProductsSearch(t *testing.T) {
	catalog := newFakeCatalog(seedCatalogProducts())
	defer catalog.Close()
	router := setupProductRouter(catalog.URL())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/products?search=tomates", nil))

	resp := parseResponse(w)
	if resp["total"] != float64(1) {
		t.Fatalf("expected 1 match, got %v", resp["total"])
	}
	products := resp["products"].([]interface{})
	if products[0].(map[string]interface{})["name"] != "Tomates Chonto" {
		t.Errorf("expected Tomates Chonto, got %v", products[0])
	}
}

func TestGetProductsSortPriceLow(t *testing.T) {
	catalog := newFakeCatalog(seedCatalogProducts())
	defer catalog.Close()
	router := setupProductRouter(catalog.URL())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/products?sort=price-low", nil))

	resp := parseResponse(w)
	products := resp["products"].([]interface{})
	first := products[0].(map[string]interface{})
	if first["price"] != float64(2000) {
		t.Errorf("expected cheapest product first, got price %v", first["price"])
	}
}

func TestGetProductsPaginationClampsPage(t *testing.T) {
	catalog := newFakeCatalog(seedCatalogProducts())
	defer catalog.Close()
	router := setupProductRouter(catalog.URL())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/products?page=99", nil))

	resp := parseResponse(w)
	if resp["page"] != float64(1) {
		t.Errorf("expected page clamped to the last page, got %v", resp["page"])
	}
}

func TestGetProductByID(t *testing.T) {
	catalog := newFakeCatalog(seedCatalogProducts())
	defer catalog.Close()
	router := setupProductRouter(catalog.URL())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/products/1", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := parseResponse(w)
	if resp["name"] != "Papas Pastusas" {
		t.Errorf("expected Papas Pastusas, got %v", resp["name"])
	}
}

func TestGetProductNotFound(t *testing.T) {
	catalog := newFakeCatalog(seedCatalogProducts())
	defer catalog.Close()
	router := setupProductRouter(catalog.URL())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/products/99", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGetProductsUpstreamDown(t *testing.T) {
	catalog := newFakeCatalog(nil)
	catalog.Close()
	router := setupProductRouter(catalog.URL())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/products", nil))

	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCreateProductForwardsForm(t *testing.T) {
	catalog := newFakeCatalog(nil)
	defer catalog.Close()
	router := setupProductRouter(catalog.URL())

	fields := map[string]string{
		"name":        "Lulos",
		"category":    "frutas",
		"price":       "5200",
		"unit":        "kg",
		"description": "Lulos frescos de Pasto",
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest("POST", "/api/products", fields, map[string]string{"image": "lulos.jpg"}))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	catalog.mu.Lock()
	defer catalog.mu.Unlock()
	if catalog.createFields["name"] != "Lulos" {
		t.Errorf("expected forwarded name Lulos, got %v", catalog.createFields["name"])
	}
	if catalog.createFields["price"] != "5200" {
		t.Errorf("expected forwarded price 5200, got %v", catalog.createFields["price"])
	}
	if catalog.createdFile != "lulos.jpg" {
		t.Errorf("expected forwarded image lulos.jpg, got %v", catalog.createdFile)
	}
}

func TestCreateProductMissingRequiredField(t *testing.T) {
	catalog := newFakeCatalog(nil)
	defer catalog.Close()
	router := setupProductRouter(catalog.URL())

	fields := map[string]string{
		"name":     "Lulos",
		"category": "frutas",
		// price missing
		"unit": "kg",
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest("POST", "/api/products", fields, nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCreateProductRejectsNonIntegerPrice(t *testing.T) {
	catalog := newFakeCatalog(nil)
	defer catalog.Close()
	router := setupProductRouter(catalog.URL())

	fields := map[string]string{
		"name":     "Lulos",
		"category": "frutas",
		"price":    "5200.50",
		"unit":     "kg",
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest("POST", "/api/products", fields, nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", w.Code, w.Body.String())
	}
}
