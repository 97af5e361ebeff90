package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"agroweb-bff/cache"
	"agroweb-bff/cart"
)

type memoryCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string]string)}
}

func (m *memoryCache) Get(ctx context.Context, productID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if url, ok := m.data[productID]; ok {
		return url, nil
	}
	return "", cache.ErrCacheMiss
}

func (m *memoryCache) Set(ctx context.Context, productID, imageURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[productID] = imageURL
	return nil
}

func (m *memoryCache) Delete(ctx context.Context, productID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, productID)
	return nil
}

func TestProductsDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`[
			{"id":"1","name":"Papas pastusas","category":"tuberculos","price":2000,"unit":"kg","image":"/img/papas.jpg","isOrganic":true,"inStock":true},
			{"id":"2","name":"Tomate chonto","category":"verduras","price":3500,"unit":"kg","image":"/img/tomate.jpg","isBestSeller":true,"inStock":true}
		]`))
	}))
	defer srv.Close()

	products, err := NewCatalogClient(srv.URL, nil).Products(context.Background())
	if err != nil {
		t.Fatalf("Products: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[0].Name != "Papas pastusas" || products[0].Price != 2000 || !products[0].IsOrganic {
		t.Errorf("bad product: %+v", products[0])
	}
}

func TestProductNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := NewCatalogClient(srv.URL, nil).Product(context.Background(), "99")
	if !IsNotFound(err) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestResolveImageCachesSuccesses(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`{"imageUrl":"/img/papas.jpg"}`))
	}))
	defer srv.Close()

	client := NewCatalogClient(srv.URL, newMemoryCache())
	ctx := context.Background()

	if got := client.ResolveImage(ctx, "1"); got != "/img/papas.jpg" {
		t.Fatalf("expected resolved image, got %q", got)
	}
	if got := client.ResolveImage(ctx, "1"); got != "/img/papas.jpg" {
		t.Fatalf("expected cached image, got %q", got)
	}
	if hits != 1 {
		t.Errorf("expected a single catalog lookup, got %d", hits)
	}
}

func TestResolveImageFallsBackToPlaceholder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	images := newMemoryCache()
	client := NewCatalogClient(srv.URL, images)

	if got := client.ResolveImage(context.Background(), "1"); got != cart.DefaultImageURL {
		t.Errorf("expected placeholder, got %q", got)
	}
	if _, err := images.Get(context.Background(), "1"); err == nil {
		t.Error("failures must not be cached")
	}

	// An empty imageUrl also degrades to the placeholder.
	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer empty.Close()
	if got := NewCatalogClient(empty.URL, nil).ResolveImage(context.Background(), "1"); got != cart.DefaultImageURL {
		t.Errorf("expected placeholder for missing imageUrl, got %q", got)
	}
}
