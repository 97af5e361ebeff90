package clients

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"

	"agroweb-bff/cache"
	"agroweb-bff/cart"
)

// Product is a catalog record as the products service returns it.
type Product struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	Price         int64  `json:"price"`
	OriginalPrice int64  `json:"originalPrice,omitempty"`
	Unit          string `json:"unit"`
	ImageURL      string `json:"image"`
	IsOrganic     bool   `json:"isOrganic"`
	IsBestSeller  bool   `json:"isBestSeller"`
	InStock       bool   `json:"inStock"`
	FreeShipping  bool   `json:"freeShipping"`
	Description   string `json:"description,omitempty"`
}

// CatalogClient reads the products service and resolves display images for
// cart line items.
type CatalogClient struct {
	BaseURL string
	HTTP    *http.Client
	Images  cache.ImageCache
}

func NewCatalogClient(baseURL string, images cache.ImageCache) *CatalogClient {
	if images == nil {
		images = cache.Noop{}
	}
	return &CatalogClient{BaseURL: baseURL, HTTP: newHTTPClient(), Images: images}
}

// Products fetches the full catalog listing.
func (c *CatalogClient) Products(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := doJSON(ctx, c.HTTP, "list products", http.MethodGet, c.BaseURL+"/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Product fetches a single catalog record.
func (c *CatalogClient) Product(ctx context.Context, id string) (Product, error) {
	endpoint := fmt.Sprintf("%s/products/%s", c.BaseURL, url.PathEscape(id))
	var p Product
	if err := doJSON(ctx, c.HTTP, "get product", http.MethodGet, endpoint, nil, &p); err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return Product{}, &NotFoundError{Resource: "product", ID: id}
		}
		return Product{}, err
	}
	return p, nil
}

// ResolveImage returns the display image URL for a product. Failures are
// non-fatal: a cart must still load when the catalog is down, so any error
// degrades to the default placeholder. Only successful lookups are cached.
func (c *CatalogClient) ResolveImage(ctx context.Context, productID string) string {
	if cached, err := c.Images.Get(ctx, productID); err == nil && cached != "" {
		return cached
	}

	endpoint := fmt.Sprintf("%s/products/%s", c.BaseURL, url.PathEscape(productID))
	var record struct {
		ImageURL string `json:"imageUrl"`
	}
	if err := doJSON(ctx, c.HTTP, "resolve image", http.MethodGet, endpoint, nil, &record); err != nil {
		log.Printf("WARNING: could not resolve image for product %s: %v", productID, err)
		return cart.DefaultImageURL
	}
	if record.ImageURL == "" {
		return cart.DefaultImageURL
	}

	if err := c.Images.Set(ctx, productID, record.ImageURL); err != nil {
		log.Printf("WARNING: could not cache image for product %s: %v", productID, err)
	}
	return record.ImageURL
}

// CreateProduct forwards a product registration (fields plus image upload)
// to the products admin endpoint as multipart form data.
func (c *CatalogClient) CreateProduct(ctx context.Context, fields map[string]string, image *multipart.FileHeader) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return fmt.Errorf("create product: write field %s: %w", key, err)
		}
	}
	if image != nil {
		src, err := image.Open()
		if err != nil {
			return fmt.Errorf("create product: open upload: %w", err)
		}
		defer src.Close()
		part, err := writer.CreateFormFile("image", image.Filename)
		if err != nil {
			return fmt.Errorf("create product: create form file: %w", err)
		}
		if _, err := io.Copy(part, src); err != nil {
			return fmt.Errorf("create product: copy upload: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("create product: close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/productos", &buf)
	if err != nil {
		return fmt.Errorf("create product: build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &NetworkError{Op: "create product", Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		tail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &ServerError{Op: "create product", Status: resp.StatusCode, Body: string(tail)}
	}
	return nil
}
