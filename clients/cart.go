package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"

	"agroweb-bff/cart"
)

// CartClient is the only component that talks to the carrito service. Every
// mutating call is followed by a full GetCart by the caller; the mutation
// response bodies are ignored because their shapes do not match the get-cart
// contract and must not be trusted as a cart snapshot.
type CartClient struct {
	BaseURL string
	HTTP    *http.Client
	// Catalog resolves product images during GetCart. Optional; when nil
	// every item falls back to the default placeholder.
	Catalog *CatalogClient
}

func NewCartClient(baseURL string, catalog *CatalogClient) *CartClient {
	return &CartClient{BaseURL: baseURL, HTTP: newHTTPClient(), Catalog: catalog}
}

// The carrito wire format. product_id arrives as a bare number, total_prod
// is the line total (unit price times cantidad), and newer service versions
// nest items under "resul" while older ones used "carrito".
type wireCartItem struct {
	ProductID   json.Number `json:"product_id"`
	ProductName string      `json:"product_name"`
	Cantidad    int         `json:"cantidad"`
	Medida      string      `json:"medida"`
	TotalProd   int64       `json:"total_prod"`
}

type wireCartEnvelope struct {
	Items []wireCartItem `json:"items"`
}

type getCartResponse struct {
	Resul   *wireCartEnvelope `json:"resul"`
	Carrito *wireCartEnvelope `json:"carrito"`
}

type wireCartID struct {
	IDCarrito json.Number `json:"id_carrito"`
}

// GetCart fetches the authoritative cart state and normalizes it into line
// items, resolving one display image per item. Image resolution is
// best-effort and never fails the load.
func (c *CartClient) GetCart(ctx context.Context, cartID string) ([]cart.Item, error) {
	var resp getCartResponse
	endpoint := fmt.Sprintf("%s/carrito/getCarrito/%s", c.BaseURL, url.PathEscape(cartID))
	if err := doJSON(ctx, c.HTTP, "get cart", http.MethodGet, endpoint, nil, &resp); err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return nil, &NotFoundError{Resource: "cart", ID: cartID}
		}
		return nil, err
	}

	// Canonical envelope is resul.items; tolerate the legacy carrito.items
	// envelope from older service versions.
	envelope := resp.Resul
	if envelope == nil {
		envelope = resp.Carrito
	}
	if envelope == nil {
		return nil, &ServerError{Op: "get cart", Status: http.StatusOK, Body: "response has neither resul nor carrito envelope"}
	}

	items := make([]cart.Item, 0, len(envelope.Items))
	for _, w := range envelope.Items {
		productID := w.ProductID.String()
		quantity := w.Cantidad
		if quantity < 1 {
			quantity = 1
		}
		item, err := cart.NewItem(productID, w.ProductName, w.TotalProd/int64(quantity), quantity, c.resolveImage(ctx, productID))
		if err != nil {
			return nil, &ServerError{Op: "get cart", Status: http.StatusOK, Body: fmt.Sprintf("bad line item %s: %v", productID, err)}
		}
		item.Unit = w.Medida
		items = append(items, item)
	}
	return items, nil
}

func (c *CartClient) resolveImage(ctx context.Context, productID string) string {
	if c.Catalog == nil {
		return cart.DefaultImageURL
	}
	return c.Catalog.ResolveImage(ctx, productID)
}

// AddProduct performs the server-side add-or-increment. De-duplication of
// repeated adds for the same product is the carrito service's job; the
// caller refreshes the aggregate with GetCart afterwards.
func (c *CartClient) AddProduct(ctx context.Context, cartID, productID string, quantity int) error {
	if quantity < 1 {
		return &ValidationError{Msg: fmt.Sprintf("quantity must be at least 1, got %d", quantity)}
	}
	body := map[string]any{
		"id_carrito": cartID,
		"product_id": productID,
		"cantidad":   quantity,
	}
	return doJSON(ctx, c.HTTP, "add product", http.MethodPost, c.BaseURL+"/carrito/addProduct", body, nil)
}

// ChangeQuantity sets a line's quantity server-side.
func (c *CartClient) ChangeQuantity(ctx context.Context, cartID, productID string, quantity int) error {
	if quantity < 1 {
		return &ValidationError{Msg: fmt.Sprintf("quantity must be at least 1, got %d", quantity)}
	}
	body := map[string]any{
		"id_carrito": cartID,
		"product_id": productID,
		"cantidad":   quantity,
	}
	return doJSON(ctx, c.HTTP, "change quantity", http.MethodPut, c.BaseURL+"/carrito/changeQuantity", body, nil)
}

// DeleteProduct removes a line server-side. Note the carrito service names
// the cart field differently here (carrito_id, not id_carrito).
func (c *CartClient) DeleteProduct(ctx context.Context, cartID, productID string) error {
	body := map[string]any{
		"carrito_id": cartID,
		"product_id": productID,
	}
	return doJSON(ctx, c.HTTP, "delete product", http.MethodDelete, c.BaseURL+"/carrito/deleteProduct", body, nil)
}

// CreateCart provisions a server-side cart for a newly registered identity
// and returns the cart session identifier to persist.
func (c *CartClient) CreateCart(ctx context.Context, userDocument, docType string) (string, error) {
	body := map[string]any{
		"userDocument": userDocument,
		"docType":      docType,
	}
	var resp wireCartID
	if err := doJSON(ctx, c.HTTP, "create cart", http.MethodPost, c.BaseURL+"/carrito/create", body, &resp); err != nil {
		return "", err
	}
	if resp.IDCarrito.String() == "" {
		log.Printf("WARNING: carrito create returned no id_carrito")
		return "", &ServerError{Op: "create cart", Status: http.StatusOK, Body: "missing id_carrito in response"}
	}
	return resp.IDCarrito.String(), nil
}

// GetCartID resolves the existing cart session identifier for a returning
// identity.
func (c *CartClient) GetCartID(ctx context.Context, userDocument, docType string) (string, error) {
	endpoint := fmt.Sprintf("%s/carrito/getIdCarrito/%s/%s", c.BaseURL, url.PathEscape(userDocument), url.PathEscape(docType))
	var resp wireCartID
	if err := doJSON(ctx, c.HTTP, "get cart id", http.MethodGet, endpoint, nil, &resp); err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return "", &NotFoundError{Resource: "cart for user", ID: userDocument}
		}
		return "", err
	}
	return resp.IDCarrito.String(), nil
}
