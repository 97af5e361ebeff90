package handlers

import (
	"errors"
	"net/http"

	"agroweb-bff/cart"
	"agroweb-bff/cartview"
	"agroweb-bff/clients"
	"agroweb-bff/dtos"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CartHandler is the HTTP face of the cart page: it dispatches intents to
// the session's cart view and returns the fresh projection. It never
// computes totals and never talks to the carrito service directly.
type CartHandler struct {
	Views *cartview.Registry
}

func (h *CartHandler) view(c *gin.Context) (*cartview.View, bool) {
	sessionID, exists := c.Get("session_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}
	cartID, _ := c.Get("cart_id")
	cartIDStr, _ := cartID.(string)
	return h.Views.Get(sessionID.(uuid.UUID), cartIDStr), true
}

// GetCart renders the cart page. The first request for a session performs
// the initial load; afterwards the stored projection is returned as-is.
func (h *CartHandler) GetCart(c *gin.Context) {
	view, ok := h.view(c)
	if !ok {
		return
	}

	if view.Snapshot().State == dtos.CartStateLoading {
		// Mount: run the initial load. Failure still renders - the snapshot
		// carries the error state the page shows with its retry action.
		_ = view.Load(c.Request.Context())
	}
	c.JSON(http.StatusOK, view.Snapshot())
}

// Retry transitions an errored view back through Loading.
func (h *CartHandler) Retry(c *gin.Context) {
	view, ok := h.view(c)
	if !ok {
		return
	}

	_ = view.Retry(c.Request.Context())
	c.JSON(http.StatusOK, view.Snapshot())
}

// ToggleAll sets every line's checkbox.
func (h *CartHandler) ToggleAll(c *gin.Context) {
	view, ok := h.view(c)
	if !ok {
		return
	}

	var req struct {
		Selected *bool `json:"selected" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "selected is required"})
		return
	}

	if err := view.ToggleAll(*req.Selected); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view.Snapshot())
}

// ToggleOne flips one line's checkbox.
func (h *CartHandler) ToggleOne(c *gin.Context) {
	view, ok := h.view(c)
	if !ok {
		return
	}

	if err := view.ToggleOne(c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view.Snapshot())
}

// UpdateQuantity runs the write-then-reload protocol for a quantity change.
// Zero and negative requests are clamped to 1, never forwarded.
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	view, ok := h.view(c)
	if !ok {
		return
	}

	var req struct {
		Quantity *int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity is required"})
		return
	}

	if err := view.ChangeQuantity(c.Request.Context(), c.Param("id"), *req.Quantity); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view.Snapshot())
}

// AddToCart is the catalog page's add-or-increment intent.
func (h *CartHandler) AddToCart(c *gin.Context) {
	view, ok := h.view(c)
	if !ok {
		return
	}

	var req struct {
		ProductID string `json:"product_id" binding:"required"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product_id is required"})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	if err := view.Add(c.Request.Context(), req.ProductID, req.Quantity); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view.Snapshot())
}

// RemoveFromCart runs the write-then-reload protocol for a removal.
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	view, ok := h.view(c)
	if !ok {
		return
	}

	if err := view.Remove(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view.Snapshot())
}

// fail maps the error taxonomy onto HTTP statuses. The page presents all of
// these as one opaque notification; the status is for the access log.
func (h *CartHandler) fail(c *gin.Context, err error) {
	var validation *clients.ValidationError
	switch {
	case errors.Is(err, cartview.ErrOperationInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": "Another cart operation is in progress"})
	case errors.Is(err, cartview.ErrNotReady):
		c.JSON(http.StatusConflict, gin.H{"error": "Cart is not ready"})
	case errors.Is(err, cart.ErrItemNotFound), clients.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Msg})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": "Cart service unavailable"})
	}
}
