package dtos

import "agroweb-bff/cart"

// Cart view states as rendered by the storefront.
const (
	CartStateLoading = "loading"
	CartStateReady   = "ready"
	CartStateEmpty   = "empty"
	CartStateError   = "error"
)

// CartItemView is one rendered cart line: the entity plus the flags the
// page needs to draw its checkbox and disable its controls.
type CartItemView struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	Unit      string `json:"unit,omitempty"`
	LineTotal int64  `json:"line_total"`
	ImageURL  string `json:"image_url"`
	Checked   bool   `json:"checked"`
	InFlight  bool   `json:"in_flight"`
}

// CartView is the full read-only projection the cart page renders. The page
// never computes totals itself.
type CartView struct {
	State  string         `json:"state"`
	Error  string         `json:"error,omitempty"`
	Items  []CartItemView `json:"items"`
	Totals cart.Totals    `json:"totals"`
}

// DashboardSummary is the analytics card row on the dashboard page.
type DashboardSummary struct {
	TotalProducts int `json:"total_products"`
	InStock       int `json:"in_stock"`
	Organic       int `json:"organic"`
	BestSellers   int `json:"best_sellers"`
}
