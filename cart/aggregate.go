package cart

import (
	"errors"
	"fmt"
)

// ErrItemNotFound is returned by aggregate operations addressing a product
// that is not in the cart.
var ErrItemNotFound = errors.New("item not found in cart")

// Aggregate is the client-side cart state: the ordered line items as the
// carrito service returned them, plus selection flags. All operations are
// pure and return a new aggregate; the only way an aggregate changes between
// reloads is through these operations.
type Aggregate struct {
	items           []Item
	shippingPerUnit int64
}

// Totals is the derived bundle the summary panel renders. It is recomputed
// from the items on every read and never stored.
type Totals struct {
	SelectedCount int   `json:"selected_count"`
	UnitsCount    int   `json:"units_count"`
	ProductTotal  int64 `json:"product_total"`
	ShippingTotal int64 `json:"shipping_total"`
	GrandTotal    int64 `json:"grand_total"`
	AllSelected   bool  `json:"all_selected"`
}

func NewAggregate(items []Item, shippingPerUnit int64) Aggregate {
	copied := make([]Item, len(items))
	copy(copied, items)
	return Aggregate{items: copied, shippingPerUnit: shippingPerUnit}
}

// Items returns the line items in server order.
func (a Aggregate) Items() []Item {
	copied := make([]Item, len(a.items))
	copy(copied, a.items)
	return copied
}

func (a Aggregate) Len() int {
	return len(a.items)
}

// Get returns the line item for productID, if present.
func (a Aggregate) Get(productID string) (Item, bool) {
	for _, it := range a.items {
		if it.ProductID == productID {
			return it, true
		}
	}
	return Item{}, false
}

// SetQuantity sets a line's quantity. Requests below 1 are clamped to 1;
// removal is its own explicit operation, never a quantity-zero side effect.
func (a Aggregate) SetQuantity(productID string, quantity int) (Aggregate, error) {
	if quantity < 1 {
		quantity = 1
	}
	return a.update(productID, func(it Item) Item {
		it.Quantity = quantity
		return it
	})
}

// SetSelected sets a line's selection flag.
func (a Aggregate) SetSelected(productID string, selected bool) (Aggregate, error) {
	return a.update(productID, func(it Item) Item {
		it.Selected = selected
		return it
	})
}

// SelectAll sets every line's selection flag uniformly.
func (a Aggregate) SelectAll(selected bool) Aggregate {
	next := a.Items()
	for i := range next {
		next[i].Selected = selected
	}
	return Aggregate{items: next, shippingPerUnit: a.shippingPerUnit}
}

// Remove drops a line from the cart.
func (a Aggregate) Remove(productID string) (Aggregate, error) {
	next := make([]Item, 0, len(a.items))
	found := false
	for _, it := range a.items {
		if it.ProductID == productID {
			found = true
			continue
		}
		next = append(next, it)
	}
	if !found {
		return a, fmt.Errorf("remove %s: %w", productID, ErrItemNotFound)
	}
	return Aggregate{items: next, shippingPerUnit: a.shippingPerUnit}, nil
}

// Totals derives the summary bundle over the selected lines. An empty cart
// is never "fully selected": AllSelected is false when there are no items.
func (a Aggregate) Totals() Totals {
	t := Totals{AllSelected: len(a.items) > 0}
	for _, it := range a.items {
		if !it.Selected {
			t.AllSelected = false
			continue
		}
		t.SelectedCount++
		t.UnitsCount += it.Quantity
		t.ProductTotal += it.LineTotal()
	}
	t.ShippingTotal = a.shippingPerUnit * int64(t.UnitsCount)
	t.GrandTotal = t.ProductTotal + t.ShippingTotal
	return t
}

func (a Aggregate) update(productID string, fn func(Item) Item) (Aggregate, error) {
	next := a.Items()
	for i := range next {
		if next[i].ProductID == productID {
			next[i] = fn(next[i])
			return Aggregate{items: next, shippingPerUnit: a.shippingPerUnit}, nil
		}
	}
	return a, fmt.Errorf("update %s: %w", productID, ErrItemNotFound)
}
