// Package cartview owns the per-session cart view: the state machine the
// cart page walks through, the serialized two-step write-then-reload
// protocol against the carrito service, and the read-only projection the
// page renders.
package cartview

import (
	"context"
	"errors"
	"sync"

	"agroweb-bff/cart"
	"agroweb-bff/dtos"
)

// At most one mutating intent may be in flight per view; a second intent is
// rejected instead of racing the first one's reload.
var ErrOperationInFlight = errors.New("another cart operation is in flight")

// ErrNotReady is returned for intents dispatched before the view reached
// Ready (or Empty, for adds).
var ErrNotReady = errors.New("cart view is not ready")

// CartAPI is the slice of the remote sync adapter the view needs.
type CartAPI interface {
	GetCart(ctx context.Context, cartID string) ([]cart.Item, error)
	AddProduct(ctx context.Context, cartID, productID string, quantity int) error
	ChangeQuantity(ctx context.Context, cartID, productID string, quantity int) error
	DeleteProduct(ctx context.Context, cartID, productID string) error
}

// View is one cart page instance. All mutation goes through the carrito
// service followed by an authoritative reload; the aggregate is never
// patched locally from a mutation response. Selection toggles are the one
// exception: selection is a client-side concept the carrito service does
// not know about.
type View struct {
	mu              sync.Mutex
	cartID          string
	shippingPerUnit int64
	api             CartAPI

	state    string
	agg      cart.Aggregate
	lastErr  string
	busy     bool
	inFlight map[string]bool
}

func New(api CartAPI, cartID string, shippingPerUnit int64) *View {
	return &View{
		api:             api,
		cartID:          cartID,
		shippingPerUnit: shippingPerUnit,
		state:           dtos.CartStateLoading,
		agg:             cart.NewAggregate(nil, shippingPerUnit),
		inFlight:        make(map[string]bool),
	}
}

// Load performs the initial authoritative fetch. Without a cart session
// identifier the view goes straight to Error; no network call is made.
func (v *View) Load(ctx context.Context) error {
	v.mu.Lock()
	if v.busy {
		v.mu.Unlock()
		return ErrOperationInFlight
	}
	if v.cartID == "" {
		v.state = dtos.CartStateError
		v.lastErr = "no cart for this session"
		v.mu.Unlock()
		return errors.New("no cart for this session")
	}
	v.busy = true
	v.state = dtos.CartStateLoading
	v.mu.Unlock()

	defer v.clearBusy("")
	return v.reload(ctx)
}

// Retry is the explicit escape from Error back to Loading.
func (v *View) Retry(ctx context.Context) error {
	v.mu.Lock()
	if v.state != dtos.CartStateError {
		v.mu.Unlock()
		return errors.New("retry is only available from the error state")
	}
	v.mu.Unlock()
	return v.Load(ctx)
}

// ToggleAll sets every line's checkbox. Local only; totals recompute on the
// next snapshot.
func (v *View) ToggleAll(selected bool) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state != dtos.CartStateReady {
		return ErrNotReady
	}
	v.agg = v.agg.SelectAll(selected)
	return nil
}

// ToggleOne flips one line's checkbox.
func (v *View) ToggleOne(productID string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state != dtos.CartStateReady {
		return ErrNotReady
	}
	item, ok := v.agg.Get(productID)
	if !ok {
		return cart.ErrItemNotFound
	}
	next, err := v.agg.SetSelected(productID, !item.Selected)
	if err != nil {
		return err
	}
	v.agg = next
	return nil
}

// ChangeQuantity runs the two-step protocol for a quantity update. Requests
// below 1 are clamped to 1 before any network call; quantity zero is never
// sent to the carrito service.
func (v *View) ChangeQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	if err := v.requireItem(productID); err != nil {
		return err
	}
	return v.mutate(ctx, productID, true, func(ctx context.Context) error {
		return v.api.ChangeQuantity(ctx, v.cartID, productID, quantity)
	})
}

// Remove runs the two-step protocol for a removal. A failed remote removal
// is a hard error; the aggregate is left untouched.
func (v *View) Remove(ctx context.Context, productID string) error {
	if err := v.requireItem(productID); err != nil {
		return err
	}
	return v.mutate(ctx, productID, true, func(ctx context.Context) error {
		return v.api.DeleteProduct(ctx, v.cartID, productID)
	})
}

func (v *View) requireItem(productID string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.agg.Get(productID); !ok {
		return cart.ErrItemNotFound
	}
	return nil
}

// Add sends the server-side add-or-increment and refreshes. Unlike the
// other intents it is dispatched from the catalog page, so it is accepted
// from Empty as well as Ready.
func (v *View) Add(ctx context.Context, productID string, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	return v.mutate(ctx, productID, false, func(ctx context.Context) error {
		return v.api.AddProduct(ctx, v.cartID, productID, quantity)
	})
}

// Snapshot renders the current projection.
func (v *View) Snapshot() dtos.CartView {
	v.mu.Lock()
	defer v.mu.Unlock()

	items := v.agg.Items()
	out := dtos.CartView{
		State:  v.state,
		Error:  v.lastErr,
		Items:  make([]dtos.CartItemView, 0, len(items)),
		Totals: v.agg.Totals(),
	}
	for _, it := range items {
		out.Items = append(out.Items, dtos.CartItemView{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			Unit:      it.Unit,
			LineTotal: it.LineTotal(),
			ImageURL:  it.ImageURL,
			Checked:   it.Selected,
			InFlight:  v.inFlight[it.ProductID],
		})
	}
	return out
}

// mutate serializes a mutating intent: reject if another one is in flight,
// run the remote call, and on success re-fetch the authoritative cart. A
// failed mutation leaves the aggregate and the Ready state untouched; a
// failed reload means the local aggregate can no longer be trusted and the
// view goes to Error.
func (v *View) mutate(ctx context.Context, productID string, requireReady bool, op func(context.Context) error) error {
	v.mu.Lock()
	if v.busy {
		v.mu.Unlock()
		return ErrOperationInFlight
	}
	if v.cartID == "" {
		v.mu.Unlock()
		return errors.New("no cart for this session")
	}
	if requireReady && v.state != dtos.CartStateReady {
		v.mu.Unlock()
		return ErrNotReady
	}
	if !requireReady && v.state == dtos.CartStateError {
		v.mu.Unlock()
		return ErrNotReady
	}
	v.busy = true
	v.inFlight[productID] = true
	v.mu.Unlock()

	defer v.clearBusy(productID)

	if err := op(ctx); err != nil {
		return err
	}

	v.mu.Lock()
	v.state = dtos.CartStateLoading
	v.mu.Unlock()

	return v.reload(ctx)
}

// reload fetches the authoritative cart and rebuilds the aggregate. Callers
// hold the busy flag, not the mutex.
func (v *View) reload(ctx context.Context) error {
	items, err := v.api.GetCart(ctx, v.cartID)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.state = dtos.CartStateError
		v.lastErr = err.Error()
		return err
	}
	v.agg = cart.NewAggregate(items, v.shippingPerUnit)
	v.lastErr = ""
	if len(items) == 0 {
		v.state = dtos.CartStateEmpty
	} else {
		v.state = dtos.CartStateReady
	}
	return nil
}

func (v *View) clearBusy(productID string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.busy = false
	if productID != "" {
		delete(v.inFlight, productID)
	}
}
