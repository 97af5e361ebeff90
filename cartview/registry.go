package cartview

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type registryEntry struct {
	view     *View
	cartID   string
	lastSeen time.Time
}

// Registry holds one cart view per authenticated session, in memory. Views
// for sessions that have not touched their cart in an hour are evicted on
// the next lookup.
type Registry struct {
	mu              sync.Mutex
	views           map[uuid.UUID]*registryEntry
	api             CartAPI
	shippingPerUnit int64
}

func NewRegistry(api CartAPI, shippingPerUnit int64) *Registry {
	return &Registry{
		views:           make(map[uuid.UUID]*registryEntry),
		api:             api,
		shippingPerUnit: shippingPerUnit,
	}
}

// Get returns the session's view, creating a fresh one (in Loading, not yet
// loaded) on first use. If the session's cart identifier changed, the stale
// view is discarded.
func (r *Registry) Get(sessionID uuid.UUID, cartID string) *View {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.evictStaleLocked()

	entry, ok := r.views[sessionID]
	if !ok || entry.cartID != cartID {
		entry = &registryEntry{
			view:   New(r.api, cartID, r.shippingPerUnit),
			cartID: cartID,
		}
		r.views[sessionID] = entry
	}
	entry.lastSeen = time.Now()
	return entry.view
}

// Drop discards a session's view. Called on logout.
func (r *Registry) Drop(sessionID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.views, sessionID)
}

func (r *Registry) evictStaleLocked() {
	cutoff := time.Now().Add(-1 * time.Hour)
	for id, entry := range r.views {
		if entry.lastSeen.Before(cutoff) {
			delete(r.views, id)
		}
	}
}
