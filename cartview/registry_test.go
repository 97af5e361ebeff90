package cartview

import (
	"testing"

	"github.com/google/uuid"
)

func TestRegistryReturnsSameViewPerSession(t *testing.T) {
	api := &fakeCartAPI{}
	reg := NewRegistry(api, shippingPerUnit)
	sessionID := uuid.New()

	v1 := reg.Get(sessionID, "42")
	v2 := reg.Get(sessionID, "42")
	if v1 != v2 {
		t.Fatal("expected the same view for repeated lookups of one session")
	}

	other := reg.Get(uuid.New(), "42")
	if other == v1 {
		t.Fatal("expected a separate view per session")
	}
}

func TestRegistryDiscardsViewWhenCartIDChanges(t *testing.T) {
	api := &fakeCartAPI{}
	reg := NewRegistry(api, shippingPerUnit)
	sessionID := uuid.New()

	v1 := reg.Get(sessionID, "42")
	v2 := reg.Get(sessionID, "77")
	if v1 == v2 {
		t.Fatal("expected a fresh view after the cart identifier changed")
	}
}

func TestRegistryDrop(t *testing.T) {
	api := &fakeCartAPI{}
	reg := NewRegistry(api, shippingPerUnit)
	sessionID := uuid.New()

	v1 := reg.Get(sessionID, "42")
	reg.Drop(sessionID)
	v2 := reg.Get(sessionID, "42")
	if v1 == v2 {
		t.Fatal("expected a fresh view after Drop")
	}
}
