package cart

import (
	"testing"

	"storefront/domain"
	"storefront/storage"
)

func product(id int, name string, price float64) domain.Product {
	return domain.Product{ID: id, Name: name, Slug: name, Price: price, Category: "Electronics"}
}

func TestWishlist_AddIsIdempotent(t *testing.T) {
	w := NewWishlist(storage.NewMemory(), nil)

	w.Add(product(1, "headphones", 249.99))
	w.Add(product(1, "headphones", 249.99))

	if w.Count() != 1 {
		t.Fatalf("expected 1 product, got %d", w.Count())
	}
	if !w.Contains(1) {
		t.Fatal("Contains should report the saved product")
	}
	if w.Contains(2) {
		t.Fatal("Contains should be false for unsaved product")
	}
}

func TestWishlist_RemoveAndClear(t *testing.T) {
	w := NewWishlist(storage.NewMemory(), nil)
	w.Add(product(1, "headphones", 249.99))
	w.Add(product(2, "speaker", 79.99))

	w.Remove(1)
	if w.Contains(1) || !w.Contains(2) {
		t.Fatalf("unexpected contents after remove: %v", w.Products())
	}
	w.Remove(99) // no-op

	w.Clear()
	if w.Count() != 0 {
		t.Fatal("wishlist should be empty after clear")
	}
}

func TestWishlist_PersistenceRoundTrip(t *testing.T) {
	backend := storage.NewMemory()
	w := NewWishlist(backend, nil)
	w.Add(product(1, "headphones", 249.99))
	w.Add(product(2, "speaker", 79.99))

	reloaded := NewWishlist(backend, nil)
	if reloaded.Count() != 2 || !reloaded.Contains(1) || !reloaded.Contains(2) {
		t.Fatalf("wishlist did not round-trip: %v", reloaded.Products())
	}
}

func TestWishlist_CorruptSnapshotDiscarded(t *testing.T) {
	backend := storage.NewMemory()
	_ = backend.Set(WishlistKey, []byte("[broken"))

	w := NewWishlist(backend, nil)
	if w.Count() != 0 {
		t.Fatal("corrupt snapshot should leave an empty wishlist")
	}
	if _, ok, _ := backend.Get(WishlistKey); ok {
		t.Fatal("corrupt snapshot should be deleted")
	}
}

func TestWishlist_PanelToggle(t *testing.T) {
	w := NewWishlist(storage.NewMemory(), nil)

	var snaps []WishlistSnapshot
	defer w.Subscribe(func(s WishlistSnapshot) { snaps = append(snaps, s) })()

	if w.IsOpen() {
		t.Fatal("panel should start closed")
	}
	w.Open()
	if !w.IsOpen() {
		t.Fatal("panel should be open")
	}
	w.Open() // no change, no notification
	w.Close()
	if w.IsOpen() {
		t.Fatal("panel should be closed")
	}

	if len(snaps) != 2 {
		t.Fatalf("expected 2 notifications (open, close), got %d", len(snaps))
	}
	if !snaps[0].Open || snaps[1].Open {
		t.Fatalf("snapshots should reflect toggle order: %+v", snaps)
	}
}

func TestWishlist_IndependentFromCart(t *testing.T) {
	backend := storage.NewMemory()
	c := NewStore(backend, nil)
	w := NewWishlist(backend, nil)

	_ = c.Add(lineItem(1, "Headphones", 100), 1)
	w.Add(product(2, "speaker", 79.99))

	c.Clear()
	if w.Count() != 1 {
		t.Fatal("clearing the cart must not touch the wishlist")
	}
}
