package cart

import (
	"encoding/json"
	"log/slog"
	"sync"

	"storefront/domain"
	"storefront/storage"
)

// WishlistKey is the durable storage key holding the wishlist snapshot.
const WishlistKey = "wishlist"

// WishlistSnapshot is the consistent view handed to wishlist
// subscribers after every change, including the panel toggle.
type WishlistSnapshot struct {
	Products []domain.Product
	Count    int
	Open     bool
}

// Wishlist is the cart's sibling store: a set of saved products with no
// quantities. Add is idempotent. The open/close flag is presentation
// state for the wishlist panel, co-located here for convenience.
type Wishlist struct {
	mu       sync.Mutex
	products []domain.Product
	open     bool
	backend  storage.Store
	log      *slog.Logger

	subs    map[int]func(WishlistSnapshot)
	nextSub int
}

// NewWishlist constructs a wishlist backed by the given storage,
// loading any persisted snapshot. Corrupt snapshots are discarded.
func NewWishlist(backend storage.Store, log *slog.Logger) *Wishlist {
	if log == nil {
		log = slog.Default()
	}
	w := &Wishlist{
		backend: backend,
		log:     log,
		subs:    make(map[int]func(WishlistSnapshot)),
	}
	w.rehydrate()
	return w
}

func (w *Wishlist) rehydrate() {
	b, ok, err := w.backend.Get(WishlistKey)
	if err != nil {
		w.log.Warn("wishlist snapshot load failed", "error", err)
		return
	}
	if !ok {
		return
	}
	var products []domain.Product
	if err := json.Unmarshal(b, &products); err != nil {
		w.log.Warn("discarding corrupt wishlist snapshot", "error", err)
		if err := w.backend.Delete(WishlistKey); err != nil {
			w.log.Warn("wishlist snapshot delete failed", "error", err)
		}
		return
	}
	w.products = products
}

// Add saves a product to the wishlist. Adding a product already present
// is a no-op; a product appears at most once.
func (w *Wishlist) Add(p domain.Product) {
	w.mu.Lock()
	for _, existing := range w.products {
		if existing.ID == p.ID {
			w.mu.Unlock()
			return
		}
	}
	w.products = append(w.products, p)
	snap := w.persistLocked()
	w.mu.Unlock()
	w.notify(snap)
}

// Remove drops the product with the given id if present.
func (w *Wishlist) Remove(productID int) {
	w.mu.Lock()
	for i := range w.products {
		if w.products[i].ID == productID {
			w.products = append(w.products[:i], w.products[i+1:]...)
			snap := w.persistLocked()
			w.mu.Unlock()
			w.notify(snap)
			return
		}
	}
	w.mu.Unlock()
}

// Contains reports whether the product is saved.
func (w *Wishlist) Contains(productID int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, p := range w.products {
		if p.ID == productID {
			return true
		}
	}
	return false
}

// Clear empties the wishlist.
func (w *Wishlist) Clear() {
	w.mu.Lock()
	w.products = nil
	snap := w.persistLocked()
	w.mu.Unlock()
	w.notify(snap)
}

// Products returns the saved products in insertion order.
func (w *Wishlist) Products() []domain.Product {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]domain.Product, len(w.products))
	copy(out, w.products)
	return out
}

// Count is the number of saved products.
func (w *Wishlist) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.products)
}

// Open marks the wishlist panel visible. Panel state is not persisted.
func (w *Wishlist) Open() {
	w.setOpen(true)
}

// Close marks the wishlist panel hidden.
func (w *Wishlist) Close() {
	w.setOpen(false)
}

// IsOpen reports the panel visibility flag.
func (w *Wishlist) IsOpen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.open
}

func (w *Wishlist) setOpen(open bool) {
	w.mu.Lock()
	if w.open == open {
		w.mu.Unlock()
		return
	}
	w.open = open
	snap := w.snapshotLocked()
	w.mu.Unlock()
	w.notify(snap)
}

// Subscribe registers a listener invoked synchronously after every
// change with a consistent snapshot. The returned function unregisters
// the listener.
func (w *Wishlist) Subscribe(fn func(WishlistSnapshot)) (unsubscribe func()) {
	w.mu.Lock()
	id := w.nextSub
	w.nextSub++
	w.subs[id] = fn
	w.mu.Unlock()
	return func() {
		w.mu.Lock()
		delete(w.subs, id)
		w.mu.Unlock()
	}
}

// persistLocked writes the product list to durable storage and builds
// the notification snapshot. Write failures are logged and swallowed.
// Callers must hold w.mu.
func (w *Wishlist) persistLocked() WishlistSnapshot {
	list := w.products
	if list == nil {
		list = []domain.Product{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		w.log.Error("wishlist snapshot marshal failed", "error", err)
	} else if err := w.backend.Set(WishlistKey, b); err != nil {
		w.log.Warn("wishlist snapshot write failed", "error", err)
	}
	return w.snapshotLocked()
}

func (w *Wishlist) snapshotLocked() WishlistSnapshot {
	snap := WishlistSnapshot{
		Products: make([]domain.Product, len(w.products)),
		Count:    len(w.products),
		Open:     w.open,
	}
	copy(snap.Products, w.products)
	return snap
}

func (w *Wishlist) notify(snap WishlistSnapshot) {
	w.mu.Lock()
	listeners := make([]func(WishlistSnapshot), 0, len(w.subs))
	for _, fn := range w.subs {
		listeners = append(listeners, fn)
	}
	w.mu.Unlock()
	for _, fn := range listeners {
		fn(snap)
	}
}
