// Package cart provides the shared, persisted, observable stores behind
// every storefront view: the shopping cart and the wishlist. Both stores
// persist a full snapshot to durable storage on every mutation and then
// notify subscribers synchronously, so all views render the same
// post-mutation state.
package cart

import (
	"encoding/json"
	"log/slog"
	"sync"

	"storefront/domain"
	"storefront/storage"
)

// StorageKey is the durable storage key holding the cart snapshot.
const StorageKey = "cart"

// Snapshot is the consistent view handed to subscribers after each
// mutation. Derived aggregates are computed at snapshot time, never
// stored.
type Snapshot struct {
	Items     []domain.CartLineItem
	ItemCount int
	Subtotal  float64
}

// Store owns the canonical list of cart line items. Line items keep
// insertion order for display; a product appears in at most one line.
type Store struct {
	mu      sync.Mutex
	items   []domain.CartLineItem
	backend storage.Store
	log     *slog.Logger

	subs    map[int]func(Snapshot)
	nextSub int
}

// NewStore constructs a cart store backed by the given storage, loading
// any persisted snapshot. A corrupt snapshot is discarded and the cart
// starts empty; construction never fails on bad persisted data.
func NewStore(backend storage.Store, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	s := &Store{
		backend: backend,
		log:     log,
		subs:    make(map[int]func(Snapshot)),
	}
	s.rehydrate()
	return s
}

func (s *Store) rehydrate() {
	b, ok, err := s.backend.Get(StorageKey)
	if err != nil {
		s.log.Warn("cart snapshot load failed", "error", err)
		return
	}
	if !ok {
		return
	}
	var items []domain.CartLineItem
	if err := json.Unmarshal(b, &items); err != nil {
		s.log.Warn("discarding corrupt cart snapshot", "error", err)
		if err := s.backend.Delete(StorageKey); err != nil {
			s.log.Warn("cart snapshot delete failed", "error", err)
		}
		return
	}
	s.items = items
}

// Add appends a line item for the product, or merges quantities when a
// line for the same product already exists. Quantities below 1 are
// clamped to 1.
func (s *Store) Add(item domain.CartLineItem, quantity int) error {
	if err := domain.ValidateLineItem(item); err != nil {
		return err
	}
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ProductID == item.ProductID {
			s.items[i].Quantity += quantity
			snap := s.persistLocked()
			s.mu.Unlock()
			s.notify(snap)
			return nil
		}
	}
	item.Quantity = quantity
	s.items = append(s.items, item)
	snap := s.persistLocked()
	s.mu.Unlock()
	s.notify(snap)
	return nil
}

// AddProduct is a convenience wrapper snapshotting a catalog product
// into a line item before adding it.
func (s *Store) AddProduct(p domain.Product, quantity int) error {
	return s.Add(domain.LineItemFromProduct(p, quantity), quantity)
}

// UpdateQuantity sets the absolute quantity of an existing line item.
// Quantities below 1 clamp to 1; removal is always an explicit Remove,
// never an implicit side effect. Absent product ids are a no-op.
func (s *Store) UpdateQuantity(productID, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = quantity
			snap := s.persistLocked()
			s.mu.Unlock()
			s.notify(snap)
			return
		}
	}
	s.mu.Unlock()
}

// Remove deletes the line item for the product if present.
func (s *Store) Remove(productID int) {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			snap := s.persistLocked()
			s.mu.Unlock()
			s.notify(snap)
			return
		}
	}
	s.mu.Unlock()
}

// Clear empties the cart. In the normal flow this happens exactly once
// per completed order.
func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	snap := s.persistLocked()
	s.mu.Unlock()
	s.notify(snap)
}

// Items returns the line items in insertion order.
func (s *Store) Items() []domain.CartLineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartLineItem, len(s.items))
	copy(out, s.items)
	return out
}

// ItemCount is the sum of all line quantities, recomputed on every call.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, it := range s.items {
		count += it.Quantity
	}
	return count
}

// Subtotal is the sum of price times quantity over all lines,
// recomputed on every call.
func (s *Store) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var sum float64
	for _, it := range s.items {
		sum += it.Price * float64(it.Quantity)
	}
	return sum
}

// IsEmpty reports whether the cart holds no line items.
func (s *Store) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items) == 0
}

// Subscribe registers a listener invoked synchronously after every
// mutation with a consistent post-mutation snapshot. The returned
// function unregisters the listener; views must call it on teardown.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// persistLocked writes the current snapshot to durable storage and
// builds the notification snapshot. Write failures are logged and
// swallowed: the in-memory mutation the user just performed stands.
// Callers must hold s.mu.
func (s *Store) persistLocked() Snapshot {
	b, err := json.Marshal(s.itemsOrEmpty())
	if err != nil {
		s.log.Error("cart snapshot marshal failed", "error", err)
	} else if err := s.backend.Set(StorageKey, b); err != nil {
		s.log.Warn("cart snapshot write failed", "error", err)
	}

	snap := Snapshot{Items: make([]domain.CartLineItem, len(s.items))}
	copy(snap.Items, s.items)
	for _, it := range s.items {
		snap.ItemCount += it.Quantity
		snap.Subtotal += it.Price * float64(it.Quantity)
	}
	return snap
}

// itemsOrEmpty keeps the persisted payload a JSON array even when the
// cart is empty.
func (s *Store) itemsOrEmpty() []domain.CartLineItem {
	if s.items == nil {
		return []domain.CartLineItem{}
	}
	return s.items
}

func (s *Store) notify(snap Snapshot) {
	s.mu.Lock()
	listeners := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(snap)
	}
}
