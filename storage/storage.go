// Package storage provides key-value snapshot storage for the storefront.
// It models the two browser storage scopes the stores rely on: durable
// on-device storage (cart, wishlist) and session-scoped storage (the
// checkout draft written before the external payment handoff).
package storage

// Store is a key-value store holding serialized snapshots. Values are
// opaque byte payloads; callers own serialization and must tolerate
// corrupt payloads by discarding them.
type Store interface {
	// Get returns the stored value and whether the key was present.
	Get(key string) ([]byte, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte) error
	// Delete removes key; removing an absent key is a no-op.
	Delete(key string) error
}
