package cache

import (
	"context"
	"time"

	"catalog-gateway/pkg/catalog"
)

// DefaultTTL is how long entries stay live after a Set.
const DefaultTTL = 300 * time.Second

// DefaultSweepInterval is how often the background sweep evicts expired
// entries regardless of read pattern.
const DefaultSweepInterval = 320 * time.Second

// Store is a key-value cache of product sets with per-entry expiration.
// At most one live entry exists per key; Set overwrites unconditionally.
type Store interface {
	// Get returns the cached products for key. The bool reports whether a
	// live entry exists: entries that were never set, or whose TTL has
	// elapsed, are absent.
	Get(ctx context.Context, key string) ([]catalog.Product, bool, error)

	// Set stores products under key with expiration now + TTL.
	Set(ctx context.Context, key string, products []catalog.Product) error

	// Delete removes the entry for key, if any.
	Delete(ctx context.Context, key string) error

	// Close releases store resources.
	Close() error
}
