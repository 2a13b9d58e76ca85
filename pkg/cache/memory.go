package cache

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"catalog-gateway/pkg/catalog"
)

// memoryEntry holds one cached product set and its expiration time.
type memoryEntry struct {
	products  []catalog.Product
	expiresAt time.Time
}

// MemoryStore is an in-process Store guarded by a mutex. Expiry is checked
// lazily on read; a background sweeper additionally evicts expired entries
// so keys that are never read again do not accumulate.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry

	ttl    time.Duration
	now    func() time.Time
	logger zerolog.Logger

	stopOnce sync.Once
	stop     chan struct{}
}

// MemoryConfig configures a MemoryStore. Zero values fall back to the
// package defaults.
type MemoryConfig struct {
	// TTL is the lifetime of each entry (default 300s).
	TTL time.Duration

	// SweepInterval is the background eviction period (default 320s).
	// Negative disables the sweeper.
	SweepInterval time.Duration

	// Now overrides the clock (for testing).
	Now func() time.Time
}

// NewMemoryStore creates a memory store and starts its background sweeper.
func NewMemoryStore(cfg MemoryConfig) *MemoryStore {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.SweepInterval == 0 {
		cfg.SweepInterval = DefaultSweepInterval
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	s := &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     cfg.TTL,
		now:     cfg.Now,
		logger:  log.With().Str("component", "cache-memory").Logger(),
		stop:    make(chan struct{}),
	}

	if cfg.SweepInterval > 0 {
		go s.sweepLoop(cfg.SweepInterval)
	}

	return s
}

// Get returns the live entry for key, treating expired entries as absent.
func (s *MemoryStore) Get(_ context.Context, key string) ([]catalog.Product, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		CacheMisses.WithLabelValues("memory").Inc()
		return nil, false, nil
	}

	if s.now().After(entry.expiresAt) {
		delete(s.entries, key)
		CacheEvictions.WithLabelValues("memory").Inc()
		CacheMisses.WithLabelValues("memory").Inc()
		return nil, false, nil
	}

	CacheHits.WithLabelValues("memory").Inc()
	return entry.products, true, nil
}

// Set stores products under key, overwriting any existing entry.
func (s *MemoryStore) Set(_ context.Context, key string, products []catalog.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = memoryEntry{
		products:  products,
		expiresAt: s.now().Add(s.ttl),
	}
	return nil
}

// Delete removes the entry for key.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}

// Close stops the background sweeper.
func (s *MemoryStore) Close() error {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
	return nil
}

// Len returns the number of entries currently held, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// sweepLoop periodically evicts expired entries until Close is called.
func (s *MemoryStore) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			evicted := s.evictExpired()
			if evicted > 0 {
				s.logger.Debug().
					Int("evicted", evicted).
					Msg("Swept expired cache entries")
			}
		case <-s.stop:
			return
		}
	}
}

// evictExpired removes every expired entry and returns how many were removed.
func (s *MemoryStore) evictExpired() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for key, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, key)
			evicted++
		}
	}

	if evicted > 0 {
		CacheEvictions.WithLabelValues("memory").Add(float64(evicted))
	}
	return evicted
}
