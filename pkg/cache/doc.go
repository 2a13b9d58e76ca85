// Package cache provides short-lived TTL caching for catalog product sets.
//
// Cached values are whole product slices keyed by deterministic strings:
//
//   - allProducts          - the full upstream catalog
//   - search_<query>       - search results for a lowercased query
//   - category_<category>  - filter results for a lowercased category
//
// The key prefixes keep search and category results from colliding even
// when their literal text matches.
//
// Entries expire after a fixed TTL (default 5 minutes). Expired entries are
// logically absent: reads treat them as misses, and a periodic background
// sweep evicts them so one-off search keys cannot grow memory without bound.
// There is no size or LRU eviction; unbounded key cardinality within a TTL
// window is a known, accepted limitation.
//
// # Basic Usage
//
//	store := cache.NewMemoryStore(cache.MemoryConfig{})
//	defer store.Close()
//
//	products, ok, err := store.Get(ctx, cache.KeyAllProducts)
//	if !ok {
//		// miss - fetch from upstream, then:
//		store.Set(ctx, cache.KeyAllProducts, fetched)
//	}
//
// A Redis-backed store with the same interface is available for deployments
// that already run Redis; expiry is then handled server-side.
//
// # Metrics
//
// The package exports Prometheus metrics:
//
//   - catalog_cache_hits_total{backend}
//   - catalog_cache_misses_total{backend}
//   - catalog_cache_evictions_total{backend}
//   - catalog_cache_errors_total{backend, operation}
package cache
