package cache

import "strings"

// KeyAllProducts caches the full upstream product set.
const KeyAllProducts = "allProducts"

// Key prefixes keep result namespaces isolated from each other.
const (
	searchPrefix   = "search_"
	categoryPrefix = "category_"
)

// SearchKey derives the cache key for a product name search.
// Queries are lowercased so case variants share one entry.
func SearchKey(query string) string {
	return searchPrefix + strings.ToLower(query)
}

// CategoryKey derives the cache key for a category filter.
func CategoryKey(category string) string {
	return categoryPrefix + strings.ToLower(category)
}
