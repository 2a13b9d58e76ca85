// Package query derives search and category results from the full
// product set. All filtering happens locally: the upstream API has no
// filtered endpoint dimension, so the engine never issues a narrowed
// upstream request.
package query

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"catalog-gateway/pkg/cache"
	"catalog-gateway/pkg/catalog"
)

// ProductSource supplies the full product set. In production this is the
// upstream client, which is itself cache-backed under allProducts.
type ProductSource interface {
	FetchAll(ctx context.Context) ([]catalog.Product, error)
}

// Engine answers search and category queries, caching each derived result
// under its own key.
type Engine struct {
	source ProductSource
	store  cache.Store
	logger zerolog.Logger
}

// NewEngine creates a query engine.
func NewEngine(source ProductSource, store cache.Store) *Engine {
	return &Engine{
		source: source,
		store:  store,
		logger: log.With().Str("component", "query-engine").Logger(),
	}
}

// SearchByName returns products whose name contains the query, matched
// case-insensitively. Results are cached under search_<query>, including
// empty ones: a query known to yield nothing keeps yielding the cached
// empty set for the TTL window instead of re-filtering the full catalog.
func (e *Engine) SearchByName(ctx context.Context, query string) ([]catalog.Product, error) {
	key := cache.SearchKey(query)

	if cached, ok, err := e.store.Get(ctx, key); err != nil {
		e.logger.Warn().Err(err).Str("key", key).Msg("Cache get error")
	} else if ok {
		return cached, nil
	}

	all, err := e.source.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	matches := make([]catalog.Product, 0)
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			matches = append(matches, p)
		}
	}

	if err := e.store.Set(ctx, key, matches); err != nil {
		e.logger.Warn().Err(err).Str("key", key).Msg("Failed to cache search result")
	}

	e.logger.Debug().
		Str("query", query).
		Int("matches", len(matches)).
		Msg("Search result computed")

	return matches, nil
}

// FilterByCategory returns products whose category equals the given one,
// compared case-insensitively. Same caching policy as SearchByName, under
// category_<category>.
func (e *Engine) FilterByCategory(ctx context.Context, category string) ([]catalog.Product, error) {
	key := cache.CategoryKey(category)

	if cached, ok, err := e.store.Get(ctx, key); err != nil {
		e.logger.Warn().Err(err).Str("key", key).Msg("Cache get error")
	} else if ok {
		return cached, nil
	}

	all, err := e.source.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	matches := make([]catalog.Product, 0)
	for _, p := range all {
		if strings.EqualFold(p.Category, category) {
			matches = append(matches, p)
		}
	}

	if err := e.store.Set(ctx, key, matches); err != nil {
		e.logger.Warn().Err(err).Str("key", key).Msg("Failed to cache category result")
	}

	e.logger.Debug().
		Str("category", category).
		Int("matches", len(matches)).
		Msg("Category result computed")

	return matches, nil
}
