// Package upstream provides the HTTP client for the remote product
// catalog API, with payload validation and allProducts caching.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"catalog-gateway/pkg/cache"
	"catalog-gateway/pkg/catalog"
)

// Prometheus metrics for upstream catalog operations.
var (
	upstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_upstream_requests_total",
		Help: "Total upstream catalog requests by endpoint and status",
	}, []string{"endpoint", "status"})

	upstreamRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_upstream_request_duration_seconds",
		Help:    "Upstream catalog request duration in seconds by endpoint",
		Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	upstreamErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_upstream_errors_total",
		Help: "Total upstream catalog errors by class",
	}, []string{"class"})
)

// listPayload is the envelope the upstream wraps the full catalog in.
// Records are decoded in wire form and validated before conversion.
type listPayload struct {
	Products []catalog.ProductRecord `json:"products"`
}

// Client fetches product data from the remote catalog API.
// Each fetch is a single attempt: failures are never retried here.
type Client struct {
	httpClient *http.Client
	baseURL    string
	store      cache.Store
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// BaseURL is the upstream catalog endpoint.
	BaseURL string

	// Store caches the full product set under the allProducts key.
	Store cache.Store

	// Timeout bounds each upstream call (default 30s).
	Timeout time.Duration
}

// New creates a new catalog client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("cache store is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		store:   cfg.Store,
		logger:  log.With().Str("component", "upstream-client").Logger(),
	}, nil
}

// FetchAll returns the full product set, consulting the cache first.
// On a miss it issues one GET to the upstream, validates every record,
// and caches the set. A payload with any invalid record fails the whole
// fetch and caches nothing.
func (c *Client) FetchAll(ctx context.Context) ([]catalog.Product, error) {
	if products, ok, err := c.store.Get(ctx, cache.KeyAllProducts); err != nil {
		c.logger.Warn().Err(err).Msg("Cache get error, falling through to upstream")
	} else if ok {
		c.logger.Debug().Int("count", len(products)).Msg("Serving product set from cache")
		return products, nil
	}

	body, err := c.get(ctx, c.baseURL, "/products")
	if err != nil {
		return nil, err
	}

	var payload listPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		upstreamErrorsTotal.WithLabelValues(string(ErrorClassDecode)).Inc()
		c.logger.Error().Err(err).Msg("Upstream payload is not valid JSON")
		return nil, &Error{Class: ErrorClassDecode, Endpoint: "/products", Err: err}
	}

	products := make([]catalog.Product, 0, len(payload.Products))
	for i, r := range payload.Products {
		if err := catalog.ValidateProduct(r); err != nil {
			upstreamErrorsTotal.WithLabelValues(string(ErrorClassSchema)).Inc()
			c.logger.Error().
				Err(err).
				Int("index", i).
				Int("product_id", r.ID).
				Msg("Upstream record failed validation, discarding payload")
			return nil, &Error{Class: ErrorClassSchema, Endpoint: "/products", Err: err}
		}
		products = append(products, r.Product())
	}

	if err := c.store.Set(ctx, cache.KeyAllProducts, products); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to cache product set")
	} else {
		c.logger.Debug().Int("count", len(products)).Msg("Cached full product set")
	}

	return products, nil
}

// FetchByID returns a single product. Single-item fetches bypass the
// cache entirely: the result is neither read from nor written to it.
func (c *Client) FetchByID(ctx context.Context, id int) (*catalog.Product, error) {
	endpoint := fmt.Sprintf("/products/%d", id)

	body, err := c.get(ctx, fmt.Sprintf("%s/%d", c.baseURL, id), endpoint)
	if err != nil {
		return nil, err
	}

	var record catalog.ProductRecord
	if err := json.Unmarshal(body, &record); err != nil {
		upstreamErrorsTotal.WithLabelValues(string(ErrorClassDecode)).Inc()
		c.logger.Error().Err(err).Int("product_id", id).Msg("Upstream record is not valid JSON")
		return nil, &Error{Class: ErrorClassDecode, Endpoint: endpoint, Err: err}
	}

	if err := catalog.ValidateProduct(record); err != nil {
		upstreamErrorsTotal.WithLabelValues(string(ErrorClassSchema)).Inc()
		c.logger.Error().Err(err).Int("product_id", id).Msg("Upstream record failed validation")
		return nil, &Error{Class: ErrorClassSchema, Endpoint: endpoint, Err: err}
	}

	product := record.Product()
	return &product, nil
}

// get issues one GET and returns the response body. The endpoint label is
// used for metrics and logging; the URL is what is actually requested.
func (c *Client) get(ctx context.Context, url, endpoint string) ([]byte, error) {
	startTime := time.Now()
	defer func() {
		upstreamRequestDuration.WithLabelValues(endpoint).Observe(time.Since(startTime).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		upstreamErrorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		upstreamRequestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("Upstream request failed")
		return nil, &Error{Class: ErrorClassNetwork, Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	upstreamRequestsTotal.WithLabelValues(endpoint, fmt.Sprintf("%d", resp.StatusCode)).Inc()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		upstreamErrorsTotal.WithLabelValues(string(ErrorClassStatus)).Inc()
		c.logger.Error().
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Msg("Upstream returned unexpected status")
		return nil, &Error{Class: ErrorClassStatus, Endpoint: endpoint, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		upstreamErrorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("Failed to read upstream body")
		return nil, &Error{Class: ErrorClassNetwork, Endpoint: endpoint, Err: err}
	}

	return body, nil
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}
