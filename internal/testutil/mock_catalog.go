// Package testutil provides testing utilities for the catalog gateway.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"catalog-gateway/pkg/catalog"
)

// MockCatalog is a configurable mock of the upstream catalog API.
// It counts requests per path so tests can assert that cached responses
// never re-invoke the upstream.
type MockCatalog struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]http.HandlerFunc
	products []catalog.Product

	// Tracking
	requestCount int
	pathCounts   map[string]int
}

// NewMockCatalog creates a mock catalog server with no products.
func NewMockCatalog() *MockCatalog {
	mock := &MockCatalog{
		handlers:   make(map[string]http.HandlerFunc),
		pathCounts: make(map[string]int),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.requestCount++
		mock.pathCounts[r.URL.Path]++
		mock.mu.Unlock()

		mock.mu.RLock()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		mock.defaultHandler(w, r)
	}))

	return mock
}

// URL returns the mock server base URL.
func (m *MockCatalog) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockCatalog) Close() {
	m.server.Close()
}

// Reset clears all tracking counters.
func (m *MockCatalog) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount = 0
	m.pathCounts = make(map[string]int)
}

// SetProducts configures the product fixtures served by the default handlers.
func (m *MockCatalog) SetProducts(products []catalog.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = products
}

// SetHandler overrides the handler for a specific path.
func (m *MockCatalog) SetHandler(path string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetRawResponse serves a fixed status and body for a path. Useful for
// malformed-payload and error scenarios.
func (m *MockCatalog) SetRawResponse(path string, statusCode int, body string) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(statusCode)
		if body != "" {
			fmt.Fprint(w, body)
		}
	})
}

// RequestCount returns the total number of requests served.
func (m *MockCatalog) RequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.requestCount
}

// PathCount returns the number of requests served for a specific path.
func (m *MockCatalog) PathCount(path string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pathCounts[path]
}

// defaultHandler mimics the upstream contract:
// GET /       -> {"products": [...]}
// GET /<id>   -> single product record, or 404
func (m *MockCatalog) defaultHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	m.mu.RLock()
	products := m.products
	m.mu.RUnlock()

	if r.URL.Path == "/" || r.URL.Path == "" {
		payload := map[string][]catalog.Product{"products": products}
		if products == nil {
			payload["products"] = []catalog.Product{}
		}
		json.NewEncoder(w).Encode(payload)
		return
	}

	id, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/"))
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message": "Not found"}`)
		return
	}

	for _, p := range products {
		if p.ID == id {
			json.NewEncoder(w).Encode(p)
			return
		}
	}

	w.WriteHeader(http.StatusNotFound)
	fmt.Fprint(w, `{"message": "Not found"}`)
}

// Fixtures returns a small, valid product set for tests.
func Fixtures() []catalog.Product {
	return []catalog.Product{
		{ID: 1, Name: "Phone", Price: 100, Category: "electronics", Description: "x"},
		{ID: 2, Name: "Laptop", Price: 900, Category: "electronics", Description: "portable computer"},
		{ID: 3, Name: "Desk Lamp", Price: 25, Category: "home", Description: "led lamp"},
	}
}
