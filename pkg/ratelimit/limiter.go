// Package ratelimit implements per-client fixed-window request limiting
// for the gateway. Every inbound request passes the limiter before any
// other processing, regardless of the resource path.
package ratelimit

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default limits: 200 requests per client per 60-second window.
const (
	DefaultLimit  = 200
	DefaultWindow = 60 * time.Second
)

// Prometheus metrics for rate limit decisions.
var (
	rateLimitRejectionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_rate_limit_rejections_total",
		Help: "Total number of requests rejected by the rate limiter",
	})

	rateLimitFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_rate_limit_failures_total",
		Help: "Total number of rate limit backend failures (requests fail open)",
	})
)

// Decision is the outcome of a rate limit check.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Limiter decides whether a request from the keyed client may proceed
// within the current fixed window.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (Decision, error)
}
