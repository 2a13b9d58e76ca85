// Package config loads gateway configuration from the environment.
package config

import (
	"os"
	"strconv"
	"time"

	"catalog-gateway/pkg/cache"
	"catalog-gateway/pkg/ratelimit"
)

// Config holds the gateway configuration.
type Config struct {
	// ListenAddr is the API listener address.
	ListenAddr string

	// MetricsAddr is the Prometheus /metrics listener address.
	MetricsAddr string

	// UpstreamURL is the remote catalog API base URL.
	UpstreamURL string

	// UpstreamTimeout bounds each upstream call.
	UpstreamTimeout time.Duration

	// CacheTTL is the lifetime of cache entries.
	CacheTTL time.Duration

	// SweepInterval is the background cache eviction period.
	SweepInterval time.Duration

	// RateLimit is the per-client request ceiling per window.
	// Zero or negative disables rate limiting.
	RateLimit int

	// RateWindow is the rate limit window size.
	RateWindow time.Duration

	// RedisAddr selects the Redis backends for cache and rate limiting.
	// Empty selects the in-memory backends.
	RedisAddr string

	// LogLevel is the minimum log level (debug, info, warn, error).
	LogLevel string

	// LogPretty enables human-readable console logs.
	LogPretty bool
}

// FromEnv builds a Config from environment variables with defaults.
func FromEnv() Config {
	return Config{
		ListenAddr:      envDefault("LISTEN_ADDR", ":8080"),
		MetricsAddr:     envDefault("METRICS_ADDR", ":9090"),
		UpstreamURL:     envDefault("UPSTREAM_URL", "http://localhost:3000/api"),
		UpstreamTimeout: envDuration("UPSTREAM_TIMEOUT", 30*time.Second),
		CacheTTL:        envDuration("CACHE_TTL", cache.DefaultTTL),
		SweepInterval:   envDuration("SWEEP_INTERVAL", cache.DefaultSweepInterval),
		RateLimit:       envInt("RATE_LIMIT", ratelimit.DefaultLimit),
		RateWindow:      envDuration("RATE_WINDOW", ratelimit.DefaultWindow),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		LogLevel:        envDefault("LOG_LEVEL", "info"),
		LogPretty:       os.Getenv("LOG_PRETTY") == "true",
	}
}

func envDefault(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		return def
	}
	return value
}

func envInt(key string, def int) int {
	value := os.Getenv(key)
	if value == "" {
		return def
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return def
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return d
}
