package config

import (
	"testing"
	"time"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg := FromEnv()

	if cfg.ListenAddr != ":8080" {
		t.Errorf("Unexpected listen addr: %s", cfg.ListenAddr)
	}
	if cfg.CacheTTL != 300*time.Second {
		t.Errorf("Unexpected cache TTL: %v", cfg.CacheTTL)
	}
	if cfg.SweepInterval != 320*time.Second {
		t.Errorf("Unexpected sweep interval: %v", cfg.SweepInterval)
	}
	if cfg.RateLimit != 200 {
		t.Errorf("Unexpected rate limit: %d", cfg.RateLimit)
	}
	if cfg.RateWindow != 60*time.Second {
		t.Errorf("Unexpected rate window: %v", cfg.RateWindow)
	}
	if cfg.RedisAddr != "" {
		t.Errorf("Expected memory backends by default, got redis addr %s", cfg.RedisAddr)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9999")
	t.Setenv("CACHE_TTL", "10s")
	t.Setenv("RATE_LIMIT", "5")
	t.Setenv("LOG_PRETTY", "true")

	cfg := FromEnv()

	if cfg.ListenAddr != ":9999" {
		t.Errorf("Unexpected listen addr: %s", cfg.ListenAddr)
	}
	if cfg.CacheTTL != 10*time.Second {
		t.Errorf("Unexpected cache TTL: %v", cfg.CacheTTL)
	}
	if cfg.RateLimit != 5 {
		t.Errorf("Unexpected rate limit: %d", cfg.RateLimit)
	}
	if !cfg.LogPretty {
		t.Error("Expected pretty logging enabled")
	}
}

func TestFromEnv_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("CACHE_TTL", "not-a-duration")
	t.Setenv("RATE_LIMIT", "not-a-number")

	cfg := FromEnv()

	if cfg.CacheTTL != 300*time.Second {
		t.Errorf("Expected default TTL for invalid value, got %v", cfg.CacheTTL)
	}
	if cfg.RateLimit != 200 {
		t.Errorf("Expected default rate limit for invalid value, got %d", cfg.RateLimit)
	}
}
