package ratelimit

import (
	"context"
	"errors"
	"sync"
	"time"
)

// window is one client's count against its current fixed window.
type window struct {
	count     int
	windowEnd time.Time
}

// MemoryLimiter is an in-process fixed-window limiter. The count for a
// key never exceeds the limit inside a window; the window resets
// atomically once it elapses.
type MemoryLimiter struct {
	mu      sync.Mutex
	now     func() time.Time
	windows map[string]*window
	maxKeys int
}

// MemoryLimiterConfig configures a MemoryLimiter.
type MemoryLimiterConfig struct {
	// Now overrides the clock (for testing).
	Now func() time.Time

	// MaxKeys bounds tracked client identities (default 10000).
	MaxKeys int
}

// NewMemoryLimiter creates an in-process limiter.
func NewMemoryLimiter(cfg MemoryLimiterConfig) *MemoryLimiter {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.MaxKeys <= 0 {
		cfg.MaxKeys = 10000
	}
	return &MemoryLimiter{
		now:     cfg.Now,
		windows: make(map[string]*window),
		maxKeys: cfg.MaxKeys,
	}
}

// Allow counts one request for key against its window.
func (m *MemoryLimiter) Allow(_ context.Context, key string, limit int, windowSize time.Duration) (Decision, error) {
	if limit <= 0 {
		return Decision{Allowed: true, Limit: limit, Remaining: limit}, nil
	}
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.windows[key]
	if ok && now.After(w.windowEnd) {
		delete(m.windows, key)
		ok = false
	}
	if !ok {
		if len(m.windows) >= m.maxKeys {
			m.gc(now)
		}
		if len(m.windows) >= m.maxKeys {
			return Decision{}, errors.New("rate limiter capacity exceeded")
		}
		w = &window{windowEnd: now.Add(windowSize)}
		m.windows[key] = w
	}

	if w.count < limit {
		w.count++
		return Decision{
			Allowed:   true,
			Limit:     limit,
			Remaining: limit - w.count,
			ResetAt:   w.windowEnd,
		}, nil
	}

	return Decision{
		Allowed:   false,
		Limit:     limit,
		Remaining: 0,
		ResetAt:   w.windowEnd,
	}, nil
}

// gc drops windows that have already elapsed.
func (m *MemoryLimiter) gc(now time.Time) {
	for key, w := range m.windows {
		if now.After(w.windowEnd) {
			delete(m.windows, key)
		}
	}
}
