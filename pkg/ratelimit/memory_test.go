package ratelimit

import (
	"context"
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func TestMemoryLimiter_AllowsUpToLimit(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	limiter := NewMemoryLimiter(MemoryLimiterConfig{Now: clock.Now})
	ctx := context.Background()

	for i := 0; i < 200; i++ {
		decision, err := limiter.Allow(ctx, "10.0.0.1", 200, 60*time.Second)
		if err != nil {
			t.Fatalf("Allow failed on request %d: %v", i+1, err)
		}
		if !decision.Allowed {
			t.Fatalf("Request %d should be allowed", i+1)
		}
	}

	// 201st request inside the window must be rejected.
	decision, err := limiter.Allow(ctx, "10.0.0.1", 200, 60*time.Second)
	if err != nil {
		t.Fatalf("Allow failed: %v", err)
	}
	if decision.Allowed {
		t.Error("201st request should be rejected")
	}
	if decision.Remaining != 0 {
		t.Errorf("Expected 0 remaining, got %d", decision.Remaining)
	}
}

func TestMemoryLimiter_WindowRollover(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	limiter := NewMemoryLimiter(MemoryLimiterConfig{Now: clock.Now})
	ctx := context.Background()

	for i := 0; i < 201; i++ {
		limiter.Allow(ctx, "10.0.0.1", 200, 60*time.Second)
	}

	clock.Advance(61 * time.Second)

	decision, err := limiter.Allow(ctx, "10.0.0.1", 200, 60*time.Second)
	if err != nil {
		t.Fatalf("Allow failed: %v", err)
	}
	if !decision.Allowed {
		t.Error("First request after window rollover should succeed")
	}
	if decision.Remaining != 199 {
		t.Errorf("Expected 199 remaining in fresh window, got %d", decision.Remaining)
	}
}

func TestMemoryLimiter_KeysAreIndependent(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	limiter := NewMemoryLimiter(MemoryLimiterConfig{Now: clock.Now})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		limiter.Allow(ctx, "10.0.0.1", 3, time.Minute)
	}

	blocked, _ := limiter.Allow(ctx, "10.0.0.1", 3, time.Minute)
	if blocked.Allowed {
		t.Error("Exhausted client should be rejected")
	}

	other, _ := limiter.Allow(ctx, "10.0.0.2", 3, time.Minute)
	if !other.Allowed {
		t.Error("Other client should be unaffected")
	}
}

func TestMemoryLimiter_ZeroLimitDisables(t *testing.T) {
	limiter := NewMemoryLimiter(MemoryLimiterConfig{})

	decision, err := limiter.Allow(context.Background(), "10.0.0.1", 0, time.Minute)
	if err != nil {
		t.Fatalf("Allow failed: %v", err)
	}
	if !decision.Allowed {
		t.Error("Zero limit should disable limiting")
	}
}

func TestMemoryLimiter_ResetAt(t *testing.T) {
	start := time.Now()
	clock := &fakeClock{now: start}
	limiter := NewMemoryLimiter(MemoryLimiterConfig{Now: clock.Now})

	decision, _ := limiter.Allow(context.Background(), "10.0.0.1", 5, time.Minute)
	want := start.Add(time.Minute)
	if !decision.ResetAt.Equal(want) {
		t.Errorf("Expected reset at %v, got %v", want, decision.ResetAt)
	}
}

func TestMemoryLimiter_CapacityGC(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	limiter := NewMemoryLimiter(MemoryLimiterConfig{Now: clock.Now, MaxKeys: 2})
	ctx := context.Background()

	limiter.Allow(ctx, "a", 5, time.Minute)
	limiter.Allow(ctx, "b", 5, time.Minute)

	// At capacity with live windows: a new key cannot be tracked.
	if _, err := limiter.Allow(ctx, "c", 5, time.Minute); err == nil {
		t.Error("Expected capacity error with live windows")
	}

	// Once the old windows elapse, GC makes room.
	clock.Advance(2 * time.Minute)
	decision, err := limiter.Allow(ctx, "c", 5, time.Minute)
	if err != nil {
		t.Fatalf("Allow failed after GC: %v", err)
	}
	if !decision.Allowed {
		t.Error("Request should be allowed after expired windows are collected")
	}
}
