package ratelimit

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// MiddlewareConfig configures the gin rate limit middleware.
type MiddlewareConfig struct {
	Limiter Limiter
	Limit   int
	Window  time.Duration
}

// ClientKey extracts the client identity from a request: the first
// X-Forwarded-For hop when present, otherwise the RemoteAddr host.
func ClientKey(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}

// Middleware gates every request through the limiter before any other
// processing. A non-positive Limit disables limiting entirely, the same
// semantic the limiter backends apply. Backend failures fail open: a
// broken limiter must not take the gateway down with it.
func Middleware(cfg MiddlewareConfig) gin.HandlerFunc {
	if cfg.Limit <= 0 {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	if cfg.Window <= 0 {
		cfg.Window = DefaultWindow
	}
	logger := log.With().Str("component", "ratelimit").Logger()

	return func(c *gin.Context) {
		key := ClientKey(c.Request)

		decision, err := cfg.Limiter.Allow(c.Request.Context(), key, cfg.Limit, cfg.Window)
		if err != nil {
			rateLimitFailuresTotal.Inc()
			logger.Warn().Err(err).Str("client", key).Msg("Rate limit check failed, allowing request")
			c.Next()
			return
		}

		writeRateLimitHeaders(c, decision)

		if !decision.Allowed {
			rateLimitRejectionsTotal.Inc()
			logger.Warn().
				Str("client", key).
				Int("limit", decision.Limit).
				Time("reset_at", decision.ResetAt).
				Msg("Request rejected by rate limiter")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message": "Too many requests, please try again later",
			})
			return
		}

		c.Next()
	}
}

// writeRateLimitHeaders advertises the window state to the client.
func writeRateLimitHeaders(c *gin.Context, decision Decision) {
	if decision.Limit > 0 {
		c.Header("RateLimit-Limit", strconv.Itoa(decision.Limit))
	}
	if decision.Remaining >= 0 {
		c.Header("RateLimit-Remaining", strconv.Itoa(decision.Remaining))
	}
	if !decision.ResetAt.IsZero() {
		c.Header("RateLimit-Reset", strconv.FormatInt(decision.ResetAt.Unix(), 10))
		if !decision.Allowed {
			retryAfter := int64(time.Until(decision.ResetAt).Seconds())
			if retryAfter < 0 {
				retryAfter = 0
			}
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
		}
	}
}
