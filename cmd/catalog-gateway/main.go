package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"catalog-gateway/internal/config"
	"catalog-gateway/internal/server"
	"catalog-gateway/pkg/cache"
	"catalog-gateway/pkg/logging"
	"catalog-gateway/pkg/query"
	"catalog-gateway/pkg/ratelimit"
	"catalog-gateway/pkg/upstream"
)

func main() {
	cfg := config.FromEnv()

	logger := logging.Setup(logging.Config{
		Level:  logging.LogLevel(cfg.LogLevel),
		Pretty: cfg.LogPretty,
		Output: os.Stderr,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Backend selection: Redis when configured, in-process otherwise.
	var store cache.Store
	var limiter ratelimit.Limiter
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("Failed to connect to Redis")
		}
		defer redisClient.Close()

		store = cache.NewRedisStore(redisClient, cfg.CacheTTL)
		limiter = ratelimit.NewRedisLimiter(redisClient)
		logger.Info().Str("addr", cfg.RedisAddr).Msg("Using Redis backends")
	} else {
		store = cache.NewMemoryStore(cache.MemoryConfig{
			TTL:           cfg.CacheTTL,
			SweepInterval: cfg.SweepInterval,
		})
		limiter = ratelimit.NewMemoryLimiter(ratelimit.MemoryLimiterConfig{})
		logger.Info().Msg("Using in-memory backends")
	}
	defer store.Close()

	client, err := upstream.New(upstream.Config{
		BaseURL: cfg.UpstreamURL,
		Store:   store,
		Timeout: cfg.UpstreamTimeout,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create upstream client")
	}

	srv := server.New(cfg, server.Deps{
		Products: client,
		Engine:   query.NewEngine(client, store),
		Limiter:  limiter,
	})

	apiServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: srv.Handler(),
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsServer := &http.Server{
		Addr:    cfg.MetricsAddr,
		Handler: metricsMux,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().
			Str("addr", cfg.ListenAddr).
			Str("upstream", cfg.UpstreamURL).
			Msg("Starting catalog gateway")
		if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		logger.Info().Str("addr", cfg.MetricsAddr).Msg("Starting metrics listener")
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info().Msg("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("API server shutdown error")
		}
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("Metrics server shutdown error")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Fatal().Err(err).Msg("Server failed")
	}
}
