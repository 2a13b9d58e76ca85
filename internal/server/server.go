// Package server wires the gateway HTTP surface: rate limiting, request
// validation, query handling, and the degrade-to-empty error boundary.
package server

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"catalog-gateway/internal/config"
	"catalog-gateway/pkg/catalog"
	"catalog-gateway/pkg/logging"
	"catalog-gateway/pkg/query"
	"catalog-gateway/pkg/ratelimit"
)

// ProductSource is the upstream-facing surface the handlers need.
type ProductSource interface {
	FetchAll(ctx context.Context) ([]catalog.Product, error)
	FetchByID(ctx context.Context, id int) (*catalog.Product, error)
}

// Server is the gateway HTTP server.
type Server struct {
	cfg      config.Config
	r        *gin.Engine
	products ProductSource
	engine   *query.Engine
	logger   zerolog.Logger
}

// Deps are the server's injectable collaborators, substitutable in tests.
type Deps struct {
	Products ProductSource
	Engine   *query.Engine
	Limiter  ratelimit.Limiter
}

// New creates a gateway server.
func New(cfg config.Config, deps Deps) *Server {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	s := &Server{
		cfg:      cfg,
		r:        r,
		products: deps.Products,
		engine:   deps.Engine,
		logger:   logging.NewLogger("server"),
	}
	s.routes(deps.Limiter)
	return s
}

// Handler exposes the underlying http.Handler.
func (s *Server) Handler() *gin.Engine {
	return s.r
}

// routes registers the HTTP surface. The rate limiter gates every route,
// including health, before any other processing.
func (s *Server) routes(limiter ratelimit.Limiter) {
	s.r.Use(ratelimit.Middleware(ratelimit.MiddlewareConfig{
		Limiter: limiter,
		Limit:   s.cfg.RateLimit,
		Window:  s.cfg.RateWindow,
	}))

	s.r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	products := s.r.Group("/products")
	{
		products.GET("", s.handleListProducts)
		products.GET("/search", s.handleSearch)
		products.GET("/category/:category", s.handleCategory)
		products.GET("/:id", s.handleGetProduct)
	}
}
