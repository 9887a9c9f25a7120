// Package api wires the HTTP router: middleware stack, handlers and the
// Swagger UI.
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/albapepper/squadgraph/internal/api/handler"
	"github.com/albapepper/squadgraph/internal/cache"
	"github.com/albapepper/squadgraph/internal/config"
	"github.com/albapepper/squadgraph/internal/db"
	"github.com/albapepper/squadgraph/internal/graph"
)

// NewRouter creates and configures the Chi router with all middleware and
// routes. pool may be nil when the dataset was loaded from files.
func NewRouter(live *graph.Live, appCache *cache.Cache, cfg *config.Config, pool *db.Pool) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	h := handler.New(live, appCache, cfg, pool)

	// --- Routes ---

	r.Get("/", h.Root)

	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/db", h.HealthCheckDB)
		r.Get("/cache", h.HealthCheckCache)
	})

	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/filters", h.GetFilters)
		r.Get("/players", h.GetPlayers)
		r.Post("/graph", h.PostGraph)
		r.Get("/graph/view", h.GetGraphView)
	})

	return r
}
