// Package handler provides HTTP handlers for all API endpoints.
// Graphs are computed in memory by the engine; encoded responses are kept
// in the TTL cache under the canonical filter key.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/albapepper/squadgraph/internal/api/respond"
	"github.com/albapepper/squadgraph/internal/cache"
	"github.com/albapepper/squadgraph/internal/config"
	"github.com/albapepper/squadgraph/internal/db"
	"github.com/albapepper/squadgraph/internal/graph"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	live  *graph.Live
	cache *cache.Cache
	cfg   *config.Config
	pool  *db.Pool // nil when the dataset comes from files
}

// New creates a Handler with shared dependencies. pool may be nil.
func New(live *graph.Live, c *cache.Cache, cfg *config.Config, pool *db.Pool) *Handler {
	return &Handler{
		live:  live,
		cache: c,
		cfg:   cfg,
		pool:  pool,
	}
}

// cacheKey scopes key to the snapshot's generation so entries computed on
// an older dataset are never served after a reload.
func cacheKey(snap *graph.Snapshot, kind, key string) string {
	return kind + ":" + strconv.FormatUint(snap.Generation, 10) + ":" + key
}

func (h *Handler) graphTTL() time.Duration {
	if h.cfg.CacheTTL > 0 {
		return h.cfg.CacheTTL
	}
	return cache.TTLGraph
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, status and dataset size.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	snap := h.live.Current()
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":        "Squadgraph API",
		"version":     "1.0.0",
		"status":      "running",
		"docs":        "/docs",
		"data_source": h.cfg.DataSource,
		"matches":     snap.Engine.Dataset().Len(),
		"players":     snap.Engine.Directory().Len(),
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
// @Summary Database health check
// @Description Verifies Postgres connectivity. Reports 503 when no database is configured.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if h.pool == nil {
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unavailable",
			"database":  "not configured",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	if err := h.pool.HealthCheck(r.Context()); err != nil {
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"error":     "Database connection check failed",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Description Returns in-memory cache statistics (active keys, expired keys, hits, misses).
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// writeEngineError maps engine errors onto API errors.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, graph.ErrEmptyDataset):
		respond.WriteError(w, http.StatusServiceUnavailable, "NO_DATA", "No matches loaded")
	case errors.Is(err, graph.ErrYearOutOfRange):
		respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_YEAR", "Year is outside the dataset", err.Error())
	default:
		respond.WriteErrorDetail(w, http.StatusInternalServerError, "INTERNAL", "Request failed", err.Error())
	}
}

// serveCached writes the cached entry for key if present, handling
// If-None-Match. It reports whether a response was written.
func (h *Handler) serveCached(w http.ResponseWriter, r *http.Request, key string, ttl time.Duration, html bool) bool {
	data, etag, ok := h.cache.Get(key)
	if !ok {
		return false
	}
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return true
	}
	if html {
		respond.WriteHTML(w, data, etag, ttl, true)
	} else {
		respond.WriteJSON(w, data, etag, ttl, true)
	}
	return true
}
