package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const readinessTimeout = 3 * time.Second

// HealthHandler answers liveness and readiness probes.
type HealthHandler struct {
	db    *pgxpool.Pool
	cache *redis.Client
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *pgxpool.Pool, cache *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Liveness reports that the process is up.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness reports whether both backing stores answer. Sessions live in
// Redis, so the service is not ready without it even if Postgres is fine.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	checks := map[string]string{"postgres": "ok", "redis": "ok"}

	if err := h.db.Ping(ctx); err != nil {
		checks["postgres"] = err.Error()
	}
	if err := h.cache.Ping(ctx).Err(); err != nil {
		checks["redis"] = err.Error()
	}

	for _, status := range checks {
		if status != "ok" {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"status": "unavailable",
				"checks": checks,
			})
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": "ready", "checks": checks})
}
