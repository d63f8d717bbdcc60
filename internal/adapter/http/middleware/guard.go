package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/coolvent/fieldops/internal/adapter/http/dto"
	"github.com/coolvent/fieldops/internal/domain"
	"github.com/coolvent/fieldops/internal/infrastructure/metrics"
)

// PreviewResolver returns the active preview override for a session, or ""
// when none applies.
type PreviewResolver interface {
	Active(ctx context.Context, session domain.Session, sessionToken string) domain.Role
}

// Guard enforces the route table on every request behind it. Authentication
// is checked strictly before authorization: anonymous callers are redirected
// to login and never learn which roles a route requires.
type Guard struct {
	routes   *domain.RouteTable
	previews PreviewResolver
	metrics  *metrics.Metrics
}

// NewGuard creates a new Guard.
func NewGuard(routes *domain.RouteTable, previews PreviewResolver, m *metrics.Metrics) *Guard {
	return &Guard{
		routes:   routes,
		previews: previews,
		metrics:  m,
	}
}

// Wrap wraps an http.Handler with route guarding. The resolved preview
// override is placed on the request context for downstream handlers.
func (g *Guard) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := SessionFromContext(r.Context())
		token := SessionTokenFromContext(r.Context())

		var override domain.Role
		if g.previews != nil {
			override = g.previews.Active(r.Context(), session, token)
		}

		decision := g.routes.Evaluate(session, override, r.URL.Path)
		if g.metrics != nil {
			g.metrics.GuardDecisions.WithLabelValues(string(decision.Outcome)).Inc()
		}

		switch decision.Outcome {
		case domain.GuardUnauthenticated:
			writeGuardJSON(w, http.StatusUnauthorized, dto.GuardDeniedResponse{
				Error:      "authentication required",
				RedirectTo: decision.RedirectTo,
			})
			return

		case domain.GuardDisallowed:
			writeGuardJSON(w, http.StatusForbidden, dto.GuardDeniedResponse{
				Error:        "role not allowed",
				AllowedRoles: decision.AllowedRoles,
			})
			return
		}

		ctx := context.WithValue(r.Context(), PreviewContextKey, override)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeGuardJSON(w http.ResponseWriter, status int, payload dto.GuardDeniedResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
