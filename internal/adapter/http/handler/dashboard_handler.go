package handler

import (
	"context"
	"net/http"

	mw "github.com/coolvent/fieldops/internal/adapter/http/middleware"
	"github.com/coolvent/fieldops/internal/domain"
	"github.com/coolvent/fieldops/internal/usecase"
)

// DashboardService assembles the per-role dashboard shell.
type DashboardService interface {
	Build(ctx context.Context, session domain.Session, overrideRole domain.Role) (*usecase.Dashboard, error)
}

// DashboardHandler handles dashboard HTTP requests.
type DashboardHandler struct {
	dashboardUC DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardUC DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardUC: dashboardUC}
}

// Get renders the dashboard for the caller's effective role. An active
// preview changes what renders here, never what the caller may do.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	session := mw.SessionFromContext(r.Context())
	override := mw.PreviewFromContext(r.Context())

	dashboard, err := h.dashboardUC.Build(r.Context(), session, override)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build dashboard", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dashboard)
}
