package handler

import (
	"net/http"

	"github.com/coolvent/fieldops/internal/adapter/http/dto"
	"github.com/coolvent/fieldops/internal/domain"
	"github.com/coolvent/fieldops/internal/usecase"
)

// AuditHandler exposes the audit trail.
type AuditHandler struct {
	audit *usecase.AuditRecorder
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(audit *usecase.AuditRecorder) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// List lists audit log entries, newest first.
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.AuditFilter{
		ActorID:      r.URL.Query().Get("actor_id"),
		Action:       r.URL.Query().Get("action"),
		ResourceType: r.URL.Query().Get("resource_type"),
		Limit:        parseIntQuery(r, "limit", usecase.DefaultPageSize),
		Offset:       parseIntQuery(r, "offset", 0),
	}

	logs, err := h.audit.ListAudit(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list audit logs", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AuditLogsFromDomain(logs))
}
