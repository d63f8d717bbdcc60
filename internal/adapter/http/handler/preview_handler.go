package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/coolvent/fieldops/internal/adapter/http/dto"
	mw "github.com/coolvent/fieldops/internal/adapter/http/middleware"
	"github.com/coolvent/fieldops/internal/domain"
	"github.com/coolvent/fieldops/internal/usecase"
)

// PreviewService is the role-preview surface the handler depends on.
type PreviewService interface {
	Set(ctx context.Context, session domain.Session, sessionToken string, role domain.Role, inPreviewFrame bool) error
	Clear(ctx context.Context, sessionToken string) error
	Active(ctx context.Context, session domain.Session, sessionToken string) domain.Role
}

// PreviewHandler handles role preview HTTP requests.
type PreviewHandler struct {
	previewUC PreviewService
	audit     *usecase.AuditRecorder
}

// NewPreviewHandler creates a new PreviewHandler.
func NewPreviewHandler(previewUC PreviewService, audit *usecase.AuditRecorder) *PreviewHandler {
	return &PreviewHandler{
		previewUC: previewUC,
		audit:     audit,
	}
}

// Set opens a preview as another role. Only a true admin session may set
// one, and a request already inside a preview frame cannot open another.
func (h *PreviewHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req dto.SetPreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	session := mw.SessionFromContext(r.Context())
	token := mw.SessionTokenFromContext(r.Context())
	inFrame := mw.PreviewFromContext(r.Context()) != "" || r.Header.Get("X-Preview-Frame") == "1"

	if err := h.previewUC.Set(r.Context(), session, token, domain.Role(req.Role), inFrame); err != nil {
		writeError(w, mapDomainError(err), "failed to set preview", err.Error())
		return
	}

	h.audit.Record(r.Context(), actorFromRequest(r), "preview.set", "preview", req.Role)
	writeJSON(w, http.StatusOK, dto.PreviewResponse{Active: true, Role: domain.Role(req.Role)})
}

// Clear closes the active preview. Clearing an absent preview is not an
// error.
func (h *PreviewHandler) Clear(w http.ResponseWriter, r *http.Request) {
	token := mw.SessionTokenFromContext(r.Context())

	if err := h.previewUC.Clear(r.Context(), token); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to clear preview", err.Error())
		return
	}

	h.audit.Record(r.Context(), actorFromRequest(r), "preview.clear", "preview", "")
	writeJSON(w, http.StatusOK, dto.PreviewResponse{Active: false})
}

// Get reports the caller's active preview, if any.
func (h *PreviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	session := mw.SessionFromContext(r.Context())
	token := mw.SessionTokenFromContext(r.Context())

	role := h.previewUC.Active(r.Context(), session, token)
	writeJSON(w, http.StatusOK, dto.PreviewResponse{Active: role != "", Role: role})
}
