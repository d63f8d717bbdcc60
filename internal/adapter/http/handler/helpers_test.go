package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"
	mw "github.com/coolvent/fieldops/internal/adapter/http/middleware"
	"github.com/coolvent/fieldops/internal/domain"
	"github.com/coolvent/fieldops/internal/usecase"
)

func TestParseIntQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/customers?limit=50", nil)
	if got := parseIntQuery(req, "limit", 10); got != 50 {
		t.Fatalf("expected limit=50, got %d", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/customers?limit=invalid", nil)
	if got := parseIntQuery(req, "limit", 10); got != 10 {
		t.Fatalf("expected fallback to default, got %d", got)
	}

	req.URL = &url.URL{RawQuery: ""}
	if got := parseIntQuery(req, "limit", 25); got != 25 {
		t.Fatalf("expected default when missing, got %d", got)
	}
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound},
		{"customer not found", domain.ErrCustomerNotFound, http.StatusNotFound},
		{"work order not found", domain.ErrWorkOrderNotFound, http.StatusNotFound},
		{"email taken", domain.ErrEmailAlreadyExists, http.StatusConflict},
		{"invalid transition", domain.ErrInvalidTransition, http.StatusBadRequest},
		{"insufficient stock", domain.ErrInsufficientStock, http.StatusBadRequest},
		{"unknown role", domain.ErrUnknownRole, http.StatusBadRequest},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"role not allowed", domain.ErrRoleNotAllowed, http.StatusForbidden},
		{"inactive user", domain.ErrUserInactive, http.StatusForbidden},
		{"login in progress", domain.ErrLoginInProgress, http.StatusConflict},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := mapDomainError(tt.err); got != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	payload := map[string]string{"status": "ok"}

	writeJSON(rr, http.StatusCreated, payload)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected application/json, got %s", ct)
	}
}

func TestActorFromRequest(t *testing.T) {
	session := domain.Session{IsAuthenticated: true, UserID: "usr-1", Username: "boss@coolvent.test", Role: domain.RoleAdmin}

	req := httptest.NewRequest(http.MethodPost, "/workorders", nil)
	req = withSession(req, session, "tok-1")
	req = req.WithContext(context.WithValue(req.Context(), mw.PreviewContextKey, domain.RoleTechnician))

	actor := actorFromRequest(req)
	if actor.Session.UserID != "usr-1" {
		t.Fatalf("expected actor usr-1, got %s", actor.Session.UserID)
	}
	if actor.Session.Role != domain.RoleAdmin {
		t.Fatalf("expected true role admin, got %s", actor.Session.Role)
	}
	if actor.PreviewedRole != domain.RoleTechnician {
		t.Fatalf("expected previewed role technician, got %s", actor.PreviewedRole)
	}
}

// auditRepoStub captures audit entries written by handlers under test.
type auditRepoStub struct {
	entries []*domain.AuditLog
}

func (s *auditRepoStub) Create(ctx context.Context, log *domain.AuditLog) error {
	s.entries = append(s.entries, log)
	return nil
}

func (s *auditRepoStub) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	return s.entries, nil
}

func newTestAudit() (*usecase.AuditRecorder, *auditRepoStub) {
	stub := &auditRepoStub{}
	return usecase.NewAuditRecorder(stub), stub
}

func withSession(r *http.Request, session domain.Session, token string) *http.Request {
	ctx := context.WithValue(r.Context(), mw.SessionContextKey, session)
	ctx = context.WithValue(ctx, mw.SessionTokenContextKey, token)
	return r.WithContext(ctx)
}

func setChiURLParam(r *http.Request, key, value string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, &chi.Context{
		URLParams: chi.RouteParams{
			Keys:   []string{key},
			Values: []string{value},
		},
	}))
}
