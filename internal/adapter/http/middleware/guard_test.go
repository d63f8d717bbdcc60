package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/coolvent/fieldops/internal/adapter/http/dto"
	"github.com/coolvent/fieldops/internal/domain"
)

type previewStub struct {
	role domain.Role
}

func (s *previewStub) Active(ctx context.Context, session domain.Session, sessionToken string) domain.Role {
	return s.role
}

func guardRoutes() *domain.RouteTable {
	return domain.NewRouteTable("/login", []domain.RouteRule{
		{Prefix: "/api/v1/invoices", AllowedRoles: []domain.Role{domain.RoleAdmin, domain.RoleManager, domain.RoleSales}},
		{Prefix: "/api/v1/dispatch", AllowedRoles: []domain.Role{domain.RoleAdmin, domain.RoleManager}},
	})
}

func runGuard(t *testing.T, g *Guard, session domain.Session, path string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	ctx := context.WithValue(req.Context(), SessionContextKey, session)
	ctx = context.WithValue(ctx, SessionTokenContextKey, "sess-1")
	req = req.WithContext(ctx)

	rr := httptest.NewRecorder()
	reached := false
	g.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	})).ServeHTTP(rr, req)

	return rr, reached
}

func TestGuardRedirectsAnonymousWithoutRoleLeak(t *testing.T) {
	g := NewGuard(guardRoutes(), &previewStub{}, nil)

	rr, reached := runGuard(t, g, domain.AnonymousSession(), "/api/v1/invoices")

	if reached {
		t.Fatalf("handler should not run for anonymous caller")
	}
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}

	var resp dto.GuardDeniedResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.RedirectTo != "/login" {
		t.Fatalf("expected redirect to /login, got %s", resp.RedirectTo)
	}
	if len(resp.AllowedRoles) != 0 {
		t.Fatalf("anonymous caller must not learn required roles, got %v", resp.AllowedRoles)
	}
	if strings.Contains(rr.Body.String(), "sales") {
		t.Fatalf("role names leaked to anonymous caller: %s", rr.Body.String())
	}
}

func TestGuardDeniesDisallowedRoleWithAllowedSet(t *testing.T) {
	g := NewGuard(guardRoutes(), &previewStub{}, nil)
	session := domain.Session{IsAuthenticated: true, UserID: "user-1", Role: domain.RoleTechnician}

	rr, reached := runGuard(t, g, session, "/api/v1/invoices")

	if reached {
		t.Fatalf("handler should not run for disallowed role")
	}
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rr.Code)
	}

	var resp dto.GuardDeniedResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.AllowedRoles) != 3 {
		t.Fatalf("expected the route's allowed-role set, got %v", resp.AllowedRoles)
	}
}

func TestGuardAllowsPermittedRole(t *testing.T) {
	g := NewGuard(guardRoutes(), &previewStub{}, nil)
	session := domain.Session{IsAuthenticated: true, UserID: "user-1", Role: domain.RoleSales}

	rr, reached := runGuard(t, g, session, "/api/v1/invoices")

	if !reached {
		t.Fatalf("expected handler to run, got status %d", rr.Code)
	}
}

func TestGuardPreviewNarrowsAdminVisibility(t *testing.T) {
	// An admin previewing csr loses routes csr cannot see, even though
	// true authority is unchanged.
	g := NewGuard(guardRoutes(), &previewStub{role: domain.RoleCSR}, nil)
	session := domain.Session{IsAuthenticated: true, UserID: "admin-1", Role: domain.RoleAdmin}

	rr, reached := runGuard(t, g, session, "/api/v1/dispatch")

	if reached {
		t.Fatalf("previewing admin should be denied routes the previewed role cannot see")
	}
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rr.Code)
	}
}

func TestGuardPreviewCannotEscalateNonAdmin(t *testing.T) {
	// A non-admin with a stray override never gains admin visibility.
	g := NewGuard(guardRoutes(), &previewStub{role: domain.RoleAdmin}, nil)
	session := domain.Session{IsAuthenticated: true, UserID: "user-1", Role: domain.RoleTechnician}

	rr, reached := runGuard(t, g, session, "/api/v1/dispatch")

	if reached {
		t.Fatalf("override must not escalate a technician to dispatch")
	}
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rr.Code)
	}
}

func TestGuardAllowsUnlistedPathForAuthenticated(t *testing.T) {
	g := NewGuard(guardRoutes(), &previewStub{}, nil)
	session := domain.Session{IsAuthenticated: true, UserID: "user-1", Role: domain.RoleCustomer}

	rr, reached := runGuard(t, g, session, "/api/v1/my/profile")

	if !reached {
		t.Fatalf("expected unlisted path to require authentication only, got %d", rr.Code)
	}
}

func TestGuardExposesPreviewToHandlers(t *testing.T) {
	g := NewGuard(guardRoutes(), &previewStub{role: domain.RoleSales}, nil)
	session := domain.Session{IsAuthenticated: true, UserID: "admin-1", Role: domain.RoleAdmin}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices", nil)
	ctx := context.WithValue(req.Context(), SessionContextKey, session)
	ctx = context.WithValue(ctx, SessionTokenContextKey, "sess-1")
	req = req.WithContext(ctx)

	rr := httptest.NewRecorder()
	g.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := PreviewFromContext(r.Context()); got != domain.RoleSales {
			t.Fatalf("expected sales preview in context, got %s", got)
		}
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}
