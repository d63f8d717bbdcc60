package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/coolvent/fieldops/internal/adapter/http/dto"
	"github.com/coolvent/fieldops/internal/domain"
	"github.com/coolvent/fieldops/internal/usecase"
)

type authServiceStub struct {
	loginFn  func(ctx context.Context, email, password string) (*usecase.LoginResult, error)
	logoutFn func(ctx context.Context, bearer string) error
}

func (s *authServiceStub) Login(ctx context.Context, email, password string) (*usecase.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *authServiceStub) Logout(ctx context.Context, bearer string) error {
	return s.logoutFn(ctx, bearer)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	user := &domain.User{ID: "usr-1", Email: "dispatch@coolvent.test", Role: domain.RoleManager, Active: true}
	session := domain.Session{IsAuthenticated: true, UserID: "usr-1", Username: "dispatch@coolvent.test", Role: domain.RoleManager}

	var gotEmail, gotPassword string
	handler := NewAuthHandler(&authServiceStub{
		loginFn: func(ctx context.Context, email, password string) (*usecase.LoginResult, error) {
			gotEmail, gotPassword = email, password
			return &usecase.LoginResult{Session: session, User: user, Token: "bearer-1"}, nil
		},
		logoutFn: func(ctx context.Context, bearer string) error { return nil },
	})

	body, _ := json.Marshal(dto.LoginRequest{Email: "dispatch@coolvent.test", Password: "hunter22"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotEmail != "dispatch@coolvent.test" || gotPassword != "hunter22" {
		t.Fatalf("expected credentials forwarded, got %s/%s", gotEmail, gotPassword)
	}

	var resp dto.LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Token != "bearer-1" {
		t.Fatalf("expected token bearer-1, got %s", resp.Token)
	}
	if !resp.Session.IsAuthenticated || resp.Session.Role != domain.RoleManager {
		t.Fatalf("expected authenticated manager session, got %+v", resp.Session)
	}
}

func TestAuthHandler_Login_InvalidJSON(t *testing.T) {
	handler := NewAuthHandler(&authServiceStub{
		loginFn: func(ctx context.Context, email, password string) (*usecase.LoginResult, error) {
			t.Fatal("Login should not be called for invalid payload")
			return nil, nil
		},
		logoutFn: func(ctx context.Context, bearer string) error { return nil },
	})

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString("{invalid json"))
	rec := httptest.NewRecorder()

	handler.Login(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_BadCredentialsDoNotLeakDetail(t *testing.T) {
	handler := NewAuthHandler(&authServiceStub{
		loginFn: func(ctx context.Context, email, password string) (*usecase.LoginResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
		logoutFn: func(ctx context.Context, bearer string) error { return nil },
	})

	body, _ := json.Marshal(dto.LoginRequest{Email: "nobody@coolvent.test", Password: "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "nobody") || strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("response must not say which part of the credentials failed: %s", rec.Body.String())
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	var gotBearer string
	handler := NewAuthHandler(&authServiceStub{
		loginFn: func(ctx context.Context, email, password string) (*usecase.LoginResult, error) { return nil, nil },
		logoutFn: func(ctx context.Context, bearer string) error {
			gotBearer = bearer
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer tok-77")
	rec := httptest.NewRecorder()

	handler.Logout(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotBearer != "tok-77" {
		t.Fatalf("expected bearer tok-77, got %q", gotBearer)
	}

	var resp dto.SessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.IsAuthenticated || resp.Role != "" {
		t.Fatalf("expected anonymous session after logout, got %+v", resp)
	}
}

func TestAuthHandler_Session_Anonymous(t *testing.T) {
	handler := NewAuthHandler(&authServiceStub{
		loginFn:  func(ctx context.Context, email, password string) (*usecase.LoginResult, error) { return nil, nil },
		logoutFn: func(ctx context.Context, bearer string) error { return nil },
	})

	req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
	rec := httptest.NewRecorder()

	handler.Session(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for anonymous session, got %d", rec.Code)
	}

	var resp dto.SessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.IsAuthenticated {
		t.Fatalf("expected anonymous session, got %+v", resp)
	}
}

func TestAuthHandler_Session_Restored(t *testing.T) {
	handler := NewAuthHandler(&authServiceStub{
		loginFn:  func(ctx context.Context, email, password string) (*usecase.LoginResult, error) { return nil, nil },
		logoutFn: func(ctx context.Context, bearer string) error { return nil },
	})

	session := domain.Session{IsAuthenticated: true, UserID: "usr-2", Username: "tech@coolvent.test", Role: domain.RoleTechnician}
	req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
	req = withSession(req, session, "tok-2")
	rec := httptest.NewRecorder()

	handler.Session(rec, req)

	var resp dto.SessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.IsAuthenticated || resp.Role != domain.RoleTechnician {
		t.Fatalf("expected technician session, got %+v", resp)
	}
}

func TestRawBearer(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
	if got := rawBearer(req); got != "" {
		t.Fatalf("expected empty bearer without header, got %q", got)
	}

	req.Header.Set("Authorization", "bearer tok-9")
	if got := rawBearer(req); got != "tok-9" {
		t.Fatalf("expected case-insensitive scheme, got %q", got)
	}

	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	if got := rawBearer(req); got != "" {
		t.Fatalf("expected empty bearer for non-bearer scheme, got %q", got)
	}
}
