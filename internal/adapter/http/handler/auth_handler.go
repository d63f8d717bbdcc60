package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/coolvent/fieldops/internal/adapter/http/dto"
	mw "github.com/coolvent/fieldops/internal/adapter/http/middleware"
	"github.com/coolvent/fieldops/internal/domain"
	"github.com/coolvent/fieldops/internal/usecase"
)

// AuthService is the authentication surface the handler depends on.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*usecase.LoginResult, error)
	Logout(ctx context.Context, bearer string) error
}

// AuthHandler handles login, logout and session restoration endpoints.
type AuthHandler struct {
	authUC AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authUC AuthService) *AuthHandler {
	return &AuthHandler{authUC: authUC}
}

// Login validates credentials and establishes a session. Unknown identity
// and wrong credential produce the same response.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.authUC.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		// Never echo which part of the credential pair failed.
		writeError(w, mapDomainError(err), "login failed", "")
		return
	}

	writeJSON(w, http.StatusOK, dto.LoginResponse{
		Token:   result.Token,
		Session: dto.SessionFromDomain(result.Session),
		User:    dto.UserFromDomain(result.User),
	})
}

// Logout destroys the caller's session. Logging out without a session is
// not an error.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authUC.Logout(r.Context(), rawBearer(r)); err != nil {
		writeError(w, http.StatusInternalServerError, "logout failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SessionFromDomain(domain.AnonymousSession()))
}

// Session returns the restored session for the caller's token. Anonymous
// callers get the anonymous session, never an error.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.SessionFromDomain(mw.SessionFromContext(r.Context())))
}

// rawBearer returns the bearer token from the Authorization header, or "".
func rawBearer(r *http.Request) string {
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
