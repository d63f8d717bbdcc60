package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/coolvent/fieldops/internal/domain"
)

// ContextKey is the type for context keys
type ContextKey string

const (
	// SessionContextKey is the context key for the restored session.
	SessionContextKey ContextKey = "session"

	// SessionTokenContextKey is the context key for the session token.
	SessionTokenContextKey ContextKey = "session_token"

	// PreviewContextKey is the context key for the active preview override.
	PreviewContextKey ContextKey = "preview_role"
)

// SessionRestorer resolves a bearer token back to its persisted session.
type SessionRestorer interface {
	RestoreSession(ctx context.Context, bearer string) (domain.Session, string)
}

// SessionMiddleware restores the session for every request. Requests without
// a usable token proceed as anonymous; the route guard decides what that
// session may reach.
type SessionMiddleware struct {
	auth SessionRestorer
}

// NewSessionMiddleware creates a new SessionMiddleware.
func NewSessionMiddleware(auth SessionRestorer) *SessionMiddleware {
	return &SessionMiddleware{auth: auth}
}

// Wrap wraps an http.Handler with session restoration.
func (m *SessionMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := domain.AnonymousSession()
		token := ""

		if bearer := bearerToken(r); bearer != "" {
			session, token = m.auth.RestoreSession(r.Context(), bearer)
		}

		ctx := context.WithValue(r.Context(), SessionContextKey, session)
		ctx = context.WithValue(ctx, SessionTokenContextKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken extracts the bearer token from the Authorization header.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// SessionFromContext extracts the restored session from context. Absence
// reads as the anonymous session.
func SessionFromContext(ctx context.Context) domain.Session {
	session, ok := ctx.Value(SessionContextKey).(domain.Session)
	if !ok {
		return domain.AnonymousSession()
	}
	return session
}

// SessionTokenFromContext extracts the session token from context.
func SessionTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(SessionTokenContextKey).(string)
	return token
}

// PreviewFromContext extracts the active preview override from context, or
// "" when no preview is in effect.
func PreviewFromContext(ctx context.Context) domain.Role {
	role, _ := ctx.Value(PreviewContextKey).(domain.Role)
	return role
}
