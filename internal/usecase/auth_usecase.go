package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/coolvent/fieldops/internal/domain"
)

// Authenticator verifies an identity/credential pair.
type Authenticator interface {
	Authenticate(ctx context.Context, input AuthenticateInput) (*domain.User, error)
}

// UserCreator creates users in the identity backend.
type UserCreator interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error)
}

// AuthUseCase is the session provider: it establishes, restores and destroys
// sessions, and gates user creation on the caller's role.
type AuthUseCase struct {
	users    Authenticator
	creator  UserCreator
	sessions SessionStore
	tokens   TokenManager

	// loginGroup collapses concurrent logins for the same identity AND
	// credential so retries can never interleave their session writes. A
	// different credential is its own attempt and must fail on its own.
	loginGroup singleflight.Group
}

// loginKey fingerprints an attempt so only identical identity/credential
// pairs share a flight. The raw credential never becomes a map key.
func loginKey(email, password string) string {
	sum := sha256.Sum256([]byte(email + "\x00" + password))
	return hex.EncodeToString(sum[:])
}

// NewAuthUseCase creates a new auth use case.
func NewAuthUseCase(users Authenticator, creator UserCreator, sessions SessionStore, tokens TokenManager) *AuthUseCase {
	return &AuthUseCase{
		users:    users,
		creator:  creator,
		sessions: sessions,
		tokens:   tokens,
	}
}

// LoginResult carries the established session and its bearer token.
type LoginResult struct {
	Session domain.Session
	User    *domain.User
	Token   string
}

// Login validates the identity/credential pair, establishes a session and
// persists it. Unknown identity and wrong credential surface identically as
// ErrInvalidCredentials.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	v, err, _ := uc.loginGroup.Do(loginKey(email, password), func() (any, error) {
		return uc.doLogin(ctx, email, password)
	})
	if err != nil {
		return nil, err
	}
	return v.(*LoginResult), nil
}

func (uc *AuthUseCase) doLogin(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := uc.users.Authenticate(ctx, AuthenticateInput{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	session := domain.Session{
		IsAuthenticated: true,
		UserID:          user.ID,
		Username:        user.Email,
		Role:            user.Role,
	}

	sessionToken := uuid.NewString()
	if err := uc.sessions.Save(ctx, sessionToken, session, SessionTTL); err != nil {
		return nil, err
	}

	bearer, err := uc.tokens.Generate(sessionToken, user)
	if err != nil {
		// Roll the orphaned session back; a failed login leaves no state.
		_ = uc.sessions.Delete(ctx, sessionToken)
		return nil, err
	}

	return &LoginResult{Session: session, User: user, Token: bearer}, nil
}

// Logout destroys the persisted session. Logging out twice is not an error.
func (uc *AuthUseCase) Logout(ctx context.Context, bearer string) error {
	sessionToken, err := uc.tokens.Verify(bearer)
	if err != nil {
		// An unverifiable token has no session to destroy.
		return nil
	}
	return uc.sessions.Delete(ctx, sessionToken)
}

// RestoreSession resolves a bearer token back to its persisted session.
// A missing, expired or unreadable session yields the anonymous session,
// never an error.
func (uc *AuthUseCase) RestoreSession(ctx context.Context, bearer string) (domain.Session, string) {
	sessionToken, err := uc.tokens.Verify(bearer)
	if err != nil {
		return domain.AnonymousSession(), ""
	}

	session, err := uc.sessions.Get(ctx, sessionToken)
	if err != nil {
		return domain.AnonymousSession(), ""
	}
	if !session.Valid() {
		return domain.AnonymousSession(), ""
	}
	return session, sessionToken
}

// AddUser creates a user on behalf of the caller. The capability check runs
// locally before anything touches the backend; the database re-enforces its
// own constraints and remains the authoritative boundary.
func (uc *AuthUseCase) AddUser(ctx context.Context, caller domain.Session, input CreateUserInput) (*domain.User, error) {
	if !caller.IsAuthenticated {
		return nil, domain.ErrUnauthorized
	}
	if !caller.Role.CanManageUsers() {
		return nil, domain.ErrRoleNotAllowed
	}

	return uc.creator.CreateUser(ctx, input)
}
