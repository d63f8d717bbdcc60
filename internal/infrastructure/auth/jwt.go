package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/coolvent/fieldops/internal/domain"
)

// Claims represents the JWT claims. SessionToken points at the server-side
// session record, which stays authoritative: a verified JWT whose session
// was deleted is still logged out.
type Claims struct {
	SessionToken string      `json:"session_token"`
	UserID       string      `json:"user_id"`
	Email        string      `json:"email"`
	Role         domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// JWTManager manages JWT token creation and validation
type JWTManager struct {
	secretKey     []byte
	tokenDuration time.Duration
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(secretKey string, tokenDuration time.Duration) *JWTManager {
	return &JWTManager{
		secretKey:     []byte(secretKey),
		tokenDuration: tokenDuration,
	}
}

// Generate generates a bearer token wrapping a session token.
func (m *JWTManager) Generate(sessionToken string, user *domain.User) (string, error) {
	claims := Claims{
		SessionToken: sessionToken,
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}

// Verify verifies a bearer token and returns the embedded session token.
func (m *JWTManager) Verify(bearer string) (string, error) {
	claims, err := m.parse(bearer)
	if err != nil {
		return "", err
	}
	if claims.SessionToken == "" {
		return "", domain.ErrInvalidToken
	}
	return claims.SessionToken, nil
}

// Parse verifies a bearer token and returns all claims.
func (m *JWTManager) Parse(bearer string) (*Claims, error) {
	return m.parse(bearer)
}

func (m *JWTManager) parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			// Validate signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secretKey, nil
		},
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrExpiredToken
		}
		return nil, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, domain.ErrInvalidToken
	}

	// Check expiration
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return nil, domain.ErrExpiredToken
	}

	return claims, nil
}
