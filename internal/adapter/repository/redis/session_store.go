package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/coolvent/fieldops/internal/domain"
)

// SessionStore implements usecase.SessionStore using Redis. Sessions are
// stored as JSON under a per-token key; a missing or unreadable value is
// reported as domain.ErrSessionNotFound, never as a hard failure.
type SessionStore struct {
	client *redis.Client
	prefix string
}

// NewSessionStore creates a new SessionStore.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{
		client: client,
		prefix: "session:",
	}
}

// Save persists a session under its token with the given TTL.
func (s *SessionStore) Save(ctx context.Context, token string, session domain.Session, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.prefix+token, data, ttl).Err()
}

// Get retrieves the session for a token. A missing key or a value that does
// not decode yields the anonymous session with ErrSessionNotFound.
func (s *SessionStore) Get(ctx context.Context, token string) (domain.Session, error) {
	data, err := s.client.Get(ctx, s.prefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.AnonymousSession(), domain.ErrSessionNotFound
	}
	if err != nil {
		return domain.AnonymousSession(), err
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return domain.AnonymousSession(), domain.ErrSessionNotFound
	}

	return session, nil
}

// Delete removes a session. Deleting an absent session is not an error.
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, s.prefix+token).Err()
}
