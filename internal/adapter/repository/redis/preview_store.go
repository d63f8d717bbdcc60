package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/coolvent/fieldops/internal/domain"
)

// PreviewStore implements usecase.PreviewStore using Redis. Overrides expire
// on their own TTL so a stale preview can never outlive its session for long.
type PreviewStore struct {
	client *redis.Client
	prefix string
}

// NewPreviewStore creates a new PreviewStore.
func NewPreviewStore(client *redis.Client) *PreviewStore {
	return &PreviewStore{
		client: client,
		prefix: "preview:",
	}
}

// Set stores the previewed role for a session token.
func (s *PreviewStore) Set(ctx context.Context, token string, role domain.Role, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+token, string(role), ttl).Err()
}

// Get returns the previewed role for a session token, or "" when no preview
// is active.
func (s *PreviewStore) Get(ctx context.Context, token string) (domain.Role, error) {
	value, err := s.client.Get(ctx, s.prefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return domain.Role(value), nil
}

// Clear removes the preview for a session token. Clearing an absent preview
// is not an error.
func (s *PreviewStore) Clear(ctx context.Context, token string) error {
	return s.client.Del(ctx, s.prefix+token).Err()
}
