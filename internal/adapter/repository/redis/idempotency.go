package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	idempotencyKeyPrefix = "fieldops:idem:"

	// pendingMarker reserves a key while the first request is still in
	// flight. Replays that race the original see the marker and get an
	// empty replay body rather than running the mutation twice.
	pendingMarker = "pending"
)

// IdempotencyStore deduplicates retried mutating requests through Redis.
type IdempotencyStore struct {
	client *redis.Client
}

// NewIdempotencyStore creates a new IdempotencyStore.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

// CheckAndSet reports whether the key has been seen. A nil response
// reserves the key for the caller; a non-nil response stores it directly.
// When the key already exists, the stored response is returned.
func (s *IdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	fullKey := idempotencyKeyPrefix + key

	value := pendingMarker
	if response != nil {
		value = string(response)
	}

	reserved, err := s.client.SetNX(ctx, fullKey, value, ttl).Result()
	if err != nil {
		return false, nil, err
	}
	if reserved {
		return false, nil, nil
	}

	stored, err := s.client.Get(ctx, fullKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// Expired between SetNX and Get; treat as unseen.
			return false, nil, nil
		}
		return false, nil, err
	}
	if string(stored) == pendingMarker {
		return true, nil, nil
	}
	return true, stored, nil
}

// Update replaces a reserved key with the final response.
func (s *IdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return s.client.Set(ctx, idempotencyKeyPrefix+key, response, ttl).Err()
}
