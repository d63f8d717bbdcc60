package redis

import (
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
)

// newTestRedisClient spins up an in-process redis and a client against it.
// Callers close both; miniredis is returned so tests can fast-forward TTLs.
func newTestRedisClient(t *testing.T) (*redislib.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	return redislib.NewClient(&redislib.Options{Addr: mr.Addr()}), mr
}
