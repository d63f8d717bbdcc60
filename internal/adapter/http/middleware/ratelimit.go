package middleware

import (
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"github.com/coolvent/fieldops/internal/infrastructure/metrics"
)

// RateLimiter enforces a per-client token bucket. The router applies
// RealIP first, so RemoteAddr already holds the client address.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
	metrics  *metrics.Metrics
}

// NewRateLimiter creates a limiter allowing rps requests per second with
// the given burst per client.
func NewRateLimiter(rps float64, burst int, m *metrics.Metrics) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(rps),
		burst:    burst,
		metrics:  m,
	}
}

func (rl *RateLimiter) limiterFor(client string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	l, ok := rl.limiters[client]
	if !ok {
		l = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters[client] = l
	}
	return l
}

// Limit rejects clients that exhausted their bucket with 429.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := r.RemoteAddr

		if !rl.limiterFor(client).Allow() {
			if rl.metrics != nil {
				rl.metrics.RateLimitHits.WithLabelValues(client).Inc()
			}
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Reset drops all client buckets. Called periodically so the map does not
// grow without bound.
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.limiters = make(map[string]*rate.Limiter)
}
