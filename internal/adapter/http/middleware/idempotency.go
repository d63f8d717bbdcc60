package middleware

import (
	"bytes"
	"net/http"
	"strings"
	"time"

	"github.com/coolvent/fieldops/internal/usecase"
)

const (
	// IdempotencyKeyHeader is the header carrying the client's dedup key.
	IdempotencyKeyHeader = "Idempotency-Key"

	idempotencyTTL = 24 * time.Hour
)

// IdempotencyMiddleware deduplicates retried mutations. A double-submitted
// invoice payment or a re-sent purchase-order receive replays the stored
// response instead of running twice.
type IdempotencyMiddleware struct {
	store usecase.IdempotencyStore
}

// NewIdempotencyMiddleware creates a new IdempotencyMiddleware.
func NewIdempotencyMiddleware(store usecase.IdempotencyStore) *IdempotencyMiddleware {
	return &IdempotencyMiddleware{store: store}
}

func mutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

// storageKey binds the client's key to the caller and the exact operation,
// so one caller's cached response can never be replayed to another caller
// or against another route.
func storageKey(userID, method, path, clientKey string) string {
	return strings.Join([]string{userID, method, path, clientKey}, "\x1f")
}

// Wrap applies idempotency checking to keyed mutating requests. It runs
// behind session restoration and the guard, so only requests the guard
// already admitted are deduplicated.
func (m *IdempotencyMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientKey := r.Header.Get(IdempotencyKeyHeader)
		if clientKey == "" || !mutating(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		session := SessionFromContext(r.Context())
		key := storageKey(session.UserID, r.Method, r.URL.Path, clientKey)

		seen, replay, err := m.store.CheckAndSet(r.Context(), key, nil, idempotencyTTL)
		if err != nil {
			http.Error(w, "idempotency check failed", http.StatusInternalServerError)
			return
		}
		if seen {
			if replay == nil {
				// Original request still in flight.
				http.Error(w, "request already in progress", http.StatusConflict)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Idempotency-Replay", "true")
			w.Write(replay)
			return
		}

		buf := &bodyCapture{ResponseWriter: w, body: &bytes.Buffer{}, status: http.StatusOK}
		next.ServeHTTP(buf, r)

		if buf.status >= 200 && buf.status < 300 {
			m.store.Update(r.Context(), key, buf.body.Bytes(), idempotencyTTL)
		}
	})
}

type bodyCapture struct {
	http.ResponseWriter
	status int
	body   *bytes.Buffer
}

func (c *bodyCapture) Write(b []byte) (int, error) {
	c.body.Write(b)
	return c.ResponseWriter.Write(b)
}

func (c *bodyCapture) WriteHeader(status int) {
	c.status = status
	c.ResponseWriter.WriteHeader(status)
}
