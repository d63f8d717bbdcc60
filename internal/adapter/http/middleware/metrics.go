package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/coolvent/fieldops/internal/infrastructure/metrics"
)

// MetricsMiddleware records HTTP request metrics.
type MetricsMiddleware struct {
	metrics *metrics.Metrics
}

// NewMetricsMiddleware creates a new MetricsMiddleware.
func NewMetricsMiddleware(m *metrics.Metrics) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: m}
}

// Wrap wraps an http.Handler with request metrics.
func (m *MetricsMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Wrap response writer to capture status code
		wrapped := &metricsRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		path := normalizePath(r.URL.Path)

		m.metrics.HTTPRequests.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
		m.metrics.HTTPDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

type metricsRecorder struct {
	http.ResponseWriter

	statusCode int
}

func (r *metricsRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

// resourcePrefixes are collection routes whose per-entity segment is
// collapsed to :id to keep label cardinality bounded.
var resourcePrefixes = []string{
	"/api/v1/users/",
	"/api/v1/customers/",
	"/api/v1/workorders/",
	"/api/v1/invoices/",
	"/api/v1/inventory/items/",
	"/api/v1/purchase-orders/",
}

// normalizePath normalizes URL paths to avoid high cardinality.
// /api/v1/workorders/01ABC123/assign -> /api/v1/workorders/:id/assign
func normalizePath(path string) string {
	for _, prefix := range resourcePrefixes {
		if !strings.HasPrefix(path, prefix) || len(path) == len(prefix) {
			continue
		}

		rest := path[len(prefix):]
		if idx := strings.IndexByte(rest, '/'); idx >= 0 {
			return prefix + ":id" + rest[idx:]
		}
		return prefix + ":id"
	}

	return path
}
