package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Work order metrics
	WorkOrdersCreated    prometheus.Counter
	WorkOrdersDispatched prometheus.Counter
	WorkOrdersCompleted  prometheus.Counter
	WorkOrderTransitions *prometheus.CounterVec

	// Invoice metrics
	InvoicesIssued prometheus.Counter
	InvoicesPaid   prometheus.Counter
	InvoiceAmount  prometheus.Histogram

	// Inventory metrics
	StockAdjustments       *prometheus.CounterVec
	PurchaseOrdersReceived prometheus.Counter
	LowStockItems          prometheus.Gauge

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBDuration    *prometheus.HistogramVec
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisErrors     *prometheus.CounterVec

	// Authentication metrics
	AuthAttempts   *prometheus.CounterVec
	AuthFailures   *prometheus.CounterVec
	ActiveSessions prometheus.Gauge

	// Guard metrics
	GuardDecisions *prometheus.CounterVec
	ActivePreviews prometheus.Gauge

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec

	// Audit metrics
	AuditLogsCreated *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Work order metrics
		WorkOrdersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fieldops_work_orders_created_total",
			Help: "Total number of work orders opened",
		}),
		WorkOrdersDispatched: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fieldops_work_orders_dispatched_total",
			Help: "Total number of work orders dispatched to technicians",
		}),
		WorkOrdersCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fieldops_work_orders_completed_total",
			Help: "Total number of work orders completed",
		}),
		WorkOrderTransitions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fieldops_work_order_transitions_total",
				Help: "Total work order status transitions",
			},
			[]string{"from", "to"},
		),

		// Invoice metrics
		InvoicesIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fieldops_invoices_issued_total",
			Help: "Total number of invoices issued",
		}),
		InvoicesPaid: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fieldops_invoices_paid_total",
			Help: "Total number of invoices paid",
		}),
		InvoiceAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "fieldops_invoice_amount",
			Help:    "Invoice totals",
			Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000},
		}),

		// Inventory metrics
		StockAdjustments: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fieldops_stock_adjustments_total",
				Help: "Total stock adjustments by direction",
			},
			[]string{"direction"},
		),
		PurchaseOrdersReceived: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fieldops_purchase_orders_received_total",
			Help: "Total number of purchase orders received",
		}),
		LowStockItems: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "fieldops_low_stock_items",
			Help: "Current number of items at or below their reorder point",
		}),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fieldops_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fieldops_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Database metrics
		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fieldops_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation", "table"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fieldops_db_query_duration_seconds",
				Help:    "Database query duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "table"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "fieldops_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fieldops_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		// Redis metrics
		RedisOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fieldops_redis_operations_total",
				Help: "Total Redis operations",
			},
			[]string{"operation"},
		),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fieldops_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),

		// Authentication metrics
		AuthAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fieldops_auth_attempts_total",
				Help: "Total authentication attempts",
			},
			[]string{"status"},
		),
		AuthFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fieldops_auth_failures_total",
				Help: "Total authentication failures",
			},
			[]string{"reason"},
		),
		ActiveSessions: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "fieldops_active_sessions",
			Help: "Current number of active sessions",
		}),

		// Guard metrics
		GuardDecisions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fieldops_guard_decisions_total",
				Help: "Total route guard decisions by outcome",
			},
			[]string{"outcome"},
		),
		ActivePreviews: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "fieldops_active_previews",
			Help: "Current number of active role previews",
		}),

		// Rate limiting metrics
		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fieldops_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),

		// Audit metrics
		AuditLogsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fieldops_audit_logs_total",
				Help: "Total audit logs created",
			},
			[]string{"action", "status"},
		),
	}
}
