package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/coolvent/fieldops/internal/adapter/http/handler"
	"github.com/coolvent/fieldops/internal/adapter/http/middleware"
	"github.com/coolvent/fieldops/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AuthHandler          *handler.AuthHandler
	UserHandler          *handler.UserHandler
	CustomerHandler      *handler.CustomerHandler
	WorkOrderHandler     *handler.WorkOrderHandler
	InvoiceHandler       *handler.InvoiceHandler
	InventoryHandler     *handler.InventoryHandler
	PurchaseOrderHandler *handler.PurchaseOrderHandler
	PreviewHandler       *handler.PreviewHandler
	DashboardHandler     *handler.DashboardHandler
	AuditHandler         *handler.AuditHandler
	HealthHandler        *handler.HealthHandler

	Sessions         *middleware.SessionMiddleware
	Guard            *middleware.Guard
	Logging          *middleware.LoggingMiddleware
	Metrics          *middleware.MetricsMiddleware
	RateLimiter      *middleware.RateLimiter
	IdempotencyStore usecase.IdempotencyStore
}

// NewRouter creates a new HTTP router. Every request under /api/v1 passes
// session restoration first; everything past login is then gated by the
// route guard, so authentication is always decided before authorization.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	if cfg.Logging != nil {
		r.Use(cfg.Logging.Wrap)
	}
	r.Use(middleware.Recovery)
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Wrap)
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and telemetry endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Login is the only route reachable without a session.
		r.Post("/auth/login", cfg.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			if cfg.Sessions != nil {
				r.Use(cfg.Sessions.Wrap)
			}

			// Session endpoints answer for anonymous callers too, so they
			// sit outside the guard.
			r.Post("/auth/logout", cfg.AuthHandler.Logout)
			r.Get("/auth/session", cfg.AuthHandler.Session)

			r.Group(func(r chi.Router) {
				if cfg.Guard != nil {
					r.Use(cfg.Guard.Wrap)
				}

				// Deduplication only applies to requests the guard has
				// already admitted, keyed per caller inside the store.
				if cfg.IdempotencyStore != nil {
					idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
					r.Use(idempotencyMiddleware.Wrap)
				}

				r.Get("/dashboard", cfg.DashboardHandler.Get)

				// Customer self-service home
				r.Route("/my", func(r chi.Router) {
					r.Get("/", cfg.DashboardHandler.Get)
				})

				// Role preview
				r.Route("/preview", func(r chi.Router) {
					r.Post("/", cfg.PreviewHandler.Set)
					r.Delete("/", cfg.PreviewHandler.Clear)
					r.Get("/", cfg.PreviewHandler.Get)
				})

				// Users
				r.Route("/users", func(r chi.Router) {
					r.Post("/", cfg.UserHandler.Create)
					r.Get("/", cfg.UserHandler.List)
					r.Get("/technicians", cfg.UserHandler.ListTechnicians)
					r.Get("/{id}", cfg.UserHandler.Get)
					r.Put("/{id}", cfg.UserHandler.Update)
				})

				// Customers
				r.Route("/customers", func(r chi.Router) {
					r.Post("/", cfg.CustomerHandler.Create)
					r.Get("/", cfg.CustomerHandler.List)
					r.Get("/{id}", cfg.CustomerHandler.Get)
					r.Put("/{id}", cfg.CustomerHandler.Update)
					r.Delete("/{id}", cfg.CustomerHandler.Delete)
				})

				// Work orders
				r.Route("/workorders", func(r chi.Router) {
					r.Post("/", cfg.WorkOrderHandler.Create)
					r.Get("/", cfg.WorkOrderHandler.List)
					r.Get("/{id}", cfg.WorkOrderHandler.Get)
					r.Post("/{id}/start", cfg.WorkOrderHandler.Start)
					r.Post("/{id}/complete", cfg.WorkOrderHandler.Complete)
					r.Post("/{id}/cancel", cfg.WorkOrderHandler.Cancel)
				})

				// Dispatch carries its own, tighter allowed-role set.
				r.Post("/dispatch/{id}/assign", cfg.WorkOrderHandler.Assign)

				// Invoices
				r.Route("/invoices", func(r chi.Router) {
					r.Post("/", cfg.InvoiceHandler.Create)
					r.Get("/", cfg.InvoiceHandler.List)
					r.Get("/{id}", cfg.InvoiceHandler.Get)
					r.Post("/{id}/issue", cfg.InvoiceHandler.Issue)
					r.Post("/{id}/pay", cfg.InvoiceHandler.Pay)
					r.Post("/{id}/void", cfg.InvoiceHandler.Void)
				})

				// Inventory
				r.Route("/inventory/items", func(r chi.Router) {
					r.Post("/", cfg.InventoryHandler.CreateItem)
					r.Get("/", cfg.InventoryHandler.ListItems)
					r.Get("/low-stock", cfg.InventoryHandler.ListLowStock)
					r.Get("/{id}", cfg.InventoryHandler.GetItem)
					r.Post("/{id}/adjust", cfg.InventoryHandler.AdjustStock)
				})

				// Purchase orders
				r.Route("/purchase-orders", func(r chi.Router) {
					r.Post("/", cfg.PurchaseOrderHandler.Create)
					r.Get("/", cfg.PurchaseOrderHandler.List)
					r.Get("/{id}", cfg.PurchaseOrderHandler.Get)
					r.Post("/{id}/submit", cfg.PurchaseOrderHandler.Submit)
					r.Post("/{id}/cancel", cfg.PurchaseOrderHandler.Cancel)
					r.Post("/{id}/receive", cfg.PurchaseOrderHandler.Receive)
				})

				// Audit trail
				r.Get("/audit", cfg.AuditHandler.List)
			})
		})
	})

	return r
}
