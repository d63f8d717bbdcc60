package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	httpAdapter "github.com/coolvent/fieldops/internal/adapter/http"
	"github.com/coolvent/fieldops/internal/adapter/http/handler"
	"github.com/coolvent/fieldops/internal/adapter/http/middleware"
	postgresRepo "github.com/coolvent/fieldops/internal/adapter/repository/postgres"
	redisRepo "github.com/coolvent/fieldops/internal/adapter/repository/redis"
	"github.com/coolvent/fieldops/internal/domain"
	"github.com/coolvent/fieldops/internal/infrastructure/auth"
	"github.com/coolvent/fieldops/internal/infrastructure/config"
	"github.com/coolvent/fieldops/internal/infrastructure/logger"
	"github.com/coolvent/fieldops/internal/infrastructure/metrics"
	"github.com/coolvent/fieldops/internal/infrastructure/postgres"
	"github.com/coolvent/fieldops/internal/infrastructure/redis"
	"github.com/coolvent/fieldops/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	taxRate, err := decimal.NewFromString(cfg.TaxRate)
	if err != nil {
		log.Fatal().Err(err).Str("tax_rate", cfg.TaxRate).Msg("invalid tax rate")
	}

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories and stores
	txManager := postgresRepo.NewTxManager(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	customerRepo := postgresRepo.NewCustomerRepository(pool)
	workOrderRepo := postgresRepo.NewWorkOrderRepository(pool)
	invoiceRepo := postgresRepo.NewInvoiceRepository(pool)
	itemRepo := postgresRepo.NewItemRepository(pool)
	poRepo := postgresRepo.NewPurchaseOrderRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	retrier := postgresRepo.NewRetrier()
	idGen := postgresRepo.NewULIDGenerator()

	sessionStore := redisRepo.NewSessionStore(redisClient)
	previewStore := redisRepo.NewPreviewStore(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	cache := redisRepo.NewCache(redisClient)

	tokens := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	routes := newRouteTable(cfg.LoginPath)
	appMetrics := metrics.New()

	// Initialize use cases
	userUC := usecase.NewUserUseCase(userRepo, idGen)
	authUC := usecase.NewAuthUseCase(userUC, userUC, sessionStore, tokens)
	previewUC := usecase.NewPreviewUseCase(previewStore)
	customerUC := usecase.NewCustomerUseCase(customerRepo, idGen)
	workOrderUC := usecase.NewWorkOrderUseCase(workOrderRepo, customerRepo, userRepo, idGen)
	invoiceUC := usecase.NewInvoiceUseCase(invoiceRepo, workOrderRepo, idGen, taxRate)
	inventoryUC := usecase.NewInventoryUseCase(itemRepo, poRepo, txManager, retrier, idGen)
	dashboardUC := usecase.NewDashboardUseCase(routes, workOrderRepo, itemRepo, invoiceRepo, cache)
	audit := usecase.NewAuditRecorder(auditRepo)

	// Create router
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, appMetrics)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AuthHandler:          handler.NewAuthHandler(authUC),
		UserHandler:          handler.NewUserHandler(authUC, userUC, audit),
		CustomerHandler:      handler.NewCustomerHandler(customerUC, audit),
		WorkOrderHandler:     handler.NewWorkOrderHandler(workOrderUC, audit),
		InvoiceHandler:       handler.NewInvoiceHandler(invoiceUC, audit),
		InventoryHandler:     handler.NewInventoryHandler(inventoryUC, audit),
		PurchaseOrderHandler: handler.NewPurchaseOrderHandler(inventoryUC, audit),
		PreviewHandler:       handler.NewPreviewHandler(previewUC, audit),
		DashboardHandler:     handler.NewDashboardHandler(dashboardUC),
		AuditHandler:         handler.NewAuditHandler(audit),
		HealthHandler:        handler.NewHealthHandler(pool, redisClient),

		Sessions:         middleware.NewSessionMiddleware(authUC),
		Guard:            middleware.NewGuard(routes, previewUC, appMetrics),
		Logging:          middleware.NewLoggingMiddleware(appLogger),
		Metrics:          middleware.NewMetricsMiddleware(appMetrics),
		RateLimiter:      rateLimiter,
		IdempotencyStore: idempotencyStore,
	})

	// Drop idle rate-limit buckets hourly.
	limiterTicker := time.NewTicker(time.Hour)
	defer limiterTicker.Stop()
	go func() {
		for range limiterTicker.C {
			rateLimiter.Reset()
		}
	}()

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// newRouteTable declares which roles may reach each route prefix. Longest
// prefix wins; routes absent from the table require authentication only.
func newRouteTable(loginPath string) *domain.RouteTable {
	return domain.NewRouteTable(loginPath, []domain.RouteRule{
		{Prefix: "/api/v1/users", AllowedRoles: []domain.Role{domain.RoleAdmin, domain.RoleManager, domain.RoleHR}},
		{Prefix: "/api/v1/customers", AllowedRoles: []domain.Role{domain.RoleAdmin, domain.RoleManager, domain.RoleCSR, domain.RoleSales}},
		{Prefix: "/api/v1/workorders", AllowedRoles: []domain.Role{domain.RoleAdmin, domain.RoleManager, domain.RoleCSR, domain.RoleTechnician}},
		{Prefix: "/api/v1/dispatch", AllowedRoles: []domain.Role{domain.RoleAdmin, domain.RoleManager}},
		{Prefix: "/api/v1/invoices", AllowedRoles: []domain.Role{domain.RoleAdmin, domain.RoleManager, domain.RoleSales}},
		{Prefix: "/api/v1/inventory", AllowedRoles: []domain.Role{domain.RoleAdmin, domain.RoleManager, domain.RoleTechnician}},
		{Prefix: "/api/v1/purchase-orders", AllowedRoles: []domain.Role{domain.RoleAdmin, domain.RoleManager}},
		{Prefix: "/api/v1/audit", AllowedRoles: []domain.Role{domain.RoleAdmin}},
		{Prefix: "/api/v1/my", AllowedRoles: []domain.Role{domain.RoleCustomer}},
		// Preview stays out of the table: the guard sees the previewed role,
		// and an admin previewing another role must still be able to exit.
		// Admin-only enforcement happens against the true session role.
	})
}
