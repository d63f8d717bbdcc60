package usecase

import (
	"context"
	"encoding/json"

	"github.com/coolvent/fieldops/internal/domain"
)

// NavItem is one navigation entry on the dashboard shell.
type NavItem struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// DashboardStats are the headline counts shown on role dashboards.
type DashboardStats struct {
	PendingWorkOrders    int    `json:"pending_work_orders"`
	ScheduledWorkOrders  int    `json:"scheduled_work_orders"`
	InProgressWorkOrders int    `json:"in_progress_work_orders"`
	LowStockItems        int    `json:"low_stock_items"`
	OutstandingInvoices  string `json:"outstanding_invoices"`
}

// Dashboard is the role-scoped dashboard payload: the navigation the
// effective role may see plus headline stats.
type Dashboard struct {
	Role        domain.Role    `json:"role"`
	DisplayName string         `json:"display_name"`
	Permissions []string       `json:"permissions"`
	Nav         []NavItem      `json:"nav"`
	Stats       DashboardStats `json:"stats"`
}

// navEntries is the full navigation surface; the route table filters it per
// effective role.
var navEntries = []NavItem{
	{Label: "Users", Path: "/api/v1/users"},
	{Label: "Customers", Path: "/api/v1/customers"},
	{Label: "Work Orders", Path: "/api/v1/workorders"},
	{Label: "Dispatch", Path: "/api/v1/dispatch"},
	{Label: "Invoices", Path: "/api/v1/invoices"},
	{Label: "Inventory", Path: "/api/v1/inventory"},
	{Label: "Purchase Orders", Path: "/api/v1/purchase-orders"},
	{Label: "My Account", Path: "/api/v1/my"},
}

// DashboardUseCase assembles the per-role dashboard shell.
type DashboardUseCase struct {
	routes        *domain.RouteTable
	workOrderRepo WorkOrderRepository
	itemRepo      ItemRepository
	invoiceRepo   InvoiceRepository
	cache         Cache
}

// NewDashboardUseCase creates a new dashboard use case
func NewDashboardUseCase(routes *domain.RouteTable, workOrderRepo WorkOrderRepository, itemRepo ItemRepository, invoiceRepo InvoiceRepository, cache Cache) *DashboardUseCase {
	return &DashboardUseCase{
		routes:        routes,
		workOrderRepo: workOrderRepo,
		itemRepo:      itemRepo,
		invoiceRepo:   invoiceRepo,
		cache:         cache,
	}
}

// Build assembles the dashboard for a session's effective role. Navigation
// is whatever the route guard would allow that role to render.
func (uc *DashboardUseCase) Build(ctx context.Context, session domain.Session, overrideRole domain.Role) (*Dashboard, error) {
	effective := session.EffectiveRole(overrideRole)

	nav := make([]NavItem, 0, len(navEntries))
	for _, entry := range navEntries {
		decision := uc.routes.Evaluate(session, overrideRole, entry.Path)
		if decision.Outcome == domain.GuardAllowed {
			nav = append(nav, entry)
		}
	}

	stats, err := uc.stats(ctx)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Role:        effective,
		DisplayName: effective.DisplayName(),
		Permissions: effective.Permissions(),
		Nav:         nav,
		Stats:       *stats,
	}, nil
}

const statsCacheKey = "dashboard:stats"

func (uc *DashboardUseCase) stats(ctx context.Context) (*DashboardStats, error) {
	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, statsCacheKey); err == nil && cached != "" {
			var stats DashboardStats
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				return &stats, nil
			}
		}
	}

	stats := &DashboardStats{}

	var err error
	if stats.PendingWorkOrders, err = uc.workOrderRepo.CountByStatus(ctx, domain.WorkOrderPending); err != nil {
		return nil, err
	}
	if stats.ScheduledWorkOrders, err = uc.workOrderRepo.CountByStatus(ctx, domain.WorkOrderScheduled); err != nil {
		return nil, err
	}
	if stats.InProgressWorkOrders, err = uc.workOrderRepo.CountByStatus(ctx, domain.WorkOrderInProgress); err != nil {
		return nil, err
	}

	low, err := uc.itemRepo.ListBelowReorderPoint(ctx)
	if err != nil {
		return nil, err
	}
	stats.LowStockItems = len(low)

	if stats.OutstandingInvoices, err = uc.invoiceRepo.SumOutstanding(ctx); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if data, err := json.Marshal(stats); err == nil {
			_ = uc.cache.Set(ctx, statsCacheKey, string(data), DashboardCacheTTL)
		}
	}

	return stats, nil
}
