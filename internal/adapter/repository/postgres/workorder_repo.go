package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coolvent/fieldops/internal/domain"
)

// WorkOrderRepository implements work order persistence
type WorkOrderRepository struct {
	pool *pgxpool.Pool
}

// NewWorkOrderRepository creates a new work order repository
func NewWorkOrderRepository(pool *pgxpool.Pool) *WorkOrderRepository {
	return &WorkOrderRepository{pool: pool}
}

const workOrderColumns = `id, customer_id, title, description, priority, status,
	assigned_tech_id, scheduled_at, completed_at, created_at, updated_at`

// Create inserts a new work order
func (r *WorkOrderRepository) Create(ctx context.Context, wo *domain.WorkOrder) error {
	query := `
		INSERT INTO work_orders (` + workOrderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		wo.ID,
		wo.CustomerID,
		wo.Title,
		wo.Description,
		wo.Priority,
		wo.Status,
		nullString(wo.AssignedTechID),
		wo.ScheduledAt,
		wo.CompletedAt,
		wo.CreatedAt,
		wo.UpdatedAt,
	)

	return err
}

// GetByID retrieves a work order by ID
func (r *WorkOrderRepository) GetByID(ctx context.Context, id string) (*domain.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM work_orders WHERE id = $1`

	wo, err := scanWorkOrder(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrWorkOrderNotFound
	}
	return wo, err
}

// Update updates a work order
func (r *WorkOrderRepository) Update(ctx context.Context, wo *domain.WorkOrder) error {
	query := `
		UPDATE work_orders
		SET title = $2, description = $3, priority = $4, status = $5,
		    assigned_tech_id = $6, scheduled_at = $7, completed_at = $8, updated_at = $9
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query,
		wo.ID,
		wo.Title,
		wo.Description,
		wo.Priority,
		wo.Status,
		nullString(wo.AssignedTechID),
		wo.ScheduledAt,
		wo.CompletedAt,
		wo.UpdatedAt,
	)

	return err
}

// List retrieves all work orders with pagination
func (r *WorkOrderRepository) List(ctx context.Context, limit, offset int) ([]*domain.WorkOrder, error) {
	query := `
		SELECT ` + workOrderColumns + `
		FROM work_orders
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	return r.queryMany(ctx, query, limit, offset)
}

// ListByStatus retrieves work orders in one status with pagination
func (r *WorkOrderRepository) ListByStatus(ctx context.Context, status domain.WorkOrderStatus, limit, offset int) ([]*domain.WorkOrder, error) {
	query := `
		SELECT ` + workOrderColumns + `
		FROM work_orders
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	return r.queryMany(ctx, query, status, limit, offset)
}

// ListByTechnician retrieves work orders assigned to one technician
func (r *WorkOrderRepository) ListByTechnician(ctx context.Context, techID string, limit, offset int) ([]*domain.WorkOrder, error) {
	query := `
		SELECT ` + workOrderColumns + `
		FROM work_orders
		WHERE assigned_tech_id = $1
		ORDER BY scheduled_at NULLS LAST, created_at DESC
		LIMIT $2 OFFSET $3
	`

	return r.queryMany(ctx, query, techID, limit, offset)
}

// ListByCustomer retrieves work orders for one customer
func (r *WorkOrderRepository) ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*domain.WorkOrder, error) {
	query := `
		SELECT ` + workOrderColumns + `
		FROM work_orders
		WHERE customer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	return r.queryMany(ctx, query, customerID, limit, offset)
}

// CountByStatus counts work orders in one status
func (r *WorkOrderRepository) CountByStatus(ctx context.Context, status domain.WorkOrderStatus) (int, error) {
	query := `SELECT COUNT(*) FROM work_orders WHERE status = $1`

	var count int
	err := r.pool.QueryRow(ctx, query, status).Scan(&count)
	return count, err
}

func (r *WorkOrderRepository) queryMany(ctx context.Context, query string, args ...any) ([]*domain.WorkOrder, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*domain.WorkOrder
	for rows.Next() {
		wo, err := scanWorkOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, wo)
	}

	return orders, rows.Err()
}

func scanWorkOrder(row pgx.Row) (*domain.WorkOrder, error) {
	var wo domain.WorkOrder
	var assignedTechID *string

	err := row.Scan(
		&wo.ID,
		&wo.CustomerID,
		&wo.Title,
		&wo.Description,
		&wo.Priority,
		&wo.Status,
		&assignedTechID,
		&wo.ScheduledAt,
		&wo.CompletedAt,
		&wo.CreatedAt,
		&wo.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if assignedTechID != nil {
		wo.AssignedTechID = *assignedTechID
	}

	return &wo, nil
}

// nullString maps "" to NULL for nullable foreign keys.
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
