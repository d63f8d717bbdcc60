package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/coolvent/fieldops/internal/domain"
	"github.com/coolvent/fieldops/internal/usecase"
)

// PurchaseOrderRepository implements purchase order persistence
type PurchaseOrderRepository struct {
	pool *pgxpool.Pool
}

// NewPurchaseOrderRepository creates a new purchase order repository
func NewPurchaseOrderRepository(pool *pgxpool.Pool) *PurchaseOrderRepository {
	return &PurchaseOrderRepository{pool: pool}
}

type poLineRow struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
	UnitCost string `json:"unit_cost"`
}

const purchaseOrderColumns = `id, supplier, lines, status, received_at, created_at, updated_at`

// Create inserts a new purchase order
func (r *PurchaseOrderRepository) Create(ctx context.Context, po *domain.PurchaseOrder) error {
	lines, err := marshalPOLines(po.Lines)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO purchase_orders (` + purchaseOrderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = r.pool.Exec(ctx, query,
		po.ID,
		po.Supplier,
		lines,
		po.Status,
		po.ReceivedAt,
		po.CreatedAt,
		po.UpdatedAt,
	)

	return err
}

// GetByID retrieves a purchase order by ID
func (r *PurchaseOrderRepository) GetByID(ctx context.Context, id string) (*domain.PurchaseOrder, error) {
	query := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders WHERE id = $1`

	po, err := scanPurchaseOrder(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPurchaseOrderNotFound
	}
	return po, err
}

// GetByIDForUpdate retrieves a purchase order inside a transaction with a
// row lock, so concurrent receives serialize on the order row.
func (r *PurchaseOrderRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.PurchaseOrder, error) {
	pgxTx, err := unwrapTx(tx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders WHERE id = $1 FOR UPDATE`

	po, err := scanPurchaseOrder(pgxTx.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPurchaseOrderNotFound
	}
	return po, err
}

// Update updates a purchase order
func (r *PurchaseOrderRepository) Update(ctx context.Context, po *domain.PurchaseOrder) error {
	return r.update(ctx, r.pool, po)
}

// UpdateTx updates a purchase order inside a transaction
func (r *PurchaseOrderRepository) UpdateTx(ctx context.Context, tx usecase.Transaction, po *domain.PurchaseOrder) error {
	pgxTx, err := unwrapTx(tx)
	if err != nil {
		return err
	}
	return r.update(ctx, pgxTx, po)
}

// execer is the common Exec surface of a pool and a transaction.
type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

func (r *PurchaseOrderRepository) update(ctx context.Context, db execer, po *domain.PurchaseOrder) error {
	lines, err := marshalPOLines(po.Lines)
	if err != nil {
		return err
	}

	query := `
		UPDATE purchase_orders
		SET supplier = $2, lines = $3, status = $4, received_at = $5, updated_at = $6
		WHERE id = $1
	`

	_, err = db.Exec(ctx, query,
		po.ID,
		po.Supplier,
		lines,
		po.Status,
		po.ReceivedAt,
		po.UpdatedAt,
	)

	return err
}

// List retrieves all purchase orders with pagination
func (r *PurchaseOrderRepository) List(ctx context.Context, limit, offset int) ([]*domain.PurchaseOrder, error) {
	query := `
		SELECT ` + purchaseOrderColumns + `
		FROM purchase_orders
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	return r.queryMany(ctx, query, limit, offset)
}

// ListByStatus retrieves purchase orders in one status with pagination
func (r *PurchaseOrderRepository) ListByStatus(ctx context.Context, status domain.PurchaseOrderStatus, limit, offset int) ([]*domain.PurchaseOrder, error) {
	query := `
		SELECT ` + purchaseOrderColumns + `
		FROM purchase_orders
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	return r.queryMany(ctx, query, status, limit, offset)
}

func (r *PurchaseOrderRepository) queryMany(ctx context.Context, query string, args ...any) ([]*domain.PurchaseOrder, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*domain.PurchaseOrder
	for rows.Next() {
		po, err := scanPurchaseOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, po)
	}

	return orders, rows.Err()
}

func scanPurchaseOrder(row pgx.Row) (*domain.PurchaseOrder, error) {
	var po domain.PurchaseOrder
	var lines []byte

	err := row.Scan(
		&po.ID,
		&po.Supplier,
		&lines,
		&po.Status,
		&po.ReceivedAt,
		&po.CreatedAt,
		&po.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	po.Lines, err = unmarshalPOLines(lines)
	if err != nil {
		return nil, err
	}

	return &po, nil
}

func marshalPOLines(lines []domain.PurchaseOrderLine) ([]byte, error) {
	rows := make([]poLineRow, len(lines))
	for i, line := range lines {
		rows[i] = poLineRow{
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
			UnitCost: line.UnitCost.String(),
		}
	}
	return json.Marshal(rows)
}

func unmarshalPOLines(data []byte) ([]domain.PurchaseOrderLine, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var rows []poLineRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}

	lines := make([]domain.PurchaseOrderLine, len(rows))
	for i, row := range rows {
		unitCost, err := decimal.NewFromString(row.UnitCost)
		if err != nil {
			return nil, err
		}
		lines[i] = domain.PurchaseOrderLine{
			ItemID:   row.ItemID,
			Quantity: row.Quantity,
			UnitCost: unitCost,
		}
	}

	return lines, nil
}
