package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coolvent/fieldops/internal/domain"
	"github.com/coolvent/fieldops/internal/usecase"
)

// ItemRepository implements inventory item persistence
type ItemRepository struct {
	pool *pgxpool.Pool
}

// NewItemRepository creates a new item repository
func NewItemRepository(pool *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{pool: pool}
}

const itemColumns = `id, sku, name, description, quantity_on_hand, reorder_point,
	unit_cost, created_at, updated_at`

// Create inserts a new item
func (r *ItemRepository) Create(ctx context.Context, item *domain.Item) error {
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		item.ID,
		item.SKU,
		item.Name,
		item.Description,
		item.QuantityOnHand,
		item.ReorderPoint,
		decimalToNumeric(item.UnitCost),
		item.CreatedAt,
		item.UpdatedAt,
	)

	return err
}

// GetByID retrieves an item by ID
func (r *ItemRepository) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`

	item, err := scanItem(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrItemNotFound
	}
	return item, err
}

// GetBySKU retrieves an item by SKU
func (r *ItemRepository) GetBySKU(ctx context.Context, sku string) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE sku = $1`

	item, err := scanItem(r.pool.QueryRow(ctx, query, sku))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil // absence is the answer here, not an error
	}
	return item, err
}

// GetByIDForUpdate retrieves an item inside a transaction with a row lock
func (r *ItemRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Item, error) {
	pgxTx, err := unwrapTx(tx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 FOR UPDATE`

	item, err := scanItem(pgxTx.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrItemNotFound
	}
	return item, err
}

// Update updates an item
func (r *ItemRepository) Update(ctx context.Context, item *domain.Item) error {
	query := `
		UPDATE items
		SET name = $2, description = $3, quantity_on_hand = $4, reorder_point = $5,
		    unit_cost = $6, updated_at = $7
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query,
		item.ID,
		item.Name,
		item.Description,
		item.QuantityOnHand,
		item.ReorderPoint,
		decimalToNumeric(item.UnitCost),
		item.UpdatedAt,
	)

	return err
}

// UpdateQuantity sets an item's stock level inside a transaction
func (r *ItemRepository) UpdateQuantity(ctx context.Context, tx usecase.Transaction, id string, quantity int, updatedAt time.Time) error {
	pgxTx, err := unwrapTx(tx)
	if err != nil {
		return err
	}

	query := `UPDATE items SET quantity_on_hand = $2, updated_at = $3 WHERE id = $1`

	tag, err := pgxTx.Exec(ctx, query, id, quantity, updatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// List retrieves all items with pagination
func (r *ItemRepository) List(ctx context.Context, limit, offset int) ([]*domain.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		ORDER BY sku
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanItems(rows)
}

// ListBelowReorderPoint retrieves items at or below their reorder point
func (r *ItemRepository) ListBelowReorderPoint(ctx context.Context) ([]*domain.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE quantity_on_hand <= reorder_point
		ORDER BY sku
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanItems(rows)
}

func scanItem(row pgx.Row) (*domain.Item, error) {
	var item domain.Item
	var unitCost pgtype.Numeric

	err := row.Scan(
		&item.ID,
		&item.SKU,
		&item.Name,
		&item.Description,
		&item.QuantityOnHand,
		&item.ReorderPoint,
		&unitCost,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.UnitCost = numericToDecimal(unitCost)
	return &item, nil
}

func scanItems(rows pgx.Rows) ([]*domain.Item, error) {
	var items []*domain.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// unwrapTx extracts the pgx transaction from a usecase.Transaction.
func unwrapTx(tx usecase.Transaction) (pgx.Tx, error) {
	wrapped, ok := tx.(*Tx)
	if !ok {
		return nil, errors.New("transaction is not a postgres transaction")
	}
	return wrapped.PgxTx(), nil
}
