package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/coolvent/fieldops/internal/domain"
)

// InvoiceRepository implements invoice persistence
type InvoiceRepository struct {
	pool *pgxpool.Pool
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(pool *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{pool: pool}
}

// lineItemRow is the JSONB wire form of a line item. Amounts travel as
// strings to keep decimal precision.
type lineItemRow struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
}

const invoiceColumns = `id, number, work_order_id, customer_id, line_items,
	subtotal, tax_rate, total, status, issued_at, paid_at, created_at, updated_at`

// Create inserts a new invoice
func (r *InvoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) error {
	lineItems, err := marshalLineItems(invoice.LineItems)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err = r.pool.Exec(ctx, query,
		invoice.ID,
		invoice.Number,
		invoice.WorkOrderID,
		invoice.CustomerID,
		lineItems,
		decimalToNumeric(invoice.Subtotal),
		decimalToNumeric(invoice.TaxRate),
		decimalToNumeric(invoice.Total),
		invoice.Status,
		invoice.IssuedAt,
		invoice.PaidAt,
		invoice.CreatedAt,
		invoice.UpdatedAt,
	)

	return err
}

// GetByID retrieves an invoice by ID
func (r *InvoiceRepository) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`

	invoice, err := scanInvoice(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrInvoiceNotFound
	}
	return invoice, err
}

// Update updates an invoice
func (r *InvoiceRepository) Update(ctx context.Context, invoice *domain.Invoice) error {
	lineItems, err := marshalLineItems(invoice.LineItems)
	if err != nil {
		return err
	}

	query := `
		UPDATE invoices
		SET line_items = $2, subtotal = $3, tax_rate = $4, total = $5,
		    status = $6, issued_at = $7, paid_at = $8, updated_at = $9
		WHERE id = $1
	`

	_, err = r.pool.Exec(ctx, query,
		invoice.ID,
		lineItems,
		decimalToNumeric(invoice.Subtotal),
		decimalToNumeric(invoice.TaxRate),
		decimalToNumeric(invoice.Total),
		invoice.Status,
		invoice.IssuedAt,
		invoice.PaidAt,
		invoice.UpdatedAt,
	)

	return err
}

// List retrieves all invoices with pagination
func (r *InvoiceRepository) List(ctx context.Context, limit, offset int) ([]*domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	return r.queryMany(ctx, query, limit, offset)
}

// ListByCustomer retrieves invoices for one customer
func (r *InvoiceRepository) ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE customer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	return r.queryMany(ctx, query, customerID, limit, offset)
}

// NextNumber allocates the next invoice number from a sequence.
func (r *InvoiceRepository) NextNumber(ctx context.Context) (string, error) {
	var seq int64
	if err := r.pool.QueryRow(ctx, `SELECT nextval('invoice_number_seq')`).Scan(&seq); err != nil {
		return "", err
	}
	return fmt.Sprintf("INV-%06d", seq), nil
}

// SumOutstanding sums totals of issued, unpaid invoices.
func (r *InvoiceRepository) SumOutstanding(ctx context.Context) (string, error) {
	query := `SELECT COALESCE(SUM(total), 0) FROM invoices WHERE status = 'issued'`

	var total pgtype.Numeric
	if err := r.pool.QueryRow(ctx, query).Scan(&total); err != nil {
		return "", err
	}
	return numericToDecimal(total).StringFixed(2), nil
}

func (r *InvoiceRepository) queryMany(ctx context.Context, query string, args ...any) ([]*domain.Invoice, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []*domain.Invoice
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, invoice)
	}

	return invoices, rows.Err()
}

func scanInvoice(row pgx.Row) (*domain.Invoice, error) {
	var invoice domain.Invoice
	var lineItems []byte
	var subtotal, taxRate, total pgtype.Numeric

	err := row.Scan(
		&invoice.ID,
		&invoice.Number,
		&invoice.WorkOrderID,
		&invoice.CustomerID,
		&lineItems,
		&subtotal,
		&taxRate,
		&total,
		&invoice.Status,
		&invoice.IssuedAt,
		&invoice.PaidAt,
		&invoice.CreatedAt,
		&invoice.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	invoice.Subtotal = numericToDecimal(subtotal)
	invoice.TaxRate = numericToDecimal(taxRate)
	invoice.Total = numericToDecimal(total)

	invoice.LineItems, err = unmarshalLineItems(lineItems)
	if err != nil {
		return nil, err
	}

	return &invoice, nil
}

func marshalLineItems(lines []domain.LineItem) ([]byte, error) {
	rows := make([]lineItemRow, len(lines))
	for i, line := range lines {
		rows[i] = lineItemRow{
			Description: line.Description,
			Quantity:    line.Quantity.String(),
			UnitPrice:   line.UnitPrice.String(),
		}
	}
	return json.Marshal(rows)
}

func unmarshalLineItems(data []byte) ([]domain.LineItem, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var rows []lineItemRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}

	lines := make([]domain.LineItem, len(rows))
	for i, row := range rows {
		quantity, err := decimal.NewFromString(row.Quantity)
		if err != nil {
			return nil, err
		}
		unitPrice, err := decimal.NewFromString(row.UnitPrice)
		if err != nil {
			return nil, err
		}
		lines[i] = domain.LineItem{
			Description: row.Description,
			Quantity:    quantity,
			UnitPrice:   unitPrice,
		}
	}

	return lines, nil
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}
