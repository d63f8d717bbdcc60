package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coolvent/fieldops/internal/domain"
)

// CustomerRepository implements customer persistence
type CustomerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

// Create inserts a new customer
func (r *CustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	query := `
		INSERT INTO customers (id, name, email, phone, service_address, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		customer.ID,
		customer.Name,
		customer.Email,
		customer.Phone,
		customer.ServiceAddress,
		customer.Notes,
		customer.CreatedAt,
		customer.UpdatedAt,
	)

	return err
}

// GetByID retrieves a customer by ID
func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	query := `
		SELECT id, name, email, phone, service_address, notes, created_at, updated_at
		FROM customers
		WHERE id = $1
	`

	var customer domain.Customer
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&customer.ID,
		&customer.Name,
		&customer.Email,
		&customer.Phone,
		&customer.ServiceAddress,
		&customer.Notes,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCustomerNotFound
	}
	if err != nil {
		return nil, err
	}

	return &customer, nil
}

// Update updates a customer
func (r *CustomerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	query := `
		UPDATE customers
		SET name = $2, email = $3, phone = $4, service_address = $5, notes = $6, updated_at = $7
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query,
		customer.ID,
		customer.Name,
		customer.Email,
		customer.Phone,
		customer.ServiceAddress,
		customer.Notes,
		customer.UpdatedAt,
	)

	return err
}

// Delete deletes a customer
func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM customers WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

// List retrieves all customers with pagination
func (r *CustomerRepository) List(ctx context.Context, limit, offset int) ([]*domain.Customer, error) {
	query := `
		SELECT id, name, email, phone, service_address, notes, created_at, updated_at
		FROM customers
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCustomers(rows)
}

// SearchByName retrieves customers whose name matches the query
func (r *CustomerRepository) SearchByName(ctx context.Context, q string, limit, offset int) ([]*domain.Customer, error) {
	query := `
		SELECT id, name, email, phone, service_address, notes, created_at, updated_at
		FROM customers
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY name
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCustomers(rows)
}

func scanCustomers(rows pgx.Rows) ([]*domain.Customer, error) {
	var customers []*domain.Customer
	for rows.Next() {
		var customer domain.Customer
		err := rows.Scan(
			&customer.ID,
			&customer.Name,
			&customer.Email,
			&customer.Phone,
			&customer.ServiceAddress,
			&customer.Notes,
			&customer.CreatedAt,
			&customer.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		customers = append(customers, &customer)
	}

	return customers, rows.Err()
}
