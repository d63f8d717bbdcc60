package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coolvent/fieldops/internal/usecase"
)

type txBeginner interface {
	Begin(context.Context) (pgx.Tx, error)
}

// TxManager starts transactions for multi-statement operations such as
// receiving a purchase order, which locks item rows and updates the order
// in one unit.
type TxManager struct {
	pool txBeginner
}

// NewTxManager creates a new TxManager.
func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return newTxManagerWithPool(pool)
}

func newTxManagerWithPool(pool txBeginner) *TxManager {
	return &TxManager{pool: pool}
}

// Begin starts a new transaction.
func (m *TxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx}, nil
}

// Tx adapts a pgx transaction to usecase.Transaction.
type Tx struct {
	tx pgx.Tx
}

func (t *Tx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *Tx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// PgxTx exposes the underlying pgx.Tx for repository methods that run
// inside the transaction.
func (t *Tx) PgxTx() pgx.Tx {
	return t.tx
}
