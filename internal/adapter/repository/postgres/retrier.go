package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Deadlocks and serialization failures are safe to re-run; everything else
// propagates immediately.
const (
	pgErrDeadlock             = "40P01"
	pgErrSerializationFailure = "40001"
)

// Retrier re-runs transactional operations that lost a lock race, with
// exponential backoff. Used around purchase-order receiving, where two
// receivers can contend on the same item rows.
type Retrier struct {
	maxRetries      int
	initialInterval time.Duration
	maxInterval     time.Duration
	maxElapsedTime  time.Duration
	logger          zerolog.Logger
}

// NewRetrier creates a Retrier with default settings.
func NewRetrier() *Retrier {
	return &Retrier{
		maxRetries:      3,
		initialInterval: 50 * time.Millisecond,
		maxInterval:     time.Second,
		maxElapsedTime:  10 * time.Second,
		logger:          log.Logger,
	}
}

// Retry runs operation, re-running it on retryable postgres errors until
// the retry budget is spent.
func (r *Retrier) Retry(ctx context.Context, operation func() error) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = r.initialInterval
	policy.MaxInterval = r.maxInterval
	policy.MaxElapsedTime = r.maxElapsedTime

	attempt := 0

	return backoff.Retry(func() error {
		err := operation()
		switch {
		case err == nil:
			return nil
		case !isRetryableError(err):
			return backoff.Permanent(err)
		}

		attempt++
		if attempt > r.maxRetries {
			return backoff.Permanent(err)
		}

		r.logger.Warn().Err(err).Int("attempt", attempt).Msg("retrying after lock conflict")
		return err
	}, backoff.WithContext(policy, ctx))
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgErrDeadlock || pgErr.Code == pgErrSerializationFailure
}
