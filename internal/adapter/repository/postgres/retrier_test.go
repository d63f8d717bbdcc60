package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

func newFastRetrier() *Retrier {
	r := NewRetrier()
	r.initialInterval = time.Millisecond
	r.maxInterval = 2 * time.Millisecond
	r.maxElapsedTime = 50 * time.Millisecond
	return r
}

func TestRetrierRecoversFromDeadlock(t *testing.T) {
	r := newFastRetrier()

	attempts := 0
	err := r.Retry(context.Background(), func() error {
		attempts++
		if attempts == 1 {
			return &pgconn.PgError{Code: pgErrDeadlock}
		}
		return nil
	})

	if err != nil {
		t.Fatalf("expected recovery after deadlock, got %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
}

func TestRetrierGivesUpAfterBudget(t *testing.T) {
	r := newFastRetrier()
	r.maxRetries = 2

	attempts := 0
	err := r.Retry(context.Background(), func() error {
		attempts++
		return &pgconn.PgError{Code: pgErrSerializationFailure}
	})

	if err == nil {
		t.Fatal("expected error once the retry budget is spent")
	}
	if attempts != 3 {
		t.Fatalf("expected initial try plus 2 retries, got %d attempts", attempts)
	}
}

func TestRetrierDoesNotRetryOrdinaryErrors(t *testing.T) {
	r := newFastRetrier()

	attempts := 0
	boom := errors.New("constraint violated")
	err := r.Retry(context.Background(), func() error {
		attempts++
		return boom
	})

	if !errors.Is(err, boom) {
		t.Fatalf("expected original error, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("expected a single attempt, got %d", attempts)
	}
}

func TestIsRetryableError(t *testing.T) {
	if !isRetryableError(&pgconn.PgError{Code: pgErrDeadlock}) {
		t.Fatal("deadlock should be retryable")
	}
	if !isRetryableError(&pgconn.PgError{Code: pgErrSerializationFailure}) {
		t.Fatal("serialization failure should be retryable")
	}
	if isRetryableError(&pgconn.PgError{Code: "23505"}) {
		t.Fatal("unique violation should not be retryable")
	}
	if isRetryableError(errors.New("plain")) {
		t.Fatal("plain error should not be retryable")
	}
}
