package dbretry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

var (
	maxElapsedTime  = 30 * time.Second
	initialInterval = 200 * time.Millisecond
	maxInterval     = 5 * time.Second
	maxRetries      = uint64(5)
)

// retryablePgCodes are the PostgreSQL SQLSTATE codes worth another attempt.
var retryablePgCodes = map[string]struct{}{ //nolint:gochecknoglobals // -
	"08000": {}, // connection_exception
	"08003": {}, // connection_does_not_exist
	"08006": {}, // connection_failure
	"08001": {}, // sqlclient_unable_to_establish_sqlconnection
	"08004": {}, // sqlserver_rejected_establishment_of_sqlconnection
	"08007": {}, // transaction_resolution_unknown
	"40001": {}, // serialization_failure
	"40P01": {}, // deadlock_detected
	"53000": {}, // insufficient_resources
	"53300": {}, // too_many_connections
	"57P01": {}, // admin_shutdown
	"57P02": {}, // crash_shutdown
	"57P03": {}, // cannot_connect_now
	"55P03": {}, // lock_not_available
}

// IsRetryableError checks if the given error is transient.
// Context cancellation is never retryable since the caller has given up.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var pgerr pgdriver.Error
	if errors.As(err, &pgerr) {
		_, ok := retryablePgCodes[pgerr.Field('C')]
		return ok
	}

	errMsg := err.Error()
	for _, fragment := range []string{
		"database is locked", // SQLITE_BUSY
		"database table is locked",
		"connection reset by peer",
		"broken pipe",
		"connection refused",
		"i/o timeout",
	} {
		if strings.Contains(errMsg, fragment) {
			return true
		}
	}

	return false
}

// Operation wraps a database operation with retry logic.
// Non-retryable errors are returned exactly as the operation produced them
// so callers can still match their own sentinel errors.
func Operation[T any](ctx context.Context, operation func(context.Context) (T, error)) (T, error) {
	var result T

	err := run(ctx, func() error {
		var err error
		result, err = operation(ctx)
		return err
	})

	return result, err
}

// NoResult wraps a database operation that doesn't return a result.
func NoResult(ctx context.Context, operation func(context.Context) error) error {
	return run(ctx, func() error {
		return operation(ctx)
	})
}

// Transaction runs fn inside a transaction, retrying the whole unit on
// transient failures. Any error from fn rolls the transaction back.
func Transaction(ctx context.Context, db *bun.DB, fn func(context.Context, bun.Tx) error) error {
	return NoResult(ctx, func(ctx context.Context) error {
		return db.RunInTx(ctx, nil, fn)
	})
}

func run(ctx context.Context, attempt func() error) error {
	var (
		lastErr   error
		permanent error
	)

	b := backoff.WithMaxRetries(backoff.NewExponentialBackOff(
		backoff.WithMaxElapsedTime(maxElapsedTime),
		backoff.WithInitialInterval(initialInterval),
		backoff.WithMaxInterval(maxInterval),
	), maxRetries)

	err := backoff.Retry(func() error {
		err := attempt()
		if err == nil {
			return nil
		}

		if !IsRetryableError(err) {
			permanent = err
			return backoff.Permanent(err)
		}

		lastErr = err
		return err
	}, backoff.WithContext(b, ctx))
	if err == nil {
		return nil
	}

	switch {
	case permanent != nil:
		return permanent
	case lastErr != nil:
		return fmt.Errorf("database operation failed after retries: %w", lastErr)
	default:
		return fmt.Errorf("database operation failed: %w", err)
	}
}
