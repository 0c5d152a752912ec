package dbretry_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/robalyx/modcase/internal/database/dbretry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errBusy  = errors.New("sqlite: database is locked (5) (SQLITE_BUSY)")
	errGuard = errors.New("invalid case transition")
)

func TestIsRetryableError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "sqlite busy", err: errBusy, want: true},
		{name: "wrapped busy", err: fmt.Errorf("insert case: %w", errBusy), want: true},
		{name: "connection refused", err: errors.New("dial tcp: connection refused"), want: true},
		{name: "guard error", err: errGuard, want: false},
		{name: "canceled", err: context.Canceled, want: false},
		{name: "deadline", err: context.DeadlineExceeded, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, dbretry.IsRetryableError(tt.err))
		})
	}
}

func TestOperation(t *testing.T) {
	t.Parallel()

	t.Run("succeeds after transient failures", func(t *testing.T) {
		t.Parallel()

		calls := 0
		result, err := dbretry.Operation(t.Context(), func(context.Context) (int, error) {
			calls++
			if calls < 3 {
				return 0, errBusy
			}
			return 42, nil
		})

		require.NoError(t, err)
		assert.Equal(t, 42, result)
		assert.Equal(t, 3, calls)
	})

	t.Run("permanent error is returned unwrapped", func(t *testing.T) {
		t.Parallel()

		calls := 0
		_, err := dbretry.Operation(t.Context(), func(context.Context) (string, error) {
			calls++
			return "", errGuard
		})

		require.ErrorIs(t, err, errGuard)
		assert.Equal(t, errGuard, err)
		assert.Equal(t, 1, calls)
	})
}

func TestNoResultExhaustsRetries(t *testing.T) {
	t.Parallel()

	calls := 0
	err := dbretry.NoResult(t.Context(), func(context.Context) error {
		calls++
		return errBusy
	})

	require.ErrorIs(t, err, errBusy)
	assert.Contains(t, err.Error(), "failed after retries")
	assert.Equal(t, 6, calls) // Initial + 5 retries
}
