package rate_test

import (
	"context"
	"testing"
	"time"

	"github.com/robalyx/modcase/internal/discord/rate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiterSpacesRequests(t *testing.T) {
	t.Parallel()

	limiter := rate.New(40*time.Millisecond, 0)
	start := time.Now()

	for range 3 {
		require.NoError(t, limiter.Wait(t.Context()))
	}

	// The first slot is immediate, the next two wait one interval each
	assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
}

func TestLimiterJitterStaysInRange(t *testing.T) {
	t.Parallel()

	limiter := rate.New(20*time.Millisecond, 10*time.Millisecond)
	start := time.Now()

	for range 3 {
		require.NoError(t, limiter.Wait(t.Context()))
	}

	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestLimiterHonoursContext(t *testing.T) {
	t.Parallel()

	limiter := rate.New(time.Hour, 0)
	require.NoError(t, limiter.Wait(t.Context()))

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	require.ErrorIs(t, limiter.Wait(ctx), context.Canceled)
}

func TestLimiterCancelledWaiterReleasesSlot(t *testing.T) {
	t.Parallel()

	limiter := rate.New(200*time.Millisecond, 0)
	require.NoError(t, limiter.Wait(t.Context()))

	ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, limiter.Wait(ctx), context.DeadlineExceeded)

	// The cancelled waiter took no slot, so the next caller only waits out
	// the first interval instead of two
	start := time.Now()
	require.NoError(t, limiter.Wait(t.Context()))
	assert.Less(t, time.Since(start), 300*time.Millisecond)
}
