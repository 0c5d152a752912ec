// Package rate paces outgoing Discord requests.
package rate

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"
)

// Limiter spaces requests at least interval apart, plus or minus a random jitter.
// A slot is only taken by a caller that proceeds, so a cancelled waiter
// never pushes back the callers behind it.
type Limiter struct {
	mu       sync.Mutex
	next     time.Time
	interval time.Duration
	jitter   time.Duration
}

// New creates a limiter. For example interval=1s and jitter=200ms spaces
// requests 800ms to 1200ms apart.
func New(interval, jitter time.Duration) *Limiter {
	return &Limiter{
		interval: interval,
		jitter:   min(jitter, interval),
	}
}

// Wait blocks until a slot is free or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		wait, ok := l.take()
		if ok {
			return nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
}

// take claims the next slot if it has been reached, otherwise it returns
// how long until the slot opens. Waiters woken together race for the slot
// and the losers wait again.
func (l *Limiter) take() (time.Duration, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if now.Before(l.next) {
		return l.next.Sub(now), false
	}

	l.next = now.Add(l.spacing())
	return 0, true
}

// spacing returns the gap to leave after the current slot.
func (l *Limiter) spacing() time.Duration {
	if l.jitter <= 0 {
		return l.interval
	}
	return l.interval - l.jitter + rand.N(2*l.jitter) //nolint:gosec // jitter needs no crypto
}
