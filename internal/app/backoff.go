package app

import (
	"math/rand"
	"time"
)

// Default backoff bounds for transports reporting Busy.
const (
	DefaultBusyBackoffInitial = 500 * time.Microsecond
	DefaultBusyBackoffMax     = 20 * time.Millisecond
)

// backoff implements exponential backoff with jitter for Busy retries.
// The bounds are small: a live video sender would rather drop freshness
// than sleep long.
type backoff struct {
	initial time.Duration
	max     time.Duration
	current time.Duration
}

// newBackoff creates a new backoff with the given initial and max durations.
func newBackoff(initial, max time.Duration) *backoff {
	return &backoff{
		initial: initial,
		max:     max,
		current: initial,
	}
}

// Wait sleeps for the current backoff duration and increases it.
// Returns false immediately if stop is closed before or during the wait.
func (b *backoff) Wait(stop <-chan struct{}) bool {
	// Jitter: ±20%
	jitter := float64(b.current) * 0.2 * (rand.Float64()*2 - 1)
	sleep := time.Duration(float64(b.current) + jitter)

	t := time.NewTimer(sleep)
	defer t.Stop()

	select {
	case <-stop:
		return false
	case <-t.C:
	}

	b.current *= 2
	if b.current > b.max {
		b.current = b.max
	}
	return true
}

// Reset resets the backoff to the initial duration.
func (b *backoff) Reset() {
	b.current = b.initial
}
