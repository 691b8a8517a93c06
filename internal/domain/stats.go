package domain

import "sync/atomic"

// Stats holds monotonic counters for a sender instance. All counters are
// updated atomically; Snapshot returns a consistent-enough copy for
// reporting (individual counters are exact, cross-counter skew is
// possible and acceptable).
type Stats struct {
	Submitted       atomic.Uint64
	Sent            atomic.Uint64
	Cancelled       atomic.Uint64
	Evicted         atomic.Uint64
	TransportErrors atomic.Uint64
	PoolRejections  atomic.Uint64
	FragmentsSent   atomic.Uint64
	BytesSent       atomic.Uint64
}

// StatsSnapshot is a plain-value copy of Stats.
type StatsSnapshot struct {
	Submitted       uint64
	Sent            uint64
	Cancelled       uint64
	Evicted         uint64
	TransportErrors uint64
	PoolRejections  uint64
	FragmentsSent   uint64
	BytesSent       uint64
}

// Snapshot returns the current counter values.
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Submitted:       s.Submitted.Load(),
		Sent:            s.Sent.Load(),
		Cancelled:       s.Cancelled.Load(),
		Evicted:         s.Evicted.Load(),
		TransportErrors: s.TransportErrors.Load(),
		PoolRejections:  s.PoolRejections.Load(),
		FragmentsSent:   s.FragmentsSent.Load(),
		BytesSent:       s.BytesSent.Load(),
	}
}
