package engine

import (
	"sync/atomic"
	"time"
)

// TimeProvider abstracts the wall clock so schedulers can be driven by tests
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider provides the real system time with monotonic clock readings
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates a new monotonic time provider
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}

// ManualTimeProvider is a time source that only moves when told to
// Used by tests and fixed-step drivers; safe for concurrent use
type ManualTimeProvider struct {
	base   time.Time
	offset atomic.Int64 // nanoseconds since base
}

// NewManualTimeProvider creates a provider reading start until advanced
func NewManualTimeProvider(start time.Time) *ManualTimeProvider {
	return &ManualTimeProvider{base: start}
}

// Now returns the current manual time
func (m *ManualTimeProvider) Now() time.Time {
	return m.base.Add(time.Duration(m.offset.Load()))
}

// SetTime jumps to t, which may be before the current time
func (m *ManualTimeProvider) SetTime(t time.Time) {
	m.offset.Store(int64(t.Sub(m.base)))
}

// Advance moves the time forward by d
func (m *ManualTimeProvider) Advance(d time.Duration) {
	m.offset.Add(int64(d))
}
