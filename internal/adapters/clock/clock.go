// Package clock provides ports.Clock implementations: the system
// monotonic clock for real runs and a manually stepped clock for tests.
package clock

import "time"

// System reads the system monotonic clock.
type System struct{}

// Now returns the current instant.
func (System) Now() time.Time { return time.Now() }

// Manual is a clock that only moves when told to. Tests use it to make
// rate arithmetic deterministic.
type Manual struct {
	now time.Time
}

// NewManual creates a manual clock positioned at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the clock's current position.
func (m *Manual) Now() time.Time { return m.now }

// Advance moves the clock forward by d.
func (m *Manual) Advance(d time.Duration) {
	m.now = m.now.Add(d)
}
