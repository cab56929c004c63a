// Package stats provides the monotonic success/failure counters shared
// by the counting, loopback and byterate components.
package stats

// Counters tracks how many units (bytes or frames) passed or failed on
// one path. Counts never decrease for the lifetime of a session; adds
// saturate instead of overflowing.
type Counters struct {
	successful uint64
	failed     uint64
}

// Successful returns the number of units that passed.
func (c *Counters) Successful() uint64 { return c.successful }

// Failed returns the number of units that were lost or rejected.
func (c *Counters) Failed() uint64 { return c.failed }

// Total returns the number of units observed.
func (c *Counters) Total() uint64 { return satAdd(c.successful, c.failed) }

// AddSuccessful records n passed units.
func (c *Counters) AddSuccessful(n uint64) {
	c.successful = satAdd(c.successful, n)
}

// AddFailed records n failed units.
func (c *Counters) AddFailed(n uint64) {
	c.failed = satAdd(c.failed, n)
}

// Reset returns the counters to their initial state.
func (c *Counters) Reset() {
	c.successful = 0
	c.failed = 0
}

func satAdd(a, b uint64) uint64 {
	if s := a + b; s >= a {
		return s
	}
	return ^uint64(0)
}
