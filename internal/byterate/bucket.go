package byterate

import (
	"fmt"
	"time"

	"github.com/SpeedCrash100/serial-perf/internal/domain"
	"github.com/SpeedCrash100/serial-perf/internal/ports"
)

// Bucket is a token-bucket transmit budget: a capped reservoir of byte
// credits refilled continuously over time and spent by outgoing writes.
//
// Refill happens with the full precision of the elapsed interval on
// every observation, so repeated small deltas do not drift the way
// fixed-tick accounting would. Tokens never exceed the capacity no
// matter how long the bucket sits idle.
type Bucket struct {
	rate     float64 // bytes per second
	capacity float64

	tokens     float64
	lastRefill time.Time

	clk ports.Clock
}

var _ ports.Limiter = (*Bucket)(nil)

// NewBucket creates a full bucket enforcing rate with the given burst
// capacity in bytes. The capacity must hold at least one byte; one
// second's worth of traffic is the conventional choice.
func NewBucket(rate ByteRate, capacity int, clk ports.Clock) (*Bucket, error) {
	if err := rate.validate(); err != nil {
		return nil, err
	}
	if capacity < 1 {
		return nil, fmt.Errorf("%w: bucket capacity must be at least 1 byte, got %d",
			domain.ErrInvalidConfig, capacity)
	}
	b := &Bucket{clk: clk}
	b.reset(rate, capacity)
	return b, nil
}

func (b *Bucket) reset(rate ByteRate, capacity int) {
	b.rate = rate.BytesPerSecond()
	b.capacity = float64(capacity)
	b.tokens = b.capacity
	b.lastRefill = b.clk.Now()
}

// SetRate replaces the rate and capacity and restarts the bucket full.
// Used for live re-configuration of a running test.
func (b *Bucket) SetRate(rate ByteRate, capacity int) error {
	if err := rate.validate(); err != nil {
		return err
	}
	if capacity < 1 {
		return fmt.Errorf("%w: bucket capacity must be at least 1 byte, got %d",
			domain.ErrInvalidConfig, capacity)
	}
	b.reset(rate, capacity)
	return nil
}

// Allow reports whether n bytes fit the current budget. It refills
// first but does not spend; call Spend after the bytes actually left.
func (b *Bucket) Allow(n int) bool {
	b.refill(b.clk.Now())
	return b.tokens >= float64(n)
}

// Spend charges n bytes against the budget.
func (b *Bucket) Spend(n int) {
	b.tokens -= float64(n)
	if b.tokens < 0 {
		b.tokens = 0
	}
}

// Tokens returns the currently available byte credits, clamped to the
// bucket capacity.
func (b *Bucket) Tokens() float64 {
	b.refill(b.clk.Now())
	return b.tokens
}

func (b *Bucket) refill(now time.Time) {
	elapsed := now.Sub(b.lastRefill)
	if elapsed <= 0 {
		return
	}
	b.tokens += elapsed.Seconds() * b.rate
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	b.lastRefill = now
}
