// Package byterate bounds and measures how fast bytes leave a serial
// link. It provides a token-bucket limiter driven by a monotonic clock,
// a BytePort wrapper enforcing it on the transmit path, and rate
// measurers for reporting.
package byterate

import (
	"fmt"
	"time"

	"github.com/SpeedCrash100/serial-perf/internal/domain"
)

// ByteRate expresses an amount of bytes passed over an interval.
type ByteRate struct {
	bytes    uint64
	interval time.Duration
}

// NewByteRate creates a rate from bytes observed over interval.
func NewByteRate(bytes uint64, interval time.Duration) ByteRate {
	return ByteRate{bytes: bytes, interval: interval}
}

// PerSecond creates a rate of n bytes per second.
func PerSecond(n uint64) ByteRate {
	return ByteRate{bytes: n, interval: time.Second}
}

// Bytes returns the byte count of the rate.
func (r ByteRate) Bytes() uint64 { return r.bytes }

// Interval returns the measurement interval of the rate.
func (r ByteRate) Interval() time.Duration { return r.interval }

// IsZero reports whether the rate carries no usable value (zero
// interval, or zero bytes which would block a limiter forever).
func (r ByteRate) IsZero() bool { return r.interval <= 0 || r.bytes == 0 }

// BytesPerSecond normalizes the rate to bytes per second with full
// floating-point precision. Returns 0 for a zero interval.
func (r ByteRate) BytesPerSecond() float64 {
	if r.interval <= 0 {
		return 0
	}
	return float64(r.bytes) / r.interval.Seconds()
}

func (r ByteRate) String() string {
	return fmt.Sprintf("%.1f B/s", r.BytesPerSecond())
}

// validate rejects rates a limiter cannot enforce.
func (r ByteRate) validate() error {
	if r.IsZero() {
		return fmt.Errorf("%w: rate must be positive, got %d bytes per %v",
			domain.ErrInvalidConfig, r.bytes, r.interval)
	}
	return nil
}
