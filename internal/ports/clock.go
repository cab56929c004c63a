package ports

import "time"

// Clock supplies monotonic instants for rate computation.
//
// Now must never decrease between calls. time.Time carries a monotonic
// reading on all supported platforms, so duration arithmetic via Sub is
// safe against wall-clock adjustments.
type Clock interface {
	Now() time.Time
}
