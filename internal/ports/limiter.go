package ports

// Limiter is a transmit byte budget.
//
// The two-phase Allow/Spend split lets a wrapper check the budget before
// attempting a write and charge it only after the write actually
// succeeded, so a rejected or not-ready write never consumes budget.
type Limiter interface {
	// Allow reports whether n bytes may be sent right now.
	Allow(n int) bool

	// Spend charges n bytes against the budget. Call only after Allow
	// returned true and the bytes were handed to the transport.
	Spend(n int)
}
