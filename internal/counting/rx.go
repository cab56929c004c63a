package counting

import (
	"github.com/SpeedCrash100/serial-perf/internal/domain"
	"github.com/SpeedCrash100/serial-perf/pkg/log"
)

// RxState tracks the receive direction of a counter session: the next
// sequence number it expects and what happened to everything it saw.
//
// The receiver decides between exactly three outcomes per decoded frame:
// an exact match, a jump ahead (the skipped numbers are presumed lost
// and the receiver resynchronizes on the new number), or a number behind
// the expectation (a duplicate or a late arrival past a resync). The
// link gives no reordering guarantee, so nothing else is decidable
// without unbounded reorder buffering.
type RxState struct {
	codec domain.Codec

	expected domain.SeqNum
	synced   bool

	received   uint64
	lost       uint64
	duplicates uint64
	corrupted  uint64

	// frame assembly
	buf  [domain.MaxFrameSize]byte
	fill int

	verbose log.Logger
}

// NewRxState creates a receiver sub-state for the given codec.
func NewRxState(codec domain.Codec) *RxState {
	return &RxState{codec: codec, verbose: log.NewNoopLogger()}
}

// SetVerbose routes human-readable loss and corruption notices to l.
// Purely observational; protocol state and timing are unaffected.
func (r *RxState) SetVerbose(l log.Logger) {
	if l == nil {
		l = log.NewNoopLogger()
	}
	r.verbose = l
}

// OnByteReceived feeds one transport byte into the frame assembler.
// Once a full frame accumulated it is decoded and observed.
func (r *RxState) OnByteReceived(b byte) {
	r.buf[r.fill] = b
	r.fill++
	if r.fill < r.codec.FrameSize() {
		return
	}
	frame := r.buf[:r.fill]
	r.fill = 0

	n, err := r.codec.Decode(frame)
	if err != nil {
		r.ObserveCorrupted()
		return
	}
	r.Observe(n)
}

// Observe records the arrival of a validated sequence number.
func (r *RxState) Observe(n domain.SeqNum) {
	w := r.codec.Width()

	if !r.synced {
		// First frame of the session: accept as-is. The session cannot
		// know how many frames preceded it, so no loss is charged.
		r.synced = true
		r.received++
		r.expected = n.Next(w)
		return
	}

	d := domain.ForwardDistance(r.expected, n, w)
	switch {
	case d == 0:
		r.received++
		r.expected = n.Next(w)

	case d < uint64(1)<<(uint(w)-1):
		// n arrived without the intervening values: charge the gap as
		// lost and resynchronize on n instead of waiting forever.
		r.lost += d
		r.verbose.Warn("frames lost",
			log.Uint64("expected", uint64(r.expected)),
			log.Uint64("got", uint64(n)),
			log.Uint64("lost", d),
		)
		r.expected = n.Next(w)

	default:
		// Behind the expectation: a true duplicate, or a late frame the
		// receiver already resynchronized past.
		r.duplicates++
	}
}

// ObserveCorrupted records a frame that failed its integrity check.
// Corruption is not attributed to a sequence number since the number
// itself may be wrong; the expectation is unchanged.
func (r *RxState) ObserveCorrupted() {
	r.corrupted++
	r.verbose.Warn("corrupted frame",
		log.Uint64("expected", uint64(r.expected)),
	)
}

// Expected returns the next sequence number the receiver waits for.
func (r *RxState) Expected() domain.SeqNum { return r.expected }

// Received returns how many frames matched the expectation (including
// frames accepted on initial sync).
func (r *RxState) Received() uint64 { return r.received }

// Lost returns how many sequence numbers were presumed lost.
func (r *RxState) Lost() uint64 { return r.lost }

// Duplicates returns how many frames arrived behind the expectation.
func (r *RxState) Duplicates() uint64 { return r.duplicates }

// Corrupted returns how many frames failed their integrity check.
func (r *RxState) Corrupted() uint64 { return r.corrupted }

// Reset returns the receiver to its initial unsynced state.
func (r *RxState) Reset() {
	r.expected = 0
	r.synced = false
	r.received = 0
	r.lost = 0
	r.duplicates = 0
	r.corrupted = 0
	r.fill = 0
}
