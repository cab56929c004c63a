package counting

import (
	"github.com/SpeedCrash100/serial-perf/internal/domain"
)

// TxState tracks the transmit direction of a counter session. It stages
// the encoded frame for the next sequence number in a fixed buffer and
// hands it out byte by byte, so a not-ready transport can retry the same
// byte without skipping or repeating a frame.
type TxState struct {
	codec domain.Codec

	next domain.SeqNum

	buf  [domain.MaxFrameSize]byte
	size int
	pos  int
}

// NewTxState creates a transmitter sub-state for the given codec.
func NewTxState(codec domain.Codec) *TxState {
	return &TxState{codec: codec}
}

// PeekByte returns the next byte to put on the wire without consuming
// it. Staging the frame happens here, lazily, so the sequence number is
// only committed to a frame once the caller starts sending it.
func (t *TxState) PeekByte() byte {
	if t.pos == t.size {
		t.size = t.codec.Encode(t.next, t.buf[:])
		t.pos = 0
	}
	return t.buf[t.pos]
}

// ConfirmByte tells the transmitter that the byte returned by PeekByte
// was actually handed to the transport. The sequence number advances
// only after the final byte of its frame is confirmed.
func (t *TxState) ConfirmByte() {
	if t.pos == t.size {
		// Nothing staged: confirm without a peek is a caller bug, but
		// staying put keeps the frame sequence intact.
		return
	}
	t.pos++
	if t.pos == t.size {
		t.next = t.next.Next(t.codec.Width())
	}
}

// NextToSend returns the sequence number of the frame currently being
// emitted (or the one that will be staged next).
func (t *TxState) NextToSend() domain.SeqNum { return t.next }

// Reset returns the transmitter to its initial state, discarding any
// partially sent frame.
func (t *TxState) Reset() {
	t.next = 0
	t.size = 0
	t.pos = 0
}
