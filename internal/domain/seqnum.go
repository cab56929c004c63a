package domain

import "fmt"

// SeqNum is a bounded, wrapping counter identifying transmission order.
// Values are stored in a uint64 and interpreted modulo the configured
// SeqWidth.
type SeqNum uint64

// SeqWidth is the bit width of a sequence number on the wire.
type SeqWidth uint8

const (
	Width8  SeqWidth = 8
	Width16 SeqWidth = 16
	Width32 SeqWidth = 32
	Width64 SeqWidth = 64
)

// ParseSeqWidth converts a configured bit count into a SeqWidth.
func ParseSeqWidth(bits int) (SeqWidth, error) {
	switch bits {
	case 8, 16, 32, 64:
		return SeqWidth(bits), nil
	}
	return 0, fmt.Errorf("%w: sequence width must be 8, 16, 32 or 64 bits, got %d", ErrInvalidConfig, bits)
}

// Bytes returns the encoded size of a sequence number.
func (w SeqWidth) Bytes() int { return int(w) / 8 }

// Mask returns the modulus mask for the width.
func (w SeqWidth) Mask() uint64 {
	if w == Width64 {
		return ^uint64(0)
	}
	return (uint64(1) << w) - 1
}

// Max returns the largest representable sequence number; the next value
// after it is zero.
func (w SeqWidth) Max() SeqNum { return SeqNum(w.Mask()) }

// Next returns the sequence number following n, wrapping at the width.
func (n SeqNum) Next(w SeqWidth) SeqNum {
	return SeqNum((uint64(n) + 1) & w.Mask())
}

// ForwardDistance returns the minimal non-negative number of increments,
// respecting wraparound, to get from one sequence number to another.
func ForwardDistance(from, to SeqNum, w SeqWidth) uint64 {
	return (uint64(to) - uint64(from)) & w.Mask()
}
