package domain

import (
	"fmt"

	"github.com/sigurn/crc8"
)

// Wire format of a counter frame:
//
//	[Width/8 bytes]  sequence number, little-endian
//	[1 byte]         CRC-8/AUTOSAR over the sequence bytes
//
// Frame size is constant for a given configuration. With the checksum
// disabled the trailing byte mirrors the low sequence byte and is not
// validated on decode.

// MaxFrameSize is the largest encoded frame (64-bit sequence plus CRC).
// It bounds every codec buffer at compile time so encode/decode never
// allocates.
const MaxFrameSize = 8 + 1

// crcAutosar is CRC-8/AUTOSAR, the polynomial used on the wire.
var crcAutosar = crc8.MakeTable(crc8.Params{
	Poly:   0x2F,
	Init:   0xFF,
	RefIn:  false,
	RefOut: false,
	XorOut: 0xFF,
	Check:  0xDF,
	Name:   "CRC-8/AUTOSAR",
})

// CodecParams configures a frame codec.
type CodecParams struct {
	// Width is the sequence number bit width.
	Width SeqWidth

	// Checksum enables CRC validation. Both link ends must agree.
	Checksum bool
}

// Codec encodes sequence numbers into fixed-size frames and back.
// It holds no mutable state and is safe for concurrent reuse by
// independent transmitter and receiver sub-states.
type Codec struct {
	width    SeqWidth
	checksum bool
}

// NewCodec builds a codec for the given parameters.
func NewCodec(p CodecParams) (Codec, error) {
	switch p.Width {
	case Width8, Width16, Width32, Width64:
	default:
		return Codec{}, fmt.Errorf("%w: sequence width %d", ErrInvalidConfig, p.Width)
	}
	return Codec{width: p.Width, checksum: p.Checksum}, nil
}

// Width returns the configured sequence number width.
func (c Codec) Width() SeqWidth { return c.width }

// FrameSize returns the constant encoded frame size in bytes.
func (c Codec) FrameSize() int { return c.width.Bytes() + 1 }

// Encode writes the frame for n into dst and returns the frame size.
// dst must have room for FrameSize bytes; use a [MaxFrameSize] array.
func (c Codec) Encode(n SeqNum, dst []byte) int {
	size := c.FrameSize()
	_ = dst[size-1]

	putSeq(dst, n, c.width)

	if c.checksum {
		dst[size-1] = crc8.Checksum(dst[:size-1], crcAutosar)
	} else {
		dst[size-1] = dst[0]
	}
	return size
}

// Decode validates src and returns the carried sequence number. Any
// length or integrity mismatch yields ErrFrameCorrupted; the number is
// never partially accepted.
func (c Codec) Decode(src []byte) (SeqNum, error) {
	size := c.FrameSize()
	if len(src) != size {
		return 0, fmt.Errorf("%w: frame length %d, want %d", ErrFrameCorrupted, len(src), size)
	}
	if c.checksum {
		if sum := crc8.Checksum(src[:size-1], crcAutosar); sum != src[size-1] {
			return 0, fmt.Errorf("%w: checksum %#02x, want %#02x", ErrFrameCorrupted, src[size-1], sum)
		}
	}
	return getSeq(src, c.width), nil
}

func putSeq(dst []byte, n SeqNum, w SeqWidth) {
	v := uint64(n) & w.Mask()
	for i := 0; i < w.Bytes(); i++ {
		dst[i] = byte(v >> (8 * i))
	}
}

func getSeq(src []byte, w SeqWidth) SeqNum {
	var v uint64
	for i := 0; i < w.Bytes(); i++ {
		v |= uint64(src[i]) << (8 * i)
	}
	return SeqNum(v)
}
