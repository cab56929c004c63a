package counting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SpeedCrash100/serial-perf/internal/domain"
)

func newTestRx(t *testing.T, width domain.SeqWidth) *RxState {
	t.Helper()
	codec, err := domain.NewCodec(domain.CodecParams{Width: width, Checksum: true})
	require.NoError(t, err)
	return NewRxState(codec)
}

func TestRxNoLoss(t *testing.T) {
	rx := newTestRx(t, domain.Width32)
	const k = 9
	for n := domain.SeqNum(0); n <= k; n++ {
		rx.Observe(n)
	}

	assert.EqualValues(t, k+1, rx.Received())
	assert.EqualValues(t, 0, rx.Lost())
	assert.EqualValues(t, 0, rx.Duplicates())
	assert.EqualValues(t, 0, rx.Corrupted())
	assert.EqualValues(t, k+1, rx.Expected())
}

func TestRxLossResyncs(t *testing.T) {
	rx := newTestRx(t, domain.Width32)
	for _, n := range []domain.SeqNum{0, 1, 5} {
		rx.Observe(n)
	}

	// 2, 3 and 4 are presumed lost; 5 is accepted as the resync point.
	assert.EqualValues(t, 2, rx.Received())
	assert.EqualValues(t, 3, rx.Lost())
	assert.EqualValues(t, 0, rx.Duplicates())
	assert.EqualValues(t, 6, rx.Expected())
}

func TestRxDuplicate(t *testing.T) {
	rx := newTestRx(t, domain.Width32)
	for _, n := range []domain.SeqNum{0, 1, 2, 1} {
		rx.Observe(n)
	}

	assert.EqualValues(t, 3, rx.Received())
	assert.EqualValues(t, 1, rx.Duplicates())
	assert.EqualValues(t, 0, rx.Lost())
	assert.EqualValues(t, 3, rx.Expected())
}

func TestRxWraparoundIsNotLoss(t *testing.T) {
	rx := newTestRx(t, domain.Width8)
	for _, n := range []domain.SeqNum{254, 255, 0, 1} {
		rx.Observe(n)
	}

	assert.EqualValues(t, 4, rx.Received())
	assert.EqualValues(t, 0, rx.Lost())
	assert.EqualValues(t, 0, rx.Duplicates())
	assert.EqualValues(t, 2, rx.Expected())
}

func TestRxLossAcrossWraparound(t *testing.T) {
	rx := newTestRx(t, domain.Width8)
	for _, n := range []domain.SeqNum{254, 2} {
		rx.Observe(n)
	}

	// 255, 0 and 1 are missing.
	assert.EqualValues(t, 1, rx.Received())
	assert.EqualValues(t, 3, rx.Lost())
	assert.EqualValues(t, 3, rx.Expected())
}

func TestRxFirstFrameSyncsWithoutLoss(t *testing.T) {
	rx := newTestRx(t, domain.Width32)
	rx.Observe(1000)

	assert.EqualValues(t, 1, rx.Received())
	assert.EqualValues(t, 0, rx.Lost())
	assert.EqualValues(t, 1001, rx.Expected())
}

func TestRxCorruptionDoesNotMoveExpectation(t *testing.T) {
	rx := newTestRx(t, domain.Width32)
	rx.Observe(0)
	rx.ObserveCorrupted()
	rx.Observe(1)

	assert.EqualValues(t, 1, rx.Corrupted())
	assert.EqualValues(t, 2, rx.Received())
	assert.EqualValues(t, 0, rx.Lost())
}

func TestRxAssemblesFramesFromBytes(t *testing.T) {
	codec, err := domain.NewCodec(domain.CodecParams{Width: domain.Width16, Checksum: true})
	require.NoError(t, err)
	rx := NewRxState(codec)

	var buf [domain.MaxFrameSize]byte
	for n := domain.SeqNum(0); n < 3; n++ {
		size := codec.Encode(n, buf[:])
		for _, b := range buf[:size] {
			rx.OnByteReceived(b)
		}
	}

	assert.EqualValues(t, 3, rx.Received())
	assert.EqualValues(t, 0, rx.Corrupted())
}

func TestRxCountsCorruptedFrameFromBytes(t *testing.T) {
	codec, err := domain.NewCodec(domain.CodecParams{Width: domain.Width16, Checksum: true})
	require.NoError(t, err)
	rx := NewRxState(codec)

	var buf [domain.MaxFrameSize]byte
	size := codec.Encode(7, buf[:])
	buf[0] ^= 0x01
	for _, b := range buf[:size] {
		rx.OnByteReceived(b)
	}

	assert.EqualValues(t, 1, rx.Corrupted())
	assert.EqualValues(t, 0, rx.Received())
}

func TestRxReset(t *testing.T) {
	rx := newTestRx(t, domain.Width32)
	rx.Observe(0)
	rx.Observe(5)
	rx.Reset()

	assert.EqualValues(t, 0, rx.Received())
	assert.EqualValues(t, 0, rx.Lost())

	// After reset the next frame syncs fresh.
	rx.Observe(100)
	assert.EqualValues(t, 1, rx.Received())
	assert.EqualValues(t, 0, rx.Lost())
}
