package counting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SpeedCrash100/serial-perf/internal/domain"
)

func TestTxEmitsSequentialFrames(t *testing.T) {
	codec, err := domain.NewCodec(domain.CodecParams{Width: domain.Width16, Checksum: true})
	require.NoError(t, err)
	tx := NewTxState(codec)

	for want := domain.SeqNum(0); want < 5; want++ {
		frame := make([]byte, 0, codec.FrameSize())
		for i := 0; i < codec.FrameSize(); i++ {
			frame = append(frame, tx.PeekByte())
			tx.ConfirmByte()
		}
		got, err := codec.Decode(frame)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.EqualValues(t, 5, tx.NextToSend())
}

func TestTxPeekIsStableUntilConfirmed(t *testing.T) {
	codec, err := domain.NewCodec(domain.CodecParams{Width: domain.Width32, Checksum: true})
	require.NoError(t, err)
	tx := NewTxState(codec)

	// A not-ready transport peeks the same byte again on retry.
	b1 := tx.PeekByte()
	b2 := tx.PeekByte()
	assert.Equal(t, b1, b2)

	tx.ConfirmByte()
	assert.EqualValues(t, 0, tx.NextToSend(), "sequence must not advance mid-frame")
}

func TestTxAdvancesOnlyAfterFullFrame(t *testing.T) {
	codec, err := domain.NewCodec(domain.CodecParams{Width: domain.Width8, Checksum: true})
	require.NoError(t, err)
	tx := NewTxState(codec)

	for i := 0; i < codec.FrameSize()-1; i++ {
		tx.PeekByte()
		tx.ConfirmByte()
		assert.EqualValues(t, 0, tx.NextToSend())
	}
	tx.PeekByte()
	tx.ConfirmByte()
	assert.EqualValues(t, 1, tx.NextToSend())
}

func TestTxConfirmWithoutPeekIsHarmless(t *testing.T) {
	codec, err := domain.NewCodec(domain.CodecParams{Width: domain.Width8, Checksum: true})
	require.NoError(t, err)
	tx := NewTxState(codec)

	tx.ConfirmByte()
	assert.EqualValues(t, 0, tx.NextToSend())
}

func TestTxSequenceWrapsAtWidth(t *testing.T) {
	codec, err := domain.NewCodec(domain.CodecParams{Width: domain.Width8, Checksum: true})
	require.NoError(t, err)
	tx := NewTxState(codec)

	for n := 0; n < 256; n++ {
		for i := 0; i < codec.FrameSize(); i++ {
			tx.PeekByte()
			tx.ConfirmByte()
		}
	}
	assert.EqualValues(t, 0, tx.NextToSend())
}
