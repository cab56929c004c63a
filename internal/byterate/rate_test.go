package byterate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestByteRateBytesPerSecond(t *testing.T) {
	assert.InDelta(t, 73.0, NewByteRate(146, 2*time.Second).BytesPerSecond(), 1e-9)
	assert.InDelta(t, 292.0, NewByteRate(146, 500*time.Millisecond).BytesPerSecond(), 1e-9)
	assert.InDelta(t, 1152.0, PerSecond(1152).BytesPerSecond(), 1e-9)
	assert.Zero(t, NewByteRate(146, 0).BytesPerSecond())
}

func TestByteRateIsZero(t *testing.T) {
	assert.True(t, ByteRate{}.IsZero())
	assert.True(t, NewByteRate(0, time.Second).IsZero())
	assert.True(t, NewByteRate(10, 0).IsZero())
	assert.False(t, PerSecond(1).IsZero())
}

func TestByteRateString(t *testing.T) {
	assert.Equal(t, "1152.0 B/s", PerSecond(1152).String())
}
