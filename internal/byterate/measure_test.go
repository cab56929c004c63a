package byterate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SpeedCrash100/serial-perf/internal/adapters/clock"
	"github.com/SpeedCrash100/serial-perf/internal/domain"
)

func TestAverageMeasurerIdle(t *testing.T) {
	clk := clock.NewManual(time.Unix(0, 0))
	m := NewAverageMeasurer(clk)

	_, ok := m.Rate()
	assert.False(t, ok)
}

func TestAverageMeasurerStartsOnFirstBytes(t *testing.T) {
	clk := clock.NewManual(time.Unix(0, 0))
	m := NewAverageMeasurer(clk)

	m.OnBytes(100)
	clk.Advance(2 * time.Second)
	m.OnBytes(100)

	rate, ok := m.Rate()
	require.True(t, ok)
	assert.InDelta(t, 100.0, rate.BytesPerSecond(), 1e-9)
}

func TestAverageMeasurerRestart(t *testing.T) {
	clk := clock.NewManual(time.Unix(0, 0))
	m := NewAverageMeasurer(clk)

	m.OnBytes(1000)
	clk.Advance(time.Second)
	m.Start()
	clk.Advance(time.Second)
	m.OnBytes(10)

	rate, ok := m.Rate()
	require.True(t, ok)
	assert.InDelta(t, 10.0, rate.BytesPerSecond(), 1e-9)
}

func TestIntervalMeasurerPublishesPerWindow(t *testing.T) {
	clk := clock.NewManual(time.Unix(0, 0))
	m, err := NewIntervalMeasurer(clk, time.Second)
	require.NoError(t, err)

	// Nothing published before the first window completes.
	m.OnBytes(500)
	assert.Zero(t, m.Rate().Bytes())

	clk.Advance(time.Second)
	assert.EqualValues(t, 500, m.Rate().Bytes())
	assert.InDelta(t, 500.0, m.Rate().BytesPerSecond(), 1e-9)

	// A quiet window publishes zero.
	clk.Advance(time.Second)
	assert.Zero(t, m.Rate().Bytes())
}

func TestIntervalMeasurerReset(t *testing.T) {
	clk := clock.NewManual(time.Unix(0, 0))
	m, err := NewIntervalMeasurer(clk, time.Second)
	require.NoError(t, err)

	m.OnBytes(500)
	clk.Advance(time.Second)
	m.Reset()
	assert.Zero(t, m.Rate().Bytes())
}

func TestIntervalMeasurerRejectsZeroWindow(t *testing.T) {
	clk := clock.NewManual(time.Unix(0, 0))
	_, err := NewIntervalMeasurer(clk, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}
