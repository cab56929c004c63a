package byterate

import (
	"fmt"
	"time"

	"github.com/SpeedCrash100/serial-perf/internal/domain"
	"github.com/SpeedCrash100/serial-perf/internal/ports"
)

// AverageMeasurer reports the byte rate from the moment it was started.
// The timer starts automatically when the first bytes arrive.
type AverageMeasurer struct {
	clk     ports.Clock
	started bool
	start   time.Time
	bytes   uint64
}

// NewAverageMeasurer creates an idle measurer on the given clock.
func NewAverageMeasurer(clk ports.Clock) *AverageMeasurer {
	return &AverageMeasurer{clk: clk}
}

// Start begins (or restarts) the measurement, discarding prior results.
func (m *AverageMeasurer) Start() {
	m.started = true
	m.start = m.clk.Now()
	m.bytes = 0
}

// OnBytes records n bytes passing, starting the timer if necessary.
func (m *AverageMeasurer) OnBytes(n uint64) {
	if !m.started {
		m.Start()
	}
	m.bytes += n
}

// Rate returns the average rate since Start. ok is false while idle.
func (m *AverageMeasurer) Rate() (rate ByteRate, ok bool) {
	if !m.started {
		return ByteRate{}, false
	}
	return NewByteRate(m.bytes, m.clk.Now().Sub(m.start)), true
}

// IntervalMeasurer reports the byte rate over fixed windows: at each
// window boundary the accumulated count becomes the published rate and
// the accumulator restarts. Too small a window makes the published rate
// jump in large steps.
type IntervalMeasurer struct {
	clk    ports.Clock
	window time.Duration

	windowStart time.Time
	bytes       uint64
	published   ByteRate
}

// NewIntervalMeasurer creates a measurer with the given window.
func NewIntervalMeasurer(clk ports.Clock, window time.Duration) (*IntervalMeasurer, error) {
	if window <= 0 {
		return nil, fmt.Errorf("%w: measurement window must be positive, got %v",
			domain.ErrInvalidConfig, window)
	}
	return &IntervalMeasurer{
		clk:         clk,
		window:      window,
		windowStart: clk.Now(),
		published:   NewByteRate(0, window),
	}, nil
}

// OnBytes records n bytes passing in the current window.
func (m *IntervalMeasurer) OnBytes(n uint64) {
	m.roll(m.clk.Now())
	m.bytes += n
}

// Rate returns the rate of the last completed window.
func (m *IntervalMeasurer) Rate() ByteRate {
	m.roll(m.clk.Now())
	return m.published
}

// Reset discards all measurement state and restarts the window.
func (m *IntervalMeasurer) Reset() {
	m.windowStart = m.clk.Now()
	m.bytes = 0
	m.published = NewByteRate(0, m.window)
}

func (m *IntervalMeasurer) roll(now time.Time) {
	for now.Sub(m.windowStart) >= m.window {
		m.published = NewByteRate(m.bytes, m.window)
		m.bytes = 0
		m.windowStart = m.windowStart.Add(m.window)
	}
}
