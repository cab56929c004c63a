// Package loopback echoes every byte read from a port straight back to
// it. It exists to exercise a link (and the same BytePort contract the
// counter test uses) from the far end without any protocol state.
package loopback

import (
	"github.com/SpeedCrash100/serial-perf/internal/ports"
	"github.com/SpeedCrash100/serial-perf/internal/stats"
)

// Loopback reads one byte when it has nothing to send and writes the
// held byte back otherwise. At most one byte is in flight.
type Loopback struct {
	pending bool
	held    byte

	rxBytes stats.Counters
	txBytes stats.Counters
}

// New creates an idle loopback.
func New() *Loopback {
	return &Loopback{}
}

// Poll advances the echo by one byte in whichever direction is pending.
// Returns ports.ErrNotReady when the port blocked the current step.
func (l *Loopback) Poll(p ports.BytePort) error {
	if l.pending {
		return l.pollSend(p)
	}
	return l.pollRecv(p)
}

func (l *Loopback) pollRecv(p ports.BytePort) error {
	b, err := p.TryReadByte()
	if err != nil {
		if !ports.IsNotReady(err) {
			l.rxBytes.AddFailed(1)
		}
		return err
	}
	l.held = b
	l.pending = true
	l.rxBytes.AddSuccessful(1)
	return nil
}

func (l *Loopback) pollSend(p ports.BytePort) error {
	if err := p.TryWriteByte(l.held); err != nil {
		if !ports.IsNotReady(err) {
			l.txBytes.AddFailed(1)
		}
		return err
	}
	l.pending = false
	l.txBytes.AddSuccessful(1)
	return nil
}

// RxBytes returns receive-side byte statistics.
func (l *Loopback) RxBytes() *stats.Counters { return &l.rxBytes }

// TxBytes returns transmit-side byte statistics.
func (l *Loopback) TxBytes() *stats.Counters { return &l.txBytes }
