package byterate

import (
	"github.com/SpeedCrash100/serial-perf/internal/ports"
)

// LimitedPort wraps a BytePort and enforces a transmit byte budget on
// it. Writes that exceed the budget return ports.ErrNotReady without
// touching the underlying port; the caller retries later. Reads pass
// through unlimited: the limiter exists to make TX reproducibly slower
// for a constrained test device, throttling RX is the receiver's own
// concern.
type LimitedPort struct {
	port    ports.BytePort
	limiter ports.Limiter
}

var _ ports.BytePort = (*LimitedPort)(nil)

// NewLimitedPort wraps port with the given limiter.
func NewLimitedPort(port ports.BytePort, limiter ports.Limiter) *LimitedPort {
	return &LimitedPort{port: port, limiter: limiter}
}

// TryReadByte reads from the underlying port, unthrottled.
func (l *LimitedPort) TryReadByte() (byte, error) {
	return l.port.TryReadByte()
}

// TryWriteByte forwards the byte when the budget allows it. The budget
// is charged only after the underlying write succeeded, so a not-ready
// or failing transport never consumes tokens.
func (l *LimitedPort) TryWriteByte(b byte) error {
	if !l.limiter.Allow(1) {
		return ports.ErrNotReady
	}
	if err := l.port.TryWriteByte(b); err != nil {
		return err
	}
	l.limiter.Spend(1)
	return nil
}
