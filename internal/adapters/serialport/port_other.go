//go:build !linux

package serialport

import (
	"errors"
	"runtime"

	"github.com/SpeedCrash100/serial-perf/internal/ports"
)

// Config holds the parameters for opening a serial device.
type Config struct {
	Device   string
	BaudRate int
}

// Port is only implemented for Linux hosts.
type Port struct{}

var _ ports.BytePort = (*Port)(nil)

// Open fails: only Linux termios devices are supported.
func Open(Config) (*Port, error) {
	return nil, errors.New("serialperf: serial ports are not supported on " + runtime.GOOS)
}

func (p *Port) TryReadByte() (byte, error) { return 0, ports.ErrNotReady }
func (p *Port) TryWriteByte(byte) error    { return ports.ErrNotReady }
func (p *Port) Close() error               { return nil }
