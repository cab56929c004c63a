//go:build linux

// Package serialport implements ports.BytePort on top of a Linux
// termios serial device opened in raw, non-blocking mode.
package serialport

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/SpeedCrash100/serial-perf/internal/ports"
)

// Config holds the parameters for opening a serial device.
type Config struct {
	// Device is the device path, e.g. /dev/ttyUSB0.
	Device string

	// BaudRate selects the line speed. Unsupported values fall back to
	// 115200.
	BaudRate int
}

// Port is a non-blocking serial port. Reads and writes never block:
// when the device has no byte (or no room), the call returns
// ports.ErrNotReady.
//
// Port is meant for single-threaded cooperative polling, matching the
// rest of the core; it does no internal locking.
type Port struct {
	fd     int
	config Config

	rbuf [1]byte
	wbuf [1]byte
}

var _ ports.BytePort = (*Port)(nil)

// Open opens and configures the device: raw mode, 8N1, no flow
// control, O_NONBLOCK kept on for the port's lifetime.
func Open(cfg Config) (*Port, error) {
	fd, err := unix.Open(cfg.Device, unix.O_RDWR|unix.O_NOCTTY|unix.O_NONBLOCK, 0o666)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Device, err)
	}

	termios, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("get termios: %w", err)
	}

	// Raw mode
	termios.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP | unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	termios.Oflag &^= unix.OPOST
	termios.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	termios.Cflag &^= unix.CSIZE | unix.PARENB
	termios.Cflag |= unix.CS8

	baud := baudToUnix(cfg.BaudRate)
	termios.Cflag &^= unix.CBAUD
	termios.Cflag |= baud

	// VMIN=0, VTIME=0: reads return whatever is available immediately.
	termios.Cc[unix.VMIN] = 0
	termios.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, termios); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("set termios: %w", err)
	}

	return &Port{fd: fd, config: cfg}, nil
}

// TryReadByte returns the next byte from the device, or
// ports.ErrNotReady when nothing is buffered.
func (p *Port) TryReadByte() (byte, error) {
	n, err := unix.Read(p.fd, p.rbuf[:])
	if err != nil {
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK || err == unix.EINTR {
			return 0, ports.ErrNotReady
		}
		return 0, fmt.Errorf("read %s: %w", p.config.Device, err)
	}
	if n == 0 {
		return 0, ports.ErrNotReady
	}
	return p.rbuf[0], nil
}

// TryWriteByte hands one byte to the device, or returns
// ports.ErrNotReady when the output buffer is full.
func (p *Port) TryWriteByte(b byte) error {
	p.wbuf[0] = b
	n, err := unix.Write(p.fd, p.wbuf[:])
	if err != nil {
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK || err == unix.EINTR {
			return ports.ErrNotReady
		}
		return fmt.Errorf("write %s: %w", p.config.Device, err)
	}
	if n == 0 {
		return ports.ErrNotReady
	}
	return nil
}

// Close releases the device.
func (p *Port) Close() error {
	if p.fd < 0 {
		return nil
	}
	err := unix.Close(p.fd)
	p.fd = -1
	if err != nil {
		return fmt.Errorf("close %s: %w", p.config.Device, err)
	}
	return nil
}

func baudToUnix(baud int) uint32 {
	switch baud {
	case 9600:
		return unix.B9600
	case 19200:
		return unix.B19200
	case 38400:
		return unix.B38400
	case 57600:
		return unix.B57600
	case 115200:
		return unix.B115200
	case 230400:
		return unix.B230400
	case 460800:
		return unix.B460800
	case 921600:
		return unix.B921600
	default:
		return unix.B115200 // fallback
	}
}
