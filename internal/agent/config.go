package agent

import (
	"fmt"
	"time"

	"github.com/SpeedCrash100/serial-perf/internal/domain"
)

// Config holds the configuration for one serial test run.
type Config struct {
	Device   string
	BaudRate int

	Role         domain.Role
	SeqWidthBits int
	Checksum     bool

	// RateBytesPerSec limits the transmit path when positive; zero
	// leaves TX unlimited.
	RateBytesPerSec int
	// BucketCapacity is the burst allowance in bytes. Zero derives one
	// second's worth of traffic (at least one frame).
	BucketCapacity int

	PollInterval   time.Duration
	ReportInterval time.Duration

	// Duration bounds the test run; zero runs until the context is
	// cancelled.
	Duration time.Duration

	// ConfigPath, when set, is watched for rate changes during the run.
	ConfigPath string

	Verbose bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		BaudRate:       115200,
		Role:           domain.Both,
		SeqWidthBits:   32,
		Checksum:       true,
		PollInterval:   time.Millisecond,
		ReportInterval: 5 * time.Second,
	}
}

// Validate checks the configuration for errors and sets derived
// defaults. It must pass before any I/O is opened.
func (c *Config) Validate() error {
	if c.Device == "" {
		return fmt.Errorf("%w: device is required", domain.ErrInvalidConfig)
	}
	if c.BaudRate <= 0 {
		return fmt.Errorf("%w: baud rate must be positive, got %d", domain.ErrInvalidConfig, c.BaudRate)
	}

	width, err := domain.ParseSeqWidth(c.SeqWidthBits)
	if err != nil {
		return err
	}
	switch c.Role {
	case domain.Transmitter, domain.Receiver, domain.Both:
	default:
		return fmt.Errorf("%w: role is required", domain.ErrInvalidConfig)
	}

	frameSize := width.Bytes() + 1

	if c.RateBytesPerSec < 0 {
		return fmt.Errorf("%w: rate must not be negative, got %d", domain.ErrInvalidConfig, c.RateBytesPerSec)
	}
	if c.RateBytesPerSec > 0 {
		if c.BucketCapacity == 0 {
			c.BucketCapacity = c.RateBytesPerSec
			if c.BucketCapacity < frameSize {
				c.BucketCapacity = frameSize
			}
		}
		if c.BucketCapacity < frameSize {
			return fmt.Errorf("%w: bucket capacity %d is smaller than one frame (%d bytes)",
				domain.ErrInvalidConfig, c.BucketCapacity, frameSize)
		}
	}

	if c.PollInterval <= 0 {
		return fmt.Errorf("%w: poll interval must be positive", domain.ErrInvalidConfig)
	}
	if c.ReportInterval <= 0 {
		return fmt.Errorf("%w: report interval must be positive", domain.ErrInvalidConfig)
	}
	if c.Duration < 0 {
		return fmt.Errorf("%w: duration must not be negative", domain.ErrInvalidConfig)
	}

	return nil
}

// SeqWidth returns the validated sequence width.
func (c *Config) SeqWidth() domain.SeqWidth {
	w, _ := domain.ParseSeqWidth(c.SeqWidthBits)
	return w
}
