// Package serialperf provides correctness and performance testing
// primitives for byte-oriented serial links.
//
// Example usage:
//
//	cfg := serialperf.DefaultConfig()
//	cfg.Device = "/dev/ttyUSB0"
//	cfg.Role = serialperf.Both
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//	if err := serialperf.Run(context.Background(), cfg); err != nil {
//	    log.Fatal(err)
//	}
package serialperf

import (
	"context"

	"github.com/SpeedCrash100/serial-perf/internal/agent"
	"github.com/SpeedCrash100/serial-perf/internal/domain"
	"github.com/rs/zerolog"
)

// Config holds the configuration for a serial test run.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config = agent.Config

// Role selects which directions of traffic a counter session drives.
type Role = domain.Role

// Session roles.
const (
	Transmitter = domain.Transmitter
	Receiver    = domain.Receiver
	Both        = domain.Both
)

// Run starts a counter test with the given configuration. It blocks
// until the context is cancelled, the configured duration elapses, or
// the transport fails.
func Run(ctx context.Context, cfg Config) error {
	return agent.Run(ctx, cfg)
}

// RunLoopback echoes every received byte back over the configured
// device, turning this host into the far end of a counter test.
func RunLoopback(ctx context.Context, cfg Config) error {
	return agent.RunLoopback(ctx, cfg)
}

// DefaultConfig returns a Config with sensible default values.
// At minimum, you must set Device before calling Run.
func DefaultConfig() Config {
	return agent.DefaultConfig()
}

// Logger returns the package-level zerolog logger used by the agent.
func Logger() zerolog.Logger {
	return agent.Logger()
}
