// Package agent wires the serialperf core to a host: it opens the
// port, builds the session for the configured role, drives the
// cooperative poll loop, and reports statistics.
package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/SpeedCrash100/serial-perf/internal/adapters/clock"
	"github.com/SpeedCrash100/serial-perf/internal/adapters/serialport"
	"github.com/SpeedCrash100/serial-perf/internal/byterate"
	"github.com/SpeedCrash100/serial-perf/internal/counting"
	"github.com/SpeedCrash100/serial-perf/internal/domain"
	"github.com/SpeedCrash100/serial-perf/internal/loopback"
	"github.com/SpeedCrash100/serial-perf/internal/ports"
	"github.com/SpeedCrash100/serial-perf/pkg/log"
)

// Run executes a counter test over the configured serial device. It
// blocks until the context is cancelled, the configured duration
// elapses, or the transport fails.
func Run(ctx context.Context, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	port, err := serialport.Open(serialport.Config{Device: cfg.Device, BaudRate: cfg.BaudRate})
	if err != nil {
		return fmt.Errorf("open port: %w", err)
	}
	defer port.Close()

	return RunWithPort(ctx, cfg, port, clock.System{})
}

// RunWithPort is Run with the transport and clock supplied by the
// caller. Tests use it with in-memory ports and a manual clock.
func RunWithPort(ctx context.Context, cfg Config, port ports.BytePort, clk ports.Clock) error {
	codec, err := domain.NewCodec(domain.CodecParams{Width: cfg.SeqWidth(), Checksum: cfg.Checksum})
	if err != nil {
		return err
	}
	sess, err := counting.NewSession(cfg.Role, codec)
	if err != nil {
		return err
	}
	if cfg.Verbose && sess.Rx() != nil {
		sess.Rx().SetVerbose(log.NewZerologAdapterWithLogger(logger))
	}

	var (
		bucket  *byterate.Bucket
		updates <-chan RateUpdate
	)
	if cfg.RateBytesPerSec > 0 {
		bucket, err = byterate.NewBucket(byterate.PerSecond(uint64(cfg.RateBytesPerSec)), cfg.BucketCapacity, clk)
		if err != nil {
			return err
		}
		port = byterate.NewLimitedPort(port, bucket)

		if cfg.ConfigPath != "" {
			w := NewRateWatcher(cfg.ConfigPath, codec.FrameSize())
			updates = w.Updates()
			go w.Run(ctx)
		}
	}

	logger.Info().
		Str("device", cfg.Device).
		Str("role", cfg.Role.String()).
		Int("seq_width", cfg.SeqWidthBits).
		Bool("checksum", cfg.Checksum).
		Int("rate", cfg.RateBytesPerSec).
		Msg("counter test started")

	var deadline time.Time
	if cfg.Duration > 0 {
		deadline = clk.Now().Add(cfg.Duration)
	}

	rep := newReporter(clk, cfg.ReportInterval)

	for {
		select {
		case <-ctx.Done():
			logSummary(sess)
			return ctx.Err()
		case upd := <-updates:
			// Rate changes are applied here, inside the poll loop, so
			// the bucket is never touched from two goroutines.
			if err := bucket.SetRate(upd.Rate, upd.Capacity); err != nil {
				logger.Warn().Err(err).Msg("rejected rate update")
			} else {
				logger.Info().Uint64("rate", upd.Rate.Bytes()).Int("burst", upd.Capacity).Msg("rate updated")
			}
		default:
		}

		if !deadline.IsZero() && !clk.Now().Before(deadline) {
			logSummary(sess)
			return nil
		}

		if err := sess.Poll(port); err != nil {
			if !ports.IsNotReady(err) {
				logSummary(sess)
				return fmt.Errorf("transport: %w", err)
			}
			// Both directions blocked: yield instead of spinning.
			time.Sleep(cfg.PollInterval)
		}

		rep.observe(sess)
	}
}

// RunLoopback echoes every received byte back over the configured
// device until the context is cancelled or the duration elapses.
func RunLoopback(ctx context.Context, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	port, err := serialport.Open(serialport.Config{Device: cfg.Device, BaudRate: cfg.BaudRate})
	if err != nil {
		return fmt.Errorf("open port: %w", err)
	}
	defer port.Close()

	return RunLoopbackWithPort(ctx, cfg, port, clock.System{})
}

// RunLoopbackWithPort is RunLoopback with transport and clock supplied
// by the caller.
func RunLoopbackWithPort(ctx context.Context, cfg Config, port ports.BytePort, clk ports.Clock) error {
	lb := loopback.New()

	logger.Info().Str("device", cfg.Device).Msg("loopback started")

	var deadline time.Time
	if cfg.Duration > 0 {
		deadline = clk.Now().Add(cfg.Duration)
	}
	reportAt := clk.Now().Add(cfg.ReportInterval)

	for {
		select {
		case <-ctx.Done():
			logLoopbackSummary(lb)
			return ctx.Err()
		default:
		}

		if !deadline.IsZero() && !clk.Now().Before(deadline) {
			logLoopbackSummary(lb)
			return nil
		}

		if err := lb.Poll(port); err != nil {
			if !ports.IsNotReady(err) {
				logLoopbackSummary(lb)
				return fmt.Errorf("transport: %w", err)
			}
			time.Sleep(cfg.PollInterval)
		}

		if now := clk.Now(); !now.Before(reportAt) {
			logger.Info().
				Uint64("echoed", lb.TxBytes().Successful()).
				Uint64("received", lb.RxBytes().Successful()).
				Msg("loopback report")
			reportAt = now.Add(cfg.ReportInterval)
		}
	}
}
