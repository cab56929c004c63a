package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/SpeedCrash100/serial-perf/internal/agent"
	"github.com/SpeedCrash100/serial-perf/internal/cliconfig"
	"github.com/SpeedCrash100/serial-perf/internal/domain"
)

const helpDescription = `
Correctness and performance testing for byte-oriented serial links.

The counter test streams checksummed, numbered frames over the link and
counts received, lost, duplicated and corrupted frames on the way back.
The loopback mode turns a host into a dumb echo device for the far end
of such a test. An optional token-bucket limiter caps the transmit byte
rate so a slow test device can keep up.

Configure via flags, SERIALPERF_* environment variables, or a TOML
config file (flags win, then environment, then file).
`

var exampleUsage = strings.TrimSpace(`
  serialperf --device /dev/ttyUSB0 --role both
  serialperf --device /dev/ttyUSB0 --role tx --rate 1152 --duration 30s
  serialperf loopback --device /dev/ttyUSB1
  serialperf --config ~/.serialperf/config.toml --verbose
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := agent.DefaultConfig()
	var (
		cfgPath string
		role    string
	)

	root := &cobra.Command{
		Use:     "serialperf",
		Short:   "Loss and rate testing for serial links",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd, &cfg, &role, cfgPath); err != nil {
				return err
			}
			return agent.Run(signalContext(), cfg)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfg.Device, "device", cfg.Device, "serial device path, e.g. /dev/ttyUSB0")
	pf.IntVar(&cfg.BaudRate, "baud", cfg.BaudRate, "baud rate")
	pf.DurationVar(&cfg.PollInterval, "poll-interval", cfg.PollInterval, "sleep between polls when the link is idle")
	pf.DurationVar(&cfg.ReportInterval, "report-interval", cfg.ReportInterval, "interval between statistics reports")
	pf.DurationVar(&cfg.Duration, "duration", cfg.Duration, "stop after this long (0 = run until interrupted)")
	pf.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "print a notice for every loss or corruption event")
	pf.StringVar(&cfgPath, "config", "", "TOML config file (default ~/.serialperf/config.toml)")

	f := root.Flags()
	f.StringVar(&role, "role", "both", "session role: tx, rx or both")
	f.IntVar(&cfg.SeqWidthBits, "seq-width", cfg.SeqWidthBits, "sequence number width in bits (8, 16, 32 or 64)")
	f.BoolVar(&cfg.Checksum, "checksum", cfg.Checksum, "append and verify a CRC on every frame")
	f.IntVar(&cfg.RateBytesPerSec, "rate", cfg.RateBytesPerSec, "limit TX to this many bytes per second (0 = unlimited)")
	f.IntVar(&cfg.BucketCapacity, "burst", cfg.BucketCapacity, "burst allowance in bytes (0 = one second of traffic)")

	loopbackCmd := &cobra.Command{
		Use:     "loopback",
		Short:   "Echo every received byte back over the link",
		Example: "  serialperf loopback --device /dev/ttyUSB1",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd, &cfg, &role, cfgPath); err != nil {
				return err
			}
			return agent.RunLoopback(signalContext(), cfg)
		},
	}
	root.AddCommand(loopbackCmd)

	if err := root.Execute(); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "serialperf: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig layers file and environment configuration under any flags
// the user set explicitly, then resolves the role string.
func loadConfig(cmd *cobra.Command, cfg *agent.Config, role *string, cfgPath string) error {
	cfgFile := cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(cfg, fc, changed); err != nil {
			return err
		}
		cfg.ConfigPath = cfgFile
	}

	if err := cliconfig.ApplyEnvConfig(cfg, changed); err != nil {
		return err
	}

	if changed["role"] || cfg.Role == 0 {
		r, err := domain.ParseRole(*role)
		if err != nil {
			return err
		}
		cfg.Role = r
	}

	return cfg.Validate()
}

// signalContext returns a context cancelled on SIGINT or SIGTERM, with
// a grace period before a second signal kills the process outright.
func signalContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		cancel()
		select {
		case <-sig:
		case <-time.After(10 * time.Second):
		}
		os.Exit(1)
	}()
	return ctx
}
