package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/SpeedCrash100/serial-perf/internal/agent"
	"github.com/SpeedCrash100/serial-perf/internal/domain"
)

// FileConfig mirrors agent.Config but uses strings for durations and the
// role to make TOML friendly.
type FileConfig struct {
	Device          string `toml:"device"`
	BaudRate        int    `toml:"baud_rate"`
	Role            string `toml:"role"`
	SeqWidthBits    int    `toml:"seq_width_bits"`
	Checksum        *bool  `toml:"checksum"`
	RateBytesPerSec int    `toml:"rate_bytes_per_sec"`
	BucketCapacity  int    `toml:"bucket_capacity"`
	PollInterval    string `toml:"poll_interval"`
	ReportInterval  string `toml:"report_interval"`
	Duration        string `toml:"duration"`
	Verbose         *bool  `toml:"verbose"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.serialperf/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".serialperf", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *agent.Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("device", fc.Device, &cfg.Device)
	s.setInt("baud", fc.BaudRate, &cfg.BaudRate)
	s.setInt("seq-width", fc.SeqWidthBits, &cfg.SeqWidthBits)
	s.setInt("rate", fc.RateBytesPerSec, &cfg.RateBytesPerSec)
	s.setInt("burst", fc.BucketCapacity, &cfg.BucketCapacity)

	if fc.Role != "" && !changed["role"] {
		role, err := domain.ParseRole(fc.Role)
		if err != nil {
			return err
		}
		cfg.Role = role
	}

	if err := s.setDuration("poll-interval", fc.PollInterval, &cfg.PollInterval); err != nil {
		return err
	}
	if err := s.setDuration("report-interval", fc.ReportInterval, &cfg.ReportInterval); err != nil {
		return err
	}
	if err := s.setDuration("duration", fc.Duration, &cfg.Duration); err != nil {
		return err
	}

	s.setBool("checksum", fc.Checksum, &cfg.Checksum)
	s.setBool("verbose", fc.Verbose, &cfg.Verbose)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
