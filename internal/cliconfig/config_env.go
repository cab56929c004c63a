package cliconfig

import (
	"os"

	"github.com/SpeedCrash100/serial-perf/internal/agent"
	"github.com/SpeedCrash100/serial-perf/internal/domain"
)

// ApplyEnvConfig applies configuration from environment variables
// (SERIALPERF_*). It respects flags that have been explicitly set
// (changed map). Returns an error if any variable has an invalid format.
func ApplyEnvConfig(cfg *agent.Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("device", os.Getenv("SERIALPERF_DEVICE"), &cfg.Device)

	if err := s.setIntFromString("baud", os.Getenv("SERIALPERF_BAUD_RATE"), &cfg.BaudRate); err != nil {
		return err
	}
	if err := s.setIntFromString("seq-width", os.Getenv("SERIALPERF_SEQ_WIDTH_BITS"), &cfg.SeqWidthBits); err != nil {
		return err
	}
	if err := s.setIntFromString("rate", os.Getenv("SERIALPERF_RATE_BYTES_PER_SEC"), &cfg.RateBytesPerSec); err != nil {
		return err
	}
	if err := s.setIntFromString("burst", os.Getenv("SERIALPERF_BUCKET_CAPACITY"), &cfg.BucketCapacity); err != nil {
		return err
	}

	if v := os.Getenv("SERIALPERF_ROLE"); v != "" && !changed["role"] {
		role, err := domain.ParseRole(v)
		if err != nil {
			return err
		}
		cfg.Role = role
	}

	if err := s.setDuration("poll-interval", os.Getenv("SERIALPERF_POLL_INTERVAL"), &cfg.PollInterval); err != nil {
		return err
	}
	if err := s.setDuration("report-interval", os.Getenv("SERIALPERF_REPORT_INTERVAL"), &cfg.ReportInterval); err != nil {
		return err
	}
	if err := s.setDuration("duration", os.Getenv("SERIALPERF_DURATION"), &cfg.Duration); err != nil {
		return err
	}

	s.setBoolFromString("checksum", os.Getenv("SERIALPERF_CHECKSUM"), &cfg.Checksum)
	s.setBoolFromString("verbose", os.Getenv("SERIALPERF_VERBOSE"), &cfg.Verbose)

	return nil
}
