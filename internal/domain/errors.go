package domain

import "errors"

// Domain errors represent error conditions in the serialperf domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrFrameCorrupted is returned by Codec.Decode when the integrity
	// check does not match. The decoded sequence number must not be
	// trusted. Sessions record it in statistics; it is never fatal.
	ErrFrameCorrupted = errors.New("serialperf: frame corrupted")

	// ErrInvalidConfig is returned when configuration validation fails.
	// It is detected at construction, before any I/O occurs.
	ErrInvalidConfig = errors.New("serialperf: invalid configuration")
)
