// Package domain holds the protocol vocabulary of serialperf: sequence
// numbers with wraparound arithmetic, the fixed-size counter frame and
// its codec, session roles, and the sentinel errors shared across the
// core packages.
package domain
