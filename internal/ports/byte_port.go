package ports

import "errors"

// ErrNotReady signals that a non-blocking operation could not complete
// right now and should be retried. It is not a failure: callers must
// never count it against error statistics or abort on it.
var ErrNotReady = errors.New("serialperf: not ready")

// IsNotReady reports whether err is the retry signal.
func IsNotReady(err error) bool {
	return errors.Is(err, ErrNotReady)
}

// BytePort is a non-blocking byte sink/source over a serial link.
//
// Both methods either complete immediately or return ErrNotReady. Any
// other error is a transport failure (device disconnect, OS error) that
// the core propagates to the caller untouched.
type BytePort interface {
	// TryReadByte returns the next byte if one is available.
	TryReadByte() (byte, error)

	// TryWriteByte writes a single byte if the link can accept it.
	TryWriteByte(b byte) error
}
