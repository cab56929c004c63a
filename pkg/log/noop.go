package log

// Noop discards every message. It is the default sink when verbose
// diagnostics are off.
type Noop struct{}

// NewNoopLogger returns a discarding Logger.
func NewNoopLogger() Noop { return Noop{} }

func (Noop) Debug(msg string, fields ...Field) {}
func (Noop) Info(msg string, fields ...Field)  {}
func (Noop) Warn(msg string, fields ...Field)  {}
func (Noop) Error(msg string, fields ...Field) {}
