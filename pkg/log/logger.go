package log

// Logger receives structured diagnostic messages from serialperf
// components. Implementations must be safe to call from the poll loop;
// a slow sink slows the test.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field is one key-value pair attached to a message.
type Field struct {
	Key   string
	Value interface{}
}

// String builds a string field.
func String(key, value string) Field { return Field{Key: key, Value: value} }

// Uint64 builds a counter field.
func Uint64(key string, value uint64) Field { return Field{Key: key, Value: value} }

// Err builds an error field under the key "error".
func Err(err error) Field { return Field{Key: "error", Value: err} }
