// Package log provides the logging abstraction used by serialperf
// components that emit diagnostics, such as the counter session's
// verbose loss notices.
//
// The Logger interface can be implemented by any logging library.
// Default implementations are provided for zerolog and a no-op logger
// for tests and quiet runs. Diagnostics are purely observational: no
// component changes protocol state or timing based on logging.
//
// Use the provided zerolog adapter:
//
//	logger := log.NewZerologAdapter()
//
// Or discard everything:
//
//	logger := log.NewNoopLogger()
package log
