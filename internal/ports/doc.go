// Package ports defines the interfaces (ports) that connect the protocol
// core to the host environment.
//
// The core packages (internal/counting, internal/byterate,
// internal/loopback) depend only on these interfaces. Infrastructure
// adapters (internal/adapters) implement them with concrete
// implementations (termios serial port, system clock).
//
// # Port Interfaces
//
//   - [BytePort]: non-blocking single-byte transport
//   - [Clock]: monotonic time source
//   - [Limiter]: transmit byte budget
//
// Every BytePort operation either completes immediately or returns
// [ErrNotReady]; the caller re-invokes the same operation later. No port
// method blocks, and no call makes partial progress on a single byte.
package ports
