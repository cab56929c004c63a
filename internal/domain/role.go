package domain

import "fmt"

// Role selects which directions of traffic a counter session drives.
type Role uint8

const (
	// Transmitter only emits numbered frames.
	Transmitter Role = iota + 1
	// Receiver only consumes and verifies frames.
	Receiver
	// Both runs an independent transmitter and receiver over one link.
	Both
)

// ParseRole converts a configuration string into a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case "tx", "transmitter":
		return Transmitter, nil
	case "rx", "receiver":
		return Receiver, nil
	case "both":
		return Both, nil
	}
	return 0, fmt.Errorf("%w: unknown role %q", ErrInvalidConfig, s)
}

func (r Role) String() string {
	switch r {
	case Transmitter:
		return "transmitter"
	case Receiver:
		return "receiver"
	case Both:
		return "both"
	}
	return fmt.Sprintf("role(%d)", uint8(r))
}

// Sends reports whether the role includes the transmit direction.
func (r Role) Sends() bool { return r == Transmitter || r == Both }

// Receives reports whether the role includes the receive direction.
func (r Role) Receives() bool { return r == Receiver || r == Both }
