// Package counting implements the counter loss-detection protocol: a
// transmitter that emits checksummed, monotonically numbered frames and
// a receiver that verifies them, counting received, lost, duplicated and
// corrupted frames across sequence wraparound.
package counting

import (
	"github.com/SpeedCrash100/serial-perf/internal/domain"
	"github.com/SpeedCrash100/serial-perf/internal/ports"
	"github.com/SpeedCrash100/serial-perf/internal/stats"
)

// Session owns the protocol state of one counter test run over a single
// link. Depending on the role it drives the transmit direction, the
// receive direction, or both independently.
//
// A Session is single-threaded by design: every Poll* call either makes
// one byte of progress or returns ports.ErrNotReady, and the caller is
// the scheduler. No internal locking, no goroutines.
type Session struct {
	role domain.Role

	tx *TxState
	rx *RxState

	txBytes stats.Counters
	rxBytes stats.Counters
}

// NewSession creates a session for the given role and codec.
func NewSession(role domain.Role, codec domain.Codec) (*Session, error) {
	s := &Session{role: role}
	switch role {
	case domain.Transmitter:
		s.tx = NewTxState(codec)
	case domain.Receiver:
		s.rx = NewRxState(codec)
	case domain.Both:
		s.tx = NewTxState(codec)
		s.rx = NewRxState(codec)
	default:
		return nil, domain.ErrInvalidConfig
	}
	return s, nil
}

// Role returns the session's configured role.
func (s *Session) Role() domain.Role { return s.role }

// Rx returns the receiver sub-state, or nil for a pure transmitter.
func (s *Session) Rx() *RxState { return s.rx }

// Tx returns the transmitter sub-state, or nil for a pure receiver.
func (s *Session) Tx() *TxState { return s.tx }

// TxBytes returns byte-level transmit statistics.
func (s *Session) TxBytes() *stats.Counters { return &s.txBytes }

// RxBytes returns byte-level receive statistics.
func (s *Session) RxBytes() *stats.Counters { return &s.rxBytes }

// PollSend tries to push one frame byte to the port. ErrNotReady means
// the port refused the byte (or the session has no transmit direction);
// any other error is a transport failure, counted and propagated.
func (s *Session) PollSend(p ports.BytePort) error {
	if s.tx == nil {
		return ports.ErrNotReady
	}
	b := s.tx.PeekByte()
	if err := p.TryWriteByte(b); err != nil {
		if !ports.IsNotReady(err) {
			s.txBytes.AddFailed(1)
		}
		return err
	}
	s.tx.ConfirmByte()
	s.txBytes.AddSuccessful(1)
	return nil
}

// PollRecv tries to pull one byte from the port into the receiver.
func (s *Session) PollRecv(p ports.BytePort) error {
	if s.rx == nil {
		return ports.ErrNotReady
	}
	b, err := p.TryReadByte()
	if err != nil {
		if !ports.IsNotReady(err) {
			s.rxBytes.AddFailed(1)
		}
		return err
	}
	s.rx.OnByteReceived(b)
	s.rxBytes.AddSuccessful(1)
	return nil
}

// Poll advances both directions once. It returns ErrNotReady only when
// neither direction could make progress; if just one side is blocked the
// caller can immediately poll again. A transport error from either side
// is returned as-is.
func (s *Session) Poll(p ports.BytePort) error {
	recvErr := s.PollRecv(p)
	sendErr := s.PollSend(p)

	switch {
	case recvErr != nil && !ports.IsNotReady(recvErr):
		return recvErr
	case sendErr != nil && !ports.IsNotReady(sendErr):
		return sendErr
	case ports.IsNotReady(recvErr) && ports.IsNotReady(sendErr):
		return ports.ErrNotReady
	default:
		// At least one direction made progress.
		return nil
	}
}

// Reset returns the whole session to its initial state, clearing all
// statistics.
func (s *Session) Reset() {
	if s.tx != nil {
		s.tx.Reset()
	}
	if s.rx != nil {
		s.rx.Reset()
	}
	s.txBytes.Reset()
	s.rxBytes.Reset()
}
