package ws

import (
	"errors"
	"sync"

	"github.com/alanyang/roadside-relay/internal/domain/client"
)

var ErrClosed = errors.New("ws: connection closed")

type State int

const (
	StateConnected State = iota // accepted, no identity yet
	StateRegistered
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnected:
		return "connected"
	case StateRegistered:
		return "registered"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

// Session drives one connection through
// connected → registered → closed. Every transition happens under mu, so a
// registration racing a close can never leave a stale registry entry behind,
// and the registry entry is removed by exactly one Close call.
type Session struct {
	conn Conn
	reg  *Registry

	mu       sync.Mutex
	state    State
	identity client.Identity
}

func NewSession(conn Conn, reg *Registry) *Session {
	return &Session{conn: conn, reg: reg, state: StateConnected}
}

// Register attaches identity to the connection, replacing any previous one.
// It fails with ErrClosed once the session has closed.
func (s *Session) Register(identity client.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateClosed {
		return ErrClosed
	}
	s.reg.Register(s.conn, identity)
	s.identity = identity
	s.state = StateRegistered
	return nil
}

// Close moves the session to closed and drops its registry entry. Only the
// first call does anything; it reports true for that call, along with the
// identity it removed (zero when the session never registered).
func (s *Session) Close() (client.Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateClosed {
		return client.Identity{}, false
	}
	var removed client.Identity
	if s.state == StateRegistered {
		s.reg.Remove(s.conn)
		removed = s.identity
	}
	s.state = StateClosed
	return removed, true
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Identity returns the registered identity, or false before registration and after close.
func (s *Session) Identity() (client.Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateRegistered {
		return client.Identity{}, false
	}
	return s.identity, true
}

func (s *Session) Conn() Conn { return s.conn }
