package ws

import (
	"iter"
	"sync"

	"github.com/alanyang/roadside-relay/internal/domain/client"
)

// Conn is the registry's view of one live real-time channel. Implementations
// must be comparable (pointer receivers) since they are used as map keys.
type Conn interface {
	ID() string
	// Send queues payload for delivery without blocking on the peer.
	Send(payload []byte) error
	IsOpen() bool
}

// Registry maps live connections to the identity they registered with.
// A connection holds at most one entry; several connections may share an identity.
//
// [SRP] Identity bookkeeping only. Delivery lives in Router, lifecycle in Session.
type Registry struct {
	mu      sync.RWMutex
	entries map[Conn]client.Identity
}

func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[Conn]client.Identity),
	}
}

// Register inserts or replaces the identity for conn.
func (r *Registry) Register(conn Conn, identity client.Identity) {
	r.mu.Lock()
	r.entries[conn] = identity
	r.mu.Unlock()
}

// Remove deletes conn's entry. It reports whether an entry existed, so calling
// it again for the same connection is a harmless no-op.
func (r *Registry) Remove(conn Conn) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[conn]; !ok {
		return false
	}
	delete(r.entries, conn)
	return true
}

// Identity returns the identity registered for conn, if any.
func (r *Registry) Identity(conn Conn) (client.Identity, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.entries[conn]
	return id, ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

type entry struct {
	conn     Conn
	identity client.Identity
}

// ForEachMatching copies the registry when called and returns a sequence over
// the copied entries whose identity satisfies match. Mutations made while the
// caller iterates are not observed.
func (r *Registry) ForEachMatching(match func(client.Identity) bool) iter.Seq2[Conn, client.Identity] {
	r.mu.RLock()
	snapshot := make([]entry, 0, len(r.entries))
	for conn, identity := range r.entries {
		snapshot = append(snapshot, entry{conn: conn, identity: identity})
	}
	r.mu.RUnlock()

	return func(yield func(Conn, client.Identity) bool) {
		for _, e := range snapshot {
			if !match(e.identity) {
				continue
			}
			if !yield(e.conn, e.identity) {
				return
			}
		}
	}
}

// HasRole matches identities registered under role.
func HasRole(role client.Role) func(client.Identity) bool {
	return func(id client.Identity) bool { return id.Role == role }
}

// IsIdentity matches identities registered as exactly {role, id}.
func IsIdentity(role client.Role, id string) func(client.Identity) bool {
	return func(identity client.Identity) bool { return identity.Is(role, id) }
}
