package testutil

import (
	"context"
	"sync"

	"github.com/alanyang/roadside-relay/internal/domain/client"
)

// NotifyCall records a single notification delivered by CaptureNotifier.
type NotifyCall struct {
	Role    client.Role
	ID      string // empty for role broadcasts
	Payload []byte
}

// CaptureNotifier is a test-double that implements both RoleNotifier and IdentityNotifier.
// It records every call with a mutex so it is safe for concurrent use.
type CaptureNotifier struct {
	mu    sync.Mutex
	Calls []NotifyCall
}

func (c *CaptureNotifier) BroadcastToRole(_ context.Context, role client.Role, payload []byte) int {
	c.mu.Lock()
	c.Calls = append(c.Calls, NotifyCall{Role: role, Payload: payload})
	c.mu.Unlock()
	return 0
}

func (c *CaptureNotifier) DeliverToIdentity(_ context.Context, role client.Role, id string, payload []byte) int {
	c.mu.Lock()
	c.Calls = append(c.Calls, NotifyCall{Role: role, ID: id, Payload: payload})
	c.mu.Unlock()
	return 0
}

// Broadcasts returns all role broadcast calls for a specific role.
func (c *CaptureNotifier) Broadcasts(role client.Role) []NotifyCall {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []NotifyCall
	for _, call := range c.Calls {
		if call.Role == role && call.ID == "" {
			out = append(out, call)
		}
	}
	return out
}

// Deliveries returns all targeted calls for {role, id}.
func (c *CaptureNotifier) Deliveries(role client.Role, id string) []NotifyCall {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []NotifyCall
	for _, call := range c.Calls {
		if call.Role == role && call.ID == id {
			out = append(out, call)
		}
	}
	return out
}

// Reset clears all recorded calls.
func (c *CaptureNotifier) Reset() {
	c.mu.Lock()
	c.Calls = nil
	c.mu.Unlock()
}
