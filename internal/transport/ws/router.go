package ws

import (
	"context"
	"log/slog"

	"github.com/alanyang/roadside-relay/internal/domain/client"
)

// Router fans payloads out to registered connections.
// It implements both port/notifier.RoleNotifier and port/notifier.IdentityNotifier.
//
// [SRP] Target selection and dispatch only; it never mutates the registry.
// A failed send to one connection is logged and skipped so the rest still receive it.
type Router struct {
	reg *Registry
}

func NewRouter(reg *Registry) *Router {
	return &Router{reg: reg}
}

// BroadcastToRole implements port/notifier.RoleNotifier. It returns the number
// of connections the payload was queued on.
func (rt *Router) BroadcastToRole(ctx context.Context, role client.Role, payload []byte) int {
	return rt.deliver(ctx, HasRole(role), payload)
}

// DeliverToIdentity implements port/notifier.IdentityNotifier.
func (rt *Router) DeliverToIdentity(ctx context.Context, role client.Role, id string, payload []byte) int {
	return rt.deliver(ctx, IsIdentity(role, id), payload)
}

func (rt *Router) deliver(ctx context.Context, match func(client.Identity) bool, payload []byte) int {
	delivered := 0
	for conn, identity := range rt.reg.ForEachMatching(match) {
		if !conn.IsOpen() {
			continue
		}
		if err := conn.Send(payload); err != nil {
			slog.WarnContext(ctx, "ws: delivery failed", "conn_id", conn.ID(), "client", identity.String(), "error", err)
			continue
		}
		delivered++
	}
	return delivered
}
