package notifier

import (
	"context"

	"github.com/alanyang/roadside-relay/internal/domain/client"
)

// RoleNotifier pushes a payload to every live connection registered under a role.
// [ISP] Separated from IdentityNotifier; submission only needs role broadcast.
// [DIP] The submission service depends on this abstraction, not on the WebSocket transport.
type RoleNotifier interface {
	BroadcastToRole(ctx context.Context, role client.Role, payload []byte) int
}
