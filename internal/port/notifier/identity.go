package notifier

import (
	"context"

	"github.com/alanyang/roadside-relay/internal/domain/client"
)

// IdentityNotifier pushes a payload to every live connection registered as
// exactly {role, id}. A user with several open tabs receives it on each.
type IdentityNotifier interface {
	DeliverToIdentity(ctx context.Context, role client.Role, id string, payload []byte) int
}
