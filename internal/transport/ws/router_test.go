package ws_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alanyang/roadside-relay/internal/domain/client"
	"github.com/alanyang/roadside-relay/internal/transport/ws"
)

func TestBroadcastToRole(t *testing.T) {
	reg := ws.NewRegistry()
	rt := ws.NewRouter(reg)

	u := newFakeConn()
	p1, p2 := newFakeConn(), newFakeConn()
	unregistered := newFakeConn()
	reg.Register(u, user1)
	reg.Register(p1, provider1)
	reg.Register(p2, provider2)

	n := rt.BroadcastToRole(context.Background(), client.RoleProvider, []byte("M"))

	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"M"}, p1.received())
	assert.Equal(t, []string{"M"}, p2.received())
	assert.Empty(t, u.received(), "users never receive provider broadcasts")
	assert.Empty(t, unregistered.received())
}

func TestBroadcastToRole_SkipsClosedConnections(t *testing.T) {
	reg := ws.NewRegistry()
	rt := ws.NewRouter(reg)

	open, closed := newFakeConn(), newFakeConn()
	closed.setOpen(false)
	reg.Register(open, provider1)
	reg.Register(closed, provider2)

	n := rt.BroadcastToRole(context.Background(), client.RoleProvider, []byte("M"))

	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"M"}, open.received())
	assert.Empty(t, closed.received())
}

func TestBroadcastToRole_IsolatesFailedSends(t *testing.T) {
	reg := ws.NewRegistry()
	rt := ws.NewRouter(reg)

	broken := newFakeConn()
	broken.failSends(errBrokenPipe)
	healthy := []*fakeConn{newFakeConn(), newFakeConn(), newFakeConn()}

	reg.Register(broken, provider1)
	for _, c := range healthy {
		reg.Register(c, provider2)
	}

	n := rt.BroadcastToRole(context.Background(), client.RoleProvider, []byte("M"))

	assert.Equal(t, len(healthy), n)
	for _, c := range healthy {
		assert.Equal(t, []string{"M"}, c.received())
	}
	assert.Equal(t, 4, reg.Len(), "delivery never mutates the registry")
}

func TestDeliverToIdentity(t *testing.T) {
	reg := ws.NewRegistry()
	rt := ws.NewRouter(reg)

	tab1, tab2 := newFakeConn(), newFakeConn()
	other := newFakeConn()
	sameIDProvider := newFakeConn()
	reg.Register(tab1, user1)
	reg.Register(tab2, user1)
	reg.Register(other, user2)
	reg.Register(sameIDProvider, client.Identity{Role: client.RoleProvider, ID: "u1"})

	n := rt.DeliverToIdentity(context.Background(), client.RoleUser, "u1", []byte("C"))

	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"C"}, tab1.received())
	assert.Equal(t, []string{"C"}, tab2.received())
	assert.Empty(t, other.received())
	assert.Empty(t, sameIDProvider.received())
}

func TestDeliverToIdentity_NoMatchIsNoOp(t *testing.T) {
	rt := ws.NewRouter(ws.NewRegistry())
	assert.Equal(t, 0, rt.DeliverToIdentity(context.Background(), client.RoleUser, "nobody", []byte("C")))
}
