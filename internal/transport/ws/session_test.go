package ws_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanyang/roadside-relay/internal/domain/client"
	"github.com/alanyang/roadside-relay/internal/transport/ws"
)

func TestSession_Lifecycle(t *testing.T) {
	reg := ws.NewRegistry()
	conn := newFakeConn()
	sess := ws.NewSession(conn, reg)

	assert.Equal(t, ws.StateConnected, sess.State())
	_, ok := sess.Identity()
	assert.False(t, ok)
	assert.Equal(t, 0, reg.Len(), "unregistered connections are not in the registry")

	require.NoError(t, sess.Register(user1))
	assert.Equal(t, ws.StateRegistered, sess.State())
	got, ok := reg.Identity(conn)
	require.True(t, ok)
	assert.Equal(t, user1, got)

	require.NoError(t, sess.Register(provider1), "re-registration updates identity")
	got, _ = reg.Identity(conn)
	assert.Equal(t, provider1, got)
	assert.Equal(t, 1, reg.Len())

	removed, ok := sess.Close()
	assert.True(t, ok)
	assert.Equal(t, provider1, removed, "close reports the identity it removed")
	assert.Equal(t, ws.StateClosed, sess.State())
	assert.Equal(t, 0, reg.Len())

	removed, ok = sess.Close()
	assert.False(t, ok, "close fires once")
	assert.Zero(t, removed)
	assert.ErrorIs(t, sess.Register(user1), ws.ErrClosed, "no transition out of closed")
	assert.Equal(t, 0, reg.Len())
}

func TestSession_CloseUnregistered(t *testing.T) {
	reg := ws.NewRegistry()
	other := newFakeConn()
	reg.Register(other, user2)

	sess := ws.NewSession(newFakeConn(), reg)
	removed, ok := sess.Close()
	assert.True(t, ok)
	assert.Zero(t, removed, "nothing registered, nothing removed")
	assert.Equal(t, 1, reg.Len())
}

// Close and error events racing on the same connection remove it exactly once.
func TestSession_ConcurrentCloseRemovesOnce(t *testing.T) {
	for range 100 {
		reg := ws.NewRegistry()
		sess := ws.NewSession(newFakeConn(), reg)
		require.NoError(t, sess.Register(user1))

		var closes atomic.Int32
		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, ok := sess.Close(); ok {
					closes.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), closes.Load())
		assert.Equal(t, 0, reg.Len())
	}
}

// A registration racing a close must never leave an entry behind, and close
// reports the identity only when the registration won.
func TestSession_RegisterRacingClose(t *testing.T) {
	for range 100 {
		reg := ws.NewRegistry()
		sess := ws.NewSession(newFakeConn(), reg)

		var registerErr error
		var removed client.Identity
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			registerErr = sess.Register(provider1)
		}()
		go func() {
			defer wg.Done()
			removed, _ = sess.Close()
		}()
		wg.Wait()

		assert.Equal(t, ws.StateClosed, sess.State())
		assert.Equal(t, 0, reg.Len())
		if registerErr == nil {
			assert.Equal(t, provider1, removed)
		} else {
			assert.ErrorIs(t, registerErr, ws.ErrClosed)
			assert.Zero(t, removed)
		}
	}
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "connected", ws.StateConnected.String())
	assert.Equal(t, "registered", ws.StateRegistered.String())
	assert.Equal(t, "closed", ws.StateClosed.String())
}
