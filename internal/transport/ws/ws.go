package ws

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/alanyang/roadside-relay/internal/domain/client"
	"github.com/alanyang/roadside-relay/internal/domain/message"
	portnotifier "github.com/alanyang/roadside-relay/internal/port/notifier"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub accepts WebSocket connections, runs one read loop per connection and
// turns inbound frames into Session transitions or targeted deliveries.
type Hub struct {
	reg      *Registry
	notifier portnotifier.IdentityNotifier
	opts     Options

	// live holds every accepted connection, registered or not, for Shutdown.
	live sync.Map // conn id → *wsConn
	wg   sync.WaitGroup

	// mu orders wg.Add against Shutdown; no connection is admitted once
	// closing is set.
	mu      sync.Mutex
	closing bool
}

func NewHub(reg *Registry, notifier portnotifier.IdentityNotifier, opts Options) *Hub {
	return &Hub{
		reg:      reg,
		notifier: notifier,
		opts:     opts.withDefaults(),
	}
}

func (h *Hub) Register(rg *gin.RouterGroup) {
	rg.GET("", h.handleWS)
}

func (h *Hub) handleWS(c *gin.Context) {
	if h.isClosing() {
		c.AbortWithStatus(http.StatusServiceUnavailable)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err)
		return
	}
	ctx := context.WithoutCancel(c.Request.Context())

	conn := newConn(uuid.NewString(), ws, h.opts)
	sess := NewSession(conn, h.reg)
	conn.onWriteError = func(err error) {
		slog.WarnContext(ctx, "ws: write failed, closing connection", "conn_id", conn.ID(), "error", err)
		h.closeSession(ctx, sess, "write error")
	}

	if !h.admit(conn) {
		// Shutdown began while the upgrade was in flight.
		msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
		_ = ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(h.opts.WriteTimeout))
		_ = ws.Close()
		return
	}
	defer func() {
		h.closeSession(ctx, sess, "read loop ended")
		conn.Close()
		h.live.Delete(conn.ID())
		h.wg.Done()
	}()

	slog.InfoContext(ctx, "ws: connection accepted", "conn_id", conn.ID(), "remote", c.Request.RemoteAddr)

	go conn.writePump()
	h.readLoop(ctx, conn, sess)
}

func (h *Hub) isClosing() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closing
}

// admit tracks conn for Shutdown unless shutdown has already begun.
func (h *Hub) admit(conn *wsConn) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closing {
		return false
	}
	h.wg.Add(1)
	h.live.Store(conn.ID(), conn)
	return true
}

func (h *Hub) readLoop(ctx context.Context, conn *wsConn, sess *Session) {
	ws := conn.ws
	ws.SetReadLimit(h.opts.MaxMessageBytes)
	_ = ws.SetReadDeadline(time.Now().Add(h.opts.PongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(h.opts.PongWait))
	})

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			var ce *websocket.CloseError
			if errors.As(err, &ce) {
				slog.InfoContext(ctx, "ws: connection closed by peer", "conn_id", conn.ID(), "code", ce.Code, "reason", ce.Text)
			} else if conn.IsOpen() {
				slog.WarnContext(ctx, "ws: read failed", "conn_id", conn.ID(), "error", err)
			}
			return
		}
		_ = ws.SetReadDeadline(time.Now().Add(h.opts.PongWait))
		h.Dispatch(ctx, sess, data)
	}
}

// Dispatch applies one inbound frame to sess. Malformed frames and unknown
// rtypes are dropped; the connection stays open.
func (h *Hub) Dispatch(ctx context.Context, sess *Session, data []byte) {
	connID := sess.Conn().ID()

	in, err := message.Decode(data)
	if err != nil {
		slog.WarnContext(ctx, "ws: dropping message", "conn_id", connID, "error", err)
		return
	}

	switch in.Type {
	case message.TypeRegister:
		if err := sess.Register(in.Identity); err != nil {
			slog.DebugContext(ctx, "ws: register after close ignored", "conn_id", connID)
			return
		}
		slog.InfoContext(ctx, "ws: client registered", "conn_id", connID, "role", in.Identity.Role, "client_id", in.Identity.ID)

	case message.TypeConfirmation:
		n := h.notifier.DeliverToIdentity(ctx, client.RoleUser, in.TargetUserID, in.Payload)
		slog.InfoContext(ctx, "ws: confirmation routed", "conn_id", connID, "user_id", in.TargetUserID, "delivered", n)

	default:
		slog.DebugContext(ctx, "ws: ignoring unknown message type", "conn_id", connID, "rtype", in.Type)
	}
}

// closeSession closes sess and reports whether this call was the one that
// closed it.
func (h *Hub) closeSession(ctx context.Context, sess *Session, reason string) bool {
	removed, closed := sess.Close()
	if !closed {
		return false
	}
	if removed != (client.Identity{}) {
		slog.InfoContext(ctx, "ws: client removed", "conn_id", sess.Conn().ID(), "client", removed.String(), "reason", reason)
	}
	return true
}

// Shutdown stops admitting connections, closes every live one and waits for
// their read loops to finish or ctx to expire.
func (h *Hub) Shutdown(ctx context.Context) error {
	h.mu.Lock()
	h.closing = true
	h.mu.Unlock()

	h.live.Range(func(_, v any) bool {
		v.(*wsConn).Close()
		return true
	})

	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
