package ws

import (
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var ErrSendBufferFull = errors.New("ws: send buffer full")

// wsConn adapts a gorilla connection to Conn. Writes go through a buffered
// channel drained by writePump, the only goroutine that writes data frames.
type wsConn struct {
	id   string
	ws   *websocket.Conn
	opts Options

	send chan []byte
	done chan struct{}

	closeOnce sync.Once
	// onWriteError runs at most once, before the connection is torn down.
	onWriteError func(error)
}

func newConn(id string, ws *websocket.Conn, opts Options) *wsConn {
	return &wsConn{
		id:   id,
		ws:   ws,
		opts: opts,
		send: make(chan []byte, opts.SendBuffer),
		done: make(chan struct{}),
	}
}

func (c *wsConn) ID() string { return c.id }

func (c *wsConn) IsOpen() bool {
	select {
	case <-c.done:
		return false
	default:
		return true
	}
}

func (c *wsConn) Send(payload []byte) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}
	select {
	case c.send <- payload:
		return nil
	case <-c.done:
		return ErrClosed
	default:
		return ErrSendBufferFull
	}
}

// Close sends a best-effort close frame and closes the socket. Safe to call
// from any goroutine, any number of times.
func (c *wsConn) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = c.ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(c.opts.WriteTimeout))
		_ = c.ws.Close()
	})
}

// writePump drains the send queue and keeps the peer alive with pings until
// the connection closes or a write fails.
func (c *wsConn) writePump() {
	ticker := time.NewTicker(c.opts.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case payload := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(c.opts.WriteTimeout))
			if err := c.ws.WriteMessage(websocket.TextMessage, payload); err != nil {
				c.fail(err)
				return
			}
		case <-ticker.C:
			if err := c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(c.opts.WriteTimeout)); err != nil {
				c.fail(err)
				return
			}
		}
	}
}

func (c *wsConn) fail(err error) {
	if !c.IsOpen() {
		return
	}
	if c.onWriteError != nil {
		c.onWriteError(err)
	}
	c.Close()
}
