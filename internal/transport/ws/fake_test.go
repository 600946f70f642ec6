package ws_test

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

var errBrokenPipe = errors.New("broken pipe")

// fakeConn records every payload it is sent.
type fakeConn struct {
	id string

	mu      sync.Mutex
	open    bool
	sendErr error
	got     [][]byte
}

func newFakeConn() *fakeConn {
	return &fakeConn{id: uuid.NewString(), open: true}
}

func (c *fakeConn) ID() string { return c.id }

func (c *fakeConn) Send(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sendErr != nil {
		return c.sendErr
	}
	c.got = append(c.got, payload)
	return nil
}

func (c *fakeConn) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

func (c *fakeConn) setOpen(open bool) {
	c.mu.Lock()
	c.open = open
	c.mu.Unlock()
}

func (c *fakeConn) failSends(err error) {
	c.mu.Lock()
	c.sendErr = err
	c.mu.Unlock()
}

func (c *fakeConn) received() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.got))
	for i, p := range c.got {
		out[i] = string(p)
	}
	return out
}
