package ws

import "time"

// Options bounds per-connection resources.
type Options struct {
	// WriteTimeout bounds each frame write; a peer that cannot accept a frame
	// in time is treated as failed.
	WriteTimeout time.Duration
	// PongWait is how long the reader waits for any frame or pong before
	// declaring the peer dead. PingInterval must be shorter.
	PongWait     time.Duration
	PingInterval time.Duration
	// SendBuffer is the number of outbound frames queued per connection
	// before further sends to it are dropped.
	SendBuffer      int
	MaxMessageBytes int64
}

var DefaultOptions = Options{
	WriteTimeout:    10 * time.Second,
	PongWait:        60 * time.Second,
	PingInterval:    54 * time.Second,
	SendBuffer:      32,
	MaxMessageBytes: 64 << 10,
}

// withDefaults fills unset fields from DefaultOptions and keeps pings inside the pong window.
func (o Options) withDefaults() Options {
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = DefaultOptions.WriteTimeout
	}
	if o.PongWait <= 0 {
		o.PongWait = DefaultOptions.PongWait
	}
	if o.PingInterval <= 0 || o.PingInterval >= o.PongWait {
		o.PingInterval = o.PongWait * 9 / 10
	}
	if o.SendBuffer <= 0 {
		o.SendBuffer = DefaultOptions.SendBuffer
	}
	if o.MaxMessageBytes <= 0 {
		o.MaxMessageBytes = DefaultOptions.MaxMessageBytes
	}
	return o
}
