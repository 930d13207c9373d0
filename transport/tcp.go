// Package transport is the one external collaborator this library ships
// in-tree: a plain TCP implementation of the Transport boundary (§6). It
// is not part of the core engineering (framing, codec, transaction
// multiplexing, message catalogue); a caller may supply any other
// Transport that satisfies the same four operations.
package transport

import (
	"fmt"
	"net"
	"time"
)

// DefaultPort is the PakBus-over-TCP port used when the caller doesn't
// override it (§6).
const DefaultPort = 6785

// Transport is the boundary the rest of this library depends on:
// send/recv/set_timeout/close over an already-open byte stream (§6).
// pbframe.ByteSource is satisfied by Recv alone, so a *Conn can be handed
// straight to pbframe.NewFrameReader.
type Transport interface {
	Send(b []byte) error
	Recv(n int) ([]byte, error)
	SetTimeout(d time.Duration) error
	Close() error
}

// Conn is the TCP Transport. It is not safe for concurrent use by more
// than one goroutine at a time, matching the single-outstanding-request
// model the multiplexer assumes (§5).
type Conn struct {
	nc      net.Conn
	timeout time.Duration
}

var _ Transport = (*Conn)(nil)

// Open dials host:port and returns a ready Transport. A zero timeout
// means "no deadline" and is applied to the dial itself as well as every
// subsequent Send/Recv until SetTimeout changes it.
func Open(host string, port int, timeout time.Duration) (*Conn, error) {
	if port == 0 {
		port = DefaultPort
	}
	addr := fmt.Sprintf("%s:%d", host, port)
	nc, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, &ErrTransport{Op: fmt.Sprintf("dial %s", addr), Err: err}
	}
	return &Conn{nc: nc, timeout: timeout}, nil
}

func (c *Conn) deadline() time.Time {
	if c.timeout <= 0 {
		return time.Time{}
	}
	return time.Now().Add(c.timeout)
}

// Send writes the complete frame b, retrying short writes.
func (c *Conn) Send(b []byte) error {
	if err := c.nc.SetWriteDeadline(c.deadline()); err != nil {
		return &ErrTransport{Op: "send", Err: err}
	}
	for len(b) > 0 {
		n, err := c.nc.Write(b)
		if err != nil {
			return &ErrTransport{Op: "send", Err: err}
		}
		b = b[n:]
	}
	return nil
}

// Recv reads up to n bytes, like a raw socket recv(n): it may return
// fewer than n bytes on a short read, but always at least one unless it
// errors. pbframe.FrameReader calls this with n=1.
func (c *Conn) Recv(n int) ([]byte, error) {
	if err := c.nc.SetReadDeadline(c.deadline()); err != nil {
		return nil, &ErrTransport{Op: "recv", Err: err}
	}
	buf := make([]byte, n)
	r, err := c.nc.Read(buf)
	if err != nil {
		return nil, &ErrTransport{Op: "recv", Err: err}
	}
	return buf[:r], nil
}

// SetTimeout changes the deadline applied to every subsequent Send/Recv.
func (c *Conn) SetTimeout(d time.Duration) error {
	c.timeout = d
	return nil
}

// Close closes the underlying connection.
func (c *Conn) Close() error {
	return c.nc.Close()
}
