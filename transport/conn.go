package transport

import (
	"fmt"
	"net"
	"time"

	"qgo/errs"
	"qgo/wire"
)

// State is a connection's lifecycle stage: Closed -> Handshaking ->
// Open -> Closed, with Open -> Broken on I/O error.
type State int

const (
	StateClosed State = iota
	StateHandshaking
	StateOpen
	StateBroken
)

// Conn is one server connection: a raw net.Conn (optionally wrapped in
// TLS), the negotiated capability byte, and its lifecycle state.
// Conn is single-owner — Pool transfers ownership for the duration of
// an acquisition — so it holds no internal lock.
type Conn struct {
	netConn    net.Conn
	capability wire.Capability
	state      State
	timeout    time.Duration
}

// Connect dials the server, optionally wraps TLS, and performs the
// login handshake. OS-level connect failures surface
// as ConnectionError; handshake failures surface as the
// errs.HandshakeError/errs.AuthenticationError that wire.Handshake returns.
func Connect(opts Options) (*Conn, error) {
	addr := fmt.Sprintf("%s:%d", opts.Host, opts.Port)
	dialer := net.Dialer{Timeout: opts.Timeout}
	raw, err := dialer.Dial("tcp", addr)
	if err != nil {
		return nil, &errs.ConnectionError{Op: "dial", Err: err}
	}

	c := &Conn{netConn: raw, state: StateHandshaking, timeout: opts.Timeout}

	netConn := raw
	if opts.TLS.Enabled {
		netConn, err = wrapTLS(raw, opts.TLS)
		if err != nil {
			raw.Close()
			return nil, err
		}
		c.netConn = netConn
	}

	c.setDeadline()
	cap, err := wire.Handshake(c.netConn, opts.User, opts.Password)
	if err != nil {
		c.netConn.Close()
		c.state = StateClosed
		return nil, err
	}
	c.capability = cap
	c.state = StateOpen
	return c, nil
}

func (c *Conn) setDeadline() {
	if c.timeout <= 0 {
		return
	}
	c.netConn.SetDeadline(time.Now().Add(c.timeout))
}

// State returns the connection's current lifecycle stage.
func (c *Conn) State() State { return c.state }

// Capability returns the capability byte negotiated at handshake.
func (c *Conn) Capability() wire.Capability { return c.capability }

// Close closes the underlying socket and marks the connection closed.
func (c *Conn) Close() error {
	c.state = StateClosed
	return c.netConn.Close()
}

// Send writes tv as a frame of the given kind. A write failure marks
// the connection Broken; broken sockets are never reused.
func (c *Conn) Send(kind wire.MessageKind, tv wire.TV) error {
	c.setDeadline()
	if err := wire.WriteFrame(c.netConn, kind, tv); err != nil {
		c.state = StateBroken
		return &errs.ConnectionError{Op: "send", Err: err}
	}
	return nil
}

// Receive reads one frame and decodes its body. If the decoded value
// is the wire error variant, Receive returns a QError carrying the
// server's message instead of the raw ErrorValue. A deserialization
// failure marks the connection Broken, since it implies the stream is
// no longer parseable.
func (c *Conn) Receive() (wire.TV, error) {
	c.setDeadline()
	frame, err := wire.ReadFrame(c.netConn)
	if err != nil {
		c.state = StateBroken
		return nil, &errs.ConnectionError{Op: "receive", Err: err}
	}
	tv, err := wire.Decode(frame.Body, frame.Order())
	if err != nil {
		c.state = StateBroken
		return nil, err
	}
	if ev, ok := tv.(wire.ErrorValue); ok {
		return nil, &errs.QError{Message: ev.Message}
	}
	return tv, nil
}

// Ping sends a trivial expression and awaits a matching reply, without
// raising on a non-error response.
func (c *Conn) Ping() error {
	if err := c.Send(wire.MsgSyncRequest, stringTV("")); err != nil {
		return err
	}
	_, err := c.Receive()
	return err
}

// stringTV wraps a Go string as the char-vector TV the server's
// expression slots expect: a UTF-8 byte sequence of char elements.
func stringTV(s string) wire.TV {
	elems := make([]any, len(s))
	for i := 0; i < len(s); i++ {
		elems[i] = wire.Char(s[i])
	}
	return wire.Vector{K: wire.KChar, Elems: elems}
}
