package wire

import (
	"fmt"
	"io"

	"qgo/errs"
)

// Capability is the single byte the server replies with after the
// handshake, naming the protocol level it negotiated with the client.
type Capability byte

// RequestedCapability is the terminator byte the client sends after
// "user:password": it requests the current framed, compression-capable
// protocol.
const RequestedCapability byte = 0x03

// Handshake performs the login exchange on a freshly connected socket:
// writes "user:password\x03\x00" and reads the single negotiated
// capability byte back. A zero-byte reply (clean EOF with nothing
// read) means the server rejected the credentials; any other read
// failure is a HandshakeError.
func Handshake(rw io.ReadWriter, user, password string) (Capability, error) {
	msg := fmt.Sprintf("%s:%s", user, password)
	buf := make([]byte, 0, len(msg)+2)
	buf = append(buf, msg...)
	buf = append(buf, RequestedCapability, 0x00)

	if _, err := rw.Write(buf); err != nil {
		return 0, &errs.HandshakeError{Err: err}
	}

	var reply [1]byte
	if _, err := io.ReadFull(rw, reply[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return 0, &errs.AuthenticationError{User: user}
		}
		return 0, &errs.HandshakeError{Err: err}
	}
	return Capability(reply[0]), nil
}
