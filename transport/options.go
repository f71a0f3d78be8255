// Package transport implements the sync connection: TCP connect,
// optional TLS, the login handshake, and framed send/receive built on
// the wire codec. The cooperative-async variant (asyncconn.go) shares
// the same Conn/Options/error-mapping contract; "cooperative" here
// means it never blocks a goroutine that isn't doing its own I/O.
package transport

import "time"

// VerifyMode selects how the TLS variant validates the server's
// certificate: system CAs, no verification, or a custom CA bundle
// with an optional client certificate.
type VerifyMode int

const (
	VerifySystemCAs VerifyMode = iota
	VerifyNone
	VerifyCustom
)

// TLSOptions configures the optional TLS wrapping applied after TCP
// connect and before handshake.
type TLSOptions struct {
	Enabled    bool
	Verify     VerifyMode
	ServerName string // used with VerifySystemCAs/VerifyCustom
	CAFile     string // PEM bundle, VerifyCustom only
	CertFile   string // client certificate, VerifyCustom only
	KeyFile    string // client key, VerifyCustom only
}

// Options configures a single connection attempt.
type Options struct {
	Host     string
	Port     int
	User     string
	Password string
	TLS      TLSOptions
	Timeout  time.Duration // applied to every I/O call; zero means no deadline
}
