package transport

import (
	"crypto/tls"
	"crypto/x509"
	"net"
	"os"

	"qgo/errs"
)

// wrapTLS wraps conn in a TLS client connection per opts. TLS is
// applied after TCP connect and before the login handshake.
func wrapTLS(conn net.Conn, opts TLSOptions) (net.Conn, error) {
	cfg := &tls.Config{ServerName: opts.ServerName}

	switch opts.Verify {
	case VerifyNone:
		cfg.InsecureSkipVerify = true
	case VerifyCustom:
		pool := x509.NewCertPool()
		if opts.CAFile != "" {
			pem, err := os.ReadFile(opts.CAFile)
			if err != nil {
				return nil, &errs.ConnectionError{Op: "tls ca load", Err: err}
			}
			if !pool.AppendCertsFromPEM(pem) {
				return nil, &errs.ConnectionError{Op: "tls ca load", Err: errBadCABundle}
			}
			cfg.RootCAs = pool
		}
		if opts.CertFile != "" && opts.KeyFile != "" {
			cert, err := tls.LoadX509KeyPair(opts.CertFile, opts.KeyFile)
			if err != nil {
				return nil, &errs.ConnectionError{Op: "tls client cert", Err: err}
			}
			cfg.Certificates = []tls.Certificate{cert}
		}
	case VerifySystemCAs:
		// zero-value tls.Config already verifies against the system pool.
	}

	tlsConn := tls.Client(conn, cfg)
	if err := tlsConn.Handshake(); err != nil {
		return nil, &errs.ConnectionError{Op: "tls handshake", Err: err}
	}
	return tlsConn, nil
}
