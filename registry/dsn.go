// Package registry implements the DSN grammar and the engine/group
// catalog the service discovery client resolves against: a CSV file
// of (dataset, cluster, dbtype, node, host, port, port_env, env)
// rows, keyed by FQN (dataset.cluster.dbtype.node), plus
// env-var-driven resolution for deployments that skip the CSV
// entirely. There is deliberately no JSON/TOML/YAML config loader —
// file-format configuration belongs to the embedding application.
package registry

import (
	"fmt"
	"strconv"
	"strings"

	"qgo/errs"
	"qgo/transport"
)

// Scheme is the DSN's leading token: kdb or kdb+tls.
type Scheme string

const (
	SchemeKDB    Scheme = "kdb"
	SchemeKDBTLS Scheme = "kdb+tls"
)

// DSN is a parsed connection string: `scheme "://" [user ":" pass "@"]
// host ":" port`.
type DSN struct {
	Scheme   Scheme
	User     string
	Password string
	Host     string
	Port     int
}

// ParseDSN parses s per the grammar above.
func ParseDSN(s string) (DSN, error) {
	schemeSep := strings.Index(s, "://")
	if schemeSep < 0 {
		return DSN{}, &errs.ConfigError{Err: fmt.Errorf("dsn %q: missing scheme separator \"://\"", s)}
	}
	scheme := Scheme(s[:schemeSep])
	if scheme != SchemeKDB && scheme != SchemeKDBTLS {
		return DSN{}, &errs.ConfigError{Err: fmt.Errorf("dsn %q: unknown scheme %q", s, scheme)}
	}
	rest := s[schemeSep+len("://"):]

	var user, pass string
	if at := strings.LastIndex(rest, "@"); at >= 0 {
		userinfo := rest[:at]
		rest = rest[at+1:]
		if colon := strings.Index(userinfo, ":"); colon >= 0 {
			user, pass = userinfo[:colon], userinfo[colon+1:]
		} else {
			user = userinfo
		}
	}

	host, portStr, err := splitHostPort(rest)
	if err != nil {
		return DSN{}, &errs.ConfigError{Err: fmt.Errorf("dsn %q: %w", s, err)}
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return DSN{}, &errs.ConfigError{Err: fmt.Errorf("dsn %q: invalid port %q: %w", s, portStr, err)}
	}

	return DSN{Scheme: scheme, User: user, Password: pass, Host: host, Port: port}, nil
}

func splitHostPort(s string) (host, port string, err error) {
	colon := strings.LastIndex(s, ":")
	if colon < 0 {
		return "", "", fmt.Errorf("missing \":port\"")
	}
	return s[:colon], s[colon+1:], nil
}

// String renders the DSN back into grammar form.
func (d DSN) String() string {
	var b strings.Builder
	b.WriteString(string(d.Scheme))
	b.WriteString("://")
	if d.User != "" {
		b.WriteString(d.User)
		if d.Password != "" {
			b.WriteByte(':')
			b.WriteString(d.Password)
		}
		b.WriteByte('@')
	}
	b.WriteString(d.Host)
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(d.Port))
	return b.String()
}

// TransportOptions converts the DSN into transport.Options, enabling
// TLS when the scheme is kdb+tls.
func (d DSN) TransportOptions() transport.Options {
	return transport.Options{
		Host:     d.Host,
		Port:     d.Port,
		User:     d.User,
		Password: d.Password,
		TLS:      transport.TLSOptions{Enabled: d.Scheme == SchemeKDBTLS},
	}
}
