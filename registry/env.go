package registry

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"qgo/errs"
)

// FromEnv resolves a DSN from environment variables named
// `<PREFIX>_<NAME>_{HOST,PORT,USER,PASS}`, for deployments that
// configure engines purely by environment rather than a registry
// CSV. User/Pass are optional; Host/Port are required.
func FromEnv(prefix, name string, scheme Scheme) (DSN, error) {
	base := strings.ToUpper(prefix) + "_" + strings.ToUpper(name) + "_"

	host, ok := os.LookupEnv(base + "HOST")
	if !ok {
		return DSN{}, &errs.ConfigError{Err: fmt.Errorf("missing environment variable %sHOST", base)}
	}
	portStr, ok := os.LookupEnv(base + "PORT")
	if !ok {
		return DSN{}, &errs.ConfigError{Err: fmt.Errorf("missing environment variable %sPORT", base)}
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return DSN{}, &errs.ConfigError{Err: fmt.Errorf("%sPORT: invalid port %q: %w", base, portStr, err)}
	}

	user := os.Getenv(base + "USER")
	pass := os.Getenv(base + "PASS")

	return DSN{Scheme: scheme, User: user, Password: pass, Host: host, Port: port}, nil
}
