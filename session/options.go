// Package session owns one transport connection and exposes the
// client's request/response operations: raw, exec, call, create/drop
// table, table listing, schema reflection, namespace and function
// introspection. Retry/backoff wraps every operation.
package session

import (
	"time"

	"qgo/transport"
)

// RetryPolicy controls the session's reconnect-and-retry loop: attempt
// count, exponential delay schedule, and which error kinds count as
// retryable. The zero value retries nothing (MaxRetries 0); use
// DefaultRetryPolicy for the standard behavior.
type RetryPolicy struct {
	MaxRetries     int
	BaseDelay      time.Duration
	BackoffFactor  float64
	MaxDelay       time.Duration
	RetryableKinds func(error) bool // nil means the default: ConnectionError only
}

// DefaultRetryPolicy retries only ConnectionError, never QError.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:    3,
		BaseDelay:     100 * time.Millisecond,
		BackoffFactor: 2,
		MaxDelay:      5 * time.Second,
	}
}

// Options configures a Session.
type Options struct {
	Transport transport.Options
	Retry     RetryPolicy
}
