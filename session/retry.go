package session

import (
	"errors"

	"qgo/errs"

	"github.com/cenkalti/backoff/v4"
)

// isRetryable reports whether err should trigger a reconnect-and-retry
// cycle. The default is ConnectionError only; a policy may widen this
// via RetryableKinds.
func (p RetryPolicy) isRetryable(err error) bool {
	if p.RetryableKinds != nil {
		return p.RetryableKinds(err)
	}
	var connErr *errs.ConnectionError
	return errors.As(err, &connErr)
}

// backOff builds the cenkalti/backoff policy for the
// `min(max_delay, base_delay * backoff_factor^attempt)` schedule:
// RandomizationFactor 0 keeps it deterministic, and WithMaxRetries
// bounds the attempt count.
func (p RetryPolicy) backOff() backoff.BackOff {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = p.BaseDelay
	eb.Multiplier = p.BackoffFactor
	eb.MaxInterval = p.MaxDelay
	eb.RandomizationFactor = 0
	eb.MaxElapsedTime = 0
	return backoff.WithMaxRetries(eb, uint64(p.MaxRetries))
}

// withRetry runs op, reconnecting via reconnect and retrying on every
// RetryPolicy-retryable error, up to MaxRetries attempts. A
// non-retryable error (including every QError) is returned
// immediately; on exhaustion, the last error propagates.
func (s *Session) withRetry(op func() error) error {
	if s.opts.Retry.MaxRetries == 0 {
		return op()
	}
	attempt := func() error {
		err := op()
		if err == nil {
			return nil
		}
		if !s.opts.Retry.isRetryable(err) {
			return backoff.Permanent(err)
		}
		if reconnErr := s.reconnect(); reconnErr != nil {
			return backoff.Permanent(reconnErr)
		}
		return err
	}
	return backoff.Retry(attempt, s.opts.Retry.backOff())
}
