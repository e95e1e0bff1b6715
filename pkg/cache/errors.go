package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNetwork marks a backend round trip that failed and may succeed on retry.
var ErrNetwork = errors.New("network error")

// RetryableError marks a failure that [Backoff.Do] may retry.
type RetryableError struct{ Err error }

// Retryable wraps err so that [Backoff.Do] retries it. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err or anything it wraps is a RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// networkError wraps a failed backend operation as retryable ErrNetwork.
func networkError(op string, err error) error {
	return Retryable(fmt.Errorf("%w: %s: %v", ErrNetwork, op, err))
}

// Backoff retries transient backend failures with a doubling delay.
type Backoff struct {
	Attempts int           // Total tries, including the first
	Delay    time.Duration // Wait before the second try
}

// DefaultBackoff is used by [RedisCache].
var DefaultBackoff = Backoff{Attempts: 3, Delay: 200 * time.Millisecond}

// Do runs fn until it succeeds, returns an error not marked [Retryable], or
// the attempts run out. The last error is returned. Cancelling ctx stops
// the wait between attempts.
func (b Backoff) Do(ctx context.Context, fn func() error) error {
	delay := b.Delay
	var err error
	for i := range max(b.Attempts, 1) {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
	}
	return err
}
