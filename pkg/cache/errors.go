package cache

import (
	"context"
	"errors"
	"time"
)

// Errors reported by the Redis artifact cache. The pipeline logs them and
// renders anyway, so a broken cache only costs a recomputed layout.
var (
	// ErrNetwork marks a Redis server that could not be reached.
	ErrNetwork = errors.New("network error")

	// ErrBackend marks a command the Redis server rejected.
	ErrBackend = errors.New("cache backend error")
)

// RetryableError marks a cache failure worth another attempt, such as a
// Redis connection refused while the server is still starting.
type RetryableError struct{ Err error }

// Retryable marks err for RetryWithBackoff. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err carries a RetryableError anywhere in its
// chain.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// retryDelay is the first backoff interval; it doubles per attempt.
var retryDelay = 250 * time.Millisecond

// RetryWithBackoff calls fn up to three times, doubling the wait after each
// retryable failure. NewRedisCache uses it for the initial ping. Any other
// error, or a done ctx, ends the loop at once.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	const attempts = 3
	delay := retryDelay
	var lastErr error

	for i := 0; i < attempts; i++ {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !IsRetryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}
