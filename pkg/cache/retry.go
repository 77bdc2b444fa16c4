package cache

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks a backend failure as transient, such as a dropped
// Redis connection. [RetryWithBackoff] only retries errors carrying it.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable marks err as transient. It returns nil for a nil err.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether any error in err's chain is a [RetryableError].
func IsRetryable(err error) bool {
	var target *RetryableError
	return errors.As(err, &target)
}

// RetryDelay is the pause after the first failed attempt. Later pauses
// double.
var RetryDelay = 200 * time.Millisecond

const retryAttempts = 3

// RetryWithBackoff calls fn until it succeeds, fails with a non-retryable
// error, or has been tried three times. A cancelled ctx ends the wait
// between attempts and its error is returned.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	wait := RetryDelay
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !IsRetryable(err) || attempt == retryAttempts {
			return err
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		wait *= 2
	}
}
