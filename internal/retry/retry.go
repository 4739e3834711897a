// Package retry provides a fixed-cap retry policy with exponential backoff.
package retry

import (
	"context"
	"time"
)

// Policy retries an operation up to MaxAttempts times. The delay between
// consecutive attempts doubles each time, starting from BaseDelay.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// Backoff returns the delay inserted after the given zero-indexed failed
// attempt: BaseDelay * 2^attempt.
func (p Policy) Backoff(attempt int) time.Duration {
	return p.BaseDelay << attempt
}

// Do runs op until it succeeds or attempts are exhausted. Every failure is
// retried identically; the last observed error is returned. The backoff
// sleep is interrupted when ctx is cancelled.
func (p Policy) Do(ctx context.Context, op func(context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}
		if attempt == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.Backoff(attempt)):
		}
	}
	return lastErr
}
