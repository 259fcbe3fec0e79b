package generation

import (
	"context"
	"errors"
	"time"
)

// RetryOptions bounds WithRetry. Attempts counts total tries, not re-tries.
type RetryOptions struct {
	Attempts int
	// Backoff is the pause between attempts. Cooldown-flagged kinds wait
	// twice as long.
	Backoff time.Duration
}

// WithRetry centralizes the resubmit-identical-request pattern: it invokes fn
// up to Attempts times, stopping early on success, on a non-retryable error,
// or on context cancellation. The final error is returned unchanged so the
// caller still sees the full classification.
func WithRetry[T any](ctx context.Context, opts RetryOptions, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	attempts := opts.Attempts
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		if err := ctx.Err(); err != nil {
			if lastErr != nil {
				return zero, lastErr
			}
			return zero, err
		}

		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		var classified *ClassifiedError
		if !errors.As(err, &classified) || !classified.Retryable {
			return zero, err
		}
		if i == attempts-1 {
			break
		}

		wait := opts.Backoff
		if classified.Cooldown {
			wait *= 2
		}
		if wait > 0 {
			select {
			case <-ctx.Done():
				return zero, lastErr
			case <-time.After(wait):
			}
		}
	}
	return zero, lastErr
}
