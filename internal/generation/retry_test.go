package generation

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWithRetryStopsOnSuccess(t *testing.T) {
	calls := 0
	got, err := WithRetry(context.Background(), RetryOptions{Attempts: 3}, func(context.Context) (string, error) {
		calls++
		if calls < 2 {
			return "", newClassified(KindUnknown, "flaky", nil)
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("WithRetry: %v", err)
	}
	if got != "ok" || calls != 2 {
		t.Fatalf("got %q after %d calls, want ok after 2", got, calls)
	}
}

func TestWithRetryStopsOnNonRetryable(t *testing.T) {
	fatal := &ClassifiedError{Kind: KindCredentialInvalid, Retryable: false}
	calls := 0
	_, err := WithRetry(context.Background(), RetryOptions{Attempts: 5}, func(context.Context) (int, error) {
		calls++
		return 0, fatal
	})
	if calls != 1 {
		t.Fatalf("calls = %d, want no retry for a non-retryable error", calls)
	}
	if !errors.Is(err, fatal) {
		t.Fatalf("err = %v, want the original error unchanged", err)
	}
}

func TestWithRetryUnclassifiedErrorIsNotRetried(t *testing.T) {
	calls := 0
	_, err := WithRetry(context.Background(), RetryOptions{Attempts: 3}, func(context.Context) (int, error) {
		calls++
		return 0, errors.New("plain failure")
	})
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
	if err == nil {
		t.Fatal("expected the failure back")
	}
}

func TestWithRetryExhaustsAttempts(t *testing.T) {
	retryable := newClassified(KindUnknown, "still broken", nil)
	calls := 0
	_, err := WithRetry(context.Background(), RetryOptions{Attempts: 3}, func(context.Context) (int, error) {
		calls++
		return 0, retryable
	})
	if calls != 3 {
		t.Fatalf("calls = %d, want all attempts used", calls)
	}
	if !errors.Is(err, retryable) {
		t.Fatalf("err = %v, want the last classification preserved", err)
	}
}

func TestWithRetryCooldownDoublesBackoff(t *testing.T) {
	cooldown := newClassified(KindQuotaExceeded, "quota", nil)
	start := time.Now()
	_, _ = WithRetry(context.Background(), RetryOptions{Attempts: 2, Backoff: 10 * time.Millisecond}, func(context.Context) (int, error) {
		return 0, cooldown
	})
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Fatalf("elapsed = %v, want at least the doubled backoff", elapsed)
	}
}

func TestWithRetryHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := WithRetry(ctx, RetryOptions{Attempts: 5, Backoff: time.Hour}, func(context.Context) (int, error) {
		calls++
		cancel()
		return 0, newClassified(KindUnknown, "boom", nil)
	})
	if calls != 1 {
		t.Fatalf("calls = %d, want cancellation to stop further attempts", calls)
	}
	if err == nil {
		t.Fatal("expected the last error back")
	}
}

func TestWithRetryZeroAttemptsMeansOne(t *testing.T) {
	calls := 0
	_, _ = WithRetry(context.Background(), RetryOptions{}, func(context.Context) (int, error) {
		calls++
		return 0, newClassified(KindUnknown, "x", nil)
	})
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}
