package gotdoc

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastPolicy(maxRetries int) RetryPolicy {
	return RetryPolicy{
		MaxRetries:  maxRetries,
		ErrorDelay:  time.Millisecond,
		RejectDelay: time.Millisecond,
	}
}

func TestWithRetry_Success(t *testing.T) {
	callCount := 0
	result, err := WithRetry(context.Background(), fastPolicy(3), func(attempt int) (string, error) {
		callCount++
		return "success", nil
	}, nil)

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if result != "success" {
		t.Errorf("Expected 'success', got %q", result)
	}
	if callCount != 1 {
		t.Errorf("Expected 1 call, got %d", callCount)
	}
}

func TestWithRetry_SucceedsOnLastAttempt(t *testing.T) {
	callCount := 0
	result, err := WithRetry(context.Background(), fastPolicy(5), func(attempt int) (string, error) {
		callCount++
		if attempt <= 5 {
			return "", errors.New("service unavailable")
		}
		return "success", nil
	}, nil)

	if err != nil {
		t.Fatalf("Expected success on attempt 6, got: %v", err)
	}
	if result != "success" {
		t.Errorf("Expected 'success', got %q", result)
	}
	if callCount != 6 {
		t.Errorf("Expected 6 calls, got %d", callCount)
	}
}

func TestWithRetry_Exhausted(t *testing.T) {
	cause := errors.New("service unavailable")
	callCount := 0
	_, err := WithRetry(context.Background(), fastPolicy(2), func(attempt int) (string, error) {
		callCount++
		return "", cause
	}, nil)

	var failed *TranslationFailedError
	if !errors.As(err, &failed) {
		t.Fatalf("Expected TranslationFailedError, got: %v", err)
	}
	if failed.Attempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", failed.Attempts)
	}
	if !errors.Is(err, cause) {
		t.Error("Expected last cause to be wrapped")
	}
	if callCount != 3 {
		t.Errorf("Expected 3 calls (1 + 2 retries), got %d", callCount)
	}
}

func TestWithRetry_DelayDependsOnFailure(t *testing.T) {
	p := RetryPolicy{MaxRetries: 2, ErrorDelay: 2 * time.Millisecond, RejectDelay: time.Millisecond}

	var delays []time.Duration
	_, _ = WithRetry(context.Background(), p, func(attempt int) (string, error) {
		if attempt == 1 {
			return "", &rejectedOutputError{Output: "no"}
		}
		return "", errors.New("timeout")
	}, func(attempt int, err error, delay time.Duration) {
		delays = append(delays, delay)
	})

	if len(delays) != 2 {
		t.Fatalf("Expected 2 retry callbacks, got %d", len(delays))
	}
	if delays[0] != p.RejectDelay {
		t.Errorf("Expected reject delay after rejected output, got %v", delays[0])
	}
	if delays[1] != p.ErrorDelay {
		t.Errorf("Expected error delay after transport error, got %v", delays[1])
	}
}

func TestWithRetry_ContextCanceled(t *testing.T) {
	p := RetryPolicy{MaxRetries: 3, ErrorDelay: time.Second, RejectDelay: time.Second}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := WithRetry(ctx, p, func(attempt int) (string, error) {
		return "", errors.New("rate limited")
	}, nil)

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got: %v", err)
	}
	if KindOf(err) != KindTranslationFailed {
		t.Errorf("Expected cancellation to surface as a translation failure, got %v", KindOf(err))
	}
}

func TestDefaultRetryPolicy(t *testing.T) {
	p := DefaultRetryPolicy()

	if p.MaxRetries != 5 {
		t.Errorf("Expected MaxRetries 5, got %d", p.MaxRetries)
	}
	if p.Attempts() != 6 {
		t.Errorf("Expected 6 attempts, got %d", p.Attempts())
	}
	if p.ErrorDelay != 2*time.Second {
		t.Errorf("Expected ErrorDelay 2s, got %v", p.ErrorDelay)
	}
	if p.RejectDelay != 1*time.Second {
		t.Errorf("Expected RejectDelay 1s, got %v", p.RejectDelay)
	}
}

func TestWithRetry_RetriesNonRetryableProviderError(t *testing.T) {
	callCount := 0
	result, err := WithRetry(context.Background(), fastPolicy(2), func(attempt int) (string, error) {
		callCount++
		if attempt == 1 {
			return "", &ProviderError{Provider: "openai", Message: "invalid request", Retryable: false}
		}
		return "success", nil
	}, nil)

	if err != nil {
		t.Fatalf("Expected success after retry, got: %v", err)
	}
	if result != "success" {
		t.Errorf("Expected 'success', got %q", result)
	}
	if callCount != 2 {
		t.Errorf("Expected 2 calls, got %d", callCount)
	}
}
