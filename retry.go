package gotdoc

import (
	"context"
	"errors"
	"time"
)

// RetryPolicy holds the fixed-delay retry schedule around a model call.
type RetryPolicy struct {
	MaxRetries  int           // Retries after the first attempt
	ErrorDelay  time.Duration // Wait after a transport error or empty response
	RejectDelay time.Duration // Wait after a response that failed acceptance
}

// DefaultRetryPolicy returns five retries with 2s/1s pauses.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:  5,
		ErrorDelay:  2 * time.Second,
		RejectDelay: 1 * time.Second,
	}
}

// Attempts returns the total number of calls the policy allows.
func (p RetryPolicy) Attempts() int {
	if p.MaxRetries < 0 {
		return 1
	}
	return p.MaxRetries + 1
}

// delayFor picks the pause that follows err.
func (p RetryPolicy) delayFor(err error) time.Duration {
	var rejected *rejectedOutputError
	if errors.As(err, &rejected) {
		return p.RejectDelay
	}
	return p.ErrorDelay
}

// AttemptFunc is one try; attempt counts from 1.
type AttemptFunc[T any] func(attempt int) (T, error)

// OnRetryFunc observes a failed attempt before the pause.
type OnRetryFunc func(attempt int, err error, delay time.Duration)

// WithRetry calls fn until it succeeds or the policy is exhausted, then
// returns a *TranslationFailedError carrying the attempt count and last cause.
// Every failure is retried; only context cancellation stops early.
func WithRetry[T any](ctx context.Context, p RetryPolicy, fn AttemptFunc[T], onRetry OnRetryFunc) (T, error) {
	var lastErr error
	var zero T

	total := p.Attempts()
	for attempt := 1; attempt <= total; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, &TranslationFailedError{Attempts: attempt - 1, Cause: err}
		}

		result, err := fn(attempt)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt == total {
			break
		}

		delay := p.delayFor(err)
		if onRetry != nil {
			onRetry(attempt, err, delay)
		}

		if delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return zero, &TranslationFailedError{Attempts: attempt, Cause: ctx.Err()}
			case <-timer.C:
			}
		}
	}

	return zero, &TranslationFailedError{Attempts: total, Cause: lastErr}
}
