package gotdoc

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestRateLimitedCompleter_Disabled(t *testing.T) {
	stub := &stubCompleter{reply: "ok ok ok"}
	limited := NewRateLimitedCompleter(stub, 0)

	if limited.Limiter().Limit() != rate.Inf {
		t.Errorf("expected unlimited rate, got %v", limited.Limiter().Limit())
	}

	for i := 0; i < 5; i++ {
		if _, err := limited.Complete(context.Background(), CompletionRequest{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if stub.Calls() != 5 {
		t.Errorf("expected 5 calls, got %d", stub.Calls())
	}
}

func TestRateLimitedCompleter_Rate(t *testing.T) {
	limited := NewRateLimitedCompleter(&stubCompleter{}, 120)

	if got := float64(limited.Limiter().Limit()); got != 2 {
		t.Errorf("expected 2 requests per second, got %v", got)
	}
	if limited.Limiter().Burst() != 1 {
		t.Errorf("expected burst 1, got %d", limited.Limiter().Burst())
	}
}

func TestRateLimitedCompleter_ContextCancelled(t *testing.T) {
	stub := &stubCompleter{reply: "ok ok ok"}
	limited := NewRateLimitedCompleter(stub, 1)

	// Consume the single burst token.
	if _, err := limited.Complete(context.Background(), CompletionRequest{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := limited.Complete(ctx, CompletionRequest{})
	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if pe.Provider != "ratelimit" {
		t.Errorf("unexpected provider %q", pe.Provider)
	}
	if stub.Calls() != 1 {
		t.Errorf("expected 1 call, got %d", stub.Calls())
	}
}
