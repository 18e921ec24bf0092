package gotdoc

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimitedCompleter paces requests to a Completer.
type RateLimitedCompleter struct {
	completer Completer
	limiter   *rate.Limiter
}

// NewRateLimitedCompleter allows requestsPerMinute calls per minute with a
// burst of one. A non-positive rate disables pacing.
func NewRateLimitedCompleter(completer Completer, requestsPerMinute int) *RateLimitedCompleter {
	limit := rate.Inf
	if requestsPerMinute > 0 {
		limit = rate.Limit(float64(requestsPerMinute) / 60.0)
	}
	return &RateLimitedCompleter{
		completer: completer,
		limiter:   rate.NewLimiter(limit, 1),
	}
}

// Complete implements Completer with rate limiting.
func (r *RateLimitedCompleter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", &ProviderError{
			Provider: "ratelimit",
			Message:  "rate limit wait cancelled",
			Cause:    err,
		}
	}
	return r.completer.Complete(ctx, req)
}

// Limiter returns the underlying rate limiter for inspection.
func (r *RateLimitedCompleter) Limiter() *rate.Limiter {
	return r.limiter
}

// Verify RateLimitedCompleter implements Completer
var _ Completer = (*RateLimitedCompleter)(nil)
