package behaviors

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/andrescamacho/mediator-go/internal/application/mediator"
)

// ErrRateLimited is returned when a dispatch would exceed the configured rate
var ErrRateLimited = errors.New("rate limit exceeded")

// RateLimit rejects dispatches beyond the limiter's budget without waiting.
func RateLimit(limiter *rate.Limiter) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if !limiter.Allow() {
			return nil, fmt.Errorf("%s: %w", mediator.RequestName(request), ErrRateLimited)
		}
		return next(ctx, request)
	}
}

// RateLimitWait blocks until the limiter grants a token or ctx is done.
func RateLimitWait(limiter *rate.Limiter) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if err := limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%s: %w: %v", mediator.RequestName(request), ErrRateLimited, err)
		}
		return next(ctx, request)
	}
}

// NewLimiter builds a token bucket allowing requestsPerSecond with the given burst
func NewLimiter(requestsPerSecond float64, burst int) *rate.Limiter {
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
}
