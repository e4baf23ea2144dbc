package behaviors

import (
	"context"
	"time"

	"github.com/andrescamacho/mediator-go/internal/application/mediator"
)

// Timeout bounds every dispatch by d. The handler sees the derived context;
// if it returns after the deadline passed, context.DeadlineExceeded is returned.
// A non-positive d disables the bound.
func Timeout(d time.Duration) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if d <= 0 {
			return next(ctx, request)
		}

		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()

		response, err := next(ctx, request)
		if err != nil {
			return nil, err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return response, nil
	}
}
