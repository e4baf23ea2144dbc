package behaviors

import (
	"context"

	"github.com/andrescamacho/mediator-go/internal/application/mediator"
)

// Cancellation stops a dispatch whose context is already done before any
// inner behavior or the handler runs. The context error is returned as is.
func Cancellation() mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return next(ctx, request)
	}
}
