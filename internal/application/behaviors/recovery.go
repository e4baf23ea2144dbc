package behaviors

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/andrescamacho/mediator-go/internal/application/logging"
	"github.com/andrescamacho/mediator-go/internal/application/mediator"
)

// PanicError is returned when a handler or inner behavior panics
type PanicError struct {
	RequestType string
	Value       interface{}
	Stack       []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic while handling %s: %v", e.RequestType, e.Value)
}

// Recovery converts panics raised below it into *PanicError.
func Recovery() mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (response mediator.Response, err error) {
		defer func() {
			if r := recover(); r != nil {
				panicErr := &PanicError{
					RequestType: mediator.RequestName(request),
					Value:       r,
					Stack:       debug.Stack(),
				}
				logging.LoggerFromContext(ctx).Log(logging.LevelError, "Recovered from panic", map[string]interface{}{
					"request": panicErr.RequestType,
					"panic":   fmt.Sprint(r),
				})
				response = nil
				err = panicErr
			}
		}()
		return next(ctx, request)
	}
}
