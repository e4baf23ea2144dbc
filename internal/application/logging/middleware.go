package logging

import (
	"context"
	"errors"
	"time"

	"github.com/andrescamacho/mediator-go/internal/application/mediator"
	"github.com/andrescamacho/mediator-go/pkg/utils"
)

// RequestIDFromContext returns the ID assigned by LoggingMiddleware, or "" outside a dispatch
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// LoggingMiddleware logs every dispatch with a generated request ID.
//
// The logger is also placed in the context so handlers can use
// LoggerFromContext. Failures are logged and returned unchanged. Validation
// failures are logged at WARNING, every other failure at ERROR.
// If logger is nil the logger already in the context is used.
func LoggingMiddleware(logger Logger) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		log := logger
		if log == nil {
			log = LoggerFromContext(ctx)
		}

		requestName := mediator.RequestName(request)
		requestID := utils.GenerateRequestID(requestName)

		ctx = WithLogger(ctx, log)
		ctx = context.WithValue(ctx, requestIDKey, requestID)

		log.Log(LevelDebug, "Dispatching request", map[string]interface{}{
			"request":    requestName,
			"request_id": requestID,
		})

		start := time.Now()
		response, err := next(ctx, request)
		durationMs := time.Since(start).Milliseconds()

		if err != nil {
			level := LevelError
			if errors.Is(err, mediator.ErrValidation) {
				level = LevelWarn
			}
			log.Log(level, "Request failed", map[string]interface{}{
				"request":     requestName,
				"request_id":  requestID,
				"duration_ms": durationMs,
				"error":       err,
			})
			return nil, err
		}

		log.Log(LevelInfo, "Request completed", map[string]interface{}{
			"request":     requestName,
			"request_id":  requestID,
			"duration_ms": durationMs,
		})
		return response, nil
	}
}
