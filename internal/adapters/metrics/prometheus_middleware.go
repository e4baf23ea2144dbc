package metrics

import (
	"context"
	"time"

	"github.com/andrescamacho/mediator-go/internal/application/mediator"
)

// PrometheusMiddleware creates a middleware that records dispatch metrics
//
// This middleware wraps every request and records:
// - Dispatch duration (histogram)
// - Success/invalid/error counts (counter)
// - Requests in flight (gauge)
func PrometheusMiddleware(collector *DispatchMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		// Skip metrics if collector is nil (metrics disabled)
		if collector == nil {
			return next(ctx, request)
		}

		collector.inFlight.Inc()
		defer collector.inFlight.Dec()

		start := time.Now()
		response, err := next(ctx, request)
		collector.RecordDispatch(mediator.RequestName(request), time.Since(start).Seconds(), err)

		return response, err
	}
}
