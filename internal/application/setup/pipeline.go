package setup

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/mediator-go/internal/adapters/metrics"
	"github.com/andrescamacho/mediator-go/internal/adapters/persistence"
	"github.com/andrescamacho/mediator-go/internal/application/behaviors"
	"github.com/andrescamacho/mediator-go/internal/application/logging"
	"github.com/andrescamacho/mediator-go/internal/application/mediator"
	"github.com/andrescamacho/mediator-go/internal/domain/shared"
	"github.com/andrescamacho/mediator-go/internal/infrastructure/config"
)

// PipelineDependencies are the collaborators the configured behaviors need.
// Nil fields disable the behaviors that depend on them.
type PipelineDependencies struct {
	Logger    logging.Logger
	DB        *gorm.DB
	Collector *metrics.DispatchMetricsCollector
	Clock     shared.Clock
}

// PipelineOptions translates pipeline configuration into mediator options.
//
// Recovery wraps everything, validators included. The remaining behaviors run
// outermost first: logging, metrics, cancellation, timeout, rate limit,
// circuit breaker, transaction. Validation is placed according to
// cfg.Validation, either just inside recovery or just before the handler.
func PipelineOptions(cfg config.PipelineConfig, deps PipelineDependencies) ([]mediator.Option, error) {
	middlewares := []mediator.Middleware{
		logging.LoggingMiddleware(deps.Logger),
	}
	if deps.Collector != nil {
		middlewares = append(middlewares, metrics.PrometheusMiddleware(deps.Collector))
	}
	middlewares = append(middlewares, behaviors.Cancellation())
	if cfg.RequestTimeout > 0 {
		middlewares = append(middlewares, behaviors.Timeout(cfg.RequestTimeout))
	}
	if cfg.RateLimit.Enabled {
		middlewares = append(middlewares, behaviors.RateLimit(behaviors.NewLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Burst)))
	}
	if cfg.CircuitBreaker.Enabled {
		breaker := behaviors.NewCircuitBreaker(cfg.CircuitBreaker.MaxFailures, cfg.CircuitBreaker.Timeout, deps.Clock)
		middlewares = append(middlewares, breaker.Middleware())
	}
	if cfg.Transactions && deps.DB != nil {
		middlewares = append(middlewares, persistence.TransactionMiddleware(deps.DB))
	}

	opts := []mediator.Option{
		mediator.WithOuterMiddleware(behaviors.Recovery()),
		mediator.WithMiddleware(middlewares...),
	}

	switch {
	case !cfg.Validation.Enabled:
		opts = append(opts, mediator.WithValidation(false))
	case cfg.Validation.Position == config.ValidationLast:
		opts = append(opts, mediator.WithValidationAfterBehaviors())
	case cfg.Validation.Position == config.ValidationFirst, cfg.Validation.Position == "":
		// outermost is the mediator default
	default:
		return nil, fmt.Errorf("unknown validation position: %s", cfg.Validation.Position)
	}

	return opts, nil
}

// CreateConfiguredMediator builds a mediator with the configured pipeline and
// every application handler registered
func (r *HandlerRegistry) CreateConfiguredMediator(cfg config.PipelineConfig, deps PipelineDependencies) (mediator.Mediator, error) {
	if deps.Clock == nil {
		deps.Clock = r.clock
	}

	opts, err := PipelineOptions(cfg, deps)
	if err != nil {
		return nil, err
	}

	b := mediator.NewBuilder(opts...)
	if err := AddApplication(b, r); err != nil {
		return nil, fmt.Errorf("failed to register application handlers: %w", err)
	}
	return b.Build()
}
