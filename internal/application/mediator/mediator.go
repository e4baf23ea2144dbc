package mediator

import (
	"context"
	"reflect"
)

// settings holds pipeline configuration shared by Builder and NewMediator
type settings struct {
	outer          []Middleware
	middlewares    []Middleware
	validation     bool
	validationLast bool
	observer       StateObserver
}

// Option configures the dispatch pipeline
type Option func(*settings)

// WithValidation enables or disables the validation stage (enabled by default)
func WithValidation(enabled bool) Option {
	return func(s *settings) {
		s.validation = enabled
	}
}

// WithValidationAfterBehaviors places the validation stage innermost, directly
// before the handler, so the other middlewares also observe rejected requests.
// By default validation is outermost.
func WithValidationAfterBehaviors() Option {
	return func(s *settings) {
		s.validationLast = true
	}
}

// WithMiddleware appends middlewares to the pipeline in order
func WithMiddleware(middlewares ...Middleware) Option {
	return func(s *settings) {
		s.middlewares = append(s.middlewares, middlewares...)
	}
}

// WithOuterMiddleware appends middlewares that wrap the whole pipeline,
// including a validation stage placed first. Use it for behaviors that must
// also cover validators, such as panic recovery.
func WithOuterMiddleware(middlewares ...Middleware) Option {
	return func(s *settings) {
		s.outer = append(s.outer, middlewares...)
	}
}

// WithStateObserver reports each dispatch state transition to observer
func WithStateObserver(observer StateObserver) Option {
	return func(s *settings) {
		s.observer = observer
	}
}

func newSettings(opts []Option) *settings {
	s := &settings{validation: true}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// mediator is the concrete implementation.
// Every field is written once by newMediator and only read by Send.
type mediator struct {
	handlers *HandlerRegistry
	routes   map[reflect.Type]HandlerFunc
	names    []string
	observer StateObserver
}

// NewMediator creates a mediator over already populated registries.
//
// Unlike Builder.Build it does not reject ambiguous registrations up front;
// Send fails with HandlerAmbiguousError for those types instead.
func NewMediator(handlers *HandlerRegistry, validators *ValidatorRegistry, opts ...Option) Mediator {
	return newMediator(handlers, validators, newSettings(opts))
}

func newMediator(handlers *HandlerRegistry, validators *ValidatorRegistry, s *settings) *mediator {
	if handlers == nil {
		handlers = NewHandlerRegistry()
	}
	if validators == nil {
		validators = NewValidatorRegistry()
	}

	middlewares := append([]Middleware(nil), s.middlewares...)
	if s.validation {
		validation := ValidationMiddleware(validators)
		if s.validationLast {
			middlewares = append(middlewares, validation)
		} else {
			middlewares = append([]Middleware{validation}, middlewares...)
		}
	}
	middlewares = append(append([]Middleware(nil), s.outer...), middlewares...)
	pipeline := NewPipeline(middlewares...)

	m := &mediator{
		handlers: handlers,
		routes:   make(map[reflect.Type]HandlerFunc),
		observer: s.observer,
	}

	// Compose one chain per unambiguous request type, once
	for _, requestType := range handlers.Types() {
		handler, err := handlers.Resolve(requestType)
		if err != nil {
			continue
		}
		m.routes[requestType] = pipeline.Then(observedHandler(handler))
		m.names = append(m.names, typeName(requestType))
	}

	return m
}

// Send dispatches a request through the pipeline to its registered handler
func (m *mediator) Send(ctx context.Context, request Request) (Response, error) {
	if request == nil {
		return nil, ErrNilRequest
	}

	requestType := reflect.TypeOf(request)
	route, ok := m.routes[requestType]
	if !ok {
		// Not found or ambiguous
		_, err := m.handlers.Resolve(requestType)
		return nil, err
	}

	if m.observer != nil {
		ctx = withObserver(ctx, m.observer)
		m.observer(ctx, request, StateStarted)
	}

	return route(ctx, request)
}

// RequestTypes lists the request names that can be dispatched
func (m *mediator) RequestTypes() []string {
	return append([]string(nil), m.names...)
}

// observedHandler reports the handling states around the terminal handler
func observedHandler(handler RequestHandler) RequestHandler {
	return HandlerFunc(func(ctx context.Context, request Request) (Response, error) {
		observe(ctx, request, StateHandling)

		response, err := handler.Handle(ctx, request)
		if err != nil {
			observe(ctx, request, StateHandlerFailed)
			return nil, err
		}

		observe(ctx, request, StateCompleted)
		return response, nil
	})
}
