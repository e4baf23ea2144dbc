package mediator

import (
	"errors"
	"fmt"
	"reflect"
)

// Builder collects handlers, validators and middlewares at startup and
// produces an immutable Mediator.
//
// A Builder is not safe for concurrent use. Registration errors are returned
// immediately and also remembered, so Build fails if any registration failed.
type Builder struct {
	handlers   *HandlerRegistry
	validators *ValidatorRegistry
	settings   *settings
	errs       []error
}

// NewBuilder creates a builder with the given pipeline options
func NewBuilder(opts ...Option) *Builder {
	return &Builder{
		handlers:   NewHandlerRegistry(),
		validators: NewValidatorRegistry(),
		settings:   newSettings(opts),
	}
}

// Register registers a handler for a specific request type
func (b *Builder) Register(requestType reflect.Type, handler RequestHandler) error {
	return b.record(b.handlers.Register(requestType, handler))
}

// RegisterValidator adds a validator for a specific request type
func (b *Builder) RegisterValidator(requestType reflect.Type, validator Validator) error {
	return b.record(b.validators.Register(requestType, validator))
}

// RegisterMiddleware appends a middleware to the pipeline.
// Middlewares run in registration order, the first one outermost.
func (b *Builder) RegisterMiddleware(middleware Middleware) error {
	if middleware == nil {
		return b.record(fmt.Errorf("middleware cannot be nil"))
	}
	b.settings.middlewares = append(b.settings.middlewares, middleware)
	return nil
}

// Build verifies the registrations and composes the pipeline for every request type.
// It fails with ErrHandlerAmbiguous if any request type has more than one handler.
func (b *Builder) Build() (Mediator, error) {
	if err := errors.Join(b.errs...); err != nil {
		return nil, fmt.Errorf("invalid registration: %w", err)
	}

	if err := b.handlers.Verify(); err != nil {
		return nil, fmt.Errorf("invalid handler configuration: %w", err)
	}

	return newMediator(b.handlers, b.validators, b.settings), nil
}

func (b *Builder) record(err error) error {
	if err != nil {
		b.errs = append(b.errs, err)
	}
	return err
}
