package mediator

import (
	"context"
)

// Request represents a command or query
type Request interface{}

// Response represents the result of handling a request
type Response interface{}

// RequestHandler handles a specific request type
type RequestHandler interface {
	Handle(ctx context.Context, request Request) (Response, error)
}

// HandlerFunc is a function that handles a request
type HandlerFunc func(ctx context.Context, request Request) (Response, error)

// Handle implements RequestHandler
func (f HandlerFunc) Handle(ctx context.Context, request Request) (Response, error) {
	return f(ctx, request)
}

// Middleware is a function that wraps handler execution with cross-cutting concerns.
// A middleware decides whether to call next; returning without calling it
// short-circuits the rest of the pipeline.
type Middleware func(ctx context.Context, request Request, next HandlerFunc) (Response, error)

// ValidationFailure describes one invalid aspect of a request
type ValidationFailure struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (f ValidationFailure) String() string {
	return f.Field + ": " + f.Message
}

// Validator produces validation failures for a request.
// A non-nil error means the validator itself could not run.
type Validator interface {
	Validate(ctx context.Context, request Request) ([]ValidationFailure, error)
}

// ValidatorFunc adapts a function to the Validator interface
type ValidatorFunc func(ctx context.Context, request Request) ([]ValidationFailure, error)

// Validate implements Validator
func (f ValidatorFunc) Validate(ctx context.Context, request Request) ([]ValidationFailure, error) {
	return f(ctx, request)
}

// Mediator dispatches requests to their handlers
type Mediator interface {
	Send(ctx context.Context, request Request) (Response, error)

	// RequestTypes lists the request names that have a handler, in registration order
	RequestTypes() []string
}
