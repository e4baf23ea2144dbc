package mediator

import (
	"context"
	"fmt"
	"reflect"
)

// RegisterHandler registers handler for request type T.
// Example: mediator.RegisterHandler[*commands.CreateUserCommand](b, handler)
func RegisterHandler[T Request](b *Builder, handler RequestHandler) error {
	var zero T
	return b.Register(reflect.TypeOf(zero), handler)
}

// RegisterHandlerFunc registers a typed function as the handler for Req,
// binding the request type to the response type it produces.
func RegisterHandlerFunc[Req Request, Resp Response](b *Builder, fn func(ctx context.Context, request Req) (Resp, error)) error {
	if fn == nil {
		var zero Req
		return b.record(fmt.Errorf("handler cannot be nil for type %T", zero))
	}
	return RegisterHandler[Req](b, HandlerFunc(func(ctx context.Context, request Request) (Response, error) {
		typed, ok := request.(Req)
		if !ok {
			var zero Req
			return nil, fmt.Errorf("invalid request type: expected %T, got %T", zero, request)
		}

		response, err := fn(ctx, typed)
		if err != nil {
			return nil, err
		}
		return response, nil
	}))
}

// RegisterValidator adds validator for request type T
func RegisterValidator[T Request](b *Builder, validator Validator) error {
	var zero T
	return b.RegisterValidator(reflect.TypeOf(zero), validator)
}

// RegisterValidatorFunc adds a typed validation function for request type T
func RegisterValidatorFunc[T Request](b *Builder, fn func(ctx context.Context, request T) ([]ValidationFailure, error)) error {
	if fn == nil {
		var zero T
		return b.record(fmt.Errorf("validator cannot be nil for type %T", zero))
	}
	return RegisterValidator[T](b, ValidatorFunc(func(ctx context.Context, request Request) ([]ValidationFailure, error) {
		typed, ok := request.(T)
		if !ok {
			var zero T
			return nil, fmt.Errorf("invalid request type: expected %T, got %T", zero, request)
		}
		return fn(ctx, typed)
	}))
}

// Send dispatches request and asserts that the response is an R
func Send[R Response](ctx context.Context, m Mediator, request Request) (R, error) {
	var zero R

	response, err := m.Send(ctx, request)
	if err != nil {
		return zero, err
	}

	if response == nil {
		return zero, nil
	}

	typed, ok := response.(R)
	if !ok {
		return zero, &ResponseTypeError{
			RequestType: reflect.TypeOf(request),
			Expected:    reflect.TypeOf((*R)(nil)).Elem(),
			Actual:      reflect.TypeOf(response),
		}
	}
	return typed, nil
}
