package mediator

import (
	"context"
	"reflect"
)

// ValidationMiddleware runs every validator registered for the request type.
//
// All validators run even after one reports failures, and their failures are
// merged in registration order. A non-empty result short-circuits the pipeline
// with a ValidationError; the continuation is never called. A validator that
// returns an error aborts dispatch with that error unchanged.
func ValidationMiddleware(validators *ValidatorRegistry) Middleware {
	return func(ctx context.Context, request Request, next HandlerFunc) (Response, error) {
		observe(ctx, request, StateValidating)

		failures, err := runValidators(ctx, validators.ResolveAll(reflect.TypeOf(request)), request)
		if err != nil {
			observe(ctx, request, StateValidationFailed)
			return nil, err
		}

		if len(failures) > 0 {
			observe(ctx, request, StateValidationFailed)
			return nil, &ValidationError{Failures: failures}
		}

		observe(ctx, request, StateValidated)
		return next(ctx, request)
	}
}

func runValidators(ctx context.Context, validators []Validator, request Request) ([]ValidationFailure, error) {
	var failures []ValidationFailure
	for _, validator := range validators {
		result, err := validator.Validate(ctx, request)
		if err != nil {
			return nil, err
		}
		failures = append(failures, result...)
	}
	return failures, nil
}
