package mediator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	// ErrNilRequest is returned when Send is called with a nil request
	ErrNilRequest = errors.New("request cannot be nil")

	// ErrHandlerNotFound matches HandlerNotFoundError via errors.Is
	ErrHandlerNotFound = errors.New("handler not found")

	// ErrHandlerAmbiguous matches HandlerAmbiguousError via errors.Is
	ErrHandlerAmbiguous = errors.New("handler ambiguous")

	// ErrValidation matches ValidationError via errors.Is
	ErrValidation = errors.New("validation failed")
)

// HandlerNotFoundError is a configuration error: no handler was registered for the request type
type HandlerNotFoundError struct {
	RequestType reflect.Type
}

func (e *HandlerNotFoundError) Error() string {
	return fmt.Sprintf("no handler registered for type %s", e.RequestType)
}

func (e *HandlerNotFoundError) Is(target error) bool {
	return target == ErrHandlerNotFound
}

// HandlerAmbiguousError is a configuration error: more than one handler was registered for the request type
type HandlerAmbiguousError struct {
	RequestType reflect.Type
	Count       int
}

func (e *HandlerAmbiguousError) Error() string {
	return fmt.Sprintf("%d handlers registered for type %s, expected exactly one", e.Count, e.RequestType)
}

func (e *HandlerAmbiguousError) Is(target error) bool {
	return target == ErrHandlerAmbiguous
}

// ValidationError carries every failure reported by the validators of a request.
// The handler never runs when this error is returned.
type ValidationError struct {
	Failures []ValidationFailure
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, f.String())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ValidationFailures extracts the failures from err if it is (or wraps) a ValidationError
func ValidationFailures(err error) ([]ValidationFailure, bool) {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Failures, true
	}
	return nil, false
}

// ResponseTypeError is returned by Send[R] when the handler response is not an R
type ResponseTypeError struct {
	RequestType reflect.Type
	Expected    reflect.Type
	Actual      reflect.Type
}

func (e *ResponseTypeError) Error() string {
	return fmt.Sprintf("handler for %s returned %s, expected %s", e.RequestType, e.Actual, e.Expected)
}
