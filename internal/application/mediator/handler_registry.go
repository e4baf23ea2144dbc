package mediator

import (
	"errors"
	"fmt"
	"reflect"
)

// HandlerRegistry maps request types to their handlers.
//
// Duplicate registrations are recorded rather than rejected so that Verify can
// report every ambiguous type at once. The registry is populated at startup and
// is read-only afterwards; it does not lock.
type HandlerRegistry struct {
	handlers map[reflect.Type][]RequestHandler
	order    []reflect.Type
}

// NewHandlerRegistry creates an empty handler registry
func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{
		handlers: make(map[reflect.Type][]RequestHandler),
	}
}

// Register registers a handler for a specific request type
func (r *HandlerRegistry) Register(requestType reflect.Type, handler RequestHandler) error {
	if requestType == nil {
		return fmt.Errorf("request type cannot be nil")
	}

	if isNil(handler) {
		return fmt.Errorf("handler cannot be nil for type %s", requestType)
	}

	if _, exists := r.handlers[requestType]; !exists {
		r.order = append(r.order, requestType)
	}
	r.handlers[requestType] = append(r.handlers[requestType], handler)
	return nil
}

// Resolve returns the single handler registered for requestType
func (r *HandlerRegistry) Resolve(requestType reflect.Type) (RequestHandler, error) {
	handlers := r.handlers[requestType]

	switch len(handlers) {
	case 0:
		return nil, &HandlerNotFoundError{RequestType: requestType}
	case 1:
		return handlers[0], nil
	default:
		return nil, &HandlerAmbiguousError{RequestType: requestType, Count: len(handlers)}
	}
}

// Verify reports every request type with more than one handler
func (r *HandlerRegistry) Verify() error {
	var errs []error
	for _, requestType := range r.order {
		if count := len(r.handlers[requestType]); count > 1 {
			errs = append(errs, &HandlerAmbiguousError{RequestType: requestType, Count: count})
		}
	}
	return errors.Join(errs...)
}

// Types returns the registered request types in registration order
func (r *HandlerRegistry) Types() []reflect.Type {
	return append([]reflect.Type(nil), r.order...)
}

// isNil reports whether v is nil or wraps a nil function
func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Func && rv.IsNil()
}
