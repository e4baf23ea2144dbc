package mediator

import "context"

// State is a step of a single dispatch call
type State int

const (
	StateStarted State = iota
	StateValidating
	StateValidationFailed
	StateValidated
	StateHandling
	StateHandlerFailed
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateStarted:
		return "started"
	case StateValidating:
		return "validating"
	case StateValidationFailed:
		return "validation_failed"
	case StateValidated:
		return "validated"
	case StateHandling:
		return "handling"
	case StateHandlerFailed:
		return "handler_failed"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether no further state follows s
func (s State) IsTerminal() bool {
	return s == StateValidationFailed || s == StateHandlerFailed || s == StateCompleted
}

// StateObserver is notified of every state a dispatch call passes through.
// It is called synchronously on the dispatching goroutine.
type StateObserver func(ctx context.Context, request Request, state State)

type contextKey int

const (
	observerKey contextKey = iota
)

func withObserver(ctx context.Context, observer StateObserver) context.Context {
	return context.WithValue(ctx, observerKey, observer)
}

// observe reports state to the observer carried by ctx, if any.
// Behaviors that are not part of this package never see the observer.
func observe(ctx context.Context, request Request, state State) {
	if observer, ok := ctx.Value(observerKey).(StateObserver); ok && observer != nil {
		observer(ctx, request, state)
	}
}
