package mediator_test

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/mediator-go/internal/application/mediator"
)

type createUser struct {
	Name string `json:"name" validate:"required"`
}

type user struct {
	ID   int
	Name string
}

type pingQuery struct{}

// countingHandler records how many times it ran
type countingHandler struct {
	calls atomic.Int32
	fn    func(ctx context.Context, request mediator.Request) (mediator.Response, error)
}

func (h *countingHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	h.calls.Add(1)
	return h.fn(ctx, request)
}

func newCreateUserHandler() *countingHandler {
	return &countingHandler{fn: func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		cmd := request.(*createUser)
		return user{ID: 1, Name: cmd.Name}, nil
	}}
}

func nameRequired(calls *atomic.Int32) mediator.Validator {
	return mediator.ValidatorFunc(func(ctx context.Context, request mediator.Request) ([]mediator.ValidationFailure, error) {
		calls.Add(1)
		if request.(*createUser).Name == "" {
			return []mediator.ValidationFailure{{Field: "name", Message: "must not be empty"}}, nil
		}
		return nil, nil
	})
}

func TestMediator_Send_InvalidCreateUserShortCircuits(t *testing.T) {
	// Arrange
	handler := newCreateUserHandler()
	var validatorCalls atomic.Int32
	b := mediator.NewBuilder()
	require.NoError(t, mediator.RegisterHandler[*createUser](b, handler))
	require.NoError(t, mediator.RegisterValidator[*createUser](b, nameRequired(&validatorCalls)))
	m, err := b.Build()
	require.NoError(t, err)

	// Act
	resp, err := m.Send(context.Background(), &createUser{Name: ""})

	// Assert
	assert.Nil(t, resp)
	require.ErrorIs(t, err, mediator.ErrValidation)
	failures, ok := mediator.ValidationFailures(err)
	require.True(t, ok)
	assert.Equal(t, []mediator.ValidationFailure{{Field: "name", Message: "must not be empty"}}, failures)
	assert.Equal(t, int32(0), handler.calls.Load())
}

func TestMediator_Send_ValidCreateUserReturnsHandlerResponse(t *testing.T) {
	// Arrange
	handler := newCreateUserHandler()
	var validatorCalls atomic.Int32
	b := mediator.NewBuilder()
	require.NoError(t, mediator.RegisterHandler[*createUser](b, handler))
	require.NoError(t, mediator.RegisterValidator[*createUser](b, nameRequired(&validatorCalls)))
	m, err := b.Build()
	require.NoError(t, err)

	// Act
	resp, err := m.Send(context.Background(), &createUser{Name: "Alice"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, user{ID: 1, Name: "Alice"}, resp)
	assert.Equal(t, int32(1), handler.calls.Load())
	assert.Equal(t, int32(1), validatorCalls.Load())
}

func TestMediator_Send_MergesFailuresFromAllValidators(t *testing.T) {
	b := mediator.NewBuilder()
	handler := newCreateUserHandler()
	require.NoError(t, mediator.RegisterHandler[*createUser](b, handler))

	fail := func(field, msg string) mediator.Validator {
		return mediator.ValidatorFunc(func(context.Context, mediator.Request) ([]mediator.ValidationFailure, error) {
			return []mediator.ValidationFailure{{Field: field, Message: msg}}, nil
		})
	}
	var passCalls atomic.Int32
	require.NoError(t, mediator.RegisterValidator[*createUser](b, fail("name", "first")))
	require.NoError(t, mediator.RegisterValidator[*createUser](b, nameRequired(&passCalls)))
	require.NoError(t, mediator.RegisterValidator[*createUser](b, fail("email", "third")))
	m, err := b.Build()
	require.NoError(t, err)

	expected := []mediator.ValidationFailure{
		{Field: "name", Message: "first"},
		{Field: "email", Message: "third"},
	}

	// Same invalid request twice yields the same failure set and no handler side effects
	for i := 0; i < 2; i++ {
		_, err = m.Send(context.Background(), &createUser{Name: "Alice"})
		failures, ok := mediator.ValidationFailures(err)
		require.True(t, ok)
		assert.Equal(t, expected, failures)
	}
	assert.Equal(t, int32(2), passCalls.Load())
	assert.Equal(t, int32(0), handler.calls.Load())
}

func TestMediator_Send_ValidatorErrorAbortsDispatch(t *testing.T) {
	boom := errors.New("lookup failed")
	handler := newCreateUserHandler()
	b := mediator.NewBuilder()
	require.NoError(t, mediator.RegisterHandler[*createUser](b, handler))
	require.NoError(t, mediator.RegisterValidator[*createUser](b, mediator.ValidatorFunc(
		func(context.Context, mediator.Request) ([]mediator.ValidationFailure, error) {
			return nil, boom
		})))
	m, err := b.Build()
	require.NoError(t, err)

	_, err = m.Send(context.Background(), &createUser{Name: "Alice"})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int32(0), handler.calls.Load())
}

func TestMediator_Send_HandlerNotFound(t *testing.T) {
	m, err := mediator.NewBuilder().Build()
	require.NoError(t, err)

	_, err = m.Send(context.Background(), &createUser{Name: "Alice"})

	require.ErrorIs(t, err, mediator.ErrHandlerNotFound)
	var notFound *mediator.HandlerNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, reflect.TypeOf(&createUser{}), notFound.RequestType)
}

func TestMediator_Send_NilRequest(t *testing.T) {
	m, err := mediator.NewBuilder().Build()
	require.NoError(t, err)

	_, err = m.Send(context.Background(), nil)

	assert.ErrorIs(t, err, mediator.ErrNilRequest)
}

func TestBuilder_Build_RejectsAmbiguousHandlers(t *testing.T) {
	b := mediator.NewBuilder()
	require.NoError(t, mediator.RegisterHandler[*createUser](b, newCreateUserHandler()))
	require.NoError(t, mediator.RegisterHandler[*createUser](b, newCreateUserHandler()))
	require.NoError(t, mediator.RegisterHandler[pingQuery](b, newCreateUserHandler()))
	require.NoError(t, mediator.RegisterHandler[pingQuery](b, newCreateUserHandler()))

	m, err := b.Build()

	assert.Nil(t, m)
	require.ErrorIs(t, err, mediator.ErrHandlerAmbiguous)
	assert.Contains(t, err.Error(), "createUser")
	assert.Contains(t, err.Error(), "pingQuery")
}

func TestBuilder_Build_RejectsFailedRegistrations(t *testing.T) {
	b := mediator.NewBuilder()
	assert.Error(t, b.Register(nil, newCreateUserHandler()))
	assert.Error(t, b.RegisterMiddleware(nil))

	_, err := b.Build()

	assert.ErrorContains(t, err, "invalid registration")
}

func TestNewMediator_AmbiguousFailsPerCall(t *testing.T) {
	// Arrange
	first, second := newCreateUserHandler(), newCreateUserHandler()
	handlers := mediator.NewHandlerRegistry()
	require.NoError(t, handlers.Register(reflect.TypeOf(&createUser{}), first))
	require.NoError(t, handlers.Register(reflect.TypeOf(&createUser{}), second))
	m := mediator.NewMediator(handlers, nil)

	// Act
	_, err := m.Send(context.Background(), &createUser{Name: "Alice"})

	// Assert
	require.ErrorIs(t, err, mediator.ErrHandlerAmbiguous)
	assert.Equal(t, int32(0), first.calls.Load())
	assert.Equal(t, int32(0), second.calls.Load())
	assert.Empty(t, m.RequestTypes())
}

func TestMediator_Send_PointerAndValueTypesRouteSeparately(t *testing.T) {
	b := mediator.NewBuilder()
	require.NoError(t, mediator.RegisterHandlerFunc(b, func(ctx context.Context, q pingQuery) (string, error) {
		return "value", nil
	}))
	require.NoError(t, mediator.RegisterHandlerFunc(b, func(ctx context.Context, q *pingQuery) (string, error) {
		return "pointer", nil
	}))
	m, err := b.Build()
	require.NoError(t, err)

	byValue, err := mediator.Send[string](context.Background(), m, pingQuery{})
	require.NoError(t, err)
	byPointer, err := mediator.Send[string](context.Background(), m, &pingQuery{})
	require.NoError(t, err)

	assert.Equal(t, "value", byValue)
	assert.Equal(t, "pointer", byPointer)
	assert.Equal(t, []string{"pingQuery", "pingQuery"}, m.RequestTypes())
}

func TestMediator_Send_HandlerFailurePropagatesUnchanged(t *testing.T) {
	boom := &customError{code: 42}
	b := mediator.NewBuilder()
	require.NoError(t, mediator.RegisterHandlerFunc(b, func(ctx context.Context, q *pingQuery) (*user, error) {
		return nil, boom
	}))
	m, err := b.Build()
	require.NoError(t, err)

	resp, err := m.Send(context.Background(), &pingQuery{})

	assert.Nil(t, resp)
	assert.Same(t, boom, err)
}

type customError struct{ code int }

func (e *customError) Error() string { return fmt.Sprintf("custom %d", e.code) }

func TestSend_ResponseTypeMismatch(t *testing.T) {
	b := mediator.NewBuilder()
	require.NoError(t, mediator.RegisterHandlerFunc(b, func(ctx context.Context, q *pingQuery) (int, error) {
		return 7, nil
	}))
	m, err := b.Build()
	require.NoError(t, err)

	_, err = mediator.Send[string](context.Background(), m, &pingQuery{})

	var typeErr *mediator.ResponseTypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, reflect.TypeOf(""), typeErr.Expected)
	assert.Equal(t, reflect.TypeOf(0), typeErr.Actual)
}

func TestMediator_Send_ConcurrentCallsDoNotInterfere(t *testing.T) {
	b := mediator.NewBuilder(mediator.WithMiddleware(func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		return next(ctx, request)
	}))
	require.NoError(t, mediator.RegisterHandlerFunc(b, func(ctx context.Context, c *createUser) (user, error) {
		return user{Name: c.Name}, nil
	}))
	require.NoError(t, mediator.RegisterValidator[*createUser](b, mediator.NewStructValidator()))
	m, err := b.Build()
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("user-%d", i)
			got, err := mediator.Send[user](context.Background(), m, &createUser{Name: name})
			if err != nil {
				errs <- err
				return
			}
			if got.Name != name {
				errs <- fmt.Errorf("got %q, want %q", got.Name, name)
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func TestMediator_StateObserver(t *testing.T) {
	tests := []struct {
		name     string
		request  *createUser
		fail     bool
		expected []mediator.State
	}{
		{
			name:    "completed",
			request: &createUser{Name: "Alice"},
			expected: []mediator.State{
				mediator.StateStarted, mediator.StateValidating, mediator.StateValidated,
				mediator.StateHandling, mediator.StateCompleted,
			},
		},
		{
			name:    "validation failed",
			request: &createUser{},
			expected: []mediator.State{
				mediator.StateStarted, mediator.StateValidating, mediator.StateValidationFailed,
			},
		},
		{
			name:    "handler failed",
			request: &createUser{Name: "Alice"},
			fail:    true,
			expected: []mediator.State{
				mediator.StateStarted, mediator.StateValidating, mediator.StateValidated,
				mediator.StateHandling, mediator.StateHandlerFailed,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var states []mediator.State
			b := mediator.NewBuilder(mediator.WithStateObserver(func(ctx context.Context, request mediator.Request, state mediator.State) {
				states = append(states, state)
			}))
			require.NoError(t, mediator.RegisterHandlerFunc(b, func(ctx context.Context, c *createUser) (user, error) {
				if tt.fail {
					return user{}, errors.New("boom")
				}
				return user{Name: c.Name}, nil
			}))
			require.NoError(t, mediator.RegisterValidator[*createUser](b, mediator.NewStructValidator()))
			m, err := b.Build()
			require.NoError(t, err)

			_, _ = m.Send(context.Background(), tt.request)

			assert.Equal(t, tt.expected, states)
			assert.True(t, states[len(states)-1].IsTerminal())
		})
	}
}

func TestMediator_WithValidationDisabled(t *testing.T) {
	handler := newCreateUserHandler()
	var validatorCalls atomic.Int32
	b := mediator.NewBuilder(mediator.WithValidation(false))
	require.NoError(t, mediator.RegisterHandler[*createUser](b, handler))
	require.NoError(t, mediator.RegisterValidator[*createUser](b, nameRequired(&validatorCalls)))
	m, err := b.Build()
	require.NoError(t, err)

	_, err = m.Send(context.Background(), &createUser{})

	require.NoError(t, err)
	assert.Equal(t, int32(0), validatorCalls.Load())
	assert.Equal(t, int32(1), handler.calls.Load())
}
