package helpers

import (
	"context"
	"fmt"
	"sync"

	"github.com/andrescamacho/mediator-go/internal/application/mediator"
)

// MockMediator is a test double for the Mediator interface.
// Responses are keyed by request type name; SetSendFunc overrides them all.
type MockMediator struct {
	mu        sync.Mutex
	sendFunc  func(ctx context.Context, request mediator.Request) (mediator.Response, error)
	responses map[string]mockResult
	callLog   []string
}

type mockResult struct {
	response mediator.Response
	err      error
}

// NewMockMediator creates a new MockMediator
func NewMockMediator() *MockMediator {
	return &MockMediator{
		responses: make(map[string]mockResult),
		callLog:   []string{},
	}
}

// Send implements the Mediator interface
func (m *MockMediator) Send(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	m.mu.Lock()
	name := mediator.RequestName(request)
	m.callLog = append(m.callLog, name)
	sendFunc := m.sendFunc
	result, ok := m.responses[name]
	m.mu.Unlock()

	if sendFunc != nil {
		return sendFunc(ctx, request)
	}
	if !ok {
		return nil, fmt.Errorf("unsupported request type: %T", request)
	}
	return result.response, result.err
}

// RequestTypes implements the Mediator interface
func (m *MockMediator) RequestTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.responses))
	for name := range m.responses {
		names = append(names, name)
	}
	return names
}

// On sets the result returned for requests named requestName
func (m *MockMediator) On(requestName string, response mediator.Response, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[requestName] = mockResult{response: response, err: err}
}

// SetSendFunc sets a custom function for Send calls
func (m *MockMediator) SetSendFunc(fn func(ctx context.Context, request mediator.Request) (mediator.Response, error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sendFunc = fn
}

// GetCallLog returns the names of the requests sent so far
func (m *MockMediator) GetCallLog() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.callLog...)
}

// ClearCallLog clears the call log
func (m *MockMediator) ClearCallLog() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callLog = []string{}
}

// Ensure MockMediator implements the mediator.Mediator interface
var _ mediator.Mediator = (*MockMediator)(nil)
