package mediator

import (
	"fmt"
	"reflect"
)

// ValidatorRegistry maps request types to the validators that apply to them.
// Validators are returned in registration order.
type ValidatorRegistry struct {
	validators map[reflect.Type][]Validator
}

// NewValidatorRegistry creates an empty validator registry
func NewValidatorRegistry() *ValidatorRegistry {
	return &ValidatorRegistry{
		validators: make(map[reflect.Type][]Validator),
	}
}

// Register adds a validator for a request type
func (r *ValidatorRegistry) Register(requestType reflect.Type, validator Validator) error {
	if requestType == nil {
		return fmt.Errorf("request type cannot be nil")
	}

	if isNil(validator) {
		return fmt.Errorf("validator cannot be nil for type %s", requestType)
	}

	r.validators[requestType] = append(r.validators[requestType], validator)
	return nil
}

// ResolveAll returns a copy of the validators registered for requestType (possibly none)
func (r *ValidatorRegistry) ResolveAll(requestType reflect.Type) []Validator {
	validators := r.validators[requestType]
	if len(validators) == 0 {
		return nil
	}
	return append([]Validator(nil), validators...)
}

// Count returns how many validators are registered for requestType
func (r *ValidatorRegistry) Count(requestType reflect.Type) int {
	return len(r.validators[requestType])
}
