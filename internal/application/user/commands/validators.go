package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/mediator-go/internal/application/mediator"
	"github.com/andrescamacho/mediator-go/internal/domain/user"
)

var emailFormat = validator.New()

// RegisterRules adds the struct tags used by user commands to v
func RegisterRules(v *mediator.StructValidator) error {
	return v.RegisterRuleWithMessage("email_address", isEmailAddress, "must be a valid email address")
}

// isEmailAddress accepts an address that is valid once normalised, or blank
func isEmailAddress(fl validator.FieldLevel) bool {
	email := user.NormalizeEmail(fl.Field().String())
	return email == "" || emailFormat.Var(email, "email") == nil
}

// EmailUniqueValidator rejects a CreateUserCommand whose email is already taken
type EmailUniqueValidator struct {
	userRepo user.Repository
}

// NewEmailUniqueValidator creates a new EmailUniqueValidator
func NewEmailUniqueValidator(userRepo user.Repository) *EmailUniqueValidator {
	return &EmailUniqueValidator{userRepo: userRepo}
}

// Validate implements mediator.Validator
func (v *EmailUniqueValidator) Validate(ctx context.Context, request mediator.Request) ([]mediator.ValidationFailure, error) {
	cmd, ok := request.(*CreateUserCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *CreateUserCommand")
	}
	if user.NormalizeEmail(cmd.Email) == "" {
		return nil, nil
	}

	_, err := v.userRepo.FindByEmail(ctx, cmd.Email)
	switch {
	case err == nil:
		return []mediator.ValidationFailure{{Field: "email", Message: "is already registered"}}, nil
	case errors.Is(err, user.ErrUserNotFound):
		return nil, nil
	default:
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
}
