package setup

import (
	"github.com/andrescamacho/mediator-go/internal/application/mediator"
	"github.com/andrescamacho/mediator-go/internal/application/user/commands"
	"github.com/andrescamacho/mediator-go/internal/application/user/queries"
	"github.com/andrescamacho/mediator-go/internal/domain/shared"
	"github.com/andrescamacho/mediator-go/internal/domain/user"
)

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	userRepo user.Repository
	clock    shared.Clock
}

// NewHandlerRegistry creates a new handler registry with required dependencies
func NewHandlerRegistry(userRepo user.Repository, clock shared.Clock) *HandlerRegistry {
	// Default to real clock if not provided
	if clock == nil {
		clock = shared.NewRealClock()
	}

	return &HandlerRegistry{
		userRepo: userRepo,
		clock:    clock,
	}
}

// AddApplication registers every handler and validator of the application layer
func AddApplication(b *mediator.Builder, r *HandlerRegistry) error {
	return r.RegisterUserHandlers(b)
}

// RegisterUserHandlers registers the user command and query handlers with their validators
//
// This method registers:
//   - CreateUserCommand → CreateUserHandler, validated by struct tags and email uniqueness
//   - GetUserQuery → GetUserHandler, validated by struct tags
//   - ListUsersQuery → ListUsersHandler
func (r *HandlerRegistry) RegisterUserHandlers(b *mediator.Builder) error {
	tags := mediator.NewStructValidator()
	if err := commands.RegisterRules(tags); err != nil {
		return err
	}

	if err := mediator.RegisterHandler[*commands.CreateUserCommand](b, commands.NewCreateUserHandler(r.userRepo, r.clock)); err != nil {
		return err
	}
	if err := mediator.RegisterValidator[*commands.CreateUserCommand](b, tags); err != nil {
		return err
	}
	if err := mediator.RegisterValidator[*commands.CreateUserCommand](b, commands.NewEmailUniqueValidator(r.userRepo)); err != nil {
		return err
	}

	if err := mediator.RegisterHandler[*queries.GetUserQuery](b, queries.NewGetUserHandler(r.userRepo)); err != nil {
		return err
	}
	if err := mediator.RegisterValidator[*queries.GetUserQuery](b, tags); err != nil {
		return err
	}

	if err := mediator.RegisterHandler[*queries.ListUsersQuery](b, queries.NewListUsersHandler(r.userRepo)); err != nil {
		return err
	}

	return nil
}
