package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/mediator-go/internal/application/logging"
	"github.com/andrescamacho/mediator-go/internal/application/mediator"
	"github.com/andrescamacho/mediator-go/internal/domain/shared"
	"github.com/andrescamacho/mediator-go/internal/domain/user"
)

// CreateUserCommand registers a new user.
// Name and Email are trimmed before they are checked and stored.
type CreateUserCommand struct {
	Name  string `json:"name" validate:"notblank"`
	Email string `json:"email" validate:"omitempty,email_address"`
}

// CreateUserResponse carries the stored user
type CreateUserResponse struct {
	User *user.User
}

// CreateUserHandler handles the CreateUser command
type CreateUserHandler struct {
	userRepo user.Repository
	clock    shared.Clock
}

// NewCreateUserHandler creates a new CreateUserHandler. A nil clock uses the system clock.
func NewCreateUserHandler(userRepo user.Repository, clock shared.Clock) *CreateUserHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &CreateUserHandler{
		userRepo: userRepo,
		clock:    clock,
	}
}

// Handle executes the CreateUser command
func (h *CreateUserHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*CreateUserCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *CreateUserCommand")
	}

	u := user.NewUser(cmd.Name, cmd.Email, h.clock.Now())
	if err := h.userRepo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logging.LoggerFromContext(ctx).Log(logging.LevelInfo, "User created", map[string]interface{}{
		"user_id": u.ID,
	})

	return &CreateUserResponse{User: u}, nil
}
