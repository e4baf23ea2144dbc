package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/mediator-go/internal/application/mediator"
	"github.com/andrescamacho/mediator-go/internal/domain/user"
)

// GetUserQuery fetches one user by ID
type GetUserQuery struct {
	ID int `json:"id" validate:"gt=0"`
}

// GetUserResponse represents the result of getting a user
type GetUserResponse struct {
	User *user.User
}

// GetUserHandler handles the GetUser query
type GetUserHandler struct {
	userRepo user.Repository
}

// NewGetUserHandler creates a new GetUserHandler
func NewGetUserHandler(userRepo user.Repository) *GetUserHandler {
	return &GetUserHandler{userRepo: userRepo}
}

// Handle executes the GetUser query
func (h *GetUserHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetUserQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetUserQuery")
	}

	u, err := h.userRepo.FindByID(ctx, query.ID)
	if err != nil {
		return nil, err
	}
	return &GetUserResponse{User: u}, nil
}
