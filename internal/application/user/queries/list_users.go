package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/mediator-go/internal/application/mediator"
	"github.com/andrescamacho/mediator-go/internal/domain/user"
)

// ListUsersQuery lists every user
type ListUsersQuery struct{}

// ListUsersResponse represents the result of listing users
type ListUsersResponse struct {
	Users []*user.User
}

// ListUsersHandler handles the ListUsers query
type ListUsersHandler struct {
	userRepo user.Repository
}

// NewListUsersHandler creates a new ListUsersHandler
func NewListUsersHandler(userRepo user.Repository) *ListUsersHandler {
	return &ListUsersHandler{userRepo: userRepo}
}

// Handle executes the ListUsers query
func (h *ListUsersHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*ListUsersQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListUsersQuery")
	}

	users, err := h.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return &ListUsersResponse{Users: users}, nil
}
