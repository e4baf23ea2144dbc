package user

import (
	"errors"
	"fmt"
)

// ErrUserNotFound matches NotFoundError via errors.Is
var ErrUserNotFound = errors.New("user not found")

// NotFoundError reports a lookup that matched no user
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("user not found: %s", e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrUserNotFound
}
