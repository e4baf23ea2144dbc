package user

import (
	"strings"
	"time"
)

// User is a registered account
type User struct {
	ID        int
	Name      string
	Email     string
	CreatedAt time.Time
}

// NewUser creates an unsaved user. Email is normalised to lower case.
func NewUser(name, email string, createdAt time.Time) *User {
	return &User{
		Name:      strings.TrimSpace(name),
		Email:     NormalizeEmail(email),
		CreatedAt: createdAt,
	}
}

// NormalizeEmail trims and lower-cases an address for storage and lookups
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
