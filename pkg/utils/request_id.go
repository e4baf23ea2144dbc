package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateRequestID creates a human-readable identifier for one dispatch call.
// Format: {requestName}-{8charHexUUID}
//
// Example:
//   - Input: requestName="CreateUserCommand"
//   - Output: "CreateUserCommand-a3f8e2b1"
func GenerateRequestID(requestName string) string {
	if requestName == "" {
		requestName = "request"
	}
	return requestName + "-" + generateShortUUID()
}

// generateShortUUID creates an 8-character hex string from a UUID
func generateShortUUID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
