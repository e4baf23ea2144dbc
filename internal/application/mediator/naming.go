package mediator

import (
	"reflect"
	"strings"
)

// RequestName returns a short name for the request type, without package or pointer prefix.
// Examples:
//   - "*commands.CreateUserCommand" → "CreateUserCommand"
//   - "queries.GetUserQuery" → "GetUserQuery"
func RequestName(request Request) string {
	if request == nil {
		return "UnknownRequest"
	}
	return typeName(reflect.TypeOf(request))
}

func typeName(requestType reflect.Type) string {
	fullName := strings.TrimPrefix(requestType.String(), "*")

	if idx := strings.LastIndex(fullName, "."); idx >= 0 {
		return fullName[idx+1:]
	}
	return fullName
}
