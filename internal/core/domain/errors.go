package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrMissingCredentials = errors.New("missing credentials")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("inactive user")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token revoked")

	ErrUserNotFound    = errors.New("user not found")
	ErrProductNotFound = errors.New("product not found")

	ErrCreateForbidden = errors.New("only vendors or staff can create products")
	ErrUpdateForbidden = errors.New("cannot update another user's products")
	ErrDeleteForbidden = errors.New("cannot delete another user's products")
)

// ValidationError carries per-field constraint violations, including
// uniqueness conflicts. The HTTP layer renders Fields verbatim as the
// 400 response body.
type ValidationError struct {
	Fields map[string][]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// Add appends a message to the given field.
func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

// Empty reports whether no violations were recorded.
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msgs := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(msgs, "; ")))
	}
	sort.Strings(parts)
	return "validation failed: " + strings.Join(parts, " | ")
}
