// Package apperrors defines the domain error taxonomy shared by the model
// services and the HTTP layer. Handlers map these to status codes in exactly
// one place; services never pick status codes themselves.
package apperrors

import (
	"fmt"
	"strings"
)

// FieldError is a single violated field of a request payload.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError covers missing, malformed or out-of-range fields. Maps to
// HTTP 400.
type ValidationError struct {
	Message string
	Fields  []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+" "+f.Message)
	}
	return e.Message + ": " + strings.Join(msgs, "; ")
}

// NewValidation builds a ValidationError with a plain message.
func NewValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError is a unique-constraint violation (slug, email, one cart per
// customer). Maps to HTTP 409.
type ConflictError struct {
	Resource string
	Key      string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already exists: %s", e.Resource, e.Key)
}

// NotFoundError is an absent entity on a path where absence is exceptional
// (mutate-by-id, read-by-id). Read-by-key lookups return a nil value instead.
// Maps to HTTP 404.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// AuthorizationError is a role-check failure. Maps to HTTP 403.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	if e.Message == "" {
		return "not authorized"
	}
	return e.Message
}

// InvalidTransitionError is a disallowed order status edge. The order is left
// unchanged. Maps to HTTP 400.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}
