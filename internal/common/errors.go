package common

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrConflict          = errors.New("conflict")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrRateLimited       = errors.New("rate limited")
)

// FieldError describes one rejected input field
type FieldError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// ValidationError collects every rejected field of a request
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Add records a field error
func (e *ValidationError) Add(field, message string, value interface{}) {
	e.Errors = append(e.Errors, FieldError{Field: field, Message: message, Value: value})
}

// HasErrors reports whether any field was rejected
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// OrNil returns e when it holds errors and nil otherwise, so callers can
// return the result directly as an error.
func (e *ValidationError) OrNil() error {
	if e == nil || !e.HasErrors() {
		return nil
	}
	return e
}

// NewValidationError builds a single-field validation error
func NewValidationError(field, message string, value interface{}) *ValidationError {
	ve := &ValidationError{}
	ve.Add(field, message, value)
	return ve
}

// PublicError pairs a sentinel kind with a message that is safe to show
// to clients. errors.Is matches the kind.
type PublicError struct {
	Kind    error
	Message string
}

func (e *PublicError) Error() string {
	return e.Message
}

func (e *PublicError) Unwrap() error {
	return e.Kind
}

// NotFound reports a missing resource, e.g. NotFound("Product")
func NotFound(resource string) error {
	return &PublicError{Kind: ErrNotFound, Message: resource + " not found"}
}

func Forbidden(message string) error {
	return &PublicError{Kind: ErrForbidden, Message: message}
}

func Unauthorized(message string) error {
	return &PublicError{Kind: ErrUnauthorized, Message: message}
}

func Conflict(message string) error {
	return &PublicError{Kind: ErrConflict, Message: message}
}

func RateLimited(message string) error {
	return &PublicError{Kind: ErrRateLimited, Message: message}
}

func InvalidTransition(from, to string) error {
	return &PublicError{
		Kind:    ErrInvalidTransition,
		Message: fmt.Sprintf("Cannot change status from %s to %s", from, to),
	}
}

// IsNotFound reports whether err marks a missing resource
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
