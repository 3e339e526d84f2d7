package common

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"esatalim/internal/models"

	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey contextKey = "user_id"
	RoleKey   contextKey = "role"
)

// ErrorResponse is the JSON body of every failed request
type ErrorResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// NewErrorResponse creates a standardized error response
func NewErrorResponse(message string, fieldErrors []FieldError) *ErrorResponse {
	return &ErrorResponse{
		Success: false,
		Message: message,
		Errors:  fieldErrors,
	}
}

// ParseID validates a path or body identifier
func ParseID(idStr string, fieldName string) (uuid.UUID, error) {
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		return uuid.Nil, NewValidationError(fieldName, fmt.Sprintf("%s is required", fieldName), idStr)
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, NewValidationError(fieldName, fmt.Sprintf("%s must be a valid id", fieldName), idStr)
	}

	return id, nil
}

// Turkish mobile numbers: optional +90 or 0 prefix, then 5xx and seven digits.
var trPhonePattern = regexp.MustCompile(`^(\+90|0)?5\d{9}$`)

// ValidTurkishPhone accepts Turkish mobile numbers with or without spaces,
// dashes and parentheses.
func ValidTurkishPhone(phone string) bool {
	cleaned := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(phone)
	return trPhonePattern.MatchString(cleaned)
}

// EscapeLike escapes LIKE wildcards so user input matches literally
func EscapeLike(query string) string {
	return strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(query)
}

// GetUserIDFromContext extracts the user ID from the request context
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

// GetRoleFromContext extracts the caller's role from the request context
func GetRoleFromContext(ctx context.Context) (models.Role, bool) {
	role, ok := ctx.Value(RoleKey).(models.Role)
	return role, ok
}

// WithCaller stores the authenticated caller on ctx
func WithCaller(ctx context.Context, userID uuid.UUID, role models.Role) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID)
	return context.WithValue(ctx, RoleKey, role)
}

// Caller is the authenticated principal of a request
type Caller struct {
	ID   uuid.UUID
	Role models.Role
}

func (c Caller) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}

// CallerFromContext returns the authenticated caller, if any
func CallerFromContext(ctx context.Context) (Caller, bool) {
	id, ok := GetUserIDFromContext(ctx)
	if !ok {
		return Caller{}, false
	}
	role, _ := GetRoleFromContext(ctx)
	return Caller{ID: id, Role: role}, true
}

// CanModify reports whether the caller may mutate a resource owned by ownerID
func (c Caller) CanModify(ownerID uuid.UUID) bool {
	return c.ID == ownerID || c.IsAdmin()
}
