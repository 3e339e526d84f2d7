package common

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"esatalim/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidTurkishPhone(t *testing.T) {
	tests := []struct {
		phone string
		valid bool
	}{
		{"05321234567", true},
		{"5321234567", true},
		{"+905321234567", true},
		{"0532 123 45 67", true},
		{"(0532) 123-45-67", true},
		{"02121234567", false},
		{"0532123456", false},
		{"+9053212345678", false},
		{"abc", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidTurkishPhone(tt.phone))
		})
	}
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, EscapeLike("100%"))
	assert.Equal(t, `a\_b`, EscapeLike("a_b"))
	assert.Equal(t, `c:\\dir`, EscapeLike(`c:\dir`))
	assert.Equal(t, "bisiklet", EscapeLike("bisiklet"))
}

func TestParseID(t *testing.T) {
	id := uuid.New()

	got, err := ParseID(" "+id.String()+" ", "id")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	for _, input := range []string{"", "   ", "123", "not-a-uuid"} {
		_, err := ParseID(input, "productId")
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "input %q", input)
		assert.Equal(t, "productId", verr.Errors[0].Field)
	}
}

func TestPublicError_Unwraps(t *testing.T) {
	err := fmt.Errorf("load listing: %w", NotFound("Product"))

	assert.True(t, IsNotFound(err))
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrForbidden))

	var pe *PublicError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "Product not found", pe.Message)
	assert.EqualError(t, InvalidTransition("sold", "active"), "Cannot change status from sold to active")
}

func TestValidationError_OrNil(t *testing.T) {
	verr := &ValidationError{}
	assert.NoError(t, verr.OrNil())

	verr.Add("title", "Title is required", "")
	verr.Add("price", "Price must be a positive number", "-1")
	err := verr.OrNil()
	require.Error(t, err)
	assert.EqualError(t, err, "validation failed: title: Title is required; price: Price must be a positive number")
}

func TestCallerFromContext(t *testing.T) {
	_, ok := CallerFromContext(context.Background())
	assert.False(t, ok)

	owner := uuid.New()
	ctx := WithCaller(context.Background(), owner, models.RoleUser)
	caller, ok := CallerFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, owner, caller.ID)
	assert.True(t, caller.CanModify(owner))
	assert.False(t, caller.CanModify(uuid.New()))

	admin := Caller{ID: uuid.New(), Role: models.RoleAdmin}
	assert.True(t, admin.CanModify(owner))
}
