package models

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID          uuid.UUID    `json:"id" db:"id"`
	Name        string       `json:"name" db:"name"`
	Description string       `json:"description" db:"description"`
	Icon        *string      `json:"icon,omitempty" db:"icon"`
	ParentID    *uuid.UUID   `json:"-" db:"parent_id"`
	Parent      *CategoryRef `json:"parent,omitempty" db:"-"`
	IsActive    bool         `json:"isActive" db:"is_active"`
	SortOrder   int          `json:"sortOrder" db:"sort_order"`
	CreatedAt   time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time    `json:"updatedAt" db:"updated_at"`
}

// IsTopLevel reports whether the category has no parent
func (c *Category) IsTopLevel() bool {
	return c.ParentID == nil
}

// CategoryInput is the admin payload for creating or updating a category.
// On update only non-nil fields are applied; an empty parent clears it.
type CategoryInput struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Icon        *string `json:"icon" validate:"omitempty,max=16"`
	Parent      *string `json:"parent"`
	IsActive    *bool   `json:"isActive"`
	SortOrder   *int    `json:"sortOrder" validate:"omitempty,min=0"`
}
