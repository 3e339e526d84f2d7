package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type UserLocation struct {
	City     string `json:"city,omitempty" db:"city" validate:"omitempty,max=50"`
	District string `json:"district,omitempty" db:"district" validate:"omitempty,max=50"`
	Address  string `json:"address,omitempty" db:"address" validate:"omitempty,max=200"`
}

type User struct {
	ID           uuid.UUID    `json:"id" db:"id"`
	Name         string       `json:"name" db:"name"`
	Email        string       `json:"email" db:"email"`
	PasswordHash string       `json:"-" db:"password_hash"` // Never serialize in JSON
	Phone        *string      `json:"phone,omitempty" db:"phone"`
	Location     UserLocation `json:"location" db:"-"`
	Avatar       *string      `json:"avatar,omitempty" db:"avatar"`
	Role         Role         `json:"role" db:"role"`
	IsVerified   bool         `json:"isVerified" db:"is_verified"`
	CreatedAt    time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time    `json:"updatedAt" db:"updated_at"`
}

// UserProfile is the public profile view
type UserProfile struct {
	User
	ProductsCount int `json:"productsCount"`
}

// RegisterInput mirrors the registration form
type RegisterInput struct {
	Name     string        `json:"name" validate:"required,min=2,max=50"`
	Email    string        `json:"email" validate:"required,email"`
	Password string        `json:"password" validate:"required,min=6,max=128"`
	Phone    *string       `json:"phone" validate:"omitempty,trphone"`
	Location *UserLocation `json:"location"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProfileUpdate carries a partial profile update. An empty phone or avatar
// removes it.
type ProfileUpdate struct {
	Name     *string       `json:"name" validate:"omitempty,min=2,max=50"`
	Phone    *string       `json:"phone" validate:"omitempty,phone_or_empty"`
	Location *UserLocation `json:"location"`
	Avatar   *string       `json:"avatar" validate:"omitempty,url_or_empty"`
}

// Favorite is a resolved entry of a user's favorites list
type Favorite struct {
	Listing *Listing  `json:"product"`
	AddedAt time.Time `json:"addedAt"`
}
