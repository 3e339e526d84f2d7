package models

import (
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// Prices go over the wire as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Condition is the physical state of a listed item
type Condition string

const (
	ConditionNew     Condition = "new"
	ConditionLikeNew Condition = "like_new"
	ConditionGood    Condition = "good"
	ConditionFair    Condition = "fair"
	ConditionPoor    Condition = "poor"
)

// Conditions lists every accepted condition in display order
var Conditions = []Condition{ConditionNew, ConditionLikeNew, ConditionGood, ConditionFair, ConditionPoor}

func (c Condition) Valid() bool {
	for _, v := range Conditions {
		if c == v {
			return true
		}
	}
	return false
}

// ListingStatus is the lifecycle state of a listing
type ListingStatus string

const (
	StatusActive   ListingStatus = "active"
	StatusSold     ListingStatus = "sold"
	StatusInactive ListingStatus = "inactive"
)

func (s ListingStatus) Valid() bool {
	return s == StatusActive || s == StatusSold || s == StatusInactive
}

// listingTransitions holds the allowed status changes. Sold is terminal.
var listingTransitions = map[ListingStatus][]ListingStatus{
	StatusActive:   {StatusSold, StatusInactive},
	StatusInactive: {StatusActive},
}

// CanTransition reports whether a listing may move from s to next.
// Staying in the same status is always allowed.
func (s ListingStatus) CanTransition(next ListingStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range listingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type ListingImage struct {
	URL string `json:"url" validate:"required,url"`
	Alt string `json:"alt" validate:"max=200"`
}

type Location struct {
	City     string `json:"city" db:"city" validate:"required,min=2,max=50"`
	District string `json:"district" db:"district" validate:"required,min=2,max=50"`
}

// CategoryRef is the populated category of a listing
type CategoryRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name,omitempty"`
}

// SellerRef is the populated seller of a listing
type SellerRef struct {
	ID       uuid.UUID    `json:"id"`
	Name     string       `json:"name,omitempty"`
	Phone    *string      `json:"phone,omitempty"`
	Location UserLocation `json:"location"`
}

type Listing struct {
	ID             uuid.UUID         `json:"id" db:"id"`
	Title          string            `json:"title" db:"title"`
	Description    string            `json:"description" db:"description"`
	Price          decimal.Decimal   `json:"price" db:"price"`
	CategoryID     uuid.UUID         `json:"-" db:"category_id"`
	Category       CategoryRef       `json:"category" db:"-"`
	Subcategory    string            `json:"subcategory,omitempty" db:"subcategory"`
	Condition      Condition         `json:"condition" db:"condition"`
	Images         []ListingImage    `json:"images" db:"images"`
	Location       Location          `json:"location" db:"-"`
	SellerID       uuid.UUID         `json:"-" db:"seller_id"`
	Seller         SellerRef         `json:"seller" db:"-"`
	Status         ListingStatus     `json:"status" db:"status"`
	Views          int64             `json:"views" db:"views"`
	IsFeatured     bool              `json:"isFeatured" db:"is_featured"`
	Tags           []string          `json:"tags" db:"tags"`
	Specifications map[string]string `json:"specifications" db:"specifications"`
	CreatedAt      time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time         `json:"updatedAt" db:"updated_at"`
}

// ListingInput is a new listing as submitted by its seller. Price stays
// textual until validation so a malformed number is reported per field.
type ListingInput struct {
	Title          string            `json:"title" validate:"required,min=3,max=100"`
	Description    string            `json:"description" validate:"required,min=10,max=1000"`
	Price          string            `json:"price" validate:"required"`
	Category       string            `json:"category" validate:"required,uuid"`
	Subcategory    string            `json:"subcategory" validate:"max=100"`
	Condition      Condition         `json:"condition" validate:"required,oneof=new like_new good fair poor"`
	Location       Location          `json:"location"`
	Tags           []string          `json:"tags" validate:"max=20,dive,max=30"`
	Specifications map[string]string `json:"specifications" validate:"max=30,dive,keys,max=50,endkeys,max=200"`
	Images         []ImageUpload     `json:"images"`
}

// ImageUpload is one uploaded image file
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// ListingUpdate carries a partial update; nil fields are left untouched
type ListingUpdate struct {
	Title          *string           `json:"title" validate:"omitempty,min=3,max=100"`
	Description    *string           `json:"description" validate:"omitempty,min=10,max=1000"`
	Price          *decimal.Decimal  `json:"price"`
	Subcategory    *string           `json:"subcategory" validate:"omitempty,max=100"`
	Condition      *Condition        `json:"condition" validate:"omitempty,oneof=new like_new good fair poor"`
	Location       *Location         `json:"location"`
	Status         *ListingStatus    `json:"status" validate:"omitempty,oneof=active sold inactive"`
	Tags           []string          `json:"tags" validate:"omitempty,max=20,dive,max=30"`
	Specifications map[string]string `json:"specifications" validate:"omitempty,max=30,dive,keys,max=50,endkeys,max=200"`
	Images         []ListingImage    `json:"images" validate:"omitempty,min=1,max=10,dive"`
}
