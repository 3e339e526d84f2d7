package models

import (
	"math"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SortField is a column listings can be ordered by
type SortField string

const (
	SortByCreatedAt SortField = "createdAt"
	SortByPrice     SortField = "price"
	SortByViews     SortField = "views"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// ListingFilter holds search and filter criteria for listing queries.
// Nil pointers and empty strings impose no restriction.
type ListingFilter struct {
	Search     string           `json:"search,omitempty"`
	CategoryID *uuid.UUID       `json:"category,omitempty"`
	MinPrice   *decimal.Decimal `json:"minPrice,omitempty"`
	MaxPrice   *decimal.Decimal `json:"maxPrice,omitempty"`
	Condition  *Condition       `json:"condition,omitempty"`
	City       string           `json:"city,omitempty"`
	Featured   *bool            `json:"featured,omitempty"`
	SortBy     SortField        `json:"sortBy"`
	SortOrder  SortOrder        `json:"sortOrder"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
}

// Offset returns the row offset of the filter's page
func (f *ListingFilter) Offset() int {
	return PageOffset(f.Page, f.Limit)
}

// PageOffset returns (page-1)*limit, saturating at math.MaxInt so a huge
// page number lands past the last row instead of wrapping negative.
func PageOffset(page, limit int) int {
	if page < 1 || limit < 1 {
		return 0
	}
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

type Pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalItems  int `json:"totalItems"`
}

// NewPagination computes page metadata for total matching items
func NewPagination(page, limit, total int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  total,
	}
}

// ListingPage is one page of search results
type ListingPage struct {
	Products   []*Listing `json:"products"`
	Pagination Pagination `json:"pagination"`
}
