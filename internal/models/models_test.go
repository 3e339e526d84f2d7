package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListingStatus_CanTransition(t *testing.T) {
	tests := []struct {
		from, to ListingStatus
		allowed  bool
	}{
		{StatusActive, StatusSold, true},
		{StatusActive, StatusInactive, true},
		{StatusInactive, StatusActive, true},
		{StatusActive, StatusActive, true},
		{StatusSold, StatusSold, true},
		{StatusSold, StatusActive, false},
		{StatusSold, StatusInactive, false},
		{StatusInactive, StatusSold, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransition(tt.to))
		})
	}
}

func TestCondition_Valid(t *testing.T) {
	for _, c := range Conditions {
		assert.True(t, c.Valid(), c)
	}
	assert.False(t, Condition("broken").Valid())
}

func TestNewPagination(t *testing.T) {
	assert.Equal(t, Pagination{CurrentPage: 1, TotalPages: 0, TotalItems: 0}, NewPagination(1, 20, 0))
	assert.Equal(t, Pagination{CurrentPage: 2, TotalPages: 3, TotalItems: 41}, NewPagination(2, 20, 41))
	assert.Equal(t, Pagination{CurrentPage: 5, TotalPages: 2, TotalItems: 40}, NewPagination(5, 20, 40))
}

func TestListingFilter_Offset(t *testing.T) {
	assert.Equal(t, 0, (&ListingFilter{Page: 1, Limit: 20}).Offset())
	assert.Equal(t, 40, (&ListingFilter{Page: 3, Limit: 20}).Offset())
	assert.Equal(t, 0, (&ListingFilter{Page: 0, Limit: 20}).Offset())
}

func TestPageOffset_SaturatesInsteadOfWrapping(t *testing.T) {
	assert.Equal(t, math.MaxInt, PageOffset(math.MaxInt, 20))
	assert.Equal(t, math.MaxInt, PageOffset(math.MaxInt/20+2, 20))
	assert.Equal(t, (math.MaxInt/20)*20, PageOffset(math.MaxInt/20+1, 20))
	assert.Equal(t, math.MaxInt-1, PageOffset(math.MaxInt, 1))
}

func TestListing_PriceIsJSONNumber(t *testing.T) {
	raw, err := json.Marshal(Listing{Price: decimal.RequireFromString("1250.50")})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"price":1250.5`)
	assert.NotContains(t, string(raw), "seller_id")
}
