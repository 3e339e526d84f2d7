package repositories

import (
	"strings"
	"testing"

	"esatalim/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func conditionPtr(c models.Condition) *models.Condition {
	return &c
}

func TestBuildListingQuery_EmptyFilterOnlyRestrictsStatus(t *testing.T) {
	q := buildListingQuery(&models.ListingFilter{})

	assert.Equal(t, " WHERE l.status = 'active'", q.where)
	assert.Empty(t, q.args)
	assert.Equal(t, " ORDER BY l.created_at DESC, l.id ASC", q.orderBy)
}

func TestBuildListingQuery_BlankStringsAddNoPredicate(t *testing.T) {
	omitted := buildListingQuery(&models.ListingFilter{})
	blank := buildListingQuery(&models.ListingFilter{Search: "   ", City: ""})

	assert.Equal(t, omitted.where, blank.where)
	assert.Equal(t, omitted.args, blank.args)
	assert.NotContains(t, blank.where, "ILIKE")
	assert.NotContains(t, blank.where, "l.city")
}

func TestBuildListingQuery_AllFields(t *testing.T) {
	categoryID := uuid.New()
	featured := true
	filter := &models.ListingFilter{
		Search:     "bisiklet",
		CategoryID: &categoryID,
		MinPrice:   decimalPtr("100"),
		MaxPrice:   decimalPtr("500"),
		Condition:  conditionPtr(models.ConditionGood),
		City:       "İstanbul",
		Featured:   &featured,
		SortBy:     models.SortByPrice,
		SortOrder:  models.SortAsc,
	}

	q := buildListingQuery(filter)

	assert.Contains(t, q.where, "l.title ILIKE $1")
	assert.Contains(t, q.where, "l.description ILIKE $1")
	assert.Contains(t, q.where, "t.tag ILIKE $1")
	assert.Contains(t, q.where, "l.category_id = $2")
	assert.Contains(t, q.where, "l.price >= $3")
	assert.Contains(t, q.where, "l.price <= $4")
	assert.Contains(t, q.where, "l.condition = $5")
	assert.Contains(t, q.where, "l.city = $6")
	assert.Contains(t, q.where, "l.is_featured = $7")
	assert.Equal(t, []interface{}{
		"%bisiklet%",
		categoryID,
		*filter.MinPrice,
		*filter.MaxPrice,
		"good",
		"İstanbul",
		true,
	}, q.args)
	assert.Equal(t, " ORDER BY l.price ASC, l.id ASC", q.orderBy)
}

func TestBuildListingQuery_OnlyUpperPriceBound(t *testing.T) {
	q := buildListingQuery(&models.ListingFilter{MaxPrice: decimalPtr("250")})

	assert.Contains(t, q.where, "l.price <= $1")
	assert.NotContains(t, q.where, "l.price >=")
	assert.Len(t, q.args, 1)
}

func TestBuildListingQuery_EscapesLikeWildcards(t *testing.T) {
	q := buildListingQuery(&models.ListingFilter{Search: "100%_pure"})

	assert.Equal(t, []interface{}{`%100\%\_pure%`}, q.args)
}

func TestBuildListingQuery_SortFields(t *testing.T) {
	tests := []struct {
		name     string
		sortBy   models.SortField
		order    models.SortOrder
		expected string
	}{
		{"default", "", "", " ORDER BY l.created_at DESC, l.id ASC"},
		{"price desc", models.SortByPrice, models.SortDesc, " ORDER BY l.price DESC, l.id ASC"},
		{"views asc", models.SortByViews, models.SortAsc, " ORDER BY l.views ASC, l.id ASC"},
		{"created asc", models.SortByCreatedAt, models.SortAsc, " ORDER BY l.created_at ASC, l.id ASC"},
		{"unknown column falls back", "title; DROP TABLE listings", models.SortAsc, " ORDER BY l.created_at ASC, l.id ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := buildListingQuery(&models.ListingFilter{SortBy: tt.sortBy, SortOrder: tt.order})
			assert.Equal(t, tt.expected, q.orderBy)
			assert.True(t, strings.HasSuffix(q.orderBy, "l.id ASC"))
		})
	}
}
