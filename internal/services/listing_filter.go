package services

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"esatalim/internal/common"
	"esatalim/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ParseListingFilter turns browse query parameters into a ListingFilter.
// Every invalid parameter is reported in a single ValidationError.
// Parameters that are absent or blank after trimming impose no restriction.
func ParseListingFilter(values url.Values) (*models.ListingFilter, error) {
	filter := &models.ListingFilter{
		SortBy:    models.SortByCreatedAt,
		SortOrder: models.SortDesc,
		Page:      models.DefaultPage,
		Limit:     models.DefaultLimit,
	}
	verr := &common.ValidationError{}
	get := func(key string) string {
		return strings.TrimSpace(values.Get(key))
	}

	filter.Search = get("search")
	filter.City = get("city")

	if v := get("category"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			verr.Add("category", "Category must be a valid id", v)
		} else {
			filter.CategoryID = &id
		}
	}

	filter.MinPrice = parsePrice(verr, "minPrice", get("minPrice"))
	filter.MaxPrice = parsePrice(verr, "maxPrice", get("maxPrice"))
	if filter.MinPrice != nil && filter.MaxPrice != nil && filter.MinPrice.GreaterThan(*filter.MaxPrice) {
		verr.Add("maxPrice", "Maximum price must be greater than or equal to minimum price", get("maxPrice"))
	}

	if v := get("condition"); v != "" {
		condition := models.Condition(v)
		if !condition.Valid() {
			verr.Add("condition", fmt.Sprintf("Condition must be one of: %s", joinConditions()), v)
		} else {
			filter.Condition = &condition
		}
	}

	if v := get("featured"); v != "" {
		featured, err := strconv.ParseBool(v)
		if err != nil {
			verr.Add("featured", "Featured must be true or false", v)
		} else {
			filter.Featured = &featured
		}
	}

	parseSort(verr, filter, get("sortBy"), get("sortOrder"))

	if v := get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			verr.Add("page", "Page must be a positive integer", v)
		} else {
			filter.Page = page
		}
	}

	if v := get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 || limit > models.MaxLimit {
			verr.Add("limit", fmt.Sprintf("Limit must be between 1 and %d", models.MaxLimit), v)
		} else {
			filter.Limit = limit
		}
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return filter, nil
}

func parsePrice(verr *common.ValidationError, field, raw string) *decimal.Decimal {
	if raw == "" {
		return nil
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		verr.Add(field, fmt.Sprintf("%s must be a number", field), raw)
		return nil
	}
	if price.IsNegative() {
		verr.Add(field, fmt.Sprintf("%s must be a non-negative number", field), raw)
		return nil
	}
	return &price
}

// parseSort accepts sortBy=price with sortOrder=asc as well as the combined
// sortBy=price:asc form. An explicit sortOrder wins over the combined suffix.
func parseSort(verr *common.ValidationError, filter *models.ListingFilter, sortBy, sortOrder string) {
	if field, direction, ok := strings.Cut(sortBy, ":"); ok {
		sortBy = strings.TrimSpace(field)
		if sortOrder == "" {
			sortOrder = strings.TrimSpace(direction)
		}
	}

	if sortBy != "" {
		switch field := models.SortField(sortBy); field {
		case models.SortByCreatedAt, models.SortByPrice, models.SortByViews:
			filter.SortBy = field
		default:
			verr.Add("sortBy", "Sort field must be one of: createdAt, price, views", sortBy)
		}
	}

	if sortOrder != "" {
		switch order := models.SortOrder(strings.ToLower(sortOrder)); order {
		case models.SortAsc, models.SortDesc:
			filter.SortOrder = order
		default:
			verr.Add("sortOrder", "Sort order must be asc or desc", sortOrder)
		}
	}
}

func joinConditions() string {
	names := make([]string, len(models.Conditions))
	for i, c := range models.Conditions {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
