package repositories

import (
	"fmt"
	"strings"

	"esatalim/internal/common"
	"esatalim/internal/models"
)

// listingSortColumns whitelists the sortable columns
var listingSortColumns = map[models.SortField]string{
	models.SortByCreatedAt: "l.created_at",
	models.SortByPrice:     "l.price",
	models.SortByViews:     "l.views",
}

// listingQuery is a translated ListingFilter
type listingQuery struct {
	where   string
	orderBy string
	args    []interface{}
}

// buildListingQuery translates a validated filter into a WHERE clause with
// positional arguments and a deterministic ORDER BY. Browsing only ever sees
// active listings. Unset fields add no predicate.
func buildListingQuery(filter *models.ListingFilter) listingQuery {
	conditions := []string{"l.status = 'active'"}
	var args []interface{}

	next := func(arg interface{}) int {
		args = append(args, arg)
		return len(args)
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		n := next("%" + common.EscapeLike(search) + "%")
		conditions = append(conditions, fmt.Sprintf(`(
			l.title ILIKE $%d OR
			l.description ILIKE $%d OR
			EXISTS (SELECT 1 FROM unnest(l.tags) AS t(tag) WHERE t.tag ILIKE $%d)
		)`, n, n, n))
	}

	if filter.CategoryID != nil {
		conditions = append(conditions, fmt.Sprintf("l.category_id = $%d", next(*filter.CategoryID)))
	}

	if filter.MinPrice != nil {
		conditions = append(conditions, fmt.Sprintf("l.price >= $%d", next(*filter.MinPrice)))
	}
	if filter.MaxPrice != nil {
		conditions = append(conditions, fmt.Sprintf("l.price <= $%d", next(*filter.MaxPrice)))
	}

	if filter.Condition != nil {
		conditions = append(conditions, fmt.Sprintf("l.condition = $%d", next(string(*filter.Condition))))
	}

	if city := strings.TrimSpace(filter.City); city != "" {
		conditions = append(conditions, fmt.Sprintf("l.city = $%d", next(city)))
	}

	if filter.Featured != nil {
		conditions = append(conditions, fmt.Sprintf("l.is_featured = $%d", next(*filter.Featured)))
	}

	sortColumn, ok := listingSortColumns[filter.SortBy]
	if !ok {
		sortColumn = listingSortColumns[models.SortByCreatedAt]
	}
	direction := "DESC"
	if filter.SortOrder == models.SortAsc {
		direction = "ASC"
	}

	return listingQuery{
		where: " WHERE " + strings.Join(conditions, " AND "),
		// id breaks ties so pages never overlap or skip rows
		orderBy: fmt.Sprintf(" ORDER BY %s %s, l.id ASC", sortColumn, direction),
		args:    args,
	}
}
