package repositories

import (
	"context"
	"fmt"

	"esatalim/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ListingRepository interface {
	Create(ctx context.Context, listing *models.Listing) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Listing, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*models.Listing, error)
	Update(ctx context.Context, listing *models.Listing) error
	SetFeatured(ctx context.Context, id uuid.UUID, featured bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementViews(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, filter *models.ListingFilter) ([]*models.Listing, int, error)
	CountActiveBySeller(ctx context.Context, sellerID uuid.UUID) (int, error)
}

type listingRepo struct {
	db Database
}

func NewListingRepo(db Database) ListingRepository {
	return &listingRepo{db: db}
}

// listingFields are the selected columns of a listing with its category and
// seller populated; listingJoins supplies c and u. The category join is LEFT
// because deleting a category leaves listings behind.
const (
	listingFields = `
	SELECT l.id, l.title, l.description, l.price, l.category_id, COALESCE(c.name, ''), l.subcategory,
		l.condition, l.images, l.city, l.district, l.seller_id, COALESCE(u.name, ''), u.phone,
		COALESCE(u.city, ''), COALESCE(u.district, ''), l.status, l.views, l.is_featured, l.tags,
		l.specifications, l.created_at, l.updated_at`
	listingJoins = `
	LEFT JOIN categories c ON c.id = l.category_id
	LEFT JOIN users u ON u.id = l.seller_id`

	listingColumns = listingFields + `
	FROM listings l` + listingJoins
)

// listingScanTargets returns the destinations for listingFields, in order
func listingScanTargets(l *models.Listing) []interface{} {
	return []interface{}{&l.ID, &l.Title, &l.Description, &l.Price, &l.CategoryID, &l.Category.Name, &l.Subcategory,
		&l.Condition, &l.Images, &l.Location.City, &l.Location.District, &l.SellerID, &l.Seller.Name, &l.Seller.Phone,
		&l.Seller.Location.City, &l.Seller.Location.District, &l.Status, &l.Views, &l.IsFeatured, &l.Tags,
		&l.Specifications, &l.CreatedAt, &l.UpdatedAt}
}

// completeListing fills the embedded ids and replaces NULL collections with
// empty ones so they encode as [] and {}.
func completeListing(l *models.Listing) {
	l.Category.ID = l.CategoryID
	l.Seller.ID = l.SellerID
	if l.Images == nil {
		l.Images = []models.ListingImage{}
	}
	if l.Tags == nil {
		l.Tags = []string{}
	}
	if l.Specifications == nil {
		l.Specifications = map[string]string{}
	}
}

func scanListing(row pgx.Row) (*models.Listing, error) {
	l := &models.Listing{}
	if err := row.Scan(listingScanTargets(l)...); err != nil {
		return nil, err
	}
	completeListing(l)
	return l, nil
}

func collectListings(rows pgx.Rows) ([]*models.Listing, error) {
	defer rows.Close()

	listings := []*models.Listing{}
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}
	return listings, rows.Err()
}

func (r *listingRepo) Create(ctx context.Context, listing *models.Listing) error {
	query := `
		INSERT INTO listings (id, title, description, price, category_id, subcategory, condition, images, city, district,
			seller_id, status, views, is_featured, tags, specifications, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 0, $13, $14, $15, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, listing.ID, listing.Title, listing.Description, listing.Price, listing.CategoryID,
		listing.Subcategory, listing.Condition, listing.Images, listing.Location.City, listing.Location.District,
		listing.SellerID, listing.Status, listing.IsFeatured, listing.Tags, listing.Specifications).
		Scan(&listing.CreatedAt, &listing.UpdatedAt)
}

func (r *listingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	listing, err := scanListing(r.db.QueryRow(ctx, listingColumns+` WHERE l.id = $1`, id))
	if err != nil {
		return nil, notFound(err, "Product")
	}
	return listing, nil
}

func (r *listingRepo) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*models.Listing, error) {
	rows, err := r.db.Query(ctx, listingColumns+` WHERE l.seller_id = $1 ORDER BY l.created_at DESC, l.id ASC`, sellerID)
	if err != nil {
		return nil, err
	}
	return collectListings(rows)
}

func (r *listingRepo) Update(ctx context.Context, listing *models.Listing) error {
	query := `
		UPDATE listings
		SET title = $1, description = $2, price = $3, subcategory = $4, condition = $5, images = $6, city = $7,
			district = $8, status = $9, tags = $10, specifications = $11, updated_at = NOW()
		WHERE id = $12
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query, listing.Title, listing.Description, listing.Price, listing.Subcategory,
		listing.Condition, listing.Images, listing.Location.City, listing.Location.District, listing.Status,
		listing.Tags, listing.Specifications, listing.ID).Scan(&listing.UpdatedAt)
	return notFound(err, "Product")
}

func (r *listingRepo) SetFeatured(ctx context.Context, id uuid.UUID, featured bool) error {
	tag, err := r.db.Exec(ctx, `UPDATE listings SET is_featured = $1, updated_at = NOW() WHERE id = $2`, featured, id)
	if err != nil {
		return err
	}
	return requireAffected(tag, "Product")
}

func (r *listingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(tag, "Product")
}

// IncrementViews bumps the view counter in a single statement; concurrent
// readers may race and that is accepted. updated_at is left alone since a
// view is not an edit.
func (r *listingRepo) IncrementViews(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `UPDATE listings SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(tag, "Product")
}

// Search runs a translated filter. The total is counted with the same
// predicate before pagination; pages past the end return no rows.
func (r *listingRepo) Search(ctx context.Context, filter *models.ListingFilter) ([]*models.Listing, int, error) {
	q := buildListingQuery(filter)

	var total int
	countQuery := `SELECT COUNT(*) FROM listings l` + q.where
	if err := r.db.QueryRow(ctx, countQuery, q.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count listings: %w", err)
	}

	offset := filter.Offset()
	if total == 0 || offset >= total {
		return []*models.Listing{}, total, nil
	}

	n := len(q.args)
	query := listingColumns + q.where + q.orderBy + fmt.Sprintf(" LIMIT $%d OFFSET $%d", n+1, n+2)
	args := append(append([]interface{}{}, q.args...), filter.Limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search listings: %w", err)
	}
	listings, err := collectListings(rows)
	if err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

func (r *listingRepo) CountActiveBySeller(ctx context.Context, sellerID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM listings WHERE seller_id = $1 AND status = 'active'`, sellerID).Scan(&count)
	return count, err
}
