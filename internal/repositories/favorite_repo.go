package repositories

import (
	"context"

	"esatalim/internal/models"

	"github.com/google/uuid"
)

type FavoriteRepository interface {
	Add(ctx context.Context, userID, listingID uuid.UUID) error
	Remove(ctx context.Context, userID, listingID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) ([]*models.Favorite, error)
}

type favoriteRepo struct {
	db Database
}

func NewFavoriteRepo(db Database) FavoriteRepository {
	return &favoriteRepo{db: db}
}

// Add is idempotent: favoriting twice keeps a single row and the original
// position in the list.
func (r *favoriteRepo) Add(ctx context.Context, userID, listingID uuid.UUID) error {
	query := `
		INSERT INTO user_favorites (user_id, listing_id, added_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id, listing_id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, userID, listingID)
	return err
}

// Remove is idempotent: removing a listing that is not a favorite is a no-op
func (r *favoriteRepo) Remove(ctx context.Context, userID, listingID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM user_favorites WHERE user_id = $1 AND listing_id = $2`, userID, listingID)
	return err
}

// List resolves favorites against live listings. Rows pointing at deleted
// listings drop out of the inner join and are left in place.
func (r *favoriteRepo) List(ctx context.Context, userID uuid.UUID) ([]*models.Favorite, error) {
	query := listingFields + `, f.added_at
	FROM user_favorites f
	JOIN listings l ON l.id = f.listing_id` + listingJoins + `
	WHERE f.user_id = $1
	ORDER BY f.added_at ASC, l.id ASC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	favorites := []*models.Favorite{}
	for rows.Next() {
		fav := &models.Favorite{Listing: &models.Listing{}}
		if err := rows.Scan(append(listingScanTargets(fav.Listing), &fav.AddedAt)...); err != nil {
			return nil, err
		}
		completeListing(fav.Listing)
		favorites = append(favorites, fav)
	}
	return favorites, rows.Err()
}
