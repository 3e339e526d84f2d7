package repositories

import (
	"context"

	"esatalim/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListActive(ctx context.Context) ([]*models.Category, error)
	ListAll(ctx context.Context) ([]*models.Category, error)
	CountChildren(ctx context.Context, id uuid.UUID) (int, error)
}

type categoryRepo struct {
	db Database
}

func NewCategoryRepo(db Database) CategoryRepository {
	return &categoryRepo{db: db}
}

const categoryColumns = `
	SELECT c.id, c.name, c.description, c.icon, c.parent_id, COALESCE(p.name, ''), c.is_active, c.sort_order,
		c.created_at, c.updated_at
	FROM categories c
	LEFT JOIN categories p ON p.id = c.parent_id`

func scanCategory(row pgx.Row) (*models.Category, error) {
	category := &models.Category{}
	var parentName string
	err := row.Scan(&category.ID, &category.Name, &category.Description, &category.Icon, &category.ParentID,
		&parentName, &category.IsActive, &category.SortOrder, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if category.ParentID != nil {
		category.Parent = &models.CategoryRef{ID: *category.ParentID, Name: parentName}
	}
	return category, nil
}

func (r *categoryRepo) list(ctx context.Context, query string) ([]*models.Category, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []*models.Category{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *categoryRepo) Create(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (id, name, description, icon, parent_id, is_active, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, category.ID, category.Name, category.Description, category.Icon,
		category.ParentID, category.IsActive, category.SortOrder).Scan(&category.CreatedAt, &category.UpdatedAt)
}

func (r *categoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category, err := scanCategory(r.db.QueryRow(ctx, categoryColumns+` WHERE c.id = $1`, id))
	if err != nil {
		return nil, notFound(err, "Category")
	}
	return category, nil
}

func (r *categoryRepo) Update(ctx context.Context, category *models.Category) error {
	query := `
		UPDATE categories
		SET name = $1, description = $2, icon = $3, parent_id = $4, is_active = $5, sort_order = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query, category.Name, category.Description, category.Icon, category.ParentID,
		category.IsActive, category.SortOrder, category.ID).Scan(&category.UpdatedAt)
	return notFound(err, "Category")
}

// Delete removes the category only. Listings keep their (now dangling)
// category reference.
func (r *categoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(tag, "Category")
}

// ListActive returns active categories by sort order, ties broken by name
func (r *categoryRepo) ListActive(ctx context.Context) ([]*models.Category, error) {
	return r.list(ctx, categoryColumns+` WHERE c.is_active ORDER BY c.sort_order ASC, c.name ASC`)
}

func (r *categoryRepo) ListAll(ctx context.Context) ([]*models.Category, error) {
	return r.list(ctx, categoryColumns+` ORDER BY c.sort_order ASC, c.name ASC`)
}

func (r *categoryRepo) CountChildren(ctx context.Context, id uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM categories WHERE parent_id = $1`, id).Scan(&count)
	return count, err
}
