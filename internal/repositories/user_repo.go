package repositories

import (
	"context"

	"esatalim/internal/common"
	"esatalim/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context, limit, offset int) ([]*models.User, int, error)
}

type userRepo struct {
	db Database
}

func NewUserRepo(db Database) UserRepository {
	return &userRepo{db: db}
}

const userColumns = `
	SELECT id, name, email, password_hash, phone, city, district, address, avatar, role, is_verified,
		created_at, updated_at
	FROM users`

func scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Phone, &user.Location.City,
		&user.Location.District, &user.Location.Address, &user.Avatar, &user.Role, &user.IsVerified,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Create inserts a user. Email uniqueness is enforced by the unique index;
// a duplicate surfaces as common.ErrConflict.
func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, phone, city, district, address, avatar, role, is_verified,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, user.ID, user.Name, user.Email, user.PasswordHash, user.Phone,
		user.Location.City, user.Location.District, user.Location.Address, user.Avatar, user.Role,
		user.IsVerified).Scan(&user.CreatedAt, &user.UpdatedAt)
	if isUniqueViolation(err) {
		return common.Conflict("User already exists")
	}
	return err
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, userColumns+` WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, "User")
	}
	return user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, userColumns+` WHERE email = $1`, email))
	if err != nil {
		return nil, notFound(err, "User")
	}
	return user, nil
}

func (r *userRepo) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET name = $1, phone = $2, city = $3, district = $4, address = $5, avatar = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query, user.Name, user.Phone, user.Location.City, user.Location.District,
		user.Location.Address, user.Avatar, user.ID).Scan(&user.UpdatedAt)
	return notFound(err, "User")
}

func (r *userRepo) List(ctx context.Context, limit, offset int) ([]*models.User, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, userColumns+` ORDER BY created_at DESC, id ASC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, user)
	}
	return users, total, rows.Err()
}
