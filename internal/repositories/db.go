package repositories

import (
	"context"
	"errors"

	"esatalim/internal/common"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Database is the subset of *pgxpool.Pool the repositories use.
// pgxmock.PgxPoolIface satisfies it as well.
type Database interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// notFound maps pgx.ErrNoRows to a NotFoundError for resource
func notFound(err error, resource string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return common.NotFound(resource)
	}
	return err
}

// requireAffected returns a NotFoundError when a statement touched no rows
func requireAffected(tag pgconn.CommandTag, resource string) error {
	if tag.RowsAffected() == 0 {
		return common.NotFound(resource)
	}
	return nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique_violation
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
