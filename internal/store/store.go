package store

import (
	"context"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
)

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateURL is returned when a bookmark URL is already taken
	// by another bookmark.
	ErrDuplicateURL = errors.New("bookmark with URL already exists")
)

// BookmarkStoreIface exposes all bookmark row operations.
// No handler MAY query the DB directly; all access goes through the stores.
type BookmarkStoreIface interface {
	GetByID(ctx context.Context, id int64) (*Bookmark, error)
	GetByURL(ctx context.Context, url string) (*Bookmark, error)
	ExistsByURL(ctx context.Context, url string) (bool, error)
	List(ctx context.Context, limit, offset int) ([]*Bookmark, error)
}

// TagStoreIface exposes tag dictionary operations.
type TagStoreIface interface {
	GetByName(ctx context.Context, name string) (*Tag, error)
	ListAll(ctx context.Context) ([]*Tag, error)
}

// BookmarkTagStoreIface exposes bookmark↔tag membership operations.
type BookmarkTagStoreIface interface {
	ListByBookmarkID(ctx context.Context, bookmarkID int64) ([]Tag, error)
}

// isUniqueConstraintError reports whether err is a unique-constraint
// violation from any of the supported drivers.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || // SQLite & PostgreSQL
		strings.Contains(msg, "duplicate key") || // PostgreSQL
		strings.Contains(msg, "duplicate entry") // MySQL
}

// insertID runs an insert statement inside tx and returns the generated
// id. lib/pq cannot surface LastInsertId, so on postgres the statement
// gains a RETURNING clause instead.
func insertID(ctx context.Context, tx *sqlx.Tx, query string, args ...any) (int64, error) {
	if tx.DriverName() == "postgres" {
		var id int64
		err := tx.QueryRowxContext(ctx, tx.Rebind(query+" RETURNING id"), args...).Scan(&id)
		return id, err
	}
	res, err := tx.ExecContext(ctx, tx.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
