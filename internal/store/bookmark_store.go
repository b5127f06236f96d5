package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Bookmark represents a row in the bookmarks table. Tags is hydrated by
// the service layer, never by the bookmark queries themselves.
type Bookmark struct {
	ID          int64     `db:"id"`
	URL         string    `db:"url"`
	Title       *string   `db:"title"`
	Description *string   `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`

	Tags []Tag `db:"-"`
}

// BookmarkStore is the sqlx-backed implementation of BookmarkStoreIface.
type BookmarkStore struct {
	db *sqlx.DB
}

func NewBookmarkStore(db *sqlx.DB) *BookmarkStore {
	return &BookmarkStore{db: db}
}

func (s *BookmarkStore) q(query string) string { return s.db.Rebind(query) }

// GetByID returns the bookmark matching id, or ErrNotFound.
func (s *BookmarkStore) GetByID(ctx context.Context, id int64) (*Bookmark, error) {
	var b Bookmark
	err := s.db.GetContext(ctx, &b, s.q(`SELECT * FROM bookmarks WHERE id = ?`), id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("bookmark %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// GetByURL returns the bookmark matching url, or ErrNotFound.
func (s *BookmarkStore) GetByURL(ctx context.Context, url string) (*Bookmark, error) {
	var b Bookmark
	err := s.db.GetContext(ctx, &b, s.q(`SELECT * FROM bookmarks WHERE url = ?`), url)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("bookmark %q: %w", url, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ExistsByURL reports whether any bookmark row has the given url.
func (s *BookmarkStore) ExistsByURL(ctx context.Context, url string) (bool, error) {
	var count int
	err := s.db.GetContext(ctx, &count, s.q(`SELECT COUNT(*) FROM bookmarks WHERE url = ?`), url)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns up to limit bookmarks starting at offset, ordered by id.
// Tags are not hydrated.
func (s *BookmarkStore) List(ctx context.Context, limit, offset int) ([]*Bookmark, error) {
	if limit <= 0 {
		return []*Bookmark{}, nil
	}
	var bookmarks []*Bookmark
	err := s.db.SelectContext(ctx, &bookmarks, s.q(`
		SELECT * FROM bookmarks ORDER BY id ASC LIMIT ? OFFSET ?
	`), limit, offset)
	if err != nil {
		return nil, err
	}
	return bookmarks, nil
}

// InsertTx inserts a new bookmark row inside tx, assigning its id and
// timestamps. A URL collision yields ErrDuplicateURL.
func (s *BookmarkStore) InsertTx(ctx context.Context, tx *sqlx.Tx, b *Bookmark) error {
	now := time.Now().UTC().Truncate(time.Second)
	id, err := insertID(ctx, tx, `
		INSERT INTO bookmarks (url, title, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		b.URL, b.Title, b.Description, now, now)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: %s", ErrDuplicateURL, b.URL)
		}
		return err
	}
	b.ID = id
	b.CreatedAt = now
	b.UpdatedAt = now
	return nil
}

// UpdateTx modifies url, title, and description of an existing bookmark
// row inside tx and bumps updated_at. A URL collision yields ErrDuplicateURL.
func (s *BookmarkStore) UpdateTx(ctx context.Context, tx *sqlx.Tx, b *Bookmark) error {
	now := time.Now().UTC().Truncate(time.Second)
	_, err := tx.ExecContext(ctx, tx.Rebind(`
		UPDATE bookmarks SET url = ?, title = ?, description = ?, updated_at = ? WHERE id = ?
	`), b.URL, b.Title, b.Description, now, b.ID)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: %s", ErrDuplicateURL, b.URL)
		}
		return err
	}
	b.UpdatedAt = now
	return nil
}

// DeleteTx removes a bookmark row by id inside tx. Membership rows are
// removed separately by BookmarkTagStore.DeleteByBookmarkIDTx.
func (s *BookmarkStore) DeleteTx(ctx context.Context, tx *sqlx.Tx, id int64) error {
	_, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM bookmarks WHERE id = ?`), id)
	return err
}
