package store

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// BookmarkTagStore manages the bookmark_tags membership table.
type BookmarkTagStore struct {
	db *sqlx.DB
}

func NewBookmarkTagStore(db *sqlx.DB) *BookmarkTagStore {
	return &BookmarkTagStore{db: db}
}

func (s *BookmarkTagStore) q(query string) string { return s.db.Rebind(query) }

// ListByBookmarkID returns the tags currently associated with a bookmark.
func (s *BookmarkTagStore) ListByBookmarkID(ctx context.Context, bookmarkID int64) ([]Tag, error) {
	var tags []Tag
	err := s.db.SelectContext(ctx, &tags, s.q(`
		SELECT t.* FROM tags t
		INNER JOIN bookmark_tags bt ON bt.tag_id = t.id
		WHERE bt.bookmark_id = ?
		ORDER BY t.name ASC
	`), bookmarkID)
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// InsertTx adds one membership row inside tx. The composite primary key
// rejects a duplicate pairing; callers deduplicate tags beforehand.
func (s *BookmarkTagStore) InsertTx(ctx context.Context, tx *sqlx.Tx, bookmarkID, tagID int64) error {
	_, err := tx.ExecContext(ctx, tx.Rebind(`
		INSERT INTO bookmark_tags (bookmark_id, tag_id) VALUES (?, ?)
	`), bookmarkID, tagID)
	return err
}

// DeleteByBookmarkIDTx removes all membership rows for a bookmark inside
// tx and returns the number of rows removed.
func (s *BookmarkTagStore) DeleteByBookmarkIDTx(ctx context.Context, tx *sqlx.Tx, bookmarkID int64) (int64, error) {
	res, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM bookmark_tags WHERE bookmark_id = ?`), bookmarkID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
