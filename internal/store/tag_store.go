package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Tag represents a row in the tags table. Names are case-sensitive:
// "java" and "Java" are two distinct tags.
type Tag struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// TagStore is the sqlx-backed implementation of TagStoreIface.
type TagStore struct {
	db *sqlx.DB
}

func NewTagStore(db *sqlx.DB) *TagStore {
	return &TagStore{db: db}
}

func (s *TagStore) q(query string) string { return s.db.Rebind(query) }

// GetByName returns the tag with the exact given name, or ErrNotFound.
func (s *TagStore) GetByName(ctx context.Context, name string) (*Tag, error) {
	var t Tag
	err := s.db.GetContext(ctx, &t, s.q(`SELECT * FROM tags WHERE name = ?`), name)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("tag %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListAll returns all tags ordered by name.
func (s *TagStore) ListAll(ctx context.Context) ([]*Tag, error) {
	var tags []*Tag
	err := s.db.SelectContext(ctx, &tags, `SELECT * FROM tags ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// GetOrCreateTx returns the existing tag with the given name, or inserts
// a new one inside tx. A concurrent insert that trips the unique-name
// constraint is resolved by re-reading the winner's row.
func (s *TagStore) GetOrCreateTx(ctx context.Context, tx *sqlx.Tx, name string) (*Tag, error) {
	var existing Tag
	err := tx.GetContext(ctx, &existing, tx.Rebind(`SELECT * FROM tags WHERE name = ?`), name)
	if err == nil {
		return &existing, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	now := time.Now().UTC().Truncate(time.Second)
	id, err := insertID(ctx, tx, `
		INSERT INTO tags (name, created_at, updated_at) VALUES (?, ?, ?)`,
		name, now, now)
	if err != nil {
		if isUniqueConstraintError(err) {
			err = tx.GetContext(ctx, &existing, tx.Rebind(`SELECT * FROM tags WHERE name = ?`), name)
			if err != nil {
				return nil, err
			}
			return &existing, nil
		}
		return nil, err
	}
	return &Tag{ID: id, Name: name, CreatedAt: now, UpdatedAt: now}, nil
}
