// Package service coordinates bookmark rows, the shared tag dictionary,
// and the bookmark_tags membership table under one transaction per
// mutating operation.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/fK470/fusen/internal/store"
)

// BookmarkParams carries the caller-supplied fields for create and update.
// Nil Title/Description are stored as NULL.
type BookmarkParams struct {
	URL         string
	Title       *string
	Description *string
	Tags        []string
}

// BookmarkService orchestrates the bookmark, tag, and membership stores.
// It holds no state beyond its dependencies and is safe for concurrent use.
type BookmarkService struct {
	db        *sqlx.DB
	bookmarks *store.BookmarkStore
	tags      *store.TagStore
	joins     *store.BookmarkTagStore
}

func NewBookmarkService(db *sqlx.DB, bookmarks *store.BookmarkStore, tags *store.TagStore, joins *store.BookmarkTagStore) *BookmarkService {
	return &BookmarkService{db: db, bookmarks: bookmarks, tags: tags, joins: joins}
}

// List returns up to limit bookmarks starting at offset, each with its
// tag set hydrated. Tags are loaded per bookmark; the result shape is a
// bookmark with an unordered set of tag names.
func (s *BookmarkService) List(ctx context.Context, limit, offset int) ([]*store.Bookmark, error) {
	bookmarks, err := s.bookmarks.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	for _, b := range bookmarks {
		tags, err := s.joins.ListByBookmarkID(ctx, b.ID)
		if err != nil {
			return nil, err
		}
		b.Tags = tags
	}
	return bookmarks, nil
}

// Get returns one bookmark by id with its tag set hydrated, or
// store.ErrNotFound.
func (s *BookmarkService) Get(ctx context.Context, id int64) (*store.Bookmark, error) {
	b, err := s.bookmarks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	tags, err := s.joins.ListByBookmarkID(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	b.Tags = tags
	return b, nil
}

// Create validates the URL, rejects duplicates, resolves the tag set via
// get-or-create, and inserts the bookmark row plus one membership row per
// resolved tag, all within a single transaction.
func (s *BookmarkService) Create(ctx context.Context, p BookmarkParams) (*store.Bookmark, error) {
	if err := store.ValidateURL(p.URL); err != nil {
		return nil, err
	}
	exists, err := s.bookmarks.ExistsByURL(ctx, p.URL)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", store.ErrDuplicateURL, p.URL)
	}

	names := normalizeTagNames(p.Tags)

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	b := &store.Bookmark{URL: p.URL, Title: p.Title, Description: p.Description}
	// The unique index on url still backstops a racing insert between the
	// ExistsByURL check and here.
	if err := s.bookmarks.InsertTx(ctx, tx, b); err != nil {
		return nil, err
	}

	tags, err := s.resolveTagsTx(ctx, tx, b.ID, names)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	b.Tags = tags
	return b, nil
}

// Update replaces url, title, description, and the whole tag set of an
// existing bookmark. Keeping the bookmark's own URL is not a duplicate;
// taking a URL owned by a different bookmark is.
func (s *BookmarkService) Update(ctx context.Context, id int64, p BookmarkParams) (*store.Bookmark, error) {
	b, err := s.bookmarks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := store.ValidateURL(p.URL); err != nil {
		return nil, err
	}
	owner, err := s.bookmarks.GetByURL(ctx, p.URL)
	if err == nil && owner.ID != id {
		return nil, fmt.Errorf("%w: %s", store.ErrDuplicateURL, p.URL)
	}
	if err != nil && !isNotFound(err) {
		return nil, err
	}

	names := normalizeTagNames(p.Tags)

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	b.URL = p.URL
	b.Title = p.Title
	b.Description = p.Description
	if err := s.bookmarks.UpdateTx(ctx, tx, b); err != nil {
		return nil, err
	}

	// Full-replace semantics: clear the membership set, then re-insert.
	if _, err := s.joins.DeleteByBookmarkIDTx(ctx, tx, b.ID); err != nil {
		return nil, err
	}
	tags, err := s.resolveTagsTx(ctx, tx, b.ID, names)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	b.Tags = tags
	return b, nil
}

// Delete removes a bookmark and its membership rows. Tags themselves are
// never deleted, even when no bookmark references them anymore.
func (s *BookmarkService) Delete(ctx context.Context, id int64) error {
	b, err := s.bookmarks.GetByID(ctx, id)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := s.joins.DeleteByBookmarkIDTx(ctx, tx, b.ID); err != nil {
		return err
	}
	if err := s.bookmarks.DeleteTx(ctx, tx, b.ID); err != nil {
		return err
	}
	return tx.Commit()
}

// resolveTagsTx runs get-or-create for each name and inserts one
// membership row per resolved tag.
func (s *BookmarkService) resolveTagsTx(ctx context.Context, tx *sqlx.Tx, bookmarkID int64, names []string) ([]store.Tag, error) {
	tags := make([]store.Tag, 0, len(names))
	for _, name := range names {
		t, err := s.tags.GetOrCreateTx(ctx, tx, name)
		if err != nil {
			return nil, err
		}
		if err := s.joins.InsertTx(ctx, tx, bookmarkID, t.ID); err != nil {
			return nil, err
		}
		tags = append(tags, *t)
	}
	return tags, nil
}

// normalizeTagNames drops empty and whitespace-only names and collapses
// exact duplicates, preserving first-seen order. Matching is
// case-sensitive, so "java" and "Java" survive as two names.
func normalizeTagNames(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}
