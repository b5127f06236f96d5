package api

import (
	"time"

	"github.com/fK470/fusen/internal/store"
)

// timeLayout renders timestamps as UTC seconds with a literal Z suffix,
// e.g. "2024-05-01T12:30:45Z".
const timeLayout = "2006-01-02T15:04:05Z"

// BookmarkRequest is the request body for POST and PUT /api/v1/bookmarks.
type BookmarkRequest struct {
	URL         string   `json:"url" validate:"required,bookmarkurl"`
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// BookmarkResponse is the JSON representation of a single bookmark.
// Tags is an unordered set of tag names, never null.
type BookmarkResponse struct {
	ID          int64    `json:"id"`
	URL         string   `json:"url"`
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Tags        []string `json:"tags"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

// ErrorResponse is the body of every non-2xx response except 204.
type ErrorResponse struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

// toBookmarkResponse converts a hydrated store.Bookmark to its API shape.
func toBookmarkResponse(b *store.Bookmark) BookmarkResponse {
	tagNames := make([]string, 0, len(b.Tags))
	for _, t := range b.Tags {
		tagNames = append(tagNames, t.Name)
	}
	return BookmarkResponse{
		ID:          b.ID,
		URL:         b.URL,
		Title:       b.Title,
		Description: b.Description,
		Tags:        tagNames,
		CreatedAt:   formatTime(b.CreatedAt),
		UpdatedAt:   formatTime(b.UpdatedAt),
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
