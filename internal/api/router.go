package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fK470/fusen/internal/service"
)

// Deps holds all dependencies required to build the API router.
type Deps struct {
	Bookmarks *service.BookmarkService
}

// NewRouter creates the chi sub-router mounted at /api/v1.
// All routes return application/json.
func NewRouter(deps Deps) chi.Router {
	r := chi.NewRouter()
	r.Use(jsonContentType)
	registerBookmarkRoutes(r, deps.Bookmarks)
	return r
}

// jsonContentType sets Content-Type: application/json on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
