// Package handler assembles the outer HTTP router: middleware stack,
// operational endpoints, and the /api/v1 JSON API.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/fK470/fusen/docs/swagger"
	"github.com/fK470/fusen/internal/api"
	"github.com/fK470/fusen/internal/service"
)

// Deps holds all dependencies required to build the HTTP router.
type Deps struct {
	Bookmarks *service.BookmarkService
}

// NewRouter assembles the full chi router with all middleware and routes.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	// Swagger UI for the JSON API.
	r.Get("/api/docs/*", httpSwagger.WrapHandler)

	r.Mount("/api/v1", api.NewRouter(api.Deps{Bookmarks: deps.Bookmarks}))

	return r
}
