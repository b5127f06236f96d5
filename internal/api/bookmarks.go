package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/fK470/fusen/internal/metrics"
	"github.com/fK470/fusen/internal/service"
	"github.com/fK470/fusen/internal/store"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// bookmarksHandler provides REST handlers for bookmark management.
type bookmarksHandler struct {
	bookmarks *service.BookmarkService
	validate  *validator.Validate
}

// registerBookmarkRoutes registers bookmark routes on r.
func registerBookmarkRoutes(r chi.Router, bookmarks *service.BookmarkService) {
	h := &bookmarksHandler{bookmarks: bookmarks, validate: newValidator()}
	r.Get("/bookmarks", h.List)
	r.Post("/bookmarks", h.Create)
	r.Get("/bookmarks/{id}", h.Get)
	r.Put("/bookmarks/{id}", h.Update)
	r.Delete("/bookmarks/{id}", h.Delete)
}

// newValidator builds the request validator with the bookmarkurl rule,
// which enforces the ^(http|https):// pattern on the url field.
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("bookmarkurl", func(fl validator.FieldLevel) bool {
		return store.URLPatternRe.MatchString(fl.Field().String())
	})
	return v
}

// List returns a page of bookmarks with their tag sets.
// GET /api/v1/bookmarks
//
// @Summary      List bookmarks
// @Description  Returns bookmarks in insertion order, each with its tag set.
// @Tags         Bookmarks
// @Accept       json
// @Produce      json
// @Param        limit   query     int  false  "Page size (default 10)"
// @Param        offset  query     int  false  "Rows to skip (default 0)"
// @Success      200     {array}   BookmarkResponse
// @Failure      500     {object}  ErrorResponse
// @Router       /bookmarks [get]
func (h *bookmarksHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	bookmarks, err := h.bookmarks.List(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := make([]BookmarkResponse, 0, len(bookmarks))
	for _, b := range bookmarks {
		resp = append(resp, toBookmarkResponse(b))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get returns a single bookmark by id.
// GET /api/v1/bookmarks/{id}
//
// @Summary      Get a bookmark
// @Description  Returns a single bookmark by id with its tag set.
// @Tags         Bookmarks
// @Accept       json
// @Produce      json
// @Param        id   path      int  true  "Bookmark ID"
// @Success      200  {object}  BookmarkResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /bookmarks/{id} [get]
func (h *bookmarksHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	b, err := h.bookmarks.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookmarkResponse(b))
}

// Create stores a new bookmark.
// POST /api/v1/bookmarks
//
// @Summary      Create a bookmark
// @Description  Stores a bookmark with an optional title, description, and tag names.
// @Tags         Bookmarks
// @Accept       json
// @Produce      json
// @Param        body  body      BookmarkRequest  true  "Bookmark to create"
// @Success      201   {object}  BookmarkResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /bookmarks [post]
func (h *bookmarksHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	b, err := h.bookmarks.Create(r.Context(), service.BookmarkParams{
		URL:         req.URL,
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	metrics.BookmarksCreatedTotal.Inc()
	writeJSON(w, http.StatusCreated, toBookmarkResponse(b))
}

// Update replaces a bookmark's fields and tag set.
// PUT /api/v1/bookmarks/{id}
//
// @Summary      Update a bookmark
// @Description  Replaces url, title, description, and the whole tag set.
// @Tags         Bookmarks
// @Accept       json
// @Produce      json
// @Param        id    path      int              true  "Bookmark ID"
// @Param        body  body      BookmarkRequest  true  "New field values"
// @Success      200   {object}  BookmarkResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /bookmarks/{id} [put]
func (h *bookmarksHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	b, err := h.bookmarks.Update(r.Context(), id, service.BookmarkParams{
		URL:         req.URL,
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	metrics.BookmarksUpdatedTotal.Inc()
	writeJSON(w, http.StatusOK, toBookmarkResponse(b))
}

// Delete removes a bookmark and its tag memberships.
// DELETE /api/v1/bookmarks/{id}
//
// @Summary      Delete a bookmark
// @Description  Removes a bookmark. Tags stay behind for other bookmarks.
// @Tags         Bookmarks
// @Accept       json
// @Produce      json
// @Param        id   path  int  true  "Bookmark ID"
// @Success      204  "No Content"
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /bookmarks/{id} [delete]
func (h *bookmarksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.bookmarks.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	metrics.BookmarksDeletedTotal.Inc()
	w.WriteHeader(http.StatusNoContent)
}

// decodeRequest decodes and validates the request body, writing the
// error response itself when the body is unusable.
func (h *bookmarksHandler) decodeRequest(w http.ResponseWriter, r *http.Request) (*BookmarkRequest, bool) {
	var req BookmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidationError, "invalid request body")
		return nil, false
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidationError, validationMessage(err))
		return nil, false
	}
	return &req, true
}

// validationMessage flattens validator field errors into one message.
func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return "Validation failed"
	}
	msg := "Validation failed:"
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			msg += " url is required."
		case "bookmarkurl":
			msg += " url must start with http:// or https://."
		default:
			msg += " " + fe.Field() + " is invalid."
		}
	}
	return msg
}

// parseID extracts the {id} path parameter. A non-numeric id can never
// name a bookmark, so it is reported as a validation failure.
func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationError, "invalid bookmark id")
		return 0, false
	}
	return id, true
}

// parsePagination extracts limit and offset from query parameters.
// limit defaults to 10 and is capped at 100; an explicit limit=0 is
// honored and yields an empty page. offset defaults to 0.
func parsePagination(r *http.Request) (limit, offset int) {
	limit = defaultLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed >= 0 {
			limit = parsed
		}
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	if o := r.URL.Query().Get("offset"); o != "" {
		if parsed, err := strconv.Atoi(o); err == nil && parsed >= 0 {
			offset = parsed
		}
	}
	return limit, offset
}
