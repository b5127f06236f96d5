package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/fK470/fusen/internal/store"
)

// Error codes carried in the errorCode field.
const (
	codeBookmarkNotFound = "BOOKMARK_NOT_FOUND"
	codeDuplicateURL     = "DUPLICATE_URL"
	codeInvalidURL       = "INVALID_URL"
	codeValidationError  = "VALIDATION_ERROR"
	codeInternalError    = "INTERNAL_SERVER_ERROR"
)

// writeJSON writes a JSON response with the given HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error body with the given HTTP status code.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{ErrorCode: code, Message: message})
}

// writeServiceError maps a service error to its HTTP response. Anything
// outside the typed taxonomy is a 500 with the cause appended.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, codeBookmarkNotFound, err.Error())
	case errors.Is(err, store.ErrDuplicateURL):
		writeError(w, http.StatusConflict, codeDuplicateURL, err.Error())
	case errors.Is(err, store.ErrInvalidURL):
		writeError(w, http.StatusBadRequest, codeInvalidURL, err.Error())
	default:
		logrus.WithError(err).Error("bookmark operation failed")
		writeError(w, http.StatusInternalServerError, codeInternalError,
			"An unexpected error occurred: "+err.Error())
	}
}
