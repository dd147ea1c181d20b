package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/setlists/internal/shared"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, shared.ErrOrderingMismatch):
		return http.StatusUnprocessableEntity
	case errors.Is(err, shared.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, shared.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, shared.ErrInvalidArgument):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// messageFor returns the client-facing message for err. Internal failures get fallback.
func messageFor(err error, fallback string) string {
	switch {
	case errors.Is(err, shared.ErrSetlistNotFound):
		return "Setlist not found"
	case errors.Is(err, shared.ErrMembershipNotFound):
		return "Song not found in setlist"
	case errors.Is(err, shared.ErrSongNotFound):
		return "Song not found"
	case errors.Is(err, shared.ErrNotFound):
		return "Not found"
	case errors.Is(err, shared.ErrAlreadyMember):
		return "Song already in setlist"
	case errors.Is(err, shared.ErrConflict):
		return "Conflict"
	case errors.Is(err, shared.ErrOrderingMismatch):
		return "Members must list every song in the setlist exactly once"
	case errors.Is(err, shared.ErrInvalidArgument):
		return "Invalid request"
	default:
		return fallback
	}
}

// respondError writes the status and message for err. Internal errors are logged; their text never reaches the client.
func respondError(w http.ResponseWriter, r *http.Request, logger *log.Logger, err error, fallback string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error(fallback, "err", err, "path", r.URL.Path, "request_id", RequestIDFrom(r.Context()))
	}
	writeError(w, status, messageFor(err, fallback))
}

// pathID parses the named path wildcard as a positive base-10 integer.
func pathID(r *http.Request, name string) (int64, bool) {
	return parseID(r.PathValue(name))
}

func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// decodeJSON reads a JSON request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	return nil
}
