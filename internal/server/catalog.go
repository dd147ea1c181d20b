package server

import (
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
)

const (
	routeListSongs  = "GET /items"
	routeCreateSong = "POST /items"
	routeGetSong    = "GET /items/{id}"
	routeUpdateSong = "PUT /items/{id}"
	routeDeleteSong = "DELETE /items/{id}"

	routeListSetlists  = "GET /collections"
	routeCreateSetlist = "POST /collections"
	routeGetSetlist    = "GET /collections/{id}"
	routeUpdateSetlist = "PUT /collections/{id}"
	routeDeleteSetlist = "DELETE /collections/{id}"
)

// SongsHandler serves song catalog CRUD under /items.
type SongsHandler struct {
	service CatalogService
	logger  *log.Logger
}

func NewSongsHandler(service CatalogService, logger *log.Logger) *SongsHandler {
	return &SongsHandler{service: service, logger: logger}
}

func (h *SongsHandler) Routes() []string {
	return []string{routeListSongs, routeCreateSong, routeGetSong, routeUpdateSong, routeDeleteSong}
}

type songPayload struct {
	Title *string `json:"title"`
	Body  *string `json:"body"`
}

// validate returns the first field error, or "" when the payload is usable.
func (p songPayload) validate() string {
	if p.Title == nil || strings.TrimSpace(*p.Title) == "" {
		return "Title is required and must be a non-empty string"
	}
	if p.Body == nil || strings.TrimSpace(*p.Body) == "" {
		return "Body is required and must be a non-empty string"
	}
	return ""
}

func (h *SongsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Pattern == routeListSongs {
		songs, err := h.service.ListSongs(ctx)
		if err != nil {
			respondError(w, r, h.logger, err, "Failed to fetch songs")
			return
		}
		writeJSON(w, http.StatusOK, songs)
		return
	}

	if r.Pattern == routeCreateSong {
		payload, ok := h.payload(w, r)
		if !ok {
			return
		}
		song, err := h.service.CreateSong(ctx, *payload.Title, *payload.Body)
		if err != nil {
			respondError(w, r, h.logger, err, "Failed to create song")
			return
		}
		writeJSON(w, http.StatusCreated, song)
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid song ID")
		return
	}

	switch r.Pattern {
	case routeGetSong:
		song, err := h.service.GetSong(ctx, id)
		if err != nil {
			respondError(w, r, h.logger, err, "Failed to fetch song")
			return
		}
		writeJSON(w, http.StatusOK, song)
	case routeUpdateSong:
		payload, ok := h.payload(w, r)
		if !ok {
			return
		}
		song, err := h.service.UpdateSong(ctx, id, *payload.Title, *payload.Body)
		if err != nil {
			respondError(w, r, h.logger, err, "Failed to update song")
			return
		}
		writeJSON(w, http.StatusOK, song)
	case routeDeleteSong:
		if err := h.service.DeleteSong(ctx, id); err != nil {
			respondError(w, r, h.logger, err, "Failed to delete song")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusNotFound, "Not found")
	}
}

func (h *SongsHandler) payload(w http.ResponseWriter, r *http.Request) (songPayload, bool) {
	var payload songPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return payload, false
	}
	if msg := payload.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return payload, false
	}
	return payload, true
}

// SetlistsHandler serves setlist CRUD under /collections.
type SetlistsHandler struct {
	service CatalogService
	logger  *log.Logger
}

func NewSetlistsHandler(service CatalogService, logger *log.Logger) *SetlistsHandler {
	return &SetlistsHandler{service: service, logger: logger}
}

func (h *SetlistsHandler) Routes() []string {
	return []string{routeListSetlists, routeCreateSetlist, routeGetSetlist, routeUpdateSetlist, routeDeleteSetlist}
}

type setlistPayload struct {
	Name *string `json:"name"`
}

func (h *SetlistsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Pattern == routeListSetlists {
		setlists, err := h.service.ListSetlists(ctx)
		if err != nil {
			respondError(w, r, h.logger, err, "Failed to fetch setlists")
			return
		}
		writeJSON(w, http.StatusOK, setlists)
		return
	}

	if r.Pattern == routeCreateSetlist {
		name, ok := h.name(w, r)
		if !ok {
			return
		}
		setlist, err := h.service.CreateSetlist(ctx, name)
		if err != nil {
			respondError(w, r, h.logger, err, "Failed to create setlist")
			return
		}
		writeJSON(w, http.StatusCreated, setlist)
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid setlist ID")
		return
	}

	switch r.Pattern {
	case routeGetSetlist:
		setlist, err := h.service.GetSetlist(ctx, id)
		if err != nil {
			respondError(w, r, h.logger, err, "Failed to fetch setlist")
			return
		}
		writeJSON(w, http.StatusOK, setlist)
	case routeUpdateSetlist:
		name, ok := h.name(w, r)
		if !ok {
			return
		}
		setlist, err := h.service.RenameSetlist(ctx, id, name)
		if err != nil {
			respondError(w, r, h.logger, err, "Failed to update setlist")
			return
		}
		writeJSON(w, http.StatusOK, setlist)
	case routeDeleteSetlist:
		if err := h.service.DeleteSetlist(ctx, id); err != nil {
			respondError(w, r, h.logger, err, "Failed to delete setlist")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusNotFound, "Not found")
	}
}

func (h *SetlistsHandler) name(w http.ResponseWriter, r *http.Request) (string, bool) {
	var payload setlistPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return "", false
	}
	if payload.Name == nil || strings.TrimSpace(*payload.Name) == "" {
		writeError(w, http.StatusBadRequest, "Setlist name is required and must be a non-empty string")
		return "", false
	}
	return *payload.Name, true
}

var (
	_ Handler = (*SongsHandler)(nil)
	_ Handler = (*SetlistsHandler)(nil)
)
