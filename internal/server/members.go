package server

import (
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/setlists/internal/models"
)

const (
	routeListMembers   = "GET /collections/{id}/members"
	routeAddMember     = "POST /collections/{id}/members"
	routeRemoveMember  = "DELETE /collections/{id}/members/{itemId}"
	routeReorderMember = "PUT /collections/{id}/members/reorder"
)

// MembersHandler serves the ordered membership of a setlist.
//
// It checks request shape (ids, payload structure) and leaves the membership rules to [MembershipService].
type MembersHandler struct {
	service MembershipService
	logger  *log.Logger
}

// NewMembersHandler creates a MembersHandler.
func NewMembersHandler(service MembershipService, logger *log.Logger) *MembersHandler {
	return &MembersHandler{service: service, logger: logger}
}

func (h *MembersHandler) Routes() []string {
	return []string{routeListMembers, routeAddMember, routeRemoveMember, routeReorderMember}
}

func (h *MembersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Pattern {
	case routeListMembers:
		h.list(w, r)
	case routeAddMember:
		h.add(w, r)
	case routeRemoveMember:
		h.remove(w, r)
	case routeReorderMember:
		h.reorder(w, r)
	default:
		writeError(w, http.StatusNotFound, "Not found")
	}
}

type addMemberPayload struct {
	ItemID *int64 `json:"itemId"`
}

type memberPosition struct {
	ItemID   *int64 `json:"itemId"`
	Position *int   `json:"position"`
}

type reorderPayload struct {
	Members []memberPosition `json:"members"`
}

func (h *MembersHandler) list(w http.ResponseWriter, r *http.Request) {
	setlistID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid setlist ID")
		return
	}

	songs, err := h.service.ListSetlistSongs(r.Context(), setlistID)
	if err != nil {
		respondError(w, r, h.logger, err, "Failed to fetch setlist songs")
		return
	}
	writeJSON(w, http.StatusOK, songs)
}

func (h *MembersHandler) add(w http.ResponseWriter, r *http.Request) {
	setlistID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid setlist ID")
		return
	}

	var payload addMemberPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if payload.ItemID == nil || *payload.ItemID <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid song ID")
		return
	}

	added, err := h.service.AddToSetlist(r.Context(), setlistID, *payload.ItemID)
	if err != nil {
		respondError(w, r, h.logger, err, "Failed to add song to setlist")
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

func (h *MembersHandler) remove(w http.ResponseWriter, r *http.Request) {
	setlistID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid setlist ID")
		return
	}
	songID, ok := pathID(r, "itemId")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid song ID")
		return
	}

	if err := h.service.RemoveFromSetlist(r.Context(), setlistID, songID); err != nil {
		respondError(w, r, h.logger, err, "Failed to remove song from setlist")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *MembersHandler) reorder(w http.ResponseWriter, r *http.Request) {
	setlistID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid setlist ID")
		return
	}

	var payload reorderPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ordering, msg := orderingFromPayload(payload)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	songs, err := h.service.Reorder(r.Context(), setlistID, ordering)
	if err != nil {
		respondError(w, r, h.logger, err, "Failed to reorder songs")
		return
	}
	writeJSON(w, http.StatusOK, songs)
}

// orderingFromPayload validates the reorder payload's shape and sorts it into an ordering.
// A non-empty msg describes why the payload was rejected.
func orderingFromPayload(payload reorderPayload) (models.Ordering, string) {
	if len(payload.Members) == 0 {
		return nil, "Members must be a non-empty array"
	}

	updates := make([]models.PositionUpdate, 0, len(payload.Members))
	for _, m := range payload.Members {
		if m.ItemID == nil || *m.ItemID <= 0 || m.Position == nil || *m.Position < 0 {
			return nil, "Each member must have a valid itemId and non-negative position"
		}
		updates = append(updates, models.PositionUpdate{SongID: *m.ItemID, Position: *m.Position})
	}

	ordering, err := models.OrderingFromPositions(updates)
	if err != nil {
		return nil, "Each member must appear once with a distinct position"
	}
	return ordering, ""
}

var _ Handler = (*MembersHandler)(nil)
