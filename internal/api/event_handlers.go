package api

import (
	"net/http"
	"strconv"
)

// @Summary      Poll drive change events
// @Description  Returns the user's journaled change events with an ID greater than since_id, oldest first, capped at 100. Clients that miss websocket pushes catch up here.
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        since_id  query     int  false  "Last event ID already seen (default 0)"
// @Success      200       {array}   database.Event
// @Failure      400       {object}  map[string]string
// @Router       /events [get]
func (s *Server) GetEventsHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	var sinceID int64
	if raw := r.URL.Query().Get("since_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			respondError(w, http.StatusBadRequest, "Invalid since_id")
			return
		}
		sinceID = parsed
	}

	events, err := s.store.GetEventsSince(r.Context(), claims.UserID, sinceID)
	if err != nil {
		respondStoreError(w, err, "Failed to read events")
		return
	}
	respondJSON(w, http.StatusOK, events)
}
