package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// @Summary      List active sessions
// @Description  Lists the user's non-expired sessions, newest first.
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  models.Session
// @Router       /sessions [get]
func (s *Server) ListSessionsHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	sessions, err := s.store.ListSessionsForUser(r.Context(), claims.UserID)
	if err != nil {
		respondStoreError(w, err, "Failed to list sessions")
		return
	}
	respondJSON(w, http.StatusOK, sessions)
}

// @Summary      Revoke a session
// @Description  Deletes one of the user's sessions by ID, invalidating its refresh token. Revoking an unknown session is a no-op.
// @Tags         sessions
// @Security     BearerAuth
// @Param        sessionId  path  string  true  "Session ID (UUID)"
// @Success      204        "No Content"
// @Failure      400        {object}  map[string]string
// @Router       /sessions/{sessionId} [delete]
func (s *Server) DeleteSessionHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	if err := s.store.DeleteSessionByID(r.Context(), sessionID, claims.UserID); err != nil {
		respondStoreError(w, err, "Failed to revoke session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary      Revoke all sessions
// @Description  Deletes every session of the user, logging out all devices.
// @Tags         sessions
// @Security     BearerAuth
// @Success      204  "No Content"
// @Router       /sessions [delete]
func (s *Server) DeleteAllSessionsHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	if err := s.store.DeleteAllSessionsForUser(r.Context(), claims.UserID); err != nil {
		respondStoreError(w, err, "Failed to revoke sessions")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
