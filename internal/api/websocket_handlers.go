package api

import (
	"log"
	"net/http"

	"drivebox/internal/auth"
	"drivebox/internal/websocket"
)

// ServeWsHandler upgrades the connection and attaches it to the hub so the
// user receives drive change events as they happen. Browsers cannot set an
// Authorization header on websocket upgrades, so the token rides in the
// query string.
func (s *Server) ServeWsHandler(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		respondError(w, http.StatusUnauthorized, "Missing token")
		return
	}

	claims, err := auth.VerifyJWT(token, s.config.JWT.Secret)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	conn, err := websocket.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WARN: websocket upgrade failed for user %d: %v", claims.UserID, err)
		return
	}

	client := websocket.NewClient(s.hub, conn, claims.UserID)
	s.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
