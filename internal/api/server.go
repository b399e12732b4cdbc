package api

import (
	"context"
	"fmt"
	"net/http"

	"drivebox/internal/config"
	"drivebox/internal/database"
	"drivebox/internal/storage"
	"drivebox/internal/websocket"

	"github.com/jaevor/go-nanoid"
)

type Server struct {
	config  *config.Config
	store   *database.Store
	storage *storage.LocalStorage
	hub     *websocket.Hub
}

func NewServer(cfg *config.Config, store *database.Store, storage *storage.LocalStorage, hub *websocket.Hub) *Server {
	return &Server{
		config:  cfg,
		store:   store,
		storage: storage,
		hub:     hub,
	}
}

// generateUniqueID draws 21-char nanoids until one is free according to
// the supplied existence check.
func (s *Server) generateUniqueID(ctx context.Context, exists func(context.Context, string) (bool, error)) (string, error) {
	maxRetries := 10

	generateID, err := nanoid.Standard(21)
	if err != nil {
		return "", fmt.Errorf("failed to initialize nanoid generator: %w", err)
	}

	for i := 0; i < maxRetries; i++ {
		id := generateID()
		taken, err := exists(ctx, id)
		if err != nil {
			return "", fmt.Errorf("failed to check id existence: %w", err)
		}
		if !taken {
			return id, nil
		}
	}

	return "", fmt.Errorf("failed to generate a unique ID after %d attempts", maxRetries)
}

// @Summary      Health check
// @Description  Reports whether the service and its database are reachable.
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /health [get]
func (s *Server) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.store.GetPool().Ping(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
