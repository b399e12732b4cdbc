// @title           DriveBox API
// @version         1.0
// @description     Cloud drive backend: folder hierarchy, file storage, auth and change events.
// @host            localhost:8080
// @schemes         http https
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"log"
	"net/http"

	"drivebox/internal/api"
	"drivebox/internal/config"
	"drivebox/internal/database"
	"drivebox/internal/storage"
	"drivebox/internal/websocket"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "drivebox/docs"

	httpSwagger "github.com/swaggo/http-swagger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	dbpool, err := pgxpool.New(context.Background(), cfg.DB.Source)
	if err != nil {
		log.Fatalf("Failed to connect to the database: %v", err)
	}
	defer dbpool.Close()

	if err := dbpool.Ping(context.Background()); err != nil {
		log.Fatalf("Failed to ping the database: %v", err)
	}
	log.Println("Connected to the database")

	localStorage, err := storage.NewLocalStorage(cfg.Storage.Path)
	if err != nil {
		log.Fatalf("Failed to initialize local storage: %v", err)
	}
	log.Printf("File content is stored under: %s", cfg.Storage.Path)

	wsHub := websocket.NewHub()
	go wsHub.Run()

	store := database.NewStore(dbpool, wsHub)
	server := api.NewServer(cfg, store, localStorage, wsHub)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(api.MetricsMiddleware)

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"),
	))

	r.Get("/ws", server.ServeWsHandler)
	r.Get("/health", server.HealthCheckHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", server.RegisterHandler)
		r.Post("/auth/login", server.LoginHandler)
		r.Post("/auth/refresh", server.RefreshTokenHandler)
		r.Post("/auth/logout", server.LogoutHandler)

		r.Group(func(r chi.Router) {
			r.Use(server.AuthMiddleware)

			r.Get("/users/me", server.GetCurrentUserHandler)
			r.Put("/users/me", server.UpdateProfileHandler)

			r.Get("/sessions", server.ListSessionsHandler)
			r.Delete("/sessions", server.DeleteAllSessionsHandler)
			r.Delete("/sessions/{sessionId}", server.DeleteSessionHandler)

			r.Get("/folders", server.GetRootContentsHandler)
			r.Post("/folders", server.CreateFolderHandler)
			r.Get("/folders/breadcrumbs", server.GetBreadcrumbsHandler)
			r.Get("/folders/tree", server.GetFolderTreeHandler)
			r.Get("/folders/{folderId}", server.GetFolderContentsHandler)
			r.Delete("/folders/{folderId}", server.DeleteFolderHandler)
			r.Get("/folders/{folderId}/files", server.ListFolderFilesHandler)
			r.Put("/folders/{folderId}/rename", server.RenameFolderHandler)
			r.Put("/folders/{folderId}/move", server.MoveFolderHandler)

			r.Post("/files/upload", server.UploadFileHandler)
			r.Get("/files/search", server.SearchFilesHandler)
			r.Get("/files/{fileId}", server.GetFileHandler)
			r.Delete("/files/{fileId}", server.DeleteFileHandler)
			r.Get("/files/{fileId}/download", server.DownloadFileHandler)
			r.Put("/files/{fileId}/rename", server.RenameFileHandler)
			r.Put("/files/{fileId}/move", server.MoveFileHandler)

			r.Get("/events", server.GetEventsHandler)
		})
	})

	log.Println("Starting server on :8080")
	if err := http.ListenAndServe(":8080", r); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
