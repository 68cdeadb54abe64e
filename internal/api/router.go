package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/playerbase/internal/api/handler"
	"github.com/mcoot/playerbase/internal/api/middleware"
	"github.com/mcoot/playerbase/internal/api/response"
	"github.com/mcoot/playerbase/internal/services/players"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger        *slog.Logger
	PlayerService *players.Service
	StorageType   string // reported by the health check
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	playerHandler := handler.NewPlayerHandler(cfg.PlayerService)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.RequestID)
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	api.HandleFunc("/players", playerHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/players", playerHandler.Create).Methods(http.MethodPost)
	// count is registered before {id} so it is not parsed as an identifier
	api.HandleFunc("/players/count", playerHandler.Count).Methods(http.MethodGet)
	api.HandleFunc("/players/{id}", playerHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/players/{id}", playerHandler.Update).Methods(http.MethodPatch, http.MethodPost)
	api.HandleFunc("/players/{id}", playerHandler.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/health", healthHandler(cfg.StorageType)).Methods(http.MethodGet)

	return r
}

func healthHandler(storageType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, http.StatusOK, response.Health{Status: "ok", Storage: storageType})
	}
}
