package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mattjh/pokernight-go/internal/api/handler"
	apimiddleware "github.com/mattjh/pokernight-go/internal/api/middleware"
	"github.com/mattjh/pokernight-go/internal/middleware"
	"github.com/mattjh/pokernight-go/internal/services/game"
	"github.com/mattjh/pokernight-go/internal/services/player"
	"github.com/mattjh/pokernight-go/internal/storage"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	PlayerService  *player.Service
	GameController *game.Controller
	Storage        storage.Storage
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.PlayerService)
	gameHandler := handler.NewGameHandler(cfg.GameController)
	gamePlayerHandler := handler.NewGamePlayerHandler(cfg.GameController, cfg.PlayerService)
	settlementHandler := handler.NewSettlementHandler(cfg.Storage)

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := apimiddleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Player routes
	api.HandleFunc("/players", playerHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/players", playerHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/players/{id}", playerHandler.Get).Methods(http.MethodGet)

	// Game lifecycle routes
	api.HandleFunc("/games", gameHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/games", gameHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/games/active", gameHandler.GetActive).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}", gameHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}", gameHandler.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/games/{id}/settle", gameHandler.Settle).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/complete", gameHandler.Complete).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/cancel", gameHandler.Cancel).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/settlements", gameHandler.Settlements).Methods(http.MethodGet)

	// Roster routes
	api.HandleFunc("/game-players", gamePlayerHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/game-players/{id}", gamePlayerHandler.Update).Methods(http.MethodPatch)
	api.HandleFunc("/game-players/{id}", gamePlayerHandler.Delete).Methods(http.MethodDelete)

	// Settlement routes
	api.HandleFunc("/settlements", settlementHandler.List).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
