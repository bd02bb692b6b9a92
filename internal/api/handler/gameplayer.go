package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mattjh/pokernight-go/internal/api/request"
	"github.com/mattjh/pokernight-go/internal/api/response"
	"github.com/mattjh/pokernight-go/internal/model"
	"github.com/mattjh/pokernight-go/internal/services/game"
	"github.com/mattjh/pokernight-go/internal/services/player"
)

// GamePlayerHandler handles game roster endpoints
type GamePlayerHandler struct {
	gameController *game.Controller
	playerService  *player.Service
}

// NewGamePlayerHandler creates a new game player handler
func NewGamePlayerHandler(gameController *game.Controller, playerService *player.Service) *GamePlayerHandler {
	return &GamePlayerHandler{
		gameController: gameController,
		playerService:  playerService,
	}
}

// Create handles POST /api/v1/game-players
// Seats a player in a game. A player_name may be given instead of a
// player_id; the player record is created on first reference.
func (h *GamePlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.AddGamePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.GameID == "" {
		WriteError(w, NewInvalidRequestError("game_id is required"))
		return
	}

	playerID := model.PlayerID(req.PlayerID)
	if playerID == "" {
		if req.PlayerName == "" {
			WriteError(w, NewInvalidRequestError("player_id or player_name is required"))
			return
		}
		p, err := h.playerService.GetOrCreatePlayer(r.Context(), req.PlayerName)
		if err != nil {
			WriteError(w, err)
			return
		}
		playerID = p.ID
	}

	gp, err := h.gameController.AddPlayer(r.Context(), model.GameID(req.GameID), playerID, req.BuyInCount)
	if err != nil {
		WriteError(w, err)
		return
	}

	g, err := h.gameController.GetGame(r.Context(), gp.GameID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GamePlayerFromModel(gp, g.DefaultBuyIn))
}

// Update handles PATCH /api/v1/game-players/{id}
func (h *GamePlayerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := model.GamePlayerID(mux.Vars(r)["id"])

	var req request.UpdateGamePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	gp, err := h.gameController.UpdateBuyInCount(r.Context(), id, req.BuyInCount)
	if err != nil {
		WriteError(w, err)
		return
	}

	g, err := h.gameController.GetGame(r.Context(), gp.GameID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GamePlayerFromModel(gp, g.DefaultBuyIn))
}

// Delete handles DELETE /api/v1/game-players/{id}
func (h *GamePlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := model.GamePlayerID(mux.Vars(r)["id"])

	if err := h.gameController.RemovePlayer(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
