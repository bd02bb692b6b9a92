package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mattjh/pokernight-go/internal/api/request"
	"github.com/mattjh/pokernight-go/internal/api/response"
	"github.com/mattjh/pokernight-go/internal/model"
	"github.com/mattjh/pokernight-go/internal/services/game"
)

// GameHandler handles game lifecycle endpoints
type GameHandler struct {
	gameController *game.Controller
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController *game.Controller) *GameHandler {
	return &GameHandler{
		gameController: gameController,
	}
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		// Allow empty body for default config
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.DefaultBuyIn < 0 {
		WriteError(w, NewInvalidRequestError("default_buy_in must not be negative"))
		return
	}
	if req.ChipsPerBuyIn < 0 {
		WriteError(w, NewInvalidRequestError("chips_per_buy_in must not be negative"))
		return
	}

	g, err := h.gameController.CreateGame(r.Context(), req.DefaultBuyIn, req.ChipsPerBuyIn)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameFromModel(g))
}

// List handles GET /api/v1/games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	games, err := h.gameController.ListGames(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GamesFromModel(games))
}

// GetActive handles GET /api/v1/games/active
func (h *GameHandler) GetActive(w http.ResponseWriter, r *http.Request) {
	g, err := h.gameController.GetActiveGame(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	h.writeGameDetail(w, r, g)
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

	g, err := h.gameController.GetGame(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.writeGameDetail(w, r, g)
}

func (h *GameHandler) writeGameDetail(w http.ResponseWriter, r *http.Request, g *model.Game) {
	gps, err := h.gameController.GamePlayers(r.Context(), g.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameDetailFromModel(g, gps))
}

// Settle handles POST /api/v1/games/{id}/settle
// Moves the game into the settling phase.
func (h *GameHandler) Settle(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

	g, err := h.gameController.BeginSettling(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// Complete handles POST /api/v1/games/{id}/complete
func (h *GameHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

	var req request.CompleteGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	entries := make([]model.EndingValue, len(req.EndingValues))
	for i, e := range req.EndingValues {
		entries[i] = model.EndingValue{
			PlayerID: model.PlayerID(e.PlayerID),
			Value:    e.Value,
		}
	}

	settlements, err := h.gameController.Complete(r.Context(), id, entries)
	if err != nil {
		WriteError(w, err)
		return
	}

	g, err := h.gameController.GetGame(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.CompleteGameResponse{
		Game:        response.GameFromModel(g),
		Settlements: response.SettlementsFromModel(settlements),
	})
}

// Cancel handles POST /api/v1/games/{id}/cancel
func (h *GameHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

	if err := h.gameController.Cancel(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Delete handles DELETE /api/v1/games/{id}
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

	if err := h.gameController.Delete(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Settlements handles GET /api/v1/games/{id}/settlements
func (h *GameHandler) Settlements(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

	settlements, err := h.gameController.Settlements(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SettlementsFromModel(settlements))
}
