package handler

import (
	"net/http"

	"github.com/mattjh/pokernight-go/internal/api/response"
	"github.com/mattjh/pokernight-go/internal/storage"
)

// SettlementHandler handles settlement listing endpoints
type SettlementHandler struct {
	storage storage.Storage
}

// NewSettlementHandler creates a new settlement handler
func NewSettlementHandler(storage storage.Storage) *SettlementHandler {
	return &SettlementHandler{
		storage: storage,
	}
}

// List handles GET /api/v1/settlements
// Settlements come back newest first across all games.
func (h *SettlementHandler) List(w http.ResponseWriter, r *http.Request) {
	settlements, err := h.storage.ListSettlements(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SettlementsFromModel(settlements))
}
