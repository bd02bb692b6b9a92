package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mattjh/pokernight-go/internal/model"
	"github.com/mattjh/pokernight-go/internal/services/validation"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodePlayerNotFound      = "PLAYER_NOT_FOUND"
	CodeNameTaken           = "NAME_TAKEN"
	CodeGameNotFound        = "GAME_NOT_FOUND"
	CodeActiveGameExists    = "ACTIVE_GAME_EXISTS"
	CodeNoActiveGame        = "NO_ACTIVE_GAME"
	CodeAlreadyCompleted    = "ALREADY_COMPLETED"
	CodeGameNotOpen         = "GAME_NOT_OPEN"
	CodeInvalidTransition   = "INVALID_TRANSITION"
	CodeGameStillActive     = "GAME_STILL_ACTIVE"
	CodeGamePlayerNotFound  = "GAME_PLAYER_NOT_FOUND"
	CodeAlreadyInGame       = "ALREADY_IN_GAME"
	CodeInvalidBuyInCount   = "INVALID_BUY_IN_COUNT"
	CodeMalformedSubmission = "MALFORMED_SUBMISSION"
	CodeDuplicateEntry      = "DUPLICATE_ENTRY"
	CodeCountMismatch       = "COUNT_MISMATCH"
	CodeMissingPlayer       = "MISSING_PLAYER"
	CodeNonNumericValue     = "NON_NUMERIC_VALUE"
	CodeImbalance           = "IMBALANCE"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map validation errors; messages name the offending player or
	// amounts, so pass them through
	var dupErr *validation.DuplicateEntryError
	var countErr *validation.CountMismatchError
	var missingErr *validation.MissingPlayerError
	var numErr *validation.NonNumericError
	var imbErr *validation.ImbalanceError
	switch {
	case errors.As(err, &dupErr):
		return &httpError{http.StatusBadRequest, APIError{CodeDuplicateEntry, dupErr.Error()}}
	case errors.As(err, &countErr):
		return &httpError{http.StatusBadRequest, APIError{CodeCountMismatch, countErr.Error()}}
	case errors.As(err, &missingErr):
		return &httpError{http.StatusBadRequest, APIError{CodeMissingPlayer, missingErr.Error()}}
	case errors.As(err, &numErr):
		return &httpError{http.StatusBadRequest, APIError{CodeNonNumericValue, numErr.Error()}}
	case errors.As(err, &imbErr):
		return &httpError{http.StatusBadRequest, APIError{CodeImbalance, imbErr.Error()}}
	}

	// Map model errors
	switch {
	case errors.Is(err, validation.ErrMalformedSubmission):
		return &httpError{http.StatusBadRequest, APIError{CodeMalformedSubmission, err.Error()}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrPlayerNameTaken):
		return &httpError{http.StatusConflict, APIError{CodeNameTaken, "Player name is already taken"}}
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrActiveGameExists):
		return &httpError{http.StatusConflict, APIError{CodeActiveGameExists, "An active game already exists"}}
	case errors.Is(err, model.ErrNoActiveGame):
		return &httpError{http.StatusNotFound, APIError{CodeNoActiveGame, "No active game"}}
	case errors.Is(err, model.ErrGameCompleted):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyCompleted, "Game is already completed"}}
	case errors.Is(err, model.ErrGameNotOpen):
		return &httpError{http.StatusConflict, APIError{CodeGameNotOpen, "Game is no longer open"}}
	case errors.Is(err, model.ErrInvalidTransition):
		return &httpError{http.StatusConflict, APIError{CodeInvalidTransition, "Invalid game status transition"}}
	case errors.Is(err, model.ErrGameStillActive):
		return &httpError{http.StatusConflict, APIError{CodeGameStillActive, "Game is still active; cancel it first"}}
	case errors.Is(err, model.ErrGamePlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGamePlayerNotFound, "Game player not found"}}
	case errors.Is(err, model.ErrPlayerAlreadyInGame):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyInGame, "Player is already in this game"}}
	case errors.Is(err, model.ErrInvalidBuyInCount):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidBuyInCount, "Buy-in count must be at least 1"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
