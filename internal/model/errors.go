package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound  = errors.New("player not found")
	ErrPlayerNameTaken = errors.New("player name is already taken")

	// Game errors
	ErrGameNotFound      = errors.New("game not found")
	ErrActiveGameExists  = errors.New("an active game already exists")
	ErrNoActiveGame      = errors.New("no active game")
	ErrGameCompleted     = errors.New("game is already completed")
	ErrGameNotOpen       = errors.New("game is no longer open")
	ErrInvalidTransition = errors.New("invalid game status transition")
	ErrGameStillActive   = errors.New("game is still active; cancel it first")

	// Game player errors
	ErrGamePlayerNotFound  = errors.New("game player not found")
	ErrPlayerAlreadyInGame = errors.New("player is already in this game")
	ErrInvalidBuyInCount   = errors.New("buy-in count must be at least 1")
)
