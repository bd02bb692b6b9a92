package model

import "time"

// SettlementID uniquely identifies a settlement transfer
type SettlementID string

// Settlement is a single directed payment that settles part of a
// completed game: FromPlayer (a net loser) pays ToPlayer (a net winner).
// Immutable once created; the full set for a game is deleted and
// regenerated if settlement is retried.
type Settlement struct {
	ID           SettlementID
	GameID       GameID
	FromPlayerID PlayerID
	ToPlayerID   PlayerID
	Amount       int // always > 0
	CreatedAt    time.Time
}

// Completion is the atomic write unit for finishing a game: the
// completed game record, its game players with final fields set,
// the players with ledger deltas applied, and the regenerated
// settlement set. Storage backends persist all of it or none of it.
type Completion struct {
	Game        *Game
	GamePlayers []*GamePlayer
	Players     []*Player
	Settlements []*Settlement
}
