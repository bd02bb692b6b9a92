package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// Player is a persistent player record spanning all games.
// Lifetime stats are only mutated as part of a game completion
// (or its reversal), never directly by request handlers.
type Player struct {
	ID   PlayerID
	Name string // display name, unique

	// Lifetime running totals, in money units
	TotalBalance int
	GamesPlayed  int

	// Streak and record stats
	CurrentStreak int // consecutive completed games with a positive net result
	MaxStreak     int
	BestWin       int // largest single-game positive net result
	WorstLoss     int // most negative single-game net result (<= 0)

	CreatedAt time.Time
}

// Clone returns a copy of the player, safe to mutate before an
// atomic storage write.
func (p *Player) Clone() *Player {
	c := *p
	return &c
}
