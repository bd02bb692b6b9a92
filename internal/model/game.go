package model

import "time"

// GameID uniquely identifies a game session
type GameID string

// GamePlayerID uniquely identifies a player's participation in one game
type GamePlayerID string

// GameStatus represents the lifecycle phase of a game
type GameStatus string

const (
	GameStatusActive    GameStatus = "active"    // Play in progress, buy-ins open
	GameStatusSettling  GameStatus = "settling"  // Ending values being collected
	GameStatusCompleted GameStatus = "completed" // Settled; ledger applied
	GameStatusCancelled GameStatus = "cancelled" // Abandoned with no ledger effect
)

// Game is a single poker cash-game session.
// At most one game is active system-wide at a time.
type Game struct {
	ID     GameID
	Status GameStatus

	// DefaultBuyIn is the money value of one buy-in.
	DefaultBuyIn int

	// ChipsPerBuyIn is the chip count handed out per buy-in. Zero means
	// ending values are entered directly in money units.
	ChipsPerBuyIn int

	// TotalPot is the sum of all buy-ins, written once at completion.
	TotalPot int

	CreatedAt   time.Time
	CompletedAt *time.Time
}

// ChipMode reports whether ending values are entered in chips rather
// than money units.
func (g *Game) ChipMode() bool {
	return g.ChipsPerBuyIn > 0
}

// Open reports whether the game can still accept settlement
// (ending values, cancellation, roster changes).
func (g *Game) Open() bool {
	return g.Status == GameStatusActive || g.Status == GameStatusSettling
}

// Clone returns a copy of the game, safe to mutate before an
// atomic storage write.
func (g *Game) Clone() *Game {
	c := *g
	if g.CompletedAt != nil {
		t := *g.CompletedAt
		c.CompletedAt = &t
	}
	return &c
}

// GamePlayer records one player's participation in one game.
// A player appears at most once per game.
type GamePlayer struct {
	ID       GamePlayerID
	GameID   GameID
	PlayerID PlayerID

	// BuyInCount is the number of buy-ins taken, always >= 1.
	BuyInCount int

	// Final fields are nil until settlement runs. EndingValue holds the
	// raw submitted value (chips in chip mode), FinalAmount the converted
	// money value, NetResult = FinalAmount - BuyInCount*DefaultBuyIn.
	EndingValue *float64
	FinalAmount *int
	NetResult   *int
}

// TotalBuyIn returns the player's total money put into the game.
func (gp *GamePlayer) TotalBuyIn(defaultBuyIn int) int {
	return gp.BuyInCount * defaultBuyIn
}

// Clone returns a copy of the game player, safe to mutate before an
// atomic storage write.
func (gp *GamePlayer) Clone() *GamePlayer {
	c := *gp
	if gp.EndingValue != nil {
		v := *gp.EndingValue
		c.EndingValue = &v
	}
	if gp.FinalAmount != nil {
		v := *gp.FinalAmount
		c.FinalAmount = &v
	}
	if gp.NetResult != nil {
		v := *gp.NetResult
		c.NetResult = &v
	}
	return &c
}

// EndingValue is one entry of a settlement submission: the value a
// player holds at the end of the game, in raw units as entered.
type EndingValue struct {
	PlayerID PlayerID
	Value    float64
}

// NetResult is a player's signed game outcome in money units.
// A set of net results for one game always sums to zero.
type NetResult struct {
	PlayerID PlayerID
	Amount   int
}
