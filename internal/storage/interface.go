package storage

import (
	"context"

	"github.com/mattjh/pokernight-go/internal/model"
)

// Storage defines the interface for data persistence.
//
// Multi-entity mutations that must be all-or-nothing (game creation
// against the single-active invariant, completion, reversal-and-delete)
// are expressed as single interface calls so each backend can make them
// atomic with its own means: one mutex for memory, WATCH/MULTI for
// redis, a transaction for postgres.
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	GetPlayerByName(ctx context.Context, name string) (*model.Player, error)
	// ListPlayers returns all players ordered by TotalBalance descending.
	ListPlayers(ctx context.Context) ([]*model.Player, error)

	// Game operations. CreateGame fails with model.ErrActiveGameExists if
	// another game is active; the check and the insert are atomic.
	CreateGame(ctx context.Context, game *model.Game) error
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	GetActiveGame(ctx context.Context) (*model.Game, error)
	// ListGames returns all games, newest first.
	ListGames(ctx context.Context) ([]*model.Game, error)

	// Game player operations. AddGamePlayer fails with
	// model.ErrPlayerAlreadyInGame on a duplicate (game, player) pair.
	AddGamePlayer(ctx context.Context, gp *model.GamePlayer) error
	SaveGamePlayer(ctx context.Context, gp *model.GamePlayer) error
	GetGamePlayer(ctx context.Context, id model.GamePlayerID) (*model.GamePlayer, error)
	GetGamePlayersForGame(ctx context.Context, gameID model.GameID) ([]*model.GamePlayer, error)
	DeleteGamePlayer(ctx context.Context, id model.GamePlayerID) error

	// Settlement operations
	ListSettlements(ctx context.Context) ([]*model.Settlement, error)
	GetSettlementsForGame(ctx context.Context, gameID model.GameID) ([]*model.Settlement, error)

	// ApplyCompletion atomically persists a game completion: replaces any
	// prior settlement set for the game, writes the final game player
	// records, the updated player ledgers, and the completed game. Fails
	// with model.ErrGameCompleted if the stored game is already completed,
	// which serializes concurrent completion attempts.
	ApplyCompletion(ctx context.Context, completion *model.Completion) error

	// DeleteGameCascade atomically removes a game with its game players
	// and settlements. A non-nil reverse is called inside the same atomic
	// unit with the game's seats and the current player records, and the
	// records it returns are written before the delete commits. Computing
	// the reversal outside the unit would race with completions touching
	// the same players.
	DeleteGameCascade(ctx context.Context, gameID model.GameID, reverse LedgerReversal) error
}

// LedgerReversal recomputes player records that undo a deleted game's
// ledger effects. It receives the game's seats and fresh copies of the
// seated players, keyed off the backend's own lock, transaction or WATCH.
type LedgerReversal func(gamePlayers []*model.GamePlayer, players []*model.Player) ([]*model.Player, error)
