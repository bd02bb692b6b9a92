package redis

import (
	"fmt"

	"github.com/mattjh/pokernight-go/internal/model"
)

// Key prefix for all session-tracker data
const keyPrefix = "pokernight"

// Key generation functions for each entity type

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// playerNameIndexKey returns the Redis key for the name -> player_id index
func playerNameIndexKey(name string) string {
	return fmt.Sprintf("%s:idx:player_name:%s", keyPrefix, name)
}

// playersIndexKey returns the Redis key for the SET of all player keys
func playersIndexKey() string {
	return fmt.Sprintf("%s:idx:players", keyPrefix)
}

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// gamesIndexKey returns the Redis key for the SET of all game keys
func gamesIndexKey() string {
	return fmt.Sprintf("%s:idx:games", keyPrefix)
}

// activeGameKey returns the Redis key holding the ID of the single open
// game. Absent when no game is open.
func activeGameKey() string {
	return fmt.Sprintf("%s:active_game", keyPrefix)
}

// gamePlayerKey returns the Redis key for a GamePlayer
func gamePlayerKey(id model.GamePlayerID) string {
	return fmt.Sprintf("%s:game_player:%s", keyPrefix, id)
}

// gamePlayersIndexKey returns the Redis key for the SET of game-player
// keys belonging to a game
func gamePlayersIndexKey(gameID model.GameID) string {
	return fmt.Sprintf("%s:idx:game_players:%s", keyPrefix, gameID)
}

// gameSeatsIndexKey returns the Redis key for the SET of player IDs
// seated in a game, used to reject duplicate seats
func gameSeatsIndexKey(gameID model.GameID) string {
	return fmt.Sprintf("%s:idx:game_seats:%s", keyPrefix, gameID)
}

// settlementKey returns the Redis key for a Settlement
func settlementKey(id model.SettlementID) string {
	return fmt.Sprintf("%s:settlement:%s", keyPrefix, id)
}

// settlementsIndexKey returns the Redis key for the SET of all
// settlement keys
func settlementsIndexKey() string {
	return fmt.Sprintf("%s:idx:settlements", keyPrefix)
}

// gameSettlementsIndexKey returns the Redis key for the SET of
// settlement keys belonging to a game
func gameSettlementsIndexKey(gameID model.GameID) string {
	return fmt.Sprintf("%s:idx:game_settlements:%s", keyPrefix, gameID)
}
