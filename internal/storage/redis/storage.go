package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mattjh/pokernight-go/internal/model"
	"github.com/mattjh/pokernight-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Entities are stored as JSON values with SET indexes per collection;
// the multi-entity writes (completion, cascade delete) run under WATCH
// so concurrent writers retry or fail cleanly.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	// Fetch the stored record first so a rename drops the old name index
	var oldName string
	existing, err := s.GetPlayer(ctx, player.ID)
	if err == nil {
		oldName = existing.Name
	} else if !errors.Is(err, model.ErrPlayerNotFound) {
		return err
	}

	pipe := s.client.Pipeline()
	if oldName != "" && oldName != player.Name {
		pipe.Del(ctx, playerNameIndexKey(oldName))
	}
	savePlayerPipe(ctx, pipe, playerKey(player.ID), data, player.Name, player.ID)
	_, err = pipe.Exec(ctx)
	return err
}

// savePlayerPipe queues a player write plus index updates on a pipeline
func savePlayerPipe(ctx context.Context, pipe redis.Pipeliner, key string, data []byte, name string, id model.PlayerID) {
	pipe.Set(ctx, key, data, 0)
	pipe.Set(ctx, playerNameIndexKey(name), string(id), 0)
	pipe.SAdd(ctx, playersIndexKey(), key)
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) GetPlayerByName(ctx context.Context, name string) (*model.Player, error) {
	playerIDStr, err := s.client.Get(ctx, playerNameIndexKey(name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	return s.GetPlayer(ctx, model.PlayerID(playerIDStr))
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	values, err := s.fetchIndexed(ctx, playersIndexKey())
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(values))
	for _, val := range values {
		var player model.Player
		if err := json.Unmarshal([]byte(val), &player); err != nil {
			continue // Skip invalid data
		}
		players = append(players, &player)
	}

	// Leaderboard order: balance descending, name ascending on ties
	sort.Slice(players, func(i, j int) bool {
		if players[i].TotalBalance != players[j].TotalBalance {
			return players[i].TotalBalance > players[j].TotalBalance
		}
		return players[i].Name < players[j].Name
	})
	return players, nil
}

// Game operations

func (s *Storage) CreateGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	// The active-slot key enforces the single open game. Claiming it and
	// writing the game record happen in one MULTI/EXEC so a failed write
	// cannot leave the slot held with no game behind it.
	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		if err := tx.Get(ctx, activeGameKey()).Err(); err == nil {
			return model.ErrActiveGameExists
		} else if !errors.Is(err, redis.Nil) {
			return err
		}

		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, activeGameKey(), string(game.ID), 0)
			pipe.Set(ctx, gameKey(game.ID), data, 0)
			pipe.SAdd(ctx, gamesIndexKey(), gameKey(game.ID))
			return nil
		})
		return err
	}, activeGameKey())
	if errors.Is(err, redis.TxFailedErr) {
		// Another creator claimed the slot between the check and the EXEC
		return model.ErrActiveGameExists
	}
	return err
}

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, gameKey(game.ID), data, 0)
	pipe.SAdd(ctx, gamesIndexKey(), gameKey(game.ID))
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}

	if !game.Open() {
		return s.releaseActiveSlot(ctx, game.ID)
	}
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	data, err := s.client.Get(ctx, gameKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	var game model.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Storage) GetActiveGame(ctx context.Context) (*model.Game, error) {
	gameIDStr, err := s.client.Get(ctx, activeGameKey()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrNoActiveGame
		}
		return nil, err
	}

	return s.GetGame(ctx, model.GameID(gameIDStr))
}

func (s *Storage) ListGames(ctx context.Context) ([]*model.Game, error) {
	values, err := s.fetchIndexed(ctx, gamesIndexKey())
	if err != nil {
		return nil, err
	}

	games := make([]*model.Game, 0, len(values))
	for _, val := range values {
		var game model.Game
		if err := json.Unmarshal([]byte(val), &game); err != nil {
			continue // Skip invalid data
		}
		games = append(games, &game)
	}

	sort.Slice(games, func(i, j int) bool {
		return games[i].CreatedAt.After(games[j].CreatedAt)
	})
	return games, nil
}

// Game player operations

func (s *Storage) AddGamePlayer(ctx context.Context, gp *model.GamePlayer) error {
	data, err := json.Marshal(gp)
	if err != nil {
		return err
	}

	// The seat index rejects the duplicate atomically
	added, err := s.client.SAdd(ctx, gameSeatsIndexKey(gp.GameID), string(gp.PlayerID)).Result()
	if err != nil {
		return err
	}
	if added == 0 {
		return model.ErrPlayerAlreadyInGame
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, gamePlayerKey(gp.ID), data, 0)
	pipe.SAdd(ctx, gamePlayersIndexKey(gp.GameID), gamePlayerKey(gp.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) SaveGamePlayer(ctx context.Context, gp *model.GamePlayer) error {
	data, err := json.Marshal(gp)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, gamePlayerKey(gp.ID), data, 0)
	pipe.SAdd(ctx, gamePlayersIndexKey(gp.GameID), gamePlayerKey(gp.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetGamePlayer(ctx context.Context, id model.GamePlayerID) (*model.GamePlayer, error) {
	data, err := s.client.Get(ctx, gamePlayerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGamePlayerNotFound
		}
		return nil, err
	}

	var gp model.GamePlayer
	if err := json.Unmarshal(data, &gp); err != nil {
		return nil, err
	}
	return &gp, nil
}

func (s *Storage) GetGamePlayersForGame(ctx context.Context, gameID model.GameID) ([]*model.GamePlayer, error) {
	values, err := s.fetchIndexed(ctx, gamePlayersIndexKey(gameID))
	if err != nil {
		return nil, err
	}

	gps := make([]*model.GamePlayer, 0, len(values))
	for _, val := range values {
		var gp model.GamePlayer
		if err := json.Unmarshal([]byte(val), &gp); err != nil {
			continue // Skip invalid data
		}
		gps = append(gps, &gp)
	}

	// Stable order for callers iterating the roster
	sort.Slice(gps, func(i, j int) bool {
		return gps[i].ID < gps[j].ID
	})
	return gps, nil
}

func (s *Storage) DeleteGamePlayer(ctx context.Context, id model.GamePlayerID) error {
	gp, err := s.GetGamePlayer(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrGamePlayerNotFound) {
			return nil
		}
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, gamePlayerKey(id))
	pipe.SRem(ctx, gamePlayersIndexKey(gp.GameID), gamePlayerKey(id))
	pipe.SRem(ctx, gameSeatsIndexKey(gp.GameID), string(gp.PlayerID))
	_, err = pipe.Exec(ctx)
	return err
}

// Settlement operations

func (s *Storage) ListSettlements(ctx context.Context) ([]*model.Settlement, error) {
	values, err := s.fetchIndexed(ctx, settlementsIndexKey())
	if err != nil {
		return nil, err
	}

	settlements := s.unmarshalSettlements(values)
	sort.Slice(settlements, func(i, j int) bool {
		if !settlements[i].CreatedAt.Equal(settlements[j].CreatedAt) {
			return settlements[i].CreatedAt.After(settlements[j].CreatedAt)
		}
		return settlements[i].ID < settlements[j].ID
	})
	return settlements, nil
}

func (s *Storage) GetSettlementsForGame(ctx context.Context, gameID model.GameID) ([]*model.Settlement, error) {
	values, err := s.fetchIndexed(ctx, gameSettlementsIndexKey(gameID))
	if err != nil {
		return nil, err
	}

	settlements := s.unmarshalSettlements(values)
	sort.Slice(settlements, func(i, j int) bool {
		return settlements[i].ID < settlements[j].ID
	})
	return settlements, nil
}

func (s *Storage) unmarshalSettlements(values []string) []*model.Settlement {
	settlements := make([]*model.Settlement, 0, len(values))
	for _, val := range values {
		var st model.Settlement
		if err := json.Unmarshal([]byte(val), &st); err != nil {
			continue // Skip invalid data
		}
		settlements = append(settlements, &st)
	}
	return settlements
}

// Atomic units

func (s *Storage) ApplyCompletion(ctx context.Context, completion *model.Completion) error {
	game := completion.Game

	return s.client.Watch(ctx, func(tx *redis.Tx) error {
		storedData, err := tx.Get(ctx, gameKey(game.ID)).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return model.ErrGameNotFound
			}
			return err
		}

		var stored model.Game
		if err := json.Unmarshal(storedData, &stored); err != nil {
			return err
		}
		if stored.Status == model.GameStatusCompleted {
			return model.ErrGameCompleted
		}

		oldSettlementKeys, err := tx.SMembers(ctx, gameSettlementsIndexKey(game.ID)).Result()
		if err != nil {
			return err
		}

		activeID, err := tx.Get(ctx, activeGameKey()).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}

		gameData, err := json.Marshal(game)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for _, key := range oldSettlementKeys {
				pipe.Del(ctx, key)
				pipe.SRem(ctx, settlementsIndexKey(), key)
			}
			pipe.Del(ctx, gameSettlementsIndexKey(game.ID))

			pipe.Set(ctx, gameKey(game.ID), gameData, 0)

			for _, gp := range completion.GamePlayers {
				data, err := json.Marshal(gp)
				if err != nil {
					return err
				}
				pipe.Set(ctx, gamePlayerKey(gp.ID), data, 0)
				pipe.SAdd(ctx, gamePlayersIndexKey(gp.GameID), gamePlayerKey(gp.ID))
			}

			for _, p := range completion.Players {
				data, err := json.Marshal(p)
				if err != nil {
					return err
				}
				savePlayerPipe(ctx, pipe, playerKey(p.ID), data, p.Name, p.ID)
			}

			for _, st := range completion.Settlements {
				data, err := json.Marshal(st)
				if err != nil {
					return err
				}
				pipe.Set(ctx, settlementKey(st.ID), data, 0)
				pipe.SAdd(ctx, settlementsIndexKey(), settlementKey(st.ID))
				pipe.SAdd(ctx, gameSettlementsIndexKey(st.GameID), settlementKey(st.ID))
			}

			// Completion closes the game, freeing the active slot
			if activeID == string(game.ID) {
				pipe.Del(ctx, activeGameKey())
			}
			return nil
		})
		return err
	}, gameKey(game.ID), activeGameKey())
}

func (s *Storage) DeleteGameCascade(ctx context.Context, gameID model.GameID, reverse storage.LedgerReversal) error {
	return s.client.Watch(ctx, func(tx *redis.Tx) error {
		if err := tx.Get(ctx, gameKey(gameID)).Err(); err != nil {
			if errors.Is(err, redis.Nil) {
				return model.ErrGameNotFound
			}
			return err
		}

		gamePlayerKeys, err := tx.SMembers(ctx, gamePlayersIndexKey(gameID)).Result()
		if err != nil {
			return err
		}
		settlementKeys, err := tx.SMembers(ctx, gameSettlementsIndexKey(gameID)).Result()
		if err != nil {
			return err
		}

		// The reversal reads the player records under this WATCH; a
		// concurrent write to any of them aborts the EXEC instead of
		// being overwritten
		var reversed []*model.Player
		if reverse != nil {
			gps, err := readGamePlayers(ctx, tx, gamePlayerKeys)
			if err != nil {
				return err
			}

			playerKeys := make([]string, len(gps))
			for i, gp := range gps {
				playerKeys[i] = playerKey(gp.PlayerID)
			}
			if len(playerKeys) > 0 {
				if err := tx.Watch(ctx, playerKeys...).Err(); err != nil {
					return err
				}
			}

			players, err := readPlayers(ctx, tx, playerKeys)
			if err != nil {
				return err
			}

			reversed, err = reverse(gps, players)
			if err != nil {
				return err
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for _, p := range reversed {
				data, err := json.Marshal(p)
				if err != nil {
					return err
				}
				savePlayerPipe(ctx, pipe, playerKey(p.ID), data, p.Name, p.ID)
			}

			for _, key := range gamePlayerKeys {
				pipe.Del(ctx, key)
			}
			pipe.Del(ctx, gamePlayersIndexKey(gameID))
			pipe.Del(ctx, gameSeatsIndexKey(gameID))

			for _, key := range settlementKeys {
				pipe.Del(ctx, key)
				pipe.SRem(ctx, settlementsIndexKey(), key)
			}
			pipe.Del(ctx, gameSettlementsIndexKey(gameID))

			pipe.SRem(ctx, gamesIndexKey(), gameKey(gameID))
			pipe.Del(ctx, gameKey(gameID))
			return nil
		})
		return err
	}, gameKey(gameID))
}

// Helpers

// readGamePlayers loads seat records through the transaction so they sit
// under its WATCH set
func readGamePlayers(ctx context.Context, tx *redis.Tx, keys []string) ([]*model.GamePlayer, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	values, err := tx.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	gps := make([]*model.GamePlayer, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var gp model.GamePlayer
		if err := json.Unmarshal([]byte(val.(string)), &gp); err != nil {
			continue // Skip invalid data
		}
		gps = append(gps, &gp)
	}
	sort.Slice(gps, func(i, j int) bool {
		return gps[i].ID < gps[j].ID
	})
	return gps, nil
}

// readPlayers loads player records through the transaction
func readPlayers(ctx context.Context, tx *redis.Tx, keys []string) ([]*model.Player, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	values, err := tx.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var p model.Player
		if err := json.Unmarshal([]byte(val.(string)), &p); err != nil {
			continue // Skip invalid data
		}
		players = append(players, &p)
	}
	return players, nil
}

// fetchIndexed returns the JSON values behind every key in a SET index,
// skipping entries whose value has gone missing.
func (s *Storage) fetchIndexed(ctx context.Context, indexKey string) ([]string, error) {
	keys, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		out = append(out, val.(string))
	}
	return out, nil
}

// releaseActiveSlot clears the active-game key if this game holds it
func (s *Storage) releaseActiveSlot(ctx context.Context, id model.GameID) error {
	return s.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, activeGameKey()).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return nil
			}
			return err
		}
		if current != string(id) {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, activeGameKey())
			return nil
		})
		return err
	}, activeGameKey())
}
