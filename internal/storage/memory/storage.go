package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mattjh/pokernight-go/internal/model"
	"github.com/mattjh/pokernight-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players     map[model.PlayerID]*model.Player
	nameIndex   map[string]model.PlayerID
	games       map[model.GameID]*model.Game
	gamePlayers map[model.GamePlayerID]*model.GamePlayer
	settlements map[model.SettlementID]*model.Settlement
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:     make(map[model.PlayerID]*model.Player),
		nameIndex:   make(map[string]model.PlayerID),
		games:       make(map[model.GameID]*model.Game),
		gamePlayers: make(map[model.GamePlayerID]*model.GamePlayer),
		settlements: make(map[model.SettlementID]*model.Settlement),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.savePlayerLocked(player)
	return nil
}

func (s *Storage) savePlayerLocked(player *model.Player) {
	if existing, ok := s.players[player.ID]; ok && existing.Name != player.Name {
		delete(s.nameIndex, existing.Name)
	}
	s.players[player.ID] = player
	s.nameIndex[player.Name] = player.ID
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

func (s *Storage) GetPlayerByName(ctx context.Context, name string) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.nameIndex[name]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	players := make([]*model.Player, 0, len(s.players))
	for _, p := range s.players {
		players = append(players, p)
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
	s.mu.Lock()
	defer s.mu.Unlock()
	// An open game (active or settling) occupies the single active slot
	for _, g := range s.games {
		if g.Open() {
			return model.ErrActiveGameExists
		}
	}
	s.games[game.ID] = game
	return nil
}

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = game
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return game, nil
}

func (s *Storage) GetActiveGame(ctx context.Context) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, g := range s.games {
		if g.Open() {
			return g, nil
		}
	}
	return nil, model.ErrNoActiveGame
}

func (s *Storage) ListGames(ctx context.Context) ([]*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	games := make([]*model.Game, 0, len(s.games))
	for _, g := range s.games {
		games = append(games, g)
	}
	sort.Slice(games, func(i, j int) bool {
		return games[i].CreatedAt.After(games[j].CreatedAt)
	})
	return games, nil
}

// Game player operations

func (s *Storage) AddGamePlayer(ctx context.Context, gp *model.GamePlayer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.gamePlayers {
		if existing.GameID == gp.GameID && existing.PlayerID == gp.PlayerID {
			return model.ErrPlayerAlreadyInGame
		}
	}
	s.gamePlayers[gp.ID] = gp
	return nil
}

func (s *Storage) SaveGamePlayer(ctx context.Context, gp *model.GamePlayer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gamePlayers[gp.ID] = gp
	return nil
}

func (s *Storage) GetGamePlayer(ctx context.Context, id model.GamePlayerID) (*model.GamePlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	gp, ok := s.gamePlayers[id]
	if !ok {
		return nil, model.ErrGamePlayerNotFound
	}
	return gp, nil
}

func (s *Storage) GetGamePlayersForGame(ctx context.Context, gameID model.GameID) ([]*model.GamePlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gamePlayersForGameLocked(gameID), nil
}

func (s *Storage) gamePlayersForGameLocked(gameID model.GameID) []*model.GamePlayer {
	var gps []*model.GamePlayer
	for _, gp := range s.gamePlayers {
		if gp.GameID == gameID {
			gps = append(gps, gp)
		}
	}
	// Stable order for callers iterating the roster
	sort.Slice(gps, func(i, j int) bool {
		return gps[i].ID < gps[j].ID
	})
	return gps
}

func (s *Storage) DeleteGamePlayer(ctx context.Context, id model.GamePlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.gamePlayers, id)
	return nil
}

// Settlement operations

func (s *Storage) ListSettlements(ctx context.Context) ([]*model.Settlement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	settlements := make([]*model.Settlement, 0, len(s.settlements))
	for _, st := range s.settlements {
		settlements = append(settlements, st)
	}
	sort.Slice(settlements, func(i, j int) bool {
		if !settlements[i].CreatedAt.Equal(settlements[j].CreatedAt) {
			return settlements[i].CreatedAt.After(settlements[j].CreatedAt)
		}
		return settlements[i].ID < settlements[j].ID
	})
	return settlements, nil
}

func (s *Storage) GetSettlementsForGame(ctx context.Context, gameID model.GameID) ([]*model.Settlement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var settlements []*model.Settlement
	for _, st := range s.settlements {
		if st.GameID == gameID {
			settlements = append(settlements, st)
		}
	}
	sort.Slice(settlements, func(i, j int) bool {
		return settlements[i].ID < settlements[j].ID
	})
	return settlements, nil
}

// Atomic units

func (s *Storage) ApplyCompletion(ctx context.Context, completion *model.Completion) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.games[completion.Game.ID]
	if !ok {
		return model.ErrGameNotFound
	}
	if stored.Status == model.GameStatusCompleted {
		return model.ErrGameCompleted
	}

	s.deleteSettlementsForGameLocked(completion.Game.ID)

	s.games[completion.Game.ID] = completion.Game
	for _, gp := range completion.GamePlayers {
		s.gamePlayers[gp.ID] = gp
	}
	for _, p := range completion.Players {
		s.savePlayerLocked(p)
	}
	for _, st := range completion.Settlements {
		s.settlements[st.ID] = st
	}
	return nil
}

func (s *Storage) DeleteGameCascade(ctx context.Context, gameID model.GameID, reverse storage.LedgerReversal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.games[gameID]; !ok {
		return model.ErrGameNotFound
	}

	gps := s.gamePlayersForGameLocked(gameID)

	if reverse != nil {
		// The reversal runs against the player records as they are under
		// this lock, not against a caller-side snapshot
		players := make([]*model.Player, 0, len(gps))
		for _, gp := range gps {
			if p, ok := s.players[gp.PlayerID]; ok {
				players = append(players, p.Clone())
			}
		}
		reversed, err := reverse(gps, players)
		if err != nil {
			return err
		}
		for _, p := range reversed {
			s.savePlayerLocked(p)
		}
	}

	for _, gp := range gps {
		delete(s.gamePlayers, gp.ID)
	}
	s.deleteSettlementsForGameLocked(gameID)
	delete(s.games, gameID)
	return nil
}

func (s *Storage) deleteSettlementsForGameLocked(gameID model.GameID) {
	for id, st := range s.settlements {
		if st.GameID == gameID {
			delete(s.settlements, id)
		}
	}
}
