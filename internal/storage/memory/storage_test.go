package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mattjh/pokernight-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) player(id, name string, balance int) *model.Player {
	return &model.Player{
		ID:           model.PlayerID(id),
		Name:         name,
		TotalBalance: balance,
	}
}

func (s *StorageSuite) game(id string, status model.GameStatus, createdAt time.Time) *model.Game {
	return &model.Game{
		ID:           model.GameID(id),
		Status:       status,
		DefaultBuyIn: 500,
		CreatedAt:    createdAt,
	}
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	p := s.player("p1", "Alice", 0)
	s.Require().NoError(s.storage.SavePlayer(s.ctx, p))

	fetched, err := s.storage.GetPlayer(s.ctx, "p1")
	s.Require().NoError(err)
	s.Equal("Alice", fetched.Name)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "missing")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestGetPlayerByName() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, s.player("p1", "Alice", 0)))

	fetched, err := s.storage.GetPlayerByName(s.ctx, "Alice")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("p1"), fetched.ID)

	_, err = s.storage.GetPlayerByName(s.ctx, "Bob")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestRenameUpdatesNameIndex() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, s.player("p1", "Alice", 0)))
	s.Require().NoError(s.storage.SavePlayer(s.ctx, s.player("p1", "Alicia", 0)))

	_, err := s.storage.GetPlayerByName(s.ctx, "Alice")
	s.ErrorIs(err, model.ErrPlayerNotFound)

	fetched, err := s.storage.GetPlayerByName(s.ctx, "Alicia")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("p1"), fetched.ID)
}

func (s *StorageSuite) TestListPlayersLeaderboardOrder() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, s.player("p1", "Alice", 100)))
	s.Require().NoError(s.storage.SavePlayer(s.ctx, s.player("p2", "Bob", 500)))
	s.Require().NoError(s.storage.SavePlayer(s.ctx, s.player("p3", "Carol", 100)))

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 3)
	s.Equal("Bob", players[0].Name)
	s.Equal("Alice", players[1].Name)
	s.Equal("Carol", players[2].Name)
}

// Game tests

func (s *StorageSuite) TestCreateGameEnforcesSingleOpenGame() {
	now := time.Now()
	s.Require().NoError(s.storage.CreateGame(s.ctx, s.game("g1", model.GameStatusActive, now)))

	err := s.storage.CreateGame(s.ctx, s.game("g2", model.GameStatusActive, now))
	s.ErrorIs(err, model.ErrActiveGameExists)

	err = s.storage.CreateGame(s.ctx, s.game("g3", model.GameStatusActive, now))
	s.ErrorIs(err, model.ErrActiveGameExists)
}

func (s *StorageSuite) TestCreateGameSettlingOccupiesSlot() {
	now := time.Now()
	s.Require().NoError(s.storage.CreateGame(s.ctx, s.game("g1", model.GameStatusSettling, now)))

	err := s.storage.CreateGame(s.ctx, s.game("g2", model.GameStatusActive, now))
	s.ErrorIs(err, model.ErrActiveGameExists)
}

func (s *StorageSuite) TestCreateGameAllowedAfterClose() {
	now := time.Now()
	g := s.game("g1", model.GameStatusActive, now)
	s.Require().NoError(s.storage.CreateGame(s.ctx, g))

	closed := g.Clone()
	closed.Status = model.GameStatusCancelled
	s.Require().NoError(s.storage.SaveGame(s.ctx, closed))

	s.NoError(s.storage.CreateGame(s.ctx, s.game("g2", model.GameStatusActive, now)))
}

func (s *StorageSuite) TestGetActiveGame() {
	now := time.Now()
	s.Require().NoError(s.storage.CreateGame(s.ctx, s.game("g1", model.GameStatusActive, now)))

	active, err := s.storage.GetActiveGame(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.GameID("g1"), active.ID)
}

func (s *StorageSuite) TestGetActiveGameNone() {
	_, err := s.storage.GetActiveGame(s.ctx)
	s.ErrorIs(err, model.ErrNoActiveGame)
}

func (s *StorageSuite) TestListGamesNewestFirst() {
	base := time.Date(2025, 6, 1, 19, 0, 0, 0, time.UTC)
	s.Require().NoError(s.storage.SaveGame(s.ctx, s.game("g1", model.GameStatusCancelled, base)))
	s.Require().NoError(s.storage.SaveGame(s.ctx, s.game("g2", model.GameStatusCancelled, base.Add(time.Hour))))
	s.Require().NoError(s.storage.SaveGame(s.ctx, s.game("g3", model.GameStatusCancelled, base.Add(2*time.Hour))))

	games, err := s.storage.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(games, 3)
	s.Equal(model.GameID("g3"), games[0].ID)
	s.Equal(model.GameID("g2"), games[1].ID)
	s.Equal(model.GameID("g1"), games[2].ID)
}

// Game player tests

func (s *StorageSuite) TestAddGamePlayerRejectsDuplicateSeat() {
	gp := &model.GamePlayer{ID: "gp1", GameID: "g1", PlayerID: "p1", BuyInCount: 1}
	s.Require().NoError(s.storage.AddGamePlayer(s.ctx, gp))

	dup := &model.GamePlayer{ID: "gp2", GameID: "g1", PlayerID: "p1", BuyInCount: 1}
	err := s.storage.AddGamePlayer(s.ctx, dup)
	s.ErrorIs(err, model.ErrPlayerAlreadyInGame)
}

func (s *StorageSuite) TestSamePlayerAcrossGames() {
	s.Require().NoError(s.storage.AddGamePlayer(s.ctx, &model.GamePlayer{ID: "gp1", GameID: "g1", PlayerID: "p1", BuyInCount: 1}))
	s.NoError(s.storage.AddGamePlayer(s.ctx, &model.GamePlayer{ID: "gp2", GameID: "g2", PlayerID: "p1", BuyInCount: 1}))
}

func (s *StorageSuite) TestGetGamePlayersForGame() {
	s.Require().NoError(s.storage.AddGamePlayer(s.ctx, &model.GamePlayer{ID: "gp2", GameID: "g1", PlayerID: "p2", BuyInCount: 1}))
	s.Require().NoError(s.storage.AddGamePlayer(s.ctx, &model.GamePlayer{ID: "gp1", GameID: "g1", PlayerID: "p1", BuyInCount: 1}))
	s.Require().NoError(s.storage.AddGamePlayer(s.ctx, &model.GamePlayer{ID: "gp3", GameID: "g2", PlayerID: "p3", BuyInCount: 1}))

	gps, err := s.storage.GetGamePlayersForGame(s.ctx, "g1")
	s.Require().NoError(err)
	s.Require().Len(gps, 2)
	s.Equal(model.GamePlayerID("gp1"), gps[0].ID)
	s.Equal(model.GamePlayerID("gp2"), gps[1].ID)
}

func (s *StorageSuite) TestDeleteGamePlayer() {
	s.Require().NoError(s.storage.AddGamePlayer(s.ctx, &model.GamePlayer{ID: "gp1", GameID: "g1", PlayerID: "p1", BuyInCount: 1}))
	s.Require().NoError(s.storage.DeleteGamePlayer(s.ctx, "gp1"))

	_, err := s.storage.GetGamePlayer(s.ctx, "gp1")
	s.ErrorIs(err, model.ErrGamePlayerNotFound)
}

// Completion tests

func (s *StorageSuite) completionFor(g *model.Game) *model.Completion {
	now := time.Now()
	completed := g.Clone()
	completed.Status = model.GameStatusCompleted
	completed.TotalPot = 1000
	completed.CompletedAt = &now

	net := 100
	return &model.Completion{
		Game: completed,
		GamePlayers: []*model.GamePlayer{
			{ID: "gp1", GameID: g.ID, PlayerID: "p1", BuyInCount: 1, NetResult: &net},
		},
		Players: []*model.Player{
			s.player("p1", "Alice", 100),
		},
		Settlements: []*model.Settlement{
			{ID: "s1", GameID: g.ID, FromPlayerID: "p2", ToPlayerID: "p1", Amount: 100, CreatedAt: now},
		},
	}
}

func (s *StorageSuite) TestApplyCompletionWritesAllEntities() {
	g := s.game("g1", model.GameStatusSettling, time.Now())
	s.Require().NoError(s.storage.CreateGame(s.ctx, g))

	s.Require().NoError(s.storage.ApplyCompletion(s.ctx, s.completionFor(g)))

	stored, err := s.storage.GetGame(s.ctx, "g1")
	s.Require().NoError(err)
	s.Equal(model.GameStatusCompleted, stored.Status)

	p, err := s.storage.GetPlayer(s.ctx, "p1")
	s.Require().NoError(err)
	s.Equal(100, p.TotalBalance)

	gp, err := s.storage.GetGamePlayer(s.ctx, "gp1")
	s.Require().NoError(err)
	s.NotNil(gp.NetResult)

	settlements, err := s.storage.GetSettlementsForGame(s.ctx, "g1")
	s.Require().NoError(err)
	s.Len(settlements, 1)
}

func (s *StorageSuite) TestApplyCompletionUnknownGame() {
	g := s.game("missing", model.GameStatusSettling, time.Now())

	err := s.storage.ApplyCompletion(s.ctx, s.completionFor(g))
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestApplyCompletionAlreadyCompleted() {
	g := s.game("g1", model.GameStatusSettling, time.Now())
	s.Require().NoError(s.storage.CreateGame(s.ctx, g))

	s.Require().NoError(s.storage.ApplyCompletion(s.ctx, s.completionFor(g)))

	err := s.storage.ApplyCompletion(s.ctx, s.completionFor(g))
	s.ErrorIs(err, model.ErrGameCompleted)
}

// reverseNets undoes each seat's net result against the player records
// the backend hands to the reversal
func reverseNets(gps []*model.GamePlayer, players []*model.Player) ([]*model.Player, error) {
	byID := make(map[model.PlayerID]*model.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}
	var reversed []*model.Player
	for _, gp := range gps {
		if gp.NetResult == nil {
			continue
		}
		p := byID[gp.PlayerID]
		p.TotalBalance -= *gp.NetResult
		reversed = append(reversed, p)
	}
	return reversed, nil
}

func (s *StorageSuite) TestDeleteGameCascade() {
	g := s.game("g1", model.GameStatusSettling, time.Now())
	s.Require().NoError(s.storage.CreateGame(s.ctx, g))
	s.Require().NoError(s.storage.ApplyCompletion(s.ctx, s.completionFor(g)))

	s.Require().NoError(s.storage.DeleteGameCascade(s.ctx, "g1", reverseNets))

	_, err := s.storage.GetGame(s.ctx, "g1")
	s.ErrorIs(err, model.ErrGameNotFound)

	gps, err := s.storage.GetGamePlayersForGame(s.ctx, "g1")
	s.Require().NoError(err)
	s.Empty(gps)

	settlements, err := s.storage.ListSettlements(s.ctx)
	s.Require().NoError(err)
	s.Empty(settlements)

	p, err := s.storage.GetPlayer(s.ctx, "p1")
	s.Require().NoError(err)
	s.Zero(p.TotalBalance)
}

func (s *StorageSuite) TestDeleteGameCascadeUnknownGame() {
	err := s.storage.DeleteGameCascade(s.ctx, "missing", nil)
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestDeleteGameCascadeReversalSeesLatestBalances() {
	g := s.game("g1", model.GameStatusSettling, time.Now())
	s.Require().NoError(s.storage.CreateGame(s.ctx, g))
	s.Require().NoError(s.storage.ApplyCompletion(s.ctx, s.completionFor(g)))

	// Another game's result lands on the same player before the delete;
	// the reversal must subtract from this balance, not a stale snapshot
	s.Require().NoError(s.storage.SavePlayer(s.ctx, s.player("p1", "Alice", 50)))

	s.Require().NoError(s.storage.DeleteGameCascade(s.ctx, "g1", reverseNets))

	p, err := s.storage.GetPlayer(s.ctx, "p1")
	s.Require().NoError(err)
	s.Equal(-50, p.TotalBalance)
}
