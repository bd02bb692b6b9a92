package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mattjh/pokernight-go/internal/model"
)

// IntegrationSuite drives a full session through the wired application:
// create players, run a game, settle it, and check the ledger.
type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

func (s *IntegrationSuite) seat(gameID model.GameID, name string, buyIns int) *model.Player {
	p, err := s.app.PlayerService.GetOrCreatePlayer(s.ctx, name)
	s.Require().NoError(err)
	_, err = s.app.GameController.AddPlayer(s.ctx, gameID, p.ID, buyIns)
	s.Require().NoError(err)
	return p
}

func (s *IntegrationSuite) TestFullSessionFlow() {
	game, err := s.app.GameController.CreateGame(s.ctx, 0, 0)
	s.Require().NoError(err)
	s.Equal(500, game.DefaultBuyIn)

	alice := s.seat(game.ID, "Alice", 1)
	bob := s.seat(game.ID, "Bob", 1)
	carol := s.seat(game.ID, "Carol", 1)

	_, err = s.app.GameController.BeginSettling(s.ctx, game.ID)
	s.Require().NoError(err)

	settlements, err := s.app.GameController.Complete(s.ctx, game.ID, []model.EndingValue{
		{PlayerID: alice.ID, Value: 300},
		{PlayerID: bob.ID, Value: 1200},
		{PlayerID: carol.ID, Value: 0},
	})
	s.Require().NoError(err)

	// Carol pays Bob 500, Alice pays Bob 200
	s.Require().Len(settlements, 2)
	s.Equal(carol.ID, settlements[0].FromPlayerID)
	s.Equal(bob.ID, settlements[0].ToPlayerID)
	s.Equal(500, settlements[0].Amount)
	s.Equal(alice.ID, settlements[1].FromPlayerID)
	s.Equal(bob.ID, settlements[1].ToPlayerID)
	s.Equal(200, settlements[1].Amount)

	completed, err := s.app.GameController.GetGame(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(model.GameStatusCompleted, completed.Status)
	s.Equal(1500, completed.TotalPot)

	// Leaderboard: Bob up 700, Alice down 200, Carol down 500
	players, err := s.app.PlayerService.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 3)
	s.Equal("Bob", players[0].Name)
	s.Equal(700, players[0].TotalBalance)
	s.Equal("Alice", players[1].Name)
	s.Equal(-200, players[1].TotalBalance)
	s.Equal("Carol", players[2].Name)
	s.Equal(-500, players[2].TotalBalance)
}

func (s *IntegrationSuite) TestCompletionRetryIsSafe() {
	game, err := s.app.GameController.CreateGame(s.ctx, 0, 0)
	s.Require().NoError(err)
	alice := s.seat(game.ID, "Alice", 1)
	bob := s.seat(game.ID, "Bob", 1)

	entries := []model.EndingValue{
		{PlayerID: alice.ID, Value: 400},
		{PlayerID: bob.ID, Value: 600},
	}

	_, err = s.app.GameController.Complete(s.ctx, game.ID, entries)
	s.Require().NoError(err)

	_, err = s.app.GameController.Complete(s.ctx, game.ID, entries)
	s.ErrorIs(err, model.ErrGameCompleted)

	p, err := s.app.PlayerService.GetPlayer(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Equal(-100, p.TotalBalance)
	s.Equal(1, p.GamesPlayed)
}

func (s *IntegrationSuite) TestDeleteCompletedGameRestoresLedger() {
	game, err := s.app.GameController.CreateGame(s.ctx, 0, 0)
	s.Require().NoError(err)
	alice := s.seat(game.ID, "Alice", 2)
	bob := s.seat(game.ID, "Bob", 1)

	_, err = s.app.GameController.Complete(s.ctx, game.ID, []model.EndingValue{
		{PlayerID: alice.ID, Value: 1500},
		{PlayerID: bob.ID, Value: 0},
	})
	s.Require().NoError(err)

	s.Require().NoError(s.app.GameController.Delete(s.ctx, game.ID))

	for _, id := range []model.PlayerID{alice.ID, bob.ID} {
		p, err := s.app.PlayerService.GetPlayer(s.ctx, id)
		s.Require().NoError(err)
		s.Zero(p.TotalBalance)
		s.Zero(p.GamesPlayed)
	}

	games, err := s.app.GameController.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Empty(games)
}

func (s *IntegrationSuite) TestBackToBackSessions() {
	// First game: Alice wins
	first, err := s.app.GameController.CreateGame(s.ctx, 0, 0)
	s.Require().NoError(err)
	alice := s.seat(first.ID, "Alice", 1)
	bob := s.seat(first.ID, "Bob", 1)

	_, err = s.app.GameController.Complete(s.ctx, first.ID, []model.EndingValue{
		{PlayerID: alice.ID, Value: 800},
		{PlayerID: bob.ID, Value: 200},
	})
	s.Require().NoError(err)

	// Second game reuses the same player records
	second, err := s.app.GameController.CreateGame(s.ctx, 0, 0)
	s.Require().NoError(err)
	s.seat(second.ID, "Alice", 1)
	s.seat(second.ID, "Bob", 1)

	_, err = s.app.GameController.Complete(s.ctx, second.ID, []model.EndingValue{
		{PlayerID: alice.ID, Value: 900},
		{PlayerID: bob.ID, Value: 100},
	})
	s.Require().NoError(err)

	p, err := s.app.PlayerService.GetPlayer(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Equal(700, p.TotalBalance)
	s.Equal(2, p.GamesPlayed)
	s.Equal(2, p.CurrentStreak)
	s.Equal(2, p.MaxStreak)
	s.Equal(400, p.BestWin)

	players, err := s.app.PlayerService.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 2)
	s.Equal("Alice", players[0].Name)
}
