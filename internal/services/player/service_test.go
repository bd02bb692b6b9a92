package player

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mattjh/pokernight-go/internal/dependencies/mocks"
	"github.com/mattjh/pokernight-go/internal/model"
	"github.com/mattjh/pokernight-go/internal/storage/memory"
	"github.com/mattjh/pokernight-go/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 19, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestCreatePlayer() {
	player, err := s.service.CreatePlayer(s.ctx, "Alice")
	s.Require().NoError(err)

	s.NotEmpty(player.ID)
	s.Equal("Alice", player.Name)
	s.Equal(s.clock.CurrentTime, player.CreatedAt)
	s.Zero(player.TotalBalance)
	s.Zero(player.GamesPlayed)
}

func (s *ServiceSuite) TestCreatePlayerTrimsName() {
	player, err := s.service.CreatePlayer(s.ctx, "  Alice  ")
	s.Require().NoError(err)
	s.Equal("Alice", player.Name)
}

func (s *ServiceSuite) TestCreatePlayerIsPersisted() {
	created, err := s.service.CreatePlayer(s.ctx, "Alice")
	s.Require().NoError(err)

	fetched, err := s.service.GetPlayer(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(created.Name, fetched.Name)
}

func (s *ServiceSuite) TestCreatePlayerRejectsDuplicateName() {
	_, err := s.service.CreatePlayer(s.ctx, "Alice")
	s.Require().NoError(err)

	_, err = s.service.CreatePlayer(s.ctx, "Alice")
	s.ErrorIs(err, model.ErrPlayerNameTaken)
}

func (s *ServiceSuite) TestGetOrCreatePlayerReturnsExisting() {
	created, err := s.service.CreatePlayer(s.ctx, "Alice")
	s.Require().NoError(err)

	fetched, err := s.service.GetOrCreatePlayer(s.ctx, "Alice")
	s.Require().NoError(err)
	s.Equal(created.ID, fetched.ID)
}

func (s *ServiceSuite) TestGetOrCreatePlayerCreatesOnFirstReference() {
	player, err := s.service.GetOrCreatePlayer(s.ctx, "Bob")
	s.Require().NoError(err)
	s.Equal("Bob", player.Name)

	players, err := s.service.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Len(players, 1)
}

func (s *ServiceSuite) TestGetPlayerNotFound() {
	_, err := s.service.GetPlayer(s.ctx, "missing")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *ServiceSuite) TestListPlayersLeaderboardOrder() {
	alice, err := s.service.CreatePlayer(s.ctx, "Alice")
	s.Require().NoError(err)
	bob, err := s.service.CreatePlayer(s.ctx, "Bob")
	s.Require().NoError(err)

	bob = bob.Clone()
	bob.TotalBalance = 700
	s.Require().NoError(s.storage.SavePlayer(s.ctx, bob))
	alice = alice.Clone()
	alice.TotalBalance = -700
	s.Require().NoError(s.storage.SavePlayer(s.ctx, alice))

	players, err := s.service.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 2)
	s.Equal("Bob", players[0].Name)
	s.Equal("Alice", players[1].Name)
}
