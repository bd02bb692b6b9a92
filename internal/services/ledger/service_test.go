package ledger

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mattjh/pokernight-go/internal/model"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.service = New()
}

func (s *ServiceSuite) TestApplyWin() {
	p := &model.Player{ID: "alice", Name: "Alice"}

	s.service.Apply(p, 700)

	s.Equal(700, p.TotalBalance)
	s.Equal(1, p.GamesPlayed)
	s.Equal(1, p.CurrentStreak)
	s.Equal(1, p.MaxStreak)
	s.Equal(700, p.BestWin)
	s.Equal(0, p.WorstLoss)
}

func (s *ServiceSuite) TestApplyLoss() {
	p := &model.Player{ID: "alice", Name: "Alice", CurrentStreak: 3, MaxStreak: 3}

	s.service.Apply(p, -500)

	s.Equal(-500, p.TotalBalance)
	s.Equal(1, p.GamesPlayed)
	s.Equal(0, p.CurrentStreak)
	s.Equal(3, p.MaxStreak)
	s.Equal(-500, p.WorstLoss)
}

func (s *ServiceSuite) TestApplyZeroNetBreaksStreak() {
	p := &model.Player{ID: "alice", Name: "Alice", CurrentStreak: 2, MaxStreak: 2}

	s.service.Apply(p, 0)

	s.Equal(0, p.TotalBalance)
	s.Equal(1, p.GamesPlayed)
	s.Equal(0, p.CurrentStreak)
	s.Equal(0, p.WorstLoss)
}

func (s *ServiceSuite) TestApplyStreakAccumulates() {
	p := &model.Player{ID: "alice", Name: "Alice"}

	s.service.Apply(p, 100)
	s.service.Apply(p, 200)
	s.service.Apply(p, -50)
	s.service.Apply(p, 300)

	s.Equal(550, p.TotalBalance)
	s.Equal(4, p.GamesPlayed)
	s.Equal(1, p.CurrentStreak)
	s.Equal(2, p.MaxStreak)
	s.Equal(300, p.BestWin)
	s.Equal(-50, p.WorstLoss)
}

func (s *ServiceSuite) TestApplyBestWinOnlyImproves() {
	p := &model.Player{ID: "alice", Name: "Alice", BestWin: 900}

	s.service.Apply(p, 100)

	s.Equal(900, p.BestWin)
}

func (s *ServiceSuite) TestReverseUndoesBalanceAndGamesPlayed() {
	p := &model.Player{ID: "alice", Name: "Alice"}

	s.service.Apply(p, 700)
	s.service.Reverse(p, 700)

	s.Equal(0, p.TotalBalance)
	s.Equal(0, p.GamesPlayed)
	s.Equal(0, p.CurrentStreak)
}

func (s *ServiceSuite) TestReverseLoss() {
	p := &model.Player{ID: "alice", Name: "Alice", TotalBalance: -500, GamesPlayed: 1}

	s.service.Reverse(p, -500)

	s.Equal(0, p.TotalBalance)
	s.Equal(0, p.GamesPlayed)
	s.Equal(0, p.CurrentStreak)
}

func (s *ServiceSuite) TestReverseGamesPlayedFloorsAtZero() {
	p := &model.Player{ID: "alice", Name: "Alice"}

	s.service.Reverse(p, 100)

	s.Equal(0, p.GamesPlayed)
}

func (s *ServiceSuite) TestReverseKeepsRecordStats() {
	p := &model.Player{
		ID:            "alice",
		Name:          "Alice",
		TotalBalance:  700,
		GamesPlayed:   1,
		CurrentStreak: 1,
		MaxStreak:     1,
		BestWin:       700,
	}

	s.service.Reverse(p, 700)

	s.Equal(1, p.MaxStreak)
	s.Equal(700, p.BestWin)
	s.Equal(0, p.CurrentStreak)
}
