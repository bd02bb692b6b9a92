package validation

import (
	"math"

	"github.com/mattjh/pokernight-go/internal/model"
	"github.com/mattjh/pokernight-go/internal/services/netresult"
)

// balanceEpsilon is the slack allowed on the conservation check in chip
// mode, where converting chips to money can round. Money-mode
// submissions must balance exactly.
const balanceEpsilon = 0.01

// Service checks that a settlement submission is complete, well-formed
// and conserves money before any state is touched.
type Service struct {
	calc netresult.ServiceInterface
}

// New creates a new balance validator
func New(calc netresult.ServiceInterface) *Service {
	return &Service{
		calc: calc,
	}
}

// ValidateSubmission validates a set of ending-value entries against
// the game's roster. names maps player IDs to display names for error
// messages. Pure; no side effects on any input.
//
// Checks run in order: shape, duplicates, entry count, missing players,
// non-numeric values, conservation. The first failure is returned.
func (s *Service) ValidateSubmission(
	game *model.Game,
	gamePlayers []*model.GamePlayer,
	names map[model.PlayerID]string,
	entries []model.EndingValue,
) error {
	if len(entries) == 0 {
		return ErrMalformedSubmission
	}

	seen := make(map[model.PlayerID]bool, len(entries))
	for _, entry := range entries {
		if seen[entry.PlayerID] {
			return &DuplicateEntryError{PlayerID: entry.PlayerID}
		}
		seen[entry.PlayerID] = true
	}

	if len(entries) != len(gamePlayers) {
		return &CountMismatchError{Expected: len(gamePlayers), Received: len(entries)}
	}

	for _, gp := range gamePlayers {
		if !seen[gp.PlayerID] {
			return &MissingPlayerError{PlayerID: gp.PlayerID, PlayerName: s.playerName(names, gp.PlayerID)}
		}
	}

	for _, entry := range entries {
		if math.IsNaN(entry.Value) || math.IsInf(entry.Value, 0) {
			return &NonNumericError{PlayerID: entry.PlayerID, PlayerName: s.playerName(names, entry.PlayerID)}
		}
	}

	totalBuyIns := 0
	for _, gp := range gamePlayers {
		totalBuyIns += gp.TotalBuyIn(game.DefaultBuyIn)
	}
	totalEndings := 0.0
	for _, entry := range entries {
		totalEndings += s.calc.MoneyValue(game, entry.Value)
	}

	diff := float64(totalBuyIns) - totalEndings
	tolerance := 0.0
	if game.ChipMode() {
		tolerance = balanceEpsilon
	}
	if math.Abs(diff) > tolerance {
		return &ImbalanceError{
			TotalBuyIns:  totalBuyIns,
			TotalEndings: totalEndings,
			Difference:   diff,
		}
	}

	return nil
}

func (s *Service) playerName(names map[model.PlayerID]string, id model.PlayerID) string {
	if name, ok := names[id]; ok {
		return name
	}
	return string(id)
}

// Interface for dependency injection
type ServiceInterface interface {
	ValidateSubmission(game *model.Game, gamePlayers []*model.GamePlayer, names map[model.PlayerID]string, entries []model.EndingValue) error
}

var _ ServiceInterface = (*Service)(nil)
