package netresult

import (
	"math"

	"github.com/mattjh/pokernight-go/internal/model"
)

// Service converts submitted ending values into signed net results.
//
// In chip mode a player's chips are converted to money by dividing by
// the chips-per-money ratio and rounding half away from zero
// (math.Round). The same rule is used everywhere a chip value becomes
// money, including the balance tolerance check in the validation
// service, so the two never disagree.
type Service struct{}

// New creates a new net-result calculator
func New() *Service {
	return &Service{}
}

// Result carries one game player's computed settlement figures.
type Result struct {
	GamePlayerID model.GamePlayerID
	PlayerID     model.PlayerID
	EndingValue  float64 // raw units as submitted
	FinalAmount  int     // money units after conversion and rounding
	NetResult    int     // FinalAmount - total buy-in
}

// MoneyValue converts a raw ending value to money units. In money mode
// the value is returned unchanged.
func (s *Service) MoneyValue(game *model.Game, raw float64) float64 {
	if !game.ChipMode() {
		return raw
	}
	ratio := float64(game.ChipsPerBuyIn) / float64(game.DefaultBuyIn)
	return raw / ratio
}

// Compute produces one result per submitted entry, in submission order.
// The inputs are assumed validated (one entry per game player, balanced
// totals). Rounding in chip mode can leave the results summing to a
// residual of a unit or two; the residual is absorbed into the largest
// winner so the output is always exactly zero-sum.
func (s *Service) Compute(game *model.Game, gamePlayers []*model.GamePlayer, entries []model.EndingValue) []Result {
	byPlayer := make(map[model.PlayerID]*model.GamePlayer, len(gamePlayers))
	for _, gp := range gamePlayers {
		byPlayer[gp.PlayerID] = gp
	}

	results := make([]Result, 0, len(entries))
	for _, entry := range entries {
		gp, ok := byPlayer[entry.PlayerID]
		if !ok {
			continue
		}
		finalAmount := roundMoney(s.MoneyValue(game, entry.Value))
		results = append(results, Result{
			GamePlayerID: gp.ID,
			PlayerID:     gp.PlayerID,
			EndingValue:  entry.Value,
			FinalAmount:  finalAmount,
			NetResult:    finalAmount - gp.TotalBuyIn(game.DefaultBuyIn),
		})
	}

	absorbResidual(results)
	return results
}

// NetResults projects results down to the matcher's input shape.
func (s *Service) NetResults(results []Result) []model.NetResult {
	nets := make([]model.NetResult, len(results))
	for i, r := range results {
		nets[i] = model.NetResult{PlayerID: r.PlayerID, Amount: r.NetResult}
	}
	return nets
}

// absorbResidual zeroes any leftover unit from rounding by charging it
// to the player with the largest net result.
func absorbResidual(results []Result) {
	residual := 0
	for _, r := range results {
		residual += r.NetResult
	}
	if residual == 0 || len(results) == 0 {
		return
	}

	largest := 0
	for i, r := range results {
		if r.NetResult > results[largest].NetResult {
			largest = i
		}
	}
	results[largest].NetResult -= residual
	results[largest].FinalAmount -= residual
}

// roundMoney rounds to the nearest integer money unit, halves away
// from zero.
func roundMoney(v float64) int {
	return int(math.Round(v))
}

// Interface for dependency injection
type ServiceInterface interface {
	MoneyValue(game *model.Game, raw float64) float64
	Compute(game *model.Game, gamePlayers []*model.GamePlayer, entries []model.EndingValue) []Result
	NetResults(results []Result) []model.NetResult
}

var _ ServiceInterface = (*Service)(nil)
