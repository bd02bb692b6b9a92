package settlement

import (
	"sort"

	"github.com/mattjh/pokernight-go/internal/model"
)

// Service produces the minimal set of directed payments that settles a
// game, using a greedy largest-remaining match: repeatedly pay the
// biggest outstanding debt to the biggest outstanding credit. This is
// the classic minimize-cash-flow heuristic; it is deterministic and
// bounded, not a provably minimum-edge solver, and its output must not
// be re-optimized afterwards.
type Service struct{}

// New creates a new settlement matcher
func New() *Service {
	return &Service{}
}

// Transfer is a single directed payment between two players.
type Transfer struct {
	From   model.PlayerID
	To     model.PlayerID
	Amount int
}

type party struct {
	playerID  model.PlayerID
	remaining int
}

// Match computes the transfer list for a set of net results summing to
// zero. Players with a zero net result take part in no transfer.
//
// Sorting is stable on input order, so equal magnitudes keep their
// submitted order and the same input always yields the same output.
// The transfer count never exceeds losers + winners - 1.
func (s *Service) Match(results []model.NetResult) []Transfer {
	var losers, winners []party
	for _, r := range results {
		switch {
		case r.Amount < 0:
			losers = append(losers, party{playerID: r.PlayerID, remaining: -r.Amount})
		case r.Amount > 0:
			winners = append(winners, party{playerID: r.PlayerID, remaining: r.Amount})
		}
	}

	sort.SliceStable(losers, func(i, j int) bool {
		return losers[i].remaining > losers[j].remaining
	})
	sort.SliceStable(winners, func(i, j int) bool {
		return winners[i].remaining > winners[j].remaining
	})

	var transfers []Transfer
	loserIdx, winnerIdx := 0, 0

	for loserIdx < len(losers) && winnerIdx < len(winners) {
		loser := &losers[loserIdx]
		winner := &winners[winnerIdx]

		amount := min(loser.remaining, winner.remaining)
		if amount > 0 {
			transfers = append(transfers, Transfer{
				From:   loser.playerID,
				To:     winner.playerID,
				Amount: amount,
			})
			loser.remaining -= amount
			winner.remaining -= amount
		}

		if loser.remaining == 0 {
			loserIdx++
		}
		if winner.remaining == 0 {
			winnerIdx++
		}
	}

	return transfers
}

// Interface for dependency injection
type ServiceInterface interface {
	Match(results []model.NetResult) []Transfer
}

var _ ServiceInterface = (*Service)(nil)
