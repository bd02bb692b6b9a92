package ledger

import "github.com/mattjh/pokernight-go/internal/model"

// Service applies finalized game results to players' lifetime records.
// It mutates player values in memory only; callers persist the result
// as part of an atomic completion (or deletion) write.
type Service struct{}

// New creates a new ledger updater
func New() *Service {
	return &Service{}
}

// Apply folds one completed game's net result into a player's lifetime
// record. A zero net result counts as a played game but breaks the
// win streak.
func (s *Service) Apply(p *model.Player, net int) {
	p.TotalBalance += net
	p.GamesPlayed++

	if net > 0 {
		p.CurrentStreak++
		if p.CurrentStreak > p.MaxStreak {
			p.MaxStreak = p.CurrentStreak
		}
		if net > p.BestWin {
			p.BestWin = net
		}
	} else {
		p.CurrentStreak = 0
		if net < p.WorstLoss {
			p.WorstLoss = net
		}
	}
}

// Reverse undoes the balance and games-played effect of a completed
// game that is being deleted. Streak and record stats are reversed
// best-effort only: recomputing them exactly would require replaying
// the player's full game history, so the current streak is decremented
// when the deleted game had extended it, and MaxStreak/BestWin/
// WorstLoss are left as recorded.
func (s *Service) Reverse(p *model.Player, net int) {
	p.TotalBalance -= net
	if p.GamesPlayed > 0 {
		p.GamesPlayed--
	}

	if net > 0 && p.CurrentStreak > 0 {
		p.CurrentStreak--
	}
}

// Interface for dependency injection
type ServiceInterface interface {
	Apply(p *model.Player, net int)
	Reverse(p *model.Player, net int)
}

var _ ServiceInterface = (*Service)(nil)
