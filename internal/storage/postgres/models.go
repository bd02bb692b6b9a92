package postgres

import (
	"time"

	"github.com/mattjh/pokernight-go/internal/model"
)

// Database records mirror the domain model one to one. They exist so
// gorm column and index tags stay out of the model package.

type playerRecord struct {
	ID            string `gorm:"primaryKey"`
	Name          string `gorm:"uniqueIndex;not null"`
	TotalBalance  int
	GamesPlayed   int
	CurrentStreak int
	MaxStreak     int
	BestWin       int
	WorstLoss     int
	CreatedAt     time.Time
}

func (playerRecord) TableName() string { return "players" }

type gameRecord struct {
	ID            string `gorm:"primaryKey"`
	Status        string `gorm:"index;not null"`
	DefaultBuyIn  int
	ChipsPerBuyIn int
	TotalPot      int
	CreatedAt     time.Time
	CompletedAt   *time.Time
}

func (gameRecord) TableName() string { return "games" }

type gamePlayerRecord struct {
	ID          string `gorm:"primaryKey"`
	GameID      string `gorm:"index;uniqueIndex:idx_game_seat;not null"`
	PlayerID    string `gorm:"uniqueIndex:idx_game_seat;not null"`
	BuyInCount  int
	EndingValue *float64
	FinalAmount *int
	NetResult   *int
}

func (gamePlayerRecord) TableName() string { return "game_players" }

type settlementRecord struct {
	ID           string `gorm:"primaryKey"`
	GameID       string `gorm:"index;not null"`
	FromPlayerID string `gorm:"not null"`
	ToPlayerID   string `gorm:"not null"`
	Amount       int
	CreatedAt    time.Time
}

func (settlementRecord) TableName() string { return "settlements" }

// Conversions

func toPlayerRecord(p *model.Player) *playerRecord {
	return &playerRecord{
		ID:            string(p.ID),
		Name:          p.Name,
		TotalBalance:  p.TotalBalance,
		GamesPlayed:   p.GamesPlayed,
		CurrentStreak: p.CurrentStreak,
		MaxStreak:     p.MaxStreak,
		BestWin:       p.BestWin,
		WorstLoss:     p.WorstLoss,
		CreatedAt:     p.CreatedAt,
	}
}

func (r *playerRecord) toModel() *model.Player {
	return &model.Player{
		ID:            model.PlayerID(r.ID),
		Name:          r.Name,
		TotalBalance:  r.TotalBalance,
		GamesPlayed:   r.GamesPlayed,
		CurrentStreak: r.CurrentStreak,
		MaxStreak:     r.MaxStreak,
		BestWin:       r.BestWin,
		WorstLoss:     r.WorstLoss,
		CreatedAt:     r.CreatedAt,
	}
}

func toGameRecord(g *model.Game) *gameRecord {
	return &gameRecord{
		ID:            string(g.ID),
		Status:        string(g.Status),
		DefaultBuyIn:  g.DefaultBuyIn,
		ChipsPerBuyIn: g.ChipsPerBuyIn,
		TotalPot:      g.TotalPot,
		CreatedAt:     g.CreatedAt,
		CompletedAt:   g.CompletedAt,
	}
}

func (r *gameRecord) toModel() *model.Game {
	return &model.Game{
		ID:            model.GameID(r.ID),
		Status:        model.GameStatus(r.Status),
		DefaultBuyIn:  r.DefaultBuyIn,
		ChipsPerBuyIn: r.ChipsPerBuyIn,
		TotalPot:      r.TotalPot,
		CreatedAt:     r.CreatedAt,
		CompletedAt:   r.CompletedAt,
	}
}

func toGamePlayerRecord(gp *model.GamePlayer) *gamePlayerRecord {
	return &gamePlayerRecord{
		ID:          string(gp.ID),
		GameID:      string(gp.GameID),
		PlayerID:    string(gp.PlayerID),
		BuyInCount:  gp.BuyInCount,
		EndingValue: gp.EndingValue,
		FinalAmount: gp.FinalAmount,
		NetResult:   gp.NetResult,
	}
}

func (r *gamePlayerRecord) toModel() *model.GamePlayer {
	return &model.GamePlayer{
		ID:          model.GamePlayerID(r.ID),
		GameID:      model.GameID(r.GameID),
		PlayerID:    model.PlayerID(r.PlayerID),
		BuyInCount:  r.BuyInCount,
		EndingValue: r.EndingValue,
		FinalAmount: r.FinalAmount,
		NetResult:   r.NetResult,
	}
}

func toSettlementRecord(st *model.Settlement) *settlementRecord {
	return &settlementRecord{
		ID:           string(st.ID),
		GameID:       string(st.GameID),
		FromPlayerID: string(st.FromPlayerID),
		ToPlayerID:   string(st.ToPlayerID),
		Amount:       st.Amount,
		CreatedAt:    st.CreatedAt,
	}
}

func (r *settlementRecord) toModel() *model.Settlement {
	return &model.Settlement{
		ID:           model.SettlementID(r.ID),
		GameID:       model.GameID(r.GameID),
		FromPlayerID: model.PlayerID(r.FromPlayerID),
		ToPlayerID:   model.PlayerID(r.ToPlayerID),
		Amount:       r.Amount,
		CreatedAt:    r.CreatedAt,
	}
}
