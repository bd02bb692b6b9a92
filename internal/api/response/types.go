package response

import (
	"time"

	"github.com/mattjh/pokernight-go/internal/model"
)

// Player represents a player in API responses
type Player struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	TotalBalance  int       `json:"total_balance"`
	GamesPlayed   int       `json:"games_played"`
	CurrentStreak int       `json:"current_streak"`
	MaxStreak     int       `json:"max_streak"`
	BestWin       int       `json:"best_win"`
	WorstLoss     int       `json:"worst_loss"`
	CreatedAt     time.Time `json:"created_at"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
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

// PlayersFromModel converts a slice of players
func PlayersFromModel(players []*model.Player) []Player {
	out := make([]Player, len(players))
	for i, p := range players {
		out[i] = PlayerFromModel(p)
	}
	return out
}

// Game represents a game session in API responses
type Game struct {
	ID            string     `json:"id"`
	Status        string     `json:"status"`
	DefaultBuyIn  int        `json:"default_buy_in"`
	ChipsPerBuyIn int        `json:"chips_per_buy_in"`
	ChipMode      bool       `json:"chip_mode"`
	TotalPot      int        `json:"total_pot"`
	CreatedAt     time.Time  `json:"created_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

// GameFromModel converts a model.Game to a response Game
func GameFromModel(g *model.Game) Game {
	return Game{
		ID:            string(g.ID),
		Status:        string(g.Status),
		DefaultBuyIn:  g.DefaultBuyIn,
		ChipsPerBuyIn: g.ChipsPerBuyIn,
		ChipMode:      g.ChipMode(),
		TotalPot:      g.TotalPot,
		CreatedAt:     g.CreatedAt,
		CompletedAt:   g.CompletedAt,
	}
}

// GamesFromModel converts a slice of games
func GamesFromModel(games []*model.Game) []Game {
	out := make([]Game, len(games))
	for i, g := range games {
		out[i] = GameFromModel(g)
	}
	return out
}

// GamePlayer represents a seat at a game in API responses
type GamePlayer struct {
	ID          string   `json:"id"`
	GameID      string   `json:"game_id"`
	PlayerID    string   `json:"player_id"`
	BuyInCount  int      `json:"buy_in_count"`
	TotalBuyIn  int      `json:"total_buy_in"`
	EndingValue *float64 `json:"ending_value,omitempty"`
	FinalAmount *int     `json:"final_amount,omitempty"`
	NetResult   *int     `json:"net_result,omitempty"`
}

// GamePlayerFromModel converts a model.GamePlayer. The game supplies the
// buy-in value for the total.
func GamePlayerFromModel(gp *model.GamePlayer, defaultBuyIn int) GamePlayer {
	return GamePlayer{
		ID:          string(gp.ID),
		GameID:      string(gp.GameID),
		PlayerID:    string(gp.PlayerID),
		BuyInCount:  gp.BuyInCount,
		TotalBuyIn:  gp.TotalBuyIn(defaultBuyIn),
		EndingValue: gp.EndingValue,
		FinalAmount: gp.FinalAmount,
		NetResult:   gp.NetResult,
	}
}

// GamePlayersFromModel converts a game's roster
func GamePlayersFromModel(gps []*model.GamePlayer, defaultBuyIn int) []GamePlayer {
	out := make([]GamePlayer, len(gps))
	for i, gp := range gps {
		out[i] = GamePlayerFromModel(gp, defaultBuyIn)
	}
	return out
}

// Settlement represents a directed payment in API responses
type Settlement struct {
	ID           string    `json:"id"`
	GameID       string    `json:"game_id"`
	FromPlayerID string    `json:"from_player_id"`
	ToPlayerID   string    `json:"to_player_id"`
	Amount       int       `json:"amount"`
	CreatedAt    time.Time `json:"created_at"`
}

// SettlementFromModel converts a model.Settlement
func SettlementFromModel(st *model.Settlement) Settlement {
	return Settlement{
		ID:           string(st.ID),
		GameID:       string(st.GameID),
		FromPlayerID: string(st.FromPlayerID),
		ToPlayerID:   string(st.ToPlayerID),
		Amount:       st.Amount,
		CreatedAt:    st.CreatedAt,
	}
}

// SettlementsFromModel converts a slice of settlements
func SettlementsFromModel(settlements []*model.Settlement) []Settlement {
	out := make([]Settlement, len(settlements))
	for i, st := range settlements {
		out[i] = SettlementFromModel(st)
	}
	return out
}

// GameDetail is a game with its roster attached
type GameDetail struct {
	Game
	Players []GamePlayer `json:"players"`
}

// GameDetailFromModel builds a GameDetail from a game and its roster
func GameDetailFromModel(g *model.Game, gps []*model.GamePlayer) GameDetail {
	return GameDetail{
		Game:    GameFromModel(g),
		Players: GamePlayersFromModel(gps, g.DefaultBuyIn),
	}
}

// CompleteGameResponse is the response after completing a game
type CompleteGameResponse struct {
	Game        Game         `json:"game"`
	Settlements []Settlement `json:"settlements"`
}
