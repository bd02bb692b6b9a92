package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case []Player:
		o.printLeaderboard(v)
	case Game:
		o.printGame(v)
	case []Game:
		o.printGames(v)
	case GameDetail:
		o.printGameDetail(v)
	case GamePlayer:
		o.printGamePlayer(v)
	case []Settlement:
		o.printSettlements(v)
	case CompleteGameResult:
		o.printCompleteResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
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

// Game response type
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

// GamePlayer response type
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

// GameDetail is a game with its roster
type GameDetail struct {
	Game
	Players []GamePlayer `json:"players"`
}

// Settlement response type
type Settlement struct {
	ID           string    `json:"id"`
	GameID       string    `json:"game_id"`
	FromPlayerID string    `json:"from_player_id"`
	ToPlayerID   string    `json:"to_player_id"`
	Amount       int       `json:"amount"`
	CreatedAt    time.Time `json:"created_at"`
}

// CompleteGameResult response type
type CompleteGameResult struct {
	Game        Game         `json:"game"`
	Settlements []Settlement `json:"settlements"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s (%s)\n", p.Name, p.ID)
	fmt.Printf("Balance: %+d\n", p.TotalBalance)
	fmt.Printf("Games Played: %d\n", p.GamesPlayed)
	fmt.Printf("Streak: %d (max %d)\n", p.CurrentStreak, p.MaxStreak)
	fmt.Printf("Best Win: %+d\n", p.BestWin)
	fmt.Printf("Worst Loss: %+d\n", p.WorstLoss)
}

func (o *Output) printLeaderboard(players []Player) {
	if len(players) == 0 {
		fmt.Println("No players registered")
		return
	}

	fmt.Printf("Leaderboard (%d players):\n", len(players))
	for i, p := range players {
		fmt.Printf("  %d. %s: %+d over %d games (%s)\n",
			i+1, p.Name, p.TotalBalance, p.GamesPlayed, p.ID)
	}
}

func (o *Output) printGame(g Game) {
	fmt.Printf("Game: %s\n", g.ID)
	fmt.Printf("Status: %s\n", g.Status)
	fmt.Printf("Buy-In: %d\n", g.DefaultBuyIn)
	if g.ChipMode {
		fmt.Printf("Chips per Buy-In: %d\n", g.ChipsPerBuyIn)
	}
	if g.TotalPot > 0 {
		fmt.Printf("Total Pot: %d\n", g.TotalPot)
	}
	fmt.Printf("Created: %s\n", g.CreatedAt.Format(time.RFC3339))
	if g.CompletedAt != nil {
		fmt.Printf("Completed: %s\n", g.CompletedAt.Format(time.RFC3339))
	}
}

func (o *Output) printGames(games []Game) {
	if len(games) == 0 {
		fmt.Println("No games recorded")
		return
	}

	fmt.Printf("Games (%d):\n", len(games))
	for _, g := range games {
		fmt.Printf("  - %s [%s] pot %d, started %s\n",
			g.ID, g.Status, g.TotalPot, g.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func (o *Output) printGameDetail(g GameDetail) {
	o.printGame(g.Game)
	fmt.Printf("Players (%d):\n", len(g.Players))
	for _, gp := range g.Players {
		line := fmt.Sprintf("  - %s: %d buy-in(s), total %d", gp.PlayerID, gp.BuyInCount, gp.TotalBuyIn)
		if gp.NetResult != nil {
			line += fmt.Sprintf(", net %+d", *gp.NetResult)
		}
		fmt.Println(line)
	}
}

func (o *Output) printGamePlayer(gp GamePlayer) {
	fmt.Printf("Seat: %s\n", gp.ID)
	fmt.Printf("Game: %s\n", gp.GameID)
	fmt.Printf("Player: %s\n", gp.PlayerID)
	fmt.Printf("Buy-Ins: %d (total %d)\n", gp.BuyInCount, gp.TotalBuyIn)
	if gp.NetResult != nil {
		fmt.Printf("Net Result: %+d\n", *gp.NetResult)
	}
}

func (o *Output) printSettlements(settlements []Settlement) {
	if len(settlements) == 0 {
		fmt.Println("No settlements")
		return
	}

	fmt.Printf("Settlements (%d):\n", len(settlements))
	for _, s := range settlements {
		fmt.Printf("  - %s pays %s: %d\n", s.FromPlayerID, s.ToPlayerID, s.Amount)
	}
}

func (o *Output) printCompleteResult(r CompleteGameResult) {
	o.printGame(r.Game)
	fmt.Println()
	o.printSettlements(r.Settlements)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
