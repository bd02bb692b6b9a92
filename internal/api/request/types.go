package request

// CreatePlayerRequest is the request body for creating a player
type CreatePlayerRequest struct {
	Name string `json:"name"`
}

// CreateGameRequest is the request body for starting a game session.
// Zero values fall back to defaults (buy-in 500, money mode).
type CreateGameRequest struct {
	DefaultBuyIn  int `json:"default_buy_in,omitempty"`
	ChipsPerBuyIn int `json:"chips_per_buy_in,omitempty"`
}

// AddGamePlayerRequest is the request body for seating a player in a game
type AddGamePlayerRequest struct {
	GameID     string `json:"game_id"`
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name,omitempty"`
	BuyInCount int    `json:"buy_in_count,omitempty"`
}

// UpdateGamePlayerRequest is the request body for changing a buy-in count
type UpdateGamePlayerRequest struct {
	BuyInCount int `json:"buy_in_count"`
}

// EndingValueEntry is one player's ending value in a completion request
type EndingValueEntry struct {
	PlayerID string  `json:"player_id"`
	Value    float64 `json:"value"`
}

// CompleteGameRequest is the request body for completing a game
type CompleteGameRequest struct {
	EndingValues []EndingValueEntry `json:"ending_values"`
}
