package game

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mattjh/pokernight-go/internal/dependencies/clock"
	"github.com/mattjh/pokernight-go/internal/model"
	"github.com/mattjh/pokernight-go/internal/services/ledger"
	"github.com/mattjh/pokernight-go/internal/services/netresult"
	"github.com/mattjh/pokernight-go/internal/services/settlement"
	"github.com/mattjh/pokernight-go/internal/services/validation"
	"github.com/mattjh/pokernight-go/internal/storage"
)

// defaultBuyInAmount is used when a game is created without an explicit
// buy-in value.
const defaultBuyInAmount = 500

// Controller manages the game lifecycle state machine and drives the
// settlement pipeline on completion.
type Controller struct {
	storage    storage.Storage
	validation validation.ServiceInterface
	calculator netresult.ServiceInterface
	matcher    settlement.ServiceInterface
	ledger     ledger.ServiceInterface
	clock      clock.Clock
	logger     *slog.Logger
}

// NewController creates a new game controller
func NewController(
	storage storage.Storage,
	validationService validation.ServiceInterface,
	calculator netresult.ServiceInterface,
	matcher settlement.ServiceInterface,
	ledgerService ledger.ServiceInterface,
	clock clock.Clock,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:    storage,
		validation: validationService,
		calculator: calculator,
		matcher:    matcher,
		ledger:     ledgerService,
		clock:      clock,
		logger:     logger,
	}
}

// CreateGame starts a new session. Only one game may be open at a time;
// the single-active check is atomic with the insert in storage.
func (c *Controller) CreateGame(ctx context.Context, defaultBuyIn, chipsPerBuyIn int) (*model.Game, error) {
	if defaultBuyIn <= 0 {
		defaultBuyIn = defaultBuyInAmount
	}
	if chipsPerBuyIn < 0 {
		chipsPerBuyIn = 0
	}

	game := &model.Game{
		ID:            model.GameID(uuid.NewString()),
		Status:        model.GameStatusActive,
		DefaultBuyIn:  defaultBuyIn,
		ChipsPerBuyIn: chipsPerBuyIn,
		CreatedAt:     c.clock.Now(),
	}

	if err := c.storage.CreateGame(ctx, game); err != nil {
		return nil, err
	}

	c.logger.Info("game created",
		slog.String("game_id", string(game.ID)),
		slog.Int("default_buy_in", game.DefaultBuyIn),
		slog.Int("chips_per_buy_in", game.ChipsPerBuyIn),
	)

	return game, nil
}

// GetGame retrieves a game by ID
func (c *Controller) GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	return c.storage.GetGame(ctx, gameID)
}

// GetActiveGame returns the currently open game, if any
func (c *Controller) GetActiveGame(ctx context.Context) (*model.Game, error) {
	return c.storage.GetActiveGame(ctx)
}

// ListGames returns all games, newest first
func (c *Controller) ListGames(ctx context.Context) ([]*model.Game, error) {
	return c.storage.ListGames(ctx)
}

// GamePlayers returns the roster for a game
func (c *Controller) GamePlayers(ctx context.Context, gameID model.GameID) ([]*model.GamePlayer, error) {
	if _, err := c.storage.GetGame(ctx, gameID); err != nil {
		return nil, err
	}
	return c.storage.GetGamePlayersForGame(ctx, gameID)
}

// AddPlayer joins a player to an open game. A player appears at most
// once per game.
func (c *Controller) AddPlayer(ctx context.Context, gameID model.GameID, playerID model.PlayerID, buyInCount int) (*model.GamePlayer, error) {
	if buyInCount == 0 {
		buyInCount = 1
	}
	if buyInCount < 1 {
		return nil, model.ErrInvalidBuyInCount
	}

	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if !game.Open() {
		return nil, model.ErrGameNotOpen
	}

	if _, err := c.storage.GetPlayer(ctx, playerID); err != nil {
		return nil, err
	}

	gp := &model.GamePlayer{
		ID:         model.GamePlayerID(uuid.NewString()),
		GameID:     gameID,
		PlayerID:   playerID,
		BuyInCount: buyInCount,
	}

	if err := c.storage.AddGamePlayer(ctx, gp); err != nil {
		return nil, err
	}

	c.logger.Info("player joined game",
		slog.String("game_id", string(gameID)),
		slog.String("player_id", string(playerID)),
	)

	return gp, nil
}

// UpdateBuyInCount sets a player's buy-in count, which can never drop
// below 1.
func (c *Controller) UpdateBuyInCount(ctx context.Context, gamePlayerID model.GamePlayerID, count int) (*model.GamePlayer, error) {
	if count < 1 {
		return nil, model.ErrInvalidBuyInCount
	}

	gp, err := c.storage.GetGamePlayer(ctx, gamePlayerID)
	if err != nil {
		return nil, err
	}

	game, err := c.storage.GetGame(ctx, gp.GameID)
	if err != nil {
		return nil, err
	}
	if !game.Open() {
		return nil, model.ErrGameNotOpen
	}

	updated := gp.Clone()
	updated.BuyInCount = count

	if err := c.storage.SaveGamePlayer(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// RemovePlayer takes a player out of an open game
func (c *Controller) RemovePlayer(ctx context.Context, gamePlayerID model.GamePlayerID) error {
	gp, err := c.storage.GetGamePlayer(ctx, gamePlayerID)
	if err != nil {
		return err
	}

	game, err := c.storage.GetGame(ctx, gp.GameID)
	if err != nil {
		return err
	}
	if !game.Open() {
		return model.ErrGameNotOpen
	}

	return c.storage.DeleteGamePlayer(ctx, gamePlayerID)
}

// BeginSettling moves an active game into the settling phase, where
// ending values are collected. Calling it on a game already settling is
// a no-op.
func (c *Controller) BeginSettling(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	switch game.Status {
	case model.GameStatusSettling:
		return game, nil
	case model.GameStatusCompleted:
		return nil, model.ErrGameCompleted
	case model.GameStatusCancelled:
		return nil, model.ErrInvalidTransition
	}

	updated := game.Clone()
	updated.Status = model.GameStatusSettling

	if err := c.storage.SaveGame(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Complete settles a game: validates the submitted ending values,
// computes net results, generates the transfer set, applies ledger
// deltas and marks the game completed. The whole sequence is persisted
// in one atomic storage write, so a failure leaves no observable
// effect and the submission is safe to retry.
func (c *Controller) Complete(ctx context.Context, gameID model.GameID, entries []model.EndingValue) ([]*model.Settlement, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	switch game.Status {
	case model.GameStatusCompleted:
		return nil, model.ErrGameCompleted
	case model.GameStatusCancelled:
		return nil, model.ErrInvalidTransition
	}

	gamePlayers, err := c.storage.GetGamePlayersForGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	players := make(map[model.PlayerID]*model.Player, len(gamePlayers))
	names := make(map[model.PlayerID]string, len(gamePlayers))
	for _, gp := range gamePlayers {
		p, err := c.storage.GetPlayer(ctx, gp.PlayerID)
		if err != nil {
			return nil, err
		}
		players[gp.PlayerID] = p
		names[gp.PlayerID] = p.Name
	}

	if err := c.validation.ValidateSubmission(game, gamePlayers, names, entries); err != nil {
		return nil, err
	}

	results := c.calculator.Compute(game, gamePlayers, entries)
	transfers := c.matcher.Match(c.calculator.NetResults(results))

	now := c.clock.Now()

	resultsByGamePlayer := make(map[model.GamePlayerID]netresult.Result, len(results))
	for _, r := range results {
		resultsByGamePlayer[r.GamePlayerID] = r
	}

	totalPot := 0
	finalGamePlayers := make([]*model.GamePlayer, 0, len(gamePlayers))
	finalPlayers := make([]*model.Player, 0, len(gamePlayers))
	for _, gp := range gamePlayers {
		r := resultsByGamePlayer[gp.ID]
		totalPot += gp.TotalBuyIn(game.DefaultBuyIn)

		final := gp.Clone()
		ending := r.EndingValue
		finalAmount := r.FinalAmount
		net := r.NetResult
		final.EndingValue = &ending
		final.FinalAmount = &finalAmount
		final.NetResult = &net
		finalGamePlayers = append(finalGamePlayers, final)

		p := players[gp.PlayerID].Clone()
		c.ledger.Apply(p, net)
		finalPlayers = append(finalPlayers, p)
	}

	completedGame := game.Clone()
	completedGame.Status = model.GameStatusCompleted
	completedGame.TotalPot = totalPot
	completedGame.CompletedAt = &now

	settlements := make([]*model.Settlement, len(transfers))
	for i, t := range transfers {
		settlements[i] = &model.Settlement{
			ID:           model.SettlementID(uuid.NewString()),
			GameID:       gameID,
			FromPlayerID: t.From,
			ToPlayerID:   t.To,
			Amount:       t.Amount,
			CreatedAt:    now,
		}
	}

	completion := &model.Completion{
		Game:        completedGame,
		GamePlayers: finalGamePlayers,
		Players:     finalPlayers,
		Settlements: settlements,
	}

	if err := c.storage.ApplyCompletion(ctx, completion); err != nil {
		return nil, err
	}

	c.logger.Info("game completed",
		slog.String("game_id", string(gameID)),
		slog.Int("player_count", len(gamePlayers)),
		slog.Int("total_pot", totalPot),
		slog.Int("settlement_count", len(settlements)),
	)

	return settlements, nil
}

// Cancel abandons an open game with no ledger effect. Terminal.
func (c *Controller) Cancel(ctx context.Context, gameID model.GameID) error {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return err
	}

	if !game.Open() {
		return model.ErrInvalidTransition
	}

	updated := game.Clone()
	updated.Status = model.GameStatusCancelled

	if err := c.storage.SaveGame(ctx, updated); err != nil {
		return err
	}

	c.logger.Info("game cancelled", slog.String("game_id", string(gameID)))
	return nil
}

// Delete removes a non-open game and everything attached to it. For a
// completed game the players' ledger effects are reversed inside the
// cascade's atomic unit, against the player records as they are at
// commit time, so a completion landing concurrently is not overwritten.
func (c *Controller) Delete(ctx context.Context, gameID model.GameID) error {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return err
	}

	if game.Open() {
		return model.ErrGameStillActive
	}

	var reverse storage.LedgerReversal
	if game.Status == model.GameStatusCompleted {
		reverse = c.reverseLedger
	}

	if err := c.storage.DeleteGameCascade(ctx, gameID, reverse); err != nil {
		return err
	}

	c.logger.Info("game deleted",
		slog.String("game_id", string(gameID)),
		slog.String("status", string(game.Status)),
		slog.Bool("ledger_reversed", reverse != nil),
	)
	return nil
}

// reverseLedger undoes each seat's recorded net result against the
// player records the storage backend read under its own lock.
func (c *Controller) reverseLedger(gamePlayers []*model.GamePlayer, players []*model.Player) ([]*model.Player, error) {
	byID := make(map[model.PlayerID]*model.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	var reversed []*model.Player
	for _, gp := range gamePlayers {
		if gp.NetResult == nil {
			continue
		}
		p, ok := byID[gp.PlayerID]
		if !ok {
			return nil, model.ErrPlayerNotFound
		}
		c.ledger.Reverse(p, *gp.NetResult)
		reversed = append(reversed, p)
	}
	return reversed, nil
}

// Settlements returns the settlement set recorded for a game
func (c *Controller) Settlements(ctx context.Context, gameID model.GameID) ([]*model.Settlement, error) {
	if _, err := c.storage.GetGame(ctx, gameID); err != nil {
		return nil, err
	}
	return c.storage.GetSettlementsForGame(ctx, gameID)
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateGame(ctx context.Context, defaultBuyIn, chipsPerBuyIn int) (*model.Game, error)
	GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error)
	GetActiveGame(ctx context.Context) (*model.Game, error)
	ListGames(ctx context.Context) ([]*model.Game, error)
	GamePlayers(ctx context.Context, gameID model.GameID) ([]*model.GamePlayer, error)
	AddPlayer(ctx context.Context, gameID model.GameID, playerID model.PlayerID, buyInCount int) (*model.GamePlayer, error)
	UpdateBuyInCount(ctx context.Context, gamePlayerID model.GamePlayerID, count int) (*model.GamePlayer, error)
	RemovePlayer(ctx context.Context, gamePlayerID model.GamePlayerID) error
	BeginSettling(ctx context.Context, gameID model.GameID) (*model.Game, error)
	Complete(ctx context.Context, gameID model.GameID, entries []model.EndingValue) ([]*model.Settlement, error)
	Cancel(ctx context.Context, gameID model.GameID) error
	Delete(ctx context.Context, gameID model.GameID) error
	Settlements(ctx context.Context, gameID model.GameID) ([]*model.Settlement, error)
}

var _ ControllerInterface = (*Controller)(nil)
