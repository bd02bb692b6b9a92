package player

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/mattjh/pokernight-go/internal/dependencies/clock"
	"github.com/mattjh/pokernight-go/internal/model"
	"github.com/mattjh/pokernight-go/internal/storage"
)

// Service manages the persistent player roster
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new player service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// CreatePlayer registers a new player with a unique display name
func (s *Service) CreatePlayer(ctx context.Context, name string) (*model.Player, error) {
	name = strings.TrimSpace(name)

	if _, err := s.storage.GetPlayerByName(ctx, name); err == nil {
		return nil, model.ErrPlayerNameTaken
	} else if !errors.Is(err, model.ErrPlayerNotFound) {
		return nil, err
	}

	player := &model.Player{
		ID:        model.PlayerID(uuid.NewString()),
		Name:      name,
		CreatedAt: s.clock.Now(),
	}

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}

	s.logger.Info("player created",
		slog.String("player_id", string(player.ID)),
		slog.String("name", player.Name),
	)

	return player, nil
}

// GetOrCreatePlayer returns the player with the given name, creating
// the record on first reference.
func (s *Service) GetOrCreatePlayer(ctx context.Context, name string) (*model.Player, error) {
	name = strings.TrimSpace(name)

	player, err := s.storage.GetPlayerByName(ctx, name)
	if err == nil {
		return player, nil
	}
	if !errors.Is(err, model.ErrPlayerNotFound) {
		return nil, err
	}

	return s.CreatePlayer(ctx, name)
}

// GetPlayer retrieves a player by ID
func (s *Service) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return s.storage.GetPlayer(ctx, id)
}

// ListPlayers returns all players in leaderboard order (lifetime
// balance descending).
func (s *Service) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	return s.storage.ListPlayers(ctx)
}

// Interface for dependency injection
type ServiceInterface interface {
	CreatePlayer(ctx context.Context, name string) (*model.Player, error)
	GetOrCreatePlayer(ctx context.Context, name string) (*model.Player, error)
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	ListPlayers(ctx context.Context) ([]*model.Player, error)
}

var _ ServiceInterface = (*Service)(nil)
