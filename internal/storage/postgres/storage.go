package postgres

import (
	"context"
	"errors"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mattjh/pokernight-go/internal/model"
	"github.com/mattjh/pokernight-go/internal/storage"
)

var openStatuses = []string{
	string(model.GameStatusActive),
	string(model.GameStatusSettling),
}

// Storage is a Postgres-backed implementation of the storage interface.
// The multi-entity writes run in transactions with the game row locked
// FOR UPDATE, so concurrent completions serialize on the database.
type Storage struct {
	db *gorm.DB
}

// New connects to Postgres and migrates the schema
func New(dsn string) (*Storage, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&playerRecord{},
		&gameRecord{},
		&gamePlayerRecord{},
		&settlementRecord{},
	); err != nil {
		return nil, err
	}

	return &Storage{db: db}, nil
}

// NewWithDB creates a Postgres storage with an existing connection (for testing)
func NewWithDB(db *gorm.DB) *Storage {
	return &Storage{db: db}
}

// Close closes the underlying connection pool
func (s *Storage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	return s.db.WithContext(ctx).Save(toPlayerRecord(player)).Error
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	var rec playerRecord
	err := s.db.WithContext(ctx).First(&rec, "id = ?", string(id)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}
	return rec.toModel(), nil
}

func (s *Storage) GetPlayerByName(ctx context.Context, name string) (*model.Player, error) {
	var rec playerRecord
	err := s.db.WithContext(ctx).First(&rec, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}
	return rec.toModel(), nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	var recs []playerRecord
	err := s.db.WithContext(ctx).
		Order("total_balance DESC").
		Order("name ASC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, len(recs))
	for i := range recs {
		players[i] = recs[i].toModel()
	}
	return players, nil
}

// Game operations

func (s *Storage) CreateGame(ctx context.Context, game *model.Game) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock any open game rows so two creators cannot both pass the
		// single-active check
		var open []gameRecord
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("status IN ?", openStatuses).
			Find(&open).Error
		if err != nil {
			return err
		}
		if len(open) > 0 {
			return model.ErrActiveGameExists
		}

		return tx.Create(toGameRecord(game)).Error
	})
}

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	return s.db.WithContext(ctx).Save(toGameRecord(game)).Error
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	var rec gameRecord
	err := s.db.WithContext(ctx).First(&rec, "id = ?", string(id)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}
	return rec.toModel(), nil
}

func (s *Storage) GetActiveGame(ctx context.Context) (*model.Game, error) {
	var rec gameRecord
	err := s.db.WithContext(ctx).First(&rec, "status IN ?", openStatuses).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNoActiveGame
		}
		return nil, err
	}
	return rec.toModel(), nil
}

func (s *Storage) ListGames(ctx context.Context) ([]*model.Game, error) {
	var recs []gameRecord
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&recs).Error
	if err != nil {
		return nil, err
	}

	games := make([]*model.Game, len(recs))
	for i := range recs {
		games[i] = recs[i].toModel()
	}
	return games, nil
}

// Game player operations

func (s *Storage) AddGamePlayer(ctx context.Context, gp *model.GamePlayer) error {
	err := s.db.WithContext(ctx).Create(toGamePlayerRecord(gp)).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return model.ErrPlayerAlreadyInGame
	}
	return err
}

func (s *Storage) SaveGamePlayer(ctx context.Context, gp *model.GamePlayer) error {
	return s.db.WithContext(ctx).Save(toGamePlayerRecord(gp)).Error
}

func (s *Storage) GetGamePlayer(ctx context.Context, id model.GamePlayerID) (*model.GamePlayer, error) {
	var rec gamePlayerRecord
	err := s.db.WithContext(ctx).First(&rec, "id = ?", string(id)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrGamePlayerNotFound
		}
		return nil, err
	}
	return rec.toModel(), nil
}

func (s *Storage) GetGamePlayersForGame(ctx context.Context, gameID model.GameID) ([]*model.GamePlayer, error) {
	var recs []gamePlayerRecord
	err := s.db.WithContext(ctx).
		Where("game_id = ?", string(gameID)).
		Order("id ASC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}

	gps := make([]*model.GamePlayer, len(recs))
	for i := range recs {
		gps[i] = recs[i].toModel()
	}
	return gps, nil
}

func (s *Storage) DeleteGamePlayer(ctx context.Context, id model.GamePlayerID) error {
	return s.db.WithContext(ctx).Delete(&gamePlayerRecord{}, "id = ?", string(id)).Error
}

// Settlement operations

func (s *Storage) ListSettlements(ctx context.Context) ([]*model.Settlement, error) {
	var recs []settlementRecord
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id ASC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return toSettlements(recs), nil
}

func (s *Storage) GetSettlementsForGame(ctx context.Context, gameID model.GameID) ([]*model.Settlement, error) {
	var recs []settlementRecord
	err := s.db.WithContext(ctx).
		Where("game_id = ?", string(gameID)).
		Order("id ASC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return toSettlements(recs), nil
}

func toSettlements(recs []settlementRecord) []*model.Settlement {
	settlements := make([]*model.Settlement, len(recs))
	for i := range recs {
		settlements[i] = recs[i].toModel()
	}
	return settlements
}

// Atomic units

func (s *Storage) ApplyCompletion(ctx context.Context, completion *model.Completion) error {
	game := completion.Game

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stored gameRecord
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&stored, "id = ?", string(game.ID)).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return model.ErrGameNotFound
			}
			return err
		}
		if stored.Status == string(model.GameStatusCompleted) {
			return model.ErrGameCompleted
		}

		if err := tx.Delete(&settlementRecord{}, "game_id = ?", string(game.ID)).Error; err != nil {
			return err
		}

		if err := tx.Save(toGameRecord(game)).Error; err != nil {
			return err
		}
		for _, gp := range completion.GamePlayers {
			if err := tx.Save(toGamePlayerRecord(gp)).Error; err != nil {
				return err
			}
		}
		for _, p := range completion.Players {
			if err := tx.Save(toPlayerRecord(p)).Error; err != nil {
				return err
			}
		}
		for _, st := range completion.Settlements {
			if err := tx.Create(toSettlementRecord(st)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Storage) DeleteGameCascade(ctx context.Context, gameID model.GameID, reverse storage.LedgerReversal) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stored gameRecord
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&stored, "id = ?", string(gameID)).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return model.ErrGameNotFound
			}
			return err
		}

		// The reversal runs against player rows locked in this
		// transaction, not against a caller-side snapshot
		if reverse != nil {
			var gpRecs []gamePlayerRecord
			err := tx.Where("game_id = ?", string(gameID)).
				Order("id ASC").
				Find(&gpRecs).Error
			if err != nil {
				return err
			}

			gps := make([]*model.GamePlayer, len(gpRecs))
			playerIDs := make([]string, len(gpRecs))
			for i := range gpRecs {
				gps[i] = gpRecs[i].toModel()
				playerIDs[i] = gpRecs[i].PlayerID
			}

			var playerRecs []playerRecord
			if len(playerIDs) > 0 {
				err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
					Where("id IN ?", playerIDs).
					Find(&playerRecs).Error
				if err != nil {
					return err
				}
			}

			players := make([]*model.Player, len(playerRecs))
			for i := range playerRecs {
				players[i] = playerRecs[i].toModel()
			}

			reversed, err := reverse(gps, players)
			if err != nil {
				return err
			}
			for _, p := range reversed {
				if err := tx.Save(toPlayerRecord(p)).Error; err != nil {
					return err
				}
			}
		}

		if err := tx.Delete(&gamePlayerRecord{}, "game_id = ?", string(gameID)).Error; err != nil {
			return err
		}
		if err := tx.Delete(&settlementRecord{}, "game_id = ?", string(gameID)).Error; err != nil {
			return err
		}
		return tx.Delete(&gameRecord{}, "id = ?", string(gameID)).Error
	})
}
