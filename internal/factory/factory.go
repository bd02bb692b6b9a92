package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mattjh/pokernight-go/internal/dependencies/clock"
	"github.com/mattjh/pokernight-go/internal/services/game"
	"github.com/mattjh/pokernight-go/internal/services/ledger"
	"github.com/mattjh/pokernight-go/internal/services/netresult"
	"github.com/mattjh/pokernight-go/internal/services/player"
	"github.com/mattjh/pokernight-go/internal/services/settlement"
	"github.com/mattjh/pokernight-go/internal/services/validation"
	"github.com/mattjh/pokernight-go/internal/storage"
	"github.com/mattjh/pokernight-go/internal/storage/memory"
	"github.com/mattjh/pokernight-go/internal/storage/postgres"
	redisstorage "github.com/mattjh/pokernight-go/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory   = "memory"
	StorageTypeRedis    = "redis"
	StorageTypePostgres = "postgres"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	NetResultService  *netresult.Service
	ValidationService *validation.Service
	SettlementService *settlement.Service
	LedgerService     *ledger.Service
	PlayerService     *player.Service
	GameController    *game.Controller
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "postgres")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// PostgresDSN holds the Postgres connection string (required if StorageType is "postgres")
	PostgresDSN string
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	case StorageTypePostgres:
		if cfg.PostgresDSN == "" {
			return nil, errors.New("PostgresDSN required when StorageType is postgres")
		}
		pgStore, err := postgres.New(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		store = pgStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis' or 'postgres'")
	}

	return newWithDependencies(store, clock.New(), logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, logger *slog.Logger) *App {
	// Create services
	netResultService := netresult.New()
	validationService := validation.New(netResultService)
	settlementService := settlement.New()
	ledgerService := ledger.New()
	playerService := player.New(store, clk, logger)
	gameController := game.NewController(
		store,
		validationService,
		netResultService,
		settlementService,
		ledgerService,
		clk,
		logger,
	)

	return &App{
		Storage:           store,
		Clock:             clk,
		NetResultService:  netResultService,
		ValidationService: validationService,
		SettlementService: settlementService,
		LedgerService:     ledgerService,
		PlayerService:     playerService,
		GameController:    gameController,
	}
}
