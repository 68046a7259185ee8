package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/WillowTech1996/DartsCounter/internal/dependencies/clock"
	"github.com/WillowTech1996/DartsCounter/internal/dependencies/random"
	"github.com/WillowTech1996/DartsCounter/internal/services/auth"
	"github.com/WillowTech1996/DartsCounter/internal/services/checkout"
	"github.com/WillowTech1996/DartsCounter/internal/services/match"
	"github.com/WillowTech1996/DartsCounter/internal/services/opponent"
	"github.com/WillowTech1996/DartsCounter/internal/services/scoring"
	"github.com/WillowTech1996/DartsCounter/internal/sse"
	"github.com/WillowTech1996/DartsCounter/internal/storage"
	"github.com/WillowTech1996/DartsCounter/internal/storage/memory"
	postgresstorage "github.com/WillowTech1996/DartsCounter/internal/storage/postgres"
	redisstorage "github.com/WillowTech1996/DartsCounter/internal/storage/redis"
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
	Clock  clock.Clock
	Random random.Random

	// Services
	ScoringService  *scoring.Service
	CheckoutService *checkout.Service
	MatchController *match.Controller
	OpponentService *opponent.Service
	AuthService     *auth.Service
	HubManager      *sse.HubManager
	Broadcaster     *sse.Broadcaster
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend
	// ("memory", "redis" or "postgres"); if empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// PostgresURL is the Postgres DSN (required if StorageType is "postgres")
	PostgresURL string
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// MatchConfig holds match presentation timing (optional)
	MatchConfig match.Config
	// OpponentConfig holds computer-turn pacing (optional)
	OpponentConfig opponent.Config
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
		if cfg.PostgresURL == "" {
			return nil, errors.New("PostgresURL required when StorageType is postgres")
		}
		pgStore, err := postgresstorage.New(cfg.PostgresURL)
		if err != nil {
			return nil, err
		}
		migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := pgStore.Migrate(migrateCtx); err != nil {
			_ = pgStore.Close()
			return nil, err
		}
		store = pgStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis' or 'postgres'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	// Fill in config defaults
	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}
	matchCfg := cfg.MatchConfig
	if matchCfg.BustDisplay == 0 {
		matchCfg = match.DefaultConfig()
	}
	opponentCfg := cfg.OpponentConfig
	if opponentCfg.ThrowInterval == 0 {
		opponentCfg = opponent.DefaultConfig()
	}

	return newWithDependencies(store, clk, rnd, authCfg, matchCfg, opponentCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	authCfg auth.Config,
	matchCfg match.Config,
	opponentCfg opponent.Config,
	logger *slog.Logger,
) *App {
	// Create services. The broadcaster is the controller's notifier, so
	// every engine event reaches the match's event stream.
	scoringService := scoring.New()
	checkoutService := checkout.New()
	hubManager := sse.NewHubManager(logger)
	broadcaster := sse.NewBroadcaster(hubManager, logger)
	matchController := match.NewController(store, scoringService, checkoutService, clk, rnd, broadcaster, matchCfg, logger)
	opponentService := opponent.New(matchController, clk, rnd, opponentCfg, logger)
	authService := auth.New(store, clk, authCfg)

	return &App{
		Storage:         store,
		Clock:           clk,
		Random:          rnd,
		ScoringService:  scoringService,
		CheckoutService: checkoutService,
		MatchController: matchController,
		OpponentService: opponentService,
		AuthService:     authService,
		HubManager:      hubManager,
		Broadcaster:     broadcaster,
	}
}
