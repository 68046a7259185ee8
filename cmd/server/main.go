package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/WillowTech1996/DartsCounter/internal/api"
	"github.com/WillowTech1996/DartsCounter/internal/config"
	"github.com/WillowTech1996/DartsCounter/internal/factory"
	"github.com/WillowTech1996/DartsCounter/internal/services/match"
	"github.com/WillowTech1996/DartsCounter/internal/services/opponent"
	redisstorage "github.com/WillowTech1996/DartsCounter/internal/storage/redis"
)

// maintenanceInterval is how often expired sessions and empty event
// hubs are swept
const maintenanceInterval = 5 * time.Minute

func main() {
	// A .env file is a convenience for local runs; absence is fine
	_ = godotenv.Load()

	cfg := config.Load()

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	factoryCfg := factory.Config{
		Logger:      logger,
		StorageType: cfg.StorageType,
		PostgresURL: cfg.PostgresURL,
		MatchConfig: match.Config{
			BustDisplay: cfg.BustDisplay,
		},
		OpponentConfig: opponent.Config{
			ThrowInterval: cfg.ThrowInterval,
			HoldDelay:     cfg.HoldDelay,
		},
	}

	if cfg.StorageType == factory.StorageTypeRedis {
		if cfg.RedisURL == "" {
			logger.Error("DARTS_REDIS_URL required when DARTS_STORAGE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		AuthService:     app.AuthService,
		MatchController: app.MatchController,
		OpponentService: app.OpponentService,
		CheckoutService: app.CheckoutService,
		HubManager:      app.HubManager,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.Host
	serverConfig.Port = cfg.Port
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Sweep expired sessions and abandoned event hubs in the background
	go func() {
		ticker := time.NewTicker(maintenanceInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				app.AuthService.PruneExpiredSessions()
				app.HubManager.CleanupEmptyHubs()
			}
		}
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.String("storage", cfg.StorageType),
	)

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
