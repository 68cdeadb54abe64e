package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/mcoot/playerbase/internal/api"
	"github.com/mcoot/playerbase/internal/config"
	"github.com/mcoot/playerbase/internal/factory"
	redisstorage "github.com/mcoot/playerbase/internal/storage/redis"
	sqlitestorage "github.com/mcoot/playerbase/internal/storage/sqlite"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	env, err := config.LoadServerEnv()
	if err != nil {
		return err
	}
	level, _ := env.SlogLevel()

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg := factory.Config{
		Logger:      logger,
		StorageType: env.Storage,
	}

	switch cfg.StorageType {
	case factory.StorageTypeRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = env.RedisURL
		cfg.RedisConfig = &redisCfg
	case factory.StorageTypeSQLite:
		sqliteCfg := sqlitestorage.DefaultConfig()
		sqliteCfg.Path = env.SQLitePath
		if env.SQLLog {
			zapLogger, err := zap.NewProduction()
			if err != nil {
				return fmt.Errorf("create SQL logger: %w", err)
			}
			defer func() { _ = zapLogger.Sync() }()
			sqliteCfg.SQLLogger = zapLogger.Named("sql")
		}
		cfg.SQLiteConfig = &sqliteCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		return fmt.Errorf("create application: %w", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("failed to close storage", slog.String("error", err.Error()))
		}
	}()

	router := api.NewRouter(api.RouterConfig{
		Logger:        logger,
		PlayerService: app.PlayerService,
		StorageType:   app.StorageType,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Port = env.Port
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.String("storage", app.StorageType),
	)

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := server.Shutdown(context.Background()); err != nil {
			return err
		}
	}

	logger.Info("server stopped")
	return nil
}
