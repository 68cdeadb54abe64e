package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/playerbase/internal/services/players"
	"github.com/mcoot/playerbase/internal/storage"
	"github.com/mcoot/playerbase/internal/storage/memory"
	redisstorage "github.com/mcoot/playerbase/internal/storage/redis"
	sqlitestorage "github.com/mcoot/playerbase/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeSQLite = "sqlite"
)

// App contains all wired application components
type App struct {
	Storage     storage.Storage
	StorageType string

	PlayerService *players.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "sqlite")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SQLiteConfig holds SQLite settings (required if StorageType is "sqlite")
	SQLiteConfig *sqlitestorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

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
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		store = redisStore
	case StorageTypeSQLite:
		if cfg.SQLiteConfig == nil {
			return nil, errors.New("SQLiteConfig required when StorageType is sqlite")
		}
		sqliteStore, err := sqlitestorage.New(*cfg.SQLiteConfig)
		if err != nil {
			return nil, err
		}
		store = sqliteStore
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be 'memory', 'redis' or 'sqlite'", storageType)
	}

	app := newWithStorage(store, logger)
	app.StorageType = storageType
	return app, nil
}

// newWithStorage creates an App around an existing store (useful for testing)
func newWithStorage(store storage.Storage, logger *slog.Logger) *App {
	return &App{
		Storage:       store,
		PlayerService: players.New(store, logger),
	}
}

// Close releases the storage backend's connections, if it holds any
func (a *App) Close() error {
	if c, ok := a.Storage.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
