package sqlite

import (
	"time"

	"go.uber.org/zap"
)

// Config holds SQLite settings
type Config struct {
	// Path is the database file, or ":memory:" for a private in-memory database
	Path string

	// SQLLogger receives gorm statement logs when set; nil keeps gorm silent
	SQLLogger *zap.Logger

	// SlowThreshold marks statements slower than this as warnings
	SlowThreshold time.Duration
}

// DefaultConfig returns sensible defaults for SQLite configuration
func DefaultConfig() Config {
	return Config{
		Path:          "playerbase.db",
		SlowThreshold: 200 * time.Millisecond,
	}
}
