package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envTestConfig struct {
	Port int `env:"PLAYERBASE_TEST_PORT" envDefault:"123"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig
	require.NoError(t, ParseEnv(&cfg))
	assert.Equal(t, 123, cfg.Port)
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("PLAYERBASE_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestLoadServerEnvDefaults(t *testing.T) {
	cfg, err := LoadServerEnv()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "memory", cfg.Storage)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, "playerbase.db", cfg.SQLitePath)
	assert.False(t, cfg.SQLLog)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoadServerEnvOverrides(t *testing.T) {
	t.Setenv("PLAYERBASE_PORT", "9090")
	t.Setenv("PLAYERBASE_STORAGE", "sqlite")
	t.Setenv("PLAYERBASE_SQLITE_PATH", "/tmp/players.db")
	t.Setenv("PLAYERBASE_SQL_LOG", "true")
	t.Setenv("PLAYERBASE_LOG_LEVEL", "debug")

	cfg, err := LoadServerEnv()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "sqlite", cfg.Storage)
	assert.Equal(t, "/tmp/players.db", cfg.SQLitePath)
	assert.True(t, cfg.SQLLog)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadServerEnvRejectsBadValues(t *testing.T) {
	t.Run("port", func(t *testing.T) {
		t.Setenv("PLAYERBASE_PORT", "70000")
		_, err := LoadServerEnv()
		assert.Error(t, err)
	})
	t.Run("log level", func(t *testing.T) {
		t.Setenv("PLAYERBASE_LOG_LEVEL", "chatty")
		_, err := LoadServerEnv()
		assert.Error(t, err)
	})
}
