package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantry-it/backend/internal/infrastructure/config"
)

var keys = []string{
	"SERVER_ADDRESS", "SHUTDOWN_TIMEOUT", "DB_PATH", "LOG_LEVEL",
	"OPTIMIZE_SCHEDULE", "API_URL", "CACHE_TTL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "localhost:8080", cfg.ServerAddress)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "data/pantry.db", cfg.DBPath)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, "@daily", cfg.OptimizeSchedule)
	assert.Empty(t, cfg.APIURL)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_ADDRESS", ":9090")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("DB_PATH", "/tmp/p.db")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("OPTIMIZE_SCHEDULE", "0 3 * * *")
	t.Setenv("API_URL", "http://pantry.local:8080")
	t.Setenv("CACHE_TTL", "0s")

	cfg, err := config.FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.ServerAddress)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "/tmp/p.db", cfg.DBPath)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "0 3 * * *", cfg.OptimizeSchedule)
	assert.Equal(t, "http://pantry.local:8080", cfg.APIURL)
	assert.Zero(t, cfg.CacheTTL)
}

func TestFromEnv_ScheduleCanBeDisabled(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPTIMIZE_SCHEDULE", "off")

	cfg, err := config.FromEnv()
	require.NoError(t, err)
	assert.Empty(t, cfg.OptimizeSchedule)
}

func TestFromEnv_Invalid(t *testing.T) {
	testCases := map[string]string{
		"SHUTDOWN_TIMEOUT": "soon",
		"CACHE_TTL":        "-1s",
		"LOG_LEVEL":        "loud",
	}
	for k, v := range testCases {
		t.Run(k, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(k, v)
			_, err := config.FromEnv()
			assert.ErrorContains(t, err, k)
		})
	}
}
