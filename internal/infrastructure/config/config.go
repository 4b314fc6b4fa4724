package config

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration

	// Storage
	DBPath string

	// Logging
	LogLevel slog.Level

	// Cron spec for database maintenance; "off" disables it.
	OptimizeSchedule string

	// CLI gateway. Empty means open DBPath in-process.
	APIURL   string
	CacheTTL time.Duration
}

// Load reads the environment, after an optional .env file, and exits on
// invalid values.
func Load() *Config {
	LoadDotEnv()
	cfg, err := FromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

// LoadDotEnv copies a .env file from the working directory, if any, into the
// environment without overriding variables that are already set.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// FromEnv builds a Config from the current environment.
func FromEnv() (*Config, error) {
	cfg := &Config{
		ServerAddress:    getenvDefault("SERVER_ADDRESS", "localhost:8080"),
		DBPath:           getenvDefault("DB_PATH", "data/pantry.db"),
		OptimizeSchedule: strings.TrimSpace(getenvDefault("OPTIMIZE_SCHEDULE", "@daily")),
		APIURL:           os.Getenv("API_URL"),
	}

	var err error
	if cfg.ShutdownTimeout, err = getDuration("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = getDuration("CACHE_TTL", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.LogLevel, err = parseLevel(getenvDefault("LOG_LEVEL", "info")); err != nil {
		return nil, err
	}
	if strings.EqualFold(cfg.OptimizeSchedule, "off") {
		cfg.OptimizeSchedule = ""
	}
	return cfg, nil
}

func getDuration(k string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s=%q is not a valid duration: %w", k, v, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s=%q must not be negative", k, v)
	}
	return d, nil
}

func parseLevel(v string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(v)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL=%q: %w", v, err)
	}
	return level, nil
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}
