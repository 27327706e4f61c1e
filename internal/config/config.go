// Package config gathers the environment-tunable defaults for the simulator.
// A .env file in the working directory is honoured, matching the TAPEMUL_*
// variables below; flags on the command line take precedence over all of it.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults.
const (
	DefaultDelay   = 100 * time.Millisecond
	DefaultPadding = 15
)

// Config holds the resolved runtime settings.
type Config struct {
	Delay    time.Duration // inter-step delay for -s
	Padding  int           // tape window half-width
	DBPath   string        // run journal location
	LogLevel slog.Level
}

// Load reads .env (if present) and resolves the TAPEMUL_* variables, falling
// back to defaults for anything unset or unparseable. Bad values are logged
// and ignored rather than failing startup.
func Load() Config {
	_ = godotenv.Load(".env")

	cfg := Config{
		Delay:    DefaultDelay,
		Padding:  DefaultPadding,
		LogLevel: slog.LevelInfo,
	}

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	cfg.DBPath = filepath.Join(home, ".cache", "tapemul", "runs")
	if v := os.Getenv("TAPEMUL_DB"); v != "" {
		cfg.DBPath = v
	}

	if v := os.Getenv("TAPEMUL_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			cfg.Delay = d
		} else {
			slog.Warn("ignoring bad TAPEMUL_DELAY", "value", v)
		}
	}

	if v := os.Getenv("TAPEMUL_PADDING"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Padding = n
		} else {
			slog.Warn("ignoring bad TAPEMUL_PADDING", "value", v)
		}
	}

	if v := os.Getenv("TAPEMUL_LOG_LEVEL"); v != "" {
		cfg.LogLevel = parseLevel(v)
	}

	return cfg
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
