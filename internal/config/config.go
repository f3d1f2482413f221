// Package config holds runtime settings for quirk. Values come from the
// built-in defaults, an optional TOML file, a .env file and QUIRK_*
// environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/abhisek/quirk/internal/chart"
	"github.com/abhisek/quirk/internal/scores"
)

// Config is the complete quirk configuration.
type Config struct {
	// DataDir holds score documents and the SQLite database.
	DataDir string `toml:"data_dir"`

	// Store selects the score backend: "json" or "sqlite".
	Store string `toml:"store"`

	// QuestionnaireDir is where definitions are looked up by bare name.
	QuestionnaireDir string `toml:"questionnaire_dir"`

	LogLevel string `toml:"log_level"`
	LogFile  string `toml:"log_file"`

	Chart ChartConfig `toml:"chart"`
}

// ChartConfig tunes the auto-scaling chart.
type ChartConfig struct {
	MinWidth float64 `toml:"min_width"`
	Height   float64 `toml:"height"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	dataDir, err := DefaultDataDir()
	if err != nil {
		dataDir = ".quirk"
	}
	return Config{
		DataDir:          dataDir,
		Store:            scores.BackendJSON,
		QuestionnaireDir: "questionnaires",
		LogLevel:         "info",
		LogFile:          filepath.Join(dataDir, "quirk.log"),
		Chart: ChartConfig{
			MinWidth: chart.DefaultMinAutoWidth,
			Height:   chart.DefaultHeight,
		},
	}
}

// DefaultDataDir resolves the data directory:
// 1. $XDG_DATA_HOME/quirk
// 2. ~/.local/share/quirk
func DefaultDataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "quirk"), nil
}

// DefaultPath is the config file consulted when no path is given.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "quirk", "config.toml")
}

var validLogLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Level returns the slog level for LogLevel, defaulting to info.
func (c *Config) Level() slog.Level {
	if l, ok := validLogLevels[strings.ToLower(c.LogLevel)]; ok {
		return l
	}
	return slog.LevelInfo
}

// Validate checks for invalid values and returns a combined error
// describing every problem found.
func (c *Config) Validate() error {
	var errs []string

	switch c.Store {
	case scores.BackendJSON, scores.BackendSQLite:
	default:
		errs = append(errs, fmt.Sprintf("unknown store %q (valid: json, sqlite)", c.Store))
	}
	if _, ok := validLogLevels[strings.ToLower(c.LogLevel)]; !ok {
		errs = append(errs, fmt.Sprintf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel))
	}
	if strings.TrimSpace(c.DataDir) == "" {
		errs = append(errs, "data_dir must not be empty")
	}
	if c.Chart.MinWidth < 0 {
		errs = append(errs, "chart.min_width must not be negative")
	}
	if c.Chart.Height <= 0 {
		errs = append(errs, "chart.height must be positive")
	}

	if len(errs) > 0 {
		return errors.New("config: " + strings.Join(errs, "; "))
	}
	return nil
}
