package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load merges the TOML file at path over the defaults and applies QUIRK_*
// overrides. An empty path means DefaultPath; a missing default file is not
// an error, a missing explicit one is. The result is not validated.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("load config %s: %w", path, err)
			}
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	dataDir := cfg.DataDir
	applyEnvOverrides(&cfg)
	// A relocated data dir carries the default log file with it.
	if cfg.DataDir != dataDir && cfg.LogFile == filepath.Join(dataDir, "quirk.log") {
		cfg.LogFile = filepath.Join(cfg.DataDir, "quirk.log")
	}

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	setStr(&cfg.DataDir, "QUIRK_DATA_DIR")
	setStr(&cfg.Store, "QUIRK_STORE")
	setStr(&cfg.QuestionnaireDir, "QUIRK_QUESTIONNAIRE_DIR")
	setStr(&cfg.LogLevel, "QUIRK_LOG_LEVEL")
	setStr(&cfg.LogFile, "QUIRK_LOG_FILE")
	setFloat64(&cfg.Chart.MinWidth, "QUIRK_CHART_MIN_WIDTH")
	setFloat64(&cfg.Chart.Height, "QUIRK_CHART_HEIGHT")
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setFloat64(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}
