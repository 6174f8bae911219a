package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	cberrors "git.home.luguber.info/inful/corebuilder/internal/errors"
)

// DefaultPath is the configuration file looked up when no -c flag is given.
const DefaultPath = "corebuilder.yaml"

// Load loads configuration from the specified file, applies environment
// overrides and defaults, and validates the result.
func Load(configPath string) (*Config, error) {
	// .env values supplement but never override the process environment.
	if err := godotenv.Load(); err == nil {
		slog.Debug("Loaded environment variables from .env")
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, cberrors.Wrap(err, cberrors.CategoryConfig, cberrors.SeverityFatal, fmt.Sprintf("read configuration %s", configPath))
	}

	cfg := &Config{}
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, cberrors.Wrap(err, cberrors.CategoryConfig, cberrors.SeverityFatal, fmt.Sprintf("parse configuration %s", configPath))
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)
	if err := validate(cfg); err != nil {
		return nil, cberrors.Wrap(err, cberrors.CategoryConfig, cberrors.SeverityFatal, fmt.Sprintf("invalid configuration %s", configPath))
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but falls back to a pure-default
// configuration when the default config file is absent.
func LoadOrDefault(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) && configPath == DefaultPath {
		cfg := &Config{}
		applyEnvOverrides(cfg)
		applyDefaults(cfg)
		return cfg, nil
	}
	return Load(configPath)
}

// applyEnvOverrides lets the environment override file values. Overrides run
// before default filling so an empty file plus env behaves like a file.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("COREBUILDER_SEARCH_ROOT"); v != "" {
		cfg.SearchRoot = v
	}
	if v := os.Getenv("COREBUILDER_LIB_DIR"); v != "" {
		cfg.LibDir = v
	}
	if v := os.Getenv("COREBUILDER_HISTORY_PATH"); v != "" {
		cfg.History.Path = v
	}
}

func validate(cfg *Config) error {
	if cfg.Build.WatchDebounceMS != nil && *cfg.Build.WatchDebounceMS < 0 {
		return fmt.Errorf("build.watch_debounce_ms must be >= 0")
	}
	return nil
}
