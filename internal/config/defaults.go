package config

import "path/filepath"

// applyDefaults fills every absent field with its fixed default. It runs once
// at load time; explicit values are never overwritten.
func applyDefaults(cfg *Config) {
	if cfg.SearchRoot == "" {
		cfg.SearchRoot = "."
	}
	if cfg.LibDir == "" {
		cfg.LibDir = "lib"
	}
	if cfg.History.Path == "" {
		cfg.History.Path = filepath.Join(".corebuilder", "history.db")
	}
	if cfg.Metrics.Listen == "" {
		cfg.Metrics.Listen = ":9090"
	}
}
