// Package config loads and normalizes the corebuilder project configuration.
package config

import "time"

// Config represents the application configuration (corebuilder.yaml).
type Config struct {
	SearchRoot string        `yaml:"search_root,omitempty"` // where core definitions are discovered
	LibDir     string        `yaml:"lib_dir,omitempty"`     // library scaffolding and build.mk template
	Build      BuildConfig   `yaml:"build,omitempty"`
	History    HistoryConfig `yaml:"history,omitempty"`
	Metrics    MetricsConfig `yaml:"metrics,omitempty"`
}

// BuildConfig carries build-orchestration options.
type BuildConfig struct {
	// WatchDebounceMS is the quiet period before the watch command rebuilds
	// after a filesystem change. An explicit 0 disables debouncing, so the
	// field is a pointer: nil means the 2000ms default.
	WatchDebounceMS *int `yaml:"watch_debounce_ms,omitempty"`
}

// HistoryConfig configures the build-history store.
type HistoryConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"` // default true
	Path    string `yaml:"path,omitempty"`
}

// MetricsConfig configures the Prometheus exposition endpoint (watch mode).
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled,omitempty"`
	Listen  string `yaml:"listen,omitempty"`
}

// HistoryEnabled reports the effective history toggle.
func (c *Config) HistoryEnabled() bool {
	return c.History.Enabled == nil || *c.History.Enabled
}

// WatchDebounce returns the effective watch debounce interval.
func (c *Config) WatchDebounce() time.Duration {
	if c.Build.WatchDebounceMS == nil {
		return 2 * time.Second
	}
	return time.Duration(*c.Build.WatchDebounceMS) * time.Millisecond
}
