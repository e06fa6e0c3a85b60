// Package config defines process configuration and loading hooks.
//
// Conventions:
// - Provide New(...) to build a Config with defaults.
// - Layer file and environment overrides on top via Load.
// - External errors must be wrapped via this package's error helpers.
package config

import "context"

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// StateDir is the directory holding the JSON state documents.
	StateDir string `koanf:"state_dir"`

	// Target is the balance goal the dashboard tracks progress against.
	Target float64 `koanf:"target"`

	// StartDate seeds a fresh board, ISO date.
	StartDate string `koanf:"start_date"`

	// MaxFeedEntries caps the retained activity feed.
	MaxFeedEntries int `koanf:"max_feed_entries"`

	// FeedDisplayCount is how many feed entries the dashboard shows.
	FeedDisplayCount int `koanf:"feed_display_count"`

	// LockTimeoutMS bounds document lock acquisition.
	LockTimeoutMS int `koanf:"lock_timeout_ms"`

	// LockRetryMS is the polling interval while waiting for a lock.
	LockRetryMS int `koanf:"lock_retry_ms"`

	// SeenCacheSize caps the scanner deduplication cache.
	SeenCacheSize int `koanf:"seen_cache_size"`

	// MetricsTextfile, when set, is where process metrics are exported
	// for the node_exporter textfile collector. Empty disables export.
	MetricsTextfile string `koanf:"metrics_textfile"`

	// DashboardDataJS is where the sync command writes the rendered
	// dashboard data script.
	DashboardDataJS string `koanf:"dashboard_data_js"`
}

// New creates a Config with defaults. Context is accepted first to
// satisfy the project-wide convention; it is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:         "info",
		StateDir:         "state",
		Target:           2399,
		StartDate:        "2026-02-04",
		MaxFeedEntries:   100,
		FeedDisplayCount: 20,
		LockTimeoutMS:    5000,
		LockRetryMS:      25,
		SeenCacheSize:    5000,
		MetricsTextfile:  "",
		DashboardDataJS:  "dashboard/data.js",
	}
}
