package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New(ctx))
//  2. file (YAML) if WARCHEST_CONFIG is set
//  3. env (prefix WARCHEST_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New(ctx)

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("WARCHEST_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: WARCHEST_STATE_DIR, WARCHEST_TARGET, ...
	// Map env keys like WARCHEST_STATE_DIR -> state_dir (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("WARCHEST_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "warchest_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.StateDir == "" {
		return fmt.Errorf("%w: state_dir must not be empty", ErrInvalidConfig)
	}
	if c.MaxFeedEntries <= 0 {
		return fmt.Errorf("%w: max_feed_entries must be positive", ErrInvalidConfig)
	}
	if c.FeedDisplayCount <= 0 {
		return fmt.Errorf("%w: feed_display_count must be positive", ErrInvalidConfig)
	}
	if c.FeedDisplayCount > c.MaxFeedEntries {
		return fmt.Errorf("%w: feed_display_count exceeds max_feed_entries", ErrInvalidConfig)
	}
	if c.LockTimeoutMS <= 0 || c.LockRetryMS <= 0 {
		return fmt.Errorf("%w: lock timings must be positive", ErrInvalidConfig)
	}
	if c.SeenCacheSize <= 0 {
		return fmt.Errorf("%w: seen_cache_size must be positive", ErrInvalidConfig)
	}
	return nil
}
