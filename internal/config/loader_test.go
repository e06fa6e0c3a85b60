package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/warchest/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.StateDir, convey.ShouldEqual, "state")
				convey.So(cfg.Target, convey.ShouldEqual, 2399)
				convey.So(cfg.MaxFeedEntries, convey.ShouldEqual, 100)
				convey.So(cfg.FeedDisplayCount, convey.ShouldEqual, 20)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("WARCHEST_STATE_DIR", "/var/lib/warchest")
			_ = os.Setenv("WARCHEST_TARGET", "5000")
			_ = os.Setenv("WARCHEST_MAX_FEED_ENTRIES", "250")
			_ = os.Setenv("WARCHEST_LOCK_TIMEOUT_MS", "1000")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.StateDir, convey.ShouldEqual, "/var/lib/warchest")
				convey.So(cfg.Target, convey.ShouldEqual, 5000)
				convey.So(cfg.MaxFeedEntries, convey.ShouldEqual, 250)
				convey.So(cfg.LockTimeoutMS, convey.ShouldEqual, 1000)
				convey.So(cfg.FeedDisplayCount, convey.ShouldEqual, 20) // From defaults
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
state_dir: "/tmp/warchest-state"
target: 3000
feed_display_count: 10
seen_cache_size: 1000
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("WARCHEST_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.StateDir, convey.ShouldEqual, "/tmp/warchest-state")
				convey.So(cfg.Target, convey.ShouldEqual, 3000)
				convey.So(cfg.FeedDisplayCount, convey.ShouldEqual, 10)
				convey.So(cfg.SeenCacheSize, convey.ShouldEqual, 1000)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
state_dir: "/tmp/warchest-state"
target: 3000
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("WARCHEST_CONFIG", tmpFile)
			_ = os.Setenv("WARCHEST_TARGET", "7500") // This should override the file
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Target, convey.ShouldEqual, 7500)                     // Overridden by env
				convey.So(cfg.StateDir, convey.ShouldEqual, "/tmp/warchest-state") // From file
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("WARCHEST_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an empty state dir", func() {
			_ = os.Setenv("WARCHEST_STATE_DIR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the display count exceeds the feed capacity", func() {
			_ = os.Setenv("WARCHEST_MAX_FEED_ENTRIES", "10")
			_ = os.Setenv("WARCHEST_FEED_DISPLAY_COUNT", "50")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("WARCHEST_MAX_FEED_ENTRIES", "not_a_number")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"WARCHEST_CONFIG",
		"WARCHEST_STATE_DIR",
		"WARCHEST_TARGET",
		"WARCHEST_START_DATE",
		"WARCHEST_MAX_FEED_ENTRIES",
		"WARCHEST_FEED_DISPLAY_COUNT",
		"WARCHEST_LOCK_TIMEOUT_MS",
		"WARCHEST_LOCK_RETRY_MS",
		"WARCHEST_SEEN_CACHE_SIZE",
		"WARCHEST_METRICS_TEXTFILE",
		"WARCHEST_DASHBOARD_DATA_JS",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "warchest-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
