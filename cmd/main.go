// Command warchest is the shared state CLI the agents and the operator
// drive: it owns the opportunity pipeline, the activity feed, the
// balance ledger, the agent board, and the dashboard data render.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	app "github.com/okian/warchest/internal/app"
	"github.com/okian/warchest/internal/config"
	"github.com/okian/warchest/pkg/logger"
)

const usage = `warchest - shared state for the income agent fleet

Usage:
  warchest <command> [flags]

Commands:
  status     Show balance, progress and pipeline summary
  pipeline   List every opportunity by stage
  add        Add an opportunity to the pipeline
  move       Move an opportunity to another stage
  log        Append an entry to the activity feed
  balance    Set the absolute balance
  income     Record income against a category
  agent      Update an agent's status on the board
  seen       Check-and-record a scanner identifier
  sync       Render the dashboard data file

Run 'warchest <command> -h' for command flags.
`

func main() {
	os.Exit(run())
}

func run() int {
	// Optional .env for local development; absence is fine.
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return 1
	}
	defer func() { _ = logger.Sync() }()

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return 1
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if len(os.Args) < 2 || os.Args[1] == "-h" || os.Args[1] == "--help" || os.Args[1] == "help" {
		fmt.Print(usage)
		if len(os.Args) < 2 {
			return 1
		}
		return 0
	}

	svc := app.New(
		app.WithLogger(log),
		app.WithStateDir(cfg.StateDir),
		app.WithTarget(cfg.Target),
		app.WithStartDate(cfg.StartDate),
		app.WithFeedCapacity(cfg.MaxFeedEntries),
		app.WithFeedDisplayCount(cfg.FeedDisplayCount),
		app.WithLockTimeout(time.Duration(cfg.LockTimeoutMS)*time.Millisecond),
		app.WithLockRetry(time.Duration(cfg.LockRetryMS)*time.Millisecond),
		app.WithSeenCacheSize(cfg.SeenCacheSize),
		app.WithMetricsTextfile(cfg.MetricsTextfile),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return 1
	}
	defer svc.Stop()

	if err := dispatch(ctx, svc, cfg, os.Args[1], os.Args[2:]); err != nil {
		fmt.Printf("❌ %v\n", err)
		return 1
	}
	return 0
}
