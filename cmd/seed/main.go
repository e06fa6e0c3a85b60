// Command seed fills a state directory with demo data for dashboard
// and CLI development.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/warchest/internal/seed"
	"github.com/okian/warchest/pkg/logger"
)

const (
	defaultOpportunities = 8
	defaultFeedEntries   = 15
	defaultBalance       = 320.0
	defaultTarget        = 2399.0
	seedTimeout          = 30 * time.Second
)

func main() {
	var (
		stateDir      = flag.String("state", "state", "State directory to seed")
		target        = flag.Float64("target", defaultTarget, "Balance target")
		opportunities = flag.Int("opportunities", defaultOpportunities, "Number of opportunities to generate")
		feedEntries   = flag.Int("feed", defaultFeedEntries, "Number of feed entries to generate")
		balance       = flag.Float64("balance", defaultBalance, "Starting balance")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	cfg := &seed.Config{
		StateDir:      *stateDir,
		Target:        *target,
		Opportunities: *opportunities,
		FeedEntries:   *feedEntries,
		Balance:       *balance,
	}

	if err := seed.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("Seed failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
