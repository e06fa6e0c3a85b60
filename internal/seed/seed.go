// Package seed populates a state directory with plausible demo data:
// a part-filled pipeline, feed chatter, agent records and a starting
// balance. Useful for exercising the dashboard without running the
// agent fleet.
package seed

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	app "github.com/okian/warchest/internal/app"
	"github.com/okian/warchest/internal/domain/model"
	"github.com/okian/warchest/pkg/logger"
)

// Config controls how much demo data is generated.
type Config struct {
	StateDir      string
	Target        float64
	Opportunities int
	FeedEntries   int
	Balance       float64
}

var opportunityPool = []struct {
	title  string
	kind   string
	source string
	value  float64
}{
	{"Logo design for SaaS landing page", "gig", "job-scanner", 150},
	{"Scrape product data for price tracker", "gig", "job-scanner", 300},
	{"NVDA momentum entry", "trade", "trading-scout", 48},
	{"Covered call on existing SPY shares", "options", "trading-scout", 85},
	{"WordPress migration for local bakery", "gig", "job-scanner", 220},
	{"Translate onboarding docs to Spanish", "gig", "job-scanner", 120},
	{"TSLA earnings straddle", "options", "trading-scout", 95},
	{"Discord bot for community server", "gig", "job-scanner", 180},
	{"Airtable automation for realtor", "gig", "job-scanner", 90},
	{"ETH range-bound grid", "trade", "trading-scout", 60},
}

var feedPool = []struct {
	agent   string
	icon    string
	message string
}{
	{"job-scanner", "🔍", "Scanned 42 listings, 3 matched filters"},
	{"trading-scout", "📈", "Momentum screen produced 2 candidates"},
	{"job-scanner", "🎯", "High-value gig detected, queued for research"},
	{"operator", "📝", "Reviewed researching column"},
	{"trading-scout", "⚠️", "Volatility spike, tightening filters"},
	{"job-scanner", "♻️", "17 duplicate listings skipped"},
}

// Run seeds the state directory described by cfg.
func Run(ctx context.Context, cfg *Config) error {
	svc := app.New(
		app.WithStateDir(cfg.StateDir),
		app.WithTarget(cfg.Target),
	)
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("start service: %w", err)
	}
	defer svc.Stop()

	log := logger.Get()
	log.Info(ctx, "seeding state",
		logger.String("stateDir", cfg.StateDir),
		logger.Int("opportunities", cfg.Opportunities),
	)

	stages := []string{"detected", "researching", "ready", "won"}

	for i := 0; i < cfg.Opportunities; i++ {
		tpl := opportunityPool[i%len(opportunityPool)]
		opp, err := svc.Pipeline().Add(ctx, model.Opportunity{
			Title:          tpl.title,
			Type:           tpl.kind,
			Source:         tpl.source,
			PotentialValue: tpl.value + float64(randInt(50)),
			Notes:          "seeded",
		})
		if err != nil {
			return fmt.Errorf("seed opportunity: %w", err)
		}

		// Spread opportunities across the stages, weighted to the front.
		if stage := stages[randInt(len(stages))]; stage != "detected" {
			if _, err := svc.Pipeline().Move(ctx, opp.ID, stage); err != nil {
				return fmt.Errorf("seed move: %w", err)
			}
		}
	}

	for i := 0; i < cfg.FeedEntries; i++ {
		tpl := feedPool[i%len(feedPool)]
		if err := svc.Feed().Append(ctx, tpl.agent, tpl.icon, tpl.message); err != nil {
			return fmt.Errorf("seed feed: %w", err)
		}
	}

	lastRun := model.Now().Format("2006-01-02T15:04:05Z07:00")
	runs := 4 + randInt(8)
	hits := randInt(4)
	for _, name := range []string{"job-scanner", "trading-scout"} {
		patch := &model.StatsPatch{LastRun: &lastRun, RunsToday: &runs, HitsToday: &hits}
		if err := svc.Agents().SetStatus(ctx, name, model.AgentIdle, patch); err != nil {
			return fmt.Errorf("seed agent %s: %w", name, err)
		}
	}

	if cfg.Balance > 0 {
		if _, err := svc.Ledger().SetBalance(ctx, cfg.Balance); err != nil {
			return fmt.Errorf("seed balance: %w", err)
		}
	}

	log.Info(ctx, "state seeded")
	return nil
}

func randInt(n int) int {
	if n <= 0 {
		return 0
	}
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}
