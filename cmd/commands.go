package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	app "github.com/okian/warchest/internal/app"
	"github.com/okian/warchest/internal/config"
	"github.com/okian/warchest/internal/domain/model"
)

var errUnknownCommand = errors.New("unknown command")

func dispatch(ctx context.Context, svc *app.Service, cfg *config.Config, command string, args []string) error {
	switch command {
	case "status":
		return runStatus(ctx, svc)
	case "pipeline":
		return runPipeline(ctx, svc)
	case "add":
		return runAdd(ctx, svc, args)
	case "move":
		return runMove(ctx, svc, args)
	case "log":
		return runLog(ctx, svc, args)
	case "balance":
		return runBalance(ctx, svc, args)
	case "income":
		return runIncome(ctx, svc, args)
	case "agent":
		return runAgent(ctx, svc, args)
	case "seen":
		return runSeen(ctx, svc, args)
	case "sync":
		return runSync(ctx, svc, cfg)
	default:
		return fmt.Errorf("%w: %q, see 'warchest help'", errUnknownCommand, command)
	}
}

func runStatus(ctx context.Context, svc *app.Service) error {
	sum, err := svc.Ledger().Summary(ctx)
	if err != nil {
		return err
	}
	doc, err := svc.Pipeline().All(ctx)
	if err != nil {
		return err
	}
	statuses, err := svc.Agents().All(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("💰 Balance: $%.2f / $%.2f (%.1f%%)\n", sum.Balance, sum.Target, sum.Progress)
	fmt.Printf("📊 Pipeline: ")
	counts := doc.Counts()
	parts := make([]string, 0, len(model.TrackedStages))
	for _, s := range model.TrackedStages {
		parts = append(parts, fmt.Sprintf("%s=%d", s, counts[s]))
	}
	fmt.Printf("%s (potential $%.2f)\n", strings.Join(parts, " "), doc.TotalValue())

	if len(statuses) > 0 {
		fmt.Println("🤖 Agents:")
		for name, status := range statuses {
			line := fmt.Sprintf("   %-16s %s", name, status.Status)
			if status.LastRun != "" {
				line += "  last run " + status.LastRun
			}
			fmt.Println(line)
		}
	}
	return nil
}

func runPipeline(ctx context.Context, svc *app.Service) error {
	doc, err := svc.Pipeline().All(ctx)
	if err != nil {
		return err
	}

	for _, s := range model.TrackedStages {
		opps := *doc.StageList(s)
		fmt.Printf("── %s (%d)\n", s, len(opps))
		for _, opp := range opps {
			fmt.Printf("   %s  $%-8.2f %s  [%s/%s]\n", opp.ID, opp.PotentialValue, opp.Title, opp.Type, opp.Source)
		}
	}
	return nil
}

func runAdd(ctx context.Context, svc *app.Service, args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	title := fs.String("title", "", "opportunity title (required)")
	value := fs.Float64("value", 0, "potential value in dollars")
	kind := fs.String("type", "", "opportunity type (default gig)")
	source := fs.String("source", "", "detecting agent (default scanner)")
	url := fs.String("url", "", "reference URL")
	notes := fs.String("notes", "", "free-form notes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *title == "" {
		return errors.New("add: -title is required")
	}

	opp, err := svc.Pipeline().Add(ctx, model.Opportunity{
		Title:          *title,
		PotentialValue: *value,
		Type:           *kind,
		Source:         *source,
		URL:            *url,
		Notes:          *notes,
	})
	if err != nil {
		return err
	}

	if err := svc.Feed().Append(ctx, opp.Source, "🎯", fmt.Sprintf("New opportunity: %s ($%.2f)", opp.Title, opp.PotentialValue)); err != nil {
		return err
	}

	fmt.Printf("✅ Added: %s (%s)\n", opp.Title, opp.ID)
	return nil
}

func runMove(ctx context.Context, svc *app.Service, args []string) error {
	fs := flag.NewFlagSet("move", flag.ContinueOnError)
	id := fs.String("id", "", "opportunity id (required)")
	stage := fs.String("stage", "", "destination stage (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" || *stage == "" {
		return errors.New("move: -id and -stage are required")
	}

	found, err := svc.Pipeline().Move(ctx, *id, *stage)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("move: opportunity %q not found", *id)
	}

	icon := "📦"
	if *stage == "won" {
		icon = "🏆"
	}
	if err := svc.Feed().Append(ctx, "operator", icon, fmt.Sprintf("Opportunity %s moved to %s", *id, *stage)); err != nil {
		return err
	}

	fmt.Printf("%s Moved %s to %s\n", icon, *id, *stage)
	return nil
}

func runLog(ctx context.Context, svc *app.Service, args []string) error {
	fs := flag.NewFlagSet("log", flag.ContinueOnError)
	agent := fs.String("agent", "", "reporting agent (default system)")
	icon := fs.String("icon", "", "entry icon")
	message := fs.String("message", "", "entry text (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *message == "" {
		return errors.New("log: -message is required")
	}

	if err := svc.Feed().Append(ctx, *agent, *icon, *message); err != nil {
		return err
	}
	fmt.Printf("📝 Logged: %s\n", *message)
	return nil
}

func runBalance(ctx context.Context, svc *app.Service, args []string) error {
	fs := flag.NewFlagSet("balance", flag.ContinueOnError)
	set := fs.Float64("set", -1, "new absolute balance (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *set < 0 {
		return errors.New("balance: -set is required and must not be negative")
	}

	sum, err := svc.Ledger().SetBalance(ctx, *set)
	if err != nil {
		return err
	}

	if err := svc.Feed().Append(ctx, "operator", "💰", fmt.Sprintf("Balance set to $%.2f", sum.Balance)); err != nil {
		return err
	}

	fmt.Printf("💰 Balance: $%.2f / $%.2f (%.1f%%)\n", sum.Balance, sum.Target, sum.Progress)
	return nil
}

func runIncome(ctx context.Context, svc *app.Service, args []string) error {
	fs := flag.NewFlagSet("income", flag.ContinueOnError)
	amount := fs.Float64("amount", 0, "income amount (required, positive)")
	category := fs.String("category", "", "income category (default other)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *amount <= 0 {
		return errors.New("income: -amount must be positive")
	}

	sum, err := svc.Ledger().AddIncome(ctx, *amount, *category)
	if err != nil {
		return err
	}

	cat := *category
	if cat == "" {
		cat = "other"
	}
	if err := svc.Feed().Append(ctx, "operator", "💵", fmt.Sprintf("Income: $%.2f (%s)", *amount, cat)); err != nil {
		return err
	}

	fmt.Printf("💵 Recorded $%.2f (%s), balance $%.2f (%.1f%%)\n", *amount, cat, sum.Balance, sum.Progress)
	return nil
}

func runAgent(ctx context.Context, svc *app.Service, args []string) error {
	fs := flag.NewFlagSet("agent", flag.ContinueOnError)
	name := fs.String("name", "", "agent name (required)")
	status := fs.String("status", "", "status: idle, running, error (required)")
	lastRun := fs.String("last-run", "", "last run timestamp")
	runs := fs.Int("runs", -1, "runs today")
	hits := fs.Int("hits", -1, "hits today")
	queue := fs.Int("queue", -1, "queue length")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" || *status == "" {
		return errors.New("agent: -name and -status are required")
	}

	patch := &model.StatsPatch{}
	if *lastRun != "" {
		patch.LastRun = lastRun
	}
	if *runs >= 0 {
		patch.RunsToday = runs
	}
	if *hits >= 0 {
		patch.HitsToday = hits
	}
	if *queue >= 0 {
		patch.QueueLength = queue
	}

	if err := svc.Agents().SetStatus(ctx, *name, *status, patch); err != nil {
		return err
	}
	fmt.Printf("🤖 %s: %s\n", *name, *status)
	return nil
}

func runSeen(ctx context.Context, svc *app.Service, args []string) error {
	fs := flag.NewFlagSet("seen", flag.ContinueOnError)
	id := fs.String("id", "", "identifier to check (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("seen: -id is required")
	}

	seen, err := svc.Deduper().SeenAndRecord(ctx, *id)
	if err != nil {
		return err
	}
	if seen {
		fmt.Printf("♻️  Already seen: %s\n", *id)
	} else {
		fmt.Printf("🆕 New: %s\n", *id)
	}
	return nil
}

func runSync(ctx context.Context, svc *app.Service, cfg *config.Config) error {
	snap, err := svc.Dashboard().WriteDataJS(ctx, cfg.DashboardDataJS)
	if err != nil {
		return err
	}
	fmt.Printf("🔄 Dashboard synced: $%.2f (%.1f%%), %d feed entries -> %s\n",
		snap.Balance, snap.Progress, len(snap.Feed), cfg.DashboardDataJS)
	return nil
}
