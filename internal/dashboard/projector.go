// Package dashboard projects the state documents into the read model
// the static dashboard consumes: one denormalized snapshot, rendered
// into a data.js file the page loads as a script.
package dashboard

import (
	"context"
	"fmt"

	"github.com/okian/warchest/internal/adapters/docstore"
	"github.com/okian/warchest/internal/domain/model"
	"github.com/okian/warchest/pkg/logger"
)

const (
	pipelineKey = "pipeline"
	feedKey     = "feed"
	boardKey    = "dashboard"

	defaultFeedCount = 20
)

// Snapshot is the denormalized dashboard read model. Field names match
// what the page's script expects.
type Snapshot struct {
	Balance        float64                      `json:"balance"`
	Target         float64                      `json:"target"`
	Progress       float64                      `json:"progress"`
	StartDate      string                       `json:"startDate"`
	LastUpdate     string                       `json:"lastUpdate"`
	Agents         map[string]model.AgentStatus `json:"agents"`
	Income         map[string]float64           `json:"income"`
	Pipeline       model.PipelineDoc            `json:"pipeline"`
	PipelineCounts map[string]int               `json:"pipelineCounts"`
	PipelineValue  float64                      `json:"pipelineValue"`
	Feed           []model.FeedEntry            `json:"feed"`
	NextActions    []string                     `json:"nextActions"`
}

// Projector builds snapshots from the document store.
type Projector struct {
	store     *docstore.Store
	target    float64
	startDate string
	feedCount int
	log       logger.Logger
}

// New creates a Projector over store.
func New(store *docstore.Store, opts ...Option) *Projector {
	p := &Projector{
		store:     store,
		feedCount: defaultFeedCount,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.log == nil {
		p.log = logger.Named("dashboard")
	}

	return p
}

// Project reads the three documents and joins them into one snapshot.
// Absent or corrupt documents contribute their empty shape, so the
// dashboard always renders.
func (p *Projector) Project(ctx context.Context) (Snapshot, error) {
	var pipeline model.PipelineDoc
	if err := p.store.LoadOrDefault(ctx, pipelineKey, &pipeline); err != nil {
		return Snapshot{}, fmt.Errorf("project pipeline: %w", err)
	}
	pipeline.EnsureDefaults()

	var feed model.FeedDoc
	if err := p.store.LoadOrDefault(ctx, feedKey, &feed); err != nil {
		return Snapshot{}, fmt.Errorf("project feed: %w", err)
	}
	feed.EnsureDefaults()

	var board model.BoardDoc
	if err := p.store.LoadOrDefault(ctx, boardKey, &board); err != nil {
		return Snapshot{}, fmt.Errorf("project board: %w", err)
	}
	board.EnsureDefaults(p.target, p.startDate)

	recent := feed.Entries
	if len(recent) > p.feedCount {
		recent = recent[:p.feedCount]
	}

	counts := make(map[string]int, len(model.TrackedStages))
	for stage, n := range pipeline.Counts() {
		counts[stage.String()] = n
	}

	lastUpdate := ""
	switch {
	case board.LastUpdate.After(pipeline.LastUpdate):
		lastUpdate = board.LastUpdate.Format("2006-01-02T15:04:05Z07:00")
	case !pipeline.LastUpdate.IsZero():
		lastUpdate = pipeline.LastUpdate.Format("2006-01-02T15:04:05Z07:00")
	}

	snap := Snapshot{
		Balance:        board.Balance,
		Target:         board.Target,
		Progress:       model.Progress(board.Balance, board.Target),
		StartDate:      board.StartDate,
		LastUpdate:     lastUpdate,
		Agents:         board.Agents,
		Income:         board.Income,
		Pipeline:       pipeline,
		PipelineCounts: counts,
		PipelineValue:  pipeline.TotalValue(),
		Feed:           recent,
		NextActions:    nextActions(&pipeline, &board),
	}
	return snap, nil
}

// nextActions derives short operator hints from the current state,
// highest leverage first.
func nextActions(pipeline *model.PipelineDoc, board *model.BoardDoc) []string {
	actions := []string{}

	if n := len(pipeline.Ready); n > 0 {
		actions = append(actions, fmt.Sprintf("Close %d ready opportunit%s", n, plural(n, "y", "ies")))
	}
	if n := len(pipeline.Researching); n > 0 {
		actions = append(actions, fmt.Sprintf("Finish research on %d lead%s", n, plural(n, "", "s")))
	}
	if n := len(pipeline.Detected); n > 0 {
		actions = append(actions, fmt.Sprintf("Triage %d detected lead%s", n, plural(n, "", "s")))
	}
	if board.Balance == 0 {
		actions = append(actions, "Record your first income")
	}

	empty := true
	for _, s := range model.TrackedStages {
		if len(*pipeline.StageList(s)) > 0 {
			empty = false
			break
		}
	}
	if empty {
		actions = append(actions, "Pipeline is empty, run the scanners")
	}
	return actions
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
