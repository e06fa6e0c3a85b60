// Package pipeline manages the opportunity pipeline document: adding
// fresh leads and moving them through detected, researching, ready and
// won. Moving to passed discards the opportunity.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/okian/warchest/internal/adapters/docstore"
	"github.com/okian/warchest/internal/domain/model"
	"github.com/okian/warchest/pkg/logger"
	"github.com/okian/warchest/pkg/metrics"
)

const docKey = "pipeline"

// Defaults applied to opportunities added without a type or source,
// matching what the scanners omit.
const (
	defaultType   = "gig"
	defaultSource = "scanner"
)

// ErrInvalidStage marks a stage name outside the known set.
var ErrInvalidStage = errors.New("invalid stage")

// Manager owns the pipeline document.
type Manager struct {
	store *docstore.Store
	log   logger.Logger
}

// New creates a Manager over store.
func New(store *docstore.Store, opts ...Option) *Manager {
	m := &Manager{store: store}

	for _, opt := range opts {
		opt(m)
	}

	if m.log == nil {
		m.log = logger.Named("pipeline")
	}

	return m
}

// Add appends a new opportunity to the detected stage and returns it
// with its generated id and timestamps filled in.
func (m *Manager) Add(ctx context.Context, opp model.Opportunity) (model.Opportunity, error) {
	opp.ID = shortID()
	opp.Status = model.StageDetected.String()
	opp.DetectedAt = model.Now()
	if opp.Type == "" {
		opp.Type = defaultType
	}
	if opp.Source == "" {
		opp.Source = defaultSource
	}

	var doc model.PipelineDoc
	err := m.store.Update(ctx, docKey, &doc, func() error {
		doc.EnsureDefaults()
		doc.Detected = append(doc.Detected, opp)
		doc.LastUpdate = model.Now()
		return nil
	})
	if err != nil {
		return model.Opportunity{}, fmt.Errorf("add opportunity: %w", err)
	}

	metrics.RecordOpportunityAdded()
	m.updateGauges(&doc)
	m.log.Info(ctx, "opportunity added",
		logger.String("id", opp.ID),
		logger.String("title", opp.Title),
		logger.Float64("value", opp.PotentialValue))

	return opp, nil
}

// Move transfers the opportunity with id to the named stage and reports
// whether it was found. Moving to passed removes it from the pipeline.
// An unknown stage name is an error; an unknown id is not.
func (m *Manager) Move(ctx context.Context, id, stageName string) (bool, error) {
	stage, err := model.ParseStage(stageName)
	if err != nil {
		return false, fmt.Errorf("%w: %q", ErrInvalidStage, stageName)
	}

	found := false

	var doc model.PipelineDoc
	err = m.store.Update(ctx, docKey, &doc, func() error {
		doc.EnsureDefaults()

		for _, from := range model.TrackedStages {
			list := doc.StageList(from)
			for i, opp := range *list {
				if opp.ID != id {
					continue
				}
				found = true

				*list = append((*list)[:i], (*list)[i+1:]...)
				if dest := doc.StageList(stage); dest != nil {
					opp.Status = stage.String()
					*dest = append(*dest, opp)
				}
				doc.LastUpdate = model.Now()
				return nil
			}
		}
		return docstore.ErrNoChange
	})
	if err != nil {
		return false, fmt.Errorf("move opportunity %q: %w", id, err)
	}

	if found {
		metrics.RecordOpportunityMove(stage.String())
		m.updateGauges(&doc)
		m.log.Info(ctx, "opportunity moved",
			logger.String("id", id),
			logger.String("stage", stage.String()))
	} else {
		m.log.Warn(ctx, "opportunity not found", logger.String("id", id))
	}

	return found, nil
}

// Get returns the opportunity with id and the stage currently holding
// it. The second return is false when no stage holds it.
func (m *Manager) Get(ctx context.Context, id string) (model.Opportunity, model.Stage, bool, error) {
	doc, err := m.All(ctx)
	if err != nil {
		return model.Opportunity{}, "", false, err
	}

	for _, s := range model.TrackedStages {
		for _, opp := range *doc.StageList(s) {
			if opp.ID == id {
				return opp, s, true, nil
			}
		}
	}
	return model.Opportunity{}, "", false, nil
}

// All returns the current pipeline document. An uninitialized or
// corrupt document reads as empty.
func (m *Manager) All(ctx context.Context) (model.PipelineDoc, error) {
	var doc model.PipelineDoc
	if err := m.store.LoadOrDefault(ctx, docKey, &doc); err != nil {
		return model.PipelineDoc{}, fmt.Errorf("load pipeline: %w", err)
	}
	doc.EnsureDefaults()
	return doc, nil
}

func (m *Manager) updateGauges(doc *model.PipelineDoc) {
	for stage, count := range doc.Counts() {
		metrics.UpdatePipelineCount(stage.String(), count)
	}
	metrics.UpdatePipelineValue(doc.TotalValue())
}

// shortID returns the 8-character opportunity id format the documents
// have always used.
func shortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
