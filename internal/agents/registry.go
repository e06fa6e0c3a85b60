// Package agents maintains per-agent status records on the shared
// board document, so the dashboard can show which agents ran, when,
// and how they are doing.
package agents

import (
	"context"
	"fmt"

	"github.com/okian/warchest/internal/adapters/docstore"
	"github.com/okian/warchest/internal/domain/model"
	"github.com/okian/warchest/pkg/logger"
)

const docKey = "dashboard"

// Registry owns the agent records on the board document.
type Registry struct {
	store     *docstore.Store
	target    float64
	startDate string
	log       logger.Logger
}

// New creates a Registry over store.
func New(store *docstore.Store, opts ...Option) *Registry {
	r := &Registry{store: store}

	for _, opt := range opts {
		opt(r)
	}

	if r.log == nil {
		r.log = logger.Named("agents")
	}

	return r
}

// SetStatus updates one agent's status, creating its record on first
// use, and applies the optional stats patch under the same lock.
func (r *Registry) SetStatus(ctx context.Context, name, status string, patch *model.StatsPatch) error {
	var doc model.BoardDoc
	err := r.store.Update(ctx, docKey, &doc, func() error {
		doc.EnsureDefaults(r.target, r.startDate)

		agent, ok := doc.Agents[name]
		if !ok {
			agent = model.AgentStatus{Status: model.AgentIdle}
		}
		agent.Status = status
		patch.Apply(&agent)

		doc.Agents[name] = agent
		doc.LastUpdate = model.Now()
		return nil
	})
	if err != nil {
		return fmt.Errorf("set agent %q status: %w", name, err)
	}

	r.log.Info(ctx, "agent status updated",
		logger.String("agent", name),
		logger.String("status", status))
	return nil
}

// Get returns one agent's record. The second return is false when the
// agent has never reported.
func (r *Registry) Get(ctx context.Context, name string) (model.AgentStatus, bool, error) {
	statuses, err := r.All(ctx)
	if err != nil {
		return model.AgentStatus{}, false, err
	}
	status, ok := statuses[name]
	return status, ok, nil
}

// All returns every agent record on the board.
func (r *Registry) All(ctx context.Context) (map[string]model.AgentStatus, error) {
	var doc model.BoardDoc
	if err := r.store.LoadOrDefault(ctx, docKey, &doc); err != nil {
		return nil, fmt.Errorf("load board: %w", err)
	}
	doc.EnsureDefaults(r.target, r.startDate)
	return doc.Agents, nil
}
