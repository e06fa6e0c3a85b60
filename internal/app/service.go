// Package service wires the document store and the domain managers
// into the single facade the CLI commands run against.
package service

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/okian/warchest/internal/adapters/docstore"
	"github.com/okian/warchest/internal/agents"
	"github.com/okian/warchest/internal/dashboard"
	"github.com/okian/warchest/internal/domain/dedupe"
	"github.com/okian/warchest/internal/feed"
	"github.com/okian/warchest/internal/ledger"
	"github.com/okian/warchest/internal/pipeline"
	"github.com/okian/warchest/pkg/logger"
	"github.com/okian/warchest/pkg/metrics"
)

// Service owns the state directory and every manager over it.
type Service struct {
	mu sync.RWMutex

	// Core components
	store     *docstore.Store
	pipeline  *pipeline.Manager
	feed      *feed.Log
	agents    *agents.Registry
	ledger    *ledger.Ledger
	projector *dashboard.Projector
	deduper   *dedupe.Registry

	// Configuration
	stateDir        string
	target          float64
	startDate       string
	feedCap         int
	feedCount       int
	lockTimeout     time.Duration
	lockRetry       time.Duration
	seenCacheSize   int
	metricsTextfile string

	// State
	started bool

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		stateDir:      "state",
		target:        2399,
		startDate:     "2026-02-04",
		feedCap:       100,
		feedCount:     20,
		lockTimeout:   5 * time.Second,
		lockRetry:     25 * time.Millisecond,
		seenCacheSize: 5000,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start creates the state directory and wires the managers. Safe to
// call more than once.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	if err := os.MkdirAll(s.stateDir, 0o755); err != nil {
		return err
	}

	s.store = docstore.New(s.stateDir,
		docstore.WithLockTimeout(s.lockTimeout),
		docstore.WithLockRetry(s.lockRetry),
		docstore.WithLogger(s.logger),
	)
	s.pipeline = pipeline.New(s.store)
	s.feed = feed.New(s.store, feed.WithCapacity(s.feedCap))
	s.agents = agents.New(s.store,
		agents.WithTarget(s.target),
		agents.WithStartDate(s.startDate),
	)
	s.ledger = ledger.New(s.store,
		ledger.WithTarget(s.target),
		ledger.WithStartDate(s.startDate),
	)
	s.projector = dashboard.New(s.store,
		dashboard.WithTarget(s.target),
		dashboard.WithStartDate(s.startDate),
		dashboard.WithFeedCount(s.feedCount),
	)
	s.deduper = dedupe.New(s.store, dedupe.WithCacheSize(s.seenCacheSize))

	s.started = true
	s.logger.Debug(ctx, "state service started",
		logger.String("stateDir", s.stateDir),
		logger.Float64("target", s.target),
	)

	return nil
}

// Stop flushes process metrics when a textfile path is configured.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	if s.metricsTextfile != "" {
		if err := metrics.WriteTextfile(s.metricsTextfile); err != nil {
			s.logger.Warn(context.Background(), "metrics textfile export failed",
				logger.String("path", s.metricsTextfile),
				logger.Error(err),
			)
		}
	}

	s.started = false
}

// Pipeline returns the opportunity pipeline manager.
func (s *Service) Pipeline() *pipeline.Manager {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pipeline
}

// Feed returns the activity feed.
func (s *Service) Feed() *feed.Log {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.feed
}

// Agents returns the agent status registry.
func (s *Service) Agents() *agents.Registry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.agents
}

// Ledger returns the balance ledger.
func (s *Service) Ledger() *ledger.Ledger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger
}

// Dashboard returns the dashboard projector.
func (s *Service) Dashboard() *dashboard.Projector {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.projector
}

// Deduper returns the scanner deduplication registry.
func (s *Service) Deduper() *dedupe.Registry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.deduper
}

// Store returns the underlying document store.
func (s *Service) Store() *docstore.Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store
}
