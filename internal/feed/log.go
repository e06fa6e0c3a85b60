// Package feed maintains the shared activity feed: a capped,
// newest-first list of timestamped messages every agent appends to.
package feed

import (
	"context"
	"fmt"

	"github.com/okian/warchest/internal/adapters/docstore"
	"github.com/okian/warchest/internal/domain/model"
	"github.com/okian/warchest/pkg/logger"
	"github.com/okian/warchest/pkg/metrics"
)

const (
	docKey = "feed"

	defaultCapacity    = 100
	defaultRecentCount = 20
	defaultEntryIcon   = "📌"
	defaultEntryAgent  = "system"
)

// Log owns the feed document.
type Log struct {
	store    *docstore.Store
	capacity int
	log      logger.Logger
}

// New creates a Log over store.
func New(store *docstore.Store, opts ...Option) *Log {
	l := &Log{
		store:    store,
		capacity: defaultCapacity,
	}

	for _, opt := range opts {
		opt(l)
	}

	if l.log == nil {
		l.log = logger.Named("feed")
	}

	return l
}

// Append prepends a new entry and trims the feed to capacity. Empty
// agent and icon fall back to defaults so a bare message still renders.
func (l *Log) Append(ctx context.Context, agent, icon, message string) error {
	if agent == "" {
		agent = defaultEntryAgent
	}
	if icon == "" {
		icon = defaultEntryIcon
	}

	entry := model.FeedEntry{
		Timestamp: model.Now(),
		Agent:     agent,
		Icon:      icon,
		Message:   message,
	}

	var doc model.FeedDoc
	err := l.store.Update(ctx, docKey, &doc, func() error {
		doc.Entries = append([]model.FeedEntry{entry}, doc.Entries...)
		if len(doc.Entries) > l.capacity {
			trimmed := len(doc.Entries) - l.capacity
			doc.Entries = doc.Entries[:l.capacity]
			metrics.RecordFeedTrimmed(trimmed)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("append feed entry: %w", err)
	}

	metrics.RecordFeedEntry()
	l.log.Debug(ctx, "feed entry appended",
		logger.String("agent", agent),
		logger.String("message", message))
	return nil
}

// Recent returns up to n entries, newest first. n <= 0 selects the
// default display count; n beyond the stored entries clamps.
func (l *Log) Recent(ctx context.Context, n int) ([]model.FeedEntry, error) {
	if n <= 0 {
		n = defaultRecentCount
	}

	var doc model.FeedDoc
	if err := l.store.LoadOrDefault(ctx, docKey, &doc); err != nil {
		return nil, fmt.Errorf("load feed: %w", err)
	}
	doc.EnsureDefaults()

	if n > len(doc.Entries) {
		n = len(doc.Entries)
	}
	return doc.Entries[:n], nil
}

// All returns the whole retained feed, newest first.
func (l *Log) All(ctx context.Context) ([]model.FeedEntry, error) {
	var doc model.FeedDoc
	if err := l.store.LoadOrDefault(ctx, docKey, &doc); err != nil {
		return nil, fmt.Errorf("load feed: %w", err)
	}
	doc.EnsureDefaults()
	return doc.Entries, nil
}
