// Package ledger manages the balance side of the board document:
// setting the absolute balance, recording categorized income, and
// reporting progress against the target.
package ledger

import (
	"context"
	"fmt"

	"github.com/okian/warchest/internal/adapters/docstore"
	"github.com/okian/warchest/internal/domain/model"
	"github.com/okian/warchest/pkg/logger"
	"github.com/okian/warchest/pkg/metrics"
)

const docKey = "dashboard"

// Default income category for entries recorded without one.
const defaultCategory = "other"

// Summary is the ledger's read view: the balance against its target.
type Summary struct {
	Balance  float64
	Target   float64
	Progress float64
}

// Ledger owns the balance and income fields on the board document.
type Ledger struct {
	store     *docstore.Store
	target    float64
	startDate string
	log       logger.Logger
}

// New creates a Ledger over store.
func New(store *docstore.Store, opts ...Option) *Ledger {
	l := &Ledger{store: store}

	for _, opt := range opts {
		opt(l)
	}

	if l.log == nil {
		l.log = logger.Named("ledger")
	}

	return l
}

// SetBalance overwrites the balance and returns the resulting summary.
func (l *Ledger) SetBalance(ctx context.Context, balance float64) (Summary, error) {
	var doc model.BoardDoc
	err := l.store.Update(ctx, docKey, &doc, func() error {
		doc.EnsureDefaults(l.target, l.startDate)
		doc.Balance = balance
		doc.LastUpdate = model.Now()
		return nil
	})
	if err != nil {
		return Summary{}, fmt.Errorf("set balance: %w", err)
	}

	metrics.UpdateBalance(balance)
	l.log.Info(ctx, "balance set",
		logger.Float64("balance", balance),
		logger.Float64("target", doc.Target))

	return summarize(&doc), nil
}

// AddIncome records an income amount against a category, increments the
// balance by the same amount in the same transaction, and returns the
// resulting summary. An empty category books under "other".
func (l *Ledger) AddIncome(ctx context.Context, amount float64, category string) (Summary, error) {
	if category == "" {
		category = defaultCategory
	}

	var doc model.BoardDoc
	err := l.store.Update(ctx, docKey, &doc, func() error {
		doc.EnsureDefaults(l.target, l.startDate)
		doc.Income[category] += amount
		doc.Balance += amount
		doc.LastUpdate = model.Now()
		return nil
	})
	if err != nil {
		return Summary{}, fmt.Errorf("add income: %w", err)
	}

	metrics.RecordIncome(category, amount)
	metrics.UpdateBalance(doc.Balance)
	l.log.Info(ctx, "income recorded",
		logger.Float64("amount", amount),
		logger.String("category", category),
		logger.Float64("balance", doc.Balance))

	return summarize(&doc), nil
}

// Summary returns the current balance view without writing anything.
func (l *Ledger) Summary(ctx context.Context) (Summary, error) {
	var doc model.BoardDoc
	if err := l.store.LoadOrDefault(ctx, docKey, &doc); err != nil {
		return Summary{}, fmt.Errorf("load board: %w", err)
	}
	doc.EnsureDefaults(l.target, l.startDate)
	return summarize(&doc), nil
}

// Income returns the categorized income totals.
func (l *Ledger) Income(ctx context.Context) (map[string]float64, error) {
	var doc model.BoardDoc
	if err := l.store.LoadOrDefault(ctx, docKey, &doc); err != nil {
		return nil, fmt.Errorf("load board: %w", err)
	}
	doc.EnsureDefaults(l.target, l.startDate)
	return doc.Income, nil
}

func summarize(doc *model.BoardDoc) Summary {
	return Summary{
		Balance:  doc.Balance,
		Target:   doc.Target,
		Progress: model.Progress(doc.Balance, doc.Target),
	}
}
