// Package dedupe tracks identifiers the scanners have already surfaced,
// so a lead that shows up in every scan does not re-enter the pipeline
// on every run. The seen set is itself a store document, shared by all
// scanner processes under the same locking rules as everything else.
package dedupe

import (
	"context"

	"github.com/okian/warchest/internal/adapters/docstore"
)

const (
	docKey = "seen"

	defaultCacheSize = 5000
)

// SeenDoc is the persisted seen-identifier document, oldest first so
// trimming drops the entries least likely to reappear.
type SeenDoc struct {
	Seen []string `json:"seen"`
}

// Registry is a persistent seen-set over the document store.
type Registry struct {
	store   *docstore.Store
	maxSize int
}

// New creates a Registry backed by store.
func New(store *docstore.Store, opts ...Option) *Registry {
	r := &Registry{
		store:   store,
		maxSize: defaultCacheSize,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// SeenAndRecord reports whether id was seen before and, when it was
// not, records it. The check and the record happen under one lock so
// two concurrent scanners cannot both claim a new id.
func (r *Registry) SeenAndRecord(ctx context.Context, id string) (bool, error) {
	seen := false

	var doc SeenDoc
	err := r.store.Update(ctx, docKey, &doc, func() error {
		for _, existing := range doc.Seen {
			if existing == id {
				seen = true
				return docstore.ErrNoChange
			}
		}

		doc.Seen = append(doc.Seen, id)
		if overflow := len(doc.Seen) - r.maxSize; overflow > 0 {
			doc.Seen = doc.Seen[overflow:]
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return seen, nil
}

// Unrecord removes id from the seen set, letting it be surfaced again.
func (r *Registry) Unrecord(ctx context.Context, id string) error {
	var doc SeenDoc
	return r.store.Update(ctx, docKey, &doc, func() error {
		for i, existing := range doc.Seen {
			if existing == id {
				doc.Seen = append(doc.Seen[:i], doc.Seen[i+1:]...)
				return nil
			}
		}
		return docstore.ErrNoChange
	})
}

// Size returns the number of recorded identifiers.
func (r *Registry) Size(ctx context.Context) (int, error) {
	var doc SeenDoc
	if err := r.store.LoadOrDefault(ctx, docKey, &doc); err != nil {
		return 0, err
	}
	return len(doc.Seen), nil
}
