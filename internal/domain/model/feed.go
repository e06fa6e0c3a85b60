package model

import "time"

// FeedEntry is one immutable line in the activity feed.
type FeedEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Agent     string    `json:"agent"`
	Icon      string    `json:"icon"`
	Message   string    `json:"message"`
}

// FeedDoc is the persisted feed document, newest entry first.
type FeedDoc struct {
	Entries []FeedEntry `json:"entries"`
}

// EnsureDefaults makes the entry list non-nil.
func (d *FeedDoc) EnsureDefaults() {
	if d.Entries == nil {
		d.Entries = []FeedEntry{}
	}
}
