// Package model contains the domain documents shared by every agent
// process: the opportunity pipeline, the activity feed, and the
// balance/agents board. JSON field names match the on-disk documents.
package model

import "time"

// Opportunity represents one pursuable lead moving through the pipeline.
type Opportunity struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"` // trade | gig | options, open set in practice
	Title          string    `json:"title"`
	Source         string    `json:"source"`
	URL            string    `json:"url"`
	PotentialValue float64   `json:"potentialValue"`
	DetectedAt     time.Time `json:"detectedAt"`
	Status         string    `json:"status"` // current stage name
	Notes          string    `json:"notes"`
}

// PipelineDoc is the persisted pipeline document: one ordered list per
// retained stage. An opportunity lives in at most one list at a time.
type PipelineDoc struct {
	Detected    []Opportunity `json:"detected"`
	Researching []Opportunity `json:"researching"`
	Ready       []Opportunity `json:"ready"`
	Won         []Opportunity `json:"won"`
	LastUpdate  time.Time     `json:"lastUpdate"`
}

// StageList returns the list backing a retained stage, or nil for
// passed and unknown stages.
func (d *PipelineDoc) StageList(s Stage) *[]Opportunity {
	switch s {
	case StageDetected:
		return &d.Detected
	case StageResearching:
		return &d.Researching
	case StageReady:
		return &d.Ready
	case StageWon:
		return &d.Won
	}
	return nil
}

// EnsureDefaults makes the stage lists non-nil so an empty pipeline
// serializes as [] rather than null, matching the seeded state files.
func (d *PipelineDoc) EnsureDefaults() {
	if d.Detected == nil {
		d.Detected = []Opportunity{}
	}
	if d.Researching == nil {
		d.Researching = []Opportunity{}
	}
	if d.Ready == nil {
		d.Ready = []Opportunity{}
	}
	if d.Won == nil {
		d.Won = []Opportunity{}
	}
}

// Counts returns the per-stage sizes of the retained lists.
func (d *PipelineDoc) Counts() map[Stage]int {
	counts := make(map[Stage]int, len(TrackedStages))
	for _, s := range TrackedStages {
		counts[s] = len(*d.StageList(s))
	}
	return counts
}

// TotalValue sums PotentialValue across every retained stage.
func (d *PipelineDoc) TotalValue() float64 {
	var total float64
	for _, s := range TrackedStages {
		for _, opp := range *d.StageList(s) {
			total += opp.PotentialValue
		}
	}
	return total
}

// Now returns the wall clock in UTC truncated to whole seconds, the
// resolution the documents are stored at.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
