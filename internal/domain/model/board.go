package model

import (
	"math"
	"time"
)

// Agent status values. The field stays an open string so agents can
// report richer states without a schema change.
const (
	AgentIdle    = "idle"
	AgentRunning = "running"
	AgentError   = "error"
)

// AgentStatus is one agent's record on the board. LastRun is kept as
// the ISO timestamp string the agents write, not parsed.
type AgentStatus struct {
	Status      string `json:"status"`
	LastRun     string `json:"lastRun,omitempty"`
	RunsToday   int    `json:"runsToday,omitempty"`
	HitsToday   int    `json:"hitsToday,omitempty"`
	QueueLength int    `json:"queueLength,omitempty"`
}

// StatsPatch is a shallow key-wise patch for an AgentStatus. Nil fields
// leave the existing value untouched.
type StatsPatch struct {
	LastRun     *string
	RunsToday   *int
	HitsToday   *int
	QueueLength *int
}

// Apply merges the patch into s.
func (p *StatsPatch) Apply(s *AgentStatus) {
	if p == nil {
		return
	}
	if p.LastRun != nil {
		s.LastRun = *p.LastRun
	}
	if p.RunsToday != nil {
		s.RunsToday = *p.RunsToday
	}
	if p.HitsToday != nil {
		s.HitsToday = *p.HitsToday
	}
	if p.QueueLength != nil {
		s.QueueLength = *p.QueueLength
	}
}

// BoardDoc is the persisted ledger/status document: the balance against
// its target, categorized income totals, and per-agent status records.
type BoardDoc struct {
	Balance    float64                `json:"balance"`
	Target     float64                `json:"target"`
	StartDate  string                 `json:"startDate"`
	LastUpdate time.Time              `json:"lastUpdate"`
	Agents     map[string]AgentStatus `json:"agents"`
	Income     map[string]float64     `json:"income"`
}

// EnsureDefaults initializes an empty board. Target and start date only
// fill in when the document carries none, so an operator-set target is
// never clobbered.
func (d *BoardDoc) EnsureDefaults(target float64, startDate string) {
	if d.Agents == nil {
		d.Agents = map[string]AgentStatus{}
	}
	if d.Income == nil {
		d.Income = map[string]float64{"freelance": 0, "trading": 0, "other": 0}
	}
	if d.Target == 0 {
		d.Target = target
	}
	if d.StartDate == "" {
		d.StartDate = startDate
	}
}

// Progress returns balance/target as a percentage rounded to one
// decimal place, and 0 when the target is unset or nonsensical.
func Progress(balance, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return math.Round(balance/target*1000) / 10
}
