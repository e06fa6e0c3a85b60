package model

import "fmt"

// Stage names one phase of the opportunity pipeline.
type Stage string

// Pipeline stages. The first four are retained collections; passed is a
// terminal sink that discards the record.
const (
	StageDetected    Stage = "detected"
	StageResearching Stage = "researching"
	StageReady       Stage = "ready"
	StageWon         Stage = "won"
	StagePassed      Stage = "passed"
)

// TrackedStages lists the retained stages in the fixed order Move and
// Get scan them. passed is deliberately absent: it is never stored.
var TrackedStages = []Stage{StageDetected, StageResearching, StageReady, StageWon}

// Valid reports whether s is one of the closed set of stage names.
func (s Stage) Valid() bool {
	switch s {
	case StageDetected, StageResearching, StageReady, StageWon, StagePassed:
		return true
	}
	return false
}

func (s Stage) String() string { return string(s) }

// ParseStage validates a raw stage name.
func ParseStage(raw string) (Stage, error) {
	s := Stage(raw)
	if !s.Valid() {
		return "", fmt.Errorf("invalid stage %q (must be one of detected, researching, ready, won, passed)", raw)
	}
	return s, nil
}
