package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ScoringKind is the type tag of a scoring descriptor.
type ScoringKind string

const (
	ScoringPoints  ScoringKind = "points"
	ScoringCluster ScoringKind = "cluster"
	ScoringRate    ScoringKind = "rate"
	ScoringStreak  ScoringKind = "streak"
	ScoringLadder  ScoringKind = "ladder"
)

// Scoring describes how results for a drill should be interpreted.
// Implementations: PointsScoring, ClusterScoring, RateScoring,
// StreakScoring, LadderScoring and OpaqueScoring.
type Scoring interface {
	Kind() ScoringKind
	// Metric is a short label for what a recorded score measures.
	Metric() string
}

// PointsScoring awards points per attempt up to Max.
type PointsScoring struct {
	Max    int `yaml:"max"`
	Rounds int `yaml:"rounds"`
}

func (PointsScoring) Kind() ScoringKind { return ScoringPoints }

func (s PointsScoring) Metric() string {
	if s.Max > 0 {
		return fmt.Sprintf("points (max %d)", s.Max)
	}
	return "points"
}

// ClusterScoring measures the spread of a group of balls.
type ClusterScoring struct {
	Balls int    `yaml:"balls"`
	Unit  string `yaml:"unit"`
}

func (ClusterScoring) Kind() ScoringKind { return ScoringCluster }

func (s ClusterScoring) Metric() string {
	if s.Unit != "" {
		return "cluster width (" + s.Unit + ")"
	}
	return "cluster width"
}

// RateScoring counts successes out of a fixed number of attempts.
type RateScoring struct {
	Attempts int `yaml:"attempts"`
}

func (RateScoring) Kind() ScoringKind { return ScoringRate }

func (s RateScoring) Metric() string { return "made/attempts" }

// Rate parses a "made/attempts" score. ok is false for any other shape.
func (s RateScoring) Rate(score string) (rate float64, ok bool) {
	made, attempts, found := strings.Cut(strings.TrimSpace(score), "/")
	if !found {
		return 0, false
	}
	m, err := strconv.ParseFloat(strings.TrimSpace(made), 64)
	if err != nil {
		return 0, false
	}
	a, err := strconv.ParseFloat(strings.TrimSpace(attempts), 64)
	if err != nil || a <= 0 || m < 0 {
		return 0, false
	}
	return m / a, true
}

// StreakScoring records the longest run of consecutive successes.
type StreakScoring struct {
	Goal int `yaml:"goal"`
}

func (StreakScoring) Kind() ScoringKind { return ScoringStreak }

func (s StreakScoring) Metric() string { return "longest streak" }

// LadderScoring counts how many rungs of a distance ladder were cleared.
type LadderScoring struct {
	Rungs []int  `yaml:"rungs"`
	Unit  string `yaml:"unit"`
}

func (LadderScoring) Kind() ScoringKind { return ScoringLadder }

func (s LadderScoring) Metric() string {
	return fmt.Sprintf("rungs cleared of %d", len(s.Rungs))
}

// OpaqueScoring keeps descriptors with a type tag this build does not know.
type OpaqueScoring struct {
	Type   string
	Fields map[string]any
}

func (s OpaqueScoring) Kind() ScoringKind { return ScoringKind(s.Type) }

func (s OpaqueScoring) Metric() string { return s.Type }

// decodeScoring picks the scoring variant from the node's type tag.
// A missing node yields a nil Scoring.
func decodeScoring(node *yaml.Node) (Scoring, error) {
	if node == nil || node.Kind == 0 {
		return nil, nil
	}
	var head struct {
		Type string `yaml:"type"`
	}
	if err := node.Decode(&head); err != nil {
		return nil, fmt.Errorf("decode scoring type: %w", err)
	}

	var (
		s   Scoring
		err error
	)
	switch ScoringKind(head.Type) {
	case ScoringPoints:
		var v PointsScoring
		err = node.Decode(&v)
		s = v
	case ScoringCluster:
		var v ClusterScoring
		err = node.Decode(&v)
		s = v
	case ScoringRate:
		var v RateScoring
		err = node.Decode(&v)
		s = v
	case ScoringStreak:
		var v StreakScoring
		err = node.Decode(&v)
		s = v
	case ScoringLadder:
		var v LadderScoring
		err = node.Decode(&v)
		s = v
	default:
		fields := make(map[string]any)
		err = node.Decode(&fields)
		delete(fields, "type")
		s = OpaqueScoring{Type: head.Type, Fields: fields}
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s scoring: %w", head.Type, err)
	}
	return s, nil
}
