// Package model defines shared data structures.
package model

import (
	"fmt"
	"math"
	"time"
)

// Token is a single timed fragment of transcribed speech.
type Token struct {
	Text       string
	Start      float64
	End        float64
	Confidence float64
}

// Duration returns the token's own span in seconds.
func (t Token) Duration() float64 {
	return t.End - t.Start
}

// Segment is a bounded run of narration produced by the segmenter.
type Segment struct {
	Order     int
	Start     float64
	End       float64
	Text      string
	Tokens    []Token
	Estimated float64
	Oversized bool
}

// Duration returns the timed span, or the estimate when no timing exists.
func (s Segment) Duration() float64 {
	if s.End > s.Start {
		return s.End - s.Start
	}
	return s.Estimated
}

// Scene is the domain output consumed by downstream generation.
type Scene struct {
	SceneID           string  `json:"scene_id"`
	Order             int     `json:"order"`
	StartTime         float64 `json:"start_time"`
	EndTime           float64 `json:"end_time"`
	NarrationText     string  `json:"narration_text"`
	WordCount         int     `json:"word_count"`
	EstimatedDuration float64 `json:"estimated_duration"`
	Oversized         bool    `json:"oversized,omitempty"`
}

// HasTiming reports whether the scene carries real audio timing.
func (s Scene) HasTiming() bool {
	return s.EndTime > s.StartTime
}

// AudioDuration returns the timed span rounded to centiseconds.
func (s Scene) AudioDuration() float64 {
	return math.Round((s.EndTime-s.StartTime)*100) / 100
}

// Duration returns the real timed span when present, else the estimate.
func (s Scene) Duration() float64 {
	if s.HasTiming() {
		return s.EndTime - s.StartTime
	}
	return s.EstimatedDuration
}

// Constraints bound a single segmentation request.
type Constraints struct {
	MaxDuration    float64
	MinDuration    float64
	MergeTolerance float64
}

const (
	// DefaultMaxDuration is the hard per-scene ceiling in seconds.
	DefaultMaxDuration = 8.0
	// DefaultMinDuration is the soft floor where break search begins.
	DefaultMinDuration = 7.0
	// DefaultMergeTolerance is the slack allowed when absorbing a trailing sliver.
	DefaultMergeTolerance = 2.0
)

// DefaultConstraints returns the domain default duration bounds.
func DefaultConstraints() Constraints {
	return Constraints{
		MaxDuration:    DefaultMaxDuration,
		MinDuration:    DefaultMinDuration,
		MergeTolerance: DefaultMergeTolerance,
	}
}

// Validate checks that the bounds describe a usable window.
func (c Constraints) Validate() error {
	if c.MaxDuration <= 0 {
		return fmt.Errorf("max duration must be > 0, got %.2f", c.MaxDuration)
	}
	if c.MinDuration < 0 {
		return fmt.Errorf("min duration must be >= 0, got %.2f", c.MinDuration)
	}
	if c.MinDuration >= c.MaxDuration {
		return fmt.Errorf("min duration %.2f must be below max duration %.2f", c.MinDuration, c.MaxDuration)
	}
	if c.MergeTolerance < 0 {
		return fmt.Errorf("merge tolerance must be >= 0, got %.2f", c.MergeTolerance)
	}
	return nil
}

// CalibrationProfile models a speaking rate measured from real audio.
type CalibrationProfile struct {
	CharsPerSec  float64
	WordsPerSec  float64
	Language     string
	SampleCount  int
	CalibratedAt time.Time
}

// CalibrationRun records one completed recalibration for history plots.
type CalibrationRun struct {
	ID          int64
	RunAt       time.Time
	ProfileKey  string
	Language    string
	Rate        float64
	SampleCount int
	Trimmed     int
}

// ScriptStats aggregates a scene list for reporting.
type ScriptStats struct {
	SceneCount     int
	TotalDuration  float64
	AvgDuration    float64
	MinDuration    float64
	MaxDuration    float64
	TotalWords     int
	TotalChars     int
	OversizedCount int
}

// CutKind classifies why a segment boundary exists.
type CutKind string

const (
	// CutNatural marks a boundary placed on a break token inside the sweet zone.
	CutNatural CutKind = "natural"
	// CutWindow marks a boundary recovered by the backward break search.
	CutWindow CutKind = "window"
	// CutForced marks a mid-clause cut at the duration ceiling.
	CutForced CutKind = "forced"
	// CutMerged marks a boundary removed by the trailing merge pass.
	CutMerged CutKind = "merged"
)

// CutRecord describes one segment boundary decision.
type CutRecord struct {
	Kind      CutKind
	At        float64
	BreakText string
}
