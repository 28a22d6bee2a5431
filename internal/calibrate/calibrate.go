// Package calibrate recomputes speaking-rate profiles from timed scenes.
package calibrate

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/Sorranop01/vdo-content-sub000/internal/lang"
	"github.com/Sorranop01/vdo-content-sub000/internal/model"
)

// WarnFunc is a callback for non-fatal notices during calibration.
type WarnFunc func(msg string)

// Option configures a calibration pass.
type Option func(*settings)

type settings struct {
	warn WarnFunc
	now  func() time.Time
}

// WithWarnFunc sets a callback for per-scene skip notices.
func WithWarnFunc(fn WarnFunc) Option {
	return func(s *settings) {
		if fn != nil {
			s.warn = fn
		}
	}
}

// WithClock overrides the timestamp source for the calibrated profile.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

// Outcome summarizes a completed calibration pass.
type Outcome struct {
	SampleCount    int
	TrimmedPerSide int
	Rate           float64
	RawRate        float64
	Clamped        bool
}

// Calibrate measures text length against real timing for every usable scene
// and produces a fresh profile. Ratios are sorted, the top and bottom tenth
// trimmed, the remainder averaged, and the result clamped to the language's
// valid range. With no usable samples the default profile is returned
// unchanged alongside a wrapped ErrInsufficientData.
func Calibrate(scenes []model.Scene, language string, opts ...Option) (model.CalibrationProfile, Outcome, error) {
	cfg := settings{warn: func(string) {}, now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}

	p := lang.Lookup(language)
	fallback := p.DefaultCalibration()

	if len(scenes) == 0 {
		return fallback, Outcome{}, fmt.Errorf("no scenes to calibrate from: %w", model.ErrInsufficientData)
	}

	var ratios []float64
	for _, scene := range scenes {
		if !scene.HasTiming() {
			cfg.warn(fmt.Sprintf("scene %d has no timing data", scene.Order))
			continue
		}
		duration := scene.EndTime - scene.StartTime
		measure := p.Measure(scene.NarrationText)
		if measure == 0 {
			cfg.warn(fmt.Sprintf("scene %d has no narration text", scene.Order))
			continue
		}
		ratios = append(ratios, float64(measure)/duration)
	}
	if len(ratios) == 0 {
		return fallback, Outcome{}, fmt.Errorf("no ratios from scene timing data: %w", model.ErrInsufficientData)
	}

	sort.Float64s(ratios)
	trim := len(ratios) / 10
	if trim < 1 {
		trim = 1
	}
	trimmed := ratios
	if len(ratios) > trim*2 {
		trimmed = ratios[trim : len(ratios)-trim]
	} else {
		trim = 0
	}

	var sum float64
	for _, r := range trimmed {
		sum += r
	}
	raw := sum / float64(len(trimmed))
	clamped := p.ClampRate(raw)
	rounded := math.Round(clamped*100) / 100

	profile := p.DefaultCalibration()
	if p.Mode == lang.CountChars {
		profile.CharsPerSec = rounded
	} else {
		profile.WordsPerSec = rounded
	}
	profile.SampleCount = len(ratios)
	profile.CalibratedAt = cfg.now()

	outcome := Outcome{
		SampleCount:    len(ratios),
		TrimmedPerSide: trim,
		Rate:           rounded,
		RawRate:        raw,
		Clamped:        clamped != raw,
	}
	return profile, outcome, nil
}
