package calibrate

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Sorranop01/vdo-content-sub000/internal/model"
)

func timedScene(order int, chars int, duration float64) model.Scene {
	return model.Scene{
		Order:         order,
		StartTime:     0,
		EndTime:       duration,
		NarrationText: strings.Repeat("ก", chars),
	}
}

func TestCalibrateTrimsOneOutlierPerSide(t *testing.T) {
	scenes := []model.Scene{timedScene(1, 20, 10)}
	for i := 0; i < 10; i++ {
		scenes = append(scenes, timedScene(i+2, 100, 10))
	}
	scenes = append(scenes, timedScene(12, 500, 10))

	profile, outcome, err := Calibrate(scenes, "th")
	if err != nil {
		t.Fatalf("calibrate: %v", err)
	}
	if outcome.TrimmedPerSide != 1 {
		t.Fatalf("expected 1 sample trimmed per side, got %d", outcome.TrimmedPerSide)
	}
	if outcome.SampleCount != 12 {
		t.Fatalf("expected 12 samples, got %d", outcome.SampleCount)
	}
	if profile.CharsPerSec != 10.0 {
		t.Fatalf("expected outliers excluded from average, got %.2f", profile.CharsPerSec)
	}
	if profile.SampleCount != 12 {
		t.Fatalf("expected full sample count on profile, got %d", profile.SampleCount)
	}
}

func TestCalibrateSmallSampleSkipsTrimming(t *testing.T) {
	scenes := []model.Scene{
		timedScene(1, 80, 10),
		timedScene(2, 120, 10),
	}
	profile, outcome, err := Calibrate(scenes, "th")
	if err != nil {
		t.Fatalf("calibrate: %v", err)
	}
	if outcome.TrimmedPerSide != 0 {
		t.Fatalf("expected no trimming with 2 samples, got %d", outcome.TrimmedPerSide)
	}
	if profile.CharsPerSec != 10.0 {
		t.Fatalf("expected average of 8 and 12, got %.2f", profile.CharsPerSec)
	}
}

func TestCalibrateClampsToValidRange(t *testing.T) {
	scenes := []model.Scene{
		timedScene(1, 300, 10),
		timedScene(2, 300, 10),
		timedScene(3, 300, 10),
	}
	profile, outcome, err := Calibrate(scenes, "th")
	if err != nil {
		t.Fatalf("calibrate: %v", err)
	}
	if profile.CharsPerSec != 18.0 {
		t.Fatalf("expected clamp to 18.0, got %.2f", profile.CharsPerSec)
	}
	if !outcome.Clamped {
		t.Fatalf("expected outcome to record clamping")
	}
}

func TestCalibrateNoTimedScenes(t *testing.T) {
	scenes := []model.Scene{
		{Order: 1, NarrationText: "ไม่มีเวลา"},
		{Order: 2, NarrationText: "ก็ไม่มี"},
	}
	var warnings []string
	profile, _, err := Calibrate(scenes, "th", WithWarnFunc(func(msg string) {
		warnings = append(warnings, msg)
	}))
	if !errors.Is(err, model.ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
	if profile.CharsPerSec != 10.0 {
		t.Fatalf("expected default profile unchanged, got %.2f", profile.CharsPerSec)
	}
	if len(warnings) != 2 {
		t.Fatalf("expected a warning per skipped scene, got %d", len(warnings))
	}
}

func TestCalibrateEmptySceneList(t *testing.T) {
	_, _, err := Calibrate(nil, "th")
	if !errors.Is(err, model.ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestCalibrateEnglishSetsWordRate(t *testing.T) {
	text := strings.TrimSpace(strings.Repeat("word ", 30))
	scenes := []model.Scene{{
		Order:         1,
		StartTime:     0,
		EndTime:       10,
		NarrationText: text,
	}}
	profile, _, err := Calibrate(scenes, "en")
	if err != nil {
		t.Fatalf("calibrate: %v", err)
	}
	if profile.WordsPerSec != 3.0 {
		t.Fatalf("expected 3.0 words/sec, got %.2f", profile.WordsPerSec)
	}
	if profile.CharsPerSec != 10.0 {
		t.Fatalf("expected char rate untouched for English, got %.2f", profile.CharsPerSec)
	}
}

func TestCalibrateStampsClock(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	scenes := []model.Scene{timedScene(1, 100, 10)}
	profile, _, err := Calibrate(scenes, "th", WithClock(func() time.Time { return fixed }))
	if err != nil {
		t.Fatalf("calibrate: %v", err)
	}
	if !profile.CalibratedAt.Equal(fixed) {
		t.Fatalf("expected calibrated_at %v, got %v", fixed, profile.CalibratedAt)
	}
}
