package validate

import (
	"testing"

	"github.com/Sorranop01/vdo-content-sub000/internal/model"
)

func TestCheckWithinThreshold(t *testing.T) {
	scenes := []model.Scene{
		{Order: 1, StartTime: 0, EndTime: 7.5},
		{Order: 2, StartTime: 7.5, EndTime: 14.0},
	}
	report := Check(scenes, 14.5)

	if report.Expected != 14.0 {
		t.Fatalf("expected scene total 14.0, got %.2f", report.Expected)
	}
	if report.Drift != 0.5 {
		t.Fatalf("expected drift 0.5, got %.2f", report.Drift)
	}
	if !report.OK {
		t.Fatalf("expected 0.5s drift to pass the 1.0s threshold")
	}
}

func TestCheckFlagsLargeDrift(t *testing.T) {
	scenes := []model.Scene{
		{Order: 1, StartTime: 0, EndTime: 8.0},
	}
	report := Check(scenes, 11.0)

	if report.OK {
		t.Fatalf("expected 3.0s drift to fail")
	}
	if report.Drift != 3.0 {
		t.Fatalf("expected signed drift 3.0, got %.2f", report.Drift)
	}
}

func TestCheckNegativeDrift(t *testing.T) {
	scenes := []model.Scene{
		{Order: 1, StartTime: 0, EndTime: 10.0},
	}
	report := Check(scenes, 8.0)

	if report.Drift != -2.0 {
		t.Fatalf("expected signed drift -2.0, got %.2f", report.Drift)
	}
	if report.OK {
		t.Fatalf("expected 2.0s shortfall to fail")
	}
}

func TestCheckFallsBackToEstimates(t *testing.T) {
	scenes := []model.Scene{
		{Order: 1, StartTime: 0, EndTime: 7.0},
		{Order: 2, EstimatedDuration: 6.0},
	}
	report := Check(scenes, 13.2)

	if report.Expected != 13.0 {
		t.Fatalf("expected timed plus estimated total 13.0, got %.2f", report.Expected)
	}
	if !report.OK {
		t.Fatalf("expected 0.2s drift to pass")
	}
}

func TestCheckCustomThreshold(t *testing.T) {
	scenes := []model.Scene{{Order: 1, StartTime: 0, EndTime: 10.0}}

	strict := CheckWithThreshold(scenes, 10.4, 0.2)
	if strict.OK {
		t.Fatalf("expected 0.4s drift to fail a 0.2s threshold")
	}
	loose := CheckWithThreshold(scenes, 10.4, 0.5)
	if !loose.OK {
		t.Fatalf("expected 0.4s drift to pass a 0.5s threshold")
	}
}

func TestCheckEmptyScenes(t *testing.T) {
	report := Check(nil, 5.0)

	if report.Expected != 0 {
		t.Fatalf("expected zero scene total, got %.2f", report.Expected)
	}
	if report.OK {
		t.Fatalf("expected 5.0s of unaccounted audio to fail")
	}
}
