package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Sorranop01/vdo-content-sub000/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "vdoseg.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return s
}

func TestSaveAndLoadProfile(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	prof := model.CalibrationProfile{
		CharsPerSec:  11.4,
		WordsPerSec:  2.5,
		Language:     "th",
		SampleCount:  12,
		CalibratedAt: time.Date(2025, 5, 10, 9, 30, 0, 0, time.UTC),
	}
	if err := s.SaveProfile(ctx, "default", prof); err != nil {
		t.Fatalf("save profile: %v", err)
	}

	loaded, found, err := s.LoadProfile(ctx, "default", "th")
	if err != nil {
		t.Fatalf("load profile: %v", err)
	}
	if !found {
		t.Fatalf("expected profile to be found")
	}
	if loaded.CharsPerSec != prof.CharsPerSec || loaded.SampleCount != prof.SampleCount {
		t.Fatalf("expected %+v, got %+v", prof, loaded)
	}
	if !loaded.CalibratedAt.Equal(prof.CalibratedAt) {
		t.Fatalf("expected calibrated_at %v, got %v", prof.CalibratedAt, loaded.CalibratedAt)
	}
}

func TestLoadProfileMissing(t *testing.T) {
	s := openTestStore(t)

	_, found, err := s.LoadProfile(context.Background(), "default", "th")
	if err != nil {
		t.Fatalf("load profile: %v", err)
	}
	if found {
		t.Fatalf("expected no profile for empty store")
	}
}

func TestSaveProfileReplacesExisting(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := model.CalibrationProfile{CharsPerSec: 10.0, WordsPerSec: 2.5, Language: "th", SampleCount: 3, CalibratedAt: time.Now().UTC()}
	second := first
	second.CharsPerSec = 12.8
	second.SampleCount = 20

	if err := s.SaveProfile(ctx, "default", first); err != nil {
		t.Fatalf("save first: %v", err)
	}
	if err := s.SaveProfile(ctx, "default", second); err != nil {
		t.Fatalf("save second: %v", err)
	}

	loaded, found, err := s.LoadProfile(ctx, "default", "th")
	if err != nil {
		t.Fatalf("load profile: %v", err)
	}
	if !found {
		t.Fatalf("expected profile to be found")
	}
	if loaded.CharsPerSec != 12.8 || loaded.SampleCount != 20 {
		t.Fatalf("expected replaced values, got %+v", loaded)
	}

	profiles, err := s.ListProfiles(ctx)
	if err != nil {
		t.Fatalf("list profiles: %v", err)
	}
	if len(profiles) != 1 {
		t.Fatalf("expected a single stored row after upsert, got %d", len(profiles))
	}
}

func TestProfilesKeyedByLanguage(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	th := model.CalibrationProfile{CharsPerSec: 11.0, WordsPerSec: 2.5, Language: "th", CalibratedAt: time.Now().UTC()}
	en := model.CalibrationProfile{CharsPerSec: 10.0, WordsPerSec: 3.1, Language: "en", CalibratedAt: time.Now().UTC()}
	if err := s.SaveProfile(ctx, "default", th); err != nil {
		t.Fatalf("save th: %v", err)
	}
	if err := s.SaveProfile(ctx, "default", en); err != nil {
		t.Fatalf("save en: %v", err)
	}

	profiles, err := s.ListProfiles(ctx)
	if err != nil {
		t.Fatalf("list profiles: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("expected one row per language, got %d", len(profiles))
	}

	loaded, found, err := s.LoadProfile(ctx, "default", "en")
	if err != nil || !found {
		t.Fatalf("load en: found=%v err=%v", found, err)
	}
	if loaded.WordsPerSec != 3.1 {
		t.Fatalf("expected English profile, got %+v", loaded)
	}
}

func TestDeleteProfile(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	prof := model.CalibrationProfile{CharsPerSec: 11.0, Language: "th", CalibratedAt: time.Now().UTC()}
	if err := s.SaveProfile(ctx, "default", prof); err != nil {
		t.Fatalf("save profile: %v", err)
	}

	deleted, err := s.DeleteProfile(ctx, "default", "th")
	if err != nil {
		t.Fatalf("delete profile: %v", err)
	}
	if !deleted {
		t.Fatalf("expected delete to remove a row")
	}

	deleted, err = s.DeleteProfile(ctx, "default", "th")
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if deleted {
		t.Fatalf("expected second delete to find nothing")
	}

	_, found, err := s.LoadProfile(ctx, "default", "th")
	if err != nil {
		t.Fatalf("load after delete: %v", err)
	}
	if found {
		t.Fatalf("expected profile gone after delete")
	}
}

func TestRecordCalibrationAndListRuns(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		prof := model.CalibrationProfile{
			CharsPerSec:  10.0 + float64(i),
			WordsPerSec:  2.5,
			Language:     "th",
			SampleCount:  10 + i,
			CalibratedAt: base.Add(time.Duration(i) * time.Hour),
		}
		if _, err := s.RecordCalibration(ctx, "default", prof, prof.CharsPerSec, 1); err != nil {
			t.Fatalf("record calibration %d: %v", i, err)
		}
	}

	runs, err := s.ListRuns(ctx, "default", "th", 10)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	for i := 1; i < len(runs); i++ {
		if runs[i].RunAt.Before(runs[i-1].RunAt) {
			t.Fatalf("expected chronological order, got %v before %v", runs[i].RunAt, runs[i-1].RunAt)
		}
	}
	if runs[2].Rate != 12.0 {
		t.Fatalf("expected latest run rate 12.0, got %.2f", runs[2].Rate)
	}

	// The profile row reflects the latest run.
	loaded, found, err := s.LoadProfile(ctx, "default", "th")
	if err != nil || !found {
		t.Fatalf("load after runs: found=%v err=%v", found, err)
	}
	if loaded.CharsPerSec != 12.0 || loaded.SampleCount != 12 {
		t.Fatalf("expected latest profile values, got %+v", loaded)
	}
}

func TestListRunsLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		prof := model.CalibrationProfile{
			CharsPerSec:  9.0 + float64(i),
			Language:     "th",
			SampleCount:  5,
			CalibratedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if _, err := s.RecordCalibration(ctx, "default", prof, prof.CharsPerSec, 0); err != nil {
			t.Fatalf("record calibration %d: %v", i, err)
		}
	}

	runs, err := s.ListRuns(ctx, "default", "th", 2)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected limit of 2 runs, got %d", len(runs))
	}
	if runs[0].Rate != 12.0 || runs[1].Rate != 13.0 {
		t.Fatalf("expected the two most recent runs, got %.1f and %.1f", runs[0].Rate, runs[1].Rate)
	}

	runs, err = s.ListRuns(ctx, "default", "th", 0)
	if err != nil {
		t.Fatalf("list runs with zero limit: %v", err)
	}
	if runs != nil {
		t.Fatalf("expected nil for zero limit, got %d runs", len(runs))
	}
}
