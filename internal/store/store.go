// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/Sorranop01/vdo-content-sub000/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for calibration data.
type Store struct {
	db *sql.DB
}

// StoredProfile pairs a profile with the key it was saved under.
type StoredProfile struct {
	Key     string
	Profile model.CalibrationProfile
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS calibration_profiles (
			profile_key TEXT NOT NULL,
			language TEXT NOT NULL,
			chars_per_sec REAL NOT NULL,
			words_per_sec REAL NOT NULL,
			sample_count INTEGER NOT NULL,
			calibrated_at TEXT NOT NULL,
			PRIMARY KEY (profile_key, language)
		);`,
		`CREATE TABLE IF NOT EXISTS calibration_runs (
			id INTEGER PRIMARY KEY,
			run_at TEXT NOT NULL,
			profile_key TEXT NOT NULL,
			language TEXT NOT NULL,
			rate REAL NOT NULL,
			sample_count INTEGER NOT NULL,
			trimmed INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_calibration_runs_run_at ON calibration_runs(run_at);`,
		`CREATE INDEX IF NOT EXISTS idx_calibration_runs_key ON calibration_runs(profile_key, language);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveProfile inserts or replaces the profile stored under key.
func (s *Store) SaveProfile(ctx context.Context, key string, prof model.CalibrationProfile) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO calibration_profiles (profile_key, language, chars_per_sec, words_per_sec, sample_count, calibrated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (profile_key, language) DO UPDATE SET
			chars_per_sec = excluded.chars_per_sec,
			words_per_sec = excluded.words_per_sec,
			sample_count = excluded.sample_count,
			calibrated_at = excluded.calibrated_at`,
		key,
		prof.Language,
		prof.CharsPerSec,
		prof.WordsPerSec,
		prof.SampleCount,
		prof.CalibratedAt.Format(time.RFC3339Nano),
	)
	return err
}

// LoadProfile fetches the profile stored under key for one language.
// The second return reports whether such a profile exists.
func (s *Store) LoadProfile(ctx context.Context, key, language string) (model.CalibrationProfile, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT language, chars_per_sec, words_per_sec, sample_count, calibrated_at
		 FROM calibration_profiles
		 WHERE profile_key = ? AND language = ?`,
		key, language)

	var prof model.CalibrationProfile
	var calibratedAt string
	err := row.Scan(&prof.Language, &prof.CharsPerSec, &prof.WordsPerSec, &prof.SampleCount, &calibratedAt)
	if err == sql.ErrNoRows {
		return model.CalibrationProfile{}, false, nil
	}
	if err != nil {
		return model.CalibrationProfile{}, false, err
	}
	parsed, err := time.Parse(time.RFC3339Nano, calibratedAt)
	if err != nil {
		return model.CalibrationProfile{}, false, err
	}
	prof.CalibratedAt = parsed
	return prof, true, nil
}

// ListProfiles returns every stored profile ordered by key and language.
func (s *Store) ListProfiles(ctx context.Context) ([]StoredProfile, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT profile_key, language, chars_per_sec, words_per_sec, sample_count, calibrated_at
		 FROM calibration_profiles
		 ORDER BY profile_key ASC, language ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var profiles []StoredProfile
	for rows.Next() {
		var sp StoredProfile
		var calibratedAt string
		if err := rows.Scan(&sp.Key, &sp.Profile.Language, &sp.Profile.CharsPerSec, &sp.Profile.WordsPerSec, &sp.Profile.SampleCount, &calibratedAt); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, calibratedAt)
		if err != nil {
			return nil, err
		}
		sp.Profile.CalibratedAt = parsed
		profiles = append(profiles, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return profiles, nil
}

// DeleteProfile removes the profile stored under key for one language.
// The bool reports whether a row was actually deleted.
func (s *Store) DeleteProfile(ctx context.Context, key, language string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM calibration_profiles WHERE profile_key = ? AND language = ?`,
		key, language)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// RecordCalibration saves the profile and appends a history row in one transaction.
func (s *Store) RecordCalibration(ctx context.Context, key string, prof model.CalibrationProfile, rate float64, trimmed int) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO calibration_profiles (profile_key, language, chars_per_sec, words_per_sec, sample_count, calibrated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (profile_key, language) DO UPDATE SET
			chars_per_sec = excluded.chars_per_sec,
			words_per_sec = excluded.words_per_sec,
			sample_count = excluded.sample_count,
			calibrated_at = excluded.calibrated_at`,
		key,
		prof.Language,
		prof.CharsPerSec,
		prof.WordsPerSec,
		prof.SampleCount,
		prof.CalibratedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO calibration_runs (run_at, profile_key, language, rate, sample_count, trimmed)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		prof.CalibratedAt.Format(time.RFC3339Nano),
		key,
		prof.Language,
		rate,
		prof.SampleCount,
		trimmed,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListRuns returns the most recent calibration runs in chronological order.
func (s *Store) ListRuns(ctx context.Context, key, language string, limit int) ([]model.CalibrationRun, error) {
	if limit <= 0 {
		return nil, nil
	}
	query := `WITH recent_runs AS (
		SELECT id FROM calibration_runs
		WHERE profile_key = ? AND (? = '' OR language = ?)
		ORDER BY run_at DESC, id DESC
		LIMIT ?
	)
	SELECT cr.id, cr.run_at, cr.profile_key, cr.language, cr.rate, cr.sample_count, cr.trimmed
	FROM calibration_runs cr
	JOIN recent_runs r ON r.id = cr.id
	ORDER BY cr.run_at ASC, cr.id ASC`

	rows, err := s.db.QueryContext(ctx, query, key, language, language, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var runs []model.CalibrationRun
	for rows.Next() {
		var run model.CalibrationRun
		var runAt string
		if err := rows.Scan(&run.ID, &runAt, &run.ProfileKey, &run.Language, &run.Rate, &run.SampleCount, &run.Trimmed); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, runAt)
		if err != nil {
			return nil, err
		}
		run.RunAt = parsed
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}
