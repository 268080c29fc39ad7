// Package history persists compare runs to a SQLite database so past
// optimization attempts stay queryable.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Run mirrors a row of the runs table.
type Run struct {
	ID              int
	RunID           string
	Ts              string
	File            string
	Model           string
	Additions       int
	Deletions       int
	Hunks           int
	Annotations     int
	MeanOriginalMs  float64
	MeanOptimizedMs float64
	ImprovementPct  float64
	Verdict         string
}

// Open opens (creating if needed) the history database at dbPath.
func Open(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			ts TEXT NOT NULL,
			file TEXT NOT NULL,
			model TEXT,
			additions INTEGER,
			deletions INTEGER,
			hunks INTEGER,
			annotations INTEGER,
			mean_original_ms REAL,
			mean_optimized_ms REAL,
			improvement_pct REAL,
			verdict TEXT
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	for _, idx := range []string{
		"CREATE INDEX IF NOT EXISTS idx_runs_file ON runs(file)",
		"CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs(ts)",
	} {
		if _, err := db.Exec(idx); err != nil {
			db.Close()
			return nil, fmt.Errorf("create index: %w", err)
		}
	}

	return db, nil
}

// Insert records one compare run. A zero Ts defaults to now.
func Insert(db *sql.DB, r Run) error {
	if r.Ts == "" {
		r.Ts = time.Now().Format(time.RFC3339)
	}
	_, err := db.Exec(`
		INSERT INTO runs
		(run_id, ts, file, model, additions, deletions, hunks, annotations,
		 mean_original_ms, mean_optimized_ms, improvement_pct, verdict)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.RunID, r.Ts, r.File, r.Model, r.Additions, r.Deletions, r.Hunks,
		r.Annotations, r.MeanOriginalMs, r.MeanOptimizedMs, r.ImprovementPct, r.Verdict)
	return err
}

// Recent returns the newest runs, most recent first.
func Recent(db *sql.DB, limit int) ([]Run, error) {
	rows, err := db.Query(`
		SELECT id, run_id, ts, file, model, additions, deletions, hunks,
		       annotations, mean_original_ms, mean_optimized_ms,
		       improvement_pct, verdict
		FROM runs ORDER BY ts DESC, id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.RunID, &r.Ts, &r.File, &r.Model,
			&r.Additions, &r.Deletions, &r.Hunks, &r.Annotations,
			&r.MeanOriginalMs, &r.MeanOptimizedMs, &r.ImprovementPct, &r.Verdict); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Stats holds aggregate statistics over all recorded runs.
type Stats struct {
	TotalRuns    int
	FilesTouched int
	BestPct      float64
	AvgPct       float64
	FirstRun     string
	LastRun      string
}

// Summarize computes aggregate statistics.
func Summarize(db *sql.DB) (Stats, error) {
	var s Stats
	var best, avg sql.NullFloat64
	var first, last sql.NullString

	if err := db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&s.TotalRuns); err != nil {
		return s, err
	}
	db.QueryRow("SELECT COUNT(DISTINCT file) FROM runs").Scan(&s.FilesTouched)
	db.QueryRow("SELECT MAX(improvement_pct) FROM runs").Scan(&best)
	db.QueryRow("SELECT AVG(improvement_pct) FROM runs").Scan(&avg)
	db.QueryRow("SELECT MIN(ts) FROM runs").Scan(&first)
	db.QueryRow("SELECT MAX(ts) FROM runs").Scan(&last)

	if best.Valid {
		s.BestPct = best.Float64
	}
	if avg.Valid {
		s.AvgPct = avg.Float64
	}
	if first.Valid {
		s.FirstRun = first.String
	}
	if last.Valid {
		s.LastRun = last.String
	}
	return s, nil
}
