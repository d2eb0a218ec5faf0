package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/g-uva/job-scheduling-sim/pkg/core"
)

// Run is one stored policy result.
type Run struct {
	RunID         string
	Policy        string
	Quantum       int
	Jobs          int
	TotalTime     int64
	AvgTurnaround int64
	CreatedAt     time.Time
}

// DB wraps the SQL database with helper methods
type DB struct {
	*sql.DB
}

// New opens (or creates) the SQLite run history at dataSourceName.
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, err
	}
	return &DB{db}, nil
}

// InitSchema initializes the database schema
func (db *DB) InitSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		policy TEXT NOT NULL,
		quantum INTEGER NOT NULL DEFAULT 0,
		jobs INTEGER NOT NULL,
		total_time INTEGER NOT NULL,
		avg_turnaround INTEGER NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_run_id ON runs(run_id);
	CREATE INDEX IF NOT EXISTS idx_policy ON runs(policy, quantum);
	`

	_, err := db.Exec(schema)
	return err
}

// InsertResult stores one policy result under runID.
func (db *DB) InsertResult(runID string, res core.Result) error {
	_, err := db.Exec(`
		INSERT INTO runs (run_id, policy, quantum, jobs, total_time, avg_turnaround, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, runID, res.Policy, res.Quantum, res.Jobs, res.TotalTime, res.AvgTurnaround, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("insert %s result for run %s: %w", res.Policy, runID, err)
	}
	return nil
}

// ListRuns returns the results stored under runID in insertion order.
func (db *DB) ListRuns(runID string) ([]Run, error) {
	rows, err := db.Query(`
		SELECT run_id, policy, quantum, jobs, total_time, avg_turnaround, created_at
		FROM runs WHERE run_id = ? ORDER BY id ASC
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRuns(rows)
}

// BestAvgTurnaround returns the stored result with the lowest average
// turnaround across all runs of the given job count.
func (db *DB) BestAvgTurnaround(jobs int) (*Run, error) {
	var r Run
	err := db.QueryRow(`
		SELECT run_id, policy, quantum, jobs, total_time, avg_turnaround, created_at
		FROM runs WHERE jobs = ? ORDER BY avg_turnaround ASC, id ASC LIMIT 1
	`, jobs).Scan(&r.RunID, &r.Policy, &r.Quantum, &r.Jobs, &r.TotalTime, &r.AvgTurnaround, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	runs := []Run{}
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.RunID, &r.Policy, &r.Quantum, &r.Jobs,
			&r.TotalTime, &r.AvgTurnaround, &r.CreatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
