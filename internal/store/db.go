package store

import (
	"database/sql"
	"errors"
	"time"

	"bike-dashboard/internal/model"

	_ "github.com/mattn/go-sqlite3"
)

var db *sql.DB

// ErrDisabled is returned by reads when run history is not configured.
var ErrDisabled = errors.New("run history is disabled")

// ErrNotFound is returned when a run id is unknown.
var ErrNotFound = errors.New("run not found")

// Initialize DB connection
func InitDB(dbPath string) error {
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}

	// Create tables if not exists
	runTable := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		trigger TEXT,
		status TEXT,
		record_count INTEGER DEFAULT 0,
		chart_count INTEGER DEFAULT 0,
		started_at DATETIME,
		finished_at DATETIME
	);
	`
	errorTable := `
	CREATE TABLE IF NOT EXISTS run_errors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT,
		error_message TEXT,
		created_at DATETIME
	);
	`

	if _, err := conn.Exec(runTable); err != nil {
		conn.Close()
		return err
	}
	if _, err := conn.Exec(errorTable); err != nil {
		conn.Close()
		return err
	}

	db = conn
	return nil
}

// Close releases the connection; run history is disabled afterwards.
func Close() error {
	if db == nil {
		return nil
	}
	err := db.Close()
	db = nil
	return err
}

// Enabled reports whether InitDB has succeeded.
func Enabled() bool {
	return db != nil
}

// SaveRun stores a new run in the pending state
func SaveRun(runID, trigger string) error {
	if db == nil {
		return nil
	}
	now := time.Now().UTC()
	_, err := db.Exec(`INSERT INTO runs (id, trigger, status, started_at) VALUES (?, ?, ?, ?)`,
		runID, trigger, model.RunPending, now)
	return err
}

// UpdateRunStatus updates run status
func UpdateRunStatus(runID, status string) error {
	if db == nil {
		return nil
	}
	_, err := db.Exec(`UPDATE runs SET status = ? WHERE id = ?`, status, runID)
	return err
}

// FinishRun records the final status and counts of a run.
func FinishRun(runID, status string, recordCount, chartCount int) error {
	if db == nil {
		return nil
	}
	now := time.Now().UTC()
	_, err := db.Exec(`UPDATE runs SET status = ?, record_count = ?, chart_count = ?, finished_at = ? WHERE id = ?`,
		status, recordCount, chartCount, now, runID)
	return err
}

// SaveRunError records an error for a run
func SaveRunError(runID string, err error) error {
	if err == nil || db == nil {
		return nil
	}
	now := time.Now().UTC()
	_, e := db.Exec(`INSERT INTO run_errors (run_id, error_message, created_at) VALUES (?, ?, ?)`,
		runID, err.Error(), now)
	return e
}

// ListRuns returns the most recent runs first, without their errors.
func ListRuns(limit int) ([]model.Run, error) {
	if db == nil {
		return nil, ErrDisabled
	}
	if limit <= 0 {
		limit = 100
	}

	rows, err := db.Query(`SELECT id, trigger, status, record_count, chart_count, started_at, finished_at
		FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []model.Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun fetches one run together with its recorded errors.
func GetRun(runID string) (model.Run, error) {
	if db == nil {
		return model.Run{}, ErrDisabled
	}

	row := db.QueryRow(`SELECT id, trigger, status, record_count, chart_count, started_at, finished_at
		FROM runs WHERE id = ?`, runID)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Run{}, ErrNotFound
	}
	if err != nil {
		return model.Run{}, err
	}

	errRows, err := db.Query(`SELECT error_message, created_at FROM run_errors WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return model.Run{}, err
	}
	defer errRows.Close()

	for errRows.Next() {
		var e model.RunError
		if err := errRows.Scan(&e.Message, &e.CreatedAt); err != nil {
			return model.Run{}, err
		}
		run.Errors = append(run.Errors, e)
	}
	return run, errRows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(s scanner) (model.Run, error) {
	var run model.Run
	var finished sql.NullTime
	if err := s.Scan(&run.ID, &run.Trigger, &run.Status, &run.RecordCount, &run.ChartCount,
		&run.StartedAt, &finished); err != nil {
		return model.Run{}, err
	}
	if finished.Valid {
		t := finished.Time
		run.FinishedAt = &t
	}
	return run, nil
}
