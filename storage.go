package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const trialLogHeader = "name,iteration,ms"

// TrialLog appends measured trials to a timestamped comma-separated file,
// syncing after every row so an interrupted run still leaves a readable
// partial file.
type TrialLog struct {
	file *os.File
	path string
}

func OpenTrialLog(dir string, now time.Time) (*TrialLog, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create results dir %v: %w", dir, err)
	}
	path := filepath.Join(dir, fmt.Sprintf("benchmark-%v.csv", now.Format("20060102-150405")))
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if _, err := fmt.Fprintln(file, trialLogHeader); err != nil {
		file.Close()
		return nil, err
	}
	if err := file.Sync(); err != nil {
		file.Close()
		return nil, err
	}
	return &TrialLog{file: file, path: path}, nil
}

func (l *TrialLog) Path() string { return l.path }

func (l *TrialLog) Append(trial TrialResult) error {
	if _, err := fmt.Fprintf(l.file, "%v,%v,%.2f\n", trial.Query, trial.Iteration, trial.ElapsedMs); err != nil {
		return err
	}
	return l.file.Sync()
}

func (l *TrialLog) Close() error { return l.file.Close() }

// Archive persists run parameters and raw measurements into a local SQLite
// file for later cross-run analysis.
type Archive struct {
	db *sql.DB
}

func OpenArchive(path string) (*Archive, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	archive := &Archive{db: db}
	if err := archive.init(); err != nil {
		db.Close()
		return nil, err
	}
	return archive, nil
}

func (a *Archive) init() error {
	_, err := a.db.Exec("CREATE TABLE IF NOT EXISTS parameters (name TEXT PRIMARY KEY, value)")
	if err != nil {
		return err
	}
	_, err = a.db.Exec(`CREATE TABLE IF NOT EXISTS measurements (
        backend TEXT,
        name TEXT,
        iteration INTEGER,
        value REAL,
        PRIMARY KEY (backend, name, iteration)
    )`)
	return err
}

func (a *Archive) RecordParameters(parameters map[string]any) error {
	for name, value := range parameters {
		_, err := a.db.Exec(
			"INSERT INTO parameters VALUES (?, ?) ON CONFLICT DO NOTHING",
			name, fmt.Sprintf("%v", value),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (a *Archive) RecordTrials(trials []TrialResult) error {
	tx, err := a.db.Begin()
	if err != nil {
		return err
	}
	for _, trial := range trials {
		_, err := tx.Exec(
			"INSERT INTO measurements VALUES (?, ?, ?, ?)",
			trial.Backend, trial.Query, trial.Iteration, trial.ElapsedMs,
		)
		if err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (a *Archive) Close() error { return a.db.Close() }
