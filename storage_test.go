package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTrialLogHeaderAndRows(t *testing.T) {
	dir := t.TempDir()
	log, err := OpenTrialLog(dir, time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC))
	require.Nil(t, err)

	require.Equal(t, filepath.Join(dir, "benchmark-20240501-123000.csv"), log.Path())
	require.Nil(t, log.Append(TrialResult{Query: "q1", Backend: "duckdb", Iteration: 1, ElapsedMs: 123.456}))
	require.Nil(t, log.Append(TrialResult{Query: "q1", Backend: "duckdb", Iteration: 2, ElapsedMs: 130}))
	require.Nil(t, log.Close())

	data, err := os.ReadFile(log.Path())
	require.Nil(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "name,iteration,ms", lines[0])
	require.Equal(t, "q1,1,123.46", lines[1])
	require.Equal(t, "q1,2,130.00", lines[2])
}

func TestTrialLogPartialRunReadable(t *testing.T) {
	dir := t.TempDir()
	log, err := OpenTrialLog(dir, time.Now())
	require.Nil(t, err)
	defer log.Close()

	require.Nil(t, log.Append(TrialResult{Query: "q3", Backend: "duckdb", Iteration: 1, ElapsedMs: 42}))

	// rows are synced per trial, so the file is readable mid-run
	data, err := os.ReadFile(log.Path())
	require.Nil(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "name,iteration,ms", lines[0])
	require.Equal(t, "q3,1,42.00", lines[1])
}

func TestTrialLogCreatesResultsDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "results", "nested")
	log, err := OpenTrialLog(dir, time.Now())
	require.Nil(t, err)
	require.Nil(t, log.Close())

	_, err = os.Stat(dir)
	require.Nil(t, err)
}

func TestArchiveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.db")
	archive, err := OpenArchive(path)
	require.Nil(t, err)
	defer archive.Close()

	require.Nil(t, archive.RecordParameters(map[string]any{"database": "tpch", "iterations": 3}))
	require.Nil(t, archive.RecordTrials([]TrialResult{
		{Query: "q1", Backend: "duckdb", Iteration: 1, ElapsedMs: 100},
		{Query: "q1", Backend: "duckdb", Iteration: 2, ElapsedMs: 110},
	}))

	var count int
	require.Nil(t, archive.db.QueryRow("SELECT count(*) FROM measurements").Scan(&count))
	require.Equal(t, 2, count)

	var database string
	require.Nil(t, archive.db.QueryRow("SELECT value FROM parameters WHERE name = 'database'").Scan(&database))
	require.Equal(t, "tpch", database)
}
