package main

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// BackendMongo runs the native aggregation-pipeline driver script, which
// times the pipeline in-process and prints the elapsed milliseconds on
// stdout. The script prints 0 when the query number has no pipeline; that
// is decoded here into an unimplemented Measurement so a zero never reaches
// the statistics.
type BackendMongo struct {
	Script   string
	Host     string
	Port     int
	Database string
}

func (b *BackendMongo) Name() string { return "mongodb" }

func (b *BackendMongo) Ping() error { return nil }

func (b *BackendMongo) Run(entry CatalogEntry) Measurement {
	number, ok := queryNumber(entry.Name)
	if !ok {
		return Measurement{}
	}
	cmd := exec.Command("python3", b.Script, b.Host, strconv.Itoa(b.Port), b.Database, strconv.Itoa(number))
	output, err := cmd.Output()
	text := strings.TrimSpace(string(output))
	if err != nil {
		return Measurement{
			Implemented: true,
			Output:      text,
			Err:         fmt.Errorf("pipeline driver failed for %v: %w", entry.Name, err),
		}
	}
	elapsed, err := strconv.ParseFloat(text, 64)
	if err != nil || elapsed <= 0 {
		return Measurement{Output: text}
	}
	return Measurement{ElapsedMs: elapsed, Implemented: true, Output: text}
}

// queryNumber maps a catalog name like "q14" onto the driver script's
// numeric query id.
func queryNumber(name string) (int, bool) {
	number, err := strconv.Atoi(strings.TrimPrefix(name, "q"))
	if err != nil || number < 1 {
		return 0, false
	}
	return number, true
}
