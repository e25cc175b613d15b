package main

import (
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// BackendDuckdb runs queries through the duckdb CLI with the MongoDB
// storage extension attached. The harness itself times the subprocess with
// the monotonic clock.
type BackendDuckdb struct {
	Bin    string
	Attach string
	Db     string
}

func (b *BackendDuckdb) Name() string { return "duckdb" }

func (b *BackendDuckdb) preamble() string {
	return fmt.Sprintf("ATTACH '%v' AS mongo (TYPE mongodb); USE mongo.%v; ", b.Attach, b.Db)
}

func (b *BackendDuckdb) Ping() error {
	cmd := exec.Command(b.Bin, "-csv", "-c", b.preamble()+"SELECT 1;")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("err=%w, out=%v", err, string(output))
	}
	return nil
}

func (b *BackendDuckdb) Run(entry CatalogEntry) Measurement {
	cmd := exec.Command(b.Bin, "-csv", "-c", b.preamble()+entry.Body)

	start := time.Now()
	output, err := cmd.CombinedOutput()
	elapsed := time.Since(start)

	m := Measurement{
		ElapsedMs:   elapsed.Seconds() * 1000,
		Implemented: true,
		Output:      string(output),
	}
	if err != nil {
		m.Err = fmt.Errorf("err=%w, out=%v", err, string(output))
	} else if strings.TrimSpace(m.Output) == "" {
		m.Err = fmt.Errorf("query %v produced no output", entry.Name)
	}
	return m
}
