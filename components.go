package main

// Backend is one of the query-execution targets being timed.
type Backend interface {
	Name() string
	// Ping performs a single best-effort connection warm-up.
	Ping() error
	// Run executes the query once.
	Run(entry CatalogEntry) Measurement
}

// Measurement is the outcome of a single backend invocation. Implemented is
// false when the backend has no handler for the query; in that case
// ElapsedMs carries no meaning and must never enter statistics.
type Measurement struct {
	ElapsedMs   float64
	Implemented bool
	Output      string
	Err         error
}

// TrialResult is one recorded timed execution. Iteration is 1-based.
type TrialResult struct {
	Query     string
	Backend   string
	Iteration int
	ElapsedMs float64
}
