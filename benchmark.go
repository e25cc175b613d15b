package main

import "fmt"

// Runner executes the trial loop for one catalog entry against one backend:
// a single discarded warm-up followed by exactly Iterations measured trials.
// Trials are strictly sequential and never retried; a failed trial is logged
// and either kept as best-effort data (timing exists) or skipped (it does
// not). There is no per-trial timeout.
type Runner struct {
	Iterations int
	Show       bool
	OnTrial    func(TrialResult)
}

func (r *Runner) Bench(entry CatalogEntry, backend Backend) []TrialResult {
	warmup := backend.Run(entry)
	if !warmup.Implemented {
		Logger.Infof("query %v has no %v implementation, skipping", entry.Name, backend.Name())
		return nil
	}
	if warmup.Err != nil {
		Logger.Debugf("warmup of %v on %v failed: %v", entry.Name, backend.Name(), warmup.Err)
	}
	if r.Show {
		fmt.Printf("--- %v on %v ---\n%v\n", entry.Name, backend.Name(), warmup.Output)
	}

	trials := make([]TrialResult, 0, r.Iterations)
	for i := 1; i <= r.Iterations; i++ {
		Logger.Infof("running trial %v/%v of %v on %v", i, r.Iterations, entry.Name, backend.Name())
		m := backend.Run(entry)
		if !m.Implemented {
			Logger.Warnf("query %v became unavailable on %v mid-run", entry.Name, backend.Name())
			break
		}
		if m.Err != nil {
			Logger.Warnf("trial %v of %v on %v failed: %v", i, entry.Name, backend.Name(), m.Err)
			if m.ElapsedMs == 0 {
				continue
			}
		}
		trial := TrialResult{
			Query:     entry.Name,
			Backend:   backend.Name(),
			Iteration: i,
			ElapsedMs: m.ElapsedMs,
		}
		trials = append(trials, trial)
		if r.OnTrial != nil {
			r.OnTrial(trial)
		}
	}
	return trials
}
