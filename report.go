package main

import (
	"fmt"
	"io"
	"sort"
)

// RenderSummary writes the compact report for one backend: one line per
// query in catalog order, the corpus totals, and the full list re-sorted
// ascending by average.
func RenderSummary(w io.Writer, summaries []QuerySummary, corpus CorpusSummary) error {
	if len(summaries) == 0 {
		return fmt.Errorf("no results to report")
	}
	for _, s := range summaries {
		fmt.Fprintf(w, "%-8v avg %10.2f ms   min %10.2f ms   max %10.2f ms\n", s.Name, s.AvgMs, s.MinMs, s.MaxMs)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total time (sum of per-query averages): %.2f ms\n", corpus.TotalMs)
	fmt.Fprintf(w, "Per-query average: %.2f ms\n", corpus.PerQueryMs)
	fmt.Fprintf(w, "Fastest query: %v (%.2f ms)\n", corpus.Fastest.Name, corpus.Fastest.AvgMs)
	fmt.Fprintf(w, "Slowest query: %v (%.2f ms)\n", corpus.Slowest.Name, corpus.Slowest.AvgMs)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Queries by average time:")
	sorted := make([]QuerySummary, len(summaries))
	copy(sorted, summaries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].AvgMs < sorted[j].AvgMs })
	for _, s := range sorted {
		fmt.Fprintf(w, "  %-8v %10.2f ms\n", s.Name, s.AvgMs)
	}
	return nil
}

// Comparison holds everything the verbose report needs for one query.
type Comparison struct {
	Name   string
	Bridge BackendTrials
	Native BackendTrials
}

// BackendTrials is one backend's slice of the comparison. Present is false
// when the backend recorded no trial for the query (no native pipeline).
type BackendTrials struct {
	Backend string
	Trials  []TrialResult
	Summary QuerySummary
	Present bool
}

// RenderComparison writes the verbose dual-backend report: every trial for
// each backend, per-backend aggregates, and the speedup line (or a placeholder
// when the native side has no pipeline for the query).
func RenderComparison(w io.Writer, comparisons []Comparison) error {
	if len(comparisons) == 0 {
		return fmt.Errorf("no results to report")
	}
	for _, c := range comparisons {
		fmt.Fprintf(w, "=== %v ===\n", c.Name)
		renderTrials(w, c.Bridge)
		renderTrials(w, c.Native)
		if !c.Native.Present {
			fmt.Fprintf(w, "speedup: no %v implementation for %v\n\n", c.Native.Backend, c.Name)
			continue
		}
		ratio, faster, ok := Speedup(c.Bridge.Backend, c.Bridge.Summary.AvgMs, c.Native.Backend, c.Native.Summary.AvgMs)
		if !ok {
			fmt.Fprintf(w, "speedup: not comparable\n\n")
			continue
		}
		fmt.Fprintf(w, "speedup: %v is %.2fx faster\n\n", faster, ratio)
	}
	return nil
}

func renderTrials(w io.Writer, bt BackendTrials) {
	if !bt.Present {
		return
	}
	for _, trial := range bt.Trials {
		fmt.Fprintf(w, "  %-10v trial %v: %10.2f ms\n", bt.Backend, trial.Iteration, trial.ElapsedMs)
	}
	fmt.Fprintf(w, "  %-10v avg %.2f ms  min %.2f ms  max %.2f ms\n", bt.Backend, bt.Summary.AvgMs, bt.Summary.MinMs, bt.Summary.MaxMs)
}

// RenderComparisonSummary writes the compact dual-backend report: a summary
// block per backend plus an overall speedup computed over the queries both
// backends implemented.
func RenderComparisonSummary(w io.Writer, bridge string, native string, aggregator *Aggregator) error {
	bridgeSummaries := aggregator.Summaries(bridge)
	bridgeCorpus, ok := aggregator.Corpus(bridge)
	if !ok {
		return fmt.Errorf("no results to report")
	}
	fmt.Fprintf(w, "-- %v --\n", bridge)
	if err := RenderSummary(w, bridgeSummaries, bridgeCorpus); err != nil {
		return err
	}

	nativeSummaries := aggregator.Summaries(native)
	if nativeCorpus, ok := aggregator.Corpus(native); ok {
		fmt.Fprintf(w, "\n-- %v --\n", native)
		if err := RenderSummary(w, nativeSummaries, nativeCorpus); err != nil {
			return err
		}
	}
	fmt.Fprintln(w)

	bridgeTotal, nativeTotal, shared := sharedTotals(bridgeSummaries, nativeSummaries)
	if shared == 0 {
		fmt.Fprintln(w, "Overall: no queries implemented by both backends")
		return nil
	}
	ratio, faster, ok := Speedup(bridge, bridgeTotal, native, nativeTotal)
	if !ok {
		fmt.Fprintln(w, "Overall: not comparable")
		return nil
	}
	fmt.Fprintf(w, "Overall: %v is %.2fx faster over %v shared queries (%.2f ms vs %.2f ms)\n",
		faster, ratio, shared, bridgeTotal, nativeTotal)
	return nil
}

// sharedTotals sums per-query averages over the intersection of the two
// backends' implemented queries, so missing native pipelines do not skew
// the overall ratio.
func sharedTotals(bridge []QuerySummary, native []QuerySummary) (float64, float64, int) {
	nativeByName := make(map[string]QuerySummary, len(native))
	for _, s := range native {
		nativeByName[s.Name] = s
	}
	bridgeTotal, nativeTotal, shared := 0.0, 0.0, 0
	for _, s := range bridge {
		other, ok := nativeByName[s.Name]
		if !ok {
			continue
		}
		bridgeTotal += s.AvgMs
		nativeTotal += other.AvgMs
		shared++
	}
	return bridgeTotal, nativeTotal, shared
}
