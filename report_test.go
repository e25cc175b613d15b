package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderSummary(t *testing.T) {
	aggregator := NewAggregator(catalogOf("q1", "q2"))
	record(aggregator, "duckdb", "q1", 100, 200)
	record(aggregator, "duckdb", "q2", 10, 20)

	corpus, ok := aggregator.Corpus("duckdb")
	require.True(t, ok)

	var buf bytes.Buffer
	err := RenderSummary(&buf, aggregator.Summaries("duckdb"), corpus)
	require.Nil(t, err)

	output := buf.String()
	require.Contains(t, output, "150.00 ms")
	require.Contains(t, output, "Total time (sum of per-query averages): 165.00 ms")
	require.Contains(t, output, "Per-query average: 82.50 ms")
	require.Contains(t, output, "Fastest query: q2 (15.00 ms)")
	require.Contains(t, output, "Slowest query: q1 (150.00 ms)")

	// the trailing list is re-sorted ascending by average
	sorted := output[strings.Index(output, "Queries by average time:"):]
	require.Less(t, strings.Index(sorted, "q2"), strings.Index(sorted, "q1"))
}

func TestRenderSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := RenderSummary(&buf, nil, CorpusSummary{})
	require.ErrorContains(t, err, "no results")
}

func TestRenderComparisonVerbose(t *testing.T) {
	comparisons := []Comparison{
		{
			Name: "q1",
			Bridge: BackendTrials{
				Backend: "duckdb",
				Trials: []TrialResult{
					{Query: "q1", Backend: "duckdb", Iteration: 1, ElapsedMs: 90},
					{Query: "q1", Backend: "duckdb", Iteration: 2, ElapsedMs: 110},
				},
				Summary: QuerySummary{Name: "q1", AvgMs: 100, MinMs: 90, MaxMs: 110, Samples: 2},
				Present: true,
			},
			Native: BackendTrials{
				Backend: "mongodb",
				Trials: []TrialResult{
					{Query: "q1", Backend: "mongodb", Iteration: 1, ElapsedMs: 240},
					{Query: "q1", Backend: "mongodb", Iteration: 2, ElapsedMs: 260},
				},
				Summary: QuerySummary{Name: "q1", AvgMs: 250, MinMs: 240, MaxMs: 260, Samples: 2},
				Present: true,
			},
		},
		{
			Name: "q2",
			Bridge: BackendTrials{
				Backend: "duckdb",
				Trials: []TrialResult{
					{Query: "q2", Backend: "duckdb", Iteration: 1, ElapsedMs: 50},
				},
				Summary: QuerySummary{Name: "q2", AvgMs: 50, MinMs: 50, MaxMs: 50, Samples: 1},
				Present: true,
			},
			Native: BackendTrials{Backend: "mongodb"},
		},
	}

	var buf bytes.Buffer
	err := RenderComparison(&buf, comparisons)
	require.Nil(t, err)

	output := buf.String()
	require.Contains(t, output, "=== q1 ===")
	require.Contains(t, output, "trial 1:")
	require.Contains(t, output, "trial 2:")
	require.Contains(t, output, "avg 100.00 ms  min 90.00 ms  max 110.00 ms")
	require.Contains(t, output, "speedup: duckdb is 2.50x faster")
	require.Contains(t, output, "speedup: no mongodb implementation for q2")
}

func TestRenderComparisonSummaryOverall(t *testing.T) {
	aggregator := NewAggregator(catalogOf("q1", "q2"))
	record(aggregator, "duckdb", "q1", 100)
	record(aggregator, "duckdb", "q2", 50)
	record(aggregator, "mongodb", "q1", 250)
	// q2 has no native pipeline: it must not skew the overall ratio

	var buf bytes.Buffer
	err := RenderComparisonSummary(&buf, "duckdb", "mongodb", aggregator)
	require.Nil(t, err)

	output := buf.String()
	require.Contains(t, output, "-- duckdb --")
	require.Contains(t, output, "-- mongodb --")
	require.Contains(t, output, "Overall: duckdb is 2.50x faster over 1 shared queries (100.00 ms vs 250.00 ms)")
}

func TestRenderComparisonSummaryNoShared(t *testing.T) {
	aggregator := NewAggregator(catalogOf("q1"))
	record(aggregator, "duckdb", "q1", 100)

	var buf bytes.Buffer
	err := RenderComparisonSummary(&buf, "duckdb", "mongodb", aggregator)
	require.Nil(t, err)
	require.Contains(t, buf.String(), "no queries implemented by both backends")
}
