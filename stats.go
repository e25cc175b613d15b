package main

// QuerySummary reduces one query's trials on one backend.
type QuerySummary struct {
	Name    string
	AvgMs   float64
	MinMs   float64
	MaxMs   float64
	Samples int
}

// CorpusSummary reduces a whole backend's per-query summaries. TotalMs is
// the sum of per-query averages, not of individual trials, so differing
// iteration counts across queries do not skew it.
type CorpusSummary struct {
	TotalMs    float64
	PerQueryMs float64
	Fastest    QuerySummary
	Slowest    QuerySummary
}

// Aggregator accumulates trial results grouped by backend and query,
// preserving catalog insertion order for iteration and tie-breaking.
// Single writer, read only after the iterate phase.
type Aggregator struct {
	order   []string
	samples map[string]map[string][]float64
}

func NewAggregator(catalog []CatalogEntry) *Aggregator {
	order := make([]string, 0, len(catalog))
	for _, entry := range catalog {
		order = append(order, entry.Name)
	}
	return &Aggregator{
		order:   order,
		samples: make(map[string]map[string][]float64),
	}
}

func (a *Aggregator) Record(trial TrialResult) {
	byQuery, ok := a.samples[trial.Backend]
	if !ok {
		byQuery = make(map[string][]float64)
		a.samples[trial.Backend] = byQuery
	}
	byQuery[trial.Query] = append(byQuery[trial.Query], trial.ElapsedMs)
}

// Query summarizes one query on one backend; ok is false when no trial was
// recorded for it (absent measurements leave no trace here).
func (a *Aggregator) Query(backend string, name string) (QuerySummary, bool) {
	samples := a.samples[backend][name]
	if len(samples) == 0 {
		return QuerySummary{}, false
	}
	summary := QuerySummary{
		Name:    name,
		MinMs:   samples[0],
		MaxMs:   samples[0],
		Samples: len(samples),
	}
	total := 0.0
	for _, value := range samples {
		total += value
		summary.MinMs = min(summary.MinMs, value)
		summary.MaxMs = max(summary.MaxMs, value)
	}
	summary.AvgMs = total / float64(len(samples))
	return summary, true
}

func (a *Aggregator) Summaries(backend string) []QuerySummary {
	summaries := make([]QuerySummary, 0, len(a.order))
	for _, name := range a.order {
		if summary, ok := a.Query(backend, name); ok {
			summaries = append(summaries, summary)
		}
	}
	return summaries
}

func (a *Aggregator) Corpus(backend string) (CorpusSummary, bool) {
	summaries := a.Summaries(backend)
	if len(summaries) == 0 {
		return CorpusSummary{}, false
	}
	corpus := CorpusSummary{Fastest: summaries[0], Slowest: summaries[0]}
	for _, summary := range summaries {
		corpus.TotalMs += summary.AvgMs
		// strict comparisons keep the earliest catalog entry on ties
		if summary.AvgMs < corpus.Fastest.AvgMs {
			corpus.Fastest = summary
		}
		if summary.AvgMs > corpus.Slowest.AvgMs {
			corpus.Slowest = summary
		}
	}
	corpus.PerQueryMs = corpus.TotalMs / float64(len(summaries))
	return corpus, true
}

// Speedup relates two backend averages. The returned ratio is avgB/avgA
// when that exceeds 1 (backend A faster), otherwise its reciprocal with
// backend B labeled faster. ok is false when either average is zero.
func Speedup(nameA string, avgA float64, nameB string, avgB float64) (ratio float64, faster string, ok bool) {
	if avgA <= 0 || avgB <= 0 {
		return 0, "", false
	}
	ratio = avgB / avgA
	if ratio > 1 {
		return ratio, nameA, true
	}
	return 1 / ratio, nameB, true
}
