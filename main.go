package main

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := godotenv.Load(); err == nil {
		Logger.Infof("loaded configuration from .env")
	}
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		Logger.Errorf("%v", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "mongobench",
		Short:         "Benchmark DuckDB's MongoDB storage extension against native MongoDB",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd())
	root.AddCommand(newCompareCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var (
		archivePath string
		show        bool
	)

	cmd := &cobra.Command{
		Use:   "run [query|all] [iterations]",
		Short: "Time queries through the DuckDB bridge and append every trial to a CSV log",
		Args:  cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			iterations, err := parseIterations(args, 5)
			if err != nil {
				return err
			}
			return runSingle(LoadConfig(), selectorArg(args), iterations, archivePath, show)
		},
	}
	cmd.Flags().StringVar(&archivePath, "archive", "",
		"Also record trials into a SQLite archive at this path")
	cmd.Flags().BoolVar(&show, "show", false,
		"Run each query once and print the raw backend output before benchmarking")
	return cmd
}

func newCompareCmd() *cobra.Command {
	var (
		verbose bool
		show    bool
	)

	cmd := &cobra.Command{
		Use:   "compare [query|all] [iterations]",
		Short: "Time queries through the DuckDB bridge and native MongoDB pipelines",
		Args:  cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			iterations, err := parseIterations(args, 3)
			if err != nil {
				return err
			}
			return runCompare(LoadConfig(), selectorArg(args), iterations, verbose, show)
		},
	}
	cmd.Flags().BoolVar(&verbose, "verbose", false,
		"Print every trial and a per-query speedup instead of the summary")
	cmd.Flags().BoolVar(&show, "show", false,
		"Run each query once and print the raw backend output before benchmarking")
	return cmd
}

func selectorArg(args []string) string {
	if len(args) == 0 {
		return "all"
	}
	return args[0]
}

func parseIterations(args []string, def int) (int, error) {
	if len(args) < 2 {
		return def, nil
	}
	iterations, err := strconv.Atoi(args[1])
	if err != nil || iterations < 1 {
		return 0, fmt.Errorf("invalid iteration count %v", args[1])
	}
	return iterations, nil
}

// setup validates the run prerequisites before any measurement is
// attempted: the duckdb binary must resolve, the corpus must exist, and in
// comparison mode so must the pipeline driver. Any failure here is fatal.
func setup(config Config, selector string, pipelines bool) ([]CatalogEntry, error) {
	if _, err := exec.LookPath(config.DuckDbBin); err != nil {
		return nil, fmt.Errorf("duckdb binary %v not found: %w", config.DuckDbBin, err)
	}
	if _, err := os.Stat(config.Queries); err != nil {
		return nil, fmt.Errorf("query corpus %v not found: %w", config.Queries, err)
	}
	if pipelines {
		if _, err := os.Stat(config.Pipelines); err != nil {
			return nil, fmt.Errorf("pipeline driver %v not found: %w", config.Pipelines, err)
		}
	}
	catalog, err := LoadCatalog(config.Queries)
	if err != nil {
		return nil, err
	}
	return SelectEntries(catalog, selector)
}

func runSingle(config Config, selector string, iterations int, archivePath string, show bool) error {
	entries, err := setup(config, selector, false)
	if err != nil {
		return err
	}

	info := HostStat()
	Logger.Infof("host stat: %+v", info)
	Logger.Infof("benchmarking %v queries, %v iterations each", len(entries), iterations)

	duckdb := &BackendDuckdb{Bin: config.DuckDbBin, Attach: config.Attach, Db: config.MongoDb}

	trialLog, err := OpenTrialLog(config.ResultsDir, time.Now())
	if err != nil {
		return err
	}
	defer trialLog.Close()
	Logger.Infof("recording trials to %v", trialLog.Path())

	var archive *Archive
	if archivePath != "" {
		archive, err = OpenArchive(archivePath)
		if err != nil {
			return fmt.Errorf("failed to open archive %v: %w", archivePath, err)
		}
		defer archive.Close()
		err = archive.RecordParameters(map[string]any{
			"time":       time.Now().Format("2006-01-02 15:04:05"),
			"database":   config.MongoDb,
			"iterations": iterations,
			"arch":       info.Arch,
			"hostname":   info.Hostname,
			"platform":   info.Platform,
			"ram":        info.RAM,
			"cpu":        info.CPUCount,
			"freq":       info.CPUFreq,
		})
		if err != nil {
			return fmt.Errorf("failed to record archive parameters: %w", err)
		}
	}

	if err := duckdb.Ping(); err != nil {
		Logger.Warnf("connection warmup failed: %v", err)
	}

	aggregator := NewAggregator(entries)
	runner := &Runner{
		Iterations: iterations,
		Show:       show,
		OnTrial: func(trial TrialResult) {
			if err := trialLog.Append(trial); err != nil {
				Logger.Warnf("failed to append trial to %v: %v", trialLog.Path(), err)
			}
		},
	}
	for _, entry := range entries {
		trials := runner.Bench(entry, duckdb)
		for _, trial := range trials {
			aggregator.Record(trial)
		}
		if archive != nil {
			if err := archive.RecordTrials(trials); err != nil {
				Logger.Warnf("failed to archive trials for %v: %v", entry.Name, err)
			}
		}
	}

	corpus, ok := aggregator.Corpus(duckdb.Name())
	if !ok {
		return fmt.Errorf("no trials recorded")
	}
	return RenderSummary(os.Stdout, aggregator.Summaries(duckdb.Name()), corpus)
}

func runCompare(config Config, selector string, iterations int, verbose bool, show bool) error {
	entries, err := setup(config, selector, true)
	if err != nil {
		return err
	}

	info := HostStat()
	Logger.Infof("host stat: %+v", info)
	Logger.Infof("comparing %v queries, %v iterations each", len(entries), iterations)

	duckdb := &BackendDuckdb{Bin: config.DuckDbBin, Attach: config.Attach, Db: config.MongoDb}
	mongo := &BackendMongo{
		Script:   config.Pipelines,
		Host:     config.MongoHost,
		Port:     config.MongoPort,
		Database: config.MongoDb,
	}

	if err := duckdb.Ping(); err != nil {
		Logger.Warnf("connection warmup failed: %v", err)
	}

	aggregator := NewAggregator(entries)
	runner := &Runner{Iterations: iterations, Show: show}
	comparisons := make([]Comparison, 0, len(entries))
	for _, entry := range entries {
		bridgeTrials := runner.Bench(entry, duckdb)
		for _, trial := range bridgeTrials {
			aggregator.Record(trial)
		}
		nativeTrials := runner.Bench(entry, mongo)
		for _, trial := range nativeTrials {
			aggregator.Record(trial)
		}

		bridgeSummary, bridgeOk := aggregator.Query(duckdb.Name(), entry.Name)
		nativeSummary, nativeOk := aggregator.Query(mongo.Name(), entry.Name)
		comparisons = append(comparisons, Comparison{
			Name: entry.Name,
			Bridge: BackendTrials{
				Backend: duckdb.Name(),
				Trials:  bridgeTrials,
				Summary: bridgeSummary,
				Present: bridgeOk,
			},
			Native: BackendTrials{
				Backend: mongo.Name(),
				Trials:  nativeTrials,
				Summary: nativeSummary,
				Present: nativeOk,
			},
		})
	}

	if verbose {
		return RenderComparison(os.Stdout, comparisons)
	}
	return RenderComparisonSummary(os.Stdout, duckdb.Name(), mongo.Name(), aggregator)
}
