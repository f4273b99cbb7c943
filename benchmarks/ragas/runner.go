// ABOUTME: Test runner for retrieval benchmarks - executes scenarios and collects results
// ABOUTME: Builds a throwaway index per scenario, retrieves, optionally simulates, and scores

package ragas

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/harper/tweetsim/internal/core"
	"github.com/harper/tweetsim/internal/embedding"
	"github.com/harper/tweetsim/internal/storage/sqlite"
)

// BenchmarkRunner executes benchmark tests
type BenchmarkRunner struct {
	encoder   *embedding.Encoder
	completer core.Completer
	metrics   *MetricsCalculator
	verbose   bool
}

// NewBenchmarkRunner creates a runner. completer may be nil to skip simulation.
func NewBenchmarkRunner(provider embedding.Provider, completer core.Completer, verbose bool) *BenchmarkRunner {
	return &BenchmarkRunner{
		encoder:   embedding.NewEncoder(provider, 0),
		completer: completer,
		metrics:   NewMetricsCalculator(),
		verbose:   verbose,
	}
}

// RunTest executes a single benchmark test on a fresh in-memory index
func (r *BenchmarkRunner) RunTest(ctx context.Context, scenario TestScenario) (TestResult, error) {
	if r.verbose {
		fmt.Printf("\n========================================\n")
		fmt.Printf("RUNNING: %s\n", scenario.Name)
		fmt.Printf("========================================\n")
		fmt.Printf("Description: %s\n\n", scenario.Description)
	}

	tmpDir, err := os.MkdirTemp("", "tweetsim_bench_"+scenario.ID)
	if err != nil {
		return TestResult{}, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	corpusPath := filepath.Join(tmpDir, "tweets.csv")
	if err := writeCorpus(corpusPath, scenario.Corpus); err != nil {
		return TestResult{}, fmt.Errorf("setup failed: %w", err)
	}

	store, err := sqlite.NewStoreInMemory()
	if err != nil {
		return TestResult{}, fmt.Errorf("failed to create test storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	if _, err := core.NewBuilder(r.encoder, store).Build(ctx, corpusPath); err != nil {
		return TestResult{}, fmt.Errorf("build failed: %w", err)
	}

	retriever := core.NewRetriever(r.encoder, store, core.ModePersisted)
	results, err := retriever.Retrieve(ctx, scenario.Celebrity, scenario.Event, scenario.TopK)
	if err != nil {
		return TestResult{}, fmt.Errorf("retrieval failed: %w", err)
	}

	retrieved := make([]string, len(results))
	for i, res := range results {
		retrieved[i] = res.Text
		if r.verbose {
			fmt.Printf("  [%.3f] %s\n", res.Score, res.Text)
		}
	}

	prompt := core.BuildPrompt(scenario.Celebrity, scenario.Event, results)

	var response string
	if r.completer != nil {
		sim, err := core.NewSimulator(retriever, r.completer).
			Simulate(ctx, scenario.Celebrity, scenario.Event, scenario.TopK)
		if err != nil {
			return TestResult{}, fmt.Errorf("simulation failed: %w", err)
		}
		response = sim.Output
	}

	return r.metrics.EvaluateTest(scenario, retrieved, prompt, response), nil
}

// RunAllTests executes all benchmark tests
func (r *BenchmarkRunner) RunAllTests(ctx context.Context) ([]TestResult, error) {
	scenarios := GetAllTests()
	results := make([]TestResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		result, err := r.RunTest(ctx, scenario)
		if err != nil {
			return nil, fmt.Errorf("test %s failed: %w", scenario.ID, err)
		}
		results = append(results, result)
	}

	return results, nil
}

// ExportResults exports test results to JSON
func (r *BenchmarkRunner) ExportResults(results []TestResult, outputPath string) error {
	passed := 0
	for _, result := range results {
		if result.Status == "PASS" {
			passed++
		}
	}

	summary := map[string]interface{}{
		"timestamp":   time.Now().Format(time.RFC3339),
		"model":       r.encoder.Model(),
		"total_tests": len(results),
		"passed":      passed,
		"failed":      len(results) - passed,
		"results":     results,
	}

	jsonData, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write results file: %w", err)
	}
	return nil
}

// writeCorpus writes rows as a celebrity,date,text CSV
func writeCorpus(path string, rows []CorpusRow) error {
	file, err := os.Create(path) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to create corpus: %w", err)
	}
	defer func() { _ = file.Close() }()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"celebrity", "date", "text"}); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write([]string{row.Celebrity, row.Date, row.Text}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
