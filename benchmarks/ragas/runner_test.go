// ABOUTME: Tests for the benchmark runner
// ABOUTME: Runs every scenario offline with the hashing embedder

package ragas

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/harper/tweetsim/internal/embedding"
	"github.com/harper/tweetsim/internal/llm"
)

type echoCompleter struct{}

func (echoCompleter) Complete(_ context.Context, req llm.CompletionRequest) (string, error) {
	// Echo the prompt so faithfulness reflects what was retrieved
	return req.User, nil
}

func TestRunAllTests_Hashing(t *testing.T) {
	runner := NewBenchmarkRunner(embedding.NewHashing(embedding.DefaultHashingDimension), nil, false)

	results, err := runner.RunAllTests(context.Background())
	if err != nil {
		t.Fatalf("RunAllTests() error = %v", err)
	}
	if len(results) != len(GetAllTests()) {
		t.Fatalf("got %d results, want %d", len(results), len(GetAllTests()))
	}

	for _, result := range results {
		if result.Status != "PASS" {
			t.Errorf("%s: status = %s, details = %v", result.TestID, result.Status, result.Details)
		}
	}
}

func TestRunTest_WithCompleter(t *testing.T) {
	runner := NewBenchmarkRunner(embedding.NewHashing(embedding.DefaultHashingDimension), echoCompleter{}, false)

	result, err := runner.RunTest(context.Background(), GetTest2A())
	if err != nil {
		t.Fatalf("RunTest() error = %v", err)
	}
	if result.FaithfulnessScore == nil || *result.FaithfulnessScore != 1.0 {
		t.Errorf("faithfulness = %v, want 1.0", result.FaithfulnessScore)
	}
}

func TestExportResults(t *testing.T) {
	runner := NewBenchmarkRunner(embedding.NewHashing(8), nil, false)
	path := filepath.Join(t.TempDir(), "results.json")

	results := []TestResult{
		{TestID: "a", Status: "PASS"},
		{TestID: "b", Status: "FAIL"},
	}
	if err := runner.ExportResults(results, path); err != nil {
		t.Fatalf("ExportResults() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	var summary struct {
		Model  string `json:"model"`
		Passed int    `json:"passed"`
		Failed int    `json:"failed"`
	}
	if err := json.Unmarshal(data, &summary); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if summary.Passed != 1 || summary.Failed != 1 {
		t.Errorf("summary = %+v, want 1 passed and 1 failed", summary)
	}
	if summary.Model != "hashing-8" {
		t.Errorf("model = %q, want hashing-8", summary.Model)
	}
}
