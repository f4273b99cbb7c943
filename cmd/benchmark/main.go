// ABOUTME: Command-line benchmark runner for retrieval quality
// ABOUTME: Executes benchmark scenarios with the configured embedder and outputs JSON results

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/harper/tweetsim/benchmarks/ragas"
	"github.com/harper/tweetsim/internal/app"
	"github.com/harper/tweetsim/internal/config"
	"github.com/harper/tweetsim/internal/core"
	"github.com/harper/tweetsim/internal/llm"
)

func main() {
	testID := flag.String("test", "", "Run specific test (1a, 1b, 2a). If empty, runs all tests.")
	outputPath := flag.String("output", "benchmark_results.json", "Output path for JSON results")
	simulate := flag.Bool("simulate", false, "Also call the chat model and score its response (needs OPENAI_API_KEY)")
	verbose := flag.Bool("verbose", false, "Enable verbose output")
	flag.Parse()

	if err := config.LoadEnvFiles(); err != nil {
		log.Printf("Failed to load .env (continuing anyway): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	provider, err := app.NewProvider(cfg)
	if err != nil {
		log.Fatalf("Failed to create embedder: %v", err)
	}

	var completer core.Completer
	if *simulate {
		if err := cfg.RequireOpenAIKey(); err != nil {
			log.Fatal("OPENAI_API_KEY environment variable is required with -simulate")
		}
		client, err := llm.NewOpenAIClientWithConfig(&llm.ClientConfig{
			APIKey:    cfg.OpenAIKey,
			BaseURL:   cfg.OpenAIBaseURL,
			ChatModel: cfg.ChatModel,
			Timeout:   cfg.Timeout,
		})
		if err != nil {
			log.Fatalf("Failed to create chat client: %v", err)
		}
		completer = client
	}

	fmt.Println("========================================")
	fmt.Println("tweetsim Retrieval Benchmarks")
	fmt.Println("========================================")
	fmt.Printf("Embedder: %s\n\n", provider.Name())

	runner := ragas.NewBenchmarkRunner(provider, completer, *verbose)
	ctx := context.Background()

	var results []ragas.TestResult
	if *testID == "" {
		fmt.Println("Running all benchmark tests...")
		results, err = runner.RunAllTests(ctx)
		if err != nil {
			log.Fatalf("Benchmark failed: %v", err)
		}
	} else {
		var scenario ragas.TestScenario
		switch *testID {
		case "1a":
			scenario = ragas.GetTest1A()
		case "1b":
			scenario = ragas.GetTest1B()
		case "2a":
			scenario = ragas.GetTest2A()
		default:
			log.Fatalf("Unknown test ID: %s (valid options: 1a, 1b, 2a)", *testID)
		}

		fmt.Printf("Running test: %s\n", scenario.Name)
		result, err := runner.RunTest(ctx, scenario)
		if err != nil {
			log.Fatalf("Test failed: %v", err)
		}
		results = []ragas.TestResult{result}
	}

	fmt.Println("\n========================================")
	fmt.Println("BENCHMARK SUMMARY")
	fmt.Println("========================================")

	failed := 0
	for _, result := range results {
		fmt.Printf("\n%s: %s\n", result.TestID, result.TestName)
		fmt.Printf("  Context Recall:    %.2f\n", result.ContextRecallScore)
		fmt.Printf("  Context Precision: %.2f\n", result.ContextPrecisionScore)
		fmt.Printf("  Prompt Fidelity:   %.2f\n", result.PromptFidelityScore)
		if result.FaithfulnessScore != nil {
			fmt.Printf("  Faithfulness:      %.2f\n", *result.FaithfulnessScore)
		}
		fmt.Printf("  Overall: %.2f\n", result.OverallScore)
		fmt.Printf("  Status: %s\n", result.Status)
		if result.Status != "PASS" {
			failed++
		}
	}

	fmt.Println("\n========================================")
	fmt.Printf("Total Tests: %d\n", len(results))
	fmt.Printf("Passed: %d\n", len(results)-failed)
	fmt.Printf("Failed: %d\n", failed)
	fmt.Println("========================================")

	if err := runner.ExportResults(results, *outputPath); err != nil {
		log.Fatalf("Failed to export results: %v", err)
	}
	fmt.Printf("Results exported to: %s\n", *outputPath)

	if failed > 0 {
		os.Exit(1)
	}
}
