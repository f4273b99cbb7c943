// ABOUTME: End-to-end tests for the build, retrieve, simulate, celebrities, and export commands
// ABOUTME: Uses the hashing embedder and a temp SQLite index so no network is needed

package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/harper/tweetsim/internal/app"
	"github.com/harper/tweetsim/internal/config"
	"github.com/harper/tweetsim/internal/embedding"
	"github.com/harper/tweetsim/internal/llm"
	"github.com/harper/tweetsim/internal/storage/sqlite"
)

const testCorpus = "celebrity,date,text\n" +
	"A,2021-01-01,I love BTC\n" +
	"A,2021-02-02,Stocks are crashing\n" +
	"B,2021-01-01,Hello world\n"

// runCLI executes the root command with args and returns combined output
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return output.String(), err
}

// setupEnv points the CLI at a temp corpus and index using the hashing embedder
func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)

	color.NoColor = true

	for _, key := range []string{
		"OPENAI_API_KEY", "OPENAI_BASE_URL", "TWEETSIM_CHAT_MODEL", "TWEETSIM_HTTP_TIMEOUT",
		"TWEETSIM_EMBEDDING_MODEL", "OLLAMA_HOST", "TWEETSIM_EMBED_BATCH_SIZE",
		"CHARM_HOST", "CHARM_DB", "TWEETSIM_TEMPERATURE", "TWEETSIM_MAX_TOKENS",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("TWEETSIM_EMBEDDER", config.EmbedderHashing)
	t.Setenv("TWEETSIM_STORE", config.StoreSQLite)
	t.Setenv("TWEETSIM_RETRIEVAL_MODE", config.RetrievalPersisted)
	t.Setenv("TWEETSIM_DATA_PATH", filepath.Join(dir, "tweets.csv"))
	t.Setenv("TWEETSIM_DB_PATH", filepath.Join(dir, "embeddings", "tweets.db"))

	if err := os.WriteFile(filepath.Join(dir, "tweets.csv"), []byte(testCorpus), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return dir
}

func mustBuild(t *testing.T) {
	t.Helper()
	if out, err := runCLI(t, "build"); err != nil {
		t.Fatalf("build failed: %v\n%s", err, out)
	}
}

type fakeCompleter struct {
	calls int
	last  llm.CompletionRequest
}

func (f *fakeCompleter) Complete(_ context.Context, req llm.CompletionRequest) (string, error) {
	f.calls++
	f.last = req
	return "to the moon", nil
}

// useCompleter makes loadApp hand out apps whose chat model is completer
func useCompleter(t *testing.T, completer *fakeCompleter) {
	t.Helper()
	original := openApp
	t.Cleanup(func() { openApp = original })

	openApp = func(cfg *config.Config) (*app.App, error) {
		store, err := sqlite.NewStore(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		provider := embedding.NewHashing(embedding.DefaultHashingDimension)
		return app.NewWithDeps(cfg, store, provider, completer), nil
	}
}

func TestBuildCmd(t *testing.T) {
	setupEnv(t)

	output, err := runCLI(t, "build")
	if err != nil {
		t.Fatalf("build error = %v", err)
	}

	for _, want := range []string{
		"Indexed 3 tweets from 2 celebrities",
		"Model: hashing-384 (dimension 384)",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output should contain %q, got:\n%s", want, output)
		}
	}
}

func TestBuildCmd_MissingCorpus(t *testing.T) {
	dir := setupEnv(t)
	t.Setenv("TWEETSIM_DATA_PATH", filepath.Join(dir, "missing.csv"))

	if _, err := runCLI(t, "build"); err == nil {
		t.Fatal("build should fail when the corpus is missing")
	}
}

func TestRetrieveCmd(t *testing.T) {
	setupEnv(t)
	mustBuild(t)

	output, err := runCLI(t, "retrieve", "--celebrity", "A", "--event", "love btc", "--top_k", "1")
	if err != nil {
		t.Fatalf("retrieve error = %v", err)
	}

	if !strings.Contains(output, "I love BTC") {
		t.Errorf("output should contain the matching tweet, got:\n%s", output)
	}
	if strings.Contains(output, "Hello world") {
		t.Errorf("output should only contain A's tweets, got:\n%s", output)
	}
	if !strings.Contains(output, "Found 1 tweet(s) for A") {
		t.Errorf("output should report the count, got:\n%s", output)
	}
}

func TestRetrieveCmd_JSON(t *testing.T) {
	setupEnv(t)
	mustBuild(t)

	output, err := runCLI(t, "--quiet", "--format", "json", "retrieve", "--celebrity", "A", "--event", "anything")
	if err != nil {
		t.Fatalf("retrieve error = %v", err)
	}

	var results []struct {
		Celebrity string  `json:"celebrity"`
		Text      string  `json:"text"`
		Score     float64 `json:"score"`
	}
	if err := json.Unmarshal([]byte(output), &results); err != nil {
		t.Fatalf("invalid JSON %q: %v", output, err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2 (clamped to A's tweets)", len(results))
	}
	for _, r := range results {
		if r.Celebrity != "A" {
			t.Errorf("result from %q, want A", r.Celebrity)
		}
	}
}

func TestRetrieveCmd_Errors(t *testing.T) {
	setupEnv(t)
	mustBuild(t)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"unknown celebrity", []string{"retrieve", "--celebrity", "Nobody", "--event", "x"}, "No tweets found for Nobody"},
		{"missing event", []string{"retrieve", "--celebrity", "A"}, "event"},
		{"zero top_k", []string{"retrieve", "--celebrity", "A", "--event", "x", "--top_k", "0"}, "top_k must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestRetrieveCmd_NoIndex(t *testing.T) {
	setupEnv(t)

	_, err := runCLI(t, "retrieve", "--celebrity", "A", "--event", "x")
	if err == nil || !strings.Contains(err.Error(), "run the build command first") {
		t.Errorf("error = %v, want the no-index message", err)
	}
}

func TestSimulateCmd(t *testing.T) {
	setupEnv(t)
	mustBuild(t)

	completer := &fakeCompleter{}
	useCompleter(t, completer)

	output, err := runCLI(t, "simulate", "--celebrity", "A", "--event", "love btc", "--top_k", "1")
	if err != nil {
		t.Fatalf("simulate error = %v", err)
	}

	wantOrder := []string{
		"Simulating response for A to event: love btc",
		"=== Prompt Sent to LLM ===",
		"- (2021-01-01): I love BTC",
		"=== Simulated Response ===",
		"to the moon",
	}
	last := -1
	for _, want := range wantOrder {
		idx := strings.Index(output, want)
		if idx < 0 {
			t.Fatalf("output should contain %q, got:\n%s", want, output)
		}
		if idx < last {
			t.Errorf("%q printed out of order", want)
		}
		last = idx
	}

	if completer.calls != 1 {
		t.Errorf("completer called %d times, want 1", completer.calls)
	}
	if completer.last.MaxTokens != 300 || completer.last.Temperature != 0.3 {
		t.Errorf("generation params = %v/%d, want 0.3/300", completer.last.Temperature, completer.last.MaxTokens)
	}
}

func TestSimulateCmd_NotFoundSkipsLLM(t *testing.T) {
	setupEnv(t)
	mustBuild(t)

	completer := &fakeCompleter{}
	useCompleter(t, completer)

	_, err := runCLI(t, "simulate", "--celebrity", "Nobody", "--event", "x")
	if err == nil || !strings.Contains(err.Error(), "No tweets found for Nobody") {
		t.Fatalf("error = %v, want not-found", err)
	}
	if completer.calls != 0 {
		t.Errorf("completer called %d times, want 0", completer.calls)
	}
}

func TestSimulateCmd_RequiresAPIKey(t *testing.T) {
	setupEnv(t)
	mustBuild(t)

	_, err := runCLI(t, "simulate", "--celebrity", "A", "--event", "x")
	if err == nil || !strings.Contains(err.Error(), "OPENAI_API_KEY") {
		t.Errorf("error = %v, want missing key error", err)
	}
}

func TestSimulateCmd_UnknownCelebrityWithoutKey(t *testing.T) {
	setupEnv(t)
	mustBuild(t)

	_, err := runCLI(t, "simulate", "--celebrity", "Nobody", "--event", "x")
	if err == nil || !strings.Contains(err.Error(), "No tweets found for Nobody") {
		t.Errorf("error = %v, want not found before the missing key", err)
	}
}

func TestCelebritiesCmd(t *testing.T) {
	setupEnv(t)
	mustBuild(t)

	output, err := runCLI(t, "celebrities")
	if err != nil {
		t.Fatalf("celebrities error = %v", err)
	}

	for _, want := range []string{"CELEBRITY", "2021-01-01", "2021-02-02", "2 celebrit(ies)"} {
		if !strings.Contains(output, want) {
			t.Errorf("output should contain %q, got:\n%s", want, output)
		}
	}
}

func TestExportCmd(t *testing.T) {
	dir := setupEnv(t)
	mustBuild(t)

	t.Run("stdout yaml", func(t *testing.T) {
		output, err := runCLI(t, "export")
		if err != nil {
			t.Fatalf("export error = %v", err)
		}
		for _, want := range []string{"tool: tweetsim", "embedding_model: hashing-384", "text: I love BTC"} {
			if !strings.Contains(output, want) {
				t.Errorf("output should contain %q", want)
			}
		}
	})

	t.Run("json file", func(t *testing.T) {
		path := filepath.Join(dir, "out", "index.json")
		if _, err := runCLI(t, "--quiet", "--format", "json", "export", "--output", path); err != nil {
			t.Fatalf("export error = %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		var exported struct {
			Tweets []json.RawMessage `json:"tweets"`
		}
		if err := json.Unmarshal(data, &exported); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(exported.Tweets) != 3 {
			t.Errorf("exported %d tweets, want 3", len(exported.Tweets))
		}
	})
}
