// ABOUTME: Tests for application wiring
// ABOUTME: Verifies provider selection and lazy chat client creation
package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harper/tweetsim/internal/config"
	"github.com/harper/tweetsim/internal/core"
	"github.com/harper/tweetsim/internal/embedding"
	"github.com/harper/tweetsim/internal/llm"
	"github.com/harper/tweetsim/internal/storage/sqlite"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Embedder:       config.EmbedderHashing,
		EmbedBatchSize: 64,
		DBPath:         filepath.Join(t.TempDir(), "embeddings", "tweets.db"),
		Store:          config.StoreSQLite,
		RetrievalMode:  config.RetrievalPersisted,
		Temperature:    0.3,
		MaxTokens:      300,
		Timeout:        time.Second,
		OllamaHost:     "http://localhost:11434",
	}
}

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name     string
		embedder string
		key      string
		wantName string
		wantErr  bool
	}{
		{"hashing", config.EmbedderHashing, "", "hashing-384", false},
		{"ollama", config.EmbedderOllama, "", "all-minilm", false},
		{"openai with key", config.EmbedderOpenAI, "k", "text-embedding-3-small", false},
		{"openai without key", config.EmbedderOpenAI, "", "", true},
		{"unknown", "word2vec", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.Embedder = tt.embedder
			cfg.OpenAIKey = tt.key

			provider, err := NewProvider(cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewProvider() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && provider.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", provider.Name(), tt.wantName)
			}
		})
	}
}

func TestNew_OpensStore(t *testing.T) {
	a, err := New(testConfig(t))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() { _ = a.Close() }()

	if a.Encoder.Model() != "hashing-384" {
		t.Errorf("Encoder.Model() = %q", a.Encoder.Model())
	}
	if a.Builder() == nil {
		t.Error("Builder() returned nil")
	}

	r, err := a.Retriever()
	if err != nil {
		t.Fatalf("Retriever() error = %v", err)
	}
	if r.Mode() != core.ModePersisted {
		t.Errorf("Mode() = %s, want persisted", r.Mode())
	}
}

func TestSimulator_ChatClientCreatedLazily(t *testing.T) {
	cfg := testConfig(t)
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() { _ = a.Close() }()

	path := filepath.Join(t.TempDir(), "tweets.csv")
	if err := os.WriteFile(path, []byte("celebrity,date,text\nA,2021-01-01,I love BTC\n"), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := a.Builder().Build(context.Background(), path); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	sim, err := a.Simulator()
	if err != nil {
		t.Fatalf("Simulator() error = %v, want nil without OPENAI_API_KEY", err)
	}

	tests := []struct {
		name      string
		celebrity string
		wantErr   string
	}{
		{"unknown celebrity reports not found", "Nobody", "No tweets found for Nobody"},
		{"known celebrity needs the key", "A", "OPENAI_API_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sim.Simulate(context.Background(), tt.celebrity, "bitcoin", 1)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Simulate() error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

type stubCompleter struct{}

func (stubCompleter) Complete(context.Context, llm.CompletionRequest) (string, error) {
	return "ok", nil
}

func TestSimulator_UsesInjectedCompleter(t *testing.T) {
	cfg := testConfig(t)
	store, err := sqlite.NewStoreInMemory()
	if err != nil {
		t.Fatalf("NewStoreInMemory() error = %v", err)
	}

	a := NewWithDeps(cfg, store, embedding.NewHashing(16), stubCompleter{})
	defer func() { _ = a.Close() }()

	if _, err := a.Simulator(); err != nil {
		t.Errorf("Simulator() error = %v, want nil with injected completer", err)
	}
	if a.Encoder.Model() != "hashing-16" {
		t.Errorf("Encoder.Model() = %q, want hashing-16", a.Encoder.Model())
	}
}

func TestRetriever_BadMode(t *testing.T) {
	cfg := testConfig(t)
	cfg.RetrievalMode = "cached"
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() { _ = a.Close() }()

	if _, err := a.Retriever(); err == nil {
		t.Error("Retriever() should fail for an unknown mode")
	}
}
