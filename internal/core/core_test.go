// ABOUTME: Shared fixtures for core tests
// ABOUTME: Concept embedder, corpus files, and in-memory stores
package core

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/harper/tweetsim/internal/embedding"
	"github.com/harper/tweetsim/internal/storage/sqlite"
)

// conceptEmbedder maps words onto a few topic axes, a tiny stand-in for a sentence model
type conceptEmbedder struct {
	name  string
	calls int
	texts int
}

var conceptAxes = map[string]int{
	"btc": 0, "bitcoin": 0, "crypto": 0, "satoshi": 0,
	"stocks": 1, "crashing": 1, "market": 1, "shares": 1,
	"hello": 2, "world": 2, "hi": 2,
}

var wordPattern = regexp.MustCompile(`[a-z]+`)

func (c *conceptEmbedder) Name() string {
	if c.name == "" {
		return "concept"
	}
	return c.name
}

func (c *conceptEmbedder) Embed(_ context.Context, texts []string) ([][]float64, error) {
	c.calls++
	c.texts += len(texts)
	out := make([][]float64, len(texts))
	for i, text := range texts {
		vec := make([]float64, 4)
		for _, word := range wordPattern.FindAllString(strings.ToLower(text), -1) {
			if axis, ok := conceptAxes[word]; ok {
				vec[axis]++
			} else {
				vec[3] += 0.1
			}
		}
		if vec[0]+vec[1]+vec[2]+vec[3] == 0 {
			vec[3] = 1
		}
		out[i] = vec
	}
	return out, nil
}

const scenarioCSV = `celebrity,date,text
A,2021-01-01,I love BTC
A,2021-02-02,Stocks are crashing
B,2021-01-01,Hello world
`

func writeCorpus(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tweets_merged.csv")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.NewStoreInMemory()
	if err != nil {
		t.Fatalf("NewStoreInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// builtStore returns a store holding the scenario corpus embedded with provider
func builtStore(t *testing.T, provider embedding.Provider) *sqlite.Store {
	t.Helper()
	store := newStore(t)
	builder := NewBuilder(embedding.NewEncoder(provider, 0), store)
	if _, err := builder.Build(context.Background(), writeCorpus(t, scenarioCSV)); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return store
}
