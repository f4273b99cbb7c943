// ABOUTME: Ollama client for local sentence embeddings
// ABOUTME: Defaults to all-minilm, the Ollama build of all-MiniLM-L6-v2
package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ollama/ollama/api"
)

const (
	// DefaultOllamaHost is where a local Ollama server listens
	DefaultOllamaHost = "http://localhost:11434"
	// DefaultOllamaEmbeddingModel produces 384-dimensional sentence embeddings
	DefaultOllamaEmbeddingModel = "all-minilm"
)

// OllamaClient embeds texts with a model served by Ollama
type OllamaClient struct {
	client *api.Client
	model  string
}

// NewOllamaClient creates a client for the Ollama server at host
func NewOllamaClient(host, model string, timeout time.Duration) (*OllamaClient, error) {
	if host == "" {
		host = DefaultOllamaHost
	}
	if model == "" {
		model = DefaultOllamaEmbeddingModel
	}

	base, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama host %q: %w", host, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid ollama host %q: need scheme and host", host)
	}

	httpClient := &http.Client{Timeout: timeout}

	return &OllamaClient{
		client: api.NewClient(base, httpClient),
		model:  model,
	}, nil
}

// Name returns the embedding model identifier
func (c *OllamaClient) Name() string {
	return c.model
}

// Embed generates one embedding per input text, in input order
func (c *OllamaClient) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	resp, err := c.client.Embed(ctx, &api.EmbedRequest{
		Model: c.model,
		Input: texts,
	})
	if err != nil {
		return nil, fmt.Errorf("ollama embed with %s: %w", c.model, err)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("ollama embed: got %d embeddings for %d inputs", len(resp.Embeddings), len(texts))
	}

	out := make([][]float64, len(resp.Embeddings))
	for i, e := range resp.Embeddings {
		vec := make([]float64, len(e))
		for j, v := range e {
			vec[j] = float64(v)
		}
		out[i] = vec
	}
	return out, nil
}
