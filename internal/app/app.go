// ABOUTME: Application context wiring config, storage, embedder, and LLM once per process
// ABOUTME: Commands and the MCP server get their Builder, Retriever, and Simulator here
package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/harper/tweetsim/internal/config"
	"github.com/harper/tweetsim/internal/core"
	"github.com/harper/tweetsim/internal/embedding"
	"github.com/harper/tweetsim/internal/llm"
	"github.com/harper/tweetsim/internal/storage"
)

// App holds the process-wide collaborators
type App struct {
	Config  *config.Config
	Store   storage.Store
	Encoder *embedding.Encoder

	completer core.Completer
	verbose   bool
}

// New opens the configured store and embedder
func New(cfg *config.Config) (*App, error) {
	provider, err := NewProvider(cfg)
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(cfg)
	if err != nil {
		return nil, err
	}

	return &App{
		Config:  cfg,
		Store:   store,
		Encoder: embedding.NewEncoder(provider, cfg.EmbedBatchSize),
	}, nil
}

// NewWithDeps assembles an App from ready-made parts (for testing)
func NewWithDeps(cfg *config.Config, store storage.Store, provider embedding.Provider, completer core.Completer) *App {
	return &App{
		Config:    cfg,
		Store:     store,
		Encoder:   embedding.NewEncoder(provider, cfg.EmbedBatchSize),
		completer: completer,
	}
}

// NewProvider builds the embedding provider named by cfg.Embedder
func NewProvider(cfg *config.Config) (embedding.Provider, error) {
	switch cfg.Embedder {
	case config.EmbedderOllama, "":
		client, err := llm.NewOllamaClient(cfg.OllamaHost, cfg.EmbeddingModel, cfg.Timeout)
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama embedder: %w", err)
		}
		return client, nil
	case config.EmbedderOpenAI:
		client, err := newOpenAIClient(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create openai embedder: %w", err)
		}
		return client, nil
	case config.EmbedderHashing:
		return embedding.NewHashing(embedding.DefaultHashingDimension), nil
	default:
		return nil, fmt.Errorf("unknown embedder %q", cfg.Embedder)
	}
}

func newOpenAIClient(cfg *config.Config) (*llm.OpenAIClient, error) {
	if err := cfg.RequireOpenAIKey(); err != nil {
		return nil, err
	}
	return llm.NewOpenAIClientWithConfig(&llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		BaseURL:        cfg.OpenAIBaseURL,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: cfg.EmbeddingModel,
		Timeout:        cfg.Timeout,
	})
}

// SetVerbose turns on step logging for builds
func (a *App) SetVerbose(verbose bool) {
	a.verbose = verbose
}

// Builder returns an Index Builder over the app's store
func (a *App) Builder() *core.Builder {
	b := core.NewBuilder(a.Encoder, a.Store)
	b.Verbose = a.verbose
	return b
}

// Retriever returns a Retriever in the configured mode
func (a *App) Retriever() (*core.Retriever, error) {
	mode, err := core.ParseRetrievalMode(a.Config.RetrievalMode)
	if err != nil {
		return nil, err
	}
	return core.NewRetriever(a.Encoder, a.Store, mode), nil
}

// Simulator returns a Simulator; the chat client is created on first use
func (a *App) Simulator() (*core.Simulator, error) {
	retriever, err := a.Retriever()
	if err != nil {
		return nil, err
	}

	if a.completer == nil {
		a.completer = &lazyCompleter{cfg: a.Config}
	}

	return core.NewSimulator(retriever, a.completer).
		WithGeneration(a.Config.Temperature, a.Config.MaxTokens), nil
}

// lazyCompleter defers chat client creation until a completion is needed,
// so retrieval errors surface before a missing API key does
type lazyCompleter struct {
	cfg    *config.Config
	mu     sync.Mutex
	client *llm.OpenAIClient
}

func (l *lazyCompleter) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	l.mu.Lock()
	if l.client == nil {
		client, err := newOpenAIClient(l.cfg)
		if err != nil {
			l.mu.Unlock()
			return "", fmt.Errorf("failed to create chat client: %w", err)
		}
		l.client = client
	}
	client := l.client
	l.mu.Unlock()

	return client.Complete(ctx, req)
}

// Close releases the store
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
