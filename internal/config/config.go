// ABOUTME: Centralized configuration for the tweet simulator
// ABOUTME: Loads .env files and environment variables with validation and defaults
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
)

// Embedding providers
const (
	EmbedderOllama  = "ollama"
	EmbedderOpenAI  = "openai"
	EmbedderHashing = "hashing"
)

// Store backends
const (
	StoreSQLite = "sqlite"
	StoreCharm  = "charm"
)

// Retrieval modes
const (
	RetrievalPersisted = "persisted"
	RetrievalLive      = "live"
)

// Fixed relative defaults for the corpus and the index
const (
	DefaultDataPath = "data/tweets_merged.csv"
	DefaultDBPath   = "embeddings/tweets.db"
)

// Config holds all configuration for the simulator
type Config struct {
	// OpenAI settings
	OpenAIKey     string
	OpenAIBaseURL string
	ChatModel     string
	Timeout       time.Duration

	// Embedding settings
	Embedder       string
	EmbeddingModel string
	OllamaHost     string
	EmbedBatchSize int

	// Storage settings
	DataPath    string
	DBPath      string
	Store       string
	CharmHost   string
	CharmDBName string

	// Retrieval and generation settings
	RetrievalMode string
	Temperature   float64
	MaxTokens     int
}

// LoadEnvFiles loads .env from the working directory, then the user config dir.
// Variables already set in the environment are never overridden.
func LoadEnvFiles() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	path, err := xdg.SearchConfigFile("tweetsim/.env")
	if err != nil {
		// Not having a user config file is normal
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:  os.Getenv("OPENAI_BASE_URL"),
		ChatModel:      getEnv("TWEETSIM_CHAT_MODEL", "gpt-4o-mini"),
		Timeout:        getEnvDuration("TWEETSIM_HTTP_TIMEOUT", 60*time.Second),
		Embedder:       getEnv("TWEETSIM_EMBEDDER", EmbedderOllama),
		EmbeddingModel: os.Getenv("TWEETSIM_EMBEDDING_MODEL"),
		OllamaHost:     getEnv("OLLAMA_HOST", "http://localhost:11434"),
		EmbedBatchSize: getEnvInt("TWEETSIM_EMBED_BATCH_SIZE", 64),
		DataPath:       getEnv("TWEETSIM_DATA_PATH", DefaultDataPath),
		DBPath:         getEnv("TWEETSIM_DB_PATH", DefaultDBPath),
		Store:          getEnv("TWEETSIM_STORE", StoreSQLite),
		CharmHost:      getEnv("CHARM_HOST", "cloud.charm.sh"),
		CharmDBName:    getEnv("CHARM_DB", "tweetsim"),
		RetrievalMode:  getEnv("TWEETSIM_RETRIEVAL_MODE", RetrievalPersisted),
		Temperature:    getEnvFloat("TWEETSIM_TEMPERATURE", 0.3),
		MaxTokens:      getEnvInt("TWEETSIM_MAX_TOKENS", 300),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	switch c.Embedder {
	case EmbedderOllama, EmbedderOpenAI, EmbedderHashing:
	default:
		return fmt.Errorf("TWEETSIM_EMBEDDER must be ollama, openai or hashing, got %q", c.Embedder)
	}
	switch c.Store {
	case StoreSQLite, StoreCharm:
	default:
		return fmt.Errorf("TWEETSIM_STORE must be sqlite or charm, got %q", c.Store)
	}
	switch c.RetrievalMode {
	case RetrievalPersisted, RetrievalLive:
	default:
		return fmt.Errorf("TWEETSIM_RETRIEVAL_MODE must be persisted or live, got %q", c.RetrievalMode)
	}
	if c.EmbedBatchSize < 1 || c.EmbedBatchSize > 2048 {
		return fmt.Errorf("TWEETSIM_EMBED_BATCH_SIZE must be 1-2048, got %d", c.EmbedBatchSize)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("TWEETSIM_TEMPERATURE must be 0-2, got %f", c.Temperature)
	}
	if c.MaxTokens < 1 {
		return fmt.Errorf("TWEETSIM_MAX_TOKENS must be positive, got %d", c.MaxTokens)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("TWEETSIM_HTTP_TIMEOUT must be positive, got %v", c.Timeout)
	}
	return nil
}

// RequireOpenAIKey reports an error when no OpenAI key is configured
func (c *Config) RequireOpenAIKey() error {
	if c.OpenAIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
