// ABOUTME: Tests for the Ollama embedding client against a fake server
// ABOUTME: Verifies the /api/embed request and float conversion
package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewOllamaClient_Defaults(t *testing.T) {
	client, err := NewOllamaClient("", "", time.Second)
	if err != nil {
		t.Fatalf("NewOllamaClient() error = %v", err)
	}
	if client.Name() != DefaultOllamaEmbeddingModel {
		t.Errorf("Name() = %q, want %q", client.Name(), DefaultOllamaEmbeddingModel)
	}
}

func TestNewOllamaClient_InvalidHost(t *testing.T) {
	if _, err := NewOllamaClient("localhost", "", time.Second); err == nil {
		t.Error("NewOllamaClient(\"localhost\") should fail without a scheme")
	}
}

func TestOllamaClient_Embed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/embed" {
			t.Errorf("path = %s, want /api/embed", r.URL.Path)
		}
		var body struct {
			Model string   `json:"model"`
			Input []string `json:"input"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Model != "all-minilm" {
			t.Errorf("model = %q, want all-minilm", body.Model)
		}

		embeddings := make([][]float32, len(body.Input))
		for i := range body.Input {
			embeddings[i] = []float32{float32(i + 1), 0.5}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"model":      body.Model,
			"embeddings": embeddings,
		})
	}))
	defer server.Close()

	client, err := NewOllamaClient(server.URL, "all-minilm", 5*time.Second)
	if err != nil {
		t.Fatalf("NewOllamaClient() error = %v", err)
	}

	vectors, err := client.Embed(context.Background(), []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	if len(vectors) != 3 {
		t.Fatalf("len(vectors) = %d, want 3", len(vectors))
	}
	if vectors[2][0] != 3 || vectors[2][1] != 0.5 {
		t.Errorf("vectors[2] = %v, want [3 0.5]", vectors[2])
	}
}

func TestOllamaClient_EmbedServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"model \"all-minilm\" not found, try pulling it first"}`))
	}))
	defer server.Close()

	client, _ := NewOllamaClient(server.URL, "all-minilm", 5*time.Second)
	if _, err := client.Embed(context.Background(), []string{"a"}); err == nil {
		t.Error("Embed() should fail when the model is missing")
	}
}
