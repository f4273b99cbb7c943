// ABOUTME: Simulator orchestrates retrieval, prompt rendering, and one LLM call
// ABOUTME: Failures from any step propagate unchanged; nothing is retried
package core

import (
	"context"
	"fmt"

	"github.com/harper/tweetsim/internal/llm"
	"github.com/harper/tweetsim/internal/models"
)

// SystemPrompt is the fixed system instruction for every completion
const SystemPrompt = "You simulate persona-style tweets."

// Default generation parameters
const (
	DefaultTemperature = 0.3
	DefaultMaxTokens   = 300
)

// Completer produces text for a chat turn
type Completer interface {
	Complete(ctx context.Context, req llm.CompletionRequest) (string, error)
}

// Simulation is the full record of one simulate call
type Simulation struct {
	Celebrity string                  `json:"celebrity" yaml:"celebrity"`
	Event     string                  `json:"event" yaml:"event"`
	Examples  []models.RetrievedTweet `json:"examples" yaml:"examples"`
	Prompt    string                  `json:"prompt" yaml:"prompt"`
	Output    string                  `json:"output" yaml:"output"`
}

// Simulator generates persona tweets grounded on retrieved examples
type Simulator struct {
	retriever   *Retriever
	completer   Completer
	temperature float32
	maxTokens   int
}

// NewSimulator creates a Simulator with the default generation parameters
func NewSimulator(retriever *Retriever, completer Completer) *Simulator {
	return &Simulator{
		retriever:   retriever,
		completer:   completer,
		temperature: DefaultTemperature,
		maxTokens:   DefaultMaxTokens,
	}
}

// WithGeneration overrides temperature and output length
func (s *Simulator) WithGeneration(temperature float64, maxTokens int) *Simulator {
	s.temperature = float32(temperature)
	s.maxTokens = maxTokens
	return s
}

// Simulate retrieves examples, renders the prompt, and asks the LLM for new tweets
func (s *Simulator) Simulate(ctx context.Context, celebrity, event string, topK int) (*Simulation, error) {
	examples, err := s.retriever.Retrieve(ctx, celebrity, event, topK)
	if err != nil {
		return nil, err
	}

	prompt := BuildPrompt(celebrity, event, examples)

	output, err := s.completer.Complete(ctx, llm.CompletionRequest{
		System:      SystemPrompt,
		User:        prompt,
		Temperature: s.temperature,
		MaxTokens:   s.maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate tweets: %w", err)
	}

	return &Simulation{
		Celebrity: celebrity,
		Event:     event,
		Examples:  examples,
		Prompt:    prompt,
		Output:    output,
	}, nil
}
