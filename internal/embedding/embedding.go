// ABOUTME: Text embedding providers and the normalizing batch Encoder
// ABOUTME: Every vector leaving the Encoder is L2-normalized
package embedding

import (
	"context"
	"fmt"

	"github.com/harper/tweetsim/internal/models"
)

// DefaultBatchSize is the number of texts sent per provider request
const DefaultBatchSize = 64

// Provider maps texts to raw embedding vectors
type Provider interface {
	// Name identifies the embedding model, e.g. "all-minilm"
	Name() string
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

// Encoder batches requests to a Provider and normalizes the results
type Encoder struct {
	provider  Provider
	batchSize int
}

// NewEncoder creates an Encoder. batchSize <= 0 selects DefaultBatchSize.
func NewEncoder(provider Provider, batchSize int) *Encoder {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Encoder{provider: provider, batchSize: batchSize}
}

// Model returns the provider's model name
func (e *Encoder) Model() string {
	return e.provider.Name()
}

// Encode embeds texts in order, returning one unit vector per text
func (e *Encoder) Encode(ctx context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, 0, len(texts))
	dim := 0

	for start := 0; start < len(texts); start += e.batchSize {
		end := start + e.batchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch := texts[start:end]

		vectors, err := e.provider.Embed(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("embedding texts %d-%d with %s: %w", start, end-1, e.provider.Name(), err)
		}
		if len(vectors) != len(batch) {
			return nil, fmt.Errorf("embedding provider %s returned %d vectors for %d texts", e.provider.Name(), len(vectors), len(batch))
		}

		for i, v := range vectors {
			if dim == 0 {
				dim = len(v)
			}
			if err := models.ValidateDimension(v, dim); err != nil {
				return nil, fmt.Errorf("text %d: %w", start+i, err)
			}
			unit, err := models.Normalize(v)
			if err != nil {
				return nil, fmt.Errorf("text %d: %w", start+i, err)
			}
			out = append(out, unit)
		}
	}

	return out, nil
}

// EncodeOne embeds a single text
func (e *Encoder) EncodeOne(ctx context.Context, text string) ([]float64, error) {
	vectors, err := e.Encode(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}
