// ABOUTME: Retriever finds a celebrity's past tweets closest to an event description
// ABOUTME: Builds a fresh exact index over the celebrity subset for every call
package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/harper/tweetsim/internal/embedding"
	"github.com/harper/tweetsim/internal/index"
	"github.com/harper/tweetsim/internal/models"
	"github.com/harper/tweetsim/internal/storage"
)

// DefaultTopK is the number of examples retrieved when none is requested
const DefaultTopK = 5

// RetrievalMode selects where subset vectors come from
type RetrievalMode string

const (
	// ModePersisted reuses the vectors stored at build time
	ModePersisted RetrievalMode = "persisted"
	// ModeLive re-embeds the subset texts on every call
	ModeLive RetrievalMode = "live"
)

// ParseRetrievalMode maps a config string to a mode
func ParseRetrievalMode(s string) (RetrievalMode, error) {
	switch RetrievalMode(s) {
	case ModePersisted, "":
		return ModePersisted, nil
	case ModeLive:
		return ModeLive, nil
	default:
		return "", fmt.Errorf("unknown retrieval mode %q", s)
	}
}

// Retriever answers top-k queries restricted to one celebrity
type Retriever struct {
	encoder *embedding.Encoder
	store   storage.Store
	mode    RetrievalMode
}

// NewRetriever creates a Retriever reading from store
func NewRetriever(encoder *embedding.Encoder, store storage.Store, mode RetrievalMode) *Retriever {
	if mode == "" {
		mode = ModePersisted
	}
	return &Retriever{
		encoder: encoder,
		store:   store,
		mode:    mode,
	}
}

// Mode returns the retrieval mode in use
func (r *Retriever) Mode() RetrievalMode {
	return r.mode
}

// Retrieve returns at most topK of the celebrity's tweets, most similar first
func (r *Retriever) Retrieve(ctx context.Context, celebrity, event string, topK int) ([]models.RetrievedTweet, error) {
	if topK <= 0 {
		return nil, &ValidationError{Field: "top_k", Reason: fmt.Sprintf("must be positive, got %d", topK)}
	}
	if strings.TrimSpace(event) == "" {
		return nil, &ValidationError{Field: "event", Reason: "cannot be empty"}
	}

	meta, err := r.store.Meta()
	if err != nil {
		return nil, err
	}
	if r.mode == ModePersisted && meta.EmbeddingModel != r.encoder.Model() {
		return nil, fmt.Errorf("%w: index was built with %s but queries use %s; rebuild or switch to live retrieval",
			ErrModelMismatch, meta.EmbeddingModel, r.encoder.Model())
	}

	subset, err := r.store.TweetsByCelebrity(celebrity)
	if err != nil {
		return nil, fmt.Errorf("failed to load tweets for %s: %w", celebrity, err)
	}
	if len(subset) == 0 {
		return nil, &NotFoundError{Celebrity: celebrity}
	}

	query, err := r.encoder.EncodeOne(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("failed to embed event: %w", err)
	}

	vectors, err := r.subsetVectors(ctx, subset)
	if err != nil {
		return nil, err
	}

	sub, err := index.NewFlat(len(query))
	if err != nil {
		return nil, err
	}
	if err := sub.Add(vectors...); err != nil {
		return nil, fmt.Errorf("failed to index %s: %w", celebrity, err)
	}

	hits, err := sub.Search(query, topK)
	if err != nil {
		return nil, err
	}

	results := make([]models.RetrievedTweet, len(hits))
	for i, h := range hits {
		results[i] = models.RetrievedTweet{
			Tweet: subset[h.Position].Tweet,
			Score: h.Score,
		}
	}
	return results, nil
}

func (r *Retriever) subsetVectors(ctx context.Context, subset []models.IndexedTweet) ([][]float64, error) {
	if r.mode == ModeLive {
		texts := make([]string, len(subset))
		for i, t := range subset {
			texts[i] = t.Text
		}
		vectors, err := r.encoder.Encode(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("failed to embed celebrity tweets: %w", err)
		}
		return vectors, nil
	}

	vectors := make([][]float64, len(subset))
	for i, t := range subset {
		vectors[i] = t.Vector
	}
	return vectors, nil
}

// IsUserError reports whether err comes from the request rather than the system
func IsUserError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrValidation) || errors.Is(err, models.ErrNoIndex)
}
