// ABOUTME: Index Builder embeds the whole corpus and persists it in one write
// ABOUTME: Nothing is written unless loading, embedding, and indexing all succeed
package core

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/harper/tweetsim/internal/corpus"
	"github.com/harper/tweetsim/internal/embedding"
	"github.com/harper/tweetsim/internal/index"
	"github.com/harper/tweetsim/internal/models"
	"github.com/harper/tweetsim/internal/storage"
)

// BuildReport summarizes a completed build
type BuildReport struct {
	Meta        models.IndexMeta `json:"meta" yaml:"meta"`
	Celebrities int              `json:"celebrities" yaml:"celebrities"`
	Duration    time.Duration    `json:"duration" yaml:"duration"`
}

// Builder turns a corpus file into a persisted index
type Builder struct {
	encoder *embedding.Encoder
	store   storage.Store
	// Verbose logs each build step
	Verbose bool
}

// NewBuilder creates a Builder writing to store
func NewBuilder(encoder *embedding.Encoder, store storage.Store) *Builder {
	return &Builder{
		encoder: encoder,
		store:   store,
	}
}

// Build loads corpusPath, embeds every row in order, and replaces the stored index
func (b *Builder) Build(ctx context.Context, corpusPath string) (*BuildReport, error) {
	start := time.Now()

	tweets, err := corpus.Load(corpusPath)
	if err != nil {
		return nil, err
	}
	b.logf("[Builder] loaded %d tweets from %s", len(tweets), corpusPath)

	texts := make([]string, len(tweets))
	for i, t := range tweets {
		texts[i] = t.Text
	}

	b.logf("[Builder] embedding %d texts with %s", len(texts), b.encoder.Model())
	vectors, err := b.encoder.Encode(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to embed corpus: %w", err)
	}
	if len(vectors) != len(tweets) {
		return nil, fmt.Errorf("embedded %d vectors for %d tweets", len(vectors), len(tweets))
	}

	dimension := len(vectors[0])
	full, err := index.NewFlat(dimension)
	if err != nil {
		return nil, err
	}
	if err := full.Add(vectors...); err != nil {
		return nil, fmt.Errorf("failed to index corpus: %w", err)
	}

	indexed := make([]models.IndexedTweet, len(tweets))
	for i, t := range tweets {
		indexed[i] = models.IndexedTweet{Tweet: t, Vector: vectors[i]}
	}

	meta := models.IndexMeta{
		EmbeddingModel: b.encoder.Model(),
		Dimension:      dimension,
		Count:          full.Len(),
		SourcePath:     corpusPath,
		BuiltAt:        time.Now().UTC(),
	}

	if err := b.store.ReplaceCorpus(meta, indexed); err != nil {
		return nil, fmt.Errorf("failed to persist index: %w", err)
	}
	b.logf("[Builder] persisted %d vectors (dimension %d)", meta.Count, meta.Dimension)

	return &BuildReport{
		Meta:        meta,
		Celebrities: len(models.SummarizeCelebrities(tweetsOf(indexed))),
		Duration:    time.Since(start),
	}, nil
}

func (b *Builder) logf(format string, args ...any) {
	if b.Verbose {
		log.Printf(format, args...)
	}
}

func tweetsOf(indexed []models.IndexedTweet) []models.Tweet {
	out := make([]models.Tweet, len(indexed))
	for i, t := range indexed {
		out[i] = t.Tweet
	}
	return out
}
