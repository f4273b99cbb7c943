// ABOUTME: Exact inner-product similarity index over unit vectors
// ABOUTME: Brute-force scan with stable descending ranking and top-k clamping
package index

import (
	"fmt"
	"sort"

	"github.com/harper/tweetsim/internal/models"
)

// Neighbor is one search hit: the insertion position and its inner product
type Neighbor struct {
	Position int
	Score    float64
}

// Flat stores vectors in insertion order and scans all of them per query.
// With unit vectors the inner product equals cosine similarity.
type Flat struct {
	dimension int
	vectors   [][]float64
}

// NewFlat creates an empty index for vectors of the given dimension
func NewFlat(dimension int) (*Flat, error) {
	if dimension <= 0 {
		return nil, fmt.Errorf("invalid index dimension %d", dimension)
	}
	return &Flat{dimension: dimension}, nil
}

// Dimension returns the vector size the index accepts
func (f *Flat) Dimension() int {
	return f.dimension
}

// Len returns the number of indexed vectors
func (f *Flat) Len() int {
	return len(f.vectors)
}

// Add appends vectors. The batch is rejected as a whole if any vector has
// the wrong dimension or is not unit length.
func (f *Flat) Add(vectors ...[]float64) error {
	for i, v := range vectors {
		if err := models.ValidateDimension(v, f.dimension); err != nil {
			return fmt.Errorf("vector %d: %w", i, err)
		}
		if !models.IsUnit(v) {
			return fmt.Errorf("vector %d: not unit-normalized (norm %.6f)", i, models.L2Norm(v))
		}
	}
	f.vectors = append(f.vectors, vectors...)
	return nil
}

// Search returns up to k neighbors ranked by descending inner product.
// Equal scores keep insertion order. k larger than Len is clamped.
func (f *Flat) Search(query []float64, k int) ([]Neighbor, error) {
	if err := models.ValidateDimension(query, f.dimension); err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if k <= 0 || len(f.vectors) == 0 {
		return nil, nil
	}

	hits := make([]Neighbor, len(f.vectors))
	for i, v := range f.vectors {
		hits[i] = Neighbor{Position: i, Score: models.Dot(query, v)}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}
