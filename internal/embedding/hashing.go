// ABOUTME: Deterministic feature-hashing embedder for offline use
// ABOUTME: Hashes lowercase word tokens into a fixed number of buckets
package embedding

import (
	"context"
	"fmt"
	"hash/fnv"
	"regexp"
	"strings"
)

// DefaultHashingDimension matches the all-MiniLM-L6-v2 output size
const DefaultHashingDimension = 384

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}]+(?:['’][\p{L}]+)*`)

// Hashing is a bag-of-words embedder with signed feature hashing.
// It needs no model or network and returns identical vectors for identical text.
type Hashing struct {
	dimension int
}

// NewHashing creates a hashing embedder. dimension <= 0 selects DefaultHashingDimension.
func NewHashing(dimension int) *Hashing {
	if dimension <= 0 {
		dimension = DefaultHashingDimension
	}
	return &Hashing{dimension: dimension}
}

// Name returns the model identifier, which includes the dimension
func (h *Hashing) Name() string {
	return fmt.Sprintf("hashing-%d", h.dimension)
}

// Embed hashes each text into a raw (unnormalized) vector.
// Texts without tokens get a fixed fallback bucket so they can still be normalized.
func (h *Hashing) Embed(_ context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i, text := range texts {
		vec := make([]float64, h.dimension)
		tokens := tokenPattern.FindAllString(strings.ToLower(text), -1)
		for _, tok := range tokens {
			idx, sign := h.bucket(tok)
			vec[idx] += sign
		}
		if len(tokens) == 0 || allZero(vec) {
			vec[0] = 1
		}
		out[i] = vec
	}
	return out, nil
}

func (h *Hashing) bucket(token string) (int, float64) {
	hasher := fnv.New64a()
	_, _ = hasher.Write([]byte(token))
	sum := hasher.Sum64()
	sign := 1.0
	if sum&(1<<63) != 0 {
		sign = -1.0
	}
	return int(sum % uint64(h.dimension)), sign
}

func allZero(vec []float64) bool {
	for _, v := range vec {
		if v != 0 {
			return false
		}
	}
	return true
}
