// ABOUTME: Vector helpers for embedding dimension and normalization checks
// ABOUTME: Every vector placed in an index must be unit length
package models

import (
	"fmt"
	"math"
)

// UnitTolerance is the allowed deviation of an L2 norm from 1
const UnitTolerance = 1e-6

// ValidateDimension checks that a vector is non-empty and has the expected length
func ValidateDimension(vector []float64, expected int) error {
	if len(vector) == 0 {
		return fmt.Errorf("embedding vector cannot be empty")
	}
	if len(vector) != expected {
		return fmt.Errorf("embedding dimension mismatch: expected %d, got %d", expected, len(vector))
	}
	return nil
}

// L2Norm returns the Euclidean length of a vector
func L2Norm(vector []float64) float64 {
	var sum float64
	for _, v := range vector {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// IsUnit reports whether a vector has L2 norm 1 within UnitTolerance
func IsUnit(vector []float64) bool {
	return math.Abs(L2Norm(vector)-1) <= UnitTolerance
}

// Normalize returns a unit-length copy of the vector.
// A zero vector has no direction and is rejected.
func Normalize(vector []float64) ([]float64, error) {
	norm := L2Norm(vector)
	if norm == 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
		return nil, fmt.Errorf("cannot normalize vector with norm %v", norm)
	}
	out := make([]float64, len(vector))
	for i, v := range vector {
		out[i] = v / norm
	}
	return out, nil
}

// Dot returns the inner product of two equal-length vectors
func Dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
