// ABOUTME: Error taxonomy for retrieval and simulation
// ABOUTME: Typed not-found and validation errors with sentinel matching
package core

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound matches any *NotFoundError
	ErrNotFound = errors.New("not found")
	// ErrValidation matches any *ValidationError
	ErrValidation = errors.New("invalid request")
	// ErrModelMismatch means the index and the query embedder disagree
	ErrModelMismatch = errors.New("embedding model mismatch")
)

// NotFoundError reports a celebrity with no rows in the corpus
type NotFoundError struct {
	Celebrity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("No tweets found for %s", e.Celebrity)
}

// Is lets errors.Is(err, ErrNotFound) match
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError reports a bad request argument
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrValidation) match
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
