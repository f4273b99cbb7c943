// ABOUTME: Vector encoding for SQLite BLOB columns
// ABOUTME: Vectors are stored as little-endian float64 arrays
package sqlite

import (
	"encoding/binary"
	"fmt"
	"math"
)

// vectorToBlob converts a float64 slice to a binary blob
func vectorToBlob(vector []float64) []byte {
	blob := make([]byte, len(vector)*8)
	for i, v := range vector {
		binary.LittleEndian.PutUint64(blob[i*8:], math.Float64bits(v))
	}
	return blob
}

// blobToVector converts a binary blob to a float64 slice of the given dimension
func blobToVector(blob []byte, dimension int) ([]float64, error) {
	if len(blob) != dimension*8 {
		return nil, fmt.Errorf("corrupt vector blob: %d bytes for dimension %d", len(blob), dimension)
	}
	vector := make([]float64, dimension)
	for i := 0; i < dimension; i++ {
		bits := binary.LittleEndian.Uint64(blob[i*8:])
		vector[i] = math.Float64frombits(bits)
	}
	return vector, nil
}
