package generator

import (
	crand "crypto/rand"
	"fmt"
	"math/rand/v2"
)

// Source produces uniformly distributed integers.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	// IntN returns a uniform integer in [0, n). It panics if n <= 0.
	IntN(n int) int
}

// NewSecureSource returns a ChaCha8-based generator seeded with 32 bytes from
// crypto/rand. Each call returns an independent generator; it must not be
// shared between goroutines.
func NewSecureSource() (*rand.Rand, error) {
	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		return nil, fmt.Errorf("failed to seed random source: %w", err)
	}
	return rand.New(rand.NewChaCha8(seed)), nil
}

// shuffle permutes n elements uniformly (Fisher-Yates).
func shuffle(src Source, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		swap(i, j)
	}
}
