package egp

import (
	"math/rand"
	"time"
)

// Source is the only place randomness enters the engine. Every operation that
// samples takes a Source explicitly, so a fixed Source yields a fixed draw
// sequence and separate goroutines never share hidden state.
type Source interface {
	// Float64 returns a uniform sample in [0, 1).
	Float64() float64
	// Intn returns a uniform sample in [0, n). n must be positive.
	Intn(n int) int
}

// NewSource returns a Source backed by math/rand seeded with seed.
// A seed of 0 is replaced with the current time.
func NewSource(seed int64) Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// sampleVector draws n uniform [0, 1) values.
func sampleVector(src Source, n int) Vector {
	v := make(Vector, n)
	for i := range v {
		v[i] = src.Float64()
	}
	return v
}
