package random

import (
	"crypto/rand"
	"encoding/binary"
	"sync"

	mathrand "math/rand"
)

// Random provides random number generation that can be mocked for testing
type Random interface {
	// Intn returns a random int in [0, n)
	Intn(n int) int

	// Float64 returns a random float in [0, 1)
	Float64() float64

	// NormFloat64 returns a normally distributed float with mean 0 and
	// standard deviation 1
	NormFloat64() float64

	// String generates a random string of the given length from the given alphabet
	String(length int, alphabet string) string
}

// PCGRandom implements Random over a math/rand source, seeded from
// crypto/rand at construction. The wrapped source is not
// goroutine-safe, so calls are serialized here.
type PCGRandom struct {
	mu  sync.Mutex
	rng *mathrand.Rand
}

// New creates a PCGRandom with an unpredictable seed
func New() *PCGRandom {
	var seed [16]byte
	// crypto/rand.Read only fails if the OS entropy source is broken
	_, _ = rand.Read(seed[:])
	return NewSeeded(
		binary.LittleEndian.Uint64(seed[:8]),
		binary.LittleEndian.Uint64(seed[8:]),
	)
}

// NewSeeded creates a deterministic PCGRandom, useful for tests
func NewSeeded(seed1, seed2 uint64) *PCGRandom {
	return &PCGRandom{
		rng: mathrand.New(mathrand.NewSource(int64(seed1 ^ (seed2<<32 | seed2>>32)))),
	}
}

// Intn returns a random int in [0, n), or 0 when n is not positive
func (r *PCGRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}

// Float64 returns a random float in [0, 1)
func (r *PCGRandom) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

// NormFloat64 returns a standard normally distributed float
func (r *PCGRandom) NormFloat64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.NormFloat64()
}

// String generates a random string of the given length from the given alphabet
func (r *PCGRandom) String(length int, alphabet string) string {
	if length <= 0 || len(alphabet) == 0 {
		return ""
	}
	result := make([]byte, length)
	for i := 0; i < length; i++ {
		result[i] = alphabet[r.Intn(len(alphabet))]
	}
	return string(result)
}

var _ Random = (*PCGRandom)(nil)
