package mocks

import (
	"github.com/WillowTech1996/DartsCounter/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing. Each
// method consumes from its own queue of scripted results.
type MockRandom struct {
	// IntnResults is a queue of results to return from Intn
	IntnResults []int
	intnIndex   int

	// Float64Results is a queue of results to return from Float64
	Float64Results []float64
	float64Index   int

	// NormFloat64Results is a queue of results to return from NormFloat64
	NormFloat64Results []float64
	normFloat64Index   int

	// StringResults is a queue of results to return from String
	StringResults []string
	stringIndex   int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn returns the next queued result, or 0 if none remaining
func (r *MockRandom) Intn(n int) int {
	if r.intnIndex >= len(r.IntnResults) {
		return 0
	}
	result := r.IntnResults[r.intnIndex]
	r.intnIndex++
	return result
}

// Float64 returns the next queued result, or 0 if none remaining
func (r *MockRandom) Float64() float64 {
	if r.float64Index >= len(r.Float64Results) {
		return 0
	}
	result := r.Float64Results[r.float64Index]
	r.float64Index++
	return result
}

// NormFloat64 returns the next queued result, or 0 if none remaining
func (r *MockRandom) NormFloat64() float64 {
	if r.normFloat64Index >= len(r.NormFloat64Results) {
		return 0
	}
	result := r.NormFloat64Results[r.normFloat64Index]
	r.normFloat64Index++
	return result
}

// String returns the next queued result, or empty string if none remaining
func (r *MockRandom) String(length int, alphabet string) string {
	if r.stringIndex >= len(r.StringResults) {
		return ""
	}
	result := r.StringResults[r.stringIndex]
	r.stringIndex++
	return result
}

// QueueIntn adds values to the Intn result queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.IntnResults = append(r.IntnResults, values...)
}

// QueueFloat64 adds values to the Float64 result queue
func (r *MockRandom) QueueFloat64(values ...float64) {
	r.Float64Results = append(r.Float64Results, values...)
}

// QueueNormFloat64 adds values to the NormFloat64 result queue
func (r *MockRandom) QueueNormFloat64(values ...float64) {
	r.NormFloat64Results = append(r.NormFloat64Results, values...)
}

// QueueString adds values to the String result queue
func (r *MockRandom) QueueString(values ...string) {
	r.StringResults = append(r.StringResults, values...)
}

// Reset clears all queued results
func (r *MockRandom) Reset() {
	r.IntnResults = nil
	r.intnIndex = 0
	r.Float64Results = nil
	r.float64Index = 0
	r.NormFloat64Results = nil
	r.normFloat64Index = 0
	r.StringResults = nil
	r.stringIndex = 0
}
