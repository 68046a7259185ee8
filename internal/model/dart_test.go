package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDartValue(t *testing.T) {
	scorable := []int{0, 1, 7, 20, 21, 22, 24, 33, 36, 39, 40, 42, 45, 48, 51, 54, 57, 60, 25, 50}
	for _, v := range scorable {
		assert.True(t, IsDartValue(v), "expected %d to be scorable", v)
	}

	unscorable := []int{-1, 23, 29, 31, 35, 37, 41, 43, 44, 46, 47, 49, 52, 53, 55, 56, 58, 59, 61, 100}
	for _, v := range unscorable {
		assert.False(t, IsDartValue(v), "expected %d to be unscorable", v)
	}
}

func TestIsVisitTotal(t *testing.T) {
	assert.True(t, IsVisitTotal(0))
	assert.True(t, IsVisitTotal(100))
	assert.True(t, IsVisitTotal(180))
	// Range check only; totals no three darts can reach still pass here.
	assert.True(t, IsVisitTotal(179))

	assert.False(t, IsVisitTotal(-1))
	assert.False(t, IsVisitTotal(181))
}

func TestLargestDartValueAtMost(t *testing.T) {
	tests := []struct {
		limit int
		want  int
	}{
		{limit: 60, want: 60},
		{limit: 200, want: 60},
		{limit: 59, want: 57},
		{limit: 49, want: 48},
		{limit: 23, want: 22},
		{limit: 1, want: 1},
		{limit: 0, want: 0},
		{limit: -5, want: 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LargestDartValueAtMost(tt.limit), "limit %d", tt.limit)
	}
}

func TestHitValue(t *testing.T) {
	assert.Equal(t, 60, Hit{Segment: 20, Multiplier: 3}.Value())
	assert.Equal(t, 38, Hit{Segment: 19, Multiplier: 2}.Value())
	assert.Equal(t, 25, Hit{Segment: 25, Multiplier: 1}.Value())
	assert.Equal(t, 50, Hit{Segment: 50, Multiplier: 1}.Value())
	assert.Equal(t, 0, Hit{}.Value())
}

func TestHitLabel(t *testing.T) {
	tests := []struct {
		hit  Hit
		want string
	}{
		{Hit{Segment: 0, Multiplier: 0}, "Miss"},
		{Hit{Segment: 5, Multiplier: 1}, "S5"},
		{Hit{Segment: 8, Multiplier: 2}, "D8"},
		{Hit{Segment: 20, Multiplier: 3}, "T20"},
		{Hit{Segment: 25, Multiplier: 1}, "25"},
		{Hit{Segment: 50, Multiplier: 1}, "Bull"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.hit.Label())
	}
}

func TestDecompositions(t *testing.T) {
	// 6 can come from three different segments.
	assert.Equal(t, []Hit{
		{Segment: 6, Multiplier: 1},
		{Segment: 3, Multiplier: 2},
		{Segment: 2, Multiplier: 3},
	}, Decompositions(6))

	// 40 is too big for a single and not divisible by 3.
	assert.Equal(t, []Hit{{Segment: 20, Multiplier: 2}}, Decompositions(40))

	// 57 is a triple or nothing.
	assert.Equal(t, []Hit{{Segment: 19, Multiplier: 3}}, Decompositions(57))

	// Bulls and misses are unambiguous.
	assert.Equal(t, []Hit{{Segment: 0, Multiplier: 0}}, Decompositions(0))
	assert.Equal(t, []Hit{{Segment: 25, Multiplier: 1}}, Decompositions(25))
	assert.Equal(t, []Hit{{Segment: 50, Multiplier: 1}}, Decompositions(50))

	// Unscorable values have no reading.
	assert.Empty(t, Decompositions(23))
	assert.Empty(t, Decompositions(61))
}
