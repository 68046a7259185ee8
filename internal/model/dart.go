package model

import "strconv"

// Bounds on what a single throw and a full visit can score
const (
	MaxDartValue  = 60  // triple 20
	MaxVisitTotal = 180 // three triple 20s
)

// dartValues is the set of points a single throw can score: a miss,
// singles 1-20, doubles 2-40, triples 3-60, outer bull 25, bullseye 50
var dartValues = buildDartValues()

func buildDartValues() map[int]bool {
	values := map[int]bool{0: true, 25: true, 50: true}
	for segment := 1; segment <= 20; segment++ {
		values[segment] = true
		values[segment*2] = true
		values[segment*3] = true
	}
	return values
}

// IsDartValue reports whether a single throw can score the given value
func IsDartValue(value int) bool {
	return dartValues[value]
}

// IsVisitTotal reports whether a value is achievable as a visit total
func IsVisitTotal(total int) bool {
	return total >= 0 && total <= MaxVisitTotal
}

// LargestDartValueAtMost returns the highest legal dart value not
// exceeding limit, or 0 (a deliberate miss) when limit is below 1
func LargestDartValueAtMost(limit int) int {
	if limit > MaxDartValue {
		limit = MaxDartValue
	}
	for value := limit; value > 0; value-- {
		if dartValues[value] {
			return value
		}
	}
	return 0
}

// Hit describes which board segment a dart landed in. A raw point value
// alone is ambiguous (6 could be single-6, double-3, or triple-2); Hit
// carries the reconstruction used for presentation.
type Hit struct {
	Segment    int // 1-20, 25 for the outer bull, 50 for the bullseye, 0 for a miss
	Multiplier int // 1-3 for singles/doubles/triples, 1 for bulls, 0 for a miss
}

// Value returns the points the hit scores
func (h Hit) Value() int {
	return h.Segment * h.Multiplier
}

// Label renders the conventional shorthand for the hit
func (h Hit) Label() string {
	switch {
	case h.Multiplier == 0:
		return "Miss"
	case h.Segment == 50:
		return "Bull"
	case h.Segment == 25:
		return "25"
	case h.Multiplier == 2:
		return "D" + strconv.Itoa(h.Segment)
	case h.Multiplier == 3:
		return "T" + strconv.Itoa(h.Segment)
	default:
		return "S" + strconv.Itoa(h.Segment)
	}
}

// Decompositions returns every (segment, multiplier) pair a single
// throw could have used to score the given value. Misses and bulls are
// unambiguous; other values may have up to three readings.
func Decompositions(value int) []Hit {
	switch value {
	case 0:
		return []Hit{{Segment: 0, Multiplier: 0}}
	case 25:
		return []Hit{{Segment: 25, Multiplier: 1}}
	case 50:
		return []Hit{{Segment: 50, Multiplier: 1}}
	}

	var hits []Hit
	if value >= 1 && value <= 20 {
		hits = append(hits, Hit{Segment: value, Multiplier: 1})
	}
	if value%2 == 0 && value/2 >= 1 && value/2 <= 20 {
		hits = append(hits, Hit{Segment: value / 2, Multiplier: 2})
	}
	if value%3 == 0 && value/3 >= 1 && value/3 <= 20 {
		hits = append(hits, Hit{Segment: value / 3, Multiplier: 3})
	}
	return hits
}
