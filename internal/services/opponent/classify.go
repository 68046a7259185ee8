package opponent

import (
	"github.com/WillowTech1996/DartsCounter/internal/dependencies/random"
	"github.com/WillowTech1996/DartsCounter/internal/model"
)

// Classifier picks a plausible board hit for a raw dart value. A value
// like 6 could be single 6, double 3, or triple 2; the draw is
// weighted toward how often real players land each reading.
type Classifier struct {
	random random.Random
}

func NewClassifier(random random.Random) *Classifier {
	return &Classifier{random: random}
}

// Classify maps a dart value to the hit shown for it. Misses and bulls
// are unambiguous; everything else is a weighted draw over the value's
// legal decompositions. A value with no decomposition reads as a
// single 20.
func (c *Classifier) Classify(value int) model.Hit {
	hits := model.Decompositions(value)
	if len(hits) == 0 {
		return model.Hit{Segment: 20, Multiplier: 1}
	}
	if len(hits) == 1 {
		return hits[0]
	}

	total := 0
	weights := make([]int, len(hits))
	for i, hit := range hits {
		weights[i] = hitWeight(hit, value)
		total += weights[i]
	}

	roll := c.random.Intn(total)
	for i, weight := range weights {
		roll -= weight
		if roll < 0 {
			return hits[i]
		}
	}
	return hits[len(hits)-1]
}

// hitWeight scores how likely a reading is. A single dominates when
// the value could be one; above 20 only doubles and trebles remain,
// with the double favored.
func hitWeight(hit model.Hit, value int) int {
	switch hit.Multiplier {
	case 1:
		return 80
	case 2:
		if value > 20 {
			return 60
		}
		return 12
	case 3:
		if value > 20 {
			return 40
		}
		return 8
	}
	return 1
}
