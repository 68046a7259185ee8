package opponent

import (
	"math"

	"github.com/WillowTech1996/DartsCounter/internal/dependencies/random"
	"github.com/WillowTech1996/DartsCounter/internal/model"
)

// checkoutChance is multiplied by the difficulty level to get the
// probability of taking a one-dart finish when one is on
const checkoutChance = 0.05

// Band thresholds for mapping a continuous aim point to a throw
const (
	trebleBand = 45 // above this the opponent goes straight for trebles
	mixedBand  = 25 // 25-45 mixes trebles with high singles
)

// midBandTrebleChance splits the mixed band between treble attempts
// and high singles
const midBandTrebleChance = 0.5

// lowBandDoubleChance is how often a low aim point lands in a double
// instead of the plain single
const lowBandDoubleChance = 0.08

// Generator produces the dart values a computer opponent throws.
// Difficulty level N aims for an average of N*10 points per visit,
// with the scatter shrinking as the level rises.
type Generator struct {
	random random.Random
}

func NewGenerator(random random.Random) *Generator {
	return &Generator{random: random}
}

// GenerateVisit returns up to three dart values for a turn starting
// from the given remaining score. Generation stops early once the
// remainder reaches zero or can no longer be left safely, mirroring
// how the engine settles a visit. Every value is a legal single throw.
func (g *Generator) GenerateVisit(remaining, level int) []int {
	level = model.ClampComputerLevel(level)
	targetAverage := float64(level * 10)
	variance := math.Max(5, float64(30-level*2))

	darts := make([]int, 0, model.VisitDarts)
	for len(darts) < model.VisitDarts {
		value := g.generateDart(remaining, targetAverage, variance, level)
		darts = append(darts, value)
		remaining -= value
		if remaining <= 1 {
			break
		}
	}
	return darts
}

func (g *Generator) generateDart(remaining int, targetAverage, variance float64, level int) int {
	if oneDartFinish(remaining) && g.random.Float64() < float64(level)*checkoutChance {
		return remaining
	}

	target := targetAverage/3 + g.random.NormFloat64()*variance/3
	target = math.Max(0, math.Min(float64(model.MaxDartValue), target))

	return g.avoidBust(remaining, g.mapToDartValue(target))
}

// oneDartFinish reports whether the remaining score can be taken with
// a single dart the way legs are finished: a double, or the bullseye
func oneDartFinish(remaining int) bool {
	if remaining == 50 {
		return true
	}
	return remaining >= 2 && remaining <= 40 && remaining%2 == 0
}

// mapToDartValue converts a continuous aim point into a legal throw
func (g *Generator) mapToDartValue(target float64) int {
	switch {
	case target > trebleBand:
		segment := clamp(int(math.Round(target/3)), 15, 20)
		return segment * 3
	case target >= mixedBand:
		if g.random.Float64() < midBandTrebleChance {
			segment := clamp(int(math.Round(target/3)), 1, 20)
			return segment * 3
		}
		return 20 - g.random.Intn(6)
	default:
		if g.random.Float64() < lowBandDoubleChance {
			segment := clamp(int(math.Round(target/2)), 1, 20)
			return segment * 2
		}
		return clamp(int(math.Round(target)), 0, 20)
	}
}

// avoidBust swaps a throw that would bust for the highest value that
// leaves at least 2. Below a remainder of 2 there is nothing safe to
// leave and the bust stands.
func (g *Generator) avoidBust(remaining, value int) int {
	left := remaining - value
	if left >= 0 && left != 1 {
		return value
	}
	if remaining < 2 {
		return value
	}
	return model.LargestDartValueAtMost(remaining - 2)
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
