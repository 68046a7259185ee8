package opponent

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/WillowTech1996/DartsCounter/internal/dependencies/mocks"
	"github.com/WillowTech1996/DartsCounter/internal/dependencies/random"
	"github.com/WillowTech1996/DartsCounter/internal/model"
)

type GeneratorSuite struct {
	suite.Suite
	random    *mocks.MockRandom
	generator *Generator
}

func TestGeneratorSuite(t *testing.T) {
	suite.Run(t, new(GeneratorSuite))
}

func (s *GeneratorSuite) SetupTest() {
	s.random = mocks.NewMockRandom()
	s.generator = NewGenerator(s.random)
}

func (s *GeneratorSuite) TestTakesOneDartFinish() {
	// Level 12 attempts a sitting finish with probability 0.6
	s.random.QueueFloat64(0.59)

	values := s.generator.GenerateVisit(32, 12)
	s.Equal([]int{32}, values)
}

func (s *GeneratorSuite) TestTakesBullFinish() {
	s.random.QueueFloat64(0.49)

	values := s.generator.GenerateVisit(50, 10)
	s.Equal([]int{50}, values)
}

func (s *GeneratorSuite) TestDeclinedFinishFallsThroughToAim() {
	// Dart 1: finish roll misses at level 1 (0.5 >= 0.05), the aim
	// sample lands at 10/3 + 2*28/3 = 22 and maps to a single 20.
	// Dart 2: the finish roll on the remaining 20 succeeds.
	s.random.QueueFloat64(0.5, 0.5, 0.04)
	s.random.QueueNormFloat64(2.0)

	values := s.generator.GenerateVisit(40, 1)
	s.Equal([]int{20, 20}, values)
}

func (s *GeneratorSuite) TestHighAimLandsTrebles() {
	// Level 12 aims at 40 per dart with a standard deviation of 2;
	// draws of +3, +10, +2.6 push the aim above 45 where only trebles
	// are thrown
	s.random.QueueNormFloat64(3.0, 10, 2.6)

	values := s.generator.GenerateVisit(501, 12)
	s.Equal([]int{45, 60, 45}, values)
}

func (s *GeneratorSuite) TestMidAimMixesTreblesAndHighSingles() {
	// An aim of exactly 40 sits in the mixed band: the first and third
	// rolls pick the treble (39), the second falls to a high single
	// (20 minus a draw of 3)
	s.random.QueueNormFloat64(0, 0, 0)
	s.random.QueueFloat64(0.49, 0.5, 0.2)
	s.random.QueueIntn(3)

	values := s.generator.GenerateVisit(501, 12)
	s.Equal([]int{39, 17, 39}, values)
}

func (s *GeneratorSuite) TestLowAimMostlySinglesRareDoubles() {
	// Level 1 aims at 10/3 per dart. The first roll lands under the
	// 8% double chance (round(3.33/2) = 2, thrown as double 2); the
	// second is a plain single 8; the third aims below zero and
	// clamps to a miss.
	s.random.QueueNormFloat64(0, 0.5, -1)
	s.random.QueueFloat64(0.07, 0.5, 0.5)

	values := s.generator.GenerateVisit(501, 1)
	s.Equal([]int{4, 8, 0}, values)
}

func (s *GeneratorSuite) TestAvoidsBustBySubstitution() {
	// From 20 the sampled single 19 would leave 1; the generator
	// substitutes the highest value leaving at least 2, an 18, and
	// then takes the finish on the remaining 2
	s.random.QueueFloat64(0.99, 0.5, 0.0)
	s.random.QueueNormFloat64(1.7)

	values := s.generator.GenerateVisit(20, 1)
	s.Equal([]int{18, 2}, values)
}

func (s *GeneratorSuite) TestClampsLevelIntoRange() {
	// Level 0 plays as level 1: the aim is 10/3, not 0
	s.random.QueueNormFloat64(0, 0, 0)
	s.random.QueueFloat64(0.5, 0.5, 0.5)

	values := s.generator.GenerateVisit(501, 0)
	s.Equal([]int{3, 3, 3}, values)
}

func (s *GeneratorSuite) TestGeneratedDartsAlwaysLegal() {
	rng := random.NewSeeded(11, 17)
	generator := NewGenerator(rng)

	for level := model.MinComputerLevel; level <= model.MaxComputerLevel; level++ {
		for remaining := 2; remaining <= 501; remaining++ {
			values := generator.GenerateVisit(remaining, level)
			s.Require().NotEmpty(values)
			s.Require().LessOrEqual(len(values), model.VisitDarts)

			left := remaining
			for _, value := range values {
				s.Require().True(model.IsDartValue(value),
					"illegal value %d thrown at %d", value, left)
				left -= value
			}
			s.Require().GreaterOrEqual(left, 0, "visit from %d busted", remaining)
			s.Require().NotEqual(1, left, "visit from %d left 1", remaining)
		}
	}
}
