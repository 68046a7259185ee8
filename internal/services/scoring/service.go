package scoring

import (
	"github.com/WillowTech1996/DartsCounter/internal/model"
)

// Outcome classifies the effect of applying one dart to a score
type Outcome string

const (
	// OutcomeContinue means the dart scored and the leg goes on
	OutcomeContinue Outcome = "continue"
	// OutcomeBust means the dart would leave a score that cannot be
	// played out (below zero, or exactly one)
	OutcomeBust Outcome = "bust"
	// OutcomeWin means the dart took the score to exactly zero
	OutcomeWin Outcome = "win"
)

// Stats are the derived scoreboard figures for one participant.
// They are computed from the recorded visits on demand, never stored.
type Stats struct {
	DartsThrown  int
	Visits       int
	Average      float64
	HighestVisit int
	Maximums     int // visits worth 180
}

// Service provides the X01 subtraction arithmetic and derived statistics
type Service struct{}

// New creates a new scoring service
func New() *Service {
	return &Service{}
}

// Evaluate applies a single dart to a score. A dart that would leave a
// negative score or exactly 1 is a bust and leaves the score untouched;
// reaching exactly zero wins the leg. Finishing without a double is
// accepted: the table and the opponent bias toward proper finishes, but
// the engine does not enforce them.
func (s *Service) Evaluate(score, dartValue int) (int, Outcome) {
	remaining := score - dartValue
	if remaining < 0 || remaining == 1 {
		return score, OutcomeBust
	}
	if remaining == 0 {
		return 0, OutcomeWin
	}
	return remaining, OutcomeContinue
}

// EvaluateVisit applies a whole-visit total to a score, with the same
// bust and win rules as a single dart
func (s *Service) EvaluateVisit(score, visitTotal int) (int, Outcome) {
	return s.Evaluate(score, visitTotal)
}

// Stats computes scoreboard statistics from a participant's visit
// history. The average is points per recorded value: a visit entered
// dart by dart contributes up to three values, a visit entered as an
// aggregate contributes one, and a bust contributes none. A bust still
// shows up as a zero-total visit, so it can never be the highest.
func (s *Service) Stats(p *model.Participant) Stats {
	stats := Stats{
		DartsThrown: p.DartsThrown,
		Visits:      len(p.Visits),
	}

	total := 0
	entries := 0
	for _, visit := range p.Visits {
		visitTotal := visit.Total()
		total += visitTotal
		entries += len(visit)
		if visitTotal > stats.HighestVisit {
			stats.HighestVisit = visitTotal
		}
		if visitTotal == model.MaxVisitTotal {
			stats.Maximums++
		}
	}

	if entries > 0 {
		stats.Average = float64(total) / float64(entries)
	}
	return stats
}

// Interface for dependency injection
type ServiceInterface interface {
	Evaluate(score, dartValue int) (int, Outcome)
	EvaluateVisit(score, visitTotal int) (int, Outcome)
	Stats(p *model.Participant) Stats
}

var _ ServiceInterface = (*Service)(nil)
