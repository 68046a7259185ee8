package opponent

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/WillowTech1996/DartsCounter/internal/dependencies/clock"
	"github.com/WillowTech1996/DartsCounter/internal/dependencies/random"
	"github.com/WillowTech1996/DartsCounter/internal/model"
	"github.com/WillowTech1996/DartsCounter/internal/services/match"
)

// Config controls the pacing of a computer turn.
type Config struct {
	// ThrowInterval is the gap between scheduled computer darts
	ThrowInterval time.Duration
	// HoldDelay keeps the finished visit on screen before the turn
	// hands back to the human
	HoldDelay time.Duration
}

func DefaultConfig() Config {
	return Config{
		ThrowInterval: 1 * time.Second,
		HoldDelay:     1500 * time.Millisecond,
	}
}

// Service plays computer turns. When a match call leaves the computer
// as the current thrower, PlayPendingTurn generates the whole visit up
// front and schedules each dart on the clock. Every scheduled step
// revalidates against the live match at fire time, so a reset, a won
// leg, or a manually ended visit simply strands the stale steps; there
// is no explicit cancel.
type Service struct {
	controller match.ControllerInterface
	generator  *Generator
	classifier *Classifier
	clock      clock.Clock
	cfg        Config
	logger     *slog.Logger

	mu      sync.Mutex
	pending map[model.MatchID]int // turn sequence of the scheduled visit
}

func New(
	controller match.ControllerInterface,
	clk clock.Clock,
	rnd random.Random,
	cfg Config,
	logger *slog.Logger,
) *Service {
	return &Service{
		controller: controller,
		generator:  NewGenerator(rnd),
		classifier: NewClassifier(rnd),
		clock:      clk,
		cfg:        cfg,
		logger:     logger,
		pending:    make(map[model.MatchID]int),
	}
}

// PlayPendingTurn schedules the computer's visit for the given match
// state if the computer is the current thrower. Safe to call after
// every match mutation; a human turn, a finished match, or a turn that
// is already scheduled does nothing.
func (s *Service) PlayPendingTurn(m *model.Match) {
	if m == nil || !m.InProgress() {
		return
	}
	current := m.CurrentParticipant()
	if current == nil || !current.IsComputer() {
		return
	}

	s.mu.Lock()
	if seq, ok := s.pending[m.ID]; ok && seq == m.TurnSeq {
		s.mu.Unlock()
		return
	}
	s.pending[m.ID] = m.TurnSeq
	s.mu.Unlock()

	matchID := m.ID
	turnSeq := m.TurnSeq
	values := s.generator.GenerateVisit(current.Score, current.Level)

	s.logger.Info("computer turn scheduled",
		slog.String("match_id", string(matchID)),
		slog.Int("turn_seq", turnSeq),
		slog.Int("level", current.Level),
		slog.Int("darts", len(values)),
	)

	for i, value := range values {
		hit := s.classifier.Classify(value)
		delay := time.Duration(i+1) * s.cfg.ThrowInterval
		s.clock.AfterFunc(delay, func() {
			s.fireDart(matchID, turnSeq, value, hit)
		})
	}

	advanceAt := time.Duration(len(values))*s.cfg.ThrowInterval + s.cfg.HoldDelay
	s.clock.AfterFunc(advanceAt, func() {
		s.fireAdvance(matchID, turnSeq)
	})
}

// fireDart applies one scheduled dart. The controller drops it when
// the turn has moved on; a deleted match is the normal end of a stale
// sequence and stays quiet.
func (s *Service) fireDart(matchID model.MatchID, turnSeq, value int, hit model.Hit) {
	_, err := s.controller.SubmitComputerDart(context.Background(), matchID, turnSeq, value, hit)
	if err != nil && !errors.Is(err, model.ErrMatchNotFound) {
		s.logger.Error("failed to apply computer dart",
			slog.String("match_id", string(matchID)),
			slog.Int("turn_seq", turnSeq),
			slog.String("error", err.Error()),
		)
	}
}

// fireAdvance hands the turn back once the hold delay has passed and
// releases the pending slot for the next scheduled visit.
func (s *Service) fireAdvance(matchID model.MatchID, turnSeq int) {
	defer s.release(matchID, turnSeq)

	_, err := s.controller.FinishComputerTurn(context.Background(), matchID, turnSeq)
	if err != nil && !errors.Is(err, model.ErrMatchNotFound) {
		s.logger.Error("failed to finish computer turn",
			slog.String("match_id", string(matchID)),
			slog.Int("turn_seq", turnSeq),
			slog.String("error", err.Error()),
		)
	}
}

func (s *Service) release(matchID model.MatchID, turnSeq int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq, ok := s.pending[matchID]; ok && seq == turnSeq {
		delete(s.pending, matchID)
	}
}

// ServiceInterface is the opponent surface the API layer drives
type ServiceInterface interface {
	PlayPendingTurn(m *model.Match)
}

var _ ServiceInterface = (*Service)(nil)
