package match

import (
	"context"
	"log/slog"
	"time"

	"github.com/WillowTech1996/DartsCounter/internal/dependencies/clock"
	"github.com/WillowTech1996/DartsCounter/internal/dependencies/random"
	"github.com/WillowTech1996/DartsCounter/internal/model"
	"github.com/WillowTech1996/DartsCounter/internal/services/checkout"
	"github.com/WillowTech1996/DartsCounter/internal/services/scoring"
	"github.com/WillowTech1996/DartsCounter/internal/storage"
)

const (
	// MatchIDLength is the length of generated match IDs
	MatchIDLength = 6
	// MatchIDAlphabet is the characters used in match IDs (avoid confusing chars)
	MatchIDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	// Seat IDs for the two participants
	seatOne model.ParticipantID = "p1"
	seatTwo model.ParticipantID = "p2"
)

// Config holds presentation timing the controller is responsible for
type Config struct {
	// BustDisplay is how long the bust indicator stays up before the
	// scheduled clear fires
	BustDisplay time.Duration
}

// DefaultConfig returns the standard timing configuration
func DefaultConfig() Config {
	return Config{
		BustDisplay: 1500 * time.Millisecond,
	}
}

// Controller manages match state and turn flow.
//
// Scoring calls are total: a submission that arrives for a finished
// match, or an undo with nothing to undo, returns the match unchanged
// rather than erroring. The presentation layer disables those inputs;
// the engine just refuses to corrupt state when they slip through.
type Controller struct {
	storage         storage.Storage
	scoringService  *scoring.Service
	checkoutService *checkout.Service
	clock           clock.Clock
	random          random.Random
	notifier        Notifier
	cfg             Config
	logger          *slog.Logger
}

// NewController creates a new match controller
func NewController(
	storage storage.Storage,
	scoringService *scoring.Service,
	checkoutService *checkout.Service,
	clock clock.Clock,
	random random.Random,
	notifier Notifier,
	cfg Config,
	logger *slog.Logger,
) *Controller {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Controller{
		storage:         storage,
		scoringService:  scoringService,
		checkoutService: checkoutService,
		clock:           clock,
		random:          random,
		notifier:        notifier,
		cfg:             cfg,
		logger:          logger,
	}
}

// StartMatch creates a new match for the given owner. Empty names get
// defaults, and a computer level outside 1-12 is clamped rather than
// rejected.
func (c *Controller) StartMatch(
	ctx context.Context,
	ownerID model.PlayerID,
	mode model.Mode,
	name1, name2 string,
	vsComputer bool,
	computerLevel int,
) (*model.Match, error) {
	if !mode.Valid() {
		return nil, model.ErrInvalidMode
	}

	if name1 == "" {
		name1 = "Player 1"
	}
	if name2 == "" {
		if vsComputer {
			name2 = "Computer"
		} else {
			name2 = "Player 2"
		}
	}

	now := c.clock.Now()
	startingScore := mode.StartingScore()

	// Generate unique match ID
	var matchID model.MatchID
	for {
		matchID = model.MatchID(c.random.String(MatchIDLength, MatchIDAlphabet))
		exists, err := c.storage.MatchExists(ctx, matchID)
		if err != nil {
			return nil, err
		}
		if !exists {
			break
		}
	}

	second := model.Participant{
		ID:     seatTwo,
		Name:   name2,
		Kind:   model.KindHuman,
		Score:  startingScore,
		Visits: []model.Visit{},
	}
	if vsComputer {
		second.Kind = model.KindComputer
		second.Level = model.ClampComputerLevel(computerLevel)
	}

	match := &model.Match{
		ID:      matchID,
		OwnerID: ownerID,
		Mode:    mode,
		Status:  model.MatchStatusInProgress,
		Participants: []model.Participant{
			{
				ID:     seatOne,
				Name:   name1,
				Kind:   model.KindHuman,
				Score:  startingScore,
				Visits: []model.Visit{},
			},
			second,
		},
		CurrentIndex: 0,
		PendingVisit: model.Visit{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := c.storage.SaveMatch(ctx, match); err != nil {
		c.logger.Error("failed to save match",
			slog.String("match_id", string(matchID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("match started",
		slog.String("match_id", string(matchID)),
		slog.String("mode", string(mode)),
		slog.Bool("vs_computer", vsComputer),
		slog.Int("computer_level", second.Level),
	)

	c.notify(model.Event{
		Type:      model.EventMatchStarted,
		Timestamp: now,
		MatchID:   matchID,
		Payload: model.MatchStartedPayload{
			Mode:          mode,
			Names:         []string{name1, name2},
			VsComputer:    vsComputer,
			ComputerLevel: second.Level,
		},
	})

	return match, nil
}

// GetMatch retrieves a match by ID
func (c *Controller) GetMatch(ctx context.Context, matchID model.MatchID) (*model.Match, error) {
	return c.storage.GetMatch(ctx, matchID)
}

// SubmitDart applies a single dart thrown by the current participant.
// The first dart of a visit snapshots the score so a later bust can
// revert the whole turn. A dart that arrives for a finished match or a
// full visit is ignored.
func (c *Controller) SubmitDart(ctx context.Context, matchID model.MatchID, value int) (*model.Match, error) {
	match, err := c.storage.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	if !match.InProgress() || len(match.PendingVisit) >= model.VisitDarts {
		return match, nil
	}

	return c.applyDart(ctx, match, value, nil)
}

// SubmitComputerDart applies one scheduled dart of a computer turn.
// The dart was generated when the turn began; by the time its timer
// fires the match may have moved on, so it is dropped unless the match
// is still in progress, the turn counter matches, and the computer is
// still the current thrower.
func (c *Controller) SubmitComputerDart(ctx context.Context, matchID model.MatchID, turnSeq int, value int, hit model.Hit) (*model.Match, error) {
	match, err := c.storage.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	if !c.computerTurnLive(match, turnSeq) || len(match.PendingVisit) >= model.VisitDarts {
		return match, nil
	}

	// A fresh computer visit replaces the previous turn's hit display
	if len(match.PendingVisit) == 0 {
		match.ComputerHits = nil
	}
	match.ComputerHits = append(match.ComputerHits, hit)

	return c.applyDart(ctx, match, value, &hit)
}

// FinishComputerTurn commits the computer's visit and hands the turn
// over, with the same staleness guard as SubmitComputerDart
func (c *Controller) FinishComputerTurn(ctx context.Context, matchID model.MatchID, turnSeq int) (*model.Match, error) {
	match, err := c.storage.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	if !c.computerTurnLive(match, turnSeq) {
		return match, nil
	}

	return c.endVisit(ctx, match, false)
}

// computerTurnLive reports whether a scheduled computer event is still
// valid to apply
func (c *Controller) computerTurnLive(match *model.Match, turnSeq int) bool {
	if !match.InProgress() || match.TurnSeq != turnSeq {
		return false
	}
	current := match.CurrentParticipant()
	return current != nil && current.IsComputer()
}

// applyDart runs one dart through the scoring rules and persists the
// result. hit is non-nil for computer darts.
func (c *Controller) applyDart(ctx context.Context, match *model.Match, value int, hit *model.Hit) (*model.Match, error) {
	current := match.CurrentParticipant()
	now := c.clock.Now()
	bustSeqBefore := match.BustSeq

	// First dart of the visit: remember where the score started
	if len(match.PendingVisit) == 0 {
		match.VisitSnapshot = current.Score
	}

	var events []model.Event

	newScore, outcome := c.scoringService.Evaluate(current.Score, value)
	current.DartsThrown++
	match.PendingVisit = append(match.PendingVisit, value)

	switch outcome {
	case scoring.OutcomeBust:
		events = append(events, c.bustVisit(match, match.PendingTotal(), now)...)

	case scoring.OutcomeWin:
		current.Score = 0
		events = append(events, c.dartEvent(match, current, value, hit, now))
		winEvents, err := c.finishLeg(ctx, match, current, now)
		if err != nil {
			return nil, err
		}
		events = append(events, winEvents...)

	default:
		current.Score = newScore
		events = append(events, c.dartEvent(match, current, value, hit, now))
	}

	match.UpdatedAt = now
	if err := c.storage.SaveMatch(ctx, match); err != nil {
		c.logger.Error("failed to save match",
			slog.String("match_id", string(match.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	for _, event := range events {
		c.notify(event)
	}
	c.scheduleBustClear(match, bustSeqBefore)

	return match, nil
}

// dartEvent builds the per-dart event for a scoring (non-bust) dart
func (c *Controller) dartEvent(match *model.Match, current *model.Participant, value int, hit *model.Hit, now time.Time) model.Event {
	if hit != nil {
		return model.Event{
			Type:          model.EventComputerDart,
			Timestamp:     now,
			MatchID:       match.ID,
			ParticipantID: current.ID,
			Payload: model.ComputerDartPayload{
				Value: value,
				Score: current.Score,
				Hit:   *hit,
				Label: hit.Label(),
			},
		}
	}
	return model.Event{
		Type:          model.EventDartThrown,
		Timestamp:     now,
		MatchID:       match.ID,
		ParticipantID: current.ID,
		Payload: model.DartThrownPayload{
			Value:        value,
			Score:        current.Score,
			DartsThrown:  current.DartsThrown,
			PendingDarts: len(match.PendingVisit),
		},
	}
}

// SubmitVisitTotal records a whole visit as one aggregate total. Any
// darts already buffered for the visit are reverted first: the total
// replaces them and always accounts for three throws.
func (c *Controller) SubmitVisitTotal(ctx context.Context, matchID model.MatchID, total int) (*model.Match, error) {
	match, err := c.storage.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	if !match.InProgress() {
		return match, nil
	}

	current := match.CurrentParticipant()
	now := c.clock.Now()
	bustSeqBefore := match.BustSeq

	// Revert buffered darts; the aggregate stands in for the whole visit
	if len(match.PendingVisit) > 0 {
		current.Score = match.VisitSnapshot
		current.DartsThrown -= len(match.PendingVisit)
		match.PendingVisit = nil
	}

	var events []model.Event

	newScore, outcome := c.scoringService.EvaluateVisit(current.Score, total)
	current.DartsThrown += model.VisitDarts

	switch outcome {
	case scoring.OutcomeBust:
		events = append(events, c.bustVisit(match, total, now)...)

	case scoring.OutcomeWin:
		current.Score = 0
		current.Visits = append(current.Visits, model.Visit{total})
		events = append(events, model.Event{
			Type:          model.EventVisitCommitted,
			Timestamp:     now,
			MatchID:       match.ID,
			ParticipantID: current.ID,
			Payload: model.VisitCommittedPayload{
				Visit: model.Visit{total},
				Total: total,
				Score: 0,
			},
		})
		winEvents, err := c.finishLeg(ctx, match, current, now)
		if err != nil {
			return nil, err
		}
		events = append(events, winEvents...)

	default:
		current.Score = newScore
		current.Visits = append(current.Visits, model.Visit{total})
		events = append(events, model.Event{
			Type:          model.EventVisitCommitted,
			Timestamp:     now,
			MatchID:       match.ID,
			ParticipantID: current.ID,
			Payload: model.VisitCommittedPayload{
				Visit: model.Visit{total},
				Total: total,
				Score: newScore,
			},
		})
		events = append(events, c.advanceTurn(match, now))
	}

	match.UpdatedAt = now
	if err := c.storage.SaveMatch(ctx, match); err != nil {
		c.logger.Error("failed to save match",
			slog.String("match_id", string(match.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	for _, event := range events {
		c.notify(event)
	}
	c.scheduleBustClear(match, bustSeqBefore)

	return match, nil
}

// UndoLastDart takes back the most recent buffered dart, restoring its
// value to the thrower's score. With nothing buffered it is a no-op:
// committed visits are history, not undoable state.
func (c *Controller) UndoLastDart(ctx context.Context, matchID model.MatchID) (*model.Match, error) {
	match, err := c.storage.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	if !match.InProgress() || len(match.PendingVisit) == 0 {
		return match, nil
	}

	current := match.CurrentParticipant()
	now := c.clock.Now()

	last := match.PendingVisit[len(match.PendingVisit)-1]
	match.PendingVisit = match.PendingVisit[:len(match.PendingVisit)-1]
	current.Score += last
	current.DartsThrown--

	match.UpdatedAt = now
	if err := c.storage.SaveMatch(ctx, match); err != nil {
		c.logger.Error("failed to save match",
			slog.String("match_id", string(match.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.notify(model.Event{
		Type:          model.EventDartUndone,
		Timestamp:     now,
		MatchID:       match.ID,
		ParticipantID: current.ID,
		Payload: model.DartUndonePayload{
			Value: last,
			Score: current.Score,
		},
	})

	return match, nil
}

// EndVisit closes out the current visit. A normal end commits the
// buffered darts as the visit record; a busted end voids them, reverts
// the score to the start of the visit and records an empty visit. Both
// hand the turn to the other participant.
func (c *Controller) EndVisit(ctx context.Context, matchID model.MatchID, busted bool) (*model.Match, error) {
	match, err := c.storage.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	if !match.InProgress() {
		return match, nil
	}

	return c.endVisit(ctx, match, busted)
}

func (c *Controller) endVisit(ctx context.Context, match *model.Match, busted bool) (*model.Match, error) {
	current := match.CurrentParticipant()
	now := c.clock.Now()
	bustSeqBefore := match.BustSeq

	var events []model.Event

	if busted {
		events = append(events, c.bustVisit(match, match.PendingTotal(), now)...)
	} else if len(match.PendingVisit) > 0 {
		committed := make(model.Visit, len(match.PendingVisit))
		copy(committed, match.PendingVisit)
		current.Visits = append(current.Visits, committed)
		match.PendingVisit = nil

		events = append(events, model.Event{
			Type:          model.EventVisitCommitted,
			Timestamp:     now,
			MatchID:       match.ID,
			ParticipantID: current.ID,
			Payload: model.VisitCommittedPayload{
				Visit: committed,
				Total: committed.Total(),
				Score: current.Score,
			},
		})
		events = append(events, c.advanceTurn(match, now))
	} else {
		// Nothing thrown: no record (an empty record means a bust),
		// the turn just moves on
		events = append(events, c.advanceTurn(match, now))
	}

	match.UpdatedAt = now
	if err := c.storage.SaveMatch(ctx, match); err != nil {
		c.logger.Error("failed to save match",
			slog.String("match_id", string(match.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	for _, event := range events {
		c.notify(event)
	}
	c.scheduleBustClear(match, bustSeqBefore)

	return match, nil
}

// bustVisit voids the in-progress visit: the score reverts to the
// visit snapshot, an empty visit is recorded, the bust indicator goes
// up and the turn advances. Darts thrown stay counted. attempted is
// the points the voided visit would have scored.
func (c *Controller) bustVisit(match *model.Match, attempted int, now time.Time) []model.Event {
	current := match.CurrentParticipant()

	if len(match.PendingVisit) > 0 {
		current.Score = match.VisitSnapshot
	}
	current.Visits = append(current.Visits, model.Visit{})
	match.PendingVisit = nil

	match.BustVisible = true
	match.BustSeq++

	events := []model.Event{{
		Type:          model.EventVisitBusted,
		Timestamp:     now,
		MatchID:       match.ID,
		ParticipantID: current.ID,
		Payload: model.VisitBustedPayload{
			Attempted: attempted,
			Score:     current.Score,
		},
	}}
	return append(events, c.advanceTurn(match, now))
}

// advanceTurn hands the turn to the other participant and bumps the
// turn counter so any scheduled computer events for the old turn die
func (c *Controller) advanceTurn(match *model.Match, now time.Time) model.Event {
	match.CurrentIndex = (match.CurrentIndex + 1) % len(match.Participants)
	match.TurnSeq++
	match.PendingVisit = nil

	next := match.CurrentParticipant()
	return model.Event{
		Type:          model.EventTurnAdvanced,
		Timestamp:     now,
		MatchID:       match.ID,
		ParticipantID: next.ID,
		Payload: model.TurnAdvancedPayload{
			CurrentIndex: match.CurrentIndex,
			Name:         next.Name,
			IsComputer:   next.IsComputer(),
		},
	}
}

// finishLeg settles a win: the pending visit is committed, the match
// closes and a summary row is written for the owner's history
func (c *Controller) finishLeg(ctx context.Context, match *model.Match, winner *model.Participant, now time.Time) ([]model.Event, error) {
	if len(match.PendingVisit) > 0 {
		committed := make(model.Visit, len(match.PendingVisit))
		copy(committed, match.PendingVisit)
		winner.Visits = append(winner.Visits, committed)
		match.PendingVisit = nil
	}

	winner.HasWon = true
	winner.LegsWon++
	winnerID := winner.ID
	match.Winner = &winnerID
	match.Status = model.MatchStatusOver
	match.TurnSeq++ // kill any scheduled computer events

	stats := c.scoringService.Stats(winner)

	summary := &model.MatchSummary{
		MatchID:      match.ID,
		OwnerID:      match.OwnerID,
		Mode:         match.Mode,
		WinnerID:     winner.ID,
		WinnerName:   winner.Name,
		Average:      stats.Average,
		HighestVisit: stats.HighestVisit,
		DartsThrown:  stats.DartsThrown,
		LegsWon:      winner.LegsWon,
		CompletedAt:  now,
	}
	if err := c.storage.SaveMatchSummary(ctx, summary); err != nil {
		c.logger.Error("failed to save match summary",
			slog.String("match_id", string(match.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("leg won",
		slog.String("match_id", string(match.ID)),
		slog.String("winner", winner.Name),
		slog.Int("darts_thrown", stats.DartsThrown),
		slog.Int("legs_won", winner.LegsWon),
	)

	return []model.Event{{
		Type:          model.EventMatchWon,
		Timestamp:     now,
		MatchID:       match.ID,
		ParticipantID: winner.ID,
		Payload: model.MatchWonPayload{
			WinnerName:   winner.Name,
			Average:      stats.Average,
			HighestVisit: stats.HighestVisit,
			DartsThrown:  stats.DartsThrown,
			LegsWon:      winner.LegsWon,
		},
	}}, nil
}

// PlayAgain starts a fresh leg with the same participants. The loser
// does not get revenge on turn order: seat one always throws first.
func (c *Controller) PlayAgain(ctx context.Context, matchID model.MatchID) (*model.Match, error) {
	match, err := c.storage.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	if match.InProgress() {
		return nil, model.ErrMatchInProgress
	}

	now := c.clock.Now()
	startingScore := match.Mode.StartingScore()

	names := make([]string, 0, len(match.Participants))
	for i := range match.Participants {
		match.Participants[i].ResetForLeg(startingScore)
		names = append(names, match.Participants[i].Name)
	}

	match.Status = model.MatchStatusInProgress
	match.CurrentIndex = 0
	match.PendingVisit = model.Visit{}
	match.VisitSnapshot = 0
	match.BustVisible = false
	match.ComputerHits = nil
	match.Winner = nil
	match.TurnSeq++
	match.UpdatedAt = now

	if err := c.storage.SaveMatch(ctx, match); err != nil {
		c.logger.Error("failed to save match",
			slog.String("match_id", string(match.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("leg restarted",
		slog.String("match_id", string(match.ID)),
		slog.String("mode", string(match.Mode)),
	)

	c.notify(model.Event{
		Type:      model.EventLegRestarted,
		Timestamp: now,
		MatchID:   match.ID,
		Payload: model.LegRestartedPayload{
			Mode:  match.Mode,
			Names: names,
		},
	})

	return match, nil
}

// ResetMatch deletes the match outright. Scheduled timers for it find
// nothing to load and drop themselves.
func (c *Controller) ResetMatch(ctx context.Context, matchID model.MatchID) error {
	if err := c.storage.DeleteMatch(ctx, matchID); err != nil {
		return err
	}

	c.logger.Info("match reset",
		slog.String("match_id", string(matchID)),
	)

	c.notify(model.Event{
		Type:      model.EventMatchReset,
		Timestamp: c.clock.Now(),
		MatchID:   matchID,
	})

	return nil
}

// GetCheckoutSuggestion returns the recommended finish for a score
func (c *Controller) GetCheckoutSuggestion(score int) string {
	return c.checkoutService.Suggest(score)
}

// Stats computes the scoreboard statistics for one participant
func (c *Controller) Stats(p *model.Participant) scoring.Stats {
	return c.scoringService.Stats(p)
}

// ListSummaries returns the owner's completed legs, newest first
func (c *Controller) ListSummaries(ctx context.Context, ownerID model.PlayerID) ([]model.MatchSummary, error) {
	return c.storage.ListMatchSummaries(ctx, ownerID)
}

// scheduleBustClear arms the indicator clear when a bust has just been
// raised (the bust counter moved past seqBefore). The clear is keyed to
// the counter so it cannot wipe a newer bust's indicator, and it
// reloads the match when it fires because the state may have changed
// in the meantime.
func (c *Controller) scheduleBustClear(match *model.Match, seqBefore int) {
	if !match.BustVisible || match.BustSeq == seqBefore {
		return
	}

	matchID := match.ID
	bustSeq := match.BustSeq
	c.clock.AfterFunc(c.cfg.BustDisplay, func() {
		c.clearBust(matchID, bustSeq)
	})
}

// clearBust lowers the bust indicator if the bust it belongs to is
// still the one on display
func (c *Controller) clearBust(matchID model.MatchID, bustSeq int) {
	ctx := context.Background()

	match, err := c.storage.GetMatch(ctx, matchID)
	if err != nil {
		// Match reset or expired; nothing to clear
		return
	}

	if !match.BustVisible || match.BustSeq != bustSeq {
		return
	}

	now := c.clock.Now()
	match.BustVisible = false
	match.UpdatedAt = now

	if err := c.storage.SaveMatch(ctx, match); err != nil {
		c.logger.Error("failed to clear bust indicator",
			slog.String("match_id", string(matchID)),
			slog.String("error", err.Error()),
		)
		return
	}

	c.notify(model.Event{
		Type:      model.EventBustCleared,
		Timestamp: now,
		MatchID:   matchID,
	})
}

func (c *Controller) notify(event model.Event) {
	if c.notifier != nil {
		c.notifier.Notify(event)
	}
}

// Interface for dependency injection
type ControllerInterface interface {
	StartMatch(ctx context.Context, ownerID model.PlayerID, mode model.Mode, name1, name2 string, vsComputer bool, computerLevel int) (*model.Match, error)
	GetMatch(ctx context.Context, matchID model.MatchID) (*model.Match, error)
	SubmitDart(ctx context.Context, matchID model.MatchID, value int) (*model.Match, error)
	SubmitComputerDart(ctx context.Context, matchID model.MatchID, turnSeq int, value int, hit model.Hit) (*model.Match, error)
	FinishComputerTurn(ctx context.Context, matchID model.MatchID, turnSeq int) (*model.Match, error)
	SubmitVisitTotal(ctx context.Context, matchID model.MatchID, total int) (*model.Match, error)
	UndoLastDart(ctx context.Context, matchID model.MatchID) (*model.Match, error)
	EndVisit(ctx context.Context, matchID model.MatchID, busted bool) (*model.Match, error)
	PlayAgain(ctx context.Context, matchID model.MatchID) (*model.Match, error)
	ResetMatch(ctx context.Context, matchID model.MatchID) error
	GetCheckoutSuggestion(score int) string
	Stats(p *model.Participant) scoring.Stats
	ListSummaries(ctx context.Context, ownerID model.PlayerID) ([]model.MatchSummary, error)
}

var _ ControllerInterface = (*Controller)(nil)
