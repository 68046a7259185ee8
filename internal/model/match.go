package model

import "time"

// MatchID uniquely identifies a match
type MatchID string

// Mode is the game mode, which fixes the starting score for every leg
type Mode string

const (
	Mode301 Mode = "301"
	Mode501 Mode = "501"
)

// Valid reports whether the mode is one of the supported X01 modes
func (m Mode) Valid() bool {
	return m == Mode301 || m == Mode501
}

// StartingScore returns the score each participant begins a leg with
func (m Mode) StartingScore() int {
	if m == Mode301 {
		return 301
	}
	return 501
}

// MatchStatus represents the current phase of a match
type MatchStatus string

const (
	MatchStatusInProgress MatchStatus = "in_progress"
	MatchStatusOver       MatchStatus = "over" // a participant has checked out
)

// ParticipantID identifies one of the two seats within a match
type ParticipantID string

// ParticipantKind distinguishes human throwers from the computer opponent
type ParticipantKind string

const (
	KindHuman    ParticipantKind = "human"
	KindComputer ParticipantKind = "computer"
)

// Computer difficulty bounds
const (
	MinComputerLevel = 1
	MaxComputerLevel = 12
)

// ClampComputerLevel forces a difficulty level into the supported range
func ClampComputerLevel(level int) int {
	if level < MinComputerLevel {
		return MinComputerLevel
	}
	if level > MaxComputerLevel {
		return MaxComputerLevel
	}
	return level
}

// Visit is one turn's worth of recorded dart values. A per-dart visit
// holds up to three values; a visit entered as an aggregate total holds
// one. The empty visit denotes a bust: the whole turn was voided.
type Visit []int

// Total returns the points scored in the visit (0 for a bust)
func (v Visit) Total() int {
	total := 0
	for _, value := range v {
		total += value
	}
	return total
}

// IsBust reports whether the visit was recorded as a bust
func (v Visit) IsBust() bool {
	return len(v) == 0
}

// VisitDarts is the number of throws in a full visit
const VisitDarts = 3

// Participant is one of the two throwers in a match
type Participant struct {
	ID    ParticipantID
	Name  string
	Kind  ParticipantKind
	Level int // computer difficulty 1-12; zero for humans

	Score       int
	DartsThrown int
	Visits      []Visit
	HasWon      bool
	LegsWon     int
}

// IsComputer reports whether this seat is driven by the opponent service
func (p *Participant) IsComputer() bool {
	return p.Kind == KindComputer
}

// ResetForLeg returns the participant to the starting score for a fresh
// leg. Identity and the legs-won tally are retained.
func (p *Participant) ResetForLeg(startingScore int) {
	p.Score = startingScore
	p.DartsThrown = 0
	p.Visits = []Visit{}
	p.HasWon = false
}

// Match is a single two-participant scoring session
type Match struct {
	ID      MatchID
	OwnerID PlayerID // the account that created the match
	Mode    Mode
	Status  MatchStatus

	// Exactly two participants; seat 0 throws first each leg
	Participants []Participant
	CurrentIndex int

	// The visit being thrown right now and the score it reverts to on a
	// bust. The snapshot is only meaningful while PendingVisit is
	// non-empty; it is retaken on the first dart of each visit.
	PendingVisit  Visit
	VisitSnapshot int

	// Transient presentation state. BustSeq increments each time the
	// bust indicator is raised so a delayed clear for an earlier bust
	// cannot clear a later one.
	BustVisible  bool
	BustSeq      int
	ComputerHits []Hit // hit descriptors for the computer turn in flight

	// Winner is set exactly once per leg and cleared only by a leg
	// restart or reset
	Winner *ParticipantID

	// TurnSeq increments every time the turn changes hands (and when a
	// leg starts or restarts). Scheduled computer events capture it and
	// are dropped at fire time if it has moved on.
	TurnSeq int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// InProgress reports whether the match is still being played
func (m *Match) InProgress() bool {
	return m.Status == MatchStatusInProgress
}

// CurrentParticipant returns the participant whose turn it is
func (m *Match) CurrentParticipant() *Participant {
	if len(m.Participants) == 0 {
		return nil
	}
	return &m.Participants[m.CurrentIndex]
}

// Participant returns the participant with the given ID, or nil
func (m *Match) Participant(id ParticipantID) *Participant {
	for i := range m.Participants {
		if m.Participants[i].ID == id {
			return &m.Participants[i]
		}
	}
	return nil
}

// PendingTotal returns the sum of darts buffered in the in-progress visit
func (m *Match) PendingTotal() int {
	return m.PendingVisit.Total()
}

// MatchSummary is a lightweight record of a completed leg
type MatchSummary struct {
	MatchID      MatchID
	OwnerID      PlayerID
	Mode         Mode
	WinnerID     ParticipantID
	WinnerName   string
	Average      float64
	HighestVisit int
	DartsThrown  int
	LegsWon      int // the winner's tally after this leg
	CompletedAt  time.Time
}
