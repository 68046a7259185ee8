package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventMatchStarted   EventType = "match_started"
	EventDartThrown     EventType = "dart_thrown"
	EventComputerDart   EventType = "computer_dart"
	EventDartUndone     EventType = "dart_undone"
	EventVisitCommitted EventType = "visit_committed"
	EventVisitBusted    EventType = "visit_busted"
	EventBustCleared    EventType = "bust_cleared"
	EventTurnAdvanced   EventType = "turn_advanced"
	EventMatchWon       EventType = "match_won"
	EventLegRestarted   EventType = "leg_restarted"
	EventMatchReset     EventType = "match_reset"
)

// Event is the base structure for all match events
type Event struct {
	Type          EventType
	Timestamp     time.Time
	MatchID       MatchID
	ParticipantID ParticipantID // the thrower concerned, where relevant
	Payload       any           // Type-specific data
}

// MatchStartedPayload contains data for match started events
type MatchStartedPayload struct {
	Mode          Mode
	Names         []string
	VsComputer    bool
	ComputerLevel int
}

// DartThrownPayload contains data for human dart events
type DartThrownPayload struct {
	Value        int
	Score        int // remaining score after the dart
	DartsThrown  int
	PendingDarts int // darts buffered in the visit, this one included
}

// ComputerDartPayload contains data for computer dart events
type ComputerDartPayload struct {
	Value int
	Score int
	Hit   Hit
	Label string // conventional shorthand for the hit, e.g. "T20"
}

// DartUndonePayload contains data for undo events
type DartUndonePayload struct {
	Value int // the dart that was taken back
	Score int // remaining score after the undo
}

// VisitCommittedPayload contains data for committed visit events
type VisitCommittedPayload struct {
	Visit Visit
	Total int
	Score int
}

// VisitBustedPayload contains data for bust events
type VisitBustedPayload struct {
	Attempted int // points the voided visit would have scored
	Score     int // remaining score after reverting to the snapshot
}

// TurnAdvancedPayload contains data for turn change events
type TurnAdvancedPayload struct {
	CurrentIndex int
	Name         string
	IsComputer   bool
}

// MatchWonPayload contains data for match won events
type MatchWonPayload struct {
	WinnerName   string
	Average      float64
	HighestVisit int
	DartsThrown  int
	LegsWon      int
}

// LegRestartedPayload contains data for play-again events
type LegRestartedPayload struct {
	Mode  Mode
	Names []string
}
