package response

import (
	"time"

	"github.com/WillowTech1996/DartsCounter/internal/model"
	"github.com/WillowTech1996/DartsCounter/internal/services/auth"
	"github.com/WillowTech1996/DartsCounter/internal/services/scoring"
)

// Player represents a player in API responses
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		IsGuest:     p.IsGuest,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Player:       PlayerFromModel(&s.Player),
		SessionToken: s.Token,
	}
}

// Hit describes how a dart landed on the board
type Hit struct {
	Segment    int    `json:"segment"`
	Multiplier int    `json:"multiplier"`
	Value      int    `json:"value"`
	Label      string `json:"label"`
}

// HitFromModel converts model.Hit
func HitFromModel(h model.Hit) Hit {
	return Hit{
		Segment:    h.Segment,
		Multiplier: h.Multiplier,
		Value:      h.Value(),
		Label:      h.Label(),
	}
}

// Participant represents one scoreboard seat with its derived stats
type Participant struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Kind         string  `json:"kind"`
	Level        int     `json:"level,omitempty"`
	Score        int     `json:"score"`
	DartsThrown  int     `json:"darts_thrown"`
	Visits       [][]int `json:"visits"`
	LegsWon      int     `json:"legs_won"`
	HasWon       bool    `json:"has_won"`
	Average      float64 `json:"average"`
	HighestVisit int     `json:"highest_visit"`
	Maximums     int     `json:"maximums"`
}

// ParticipantFromModel converts a model.Participant plus its computed
// statistics
func ParticipantFromModel(p *model.Participant, stats scoring.Stats) Participant {
	visits := make([][]int, len(p.Visits))
	for i, v := range p.Visits {
		visits[i] = append([]int{}, v...)
	}
	return Participant{
		ID:           string(p.ID),
		Name:         p.Name,
		Kind:         string(p.Kind),
		Level:        p.Level,
		Score:        p.Score,
		DartsThrown:  p.DartsThrown,
		Visits:       visits,
		LegsWon:      p.LegsWon,
		HasWon:       p.HasWon,
		Average:      stats.Average,
		HighestVisit: stats.HighestVisit,
		Maximums:     stats.Maximums,
	}
}

// MatchState is the full observable state of a match
type MatchState struct {
	ID                 string        `json:"id"`
	Mode               string        `json:"mode"`
	Status             string        `json:"status"`
	Participants       []Participant `json:"participants"`
	CurrentIndex       int           `json:"current_index"`
	PendingVisit       []int         `json:"pending_visit"`
	BustVisible        bool          `json:"bust_visible"`
	ComputerHits       []Hit         `json:"computer_hits,omitempty"`
	Winner             *string       `json:"winner"`
	TurnSeq            int           `json:"turn_seq"`
	CheckoutSuggestion string        `json:"checkout_suggestion,omitempty"`
}

// MatchStateFromModel converts model.Match to response MatchState.
// stats must hold one entry per participant, in seat order; suggestion
// is the checkout route for the current thrower's score (empty when
// none applies).
func MatchStateFromModel(m *model.Match, stats []scoring.Stats, suggestion string) MatchState {
	participants := make([]Participant, len(m.Participants))
	for i := range m.Participants {
		participants[i] = ParticipantFromModel(&m.Participants[i], stats[i])
	}

	var hits []Hit
	if len(m.ComputerHits) > 0 {
		hits = make([]Hit, len(m.ComputerHits))
		for i, h := range m.ComputerHits {
			hits[i] = HitFromModel(h)
		}
	}

	var winner *string
	if m.Winner != nil {
		w := string(*m.Winner)
		winner = &w
	}

	return MatchState{
		ID:                 string(m.ID),
		Mode:               string(m.Mode),
		Status:             string(m.Status),
		Participants:       participants,
		CurrentIndex:       m.CurrentIndex,
		PendingVisit:       append([]int{}, m.PendingVisit...),
		BustVisible:        m.BustVisible,
		ComputerHits:       hits,
		Winner:             winner,
		TurnSeq:            m.TurnSeq,
		CheckoutSuggestion: suggestion,
	}
}

// MatchSummary represents a completed leg summary
type MatchSummary struct {
	MatchID      string    `json:"match_id"`
	Mode         string    `json:"mode"`
	WinnerID     string    `json:"winner_id"`
	WinnerName   string    `json:"winner_name"`
	Average      float64   `json:"average"`
	HighestVisit int       `json:"highest_visit"`
	DartsThrown  int       `json:"darts_thrown"`
	LegsWon      int       `json:"legs_won"`
	CompletedAt  time.Time `json:"completed_at"`
}

// MatchSummaryFromModel converts model.MatchSummary
func MatchSummaryFromModel(s model.MatchSummary) MatchSummary {
	return MatchSummary{
		MatchID:      string(s.MatchID),
		Mode:         string(s.Mode),
		WinnerID:     string(s.WinnerID),
		WinnerName:   s.WinnerName,
		Average:      s.Average,
		HighestVisit: s.HighestVisit,
		DartsThrown:  s.DartsThrown,
		LegsWon:      s.LegsWon,
		CompletedAt:  s.CompletedAt,
	}
}

// CheckoutResponse is the response for a checkout suggestion lookup
type CheckoutResponse struct {
	Score      int    `json:"score"`
	Suggestion string `json:"suggestion,omitempty"`
	Finishable bool   `json:"finishable"`
}
