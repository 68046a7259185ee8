package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Output renders API responses either as human-readable text or as
// indented JSON, depending on the --output flag.
type Output struct {
	json bool
}

// NewOutput creates a formatter for the given format name.
func NewOutput(format string) *Output {
	return &Output{json: format == "json"}
}

// Print renders a response value in the configured format.
func (o *Output) Print(data any) {
	if o.json {
		printJSON(data)
		return
	}
	o.printText(data)
}

// PrintMessage renders a plain confirmation message.
func (o *Output) PrintMessage(msg string) {
	if o.json {
		line, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(line))
		return
	}
	fmt.Println(msg)
}

func printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case AuthResult:
		o.printAuthResult(v)
	case MatchState:
		o.printMatchState(v)
	case []MatchSummary:
		o.printSummaries(v)
	case CheckoutResult:
		o.printCheckout(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Types without a text renderer fall back to JSON.
		printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// AuthResult combines player and token
type AuthResult struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// Participant response type
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

// Hit response type
type Hit struct {
	Segment    int    `json:"segment"`
	Multiplier int    `json:"multiplier"`
	Value      int    `json:"value"`
	Label      string `json:"label"`
}

// MatchState response type
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

// MatchSummary response type
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

// CheckoutResult response type
type CheckoutResult struct {
	Score      int    `json:"score"`
	Suggestion string `json:"suggestion,omitempty"`
	Finishable bool   `json:"finishable"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	guestStr := "no"
	if p.IsGuest {
		guestStr = "yes"
	}
	fmt.Printf("Player: %s (%s)\n", p.DisplayName, p.ID)
	fmt.Printf("Guest: %s\n", guestStr)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printMatchState(m MatchState) {
	fmt.Printf("Match: %s (%s)\n", m.ID, m.Mode)
	fmt.Printf("Status: %s\n", m.Status)
	fmt.Println()

	for i, p := range m.Participants {
		marker := " "
		if m.Status == "in_progress" && i == m.CurrentIndex {
			marker = ">"
		}

		name := p.Name
		if p.Kind == "computer" {
			name = fmt.Sprintf("%s [L%d]", p.Name, p.Level)
		}

		line := fmt.Sprintf(" %s %-20s %4d   darts: %-4d avg: %5.1f  legs: %d",
			marker, name, p.Score, p.DartsThrown, p.Average, p.LegsWon)
		if p.HasWon {
			line += "  WINNER"
		}
		fmt.Println(line)
	}

	if len(m.PendingVisit) > 0 {
		total := 0
		for _, v := range m.PendingVisit {
			total += v
		}
		fmt.Printf("\nThis visit: %s (%d)\n", joinInts(m.PendingVisit), total)
	}

	if len(m.ComputerHits) > 0 {
		labels := make([]string, len(m.ComputerHits))
		for i, h := range m.ComputerHits {
			labels[i] = h.Label
		}
		fmt.Printf("Computer threw: %s\n", strings.Join(labels, " "))
	}

	if m.BustVisible {
		fmt.Println("\nBUST - visit does not count")
	}

	if m.CheckoutSuggestion != "" {
		fmt.Printf("\nCheckout: %s\n", m.CheckoutSuggestion)
	}
}

func (o *Output) printSummaries(summaries []MatchSummary) {
	if len(summaries) == 0 {
		fmt.Println("No finished matches")
		return
	}

	for _, s := range summaries {
		fmt.Printf("%s  %s  %s won  avg %.1f  high %d  darts %d  legs %d  %s\n",
			s.MatchID, s.Mode, s.WinnerName, s.Average, s.HighestVisit,
			s.DartsThrown, s.LegsWon, s.CompletedAt.Format("2006-01-02 15:04"))
	}
}

func (o *Output) printCheckout(c CheckoutResult) {
	fmt.Printf("Score: %d\n", c.Score)
	switch {
	case c.Finishable:
		fmt.Printf("Checkout: %s\n", c.Suggestion)
	case c.Suggestion != "":
		fmt.Println("No three-dart finish")
	default:
		fmt.Println("Out of checkout range")
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}
