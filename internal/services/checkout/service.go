package checkout

// Suggestion markers for scores with no checkout route
const (
	// NoSuggestion is returned for scores outside the 1..170 window,
	// where showing checkout advice makes no sense at all.
	NoSuggestion = ""
	// CannotFinish is returned for scores inside the window that no
	// combination of three darts can take to zero on a double.
	CannotFinish = "cannot finish"
)

// Service answers checkout questions from the static table
type Service struct{}

// New creates a new checkout service
func New() *Service {
	return &Service{}
}

// Suggest returns the recommended route for finishing the given score.
// Total over all inputs: out-of-window scores get NoSuggestion and
// unfinishable in-window scores get CannotFinish.
func (s *Service) Suggest(score int) string {
	if score < 1 || score > MaxCheckout {
		return NoSuggestion
	}
	route, ok := checkoutTable[score]
	if !ok {
		return CannotFinish
	}
	return route
}

// Finishable reports whether the score has a checkout route
func (s *Service) Finishable(score int) bool {
	_, ok := checkoutTable[score]
	return ok
}

// Interface check
type ServiceInterface interface {
	Suggest(score int) string
	Finishable(score int) bool
}

var _ ServiceInterface = (*Service)(nil)
