package match

import (
	"github.com/WillowTech1996/DartsCounter/internal/model"
)

// Notifier receives match events as they are committed. Implementations
// must not block: the controller calls Notify on the request path and
// from timer callbacks.
type Notifier interface {
	Notify(event model.Event)
}

// NopNotifier drops all events. Useful for tests and for running the
// engine without a live event stream.
type NopNotifier struct{}

// Notify discards the event
func (NopNotifier) Notify(model.Event) {}

var _ Notifier = (*NopNotifier)(nil)
