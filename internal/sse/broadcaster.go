package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/WillowTech1996/DartsCounter/internal/model"
	"github.com/WillowTech1996/DartsCounter/internal/services/match"
)

// Broadcaster fans match engine events out to the clients watching
// each match. It is the engine's notifier: Notify never blocks, and
// slow watchers lose messages rather than stall scoring.
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// Notify publishes one engine event to the match's hub as an SSE event
// named by the event type, carrying the event as JSON. A match nobody
// is watching has no hub and the event just drops.
func (b *Broadcaster) Notify(event model.Event) {
	if hub := b.hubManager.GetHub(event.MatchID); hub != nil {
		data, err := json.Marshal(event)
		if err != nil {
			b.logger.Error("failed to encode event",
				slog.String("match_id", string(event.MatchID)),
				slog.String("event_type", string(event.Type)),
				slog.String("error", err.Error()))
		} else {
			hub.BroadcastEvent(string(event.Type), string(data))
		}
	}

	// A reset deletes the match; its hub goes with it
	if event.Type == model.EventMatchReset {
		b.hubManager.RemoveHub(event.MatchID)
	}
}

var _ match.Notifier = (*Broadcaster)(nil)
