package sse

import (
	"strings"
	"testing"
	"time"

	"github.com/WillowTech1996/DartsCounter/internal/model"
	"github.com/WillowTech1996/DartsCounter/internal/testutil"
)

func TestNotifyDeliversEventToWatchers(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())

	hub := manager.GetOrCreateHub("ABC123")
	client := NewClient(hub, "p_1")
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	broadcaster.Notify(model.Event{
		Type:          model.EventDartThrown,
		MatchID:       "ABC123",
		ParticipantID: "p1",
		Payload: model.DartThrownPayload{
			Value:        60,
			Score:        441,
			DartsThrown:  1,
			PendingDarts: 1,
		},
	})

	select {
	case msg := <-client.send:
		got := string(msg)
		if !strings.Contains(got, "event: dart_thrown") {
			t.Errorf("message missing event name: %s", got)
		}
		if !strings.Contains(got, `"Value":60`) {
			t.Errorf("message missing dart value: %s", got)
		}
		if !strings.Contains(got, `"Score":441`) {
			t.Errorf("message missing remaining score: %s", got)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("client did not receive event")
	}

	manager.RemoveHub("ABC123")
}

func TestNotifyWithoutWatchersDrops(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())

	// No hub exists for this match; nothing should panic
	broadcaster.Notify(model.Event{
		Type:    model.EventTurnAdvanced,
		MatchID: "NOSUCH1",
		Payload: model.TurnAdvancedPayload{CurrentIndex: 1, Name: "Bob"},
	})
}

func TestNotifyResetRemovesHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())

	manager.GetOrCreateHub("ABC123")

	broadcaster.Notify(model.Event{
		Type:    model.EventMatchReset,
		MatchID: "ABC123",
	})

	if manager.GetHub("ABC123") != nil {
		t.Error("hub still exists after match reset")
	}
}

func TestNotifyResetWithoutHubIsNoOp(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())

	broadcaster.Notify(model.Event{
		Type:    model.EventMatchReset,
		MatchID: "NOSUCH1",
	})
}
