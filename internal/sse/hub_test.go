package sse

import (
	"testing"
	"time"

	"github.com/WillowTech1996/DartsCounter/internal/testutil"
)

func TestFormatEvent(t *testing.T) {
	tests := []struct {
		name      string
		eventName string
		data      string
		expected  string
	}{
		{
			name:      "single line data",
			eventName: "dart_thrown",
			data:      `{"Value":60}`,
			expected:  "event: dart_thrown\ndata: {\"Value\":60}\n\n",
		},
		{
			name:      "multi-line data",
			eventName: "match_won",
			data:      "line1\nline2",
			expected:  "event: match_won\ndata: line1\ndata: line2\n\n",
		},
		{
			name:      "empty data",
			eventName: "ping",
			data:      "",
			expected:  "event: ping\ndata: \n\n",
		},
		{
			name:      "carriage returns stripped",
			eventName: "test",
			data:      "line1\r\nline2",
			expected:  "event: test\ndata: line1\ndata: line2\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatEvent(tt.eventName, tt.data)
			if string(result) != tt.expected {
				t.Errorf("formatEvent(%q, %q)\ngot:  %q\nwant: %q",
					tt.eventName, tt.data, string(result), tt.expected)
			}
		})
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "single line", input: "hello", expected: []string{"hello"}},
		{name: "two lines", input: "line1\nline2", expected: []string{"line1", "line2"}},
		{name: "trailing newline", input: "line1\n", expected: []string{"line1"}},
		{name: "empty string", input: "", expected: []string{""}},
		{name: "crlf endings", input: "line1\r\nline2\r\n", expected: []string{"line1", "line2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := splitLines(tt.input)
			if len(result) != len(tt.expected) {
				t.Fatalf("splitLines(%q) returned %d lines, want %d",
					tt.input, len(result), len(tt.expected))
			}
			for i, line := range result {
				if line != tt.expected[i] {
					t.Errorf("splitLines(%q)[%d] = %q, want %q",
						tt.input, i, line, tt.expected[i])
				}
			}
		})
	}
}

func TestHubRegisterAndBroadcast(t *testing.T) {
	hub := NewHub("ABC123", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient(hub, "p_1")
	hub.Register(client)

	// Give the hub time to process the registration
	time.Sleep(10 * time.Millisecond)

	if hub.ClientCount() != 1 {
		t.Errorf("ClientCount() = %d, want 1", hub.ClientCount())
	}

	hub.BroadcastEvent("dart_thrown", "test data")

	select {
	case msg := <-client.send:
		expected := "event: dart_thrown\ndata: test data\n\n"
		if string(msg) != expected {
			t.Errorf("client received %q, want %q", string(msg), expected)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("client did not receive message")
	}
}

func TestHubUnregister(t *testing.T) {
	hub := NewHub("ABC123", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient(hub, "p_1")
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	hub.Unregister(client)
	time.Sleep(10 * time.Millisecond)

	if hub.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d after unregister, want 0", hub.ClientCount())
	}
}

func TestHubBroadcastReachesEveryClient(t *testing.T) {
	hub := NewHub("ABC123", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	clients := []*Client{
		NewClient(hub, "p_1"),
		NewClient(hub, "p_2"),
		NewClient(hub, "p_3"),
	}
	for _, client := range clients {
		hub.Register(client)
	}
	time.Sleep(10 * time.Millisecond)

	if hub.ClientCount() != 3 {
		t.Errorf("ClientCount() = %d, want 3", hub.ClientCount())
	}

	hub.BroadcastEvent("turn_advanced", "data")

	for i, client := range clients {
		select {
		case msg := <-client.send:
			expected := "event: turn_advanced\ndata: data\n\n"
			if string(msg) != expected {
				t.Errorf("client %d received %q, want %q", i+1, string(msg), expected)
			}
		case <-time.After(100 * time.Millisecond):
			t.Errorf("client %d did not receive message", i+1)
		}
	}
}

func TestHubRegisterAfterCloseTurnsClientAway(t *testing.T) {
	hub := NewHub("ABC123", testutil.NopLogger())
	go hub.Run()
	hub.Close()
	time.Sleep(10 * time.Millisecond)

	client := NewClient(hub, "p_1")
	hub.Register(client)

	// The client's channel must be closed so its serve loop exits
	select {
	case _, ok := <-client.send:
		if ok {
			t.Error("expected closed send channel")
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("send channel was not closed")
	}

	// Unregister after close must not block
	hub.Unregister(client)
}

func TestHubManagerGetOrCreateHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())

	hub1 := manager.GetOrCreateHub("ABC123")
	if hub1 == nil {
		t.Fatal("GetOrCreateHub returned nil")
	}

	hub2 := manager.GetOrCreateHub("ABC123")
	if hub1 != hub2 {
		t.Error("GetOrCreateHub returned a different hub for the same match")
	}

	hub3 := manager.GetOrCreateHub("XYZ789")
	if hub3 == hub1 {
		t.Error("GetOrCreateHub returned the same hub for different matches")
	}

	manager.RemoveHub("ABC123")
	manager.RemoveHub("XYZ789")
}

func TestHubManagerGetHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())

	if manager.GetHub("NOSUCH1") != nil {
		t.Error("GetHub returned non-nil for an unknown match")
	}

	created := manager.GetOrCreateHub("ABC123")
	if got := manager.GetHub("ABC123"); got != created {
		t.Error("GetHub returned a different hub than GetOrCreateHub")
	}

	manager.RemoveHub("ABC123")
}

func TestHubManagerRemoveHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())

	manager.GetOrCreateHub("ABC123")
	manager.RemoveHub("ABC123")

	if manager.GetHub("ABC123") != nil {
		t.Error("hub still exists after RemoveHub")
	}

	// Removing an unknown hub must not panic
	manager.RemoveHub("NOSUCH1")
}

func TestHubManagerCleanupEmptyHubs(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())

	manager.GetOrCreateHub("IDLE01")

	active := manager.GetOrCreateHub("LIVE01")
	client := NewClient(active, "p_1")
	active.Register(client)
	time.Sleep(10 * time.Millisecond)

	manager.CleanupEmptyHubs()

	if manager.GetHub("IDLE01") != nil {
		t.Error("idle hub still exists after cleanup")
	}
	if manager.GetHub("LIVE01") == nil {
		t.Error("watched hub was removed during cleanup")
	}

	manager.RemoveHub("LIVE01")
}
