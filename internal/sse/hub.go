package sse

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/WillowTech1996/DartsCounter/internal/model"
)

// Hub fans messages out to every client watching a single match
type Hub struct {
	matchID model.MatchID
	clients map[*Client]bool
	mu      sync.RWMutex
	logger  *slog.Logger

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
}

// NewHub creates a hub for one match
func NewHub(matchID model.MatchID, logger *slog.Logger) *Hub {
	return &Hub{
		matchID:    matchID,
		clients:    make(map[*Client]bool),
		logger:     logger.With(slog.String("match_id", string(matchID))),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
	}
}

// Run drives the hub's event loop until Close
func (h *Hub) Run() {
	h.logger.Info("sse hub started")
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("sse client connected",
				slog.String("player_id", string(client.playerID)),
				slog.Int("watching", count))

		case client := <-h.unregister:
			h.mu.Lock()
			_, ok := h.clients[client]
			if ok {
				delete(h.clients, client)
				close(client.send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			if ok {
				h.logger.Info("sse client disconnected",
					slog.String("player_id", string(client.playerID)),
					slog.Duration("connected_for", time.Since(client.connectedAt)),
					slog.Int("watching", count))
			}

		case message := <-h.broadcast:
			h.mu.RLock()
			dropped := 0
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					dropped++
				}
			}
			h.mu.RUnlock()
			if dropped > 0 {
				h.logger.Warn("sse message dropped for slow clients",
					slog.Int("dropped", dropped))
			}

		case <-h.done:
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			h.logger.Info("sse hub stopped")
			return
		}
	}
}

// Register adds a client to the hub. A client arriving at an already
// closed hub is turned away immediately.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		close(client.send)
	}
}

// Unregister removes a client from the hub. Safe to call after the
// hub has closed.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast queues a raw message for every client. It never blocks; if
// the hub cannot keep up the message is dropped.
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn("sse broadcast dropped, hub buffer full")
	}
}

// BroadcastEvent queues a named SSE event with the given data
func (h *Hub) BroadcastEvent(eventName, data string) {
	h.Broadcast(formatEvent(eventName, data))
}

// Close shuts the hub down and disconnects every client
func (h *Hub) Close() {
	close(h.done)
}

// ClientCount returns how many clients are watching
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// formatEvent renders a wire-format SSE event. Every line of the data
// gets its own "data: " prefix as the protocol requires.
func formatEvent(eventName, data string) []byte {
	var b strings.Builder
	b.WriteString("event: ")
	b.WriteString(eventName)
	b.WriteByte('\n')
	for _, line := range splitLines(data) {
		b.WriteString("data: ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	return []byte(b.String())
}

// splitLines splits on newlines, tolerating CRLF input. A trailing
// newline does not produce an extra empty line; empty input is a
// single empty line.
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "")
	lines := strings.Split(s, "\n")
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// HubManager keeps one hub per watched match
type HubManager struct {
	hubs   map[model.MatchID]*Hub
	mu     sync.RWMutex
	logger *slog.Logger
}

func NewHubManager(logger *slog.Logger) *HubManager {
	return &HubManager{
		hubs:   make(map[model.MatchID]*Hub),
		logger: logger.With(slog.String("component", "sse")),
	}
}

// GetOrCreateHub returns the hub for a match, starting one if needed
func (m *HubManager) GetOrCreateHub(matchID model.MatchID) *Hub {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[matchID]; ok {
		return hub
	}

	hub := NewHub(matchID, m.logger)
	m.hubs[matchID] = hub
	go hub.Run()
	return hub
}

// GetHub returns the hub for a match, or nil when nobody is watching
func (m *HubManager) GetHub(matchID model.MatchID) *Hub {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hubs[matchID]
}

// RemoveHub closes and forgets a match's hub
func (m *HubManager) RemoveHub(matchID model.MatchID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[matchID]; ok {
		hub.Close()
		delete(m.hubs, matchID)
		m.logger.Info("sse hub removed", slog.String("match_id", string(matchID)))
	}
}

// CleanupEmptyHubs drops hubs nobody is watching anymore. The server
// runs this periodically.
func (m *HubManager) CleanupEmptyHubs() {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for matchID, hub := range m.hubs {
		if hub.ClientCount() == 0 {
			hub.Close()
			delete(m.hubs, matchID)
			removed++
		}
	}
	if removed > 0 {
		m.logger.Info("sse idle hubs cleaned up", slog.Int("removed", removed))
	}
}
