package memory

import (
	"context"
	"sync"

	"github.com/WillowTech1996/DartsCounter/internal/model"
	"github.com/WillowTech1996/DartsCounter/internal/storage"
)

// Storage keeps everything in maps behind a single RWMutex. It is the
// default backend and the one the test suites run against.
type Storage struct {
	mu sync.RWMutex

	players           map[model.PlayerID]*model.Player
	registeredPlayers map[model.PlayerID]*model.RegisteredPlayer
	usernameIndex     map[string]model.PlayerID
	matches           map[model.MatchID]*model.Match
	summaries         map[model.PlayerID][]model.MatchSummary
}

var _ storage.Storage = (*Storage)(nil)

// New creates an empty in-memory store.
func New() *Storage {
	return &Storage{
		players:           make(map[model.PlayerID]*model.Player),
		registeredPlayers: make(map[model.PlayerID]*model.RegisteredPlayer),
		usernameIndex:     make(map[string]model.PlayerID),
		matches:           make(map[model.MatchID]*model.Match),
		summaries:         make(map[model.PlayerID][]model.MatchSummary),
	}
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.ID] = player
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return p, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, id)
	return nil
}

// Registered player operations

func (s *Storage) SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registeredPlayers[rp.PlayerID] = rp
	s.usernameIndex[rp.Username] = rp.PlayerID
	return nil
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registeredLocked(playerID)
}

func (s *Storage) GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	playerID, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return s.registeredLocked(playerID)
}

// registeredLocked looks up credentials by ID. Callers hold at least a
// read lock.
func (s *Storage) registeredLocked(playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	rp, ok := s.registeredPlayers[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return rp, nil
}

// Match operations

func (s *Storage) SaveMatch(ctx context.Context, match *model.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches[match.ID] = match
	return nil
}

func (s *Storage) GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.matches[id]
	if !ok {
		return nil, model.ErrMatchNotFound
	}
	return m, nil
}

func (s *Storage) DeleteMatch(ctx context.Context, id model.MatchID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.matches, id)
	return nil
}

func (s *Storage) MatchExists(ctx context.Context, id model.MatchID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.matches[id]
	return ok, nil
}

// Match summary operations

func (s *Storage) SaveMatchSummary(ctx context.Context, summary *model.MatchSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Newest first, matching the Redis backend's LPUSH ordering.
	s.summaries[summary.OwnerID] = append([]model.MatchSummary{*summary}, s.summaries[summary.OwnerID]...)
	return nil
}

func (s *Storage) ListMatchSummaries(ctx context.Context, ownerID model.PlayerID) ([]model.MatchSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.MatchSummary, len(s.summaries[ownerID]))
	copy(out, s.summaries[ownerID])
	return out, nil
}
