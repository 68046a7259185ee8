package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/WillowTech1996/DartsCounter/internal/dependencies/clock"
	"github.com/WillowTech1996/DartsCounter/internal/model"
	"github.com/WillowTech1996/DartsCounter/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrUsernameExists     = errors.New("username already exists")
)

// Session is an authenticated player's ticket. Sessions live in
// process memory only; a restart logs everyone out, which is fine for
// a scoreboard that runs on one machine.
type Session struct {
	Token     string
	PlayerID  model.PlayerID
	Player    model.Player
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Config holds configuration for the auth service
type Config struct {
	SessionDuration time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
	}
}

// Service manages player accounts and their sessions. Guests get a
// throwaway account; registered players keep their stats history
// across devices.
type Service struct {
	storage storage.Storage
	clock   clock.Clock

	mu       sync.RWMutex
	sessions map[string]Session

	sessionDuration time.Duration
}

func New(storage storage.Storage, clock clock.Clock, cfg Config) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Service{
		storage:         storage,
		clock:           clock,
		sessions:        make(map[string]Session),
		sessionDuration: cfg.SessionDuration,
	}
}

// CreateGuestPlayer makes an anonymous account and logs it in. Guest
// accounts expire with their storage TTL where the backend supports
// one.
func (s *Service) CreateGuestPlayer(ctx context.Context, displayName string) (*Session, error) {
	player := &model.Player{
		ID:          newPlayerID(),
		DisplayName: displayName,
		IsGuest:     true,
		CreatedAt:   s.clock.Now(),
	}

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}

	return s.issueSession(player), nil
}

// RegisterPlayer creates a named account with a password and logs it
// in.
func (s *Service) RegisterPlayer(ctx context.Context, username, password, displayName string) (*Session, error) {
	_, err := s.storage.GetRegisteredPlayerByUsername(ctx, username)
	if err == nil {
		return nil, ErrUsernameExists
	}
	if !errors.Is(err, model.ErrPlayerNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	player := &model.Player{
		ID:          newPlayerID(),
		DisplayName: displayName,
		IsGuest:     false,
		CreatedAt:   now,
	}

	registration := &model.RegisteredPlayer{
		PlayerID:     player.ID,
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}
	if err := s.storage.SaveRegisteredPlayer(ctx, registration); err != nil {
		return nil, err
	}

	return s.issueSession(player), nil
}

// Login authenticates a registered player. Unknown usernames and bad
// passwords both come back as ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	registration, err := s.storage.GetRegisteredPlayerByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(registration.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	player, err := s.storage.GetPlayer(ctx, registration.PlayerID)
	if err != nil {
		return nil, err
	}

	return s.issueSession(player), nil
}

// ValidateSession resolves a token to its session, expiring it lazily
// when its deadline has passed
func (s *Service) ValidateSession(token string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidSession
	}

	if s.clock.Now().After(session.ExpiresAt) {
		s.Logout(token)
		return nil, ErrInvalidSession
	}

	return &session, nil
}

// Logout drops a session. Unknown tokens are a no-op.
func (s *Service) Logout(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// GetPlayer returns the player behind a session token
func (s *Service) GetPlayer(token string) (*model.Player, error) {
	session, err := s.ValidateSession(token)
	if err != nil {
		return nil, err
	}
	return &session.Player, nil
}

// PruneExpiredSessions drops every session past its deadline. The
// server runs this periodically so abandoned guests do not pile up.
func (s *Service) PruneExpiredSessions() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
}

func (s *Service) issueSession(player *model.Player) *Session {
	now := s.clock.Now()
	session := Session{
		Token:     newSessionToken(),
		PlayerID:  player.ID,
		Player:    *player,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	s.mu.Lock()
	s.sessions[session.Token] = session
	s.mu.Unlock()

	return &session
}

func newPlayerID() model.PlayerID {
	return model.PlayerID("p_" + randomToken(12))
}

func newSessionToken() string {
	return "sess_" + randomToken(24)
}

// randomToken returns n URL-safe characters from crypto/rand
func randomToken(n int) string {
	b := make([]byte, n)
	// rand.Read only fails if the OS entropy source is broken
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)[:n]
}
