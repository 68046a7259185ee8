package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/WillowTech1996/DartsCounter/internal/dependencies/mocks"
	"github.com/WillowTech1996/DartsCounter/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, DefaultConfig())
	s.ctx = context.Background()
}

// CreateGuestPlayer tests

func (s *ServiceSuite) TestCreateGuestPlayerSucceeds() {
	session, err := s.service.CreateGuestPlayer(s.ctx, "Alice")
	s.Require().NoError(err)

	s.NotEmpty(session.Token)
	s.NotEmpty(session.PlayerID)
	s.Equal("Alice", session.Player.DisplayName)
	s.True(session.Player.IsGuest)
}

func (s *ServiceSuite) TestCreateGuestPlayerPersistsPlayer() {
	session, _ := s.service.CreateGuestPlayer(s.ctx, "Alice")

	player, err := s.storage.GetPlayer(s.ctx, session.PlayerID)
	s.Require().NoError(err)
	s.Equal("Alice", player.DisplayName)
	s.True(player.IsGuest)
}

func (s *ServiceSuite) TestGuestSessionIsValid() {
	session, _ := s.service.CreateGuestPlayer(s.ctx, "Alice")

	validated, err := s.service.ValidateSession(session.Token)
	s.Require().NoError(err)
	s.Equal(session.PlayerID, validated.PlayerID)
}

func (s *ServiceSuite) TestGuestTokensAreUnique() {
	first, _ := s.service.CreateGuestPlayer(s.ctx, "Alice")
	second, _ := s.service.CreateGuestPlayer(s.ctx, "Bob")

	s.NotEqual(first.Token, second.Token)
	s.NotEqual(first.PlayerID, second.PlayerID)
}

// RegisterPlayer tests

func (s *ServiceSuite) TestRegisterPlayerSucceeds() {
	session, err := s.service.RegisterPlayer(s.ctx, "alice", "password123", "Alice")
	s.Require().NoError(err)

	s.NotEmpty(session.Token)
	s.Equal("Alice", session.Player.DisplayName)
	s.False(session.Player.IsGuest)
}

func (s *ServiceSuite) TestRegisterPlayerHashesThePassword() {
	_, _ = s.service.RegisterPlayer(s.ctx, "alice", "password123", "Alice")

	registration, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("alice", registration.Username)
	s.NotEmpty(registration.PasswordHash)
	s.NotEqual("password123", registration.PasswordHash)
}

func (s *ServiceSuite) TestRegisterPlayerRejectsTakenUsername() {
	_, _ = s.service.RegisterPlayer(s.ctx, "alice", "password123", "Alice")

	_, err := s.service.RegisterPlayer(s.ctx, "alice", "different", "Other Alice")
	s.ErrorIs(err, ErrUsernameExists)
}

// Login tests

func (s *ServiceSuite) TestLoginSucceeds() {
	_, _ = s.service.RegisterPlayer(s.ctx, "alice", "password123", "Alice")

	session, err := s.service.Login(s.ctx, "alice", "password123")
	s.Require().NoError(err)

	s.NotEmpty(session.Token)
	s.Equal("Alice", session.Player.DisplayName)
}

func (s *ServiceSuite) TestLoginRejectsWrongPassword() {
	_, _ = s.service.RegisterPlayer(s.ctx, "alice", "password123", "Alice")

	_, err := s.service.Login(s.ctx, "alice", "wrong")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginRejectsUnknownUsername() {
	_, err := s.service.Login(s.ctx, "nobody", "password123")
	s.ErrorIs(err, ErrInvalidCredentials)
}

// Session lifecycle tests

func (s *ServiceSuite) TestValidateSessionRejectsUnknownToken() {
	_, err := s.service.ValidateSession("not_a_token")
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestValidateSessionRejectsExpiredToken() {
	session, _ := s.service.CreateGuestPlayer(s.ctx, "Alice")

	s.clock.Advance(25 * time.Hour)

	_, err := s.service.ValidateSession(session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestSessionSurvivesUntilItsDeadline() {
	session, _ := s.service.CreateGuestPlayer(s.ctx, "Alice")

	s.clock.Advance(23 * time.Hour)

	_, err := s.service.ValidateSession(session.Token)
	s.NoError(err)
}

func (s *ServiceSuite) TestLogoutDropsSession() {
	session, _ := s.service.CreateGuestPlayer(s.ctx, "Alice")

	s.service.Logout(session.Token)

	_, err := s.service.ValidateSession(session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestLogoutUnknownTokenIsNoOp() {
	s.service.Logout("not_a_token")
}

// GetPlayer tests

func (s *ServiceSuite) TestGetPlayerSucceeds() {
	session, _ := s.service.CreateGuestPlayer(s.ctx, "Alice")

	player, err := s.service.GetPlayer(session.Token)
	s.Require().NoError(err)
	s.Equal("Alice", player.DisplayName)
}

func (s *ServiceSuite) TestGetPlayerRejectsInvalidToken() {
	_, err := s.service.GetPlayer("not_a_token")
	s.ErrorIs(err, ErrInvalidSession)
}

// PruneExpiredSessions tests

func (s *ServiceSuite) TestPruneExpiredSessionsKeepsLiveOnes() {
	expired, _ := s.service.CreateGuestPlayer(s.ctx, "Alice")

	s.clock.Advance(25 * time.Hour)
	live, _ := s.service.CreateGuestPlayer(s.ctx, "Bob")

	s.service.PruneExpiredSessions()

	_, err := s.service.ValidateSession(expired.Token)
	s.ErrorIs(err, ErrInvalidSession)

	_, err = s.service.ValidateSession(live.Token)
	s.NoError(err)
}
