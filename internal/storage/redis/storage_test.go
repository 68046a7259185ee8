package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/WillowTech1996/DartsCounter/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.GuestPlayerTTL = time.Hour
	cfg.MatchTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{
		ID:          "p_nina",
		DisplayName: "Nina",
		IsGuest:     false,
		CreatedAt:   time.Now(),
	}
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	got, err := s.storage.GetPlayer(s.ctx, "p_nina")
	s.Require().NoError(err)
	s.Equal(player.ID, got.ID)
	s.Equal("Nina", got.DisplayName)
	s.False(got.IsGuest)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "p_missing")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestDeletePlayer() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "p_nina", DisplayName: "Nina"})

	s.Require().NoError(s.storage.DeletePlayer(s.ctx, "p_nina"))

	_, err := s.storage.GetPlayer(s.ctx, "p_nina")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestOnlyGuestPlayersExpire() {
	guest := &model.Player{ID: "p_guest", IsGuest: true}
	account := &model.Player{ID: "p_account", IsGuest: false}

	_ = s.storage.SavePlayer(s.ctx, guest)
	_ = s.storage.SavePlayer(s.ctx, account)

	s.True(s.mini.TTL(playerKey(guest.ID)) > 0, "guest should carry a TTL")
	s.Zero(s.mini.TTL(playerKey(account.ID)), "registered account should not expire")
}

// Registered player tests

func (s *StorageSuite) fixtureRegistration() *model.RegisteredPlayer {
	return &model.RegisteredPlayer{
		PlayerID:     "p_nina",
		Username:     "nina",
		PasswordHash: "$2a$10$notarealhash",
		CreatedAt:    time.Now(),
	}
}

func (s *StorageSuite) TestSaveAndGetRegisteredPlayer() {
	rp := s.fixtureRegistration()
	s.Require().NoError(s.storage.SaveRegisteredPlayer(s.ctx, rp))

	got, err := s.storage.GetRegisteredPlayer(s.ctx, "p_nina")
	s.Require().NoError(err)
	s.Equal("nina", got.Username)
	s.Equal(rp.PasswordHash, got.PasswordHash)
}

func (s *StorageSuite) TestGetRegisteredPlayerByUsername() {
	_ = s.storage.SaveRegisteredPlayer(s.ctx, s.fixtureRegistration())

	got, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "nina")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("p_nina"), got.PlayerID)
}

func (s *StorageSuite) TestGetRegisteredPlayerByUsernameNotFound() {
	_, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "ghost")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Match tests

func (s *StorageSuite) TestSaveAndGetMatch() {
	match := &model.Match{
		ID:      "ABC123",
		OwnerID: "player-1",
		Mode:    model.Mode501,
		Status:  model.MatchStatusInProgress,
		Participants: []model.Participant{
			{ID: "p1", Name: "Alice", Kind: model.KindHuman, Score: 501},
			{ID: "p2", Name: "Dartbot", Kind: model.KindComputer, Level: 6, Score: 501},
		},
		PendingVisit: model.Visit{20, 5},
		CreatedAt:    time.Now(),
	}

	err := s.storage.SaveMatch(s.ctx, match)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetMatch(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Equal(match.ID, retrieved.ID)
	s.Equal(match.Mode, retrieved.Mode)
	s.Len(retrieved.Participants, 2)
	s.Equal(model.Visit{20, 5}, retrieved.PendingVisit)
}

func (s *StorageSuite) TestGetMatchNotFound() {
	_, err := s.storage.GetMatch(s.ctx, "NONEXISTENT")
	s.ErrorIs(err, model.ErrMatchNotFound)
}

func (s *StorageSuite) TestMatchExists() {
	match := &model.Match{ID: "ABC123", Mode: model.Mode301}
	_ = s.storage.SaveMatch(s.ctx, match)

	exists, err := s.storage.MatchExists(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.storage.MatchExists(s.ctx, "NONEXISTENT")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *StorageSuite) TestDeleteMatch() {
	match := &model.Match{ID: "ABC123", Mode: model.Mode301}
	_ = s.storage.SaveMatch(s.ctx, match)

	err := s.storage.DeleteMatch(s.ctx, "ABC123")
	s.Require().NoError(err)

	_, err = s.storage.GetMatch(s.ctx, "ABC123")
	s.ErrorIs(err, model.ErrMatchNotFound)
}

func (s *StorageSuite) TestMatchTTL() {
	match := &model.Match{ID: "ABC123", Mode: model.Mode301}
	_ = s.storage.SaveMatch(s.ctx, match)

	ttl := s.mini.TTL(matchKey(match.ID))
	s.True(ttl > 0, "Match should have TTL")
}

// Match summary tests

func (s *StorageSuite) TestSaveAndListMatchSummaries() {
	first := &model.MatchSummary{
		MatchID:     "ABC123",
		OwnerID:     "player-1",
		Mode:        model.Mode301,
		WinnerName:  "Alice",
		Average:     45.5,
		CompletedAt: time.Now(),
	}
	second := &model.MatchSummary{
		MatchID:     "DEF456",
		OwnerID:     "player-1",
		Mode:        model.Mode501,
		WinnerName:  "Dartbot",
		Average:     60.0,
		CompletedAt: time.Now(),
	}

	_ = s.storage.SaveMatchSummary(s.ctx, first)
	_ = s.storage.SaveMatchSummary(s.ctx, second)

	summaries, err := s.storage.ListMatchSummaries(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Require().Len(summaries, 2)

	// Newest first
	s.Equal(model.MatchID("DEF456"), summaries[0].MatchID)
	s.Equal(model.MatchID("ABC123"), summaries[1].MatchID)
}

func (s *StorageSuite) TestListMatchSummariesEmpty() {
	summaries, err := s.storage.ListMatchSummaries(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Empty(summaries)
}

func (s *StorageSuite) TestListMatchSummariesScopedToOwner() {
	mine := &model.MatchSummary{MatchID: "ABC123", OwnerID: "player-1", WinnerName: "Alice"}
	theirs := &model.MatchSummary{MatchID: "DEF456", OwnerID: "player-2", WinnerName: "Bob"}

	_ = s.storage.SaveMatchSummary(s.ctx, mine)
	_ = s.storage.SaveMatchSummary(s.ctx, theirs)

	summaries, err := s.storage.ListMatchSummaries(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Require().Len(summaries, 1)
	s.Equal(model.MatchID("ABC123"), summaries[0].MatchID)
}
