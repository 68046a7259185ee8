package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/WillowTech1996/DartsCounter/internal/model"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

// Test: a full two-player leg from guest login to the summary list
func (s *IntegrationSuite) TestCompleteMatchFlow() {
	// Step 1: A guest account drives the scoreboard
	session, err := s.app.AuthService.CreateGuestPlayer(s.ctx, "Front Room Board")
	s.Require().NoError(err)

	// Step 2: Start a 501 match
	s.app.MockRandom.QueueString("ABC123")
	m, err := s.app.MatchController.StartMatch(s.ctx, session.PlayerID, model.Mode501, "Alice", "Bob", false, 0)
	s.Require().NoError(err)
	s.Equal(model.MatchID("ABC123"), m.ID)
	s.Equal(session.PlayerID, m.OwnerID)

	// Step 3: Alice scores dart by dart, with one correction
	_, _ = s.app.MatchController.SubmitDart(s.ctx, m.ID, 60)
	_, _ = s.app.MatchController.SubmitDart(s.ctx, m.ID, 20)
	_, _ = s.app.MatchController.UndoLastDart(s.ctx, m.ID)
	_, _ = s.app.MatchController.SubmitDart(s.ctx, m.ID, 60)
	_, _ = s.app.MatchController.SubmitDart(s.ctx, m.ID, 60)
	got, err := s.app.MatchController.EndVisit(s.ctx, m.ID, false)
	s.Require().NoError(err)
	s.Equal(321, got.Participants[0].Score)
	s.Equal(model.Visit{60, 60, 60}, got.Participants[0].Visits[0])

	// Step 4: Bob enters his whole visit as one total
	got, err = s.app.MatchController.SubmitVisitTotal(s.ctx, m.ID, 45)
	s.Require().NoError(err)
	s.Equal(456, got.Participants[1].Score)
	s.Equal(0, got.CurrentIndex)

	// Step 5: Walk Alice down to a finish
	_, _ = s.app.MatchController.SubmitVisitTotal(s.ctx, m.ID, 180) // 141
	_, _ = s.app.MatchController.SubmitVisitTotal(s.ctx, m.ID, 0)   // Bob passes
	_, _ = s.app.MatchController.SubmitVisitTotal(s.ctx, m.ID, 101) // 40
	_, _ = s.app.MatchController.SubmitVisitTotal(s.ctx, m.ID, 0)   // Bob passes

	// The board suggests the finish
	s.Equal("D20", s.app.MatchController.GetCheckoutSuggestion(40))

	got, err = s.app.MatchController.SubmitDart(s.ctx, m.ID, 40)
	s.Require().NoError(err)
	s.Equal(model.MatchStatusOver, got.Status)
	s.Require().NotNil(got.Winner)
	s.True(got.Participants[0].HasWon)
	s.Equal(1, got.Participants[0].LegsWon)

	// Step 6: The completed leg shows up in the owner's summaries
	summaries, err := s.app.MatchController.ListSummaries(s.ctx, session.PlayerID)
	s.Require().NoError(err)
	s.Require().Len(summaries, 1)
	s.Equal("Alice", summaries[0].WinnerName)
	s.Equal(model.Mode501, summaries[0].Mode)
}

// Test: the computer plays its scheduled visit end to end
func (s *IntegrationSuite) TestComputerOpponentFlow() {
	session, err := s.app.AuthService.CreateGuestPlayer(s.ctx, "Board")
	s.Require().NoError(err)

	s.app.MockRandom.QueueString("ABC123")
	m, err := s.app.MatchController.StartMatch(s.ctx, session.PlayerID, model.Mode501, "Alice", "", true, 12)
	s.Require().NoError(err)
	s.Equal("Computer", m.Participants[1].Name)
	s.Equal(12, m.Participants[1].Level)

	// Alice passes; the computer is up
	turn, err := s.app.MatchController.EndVisit(s.ctx, m.ID, false)
	s.Require().NoError(err)
	s.Require().True(turn.CurrentParticipant().IsComputer())

	// Aim draws for three 39s: level 12 aims at 40, where the mixed
	// band's treble roll lands T13
	for i := 0; i < 3; i++ {
		s.app.MockRandom.QueueNormFloat64(0)
		s.app.MockRandom.QueueFloat64(0.4)
	}
	s.app.OpponentService.PlayPendingTurn(turn)

	// Nothing lands until the clock moves
	got, _ := s.app.MatchController.GetMatch(s.ctx, m.ID)
	s.Equal(501, got.Participants[1].Score)

	// Throws land at one-second intervals, the visit commits after the
	// hold delay
	s.app.MockClock.Advance(3 * time.Second)
	got, _ = s.app.MatchController.GetMatch(s.ctx, m.ID)
	s.Equal(384, got.Participants[1].Score)
	s.Len(got.ComputerHits, 3)

	s.app.MockClock.Advance(1500 * time.Millisecond)
	got, _ = s.app.MatchController.GetMatch(s.ctx, m.ID)
	s.Equal(model.Visit{39, 39, 39}, got.Participants[1].Visits[0])
	s.Equal(0, got.CurrentIndex)
	s.False(got.CurrentParticipant().IsComputer())
}

// Test: a bust raises the indicator and the clear fires on schedule
func (s *IntegrationSuite) TestBustIndicatorFlow() {
	session, err := s.app.AuthService.CreateGuestPlayer(s.ctx, "Board")
	s.Require().NoError(err)

	s.app.MockRandom.QueueString("ABC123")
	m, err := s.app.MatchController.StartMatch(s.ctx, session.PlayerID, model.Mode301, "", "", false, 0)
	s.Require().NoError(err)

	// 301 - 280 leaves 21; a 20 would leave 1, which cannot be played out
	_, _ = s.app.MatchController.SubmitVisitTotal(s.ctx, m.ID, 180)
	_, _ = s.app.MatchController.SubmitVisitTotal(s.ctx, m.ID, 0)
	_, _ = s.app.MatchController.SubmitVisitTotal(s.ctx, m.ID, 100)
	_, _ = s.app.MatchController.SubmitVisitTotal(s.ctx, m.ID, 0)

	got, err := s.app.MatchController.SubmitVisitTotal(s.ctx, m.ID, 20)
	s.Require().NoError(err)
	s.True(got.BustVisible)
	s.Equal(21, got.Participants[0].Score)
	s.True(got.Participants[0].Visits[2].IsBust())

	s.app.MockClock.Advance(1500 * time.Millisecond)
	got, _ = s.app.MatchController.GetMatch(s.ctx, m.ID)
	s.False(got.BustVisible)
}

// Test: registration survives a login round trip and owns its matches
func (s *IntegrationSuite) TestRegisteredAccountFlow() {
	registered, err := s.app.AuthService.RegisterPlayer(s.ctx, "alice", "secret123", "Alice")
	s.Require().NoError(err)

	login, err := s.app.AuthService.Login(s.ctx, "alice", "secret123")
	s.Require().NoError(err)
	s.Equal(registered.PlayerID, login.PlayerID)

	s.app.MockRandom.QueueString("ABC123")
	m, err := s.app.MatchController.StartMatch(s.ctx, login.PlayerID, model.Mode301, "", "", false, 0)
	s.Require().NoError(err)
	s.Equal(login.PlayerID, m.OwnerID)

	validated, err := s.app.AuthService.ValidateSession(login.Token)
	s.Require().NoError(err)
	s.Equal("Alice", validated.Player.DisplayName)
}

// Test: engine events reach the match's stream hub, and a reset tears
// the hub down
func (s *IntegrationSuite) TestEventsWiredToStream() {
	session, err := s.app.AuthService.CreateGuestPlayer(s.ctx, "Board")
	s.Require().NoError(err)

	s.app.MockRandom.QueueString("ABC123")
	m, err := s.app.MatchController.StartMatch(s.ctx, session.PlayerID, model.Mode501, "", "", false, 0)
	s.Require().NoError(err)

	hub := s.app.HubManager.GetOrCreateHub(m.ID)
	s.Require().NotNil(hub)
	s.NotNil(s.app.HubManager.GetHub(m.ID))

	// A reset deletes the match and its hub with it
	err = s.app.MatchController.ResetMatch(s.ctx, m.ID)
	s.Require().NoError(err)
	s.Nil(s.app.HubManager.GetHub(m.ID))

	_, err = s.app.MatchController.GetMatch(s.ctx, m.ID)
	s.ErrorIs(err, model.ErrMatchNotFound)
}

// Test: play again rolls the same participants into a fresh leg
func (s *IntegrationSuite) TestPlayAgainFlow() {
	session, err := s.app.AuthService.CreateGuestPlayer(s.ctx, "Board")
	s.Require().NoError(err)

	s.app.MockRandom.QueueString("ABC123")
	m, err := s.app.MatchController.StartMatch(s.ctx, session.PlayerID, model.Mode301, "Alice", "Bob", false, 0)
	s.Require().NoError(err)

	// Alice takes the first leg in four visits
	_, _ = s.app.MatchController.SubmitVisitTotal(s.ctx, m.ID, 180)
	_, _ = s.app.MatchController.SubmitVisitTotal(s.ctx, m.ID, 0)
	_, _ = s.app.MatchController.SubmitVisitTotal(s.ctx, m.ID, 81)
	_, _ = s.app.MatchController.SubmitVisitTotal(s.ctx, m.ID, 0)
	got, err := s.app.MatchController.SubmitDart(s.ctx, m.ID, 40)
	s.Require().NoError(err)
	s.Equal(model.MatchStatusOver, got.Status)

	got, err = s.app.MatchController.PlayAgain(s.ctx, m.ID)
	s.Require().NoError(err)
	s.Equal(model.MatchStatusInProgress, got.Status)
	s.Equal(301, got.Participants[0].Score)
	s.Equal(301, got.Participants[1].Score)
	s.Equal(1, got.Participants[0].LegsWon)
	s.Nil(got.Winner)

	// The first leg's summary is already on the books
	summaries, err := s.app.MatchController.ListSummaries(s.ctx, session.PlayerID)
	s.Require().NoError(err)
	s.Len(summaries, 1)
}
