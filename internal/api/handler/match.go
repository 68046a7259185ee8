package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/WillowTech1996/DartsCounter/internal/api/middleware"
	"github.com/WillowTech1996/DartsCounter/internal/api/request"
	"github.com/WillowTech1996/DartsCounter/internal/api/response"
	"github.com/WillowTech1996/DartsCounter/internal/model"
	"github.com/WillowTech1996/DartsCounter/internal/services/checkout"
	"github.com/WillowTech1996/DartsCounter/internal/services/match"
	"github.com/WillowTech1996/DartsCounter/internal/services/opponent"
	"github.com/WillowTech1996/DartsCounter/internal/services/scoring"
	"github.com/WillowTech1996/DartsCounter/internal/sse"
)

// MatchHandler handles match-related endpoints
type MatchHandler struct {
	matchController *match.Controller
	opponentService *opponent.Service
	checkoutService *checkout.Service
	hubManager      *sse.HubManager
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(
	matchController *match.Controller,
	opponentService *opponent.Service,
	checkoutService *checkout.Service,
	hubManager *sse.HubManager,
) *MatchHandler {
	return &MatchHandler{
		matchController: matchController,
		opponentService: opponentService,
		checkoutService: checkoutService,
		hubManager:      hubManager,
	}
}

// Start handles POST /api/v1/matches
func (h *MatchHandler) Start(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.StartMatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	m, err := h.matchController.StartMatch(
		r.Context(),
		player.ID,
		model.Mode(req.Mode),
		req.Name1,
		req.Name2,
		req.VsComputer,
		req.ComputerLevel,
	)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.writeMatchState(w, http.StatusCreated, m)
}

// Get handles GET /api/v1/matches/{matchId}
func (h *MatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	matchID := model.MatchID(mux.Vars(r)["matchId"])

	m, err := h.matchController.GetMatch(r.Context(), matchID)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.writeMatchState(w, http.StatusOK, m)
}

// SubmitDart handles POST /api/v1/matches/{matchId}/darts
func (h *MatchHandler) SubmitDart(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitDartRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if !model.IsDartValue(req.Value) {
		WriteError(w, model.ErrInvalidDartValue)
		return
	}

	m, err := h.ownedLiveMatch(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	m, err = h.matchController.SubmitDart(r.Context(), m.ID, req.Value)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.scheduleComputerTurn(m)
	h.writeMatchState(w, http.StatusOK, m)
}

// SubmitVisit handles POST /api/v1/matches/{matchId}/visits
func (h *MatchHandler) SubmitVisit(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitVisitRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if !model.IsVisitTotal(req.Total) {
		WriteError(w, model.ErrInvalidVisitTotal)
		return
	}

	m, err := h.ownedLiveMatch(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	m, err = h.matchController.SubmitVisitTotal(r.Context(), m.ID, req.Total)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.scheduleComputerTurn(m)
	h.writeMatchState(w, http.StatusOK, m)
}

// Undo handles POST /api/v1/matches/{matchId}/undo
func (h *MatchHandler) Undo(w http.ResponseWriter, r *http.Request) {
	m, err := h.ownedMatch(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	m, err = h.matchController.UndoLastDart(r.Context(), m.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.writeMatchState(w, http.StatusOK, m)
}

// EndVisit handles POST /api/v1/matches/{matchId}/end-visit
func (h *MatchHandler) EndVisit(w http.ResponseWriter, r *http.Request) {
	var req request.EndVisitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Allow an empty body for a plain end-of-visit
		req = request.EndVisitRequest{}
	}

	m, err := h.ownedMatch(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	m, err = h.matchController.EndVisit(r.Context(), m.ID, req.Busted)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.scheduleComputerTurn(m)
	h.writeMatchState(w, http.StatusOK, m)
}

// PlayAgain handles POST /api/v1/matches/{matchId}/play-again
func (h *MatchHandler) PlayAgain(w http.ResponseWriter, r *http.Request) {
	m, err := h.ownedMatch(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	m, err = h.matchController.PlayAgain(r.Context(), m.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.writeMatchState(w, http.StatusOK, m)
}

// Reset handles DELETE /api/v1/matches/{matchId}
func (h *MatchHandler) Reset(w http.ResponseWriter, r *http.Request) {
	m, err := h.ownedMatch(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.matchController.ResetMatch(r.Context(), m.ID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// ListSummaries handles GET /api/v1/matches
func (h *MatchHandler) ListSummaries(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	summaries, err := h.matchController.ListSummaries(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := make([]response.MatchSummary, len(summaries))
	for i, s := range summaries {
		resp[i] = response.MatchSummaryFromModel(s)
	}
	response.JSON(w, http.StatusOK, resp)
}

// GetCheckout handles GET /api/v1/checkouts/{score}
func (h *MatchHandler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	score, err := strconv.Atoi(mux.Vars(r)["score"])
	if err != nil {
		WriteError(w, NewInvalidRequestError("score must be a number"))
		return
	}

	response.JSON(w, http.StatusOK, response.CheckoutResponse{
		Score:      score,
		Suggestion: h.checkoutService.Suggest(score),
		Finishable: h.checkoutService.Finishable(score),
	})
}

// Events handles GET /api/v1/matches/{matchId}/events
func (h *MatchHandler) Events(w http.ResponseWriter, r *http.Request) {
	matchID := model.MatchID(mux.Vars(r)["matchId"])

	// The stream only makes sense for a match that exists
	if _, err := h.matchController.GetMatch(r.Context(), matchID); err != nil {
		WriteError(w, err)
		return
	}

	var playerID model.PlayerID
	if player := middleware.GetPlayer(r.Context()); player != nil {
		playerID = player.ID
	}

	hub := h.hubManager.GetOrCreateHub(matchID)
	sse.ServeSSE(w, r, hub, playerID)
}

// ownedMatch loads the match from the path and verifies the requester
// owns it
func (h *MatchHandler) ownedMatch(r *http.Request) (*model.Match, error) {
	player := middleware.MustGetPlayer(r.Context())
	matchID := model.MatchID(mux.Vars(r)["matchId"])

	m, err := h.matchController.GetMatch(r.Context(), matchID)
	if err != nil {
		return nil, err
	}
	if m.OwnerID != player.ID {
		return nil, model.ErrNotMatchOwner
	}
	return m, nil
}

// ownedLiveMatch additionally rejects scoring against a finished leg.
// The engine quietly ignores entries after the win; over HTTP that
// surfaces as a MATCH_OVER conflict instead.
func (h *MatchHandler) ownedLiveMatch(r *http.Request) (*model.Match, error) {
	m, err := h.ownedMatch(r)
	if err != nil {
		return nil, err
	}
	if !m.InProgress() {
		return nil, model.ErrMatchOver
	}
	return m, nil
}

// scheduleComputerTurn hands the match to the opponent service, which
// schedules throws only if the computer is now up
func (h *MatchHandler) scheduleComputerTurn(m *model.Match) {
	if h.opponentService == nil {
		return
	}
	h.opponentService.PlayPendingTurn(m)
}

// writeMatchState responds with the full observable state of a match
func (h *MatchHandler) writeMatchState(w http.ResponseWriter, status int, m *model.Match) {
	stats := make([]scoring.Stats, len(m.Participants))
	for i := range m.Participants {
		stats[i] = h.matchController.Stats(&m.Participants[i])
	}

	suggestion := ""
	if m.InProgress() {
		if current := m.CurrentParticipant(); current != nil {
			suggestion = h.matchController.GetCheckoutSuggestion(current.Score)
		}
	}

	response.JSON(w, status, response.MatchStateFromModel(m, stats, suggestion))
}
