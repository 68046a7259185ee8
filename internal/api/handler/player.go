package handler

import (
	"net/http"

	"github.com/WillowTech1996/DartsCounter/internal/api/middleware"
	"github.com/WillowTech1996/DartsCounter/internal/api/request"
	"github.com/WillowTech1996/DartsCounter/internal/api/response"
	"github.com/WillowTech1996/DartsCounter/internal/services/auth"
)

// PlayerHandler handles account endpoints: guest creation, registration,
// login and session introspection.
type PlayerHandler struct {
	authService *auth.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(authService *auth.Service) *PlayerHandler {
	return &PlayerHandler{authService: authService}
}

// CreateGuest handles POST /api/v1/players/guest
func (h *PlayerHandler) CreateGuest(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGuestRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.DisplayName == "" {
		WriteError(w, NewInvalidRequestError("display_name is required"))
		return
	}

	session, err := h.authService.CreateGuestPlayer(r.Context(), req.DisplayName)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.AuthResponseFromSession(session))
}

// Register handles POST /api/v1/players/register
func (h *PlayerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	switch {
	case req.Username == "":
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	case req.Password == "":
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	case req.DisplayName == "":
		WriteError(w, NewInvalidRequestError("display_name is required"))
		return
	}

	session, err := h.authService.RegisterPlayer(r.Context(), req.Username, req.Password, req.DisplayName)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.AuthResponseFromSession(session))
}

// Login handles POST /api/v1/players/login
func (h *PlayerHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	switch {
	case req.Username == "":
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	case req.Password == "":
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	session, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.AuthResponseFromSession(session))
}

// GetMe handles GET /api/v1/players/me
func (h *PlayerHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// Logout handles POST /api/v1/players/logout
//
// Logging out an already-dead session still answers 204. The token is
// gone either way.
func (h *PlayerHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if session := middleware.GetSession(r.Context()); session != nil {
		h.authService.Logout(session.Token)
	}
	response.NoContent(w)
}
