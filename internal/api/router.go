package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/WillowTech1996/DartsCounter/internal/api/handler"
	"github.com/WillowTech1996/DartsCounter/internal/api/middleware"
	"github.com/WillowTech1996/DartsCounter/internal/services/auth"
	"github.com/WillowTech1996/DartsCounter/internal/services/checkout"
	"github.com/WillowTech1996/DartsCounter/internal/services/match"
	"github.com/WillowTech1996/DartsCounter/internal/services/opponent"
	"github.com/WillowTech1996/DartsCounter/internal/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	AuthService     *auth.Service
	MatchController *match.Controller
	OpponentService *opponent.Service
	CheckoutService *checkout.Service
	HubManager      *sse.HubManager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.AuthService)
	matchHandler := handler.NewMatchHandler(cfg.MatchController, cfg.OpponentService, cfg.CheckoutService, cfg.HubManager)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	optionalAuthMiddleware := middleware.OptionalAuth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Player routes (no auth required for creating players/logging in)
	api.HandleFunc("/players/guest", playerHandler.CreateGuest).Methods(http.MethodPost)
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", playerHandler.Login).Methods(http.MethodPost)

	// Protected player routes
	playerProtected := api.PathPrefix("/players").Subrouter()
	playerProtected.Use(authMiddleware)
	playerProtected.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)
	playerProtected.HandleFunc("/logout", playerHandler.Logout).Methods(http.MethodPost)

	// Event stream. Knowing the match ID is the capability; a session,
	// if one is sent, only tags the connection. Registered ahead of the
	// protected match subrouter so its prefix matcher cannot swallow
	// this path.
	api.Handle("/matches/{matchId}/events",
		optionalAuthMiddleware(http.HandlerFunc(matchHandler.Events))).Methods(http.MethodGet)

	// Match routes (all require auth)
	matches := api.PathPrefix("/matches").Subrouter()
	matches.Use(authMiddleware)
	matches.HandleFunc("", matchHandler.Start).Methods(http.MethodPost)
	matches.HandleFunc("", matchHandler.ListSummaries).Methods(http.MethodGet)
	matches.HandleFunc("/{matchId}", matchHandler.Get).Methods(http.MethodGet)
	matches.HandleFunc("/{matchId}", matchHandler.Reset).Methods(http.MethodDelete)
	matches.HandleFunc("/{matchId}/darts", matchHandler.SubmitDart).Methods(http.MethodPost)
	matches.HandleFunc("/{matchId}/visits", matchHandler.SubmitVisit).Methods(http.MethodPost)
	matches.HandleFunc("/{matchId}/undo", matchHandler.Undo).Methods(http.MethodPost)
	matches.HandleFunc("/{matchId}/end-visit", matchHandler.EndVisit).Methods(http.MethodPost)
	matches.HandleFunc("/{matchId}/play-again", matchHandler.PlayAgain).Methods(http.MethodPost)

	// Checkout table lookup (no auth)
	api.HandleFunc("/checkouts/{score}", matchHandler.GetCheckout).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
