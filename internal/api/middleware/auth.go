package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/WillowTech1996/DartsCounter/internal/api/apierr"
	"github.com/WillowTech1996/DartsCounter/internal/model"
	"github.com/WillowTech1996/DartsCounter/internal/services/auth"
)

type contextKey string

const (
	playerContextKey  contextKey = "player"
	sessionContextKey contextKey = "session"
)

// Auth creates middleware that rejects requests without a valid
// session
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			session, err := authService.ValidateSession(token)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(withSession(r.Context(), session)))
		})
	}
}

// OptionalAuth creates middleware that attaches the session when a
// valid token is sent but lets anonymous requests through untouched
func OptionalAuth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := extractToken(r); token != "" {
				if session, err := authService.ValidateSession(token); err == nil {
					r = r.WithContext(withSession(r.Context(), session))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func withSession(ctx context.Context, session *auth.Session) context.Context {
	ctx = context.WithValue(ctx, sessionContextKey, session)
	return context.WithValue(ctx, playerContextKey, &session.Player)
}

// extractToken pulls the session token out of the request. The
// Authorization header wins; the query parameter exists because
// EventSource cannot set headers; the cookie is a courtesy for
// browser clients.
func extractToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}

	if cookie, err := r.Cookie("session"); err == nil {
		return cookie.Value
	}

	return ""
}

// GetPlayer returns the authenticated player, or nil on an anonymous
// request
func GetPlayer(ctx context.Context) *model.Player {
	player, _ := ctx.Value(playerContextKey).(*model.Player)
	return player
}

// GetSession returns the validated session, or nil on an anonymous
// request
func GetSession(ctx context.Context) *auth.Session {
	session, _ := ctx.Value(sessionContextKey).(*auth.Session)
	return session
}

// MustGetPlayer returns the authenticated player or panics. Only for
// handlers behind the Auth middleware.
func MustGetPlayer(ctx context.Context) *model.Player {
	player := GetPlayer(ctx)
	if player == nil {
		panic("no player in context - auth middleware not applied?")
	}
	return player
}
