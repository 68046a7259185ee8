package middleware

import (
	"log/slog"
	"net/http"

	"github.com/WillowTech1996/DartsCounter/internal/api/apierr"
	"github.com/WillowTech1996/DartsCounter/internal/middleware"
)

// Recovery creates panic recovery middleware that answers with the
// API's JSON 500 body instead of a bare status
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, func(w http.ResponseWriter, _ *http.Request, _ any) {
		apierr.WriteError(w, apierr.NewInternalError())
	})
}
