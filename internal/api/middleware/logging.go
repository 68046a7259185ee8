package middleware

import (
	"log/slog"
	"net/http"

	"github.com/WillowTech1996/DartsCounter/internal/middleware"
)

// Logging creates request logging middleware for the API, tagging
// every line with the component
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger.With(slog.String("component", "api")))
}
