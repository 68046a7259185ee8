package handler

import (
	"encoding/json"
	"net/http"

	"github.com/WillowTech1996/DartsCounter/internal/api/apierr"
)

// Aliases so handlers can name API error types without importing apierr.
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

const (
	CodeInvalidRequest     = apierr.CodeInvalidRequest
	CodeInvalidMode        = apierr.CodeInvalidMode
	CodeInvalidDartValue   = apierr.CodeInvalidDartValue
	CodeInvalidVisitTotal  = apierr.CodeInvalidVisitTotal
	CodeUnauthorized       = apierr.CodeUnauthorized
	CodeNotMatchOwner      = apierr.CodeNotMatchOwner
	CodePlayerNotFound     = apierr.CodePlayerNotFound
	CodeMatchNotFound      = apierr.CodeMatchNotFound
	CodeMatchInProgress    = apierr.CodeMatchInProgress
	CodeMatchOver          = apierr.CodeMatchOver
	CodeUsernameExists     = apierr.CodeUsernameExists
	CodeInvalidCredentials = apierr.CodeInvalidCredentials
	CodeInternalError      = apierr.CodeInternalError
)

// WriteError maps err onto the wire format and status code.
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError builds a 400 with the given message.
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewUnauthorizedError builds the standard 401.
func NewUnauthorizedError() error {
	return apierr.NewUnauthorizedError()
}

// NewInternalError builds an opaque 500.
func NewInternalError() error {
	return apierr.NewInternalError()
}

// decodeJSON parses the request body into dst. On malformed input it
// writes the 400 response itself and reports false, so the caller can
// just return.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return false
	}
	return true
}
