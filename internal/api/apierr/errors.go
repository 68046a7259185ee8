package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/WillowTech1996/DartsCounter/internal/model"
	"github.com/WillowTech1996/DartsCounter/internal/services/auth"
)

// APIError is the wire form of a failure: a stable machine-readable
// code plus a human-readable message.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the envelope every error body uses.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Error codes returned by the API. Clients branch on these, so they are
// part of the contract.
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidMode        = "INVALID_MODE"
	CodeInvalidDartValue   = "INVALID_DART_VALUE"
	CodeInvalidVisitTotal  = "INVALID_VISIT_TOTAL"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeNotMatchOwner      = "NOT_MATCH_OWNER"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodeMatchNotFound      = "MATCH_NOT_FOUND"
	CodeMatchInProgress    = "MATCH_IN_PROGRESS"
	CodeMatchOver          = "MATCH_OVER"
	CodeUsernameExists     = "USERNAME_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError pairs an APIError with the status code it travels under.
type httpError struct {
	status   int
	apiError APIError
}

func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError maps err onto a status code and JSON body. Errors the
// mapping does not recognize become an opaque 500.
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	// Scoring engine errors
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrMatchNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeMatchNotFound, "Match not found"}}
	case errors.Is(err, model.ErrNotMatchOwner):
		return &httpError{http.StatusForbidden, APIError{CodeNotMatchOwner, "Only the match owner can perform this action"}}
	case errors.Is(err, model.ErrMatchInProgress):
		return &httpError{http.StatusConflict, APIError{CodeMatchInProgress, "Match is still in progress"}}
	case errors.Is(err, model.ErrMatchOver):
		return &httpError{http.StatusConflict, APIError{CodeMatchOver, "Match is already over"}}
	case errors.Is(err, model.ErrInvalidMode):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidMode, "Mode must be 301 or 501"}}
	case errors.Is(err, model.ErrInvalidDartValue):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidDartValue, "Value cannot be scored with a single dart"}}
	case errors.Is(err, model.ErrInvalidVisitTotal):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidVisitTotal, "Visit total must be between 0 and 180"}}

	// Account errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, auth.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError builds a 400 with the given message.
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError builds the standard 401.
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError builds an opaque 500.
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
