package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Match errors
	ErrMatchNotFound   = errors.New("match not found")
	ErrNotMatchOwner   = errors.New("player does not own this match")
	ErrMatchInProgress = errors.New("match is still in progress")
	ErrMatchOver       = errors.New("match is already over")

	// Input errors surfaced at the API boundary; the engine itself
	// stays permissive over arithmetic
	ErrInvalidMode       = errors.New("unsupported game mode")
	ErrInvalidDartValue  = errors.New("value cannot be scored with a single dart")
	ErrInvalidVisitTotal = errors.New("visit total must be between 0 and 180")
)
