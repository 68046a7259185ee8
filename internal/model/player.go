package model

import "time"

// PlayerID uniquely identifies a player account across the system
type PlayerID string

// Player is the account driving a scoreboard. It is distinct from a
// match Participant: one account controls both seats of a local match.
type Player struct {
	ID          PlayerID
	DisplayName string
	IsGuest     bool
	CreatedAt   time.Time
}

// RegisteredPlayer holds the credentials behind a non-guest Player.
// The password hash lives only here, never on Player or Session.
type RegisteredPlayer struct {
	PlayerID     PlayerID
	Username     string // immutable once registered
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
