package storage

import (
	"context"

	"github.com/WillowTech1996/DartsCounter/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	// Registered player operations
	SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error
	GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error)
	GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error)

	// Match operations
	SaveMatch(ctx context.Context, match *model.Match) error
	GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error)
	DeleteMatch(ctx context.Context, id model.MatchID) error
	MatchExists(ctx context.Context, id model.MatchID) (bool, error)

	// Match summary operations. Summaries are append-only records of
	// completed legs, listed newest first.
	SaveMatchSummary(ctx context.Context, summary *model.MatchSummary) error
	ListMatchSummaries(ctx context.Context, ownerID model.PlayerID) ([]model.MatchSummary, error)
}
