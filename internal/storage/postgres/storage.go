package postgres

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/WillowTech1996/DartsCounter/internal/model"
	"github.com/WillowTech1996/DartsCounter/internal/storage"
)

//go:embed schema.sql
var schema embed.FS

// Storage is a Postgres-backed implementation of the storage interface
type Storage struct {
	pool *pgxpool.Pool
}

// New connects to Postgres and verifies the connection
func New(dsn string) (*Storage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &Storage{pool: pool}, nil
}

// Migrate applies the embedded schema. All statements are idempotent.
func (s *Storage) Migrate(ctx context.Context) error {
	sqlBytes, err := schema.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, string(sqlBytes))
	return err
}

// Close closes the connection pool
func (s *Storage) Close() error {
	s.pool.Close()
	return nil
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO players(id, display_name, is_guest, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		  SET display_name = EXCLUDED.display_name,
		      is_guest = EXCLUDED.is_guest
	`, string(player.ID), player.DisplayName, player.IsGuest, player.CreatedAt)
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	var player model.Player
	err := s.pool.QueryRow(ctx, `
		SELECT id, display_name, is_guest, created_at
		  FROM players WHERE id = $1
	`, string(id)).Scan(&player.ID, &player.DisplayName, &player.IsGuest, &player.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}
	return &player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM players WHERE id = $1`, string(id))
	return err
}

// Registered player operations

func (s *Storage) SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO registered_players(player_id, username, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (player_id) DO UPDATE
		  SET username = EXCLUDED.username,
		      password_hash = EXCLUDED.password_hash,
		      updated_at = EXCLUDED.updated_at
	`, string(rp.PlayerID), rp.Username, rp.PasswordHash, rp.CreatedAt, rp.UpdatedAt)
	return err
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	var rp model.RegisteredPlayer
	err := s.pool.QueryRow(ctx, `
		SELECT player_id, username, password_hash, created_at, updated_at
		  FROM registered_players WHERE player_id = $1
	`, string(playerID)).Scan(&rp.PlayerID, &rp.Username, &rp.PasswordHash, &rp.CreatedAt, &rp.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}
	return &rp, nil
}

func (s *Storage) GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	var rp model.RegisteredPlayer
	err := s.pool.QueryRow(ctx, `
		SELECT player_id, username, password_hash, created_at, updated_at
		  FROM registered_players WHERE username = $1
	`, username).Scan(&rp.PlayerID, &rp.Username, &rp.PasswordHash, &rp.CreatedAt, &rp.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}
	return &rp, nil
}

// Match operations

func (s *Storage) SaveMatch(ctx context.Context, match *model.Match) error {
	doc, err := json.Marshal(match)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO matches(id, owner_id, doc, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		  SET doc = EXCLUDED.doc,
		      updated_at = EXCLUDED.updated_at
	`, string(match.ID), string(match.OwnerID), doc, match.UpdatedAt)
	return err
}

func (s *Storage) GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	var doc []byte
	err := s.pool.QueryRow(ctx, `
		SELECT doc FROM matches WHERE id = $1
	`, string(id)).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrMatchNotFound
		}
		return nil, err
	}

	var match model.Match
	if err := json.Unmarshal(doc, &match); err != nil {
		return nil, err
	}
	return &match, nil
}

func (s *Storage) DeleteMatch(ctx context.Context, id model.MatchID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM matches WHERE id = $1`, string(id))
	return err
}

func (s *Storage) MatchExists(ctx context.Context, id model.MatchID) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM matches WHERE id = $1)
	`, string(id)).Scan(&exists)
	return exists, err
}

// Match summary operations

func (s *Storage) SaveMatchSummary(ctx context.Context, summary *model.MatchSummary) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO match_summaries(
			match_id, owner_id, mode, winner_id, winner_name,
			average, highest_visit, darts_thrown, legs_won, completed_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`, string(summary.MatchID), string(summary.OwnerID), string(summary.Mode),
		string(summary.WinnerID), summary.WinnerName,
		summary.Average, summary.HighestVisit, summary.DartsThrown,
		summary.LegsWon, summary.CompletedAt)
	return err
}

func (s *Storage) ListMatchSummaries(ctx context.Context, ownerID model.PlayerID) ([]model.MatchSummary, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT match_id, owner_id, mode, winner_id, winner_name,
		       average, highest_visit, darts_thrown, legs_won, completed_at
		  FROM match_summaries
		 WHERE owner_id = $1
		 ORDER BY completed_at DESC, id DESC
	`, string(ownerID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []model.MatchSummary
	for rows.Next() {
		var summary model.MatchSummary
		if err := rows.Scan(
			&summary.MatchID, &summary.OwnerID, &summary.Mode,
			&summary.WinnerID, &summary.WinnerName,
			&summary.Average, &summary.HighestVisit, &summary.DartsThrown,
			&summary.LegsWon, &summary.CompletedAt,
		); err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return summaries, nil
}
