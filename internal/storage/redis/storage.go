package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/WillowTech1996/DartsCounter/internal/model"
	"github.com/WillowTech1996/DartsCounter/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Every entity is stored as a JSON blob under its own key; summaries
// additionally live in a per-owner list so listing needs no scan.
type Storage struct {
	client *redis.Client
	cfg    Config
}

var _ storage.Storage = (*Storage)(nil)

// New connects to Redis using cfg and verifies the connection with a ping.
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}
	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{client: client, cfg: cfg}, nil
}

// NewWithClient wraps an existing client, used by tests running against
// miniredis.
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{client: client, cfg: cfg}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// setJSON marshals v and stores it at key. A zero ttl means no expiry.
func (s *Storage) setJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

// getJSON loads the blob at key into dest, mapping redis.Nil onto notFound.
func (s *Storage) getJSON(ctx context.Context, key string, dest any, notFound error) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return notFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	// Guests expire; registered accounts stay until deleted.
	var ttl time.Duration
	if player.IsGuest {
		ttl = s.cfg.GuestPlayerTTL
	}
	return s.setJSON(ctx, playerKey(player.ID), player, ttl)
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	var player model.Player
	if err := s.getJSON(ctx, playerKey(id), &player, model.ErrPlayerNotFound); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	return s.client.Del(ctx, playerKey(id)).Err()
}

// Registered player operations

func (s *Storage) SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	data, err := json.Marshal(rp)
	if err != nil {
		return err
	}

	// The credential blob and the username index must land together.
	pipe := s.client.Pipeline()
	pipe.Set(ctx, registeredPlayerKey(rp.PlayerID), data, 0)
	pipe.Set(ctx, usernameIndexKey(rp.Username), string(rp.PlayerID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	var rp model.RegisteredPlayer
	if err := s.getJSON(ctx, registeredPlayerKey(playerID), &rp, model.ErrPlayerNotFound); err != nil {
		return nil, err
	}
	return &rp, nil
}

func (s *Storage) GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	playerID, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, model.ErrPlayerNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.GetRegisteredPlayer(ctx, model.PlayerID(playerID))
}

// Match operations

func (s *Storage) SaveMatch(ctx context.Context, match *model.Match) error {
	return s.setJSON(ctx, matchKey(match.ID), match, s.cfg.MatchTTL)
}

func (s *Storage) GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	var match model.Match
	if err := s.getJSON(ctx, matchKey(id), &match, model.ErrMatchNotFound); err != nil {
		return nil, err
	}
	return &match, nil
}

func (s *Storage) DeleteMatch(ctx context.Context, id model.MatchID) error {
	return s.client.Del(ctx, matchKey(id)).Err()
}

func (s *Storage) MatchExists(ctx context.Context, id model.MatchID) (bool, error) {
	n, err := s.client.Exists(ctx, matchKey(id)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Match summary operations

func (s *Storage) SaveMatchSummary(ctx context.Context, summary *model.MatchSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	// LPUSH keeps the list newest first
	return s.client.LPush(ctx, summariesKey(summary.OwnerID), data).Err()
}

func (s *Storage) ListMatchSummaries(ctx context.Context, ownerID model.PlayerID) ([]model.MatchSummary, error) {
	entries, err := s.client.LRange(ctx, summariesKey(ownerID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	summaries := make([]model.MatchSummary, 0, len(entries))
	for _, entry := range entries {
		var summary model.MatchSummary
		if err := json.Unmarshal([]byte(entry), &summary); err != nil {
			continue // skip corrupt entries
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
