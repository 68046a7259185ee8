package redis

import (
	"fmt"

	"github.com/WillowTech1996/DartsCounter/internal/model"
)

// Key prefix for all darts data
const keyPrefix = "darts"

// Key generation functions for each entity type

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// registeredPlayerKey returns the Redis key for a RegisteredPlayer
func registeredPlayerKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:registered_player:%s", keyPrefix, playerID)
}

// usernameIndexKey returns the Redis key for the username -> player_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// matchKey returns the Redis key for a Match
func matchKey(id model.MatchID) string {
	return fmt.Sprintf("%s:match:%s", keyPrefix, id)
}

// summariesKey returns the Redis key for a player's LIST of leg summaries
func summariesKey(ownerID model.PlayerID) string {
	return fmt.Sprintf("%s:summaries:%s", keyPrefix, ownerID)
}
