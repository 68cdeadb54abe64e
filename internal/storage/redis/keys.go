package redis

import (
	"fmt"

	"github.com/mcoot/playerbase/internal/model"
)

// Key prefix for all player data
const keyPrefix = "plyrbase"

// playerKey returns the Redis key for a Player record
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%d", keyPrefix, id)
}

// playerIndexKey returns the Redis key for the SET of stored player IDs
func playerIndexKey() string {
	return fmt.Sprintf("%s:idx:players", keyPrefix)
}

// playerSequenceKey returns the Redis key of the ID counter
func playerSequenceKey() string {
	return fmt.Sprintf("%s:seq:player", keyPrefix)
}
