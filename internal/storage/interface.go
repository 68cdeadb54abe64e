package storage

import (
	"context"

	"github.com/mcoot/playerbase/internal/filter"
	"github.com/mcoot/playerbase/internal/model"
)

// Storage defines the interface for player persistence.
//
// Implementations own identifier assignment and must make a single
// SavePlayer atomic; concurrent updates of one player are last-writer-wins.
type Storage interface {
	// GetPlayer returns model.ErrPlayerNotFound when id is not stored
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)

	// SavePlayer persists player, assigning a new ID when player.ID is zero,
	// and returns the stored record
	SavePlayer(ctx context.Context, player *model.Player) (*model.Player, error)

	// DeletePlayer returns model.ErrPlayerNotFound when id is not stored
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	// FindPlayers returns one page of the players matching c
	FindPlayers(ctx context.Context, c filter.Composite, page PageRequest) (*Page, error)

	// FindAllPlayers returns every player matching c, ordered by ID
	FindAllPlayers(ctx context.Context, c filter.Composite) ([]*model.Player, error)
}
