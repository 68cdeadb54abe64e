package memory

import (
	"context"
	"sync"

	"github.com/mcoot/playerbase/internal/filter"
	"github.com/mcoot/playerbase/internal/model"
	"github.com/mcoot/playerbase/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players map[model.PlayerID]*model.Player
	lastID  model.PlayerID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players: make(map[model.PlayerID]*model.Player),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Players are cloned on the way in and out so callers never share state
// with the map.

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player.Clone(), nil
}

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) (*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := player.Clone()
	if stored.ID == 0 {
		s.lastID++
		stored.ID = s.lastID
	} else if stored.ID > s.lastID {
		s.lastID = stored.ID
	}
	s.players[stored.ID] = stored
	return stored.Clone(), nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.players[id]; !ok {
		return model.ErrPlayerNotFound
	}
	delete(s.players, id)
	return nil
}

func (s *Storage) FindPlayers(ctx context.Context, c filter.Composite, page storage.PageRequest) (*storage.Page, error) {
	return storage.Paginate(s.match(c), page), nil
}

func (s *Storage) FindAllPlayers(ctx context.Context, c filter.Composite) ([]*model.Player, error) {
	matched := s.match(c)
	storage.SortPlayers(matched, storage.OrderID)
	return matched, nil
}

func (s *Storage) match(c filter.Composite) []*model.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := make([]*model.Player, 0, len(s.players))
	for _, p := range s.players {
		if c.Matches(p) {
			matched = append(matched, p.Clone())
		}
	}
	return matched
}
