package players

import (
	"context"
	"log/slog"

	"github.com/mcoot/playerbase/internal/filter"
	"github.com/mcoot/playerbase/internal/model"
	"github.com/mcoot/playerbase/internal/storage"
)

// Service orchestrates validation, derivation and persistence of players
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new player Service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// CreatePlayer validates candidate and stores it as a new player
func (s *Service) CreatePlayer(ctx context.Context, candidate model.PlayerInput) (*model.Player, error) {
	player, err := model.NewPlayer(candidate)
	if err != nil {
		return nil, err
	}

	saved, err := s.storage.SavePlayer(ctx, player)
	if err != nil {
		s.logger.Error("failed to save player",
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("player created",
		slog.Int64("player_id", int64(saved.ID)),
		slog.Int("level", saved.Level()),
	)
	return saved, nil
}

// UpdatePlayer merges patch into the stored player.
// Nothing is written when the patch is rejected.
func (s *Service) UpdatePlayer(ctx context.Context, id model.PlayerID, patch model.PlayerInput) (*model.Player, error) {
	existing, err := s.FindPlayerByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged, err := model.ValidateForUpdate(existing, patch)
	if err != nil {
		return nil, err
	}

	saved, err := s.storage.SavePlayer(ctx, merged)
	if err != nil {
		s.logger.Error("failed to save player",
			slog.Int64("player_id", int64(id)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("player updated",
		slog.Int64("player_id", int64(id)),
		slog.Bool("experience_changed", patch.Experience.IsSet()),
	)
	return saved, nil
}

// DeletePlayer removes the player with the given id
func (s *Service) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	if _, err := s.FindPlayerByID(ctx, id); err != nil {
		return err
	}

	if err := s.storage.DeletePlayer(ctx, id); err != nil {
		return err
	}

	s.logger.Info("player deleted",
		slog.Int64("player_id", int64(id)),
	)
	return nil
}

// FindPlayerByID returns the player with the given id
func (s *Service) FindPlayerByID(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	return s.storage.GetPlayer(ctx, id)
}

// FindPlayers returns one page of players matching c
func (s *Service) FindPlayers(ctx context.Context, c filter.Composite, page storage.PageRequest) (*storage.Page, error) {
	return s.storage.FindPlayers(ctx, c, page)
}

// FindAllPlayers returns every player matching c, ordered by ID
func (s *Service) FindAllPlayers(ctx context.Context, c filter.Composite) ([]*model.Player, error) {
	return s.storage.FindAllPlayers(ctx, c)
}

// CountPlayers returns how many players match c
func (s *Service) CountPlayers(ctx context.Context, c filter.Composite) (int, error) {
	page, err := s.storage.FindPlayers(ctx, c, storage.PageRequest{Size: 1})
	if err != nil {
		return 0, err
	}
	return page.TotalItems, nil
}

// ValidateID rejects identifiers that can never be assigned by a store
func ValidateID(id model.PlayerID) error {
	if id <= 0 {
		return model.NewInvalidInputError("id", "must be a positive integer")
	}
	return nil
}
