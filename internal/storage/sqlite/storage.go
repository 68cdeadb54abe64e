package sqlite

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
	"moul.io/zapgorm2"

	"github.com/mcoot/playerbase/internal/filter"
	"github.com/mcoot/playerbase/internal/model"
	"github.com/mcoot/playerbase/internal/storage"
)

// Storage is a SQLite-backed implementation of the storage interface.
// Filters and ordering are pushed down into SQL.
type Storage struct {
	db *gorm.DB
}

// New opens the database at cfg.Path and migrates the players table
func New(cfg Config) (*Storage, error) {
	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: newLogger(cfg),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", cfg.Path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// An in-memory database lives and dies with its connection, so pin it
	// before migrating. File databases are pinned after migration because
	// the migrator nests queries on an existing table.
	if isMemoryPath(cfg.Path) {
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(&playerRow{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate players: %w", err)
	}

	// SQLite allows a single writer
	sqlDB.SetMaxOpenConns(1)

	return &Storage{db: db}, nil
}

func isMemoryPath(path string) bool {
	return path == ":memory:" || strings.Contains(path, "mode=memory")
}

func newLogger(cfg Config) gormlogger.Interface {
	if cfg.SQLLogger == nil {
		return gormlogger.Default.LogMode(gormlogger.Silent)
	}
	l := zapgorm2.New(cfg.SQLLogger)
	l.IgnoreRecordNotFoundError = true
	l.SlowThreshold = cfg.SlowThreshold
	return l.LogMode(gormlogger.Info)
}

// Close closes the underlying database handle
func (s *Storage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

type playerRow struct {
	ID             int64  `gorm:"primaryKey;autoIncrement"`
	Name           string `gorm:"not null;index"`
	Title          string `gorm:"not null"`
	Race           string `gorm:"not null;index"`
	Profession     string `gorm:"not null;index"`
	Birthday       int64  `gorm:"not null;index"` // Unix milliseconds
	Banned         bool   `gorm:"not null;index"`
	Experience     int    `gorm:"not null;index"`
	Level          int    `gorm:"not null;index"`
	UntilNextLevel int    `gorm:"not null"`
}

func (playerRow) TableName() string { return "players" }

func rowFromPlayer(p *model.Player) playerRow {
	return playerRow{
		ID:             int64(p.ID),
		Name:           p.Name,
		Title:          p.Title,
		Race:           string(p.Race),
		Profession:     string(p.Profession),
		Birthday:       p.Birthday.UnixMilli(),
		Banned:         p.Banned,
		Experience:     p.Experience(),
		Level:          p.Level(),
		UntilNextLevel: p.UntilNextLevel(),
	}
}

func (r playerRow) toPlayer() *model.Player {
	p := &model.Player{
		ID:         model.PlayerID(r.ID),
		Name:       r.Name,
		Title:      r.Title,
		Race:       model.Race(r.Race),
		Profession: model.Profession(r.Profession),
		Birthday:   time.UnixMilli(r.Birthday).UTC(),
		Banned:     r.Banned,
	}
	p.SetExperience(r.Experience)
	return p
}

func toPlayers(rows []playerRow) []*model.Player {
	players := make([]*model.Player, len(rows))
	for i, r := range rows {
		players[i] = r.toPlayer()
	}
	return players
}

// Player operations

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	var row playerRow
	err := s.db.WithContext(ctx).Where("id = ?", int64(id)).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}
	return row.toPlayer(), nil
}

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) (*model.Player, error) {
	row := rowFromPlayer(player)
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error
	if err != nil {
		return nil, fmt.Errorf("save player: %w", err)
	}
	return row.toPlayer(), nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	res := s.db.WithContext(ctx).Where("id = ?", int64(id)).Delete(&playerRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrPlayerNotFound
	}
	return nil
}

func (s *Storage) FindPlayers(ctx context.Context, c filter.Composite, page storage.PageRequest) (*storage.Page, error) {
	where, err := whereComposite(c)
	if err != nil {
		return nil, err
	}
	page = page.Normalize()

	var total int64
	err = s.db.WithContext(ctx).Model(&playerRow{}).Scopes(where).Count(&total).Error
	if err != nil {
		return nil, err
	}

	if page.Number > int(total)/page.Size {
		return storage.NewPage(nil, page, int(total)), nil
	}

	var rows []playerRow
	err = s.db.WithContext(ctx).
		Scopes(where).
		Order(orderBy(page.Order)).
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return storage.NewPage(toPlayers(rows), page, int(total)), nil
}

func (s *Storage) FindAllPlayers(ctx context.Context, c filter.Composite) ([]*model.Player, error) {
	where, err := whereComposite(c)
	if err != nil {
		return nil, err
	}

	var rows []playerRow
	err = s.db.WithContext(ctx).Scopes(where).Order("id").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toPlayers(rows), nil
}
