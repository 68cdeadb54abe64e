package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/playerbase/internal/filter"
	"github.com/mcoot/playerbase/internal/model"
	"github.com/mcoot/playerbase/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
//
// Each player is a JSON string key; a SET indexes the stored IDs and an
// INCR counter hands out new ones. Queries load the indexed records and
// filter them in process.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	if cfg.ScanBatchSize <= 0 {
		cfg.ScanBatchSize = DefaultConfig().ScanBatchSize
	}
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// playerRecord is the stored JSON form of a Player.
// Level fields are kept for readers of the raw keys; loading recomputes them.
type playerRecord struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Title          string `json:"title"`
	Race           string `json:"race"`
	Profession     string `json:"profession"`
	Birthday       int64  `json:"birthday"`
	Banned         bool   `json:"banned"`
	Experience     int    `json:"experience"`
	Level          int    `json:"level"`
	UntilNextLevel int    `json:"until_next_level"`
}

func recordFromPlayer(p *model.Player) playerRecord {
	return playerRecord{
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

func (r playerRecord) toPlayer() *model.Player {
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

func decodePlayer(data []byte) (*model.Player, error) {
	var rec playerRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode player: %w", err)
	}
	return rec.toPlayer(), nil
}

// Player operations

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}
	return decodePlayer(data)
}

// raiseSequenceScript moves the ID counter up to ARGV[1] so a later
// allocation never reuses an explicitly saved ID
const raiseSequenceScript = `
local current = tonumber(redis.call('GET', KEYS[1]) or '0')
if tonumber(ARGV[1]) > current then
	redis.call('SET', KEYS[1], ARGV[1])
end
return 0
`

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) (*model.Player, error) {
	stored := player.Clone()
	if stored.ID == 0 {
		next, err := s.client.Incr(ctx, playerSequenceKey()).Result()
		if err != nil {
			return nil, fmt.Errorf("allocate player id: %w", err)
		}
		stored.ID = model.PlayerID(next)
	}

	data, err := json.Marshal(recordFromPlayer(stored))
	if err != nil {
		return nil, err
	}

	// Use transaction for atomic save + index update
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, playerKey(stored.ID), data, 0)
	pipe.SAdd(ctx, playerIndexKey(), int64(stored.ID))
	if player.ID != 0 {
		pipe.Eval(ctx, raiseSequenceScript, []string{playerSequenceKey()}, int64(stored.ID))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	return stored, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	pipe := s.client.TxPipeline()
	del := pipe.Del(ctx, playerKey(id))
	pipe.SRem(ctx, playerIndexKey(), int64(id))
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}
	if del.Val() == 0 {
		return model.ErrPlayerNotFound
	}
	return nil
}

func (s *Storage) FindPlayers(ctx context.Context, c filter.Composite, page storage.PageRequest) (*storage.Page, error) {
	matched, err := s.match(ctx, c)
	if err != nil {
		return nil, err
	}
	return storage.Paginate(matched, page), nil
}

func (s *Storage) FindAllPlayers(ctx context.Context, c filter.Composite) ([]*model.Player, error) {
	matched, err := s.match(ctx, c)
	if err != nil {
		return nil, err
	}
	storage.SortPlayers(matched, storage.OrderID)
	return matched, nil
}

// match loads every indexed player in batches and keeps those matching c.
// IDs whose record has disappeared between SMEMBERS and MGET are skipped.
func (s *Storage) match(ctx context.Context, c filter.Composite) ([]*model.Player, error) {
	members, err := s.client.SMembers(ctx, playerIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("corrupt player index entry %q: %w", m, err)
		}
		keys = append(keys, playerKey(model.PlayerID(id)))
	}

	matched := make([]*model.Player, 0, len(keys))
	for batch := range slices.Chunk(keys, s.cfg.ScanBatchSize) {
		values, err := s.client.MGet(ctx, batch...).Result()
		if err != nil {
			return nil, err
		}
		for _, v := range values {
			raw, ok := v.(string)
			if !ok {
				continue
			}
			p, err := decodePlayer([]byte(raw))
			if err != nil {
				return nil, err
			}
			if c.Matches(p) {
				matched = append(matched, p)
			}
		}
	}
	return matched, nil
}
