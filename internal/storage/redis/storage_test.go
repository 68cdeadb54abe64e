package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/playerbase/internal/filter"
	"github.com/mcoot/playerbase/internal/model"
	"github.com/mcoot/playerbase/internal/storage"
	"github.com/mcoot/playerbase/internal/storage/storagetest"
)

func newMiniStorage(t *testing.T, cfg Config) (*miniredis.Miniredis, *Storage) {
	mini := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: mini.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })
	return mini, NewWithClient(client, cfg)
}

func TestStorageContract(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ScanBatchSize = 2 // force several MGET batches

	suite.Run(t, &storagetest.Suite{
		NewStorage: func() storage.Storage {
			_, s := newMiniStorage(t, cfg)
			return s
		},
	})
}

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini, s.storage = newMiniStorage(s.T(), DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) newPlayer(name string, xp int) *model.Player {
	p := &model.Player{
		Name:       name,
		Race:       model.RaceDwarf,
		Profession: model.ProfessionWarrior,
		Birthday:   time.Date(2012, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	p.SetExperience(xp)
	return p
}

func (s *StorageSuite) TestSaveWritesRecordAndIndex() {
	saved, err := s.storage.SavePlayer(s.ctx, s.newPlayer("Gimli", 600))
	s.Require().NoError(err)

	raw, err := s.mini.Get(playerKey(saved.ID))
	s.Require().NoError(err)

	var rec playerRecord
	s.Require().NoError(json.Unmarshal([]byte(raw), &rec))
	s.Equal("Gimli", rec.Name)
	s.Equal("DWARF", rec.Race)
	s.Equal(600, rec.Experience)
	s.Equal(3, rec.Level)
	s.Equal(400, rec.UntilNextLevel)

	members, err := s.mini.Members(playerIndexKey())
	s.Require().NoError(err)
	s.Equal([]string{"1"}, members)
}

func (s *StorageSuite) TestExplicitIDRaisesSequence() {
	p := s.newPlayer("Thrain", 100)
	p.ID = 12
	_, err := s.storage.SavePlayer(s.ctx, p)
	s.Require().NoError(err)

	seq, err := s.mini.Get(playerSequenceKey())
	s.Require().NoError(err)
	s.Equal("12", seq)

	// A lower explicit ID leaves the counter alone
	p = s.newPlayer("Dain", 100)
	p.ID = 3
	_, err = s.storage.SavePlayer(s.ctx, p)
	s.Require().NoError(err)

	seq, err = s.mini.Get(playerSequenceKey())
	s.Require().NoError(err)
	s.Equal("12", seq)

	fresh, err := s.storage.SavePlayer(s.ctx, s.newPlayer("Thorin", 100))
	s.Require().NoError(err)
	s.Equal(model.PlayerID(13), fresh.ID)
}

func (s *StorageSuite) TestLoadRecomputesDerivedFields() {
	saved, err := s.storage.SavePlayer(s.ctx, s.newPlayer("Gimli", 600))
	s.Require().NoError(err)

	// A record written with stale derived values still loads consistently
	stale := recordFromPlayer(saved)
	stale.Level = 99
	stale.UntilNextLevel = -1
	data, err := json.Marshal(stale)
	s.Require().NoError(err)
	s.Require().NoError(s.mini.Set(playerKey(saved.ID), string(data)))

	got, err := s.storage.GetPlayer(s.ctx, saved.ID)
	s.Require().NoError(err)
	s.Equal(3, got.Level())
	s.Equal(400, got.UntilNextLevel())
}

func (s *StorageSuite) TestDeleteRemovesIndexEntry() {
	saved, err := s.storage.SavePlayer(s.ctx, s.newPlayer("Gimli", 600))
	s.Require().NoError(err)

	s.Require().NoError(s.storage.DeletePlayer(s.ctx, saved.ID))

	s.False(s.mini.Exists(playerKey(saved.ID)))
	members, _ := s.mini.Members(playerIndexKey())
	s.Empty(members)
}

func (s *StorageSuite) TestFindSkipsDanglingIndexEntries() {
	saved, err := s.storage.SavePlayer(s.ctx, s.newPlayer("Gimli", 600))
	s.Require().NoError(err)
	_, err = s.mini.SetAdd(playerIndexKey(), "77")
	s.Require().NoError(err)

	all, err := s.storage.FindAllPlayers(s.ctx, filter.Composite{})
	s.Require().NoError(err)
	s.Len(all, 1)
	s.Equal(saved.ID, all[0].ID)
}

func (s *StorageSuite) TestCorruptIndexEntryFails() {
	_, err := s.mini.SetAdd(playerIndexKey(), "not-a-number")
	s.Require().NoError(err)

	_, err = s.storage.FindAllPlayers(s.ctx, filter.Composite{})
	s.Error(err)
}

func (s *StorageSuite) TestNewRejectsBadURL() {
	cfg := DefaultConfig()
	cfg.URL = "not a url"
	_, err := New(cfg)
	s.Error(err)
}

func (s *StorageSuite) TestNewConnects() {
	cfg := DefaultConfig()
	cfg.URL = "redis://" + s.mini.Addr()
	st, err := New(cfg)
	s.Require().NoError(err)
	s.NoError(st.Close())
}
