// Package storagetest holds the behaviour every storage.Storage backend must share.
package storagetest

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/playerbase/internal/filter"
	"github.com/mcoot/playerbase/internal/model"
	"github.com/mcoot/playerbase/internal/storage"
)

// Suite runs the storage contract against the backend returned by NewStorage.
// Backends embed it in their own suite or run it directly.
type Suite struct {
	suite.Suite
	NewStorage func() storage.Storage

	Storage storage.Storage
	Ctx     context.Context
}

func (s *Suite) SetupTest() {
	s.Storage = s.NewStorage()
	s.Ctx = context.Background()
}

func ptr[T any](v T) *T {
	return &v
}

// NewPlayer builds a valid unsaved player
func (s *Suite) NewPlayer(name string, race model.Race, xp int, banned bool, birthYear int) *model.Player {
	p, err := model.NewPlayer(model.PlayerInput{
		Name:       model.Some(name),
		Title:      model.Some("Sir " + name),
		Race:       model.Some(race),
		Profession: model.Some(model.ProfessionPaladin),
		Birthday:   model.Some(time.Date(birthYear, 6, 15, 12, 0, 0, 0, time.UTC)),
		Experience: model.Some(xp),
		Banned:     model.Some(banned),
	})
	s.Require().NoError(err)
	return p
}

func (s *Suite) save(p *model.Player) *model.Player {
	saved, err := s.Storage.SavePlayer(s.Ctx, p)
	s.Require().NoError(err)
	return saved
}

func ids(players []*model.Player) []model.PlayerID {
	out := make([]model.PlayerID, len(players))
	for i, p := range players {
		out[i] = p.ID
	}
	return out
}

// seed stores five players, returned in ID order:
// Aragorn HUMAN 50 banned, Boromir HUMAN 100 banned, Celeborn ELF 300,
// Denethor HUMAN 500 banned, Elrond ELF 501 banned.
func (s *Suite) seed() []*model.Player {
	return []*model.Player{
		s.save(s.NewPlayer("Aragorn", model.RaceHuman, 50, true, 2001)),
		s.save(s.NewPlayer("Boromir", model.RaceHuman, 100, true, 2005)),
		s.save(s.NewPlayer("Celeborn", model.RaceElf, 300, false, 2010)),
		s.save(s.NewPlayer("Denethor", model.RaceHuman, 500, true, 2015)),
		s.save(s.NewPlayer("Elrond", model.RaceElf, 501, true, 2020)),
	}
}

func (s *Suite) TestSaveAssignsIDs() {
	first := s.save(s.NewPlayer("Frodo", model.RaceHobbit, 10, false, 2002))
	second := s.save(s.NewPlayer("Sam", model.RaceHobbit, 20, false, 2003))

	s.Positive(int64(first.ID))
	s.Greater(second.ID, first.ID)
}

func (s *Suite) TestSaveWithExplicitIDAdvancesSequence() {
	explicit := s.NewPlayer("Gandalf", model.RaceHuman, 9_000, false, 2000)
	explicit.ID = 7
	s.save(explicit)

	fresh := s.save(s.NewPlayer("Pippin", model.RaceHobbit, 30, false, 2004))
	s.Greater(fresh.ID, model.PlayerID(7))

	got, err := s.Storage.GetPlayer(s.Ctx, 7)
	s.Require().NoError(err)
	s.Equal("Gandalf", got.Name)
}

func (s *Suite) TestSaveAndGetPlayer() {
	saved := s.save(s.NewPlayer("Frodo", model.RaceHobbit, 1_234, true, 2002))

	got, err := s.Storage.GetPlayer(s.Ctx, saved.ID)
	s.Require().NoError(err)
	s.Equal(saved.ID, got.ID)
	s.Equal("Frodo", got.Name)
	s.Equal("Sir Frodo", got.Title)
	s.Equal(model.RaceHobbit, got.Race)
	s.Equal(model.ProfessionPaladin, got.Profession)
	s.True(got.Banned)
	s.True(saved.Birthday.Equal(got.Birthday))
	s.Equal(1_234, got.Experience())
	s.Equal(model.DeriveLevel(1_234), got.Level())
	s.Equal(saved.UntilNextLevel(), got.UntilNextLevel())
}

func (s *Suite) TestGetPlayerNotFound() {
	_, err := s.Storage.GetPlayer(s.Ctx, 999)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *Suite) TestSaveExistingOverwrites() {
	saved := s.save(s.NewPlayer("Frodo", model.RaceHobbit, 10, false, 2002))
	saved.Name = "Baggins"
	saved.SetExperience(600)

	updated := s.save(saved)
	s.Equal(saved.ID, updated.ID)

	got, err := s.Storage.GetPlayer(s.Ctx, saved.ID)
	s.Require().NoError(err)
	s.Equal("Baggins", got.Name)
	s.Equal(3, got.Level())

	all, err := s.Storage.FindAllPlayers(s.Ctx, filter.Composite{})
	s.Require().NoError(err)
	s.Len(all, 1)
}

func (s *Suite) TestDeletePlayer() {
	players := s.seed()

	err := s.Storage.DeletePlayer(s.Ctx, players[1].ID)
	s.Require().NoError(err)

	_, err = s.Storage.GetPlayer(s.Ctx, players[1].ID)
	s.ErrorIs(err, model.ErrPlayerNotFound)

	all, err := s.Storage.FindAllPlayers(s.Ctx, filter.Composite{})
	s.Require().NoError(err)
	s.Equal([]model.PlayerID{players[0].ID, players[2].ID, players[3].ID, players[4].ID}, ids(all))
}

func (s *Suite) TestDeleteMissingPlayer() {
	s.seed()

	err := s.Storage.DeletePlayer(s.Ctx, 999)
	s.ErrorIs(err, model.ErrPlayerNotFound)

	all, err := s.Storage.FindAllPlayers(s.Ctx, filter.Composite{})
	s.Require().NoError(err)
	s.Len(all, 5)
}

func (s *Suite) TestFindAllUniversal() {
	players := s.seed()

	all, err := s.Storage.FindAllPlayers(s.Ctx, filter.Composite{})
	s.Require().NoError(err)
	s.Equal(ids(players), ids(all))
}

func (s *Suite) TestFindAllExperienceRangeAndBanned() {
	players := s.seed()

	c := filter.Criteria{MinExperience: ptr(100), MaxExperience: ptr(500), Banned: ptr(true)}.Composite()
	all, err := s.Storage.FindAllPlayers(s.Ctx, c)
	s.Require().NoError(err)
	s.Equal([]model.PlayerID{players[1].ID, players[3].ID}, ids(all))
}

func (s *Suite) TestFindAllByNameIsCaseSensitive() {
	players := s.seed()

	all, err := s.Storage.FindAllPlayers(s.Ctx, filter.All(filter.ByName(ptr("or"))))
	s.Require().NoError(err)
	s.Equal([]model.PlayerID{players[0].ID, players[1].ID, players[2].ID, players[3].ID}, ids(all))

	all, err = s.Storage.FindAllPlayers(s.Ctx, filter.All(filter.ByName(ptr("Bor"))))
	s.Require().NoError(err)
	s.Equal([]model.PlayerID{players[1].ID}, ids(all))

	all, err = s.Storage.FindAllPlayers(s.Ctx, filter.All(filter.ByName(ptr("bor"))))
	s.Require().NoError(err)
	s.Equal([]model.PlayerID{players[2].ID}, ids(all))

	all, err = s.Storage.FindAllPlayers(s.Ctx, filter.All(filter.ByName(ptr("bOr"))))
	s.Require().NoError(err)
	s.Empty(all)
}

func (s *Suite) TestFindAllByTitleRaceAndProfession() {
	players := s.seed()

	c := filter.Criteria{
		Title:      ptr("Sir E"),
		Race:       ptr(model.RaceElf),
		Profession: ptr(model.ProfessionPaladin),
	}.Composite()
	all, err := s.Storage.FindAllPlayers(s.Ctx, c)
	s.Require().NoError(err)
	s.Equal([]model.PlayerID{players[4].ID}, ids(all))
}

func (s *Suite) TestFindAllByBirthdayAndLevel() {
	players := s.seed()

	after := time.Date(2005, 1, 1, 0, 0, 0, 0, time.UTC)
	before := time.Date(2015, 12, 31, 0, 0, 0, 0, time.UTC)
	c := filter.Criteria{After: &after, Before: &before, MinLevel: ptr(2)}.Composite()
	all, err := s.Storage.FindAllPlayers(s.Ctx, c)
	s.Require().NoError(err)
	s.Equal([]model.PlayerID{players[2].ID, players[3].ID}, ids(all))
}

func (s *Suite) TestFindAllByExactBirthdayBound() {
	players := s.seed()

	exact := players[2].Birthday
	all, err := s.Storage.FindAllPlayers(s.Ctx, filter.All(filter.ByBirthday(&exact, &exact)))
	s.Require().NoError(err)
	s.Equal([]model.PlayerID{players[2].ID}, ids(all))
}

func (s *Suite) TestFindPlayersPaginates() {
	players := s.seed()

	page, err := s.Storage.FindPlayers(s.Ctx, filter.Composite{}, storage.PageRequest{Number: 1, Size: 2, Order: storage.OrderID})
	s.Require().NoError(err)
	s.Equal([]model.PlayerID{players[2].ID, players[3].ID}, ids(page.Players))
	s.Equal(5, page.TotalItems)
	s.Equal(3, page.TotalPages)
	s.Equal(1, page.Number)
	s.Equal(2, page.Size)
}

func (s *Suite) TestFindPlayersOrdersAndFilters() {
	players := s.seed()

	c := filter.All(filter.ByRace(ptr(model.RaceHuman)))
	page, err := s.Storage.FindPlayers(s.Ctx, c, storage.PageRequest{Number: 0, Size: 10, Order: storage.OrderExperience})
	s.Require().NoError(err)
	s.Equal([]model.PlayerID{players[0].ID, players[1].ID, players[3].ID}, ids(page.Players))
	s.Equal(3, page.TotalItems)

	page, err = s.Storage.FindPlayers(s.Ctx, filter.Composite{}, storage.PageRequest{Size: 2, Order: storage.OrderName})
	s.Require().NoError(err)
	s.Equal([]model.PlayerID{players[0].ID, players[1].ID}, ids(page.Players))
}

func (s *Suite) TestFindPlayersPastLastPage() {
	s.seed()

	page, err := s.Storage.FindPlayers(s.Ctx, filter.Composite{}, storage.PageRequest{Number: 10, Size: 3})
	s.Require().NoError(err)
	s.Empty(page.Players)
	s.Equal(5, page.TotalItems)
	s.Equal(2, page.TotalPages)
}
