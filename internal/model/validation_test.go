package model

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() PlayerInput {
	return PlayerInput{
		Name:       Some("Aragorn"),
		Title:      Some("Heir of Isildur"),
		Race:       Some(RaceHuman),
		Profession: Some(ProfessionWarrior),
		Birthday:   Some(time.Date(2010, 3, 1, 0, 0, 0, 0, time.UTC)),
		Experience: Some(1_000),
	}
}

func requireInvalid(t *testing.T, err error, field string) {
	t.Helper()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
	var ie *InvalidInputError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, field, ie.Field)
}

func TestValidateForCreateAcceptsValidInput(t *testing.T) {
	assert.NoError(t, ValidateForCreate(validInput()))
}

func TestValidateForCreateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *PlayerInput)
		field  string
	}{
		{"missing race", func(in *PlayerInput) { in.Race = None[Race]() }, "race"},
		{"unknown race", func(in *PlayerInput) { in.Race = Some(Race("DRAGON")) }, "race"},
		{"missing profession", func(in *PlayerInput) { in.Profession = None[Profession]() }, "profession"},
		{"unknown profession", func(in *PlayerInput) { in.Profession = Some(Profession("BARD")) }, "profession"},
		{"missing name", func(in *PlayerInput) { in.Name = None[string]() }, "name"},
		{"empty name", func(in *PlayerInput) { in.Name = Some("") }, "name"},
		{"long name", func(in *PlayerInput) { in.Name = Some(strings.Repeat("a", 13)) }, "name"},
		{"missing title", func(in *PlayerInput) { in.Title = None[string]() }, "title"},
		{"long title", func(in *PlayerInput) { in.Title = Some(strings.Repeat("t", 31)) }, "title"},
		{"missing experience", func(in *PlayerInput) { in.Experience = None[int]() }, "experience"},
		{"zero experience", func(in *PlayerInput) { in.Experience = Some(0) }, "experience"},
		{"too much experience", func(in *PlayerInput) { in.Experience = Some(MaxExperience + 1) }, "experience"},
		{"missing birthday", func(in *PlayerInput) { in.Birthday = None[time.Time]() }, "birthday"},
		{"birthday too early", func(in *PlayerInput) { in.Birthday = Some(MinBirthday.Add(-time.Millisecond)) }, "birthday"},
		{"birthday too late", func(in *PlayerInput) { in.Birthday = Some(MaxBirthday.Add(time.Millisecond)) }, "birthday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			requireInvalid(t, ValidateForCreate(in), tt.field)
		})
	}
}

func TestValidateForCreateAcceptsBounds(t *testing.T) {
	in := validInput()
	in.Name = Some(strings.Repeat("n", MaxNameLength))
	in.Title = Some("")
	in.Experience = Some(MinExperience)
	in.Birthday = Some(MinBirthday)
	assert.NoError(t, ValidateForCreate(in))

	in.Title = Some(strings.Repeat("t", MaxTitleLength))
	in.Experience = Some(MaxExperience)
	in.Birthday = Some(MaxBirthday)
	assert.NoError(t, ValidateForCreate(in))
}

func TestNewPlayerDefaultsBannedAndDerivesLevel(t *testing.T) {
	p, err := NewPlayer(validInput())
	require.NoError(t, err)

	assert.Equal(t, PlayerID(0), p.ID)
	assert.False(t, p.Banned)
	assert.Equal(t, 1_000, p.Experience())
	assert.Equal(t, DeriveLevel(1_000), p.Level())
	assert.Equal(t, DeriveUntilNextLevel(1_000, p.Level()), p.UntilNextLevel())
}

func TestNewPlayerKeepsExplicitBanned(t *testing.T) {
	in := validInput()
	in.Banned = Some(true)
	p, err := NewPlayer(in)
	require.NoError(t, err)
	assert.True(t, p.Banned)
}

func TestNewPlayerWithoutRaceFails(t *testing.T) {
	in := validInput()
	in.Race = None[Race]()
	_, err := NewPlayer(in)
	requireInvalid(t, err, "race")
}

func existingPlayer(t *testing.T) *Player {
	t.Helper()
	in := validInput()
	in.Banned = Some(true)
	p, err := NewPlayer(in)
	require.NoError(t, err)
	p.ID = 7
	return p
}

func TestValidateForUpdateExperienceOnly(t *testing.T) {
	existing := existingPlayer(t)

	merged, err := ValidateForUpdate(existing, PlayerInput{Experience: Some(600)})
	require.NoError(t, err)

	assert.Equal(t, existing.ID, merged.ID)
	assert.Equal(t, existing.Name, merged.Name)
	assert.Equal(t, existing.Title, merged.Title)
	assert.Equal(t, existing.Race, merged.Race)
	assert.Equal(t, existing.Profession, merged.Profession)
	assert.Equal(t, existing.Banned, merged.Banned)
	assert.Equal(t, existing.Birthday, merged.Birthday)
	assert.Equal(t, 600, merged.Experience())
	assert.Equal(t, 3, merged.Level())
	assert.Equal(t, 400, merged.UntilNextLevel())
}

func TestValidateForUpdateDoesNotMutateExisting(t *testing.T) {
	existing := existingPlayer(t)
	before := *existing

	_, err := ValidateForUpdate(existing, PlayerInput{Name: Some("Strider"), Experience: Some(600)})
	require.NoError(t, err)

	assert.Equal(t, before, *existing)
}

func TestValidateForUpdateWithoutExperienceKeepsDerivedFields(t *testing.T) {
	existing := existingPlayer(t)

	merged, err := ValidateForUpdate(existing, PlayerInput{Title: Some("King")})
	require.NoError(t, err)

	assert.Equal(t, "King", merged.Title)
	assert.Equal(t, existing.Level(), merged.Level())
	assert.Equal(t, existing.UntilNextLevel(), merged.UntilNextLevel())
}

func TestValidateForUpdateCopiesPresentFields(t *testing.T) {
	existing := existingPlayer(t)
	birthday := time.Date(2500, 1, 1, 0, 0, 0, 0, time.UTC)

	merged, err := ValidateForUpdate(existing, PlayerInput{
		Name:       Some("Legolas"),
		Title:      Some(""),
		Race:       Some(RaceElf),
		Profession: Some(ProfessionDruid),
		Birthday:   Some(birthday),
		Banned:     Some(false),
	})
	require.NoError(t, err)

	assert.Equal(t, "Legolas", merged.Name)
	assert.Equal(t, "", merged.Title)
	assert.Equal(t, RaceElf, merged.Race)
	assert.Equal(t, ProfessionDruid, merged.Profession)
	assert.Equal(t, birthday, merged.Birthday)
	assert.False(t, merged.Banned)
}

func TestValidateForUpdateRejectsBadBirthday(t *testing.T) {
	_, err := ValidateForUpdate(existingPlayer(t), PlayerInput{Birthday: Some(time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC))})
	requireInvalid(t, err, "birthday")
}

func TestValidateForUpdateRejectsBadExperience(t *testing.T) {
	_, err := ValidateForUpdate(existingPlayer(t), PlayerInput{Experience: Some(0)})
	requireInvalid(t, err, "experience")

	_, err = ValidateForUpdate(existingPlayer(t), PlayerInput{Experience: Some(MaxExperience + 1)})
	requireInvalid(t, err, "experience")
}

// Update keeps the historical behaviour of not re-checking name and title
// lengths; only create enforces them.
func TestValidateForUpdateAcceptsOverlongNameAndTitle(t *testing.T) {
	longName := strings.Repeat("n", MaxNameLength+5)
	longTitle := strings.Repeat("t", MaxTitleLength+5)

	merged, err := ValidateForUpdate(existingPlayer(t), PlayerInput{Name: Some(longName), Title: Some(longTitle)})
	require.NoError(t, err)
	assert.Equal(t, longName, merged.Name)
	assert.Equal(t, longTitle, merged.Title)
}

func TestValidateForUpdateIsIdempotent(t *testing.T) {
	patch := PlayerInput{Name: Some("Gimli"), Experience: Some(42_000), Banned: Some(false)}

	once, err := ValidateForUpdate(existingPlayer(t), patch)
	require.NoError(t, err)
	twice, err := ValidateForUpdate(once, patch)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestOptional(t *testing.T) {
	var absent Optional[int]
	assert.False(t, absent.IsSet())
	assert.Equal(t, 5, absent.Or(5))

	v := 3
	present := FromPtr(&v)
	got, ok := present.Get()
	assert.True(t, ok)
	assert.Equal(t, 3, got)
	assert.False(t, FromPtr[int](nil).IsSet())
}
