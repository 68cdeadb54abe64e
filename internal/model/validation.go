package model

import (
	"time"
	"unicode/utf8"
)

// Validation bounds
const (
	MaxNameLength  = 12
	MaxTitleLength = 30
	MinExperience  = 1
	MaxExperience  = 10_000_000
)

// Birthday bounds, inclusive
var (
	MinBirthday = time.UnixMilli(946674000482).UTC()
	MaxBirthday = time.UnixMilli(32535205199494).UTC()
)

// PlayerInput carries caller-supplied player fields. Each field is
// independently present or absent. It is the candidate for a create and the
// patch for an update. There is no way to supply level or untilNextLevel.
type PlayerInput struct {
	Name       Optional[string]
	Title      Optional[string]
	Race       Optional[Race]
	Profession Optional[Profession]
	Birthday   Optional[time.Time]
	Experience Optional[int]
	Banned     Optional[bool]
}

// ValidateForCreate checks that candidate describes a complete valid player
func ValidateForCreate(candidate PlayerInput) error {
	race, ok := candidate.Race.Get()
	if !ok {
		return invalid("race", "is required")
	}
	if !race.Valid() {
		return invalid("race", "unknown value "+string(race))
	}

	profession, ok := candidate.Profession.Get()
	if !ok {
		return invalid("profession", "is required")
	}
	if !profession.Valid() {
		return invalid("profession", "unknown value "+string(profession))
	}

	name, ok := candidate.Name.Get()
	if !ok {
		return invalid("name", "is required")
	}
	if err := validateName(name); err != nil {
		return err
	}

	title, ok := candidate.Title.Get()
	if !ok {
		return invalid("title", "is required")
	}
	if err := validateTitle(title); err != nil {
		return err
	}

	experience, ok := candidate.Experience.Get()
	if !ok {
		return invalid("experience", "is required")
	}
	if err := validateExperience(experience); err != nil {
		return err
	}

	birthday, ok := candidate.Birthday.Get()
	if !ok {
		return invalid("birthday", "is required")
	}
	return validateBirthday(birthday)
}

// NewPlayer validates candidate and builds an unsaved Player with derived
// fields computed and banned defaulting to false.
func NewPlayer(candidate PlayerInput) (*Player, error) {
	if err := ValidateForCreate(candidate); err != nil {
		return nil, err
	}

	p := &Player{
		Name:       candidate.Name.Or(""),
		Title:      candidate.Title.Or(""),
		Race:       candidate.Race.Or(""),
		Profession: candidate.Profession.Or(""),
		Birthday:   candidate.Birthday.Or(time.Time{}),
		Banned:     candidate.Banned.Or(false),
	}
	p.SetExperience(candidate.Experience.Or(0))
	return p, nil
}

// ValidateForUpdate merges patch onto a copy of existing. Absent fields keep
// their current value. Birthday and experience are range-checked when
// present; a new experience recomputes level and untilNextLevel.
//
// Name and title are copied as given without length checks, matching the
// long-standing update behaviour. Only create enforces their bounds.
//
// existing is never modified; on error nothing is merged.
func ValidateForUpdate(existing *Player, patch PlayerInput) (*Player, error) {
	merged := existing.Clone()

	if birthday, ok := patch.Birthday.Get(); ok {
		if err := validateBirthday(birthday); err != nil {
			return nil, err
		}
		merged.Birthday = birthday
	}
	if experience, ok := patch.Experience.Get(); ok {
		if err := validateExperience(experience); err != nil {
			return nil, err
		}
		merged.SetExperience(experience)
	}

	merged.Name = patch.Name.Or(merged.Name)
	merged.Title = patch.Title.Or(merged.Title)
	merged.Race = patch.Race.Or(merged.Race)
	merged.Profession = patch.Profession.Or(merged.Profession)
	merged.Banned = patch.Banned.Or(merged.Banned)

	return merged, nil
}

func validateName(name string) error {
	if name == "" {
		return invalid("name", "must not be empty")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return invalid("name", "must be at most 12 characters")
	}
	return nil
}

func validateTitle(title string) error {
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return invalid("title", "must be at most 30 characters")
	}
	return nil
}

func validateExperience(experience int) error {
	if experience < MinExperience || experience > MaxExperience {
		return invalid("experience", "must be between 1 and 10000000")
	}
	return nil
}

func validateBirthday(birthday time.Time) error {
	if birthday.Before(MinBirthday) || birthday.After(MaxBirthday) {
		return invalid("birthday", "must be between year 2000 and year 3000")
	}
	return nil
}
