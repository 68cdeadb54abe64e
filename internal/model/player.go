package model

import "time"

// PlayerID uniquely identifies a stored player. Zero means "not yet saved".
type PlayerID int64

// Race is the closed set of player races
type Race string

const (
	RaceHuman  Race = "HUMAN"
	RaceDwarf  Race = "DWARF"
	RaceElf    Race = "ELF"
	RaceGiant  Race = "GIANT"
	RaceOrc    Race = "ORC"
	RaceTroll  Race = "TROLL"
	RaceHobbit Race = "HOBBIT"
)

// Races lists every valid Race
var Races = []Race{RaceHuman, RaceDwarf, RaceElf, RaceGiant, RaceOrc, RaceTroll, RaceHobbit}

// Valid reports whether r is a member of Races
func (r Race) Valid() bool {
	for _, v := range Races {
		if r == v {
			return true
		}
	}
	return false
}

// Profession is the closed set of player professions
type Profession string

const (
	ProfessionWarrior  Profession = "WARRIOR"
	ProfessionRogue    Profession = "ROGUE"
	ProfessionSorcerer Profession = "SORCERER"
	ProfessionCleric   Profession = "CLERIC"
	ProfessionPaladin  Profession = "PALADIN"
	ProfessionNazgul   Profession = "NAZGUL"
	ProfessionWarlock  Profession = "WARLOCK"
	ProfessionDruid    Profession = "DRUID"
)

// Professions lists every valid Profession
var Professions = []Profession{
	ProfessionWarrior, ProfessionRogue, ProfessionSorcerer, ProfessionCleric,
	ProfessionPaladin, ProfessionNazgul, ProfessionWarlock, ProfessionDruid,
}

// Valid reports whether p is a member of Professions
func (p Profession) Valid() bool {
	for _, v := range Professions {
		if p == v {
			return true
		}
	}
	return false
}

// Player is a stored game character.
//
// Experience is the source of truth for Level and UntilNextLevel. The three
// are unexported and can only change together through SetExperience, so a
// Player obtained from NewPlayer, ValidateForUpdate or a store is always
// internally consistent.
type Player struct {
	ID         PlayerID
	Name       string
	Title      string
	Race       Race
	Profession Profession
	Birthday   time.Time
	Banned     bool

	experience     int
	level          int
	untilNextLevel int
}

// Experience returns the player's raw experience
func (p *Player) Experience() int {
	return p.experience
}

// Level returns the level derived from experience
func (p *Player) Level() int {
	return p.level
}

// UntilNextLevel returns the experience still needed for the next level
func (p *Player) UntilNextLevel() int {
	return p.untilNextLevel
}

// SetExperience stores experience and recomputes both derived fields.
// It does not range-check; callers validate first.
func (p *Player) SetExperience(experience int) {
	p.experience = experience
	p.level = DeriveLevel(experience)
	p.untilNextLevel = DeriveUntilNextLevel(experience, p.level)
}

// Clone returns a copy that shares no state with p
func (p *Player) Clone() *Player {
	cp := *p
	return &cp
}
