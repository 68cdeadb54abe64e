// Package filter builds storage-independent query constraints for players.
//
// Each named criterion produces a Constraint, which is either None (no
// restriction) or one atomic condition on a single field. All combines any
// number of them with logical AND into a Composite. Stores interpret the
// Composite; this package never executes queries itself, though Matches is
// provided for stores that filter in process.
package filter

import (
	"time"

	"golang.org/x/exp/constraints"

	"github.com/mcoot/playerbase/internal/model"
)

// Kind discriminates the Constraint variants
type Kind int

const (
	// KindNone contributes no restriction
	KindNone Kind = iota
	// KindEquals requires the field to equal Value
	KindEquals
	// KindContains requires the string field to contain Value (case-sensitive)
	KindContains
	// KindRange requires Lower <= field <= Upper; either bound may be nil
	KindRange
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindEquals:
		return "equals"
	case KindContains:
		return "contains"
	case KindRange:
		return "range"
	default:
		return "unknown"
	}
}

// Field names a filterable player attribute
type Field string

const (
	FieldName       Field = "name"
	FieldTitle      Field = "title"
	FieldRace       Field = "race"
	FieldProfession Field = "profession"
	FieldBanned     Field = "banned"
	FieldBirthday   Field = "birthday"
	FieldExperience Field = "experience"
	FieldLevel      Field = "level"
)

// Constraint is one atomic condition, or None.
//
// Value holds a string for name/title, model.Race, model.Profession or bool.
// Range bounds are int64; birthday bounds are Unix milliseconds.
type Constraint struct {
	Kind  Kind
	Field Field
	Value any
	Lower *int64
	Upper *int64
}

// None is the identity constraint
func None() Constraint {
	return Constraint{Kind: KindNone}
}

// IsNone reports whether c contributes no restriction
func (c Constraint) IsNone() bool {
	return c.Kind == KindNone
}

// ByName matches players whose name contains name
func ByName(name *string) Constraint {
	if name == nil {
		return None()
	}
	return Constraint{Kind: KindContains, Field: FieldName, Value: *name}
}

// ByTitle matches players whose title contains title
func ByTitle(title *string) Constraint {
	if title == nil {
		return None()
	}
	return Constraint{Kind: KindContains, Field: FieldTitle, Value: *title}
}

// ByRace matches players of exactly this race
func ByRace(race *model.Race) Constraint {
	if race == nil {
		return None()
	}
	return Constraint{Kind: KindEquals, Field: FieldRace, Value: *race}
}

// ByProfession matches players of exactly this profession
func ByProfession(profession *model.Profession) Constraint {
	if profession == nil {
		return None()
	}
	return Constraint{Kind: KindEquals, Field: FieldProfession, Value: *profession}
}

// ByBanned matches players whose banned flag equals banned
func ByBanned(banned *bool) Constraint {
	if banned == nil {
		return None()
	}
	return Constraint{Kind: KindEquals, Field: FieldBanned, Value: *banned}
}

// ByBirthday matches players born within [after, before]
func ByBirthday(after, before *time.Time) Constraint {
	return between(FieldBirthday, unixMilli(after), unixMilli(before))
}

// ByExperience matches players with experience within [min, max]
func ByExperience(min, max *int) Constraint {
	return between(FieldExperience, min, max)
}

// ByLevel matches players with level within [min, max]
func ByLevel(min, max *int) Constraint {
	return between(FieldLevel, min, max)
}

func between[T constraints.Integer](field Field, lower, upper *T) Constraint {
	if lower == nil && upper == nil {
		return None()
	}
	return Constraint{Kind: KindRange, Field: field, Lower: widen(lower), Upper: widen(upper)}
}

func widen[T constraints.Integer](v *T) *int64 {
	if v == nil {
		return nil
	}
	w := int64(*v)
	return &w
}

func unixMilli(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}
