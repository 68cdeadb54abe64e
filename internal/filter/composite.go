package filter

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/mcoot/playerbase/internal/model"
)

// Composite is the AND of zero or more atomic constraints.
// The zero value matches every player.
type Composite struct {
	constraints []Constraint
}

// All AND-combines constraints. None constraints are dropped and the rest are
// kept in a canonical order, so the result does not depend on argument order.
func All(constraints ...Constraint) Composite {
	kept := make([]Constraint, 0, len(constraints))
	for _, c := range constraints {
		if !c.IsNone() {
			kept = append(kept, c)
		}
	}
	slices.SortFunc(kept, func(a, b Constraint) int {
		return cmp.Compare(a.sortKey(), b.sortKey())
	})
	return Composite{constraints: kept}
}

// Constraints returns the atomic constraints in canonical order
func (c Composite) Constraints() []Constraint {
	return slices.Clone(c.constraints)
}

// IsUniversal reports whether c matches every player
func (c Composite) IsUniversal() bool {
	return len(c.constraints) == 0
}

// Equal reports whether both composites impose the same constraints
func (c Composite) Equal(other Composite) bool {
	return slices.EqualFunc(c.constraints, other.constraints, func(a, b Constraint) bool {
		return a.sortKey() == b.sortKey()
	})
}

func (c Composite) String() string {
	if c.IsUniversal() {
		return "all"
	}
	parts := make([]string, len(c.constraints))
	for i, con := range c.constraints {
		parts[i] = con.sortKey()
	}
	return strings.Join(parts, " AND ")
}

// Matches reports whether p satisfies every constraint in c
func (c Composite) Matches(p *model.Player) bool {
	for _, con := range c.constraints {
		if !con.Matches(p) {
			return false
		}
	}
	return true
}

// Matches reports whether p satisfies c. None matches everything.
func (c Constraint) Matches(p *model.Player) bool {
	switch c.Kind {
	case KindNone:
		return true
	case KindEquals:
		return fieldValue(p, c.Field) == c.Value
	case KindContains:
		s, _ := fieldValue(p, c.Field).(string)
		sub, _ := c.Value.(string)
		return strings.Contains(s, sub)
	case KindRange:
		v, ok := fieldNumber(p, c.Field)
		if !ok {
			return false
		}
		if c.Lower != nil && v < *c.Lower {
			return false
		}
		if c.Upper != nil && v > *c.Upper {
			return false
		}
		return true
	default:
		return false
	}
}

func (c Constraint) sortKey() string {
	return fmt.Sprintf("%s %s %v %s %s", c.Field, c.Kind, c.Value, bound(c.Lower), bound(c.Upper))
}

func bound(v *int64) string {
	if v == nil {
		return "*"
	}
	return fmt.Sprint(*v)
}

func fieldValue(p *model.Player, f Field) any {
	switch f {
	case FieldName:
		return p.Name
	case FieldTitle:
		return p.Title
	case FieldRace:
		return p.Race
	case FieldProfession:
		return p.Profession
	case FieldBanned:
		return p.Banned
	default:
		return nil
	}
}

func fieldNumber(p *model.Player, f Field) (int64, bool) {
	switch f {
	case FieldBirthday:
		return p.Birthday.UnixMilli(), true
	case FieldExperience:
		return int64(p.Experience()), true
	case FieldLevel:
		return int64(p.Level()), true
	default:
		return 0, false
	}
}

// Criteria holds every optional filter input of a player query.
// Nil fields contribute no restriction.
type Criteria struct {
	Name          *string
	Title         *string
	Race          *model.Race
	Profession    *model.Profession
	After         *time.Time
	Before        *time.Time
	Banned        *bool
	MinExperience *int
	MaxExperience *int
	MinLevel      *int
	MaxLevel      *int
}

// Composite builds the AND of all criteria that are set
func (c Criteria) Composite() Composite {
	return All(
		ByName(c.Name),
		ByTitle(c.Title),
		ByRace(c.Race),
		ByProfession(c.Profession),
		ByBirthday(c.After, c.Before),
		ByBanned(c.Banned),
		ByExperience(c.MinExperience, c.MaxExperience),
		ByLevel(c.MinLevel, c.MaxLevel),
	)
}
