package sqlite

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/mcoot/playerbase/internal/filter"
	"github.com/mcoot/playerbase/internal/model"
	"github.com/mcoot/playerbase/internal/storage"
)

var columns = map[filter.Field]string{
	filter.FieldName:       "name",
	filter.FieldTitle:      "title",
	filter.FieldRace:       "race",
	filter.FieldProfession: "profession",
	filter.FieldBanned:     "banned",
	filter.FieldBirthday:   "birthday",
	filter.FieldExperience: "experience",
	filter.FieldLevel:      "level",
}

var orderColumns = map[storage.Order]string{
	storage.OrderID:         "id",
	storage.OrderName:       "name",
	storage.OrderExperience: "experience",
	storage.OrderBirthday:   "birthday",
	storage.OrderLevel:      "level",
}

// whereComposite returns a scope adding one WHERE clause per constraint.
// Substring matching uses instr() because LIKE ignores ASCII case in SQLite.
func whereComposite(c filter.Composite) (func(*gorm.DB) *gorm.DB, error) {
	clauses := make([]func(*gorm.DB) *gorm.DB, 0, len(c.Constraints()))
	for _, con := range c.Constraints() {
		col, ok := columns[con.Field]
		if !ok {
			return nil, fmt.Errorf("unsupported filter field %q", con.Field)
		}

		switch con.Kind {
		case filter.KindEquals:
			v := sqlValue(con.Value)
			clauses = append(clauses, func(db *gorm.DB) *gorm.DB {
				return db.Where(col+" = ?", v)
			})
		case filter.KindContains:
			v := con.Value
			clauses = append(clauses, func(db *gorm.DB) *gorm.DB {
				return db.Where("instr("+col+", ?) > 0", v)
			})
		case filter.KindRange:
			lower, upper := con.Lower, con.Upper
			clauses = append(clauses, func(db *gorm.DB) *gorm.DB {
				switch {
				case lower != nil && upper != nil:
					return db.Where(col+" BETWEEN ? AND ?", *lower, *upper)
				case lower != nil:
					return db.Where(col+" >= ?", *lower)
				case upper != nil:
					return db.Where(col+" <= ?", *upper)
				default:
					return db
				}
			})
		case filter.KindNone:
		default:
			return nil, fmt.Errorf("unsupported filter kind %s", con.Kind)
		}
	}

	return func(db *gorm.DB) *gorm.DB {
		for _, apply := range clauses {
			db = apply(db)
		}
		return db
	}, nil
}

func sqlValue(v any) any {
	switch t := v.(type) {
	case model.Race:
		return string(t)
	case model.Profession:
		return string(t)
	default:
		return v
	}
}

func orderBy(o storage.Order) string {
	col, ok := orderColumns[o]
	if !ok || col == "id" {
		return "id"
	}
	return col + ", id"
}
