package request

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/mcoot/playerbase/internal/filter"
	"github.com/mcoot/playerbase/internal/model"
	"github.com/mcoot/playerbase/internal/storage"
)

// PlayerRequest is the request body for creating or patching a player.
// A missing or null field is absent.
type PlayerRequest struct {
	Name       *string `json:"name"`
	Title      *string `json:"title"`
	Race       *string `json:"race"`
	Profession *string `json:"profession"`
	Birthday   *int64  `json:"birthday"` // Unix milliseconds
	Experience *int    `json:"experience"`
	Banned     *bool   `json:"banned"`
}

// ToInput converts the body to a model.PlayerInput, rejecting unknown
// race and profession names
func (r PlayerRequest) ToInput() (model.PlayerInput, error) {
	in := model.PlayerInput{
		Name:       model.FromPtr(r.Name),
		Title:      model.FromPtr(r.Title),
		Experience: model.FromPtr(r.Experience),
		Banned:     model.FromPtr(r.Banned),
	}

	if r.Race != nil {
		race, err := ParseRace(*r.Race)
		if err != nil {
			return model.PlayerInput{}, err
		}
		in.Race = model.Some(race)
	}
	if r.Profession != nil {
		profession, err := ParseProfession(*r.Profession)
		if err != nil {
			return model.PlayerInput{}, err
		}
		in.Profession = model.Some(profession)
	}
	if r.Birthday != nil {
		in.Birthday = model.Some(time.UnixMilli(*r.Birthday).UTC())
	}
	return in, nil
}

// ParseRace parses an exact race name
func ParseRace(s string) (model.Race, error) {
	race := model.Race(s)
	if !race.Valid() {
		return "", model.NewInvalidInputError("race", fmt.Sprintf("unknown value %q", s))
	}
	return race, nil
}

// ParseProfession parses an exact profession name
func ParseProfession(s string) (model.Profession, error) {
	profession := model.Profession(s)
	if !profession.Valid() {
		return "", model.NewInvalidInputError("profession", fmt.Sprintf("unknown value %q", s))
	}
	return profession, nil
}

// PlayerQuery holds the parsed query string of a player search
type PlayerQuery struct {
	Criteria filter.Criteria
	Page     storage.PageRequest
}

// ParsePlayerQuery reads filter criteria and paging from q.
// Missing parameters are left unset; paging defaults apply later.
func ParsePlayerQuery(q url.Values) (PlayerQuery, error) {
	var (
		pq  PlayerQuery
		err error
	)
	c := &pq.Criteria

	c.Name = stringParam(q, "name")
	c.Title = stringParam(q, "title")

	if s := q.Get("race"); s != "" {
		race, err := ParseRace(s)
		if err != nil {
			return PlayerQuery{}, err
		}
		c.Race = &race
	}
	if s := q.Get("profession"); s != "" {
		profession, err := ParseProfession(s)
		if err != nil {
			return PlayerQuery{}, err
		}
		c.Profession = &profession
	}

	if c.After, err = timeParam(q, "after"); err != nil {
		return PlayerQuery{}, err
	}
	if c.Before, err = timeParam(q, "before"); err != nil {
		return PlayerQuery{}, err
	}
	if s := q.Get("banned"); s != "" {
		banned, err := strconv.ParseBool(s)
		if err != nil {
			return PlayerQuery{}, fmt.Errorf("banned: %w", err)
		}
		c.Banned = &banned
	}
	if c.MinExperience, err = intParam(q, "minExperience"); err != nil {
		return PlayerQuery{}, err
	}
	if c.MaxExperience, err = intParam(q, "maxExperience"); err != nil {
		return PlayerQuery{}, err
	}
	if c.MinLevel, err = intParam(q, "minLevel"); err != nil {
		return PlayerQuery{}, err
	}
	if c.MaxLevel, err = intParam(q, "maxLevel"); err != nil {
		return PlayerQuery{}, err
	}

	pq.Page = storage.DefaultPageRequest()
	if s := q.Get("order"); s != "" {
		if pq.Page.Order, err = storage.ParseOrder(s); err != nil {
			return PlayerQuery{}, err
		}
	}
	if n, err := intParam(q, "pageNumber"); err != nil {
		return PlayerQuery{}, err
	} else if n != nil {
		pq.Page.Number = *n
	}
	if n, err := intParam(q, "pageSize"); err != nil {
		return PlayerQuery{}, err
	} else if n != nil {
		pq.Page.Size = *n
	}

	return pq, nil
}

func stringParam(q url.Values, key string) *string {
	if !q.Has(key) {
		return nil
	}
	v := q.Get(key)
	return &v
}

func intParam(q url.Values, key string) (*int, error) {
	s := q.Get(key)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%s: not an integer", key)
	}
	return &n, nil
}

func timeParam(q url.Values, key string) (*time.Time, error) {
	s := q.Get(key)
	if s == "" {
		return nil, nil
	}
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s: not a millisecond timestamp", key)
	}
	t := time.UnixMilli(ms).UTC()
	return &t, nil
}
