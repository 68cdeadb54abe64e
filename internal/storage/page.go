package storage

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/mcoot/playerbase/internal/model"
)

// Order selects the attribute a page is sorted by (ascending, ties by ID)
type Order string

const (
	OrderID         Order = "ID"
	OrderName       Order = "NAME"
	OrderExperience Order = "EXPERIENCE"
	OrderBirthday   Order = "BIRTHDAY"
	OrderLevel      Order = "LEVEL"
)

// Paging defaults
const (
	DefaultPageSize = 3
	MaxPageSize     = 1000
)

// ParseOrder parses an order name case-insensitively
func ParseOrder(s string) (Order, error) {
	o := Order(strings.ToUpper(s))
	switch o {
	case OrderID, OrderName, OrderExperience, OrderBirthday, OrderLevel:
		return o, nil
	default:
		return "", fmt.Errorf("unknown order %q", s)
	}
}

// PageRequest selects one page of results
type PageRequest struct {
	Number int // zero-based
	Size   int
	Order  Order
}

// DefaultPageRequest returns the first page with default size ordered by ID
func DefaultPageRequest() PageRequest {
	return PageRequest{Number: 0, Size: DefaultPageSize, Order: OrderID}
}

// Normalize fills defaults and clamps out-of-range values
func (r PageRequest) Normalize() PageRequest {
	if r.Number < 0 {
		r.Number = 0
	}
	if r.Size <= 0 {
		r.Size = DefaultPageSize
	}
	if r.Size > MaxPageSize {
		r.Size = MaxPageSize
	}
	if r.Order == "" {
		r.Order = OrderID
	}
	return r
}

// Offset returns the index of the first item on the page
func (r PageRequest) Offset() int {
	return r.Number * r.Size
}

// Page is one page of query results
type Page struct {
	Players    []*model.Player
	Number     int
	Size       int
	TotalItems int
	TotalPages int
}

// NewPage builds a Page from its items and the total match count
func NewPage(players []*model.Player, req PageRequest, total int) *Page {
	pages := 0
	if req.Size > 0 {
		pages = (total + req.Size - 1) / req.Size
	}
	if players == nil {
		players = []*model.Player{}
	}
	return &Page{
		Players:    players,
		Number:     req.Number,
		Size:       req.Size,
		TotalItems: total,
		TotalPages: pages,
	}
}

// SortPlayers sorts players in place by order, breaking ties by ID
func SortPlayers(players []*model.Player, order Order) {
	slices.SortStableFunc(players, func(a, b *model.Player) int {
		var c int
		switch order {
		case OrderName:
			c = strings.Compare(a.Name, b.Name)
		case OrderExperience:
			c = cmp.Compare(a.Experience(), b.Experience())
		case OrderBirthday:
			c = a.Birthday.Compare(b.Birthday)
		case OrderLevel:
			c = cmp.Compare(a.Level(), b.Level())
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

// Paginate sorts matched and cuts out the requested page.
// It is shared by backends that filter in process.
func Paginate(matched []*model.Player, req PageRequest) *Page {
	req = req.Normalize()
	SortPlayers(matched, req.Order)

	total := len(matched)
	start := total
	if req.Number <= total/req.Size {
		start = min(req.Offset(), total)
	}
	end := min(start+req.Size, total)
	return NewPage(matched[start:end], req, total)
}
