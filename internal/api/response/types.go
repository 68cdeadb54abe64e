package response

import (
	"github.com/mcoot/playerbase/internal/model"
	"github.com/mcoot/playerbase/internal/storage"
)

// Player represents a player in API responses
type Player struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Title          string `json:"title"`
	Race           string `json:"race"`
	Profession     string `json:"profession"`
	Birthday       int64  `json:"birthday"`
	Banned         bool   `json:"banned"`
	Experience     int    `json:"experience"`
	Level          int    `json:"level"`
	UntilNextLevel int    `json:"untilNextLevel"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:             int64(p.ID),
		Name:           p.Name,
		Title:          p.Title,
		Race:           string(p.Race),
		Profession:     string(p.Profession),
		Birthday:       p.Birthday.UnixMilli(),
		Banned:         p.Banned,
		Experience:     p.Experience(),
		Level:          p.Level(),
		UntilNextLevel: p.UntilNextLevel(),
	}
}

// PlayersFromModel converts a slice of players
func PlayersFromModel(players []*model.Player) []Player {
	out := make([]Player, len(players))
	for i, p := range players {
		out[i] = PlayerFromModel(p)
	}
	return out
}

// Page is one page of players
type Page struct {
	Players    []Player `json:"players"`
	PageNumber int      `json:"pageNumber"`
	PageSize   int      `json:"pageSize"`
	TotalItems int      `json:"totalItems"`
	TotalPages int      `json:"totalPages"`
}

// PageFromStorage converts a storage.Page
func PageFromStorage(p *storage.Page) Page {
	return Page{
		Players:    PlayersFromModel(p.Players),
		PageNumber: p.Number,
		PageSize:   p.Size,
		TotalItems: p.TotalItems,
		TotalPages: p.TotalPages,
	}
}

// Count is the response for count queries
type Count struct {
	Count int `json:"count"`
}

// Health is the response for the health check
type Health struct {
	Status  string `json:"status"`
	Storage string `json:"storage,omitempty"`
}
