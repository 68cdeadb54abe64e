package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/playerbase/internal/api/request"
	"github.com/mcoot/playerbase/internal/api/response"
	"github.com/mcoot/playerbase/internal/model"
	"github.com/mcoot/playerbase/internal/services/players"
)

// PlayerHandler handles player-related endpoints
type PlayerHandler struct {
	players *players.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(players *players.Service) *PlayerHandler {
	return &PlayerHandler{
		players: players,
	}
}

// List handles GET /api/v1/players
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	page, err := h.players.FindPlayers(r.Context(), q.Criteria.Composite(), q.Page)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PageFromStorage(page))
}

// Count handles GET /api/v1/players/count
func (h *PlayerHandler) Count(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	n, err := h.players.CountPlayers(r.Context(), q.Criteria.Composite())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Count{Count: n})
}

// Create handles POST /api/v1/players
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, err := decodePlayerInput(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	player, err := h.players.CreatePlayer(r.Context(), in)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// Get handles GET /api/v1/players/{id}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	player, err := h.players.FindPlayerByID(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// Update handles PATCH and POST /api/v1/players/{id}
func (h *PlayerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	patch, err := decodePlayerInput(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	player, err := h.players.UpdatePlayer(r.Context(), id, patch)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// Delete handles DELETE /api/v1/players/{id}
func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.players.DeletePlayer(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// parseID reads the {id} path variable. Anything that is not an int64 is
// rejected the same way as a non-positive id.
func parseID(r *http.Request) (model.PlayerID, error) {
	n, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, model.NewInvalidInputError("id", "must be a positive integer")
	}
	id := model.PlayerID(n)
	if err := players.ValidateID(id); err != nil {
		return 0, err
	}
	return id, nil
}

func parseQuery(r *http.Request) (request.PlayerQuery, error) {
	q, err := request.ParsePlayerQuery(r.URL.Query())
	if err != nil && !errors.Is(err, model.ErrInvalidInput) {
		return q, NewInvalidRequestError(err.Error())
	}
	return q, err
}

func decodePlayerInput(r *http.Request) (model.PlayerInput, error) {
	var req request.PlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return model.PlayerInput{}, NewInvalidRequestError("invalid request body")
	}
	return req.ToInput()
}
