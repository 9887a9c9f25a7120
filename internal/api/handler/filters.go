package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/albapepper/squadgraph/internal/api/respond"
	"github.com/albapepper/squadgraph/internal/cache"
	"github.com/albapepper/squadgraph/internal/graph"
)

// FiltersResponse describes the selectable filter values.
type FiltersResponse struct {
	MinYear     int      `json:"min_year"`
	MaxYear     int      `json:"max_year"`
	DefaultYear int      `json:"default_year"`
	Clubs       []string `json:"clubs"`
}

// PlayersResponse lists the players eligible for a year and club set.
type PlayersResponse struct {
	Year    int                  `json:"year"`
	Clubs   []string             `json:"clubs"`
	Players []graph.PlayerOption `json:"players"`
}

// GetFilters returns the year bounds and the club list.
// @Summary Get filter values
// @Description Returns the year range of the dataset, the default (latest) year and every club name.
// @Tags filters
// @Produce json
// @Success 200 {object} FiltersResponse
// @Failure 503 {object} respond.ErrorResponse
// @Router /api/v1/filters [get]
func (h *Handler) GetFilters(w http.ResponseWriter, r *http.Request) {
	snap := h.live.Current()
	key := cacheKey(snap, "filters", "")
	if h.serveCached(w, r, key, cache.TTLFilters, false) {
		return
	}

	ds := snap.Engine.Dataset()
	lo, hi, ok := ds.YearBounds()
	if !ok {
		writeEngineError(w, graph.ErrEmptyDataset)
		return
	}
	data, err := json.Marshal(FiltersResponse{
		MinYear:     lo,
		MaxYear:     hi,
		DefaultYear: hi,
		Clubs:       ds.Clubs(),
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}
	etag := h.cache.Set(key, data, cache.TTLFilters)
	respond.WriteJSON(w, data, etag, cache.TTLFilters, false)
}

// GetPlayers returns the eligible players for a year and clubs.
// @Summary Get eligible players
// @Description Returns every player on a roster of a selected club in a match of the year, ordered by display name. Without club parameters all clubs are selected.
// @Tags filters
// @Produce json
// @Param year query int false "Season year (defaults to the latest year)"
// @Param club query []string false "Club name, repeatable" collectionFormat(multi)
// @Success 200 {object} PlayersResponse
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/players [get]
func (h *Handler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	snap := h.live.Current()
	year, ok := parseYear(w, r, snap.Engine)
	if !ok {
		return
	}
	clubs := parseClubs(r, snap.Engine)

	state := graph.FilterState{Year: year, Clubs: clubs}
	key := cacheKey(snap, "players", state.Key())
	ttl := h.graphTTL()
	if h.serveCached(w, r, key, ttl, false) {
		return
	}

	data, err := json.Marshal(PlayersResponse{
		Year:    year,
		Clubs:   graph.Sorted(clubs),
		Players: snap.Engine.Eligible(year, clubs),
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}
	etag := h.cache.Set(key, data, ttl)
	respond.WriteJSON(w, data, etag, ttl, false)
}

// --------------------------------------------------------------------------
// Query parsing
// --------------------------------------------------------------------------

// parseYear reads ?year=, defaulting to the latest year. It writes the
// error response itself and reports false on failure.
func parseYear(w http.ResponseWriter, r *http.Request, engine *graph.Engine) (int, bool) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		_, hi, ok := engine.Dataset().YearBounds()
		if !ok {
			writeEngineError(w, graph.ErrEmptyDataset)
			return 0, false
		}
		return hi, true
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_YEAR", "year must be an integer", raw)
		return 0, false
	}
	if err := engine.CheckYear(year); err != nil {
		writeEngineError(w, err)
		return 0, false
	}
	return year, true
}

// parseClubs reads repeated ?club= values. None means every club.
func parseClubs(r *http.Request, engine *graph.Engine) graph.Set[string] {
	values, present := r.URL.Query()["club"]
	if !present {
		return graph.NewSet(engine.Dataset().Clubs()...)
	}
	return graph.NewSet(values...)
}

// parsePlayers reads repeated ?player= ids. None means every eligible
// player for year and clubs.
func parsePlayers(w http.ResponseWriter, r *http.Request, engine *graph.Engine, year int, clubs graph.Set[string]) (graph.Set[int], bool) {
	values, present := r.URL.Query()["player"]
	if !present {
		return graph.EligiblePlayers(engine.Dataset(), year, clubs), true
	}
	players := make(graph.Set[int], len(values))
	for _, v := range values {
		id, err := strconv.Atoi(v)
		if err != nil {
			respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_PLAYER", "player must be an integer id", v)
			return nil, false
		}
		players.Add(id)
	}
	return players, true
}
