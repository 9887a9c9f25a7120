package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/albapepper/squadgraph/internal/api/respond"
	"github.com/albapepper/squadgraph/internal/graph"
	"github.com/albapepper/squadgraph/internal/render"
)

const maxGraphBody = 1 << 20

// GraphRequest is the filter state posted to /graph.
type GraphRequest struct {
	Year    int      `json:"year"`
	Clubs   []string `json:"clubs"`
	Players []int    `json:"players"`
}

// PostGraph computes the co-appearance graph for a filter state.
// @Summary Compute graph
// @Description Counts, for one year, how many matches each pair of selected players shared a combined roster of selected clubs. Only pairs that appeared together at least once are returned.
// @Tags graph
// @Accept json
// @Produce json
// @Param request body GraphRequest true "Filter state"
// @Success 200 {object} graph.Graph
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/graph [post]
func (h *Handler) PostGraph(w http.ResponseWriter, r *http.Request) {
	var req GraphRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxGraphBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be a filter state", err.Error())
		return
	}
	snap := h.live.Current()
	if err := snap.Engine.CheckYear(req.Year); err != nil {
		writeEngineError(w, err)
		return
	}
	h.serveGraph(w, r, snap, graph.NewFilterState(req.Year, req.Clubs, req.Players))
}

// GetGraphView renders the graph as an interactive HTML chart.
// @Summary Render graph
// @Description Renders the co-appearance graph as an HTML page. Without club parameters all clubs are selected; without player parameters all eligible players are selected.
// @Tags graph
// @Produce html
// @Param year query int false "Season year (defaults to the latest year)"
// @Param club query []string false "Club name, repeatable" collectionFormat(multi)
// @Param player query []int false "Player id, repeatable" collectionFormat(multi)
// @Success 200 {string} string "HTML page"
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/graph/view [get]
func (h *Handler) GetGraphView(w http.ResponseWriter, r *http.Request) {
	snap := h.live.Current()
	year, ok := parseYear(w, r, snap.Engine)
	if !ok {
		return
	}
	clubs := parseClubs(r, snap.Engine)
	players, ok := parsePlayers(w, r, snap.Engine, year, clubs)
	if !ok {
		return
	}
	state := graph.FilterState{Year: year, Clubs: clubs, Players: players}

	key := cacheKey(snap, "view", state.Key())
	ttl := h.graphTTL()
	if h.serveCached(w, r, key, ttl, true) {
		return
	}

	page, err := render.HTMLBytes(snap.Engine.OnFilterChanged(state), h.cfg.Render)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	etag := h.cache.Set(key, page, ttl)
	respond.WriteHTML(w, page, etag, ttl, false)
}

func (h *Handler) serveGraph(w http.ResponseWriter, r *http.Request, snap *graph.Snapshot, state graph.FilterState) {
	key := cacheKey(snap, "graph", state.Key())
	ttl := h.graphTTL()
	if h.serveCached(w, r, key, ttl, false) {
		return
	}

	data, err := json.Marshal(snap.Engine.OnFilterChanged(state))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	etag := h.cache.Set(key, data, ttl)
	respond.WriteJSON(w, data, etag, ttl, false)
}
