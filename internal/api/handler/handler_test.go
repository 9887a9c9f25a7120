package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/squadgraph/internal/api/respond"
	"github.com/albapepper/squadgraph/internal/cache"
	"github.com/albapepper/squadgraph/internal/config"
	"github.com/albapepper/squadgraph/internal/dataset"
	"github.com/albapepper/squadgraph/internal/graph"
)

func team(club string, players ...int) dataset.TeamEntry {
	return dataset.TeamEntry{ClubName: club, Players: players}
}

func newHandler(t *testing.T) *Handler {
	t.Helper()
	ds := dataset.New([]dataset.Match{
		{ID: "1", Date: "2019-05-01", Year: 2019, Home: team("Barcelona", 1, 2), Away: team("Real Madrid", 3)},
		{ID: "2", Date: "2020-02-01", Year: 2020, Home: team("Barcelona", 1, 2, 4), Away: team("Real Madrid", 3)},
		{ID: "3", Date: "2020-03-01", Year: 2020, Home: team("Barcelona", 1, 2), Away: team("Juventus", 5)},
	})
	dir := dataset.NewPlayerDirectory(map[int]string{1: "Messi", 2: "Busquets", 3: "Ramos"})
	c := cache.New(true)
	t.Cleanup(c.Close)
	cfg := &config.Config{DataSource: config.SourceFile, Render: config.DefaultRenderConfig()}
	return New(graph.NewLive(graph.NewEngine(ds, dir)), c, cfg, nil)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) respond.ErrorResponse {
	t.Helper()
	var resp respond.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestGetFilters(t *testing.T) {
	h := newHandler(t)

	rec := httptest.NewRecorder()
	h.GetFilters(rec, httptest.NewRequest(http.MethodGet, "/api/v1/filters", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))

	var resp FiltersResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, FiltersResponse{
		MinYear: 2019, MaxYear: 2020, DefaultYear: 2020,
		Clubs: []string{"Barcelona", "Juventus", "Real Madrid"},
	}, resp)

	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/filters", nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	h.GetFilters(rec, req)
	assert.Equal(t, http.StatusNotModified, rec.Code)
}

func TestGetPlayers(t *testing.T) {
	h := newHandler(t)

	rec := httptest.NewRecorder()
	h.GetPlayers(rec, httptest.NewRequest(http.MethodGet, "/api/v1/players?year=2020&club=Juventus", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp PlayersResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2020, resp.Year)
	assert.Equal(t, []string{"Juventus"}, resp.Clubs)
	assert.Equal(t, []graph.PlayerOption{{ID: 5, Label: "ID: 5"}}, resp.Players)

	rec = httptest.NewRecorder()
	h.GetPlayers(rec, httptest.NewRequest(http.MethodGet, "/api/v1/players", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2020, resp.Year, "year defaults to the latest")
	assert.Len(t, resp.Players, 5)
}

func TestGetPlayers_BadYear(t *testing.T) {
	h := newHandler(t)

	tests := []struct {
		name  string
		query string
	}{
		{name: "not a number", query: "year=abc"},
		{name: "before range", query: "year=2018"},
		{name: "after range", query: "year=2021"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.GetPlayers(rec, httptest.NewRequest(http.MethodGet, "/api/v1/players?"+tt.query, nil))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "INVALID_YEAR", decodeError(t, rec).Error.Code)
		})
	}
}

func TestPostGraph(t *testing.T) {
	h := newHandler(t)

	body := `{"year": 2020, "clubs": ["Barcelona", "Real Madrid"], "players": [1, 2, 3]}`
	rec := httptest.NewRecorder()
	h.PostGraph(rec, httptest.NewRequest(http.MethodPost, "/api/v1/graph", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	var g graph.Graph
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &g))
	assert.Equal(t, 2020, g.Year)
	assert.Equal(t, []graph.Node{{ID: 1, Label: "Messi"}, {ID: 2, Label: "Busquets"}, {ID: 3, Label: "Ramos"}}, g.Nodes)
	assert.Equal(t, []graph.Edge{
		{Source: 1, Target: 2, Weight: 2},
		{Source: 1, Target: 3, Weight: 1},
		{Source: 2, Target: 3, Weight: 1},
	}, g.Edges)

	// Same state in another order hits the cache.
	body = `{"year": 2020, "clubs": ["Real Madrid", "Barcelona"], "players": [3, 2, 1]}`
	rec = httptest.NewRecorder()
	h.PostGraph(rec, httptest.NewRequest(http.MethodPost, "/api/v1/graph", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
}

func TestPostGraph_Errors(t *testing.T) {
	h := newHandler(t)

	tests := []struct {
		name string
		body string
		code string
	}{
		{name: "malformed", body: `{"year":`, code: "INVALID_BODY"},
		{name: "unknown field", body: `{"year": 2020, "season": 1}`, code: "INVALID_BODY"},
		{name: "year out of range", body: `{"year": 1999}`, code: "INVALID_YEAR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.PostGraph(rec, httptest.NewRequest(http.MethodPost, "/api/v1/graph", strings.NewReader(tt.body)))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.code, decodeError(t, rec).Error.Code)
		})
	}
}

func TestGetGraphView(t *testing.T) {
	h := newHandler(t)

	rec := httptest.NewRecorder()
	h.GetGraphView(rec, httptest.NewRequest(http.MethodGet, "/api/v1/graph/view?year=2019", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Messi")

	rec = httptest.NewRecorder()
	h.GetGraphView(rec, httptest.NewRequest(http.MethodGet, "/api/v1/graph/view?player=x", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_PLAYER", decodeError(t, rec).Error.Code)
}

func TestHealthCheckDB_NoPool(t *testing.T) {
	h := newHandler(t)

	rec := httptest.NewRecorder()
	h.HealthCheckDB(rec, httptest.NewRequest(http.MethodGet, "/health/db", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestPostGraph_AfterReload(t *testing.T) {
	h := newHandler(t)
	state := graph.NewFilterState(2020, []string{"Barcelona"}, []int{1, 2})
	post := func() *httptest.ResponseRecorder {
		body := `{"year": 2020, "clubs": ["Barcelona"], "players": [1, 2]}`
		rec := httptest.NewRecorder()
		h.PostGraph(rec, httptest.NewRequest(http.MethodPost, "/api/v1/graph", strings.NewReader(body)))
		require.Equal(t, http.StatusOK, rec.Code)
		return rec
	}

	rec := post()
	var g graph.Graph
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &g))
	assert.Equal(t, []graph.Edge{{Source: 1, Target: 2, Weight: 2}}, g.Edges)
	before := rec.Header().Get("ETag")

	// A request that read the old snapshot finishes after the reload
	// cleared the cache and stores its result.
	old := h.live.Current()
	h.live.Swap(graph.NewEngine(dataset.New([]dataset.Match{
		{ID: "9", Date: "2020-05-05", Year: 2020, Home: team("Barcelona", 1, 2), Away: team("Sevilla", 7)},
	}), nil))
	h.cache.Clear()
	h.cache.Set(cacheKey(old, "graph", state.Key()), rec.Body.Bytes(), time.Hour)

	rec = post()
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.NotEqual(t, before, rec.Header().Get("ETag"))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &g))
	assert.Equal(t, []graph.Edge{{Source: 1, Target: 2, Weight: 1}}, g.Edges)
	assert.Equal(t, []graph.Node{{ID: 1, Label: "1"}, {ID: 2, Label: "2"}}, g.Nodes)
}

func TestGetFilters_AfterReload(t *testing.T) {
	h := newHandler(t)

	rec := httptest.NewRecorder()
	h.GetFilters(rec, httptest.NewRequest(http.MethodGet, "/api/v1/filters", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	h.live.Swap(graph.NewEngine(dataset.New([]dataset.Match{
		{ID: "1", Date: "2023-01-01", Year: 2023, Home: team("Napoli", 1), Away: team("Roma", 2)},
	}), nil))

	rec = httptest.NewRecorder()
	h.GetFilters(rec, httptest.NewRequest(http.MethodGet, "/api/v1/filters", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var resp FiltersResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, FiltersResponse{MinYear: 2023, MaxYear: 2023, DefaultYear: 2023, Clubs: []string{"Napoli", "Roma"}}, resp)
}
