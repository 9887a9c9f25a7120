// Package render draws a co-appearance graph as an interactive HTML chart
// (ECharts force layout via go-echarts).
package render

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/albapepper/squadgraph/internal/config"
	"github.com/albapepper/squadgraph/internal/graph"
)

const (
	nodeColor = "#4B6EAF"
	edgeColor = "#555555"
)

// EdgeWidth returns the drawn width for an edge weight, capped at limit.
// The weight itself is never altered.
func EdgeWidth(weight, limit int) int {
	return min(weight, max(limit, 1))
}

// NodeNames returns a unique chart name per node id. Players sharing a
// display name get their id appended.
func NodeNames(nodes []graph.Node) map[int]string {
	count := make(map[string]int, len(nodes))
	for _, n := range nodes {
		count[n.Label]++
	}
	names := make(map[int]string, len(nodes))
	for _, n := range nodes {
		name := n.Label
		if count[n.Label] > 1 {
			name = n.Label + " (" + strconv.Itoa(n.ID) + ")"
		}
		names[n.ID] = name
	}
	return names
}

// Chart builds the ECharts graph for g.
func Chart(g *graph.Graph, cfg config.RenderConfig) *charts.Graph {
	chart := charts.NewGraph()
	chart.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: cfg.Title,
			Width:     cfg.Width,
			Height:    cfg.Height,
			Theme:     cfg.Theme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    cfg.Title,
			Subtitle: fmt.Sprintf("%d · %d players · %d links", g.Year, len(g.Nodes), len(g.Edges)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
	)

	names := NodeNames(g.Nodes)
	nodes := make([]opts.GraphNode, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		nodes = append(nodes, opts.GraphNode{
			Name:       names[n.ID],
			SymbolSize: cfg.NodeSize,
			ItemStyle:  &opts.ItemStyle{Color: nodeColor},
		})
	}

	links := make([]opts.GraphLink, 0, len(g.Edges))
	for _, e := range g.Edges {
		link := opts.GraphLink{
			Source: names[e.Source],
			Target: names[e.Target],
			Value:  float32(e.Weight),
			LineStyle: &opts.LineStyle{
				Color: edgeColor,
				Width: float32(EdgeWidth(e.Weight, cfg.MaxEdgeWidth)),
			},
		}
		if e.Weight > 1 {
			link.Label = &opts.EdgeLabel{Show: opts.Bool(true)}
		}
		links = append(links, link)
	}

	chart.AddSeries("players", nodes, links,
		charts.WithGraphChartOpts(opts.GraphChart{
			Layout: cfg.Layout,
			Roam:   opts.Bool(true),
			Force:  &opts.GraphForce{Repulsion: float32(cfg.Repulsion)},
		}),
		charts.WithLabelOpts(opts.Label{
			Show:     opts.Bool(true),
			Position: "top",
		}),
	)
	return chart
}

// HTML renders g to w as a standalone page.
func HTML(w io.Writer, g *graph.Graph, cfg config.RenderConfig) error {
	if err := Chart(g, cfg).Render(w); err != nil {
		return fmt.Errorf("render graph: %w", err)
	}
	return nil
}

// HTMLBytes renders g into memory.
func HTMLBytes(g *graph.Graph, cfg config.RenderConfig) ([]byte, error) {
	var buf bytes.Buffer
	if err := HTML(&buf, g, cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
