// Command squadgraph is the dataset and graph CLI.
//
// Usage:
//
//	squadgraph extract --games games.csv --appearances appearances.csv --players players.csv
//	squadgraph schema --apply
//	squadgraph load --matches matches.json --players players.json
//	squadgraph players --year 2019 --club "FC Barcelona"
//	squadgraph graph --year 2019 --club "FC Barcelona" --html graph.html
//	squadgraph explore
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/albapepper/squadgraph/internal/config"
	"github.com/albapepper/squadgraph/internal/graph"
	"github.com/albapepper/squadgraph/internal/store"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:          "squadgraph",
		Short:        "Football player co-appearance graphs",
		SilenceUsage: true,
	}

	root.AddCommand(extractCmd())
	root.AddCommand(schemaCmd())
	root.AddCommand(loadCmd())
	root.AddCommand(playersCmd())
	root.AddCommand(graphCmd())
	root.AddCommand(exploreCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// runEngine loads config and the dataset, then hands fn an engine.
func runEngine(fn func(ctx context.Context, cfg *config.Config, engine *graph.Engine) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	ds, dir, pool, err := store.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if pool != nil {
		defer pool.Close()
	}
	return fn(ctx, cfg, graph.NewEngine(ds, dir))
}

// filterFlags are the --year/--club/--player flags shared by the query
// commands. Unset --year means the latest year; unset --club means every
// club; unset --player means every eligible player.
type filterFlags struct {
	year    int
	clubs   []string
	players []int
}

func (f *filterFlags) register(cmd *cobra.Command, withPlayers bool) {
	cmd.Flags().IntVar(&f.year, "year", 0, "Season year (default latest)")
	cmd.Flags().StringSliceVar(&f.clubs, "club", nil, "Club name, repeatable (default all)")
	if withPlayers {
		cmd.Flags().IntSliceVar(&f.players, "player", nil, "Player id, repeatable (default all eligible)")
	}
}

func (f *filterFlags) state(cmd *cobra.Command, engine *graph.Engine) (graph.FilterState, error) {
	state, err := engine.Defaults()
	if err != nil {
		return state, err
	}
	if cmd.Flags().Changed("year") {
		if err := engine.CheckYear(f.year); err != nil {
			return state, err
		}
		state.Year = f.year
	}
	if cmd.Flags().Changed("club") {
		state.Clubs = graph.NewSet(f.clubs...)
	}
	if cmd.Flags().Changed("player") {
		state.Players = graph.NewSet(f.players...)
	} else {
		state.Players = graph.EligiblePlayers(engine.Dataset(), state.Year, state.Clubs)
	}
	return state, nil
}

// printGraph writes nodes and edges as plain text.
func printGraph(w io.Writer, g *graph.Graph) {
	fmt.Fprintf(w, "year %d: %d players, %d links\n", g.Year, len(g.Nodes), len(g.Edges))
	labels := make(map[int]string, len(g.Nodes))
	for _, n := range g.Nodes {
		labels[n.ID] = n.Label
	}
	for _, e := range g.Edges {
		fmt.Fprintf(w, "%6d  %s -- %s\n", e.Weight, labels[e.Source], labels[e.Target])
	}
}

func printPlayers(w io.Writer, players []graph.PlayerOption) {
	for _, p := range players {
		fmt.Fprintf(w, "%10d  %s\n", p.ID, p.Label)
	}
}
