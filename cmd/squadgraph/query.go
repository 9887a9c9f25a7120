package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/albapepper/squadgraph/internal/config"
	"github.com/albapepper/squadgraph/internal/graph"
	"github.com/albapepper/squadgraph/internal/render"
)

func playersCmd() *cobra.Command {
	var flags filterFlags
	cmd := &cobra.Command{
		Use:   "players",
		Short: "List the players eligible for a year and clubs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEngine(func(ctx context.Context, cfg *config.Config, engine *graph.Engine) error {
				state, err := flags.state(cmd, engine)
				if err != nil {
					return err
				}
				printPlayers(cmd.OutOrStdout(), engine.Eligible(state.Year, state.Clubs))
				return nil
			})
		},
	}
	flags.register(cmd, false)
	return cmd
}

func graphCmd() *cobra.Command {
	var (
		flags    filterFlags
		htmlPath string
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Compute the co-appearance graph for a filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEngine(func(ctx context.Context, cfg *config.Config, engine *graph.Engine) error {
				state, err := flags.state(cmd, engine)
				if err != nil {
					return err
				}
				g := engine.OnFilterChanged(state)
				logger.Info("Graph computed", "state", state.String(), "max_weight", g.MaxWeight())

				if htmlPath != "" {
					if err := writeFile(htmlPath, func(f *os.File) error { return render.HTML(f, g, cfg.Render) }); err != nil {
						return err
					}
					logger.Info("Chart written", "path", htmlPath)
				}
				if asJSON {
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")
					return enc.Encode(g)
				}
				printGraph(cmd.OutOrStdout(), g)
				return nil
			})
		},
	}
	flags.register(cmd, true)
	cmd.Flags().StringVar(&htmlPath, "html", "", "Also render the chart to this HTML file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the graph as JSON")
	return cmd
}
