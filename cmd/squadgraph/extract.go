package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/albapepper/squadgraph/internal/extract"
)

func extractCmd() *cobra.Command {
	var (
		gamesPath, appearancesPath, playersPath string
		matchesOut, playersOut                  string
		since, until                            string
		clubIDs                                 []int
	)
	defaults := extract.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Build matches.json and players.json from the player-scores CSV dump",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := extract.Options{ClubIDs: clubIDs}
			var err error
			if opts.Since, err = time.Parse(time.DateOnly, since); err != nil {
				return fmt.Errorf("--since: %w", err)
			}
			if opts.Until, err = time.Parse(time.DateOnly, until); err != nil {
				return fmt.Errorf("--until: %w", err)
			}

			games, err := os.Open(gamesPath)
			if err != nil {
				return err
			}
			defer games.Close()
			appearances, err := os.Open(appearancesPath)
			if err != nil {
				return err
			}
			defer appearances.Close()
			players, err := os.Open(playersPath)
			if err != nil {
				return err
			}
			defer players.Close()

			start := time.Now()
			result, err := extract.Run(extract.Sources{
				Games:       games,
				Appearances: appearances,
				Players:     players,
			}, opts, logger)
			if err != nil {
				return fmt.Errorf("extract: %w", err)
			}

			if err := writeFile(matchesOut, func(f *os.File) error { return extract.WriteMatches(f, result.Matches) }); err != nil {
				return err
			}
			if err := writeFile(playersOut, func(f *os.File) error { return extract.WritePlayers(f, result.Players) }); err != nil {
				return err
			}
			logger.Info("Extract finished",
				"duration", time.Since(start).Round(time.Millisecond),
				"matches_file", matchesOut, "players_file", playersOut,
				"summary", result.Summary())
			return nil
		},
	}
	cmd.Flags().StringVar(&gamesPath, "games", "games.csv", "Path to games.csv")
	cmd.Flags().StringVar(&appearancesPath, "appearances", "appearances.csv", "Path to appearances.csv")
	cmd.Flags().StringVar(&playersPath, "players", "players.csv", "Path to players.csv")
	cmd.Flags().StringVar(&matchesOut, "out-matches", "matches.json", "Output matches file")
	cmd.Flags().StringVar(&playersOut, "out-players", "players.json", "Output players file")
	cmd.Flags().StringVar(&since, "since", defaults.Since.Format(time.DateOnly), "First match date (inclusive)")
	cmd.Flags().StringVar(&until, "until", defaults.Until.Format(time.DateOnly), "Last match date (inclusive)")
	cmd.Flags().IntSliceVar(&clubIDs, "club-id", defaults.ClubIDs, "Club ids to keep, repeatable")
	return cmd
}

func writeFile(path string, fn func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
