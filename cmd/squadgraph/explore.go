package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/albapepper/squadgraph/internal/config"
	"github.com/albapepper/squadgraph/internal/graph"
	"github.com/albapepper/squadgraph/internal/render"
)

const exploreHelp = `commands:
  year <n>                 select a year (resets players)
  club on|off <name>       include or exclude a club (resets players)
  clubs                    toggle all clubs
  player on|off <id>       include or exclude a player
  players                  toggle all players
  list clubs|players       show the checklists
  show                     print the current graph
  html <path>              render the current graph to a file
  help, quit
`

func exploreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explore",
		Short: "Interactively filter the graph from stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEngine(func(ctx context.Context, cfg *config.Config, engine *graph.Engine) error {
				session, err := graph.NewSession(engine, logger)
				if err != nil {
					return err
				}
				return explore(session, cfg.Render, cmd.InOrStdin(), cmd.OutOrStdout())
			})
		},
	}
}

var errQuit = errors.New("quit")

// explore reads one command per line and applies it to session. Command
// errors are printed and the loop continues.
func explore(session *graph.Session, renderCfg config.RenderConfig, in io.Reader, out io.Writer) error {
	fmt.Fprintf(out, "year %d, %d clubs, %d players selected. Type help for commands.\n",
		session.Year(), len(session.State().Clubs), len(session.State().Players))

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		err := exploreStep(session, renderCfg, fields, out)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
}

func exploreStep(session *graph.Session, renderCfg config.RenderConfig, fields []string, out io.Writer) error {
	cmd, args := fields[0], fields[1:]
	var g *graph.Graph

	switch cmd {
	case "quit", "exit":
		return errQuit
	case "help":
		fmt.Fprint(out, exploreHelp)
		return nil
	case "year":
		if len(args) != 1 {
			return errors.New("usage: year <n>")
		}
		year, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("bad year %q", args[0])
		}
		if g, err = session.SetYear(year); err != nil {
			return err
		}
	case "club":
		on, rest, err := onOff(args)
		if err != nil || len(rest) == 0 {
			return errors.New("usage: club on|off <name>")
		}
		if g, err = session.SetClub(strings.Join(rest, " "), on); err != nil {
			return err
		}
	case "clubs":
		g = session.ToggleAllClubs()
	case "player":
		on, rest, err := onOff(args)
		if err != nil || len(rest) != 1 {
			return errors.New("usage: player on|off <id>")
		}
		id, err := strconv.Atoi(rest[0])
		if err != nil {
			return fmt.Errorf("bad player id %q", rest[0])
		}
		if g, err = session.SetPlayer(id, on); err != nil {
			return err
		}
	case "players":
		g = session.ToggleAllPlayers()
	case "list":
		if len(args) != 1 {
			return errors.New("usage: list clubs|players")
		}
		switch args[0] {
		case "clubs":
			for _, c := range session.Clubs() {
				fmt.Fprintf(out, "[%s] %s\n", mark(c.Selected), c.Name)
			}
		case "players":
			for _, p := range session.Players() {
				fmt.Fprintf(out, "[%s] %10d  %s\n", mark(p.Selected), p.ID, p.Label)
			}
		default:
			return errors.New("usage: list clubs|players")
		}
		return nil
	case "show":
		printGraph(out, session.Graph())
		return nil
	case "html":
		if len(args) != 1 {
			return errors.New("usage: html <path>")
		}
		if err := writeFile(args[0], func(f *os.File) error { return render.HTML(f, session.Graph(), renderCfg) }); err != nil {
			return err
		}
		fmt.Fprintf(out, "wrote %s\n", args[0])
		return nil
	default:
		return fmt.Errorf("unknown command %q (try help)", cmd)
	}

	fmt.Fprintf(out, "year %d: %d players, %d links\n", g.Year, len(g.Nodes), len(g.Edges))
	return nil
}

func onOff(args []string) (bool, []string, error) {
	if len(args) == 0 {
		return false, nil, errors.New("missing on|off")
	}
	switch args[0] {
	case "on":
		return true, args[1:], nil
	case "off":
		return false, args[1:], nil
	}
	return false, nil, fmt.Errorf("want on or off, got %q", args[0])
}

func mark(selected bool) string {
	if selected {
		return "x"
	}
	return " "
}
