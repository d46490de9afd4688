// Command search runs one search strategy on a map file and prints the
// result in the classic command-line layout:
//
//	search maps/map1.txt astar
//	search --max-depth 20 maps/map3.txt cus1
//	search --json maps/default.json bfs
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/robotnav/nav/config"
	"github.com/wricardo/mcp-training/robotnav/nav/engine"
	"github.com/wricardo/mcp-training/robotnav/nav/search"
	"github.com/wricardo/mcp-training/robotnav/nav/service"
)

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "find a path for the robot on a map file",
		ArgsUsage: "<file> <method>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "max-depth",
				Value: search.DefaultMaxDepth,
				Usage: "depth limit for iterative deepening (cus1)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print the full search response as JSON",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 2 {
				return fmt.Errorf("usage: search <file> <method>, got %d arguments", cmd.Args().Len())
			}
			return runSearch(ctx, cmd.Writer, cmd.Args().Get(0), cmd.Args().Get(1), int(cmd.Int("max-depth")), cmd.Bool("json"))
		},
	}
}

func runSearch(ctx context.Context, w io.Writer, file, method string, maxDepth int, asJSON bool) error {
	if w == nil {
		w = os.Stdout
	}

	def, err := config.ReadMapFile(file)
	if err != nil {
		return err
	}

	svc := service.NewPathService(nil, service.Config{MaxDepth: maxDepth, BoundPolicy: search.BoundCutoff})
	resp, err := svc.Search(ctx, &service.SearchRequest{
		Rows:      def.Rows,
		Cols:      def.Cols,
		Start:     def.Start,
		Goals:     def.Goals,
		Walls:     def.Walls,
		RectWalls: def.RectWalls,
		Algorithm: method,
		MaxDepth:  maxDepth,
	})
	if err != nil {
		return err
	}
	resp.MapName = def.Name

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	printResult(w, def, resp)
	return nil
}

func printResult(w io.Writer, def *engine.MapDefinition, resp *service.SearchResponse) {
	switch {
	case resp.Success:
		fmt.Fprintf(w, "Path to goal: %s\n", formatActions(resp))
		fmt.Fprintf(w, "Path states: %s\n", formatStates(resp.Path, " -> "))
	case resp.Outcome == search.OutcomeCutoff.String():
		fmt.Fprintln(w, service.MessageCutoff)
	default:
		fmt.Fprintln(w, service.MessageNoPath)
	}

	fmt.Fprintf(w, "Total nodes: %d\n", resp.TotalNodes)
	fmt.Fprintf(w, "Visited nodes: %s\n", formatStates(resp.VisitedNodes, " "))
	fmt.Fprintf(w, "Map Size: (%d, %d)\n", def.Rows, def.Cols)
	fmt.Fprintf(w, "Initial State: %s\n", def.Start)
	fmt.Fprintf(w, "Goal States: %s\n", formatStates(def.Goals, " | "))
	fmt.Fprintf(w, "Walls: %s\n", formatWalls(def))
}

// formatActions lists the moves; a start that is already a goal has none.
func formatActions(resp *service.SearchResponse) string {
	if len(resp.Actions) == 0 {
		return "[]"
	}
	actions := make([]string, len(resp.Actions))
	for i, a := range resp.Actions {
		actions[i] = string(a)
	}
	return "[" + strings.Join(actions, ", ") + "]"
}

func formatStates(states []engine.State, sep string) string {
	parts := make([]string, len(states))
	for i, s := range states {
		parts[i] = s.String()
	}
	return strings.Join(parts, sep)
}

func formatWalls(def *engine.MapDefinition) string {
	var parts []string
	for _, r := range def.RectWalls {
		parts = append(parts, fmt.Sprintf("(%d,%d,%d,%d)", r.X, r.Y, r.Width, r.Height))
	}
	for _, c := range def.Walls {
		parts = append(parts, fmt.Sprintf("(%d,%d,1,1)", c.Col, c.Row))
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}
