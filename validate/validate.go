// Command validate checks the map files in a maps directory. For every
// .json and .txt map it checks:
//   - File syntax and required fields
//   - Grid size, start and goal bounds
//   - That the start and every goal are free cells
//   - Reachability: which goals a breadth-first search can reach from the start
//
// Unreachable goals are reported as warnings; -strict turns them into errors.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wricardo/mcp-training/robotnav/nav/config"
	"github.com/wricardo/mcp-training/robotnav/nav/engine"
	"github.com/wricardo/mcp-training/robotnav/nav/search"
)

// ValidationResult captures the outcome of validating a single file.
// Info holds the summary lines printed for a valid map.
type ValidationResult struct {
	File     string
	Valid    bool
	Errors   []string
	Warnings []string
	Info     []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// validateMap loads and validates a single map file. With strict set an
// unreachable goal makes the map invalid.
func validateMap(filePath string, strict bool) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	def, err := config.ReadMapFile(filePath)
	if err != nil {
		result.fail("%v", err)
		return result
	}

	if err := engine.ValidateMapDefinition(def); err != nil {
		result.fail("%v", err)
		return result
	}

	grid, err := def.BuildGrid()
	if err != nil {
		result.fail("%v", err)
		return result
	}

	if !grid.IsMovable(def.Start.X, def.Start.Y) {
		result.fail("Start %s is a wall", def.Start)
	}
	for i, g := range def.Goals {
		if !grid.IsMovable(g.X, g.Y) {
			result.fail("Goal %d %s is a wall", i+1, g)
		}
	}
	if !result.Valid {
		return result
	}

	unreachable := unreachableGoals(grid, def)
	for _, g := range unreachable {
		msg := fmt.Sprintf("Goal %s is unreachable from start %s", g, def.Start)
		if strict {
			result.fail("%s", msg)
		} else {
			result.Warnings = append(result.Warnings, msg)
		}
	}
	if !result.Valid {
		return result
	}

	result.Info = append(result.Info,
		fmt.Sprintf("✓ Name: %s", def.Name),
		fmt.Sprintf("✓ Grid: %dx%d", def.Rows, def.Cols),
		fmt.Sprintf("✓ Walls: %d", def.Rows*def.Cols-grid.FreeCells()),
		fmt.Sprintf("✓ Goals: %d (%d reachable)", len(def.Goals), len(def.Goals)-len(unreachable)),
	)
	return result
}

// unreachableGoals runs one breadth-first search per goal and returns the
// goals it cannot reach.
func unreachableGoals(grid *engine.Grid, def *engine.MapDefinition) []engine.State {
	var out []engine.State
	for _, g := range def.Goals {
		p := engine.NewGridProblem(grid, def.Start, []engine.State{g})
		r, err := search.BreadthFirst.Run(p)
		if err != nil || !r.Success() {
			out = append(out, g)
		}
	}
	return out
}

// mapFiles lists the .json and .txt files in dir in name order.
func mapFiles(dir string) ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.json", "*.txt"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}

// main scans the maps directory, prints a report per file and exits with a
// non-zero status if any map is invalid.
func main() {
	mapsDir := flag.String("maps-dir", "maps", "Directory containing map files")
	strict := flag.Bool("strict", false, "Treat unreachable goals as errors")
	flag.Parse()

	dir := *mapsDir
	if flag.NArg() > 0 {
		dir = flag.Arg(0)
	}

	files, err := mapFiles(dir)
	if err != nil {
		fmt.Printf("Error finding map files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("No map files found in %s\n", dir)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateMap(file, *strict)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Info {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				fmt.Println("  ❌ " + err)
			}
		}
		for _, w := range result.Warnings {
			fmt.Println("  ⚠️  " + w)
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All maps are valid!")
	} else {
		fmt.Println("❌ Some maps have errors")
		os.Exit(1)
	}
}
