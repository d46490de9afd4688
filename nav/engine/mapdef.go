package engine

import (
	"fmt"
	"strings"
)

// ValidateMapDefinition checks a map definition for structural correctness.
// It does not check that the goals are reachable.
func ValidateMapDefinition(def *MapDefinition) error {
	if def == nil {
		return fmt.Errorf("map validation: definition is nil")
	}
	if def.Name == "" {
		return fmt.Errorf("map validation: name is required")
	}
	if def.Rows < MinGridSize || def.Rows > MaxGridSize {
		return fmt.Errorf("map validation: rows must be between %d and %d, got %d", MinGridSize, MaxGridSize, def.Rows)
	}
	if def.Cols < MinGridSize || def.Cols > MaxGridSize {
		return fmt.Errorf("map validation: cols must be between %d and %d, got %d", MinGridSize, MaxGridSize, def.Cols)
	}
	if !def.inBounds(def.Start) {
		return fmt.Errorf("map validation: start %s is outside the %dx%d grid", def.Start, def.Rows, def.Cols)
	}
	if len(def.Goals) == 0 {
		return fmt.Errorf("map validation: at least one goal is required")
	}
	for i, g := range def.Goals {
		if !def.inBounds(g) {
			return fmt.Errorf("map validation: goal %d %s is outside the %dx%d grid", i+1, g, def.Rows, def.Cols)
		}
	}
	return nil
}

// ValidateMapID checks that a map name is usable as a file name inside the
// maps directory. Names with path separators or ".." are rejected.
func ValidateMapID(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("map validation: name is required")
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("map validation: name %q must not contain path separators", name)
	case strings.Contains(name, ".."):
		return fmt.Errorf("map validation: name %q must not contain \"..\"", name)
	case name == ".":
		return fmt.Errorf("map validation: name %q is not a valid file name", name)
	}
	return nil
}

func (def *MapDefinition) inBounds(s State) bool {
	return s.X >= 0 && s.X < def.Cols && s.Y >= 0 && s.Y < def.Rows
}

// BuildGrid creates the grid described by def with all of its walls applied
func (def *MapDefinition) BuildGrid() (*Grid, error) {
	g, err := NewGrid(def.Rows, def.Cols)
	if err != nil {
		return nil, err
	}
	for _, r := range def.RectWalls {
		g.CreateWall(r.X, r.Y, r.Width, r.Height)
	}
	g.CreateWallWithPositions(def.Walls)
	return g, nil
}

// BuildProblem creates the grid and wraps it in a GridProblem
func (def *MapDefinition) BuildProblem(opts ...ProblemOption) (*GridProblem, error) {
	g, err := def.BuildGrid()
	if err != nil {
		return nil, err
	}
	return NewGridProblem(g, def.Start, def.Goals, opts...), nil
}

// DefaultMap is the built-in map used when no map files are available
func DefaultMap() *MapDefinition {
	return &MapDefinition{
		Name:        "default",
		Description: "5x11 grid with two goals split by short wall segments",
		Rows:        5,
		Cols:        11,
		Start:       State{X: 0, Y: 1},
		Goals:       []State{{X: 7, Y: 0}, {X: 10, Y: 3}},
		RectWalls: []Rect{
			{X: 2, Y: 0, Width: 2, Height: 2},
			{X: 8, Y: 0, Width: 1, Height: 2},
			{X: 10, Y: 0, Width: 1, Height: 1},
			{X: 2, Y: 3, Width: 1, Height: 2},
			{X: 3, Y: 4, Width: 3, Height: 1},
			{X: 9, Y: 3, Width: 1, Height: 1},
			{X: 8, Y: 4, Width: 2, Height: 1},
		},
	}
}
