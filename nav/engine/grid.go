package engine

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidDimensions is returned for negative or oversized grid dimensions.
	ErrInvalidDimensions = errors.New("engine: invalid grid dimensions")
	// ErrMalformedGrid is returned when a cell matrix is not rectangular.
	ErrMalformedGrid = errors.New("engine: malformed grid")
)

// Grid is a rectangular occupancy map. Cells are indexed [row][col] and
// true means blocked.
type Grid struct {
	Rows  int
	Cols  int
	cells [][]bool
}

// NewGrid creates an empty grid with the given dimensions
func NewGrid(rows, cols int) (*Grid, error) {
	if rows < 0 || cols < 0 || rows > MaxGridSize || cols > MaxGridSize {
		return nil, fmt.Errorf("%w: %dx%d (max %d)", ErrInvalidDimensions, rows, cols, MaxGridSize)
	}
	cells := make([][]bool, rows)
	for i := range cells {
		cells[i] = make([]bool, cols)
	}
	return &Grid{Rows: rows, Cols: cols, cells: cells}, nil
}

// GridFromMatrix builds a grid from a row-major 0/1 matrix. Any non-zero
// value is a wall.
func GridFromMatrix(matrix [][]int) (*Grid, error) {
	rows := len(matrix)
	cols := 0
	if rows > 0 {
		cols = len(matrix[0])
	}
	for i, row := range matrix {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrMalformedGrid, i, len(row), cols)
		}
	}

	g, err := NewGrid(rows, cols)
	if err != nil {
		return nil, err
	}
	for i, row := range matrix {
		for j, v := range row {
			g.cells[i][j] = v != 0
		}
	}
	return g, nil
}

// IsMovable reports whether the robot may occupy column x, row y
func (g *Grid) IsMovable(x, y int) bool {
	if x < 0 || x >= g.Cols || y < 0 || y >= g.Rows {
		return false
	}
	return !g.cells[y][x]
}

// IsBlocked reports whether the cell at row, col is a wall. Out of range
// cells are not walls; use IsMovable for traversal checks.
func (g *Grid) IsBlocked(row, col int) bool {
	if row < 0 || row >= g.Rows || col < 0 || col >= g.Cols {
		return false
	}
	return g.cells[row][col]
}

// CreateWall marks the rectangle with top-left corner (x, y), width w and
// height h, clamped to the grid.
func (g *Grid) CreateWall(x, y, w, h int) {
	x0, x1 := clampSpan(x, w, g.Cols)
	y0, y1 := clampSpan(y, h, g.Rows)
	for j := y0; j < y1; j++ {
		for i := x0; i < x1; i++ {
			g.cells[j][i] = true
		}
	}
}

// clampSpan returns the half-open range [lo, hi) of [start, start+length)
// that lies inside [0, limit), without computing start+length directly.
func clampSpan(start, length, limit int) (lo, hi int) {
	if length <= 0 || start >= limit {
		return 0, 0
	}
	if start < 0 {
		// start and length have opposite signs here, so the sum cannot overflow
		length += start
		start = 0
		if length <= 0 {
			return 0, 0
		}
	}
	if length >= limit-start {
		return start, limit
	}
	return start, start + length
}

// CreateWallWithPositions marks each (row, col) cell. Entries outside the
// grid are ignored.
func (g *Grid) CreateWallWithPositions(positions []Cell) {
	for _, p := range positions {
		if p.Row >= 0 && p.Row < g.Rows && p.Col >= 0 && p.Col < g.Cols {
			g.cells[p.Row][p.Col] = true
		}
	}
}

// Clear frees the cell at row, col if it is inside the grid
func (g *Grid) Clear(row, col int) {
	if row >= 0 && row < g.Rows && col >= 0 && col < g.Cols {
		g.cells[row][col] = false
	}
}

// Occupancy returns a copy of the cell matrix
func (g *Grid) Occupancy() [][]bool {
	out := make([][]bool, g.Rows)
	for i, row := range g.cells {
		out[i] = append([]bool(nil), row...)
	}
	return out
}

// Matrix returns the grid as a 0/1 matrix, 1 meaning wall
func (g *Grid) Matrix() [][]int {
	out := make([][]int, g.Rows)
	for i, row := range g.cells {
		out[i] = make([]int, g.Cols)
		for j, blocked := range row {
			if blocked {
				out[i][j] = 1
			}
		}
	}
	return out
}

// Walls lists every blocked cell in row-major order
func (g *Grid) Walls() []Cell {
	var walls []Cell
	for i, row := range g.cells {
		for j, blocked := range row {
			if blocked {
				walls = append(walls, Cell{Row: i, Col: j})
			}
		}
	}
	return walls
}

// FreeCells counts the movable cells
func (g *Grid) FreeCells() int {
	free := 0
	for _, row := range g.cells {
		for _, blocked := range row {
			if !blocked {
				free++
			}
		}
	}
	return free
}

// String renders the grid with '#' for walls and '.' for free cells
func (g *Grid) String() string {
	var sb strings.Builder
	for _, row := range g.cells {
		for _, blocked := range row {
			if blocked {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
