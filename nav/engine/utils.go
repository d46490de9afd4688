package engine

import "math/rand"

// ManhattanDistance calculates the Manhattan distance between two states
func ManhattanDistance(from, to State) int {
	dx := from.X - to.X
	if dx < 0 {
		dx = -dx
	}
	dy := from.Y - to.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// NearestDistance returns the smallest Manhattan distance from s to any
// target, or 0 when there are no targets.
func NearestDistance(s State, targets []State) int {
	best := -1
	for _, t := range targets {
		if d := ManhattanDistance(s, t); best == -1 || d < best {
			best = d
		}
	}
	if best < 0 {
		return 0
	}
	return best
}

// RandomWalls scatters clusters of walls over roughly density of the grid.
// Each cluster is a short random walk from a random seed cell. Cells listed
// in keep are never walled. The same seed always yields the same walls.
// Grids larger than MaxGridSize on either side get no walls.
func RandomWalls(rows, cols int, density float64, seed int64, keep ...State) []Cell {
	if rows <= 0 || cols <= 0 || density <= 0 {
		return nil
	}
	if density > 0.9 {
		density = 0.9
	}

	kept := make(map[Cell]bool, len(keep))
	for _, s := range keep {
		kept[Cell{Row: s.Y, Col: s.X}] = true
	}

	if rows > MaxGridSize || cols > MaxGridSize {
		return nil
	}

	rng := rand.New(rand.NewSource(seed))
	target := min(int(float64(rows*cols)*density), rows*cols-len(kept))
	walls := make(map[Cell]bool, target)
	var order []Cell

	for attempts := 0; len(order) < target && attempts < target*20; attempts++ {
		c := Cell{Row: rng.Intn(rows), Col: rng.Intn(cols)}
		steps := 1 + rng.Intn(max(rows, cols)/2+1)
		for i := 0; i < steps && len(order) < target; i++ {
			if !kept[c] && !walls[c] {
				walls[c] = true
				order = append(order, c)
			}
			a := Actions[rng.Intn(len(Actions))]
			dx, dy := a.Delta()
			next := Cell{Row: c.Row + dy, Col: c.Col + dx}
			if next.Row < 0 || next.Row >= rows || next.Col < 0 || next.Col >= cols {
				break
			}
			c = next
		}
	}
	return order
}
