// Package engine provides the grid world the robot navigates.
//
// The engine package implements:
//   - Rectangular occupancy grids with rectangle and per-cell walls
//   - The Problem contract consumed by the search algorithms
//   - GridProblem, a four-connected unit-cost robot problem
//   - Map definitions, validation and random wall generation
//
// Coordinates:
//
// A State is an (x, y) pair where x is the column and y is the row. Grid
// cells are stored [row][col], so IsMovable(x, y) looks up cells[y][x].
// Wall positions given as Cell values are (row, col) pairs, while
// rectangle walls use (x, y, width, height).
//
// Usage:
//
//	grid, err := engine.NewGrid(5, 11)
//	if err != nil {
//		log.Fatal(err)
//	}
//	grid.CreateWall(2, 0, 2, 2)
//
//	problem := engine.NewGridProblem(grid, engine.State{X: 0, Y: 1},
//		[]engine.State{{X: 7, Y: 0}})
//	actions := problem.Actions(problem.Initial())
package engine
