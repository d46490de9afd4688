package engine

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Action is a unit move of the robot
type Action string

const (
	Up    Action = "UP"
	Down  Action = "DOWN"
	Left  Action = "LEFT"
	Right Action = "RIGHT"

	// Validation constants
	MinGridSize = 1
	MaxGridSize = 1000
)

// Actions lists every action in expansion order
var Actions = []Action{Up, Down, Left, Right}

// Reverse returns the action that undoes a
func (a Action) Reverse() Action {
	switch a {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	}
	return a
}

// Delta returns the column and row offsets of a
func (a Action) Delta() (dx, dy int) {
	switch a {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	}
	return 0, 0
}

// ParseAction converts a case-insensitive direction name into an Action
func ParseAction(s string) (Action, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "UP":
		return Up, nil
	case "DOWN":
		return Down, nil
	case "LEFT":
		return Left, nil
	case "RIGHT":
		return Right, nil
	}
	return "", fmt.Errorf("engine: unknown action %q", s)
}

// State is a robot position: X is the column, Y is the row.
// It encodes to JSON as a two element array [x, y].
type State struct {
	X int
	Y int
}

func (s State) String() string {
	return fmt.Sprintf("(%d,%d)", s.X, s.Y)
}

// Move returns the state reached by applying a
func (s State) Move(a Action) State {
	dx, dy := a.Delta()
	return State{X: s.X + dx, Y: s.Y + dy}
}

func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{s.X, s.Y})
}

// UnmarshalJSON accepts [x, y] as well as {"x": x, "y": y}.
func (s *State) UnmarshalJSON(data []byte) error {
	var pair []int
	if err := json.Unmarshal(data, &pair); err == nil {
		if len(pair) != 2 {
			return fmt.Errorf("engine: state needs 2 coordinates, got %d", len(pair))
		}
		s.X, s.Y = pair[0], pair[1]
		return nil
	}
	var obj struct {
		X int `json:"x"`
		Y int `json:"y"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("engine: invalid state %s", string(data))
	}
	s.X, s.Y = obj.X, obj.Y
	return nil
}

// Cell addresses a grid square by row and column, encoded as [row, col]
type Cell struct {
	Row int
	Col int
}

func (c Cell) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{c.Row, c.Col})
}

func (c *Cell) UnmarshalJSON(data []byte) error {
	var pair []int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("engine: invalid cell %s", string(data))
	}
	if len(pair) != 2 {
		return fmt.Errorf("engine: cell needs 2 coordinates, got %d", len(pair))
	}
	c.Row, c.Col = pair[0], pair[1]
	return nil
}

// Rect is a rectangular wall anchored at column X, row Y, encoded as [x, y, w, h]
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

func (r Rect) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]int{r.X, r.Y, r.Width, r.Height})
}

func (r *Rect) UnmarshalJSON(data []byte) error {
	var quad []int
	if err := json.Unmarshal(data, &quad); err != nil {
		return fmt.Errorf("engine: invalid rect %s", string(data))
	}
	if len(quad) != 4 {
		return fmt.Errorf("engine: rect needs 4 values, got %d", len(quad))
	}
	r.X, r.Y, r.Width, r.Height = quad[0], quad[1], quad[2], quad[3]
	return nil
}

// MapDefinition describes a named grid layout with a start and goals
type MapDefinition struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Rows        int     `json:"rows"`
	Cols        int     `json:"cols"`
	Start       State   `json:"start"`
	Goals       []State `json:"goals"`
	Walls       []Cell  `json:"walls,omitempty"`
	RectWalls   []Rect  `json:"rect_walls,omitempty"`
}
