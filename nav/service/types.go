package service

import (
	"errors"

	"github.com/wricardo/mcp-training/robotnav/nav/engine"
)

var (
	// ErrInvalidRequest wraps every caller-side configuration problem.
	ErrInvalidRequest = errors.New("invalid search request")
	// ErrMapNotFound is returned when a named map does not exist.
	ErrMapNotFound = errors.New("map not found")
	// ErrInvalidMap is returned when a map definition fails validation.
	ErrInvalidMap = errors.New("invalid map")
)

// Result messages
const (
	MessageFound  = "Path found successfully"
	MessageNoPath = "No path found."
	MessageCutoff = "Search cutoff. No solution within depth limit."
)

// SearchRequest describes one inline search. The grid dimensions come from
// Grid when present, otherwise from Rows and Cols.
type SearchRequest struct {
	Grid      [][]int        `json:"grid,omitempty"`
	Rows      int            `json:"rows,omitempty"`
	Cols      int            `json:"cols,omitempty"`
	Start     engine.State   `json:"start"`
	Goals     []engine.State `json:"goals"`
	Walls     []engine.Cell  `json:"walls,omitempty"`
	RectWalls []engine.Rect  `json:"rect_walls,omitempty"`
	Algorithm string         `json:"algorithm"`
	MaxDepth  int            `json:"max_depth,omitempty"`
}

// SearchResponse is the outcome of a single search
type SearchResponse struct {
	Path         []engine.State  `json:"path"`
	Actions      []engine.Action `json:"actions"`
	TotalNodes   int             `json:"total_nodes"`
	VisitedNodes []engine.State  `json:"visited_nodes"`
	Success      bool            `json:"success"`
	Message      string          `json:"message"`
	Algorithm    string          `json:"algorithm,omitempty"`
	Outcome      string          `json:"outcome,omitempty"`
	PathCost     float64         `json:"path_cost"`
	ElapsedMS    float64         `json:"elapsed_ms"`
	MapName      string          `json:"map_name,omitempty"`
}

// CompareRequest runs several algorithms on the same map. MapName selects a
// stored map; otherwise Search describes the map inline.
type CompareRequest struct {
	MapName    string         `json:"map_name,omitempty"`
	Search     *SearchRequest `json:"search,omitempty"`
	Algorithms []string       `json:"algorithms,omitempty"`
	MaxDepth   int            `json:"max_depth,omitempty"`
}

// CompareResponse holds one result per algorithm, in request order
type CompareResponse struct {
	MapName      string            `json:"map_name,omitempty"`
	Results      []*SearchResponse `json:"results"`
	FewestNodes  string            `json:"fewest_nodes,omitempty"`
	ShortestPath string            `json:"shortest_path,omitempty"`
}

// AlgorithmInfo describes an available search strategy
type AlgorithmInfo struct {
	Token       string   `json:"token"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Aliases     []string `json:"aliases"`
	Optimal     bool     `json:"optimal"`
}

// MapInfo provides summary information about a stored map
type MapInfo struct {
	Filename    string `json:"filename"`
	MapID       string `json:"map_id"` // identifier to use in /api/maps/{name}
	Name        string `json:"name"`
	Description string `json:"description"`
	Rows        int    `json:"rows"`
	Cols        int    `json:"cols"`
	Goals       int    `json:"goals"`
}

// RandomMapRequest generates a map with clustered random walls
type RandomMapRequest struct {
	Name    string         `json:"name,omitempty"`
	Rows    int            `json:"rows,omitempty"`
	Cols    int            `json:"cols,omitempty"`
	Density float64        `json:"density,omitempty"`
	Seed    int64          `json:"seed,omitempty"`
	Start   *engine.State  `json:"start,omitempty"`
	Goals   []engine.State `json:"goals,omitempty"`
	Save    bool           `json:"save,omitempty"`
}
