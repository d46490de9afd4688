package search

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/wricardo/mcp-training/robotnav/nav/engine"
)

var (
	// ErrUnknownAlgorithm is returned by ParseAlgorithm for unrecognised tokens.
	ErrUnknownAlgorithm = errors.New("search: unknown search method")
	// ErrOptionViolation indicates an invalid option value.
	ErrOptionViolation = errors.New("search: invalid option")
	// ErrNilProblem is returned when Run is called without a problem.
	ErrNilProblem = errors.New("search: problem is nil")
)

// Algorithm names one search strategy.
type Algorithm int

const (
	BreadthFirst Algorithm = iota
	DepthFirst
	GreedyBestFirst
	AStar
	IterativeDeepening
	BidirectionalAStar
)

var algorithmInfo = [...]struct {
	token, name, description string
}{
	BreadthFirst:       {"bfs", "Breadth-First Search", "Expands shallowest nodes first; optimal for unit costs"},
	DepthFirst:         {"dfs", "Depth-First Search", "Expands deepest nodes first; low memory, not optimal"},
	GreedyBestFirst:    {"gbfs", "Greedy Best-First Search", "Expands the node closest to a goal by Manhattan distance"},
	AStar:              {"astar", "A* Search", "Expands by path cost plus Manhattan distance; optimal"},
	IterativeDeepening: {"cus1", "Iterative Deepening Search", "Depth-limited DFS with increasing limits"},
	BidirectionalAStar: {"cus2", "Bidirectional A* Search", "A* from the start and from every goal; keeps searching past the first meeting until no shorter path is possible"},
}

var algorithmAliases = map[string]Algorithm{
	"bfs":                 BreadthFirst,
	"breadth-first":       BreadthFirst,
	"dfs":                 DepthFirst,
	"depth-first":         DepthFirst,
	"gbfs":                GreedyBestFirst,
	"greedy":              GreedyBestFirst,
	"astar":               AStar,
	"as":                  AStar,
	"a*":                  AStar,
	"cus1":                IterativeDeepening,
	"ids":                 IterativeDeepening,
	"iterative-deepening": IterativeDeepening,
	"cus2":                BidirectionalAStar,
	"jps":                 BidirectionalAStar,
	"bidirectional":       BidirectionalAStar,
	"bidirectional-astar": BidirectionalAStar,
}

// Algorithms lists every strategy in declaration order.
func Algorithms() []Algorithm {
	return []Algorithm{BreadthFirst, DepthFirst, GreedyBestFirst, AStar, IterativeDeepening, BidirectionalAStar}
}

// ParseAlgorithm maps a case-insensitive token to an Algorithm.
func ParseAlgorithm(token string) (Algorithm, error) {
	a, ok := algorithmAliases[strings.ToLower(strings.TrimSpace(token))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, token)
	}
	return a, nil
}

func (a Algorithm) valid() bool { return a >= BreadthFirst && a <= BidirectionalAStar }

// String returns the canonical token.
func (a Algorithm) String() string {
	if !a.valid() {
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
	return algorithmInfo[a].token
}

// Name returns a human readable name.
func (a Algorithm) Name() string {
	if !a.valid() {
		return a.String()
	}
	return algorithmInfo[a].name
}

// Description summarises the strategy.
func (a Algorithm) Description() string {
	if !a.valid() {
		return ""
	}
	return algorithmInfo[a].description
}

// Aliases returns every token accepted for a, sorted by length then name.
func (a Algorithm) Aliases() []string {
	var out []string
	for tok, alg := range algorithmAliases {
		if alg == a {
			out = append(out, tok)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) < len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}

// Run executes the strategy on p. The error is non-nil only for invalid
// input; an exhausted or cut-off search is reported through the Result.
func (a Algorithm) Run(p engine.Problem, opts ...Option) (*Result, error) {
	if p == nil {
		return nil, ErrNilProblem
	}
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}

	var r *Result
	switch a {
	case BreadthFirst:
		r = breadthFirst(p)
	case DepthFirst:
		r = depthFirst(p)
	case GreedyBestFirst:
		r = greedyBestFirst(p, o.heuristic)
	case AStar:
		r = aStar(p, o.heuristic)
	case IterativeDeepening:
		r = iterativeDeepening(p, o.maxDepth, o.bound)
	case BidirectionalAStar:
		r = bidirectionalAStar(p, o.heuristic, o.firstMeeting)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, int(a))
	}
	r.Algorithm = a
	return r, nil
}

// Run parses token and runs the matching strategy.
func Run(token string, p engine.Problem, opts ...Option) (*Result, error) {
	a, err := ParseAlgorithm(token)
	if err != nil {
		return nil, err
	}
	return a.Run(p, opts...)
}
