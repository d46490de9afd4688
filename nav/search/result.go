package search

import "github.com/wricardo/mcp-training/robotnav/nav/engine"

// Outcome classifies how a search ended.
type Outcome int

const (
	// OutcomeFailure means the reachable space was exhausted without a goal.
	OutcomeFailure Outcome = iota
	// OutcomeFound means a goal node was reached.
	OutcomeFound
	// OutcomeCutoff means a depth limit stopped the search before it could decide.
	OutcomeCutoff
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFound:
		return "found"
	case OutcomeCutoff:
		return "cutoff"
	default:
		return "failure"
	}
}

// Result is what a single search invocation produced. NodesVisited always
// equals len(Visited).
type Result struct {
	Algorithm    Algorithm
	Outcome      Outcome
	NodesVisited int
	Visited      []engine.State

	tree *Tree
	goal NodeID
}

func newResult(t *Tree) *Result {
	return &Result{tree: t, goal: NoParent}
}

func (r *Result) visit(s engine.State) {
	r.NodesVisited++
	r.Visited = append(r.Visited, s)
}

func (r *Result) found(id NodeID) *Result {
	r.Outcome = OutcomeFound
	r.goal = id
	return r
}

// Success reports whether a goal was reached.
func (r *Result) Success() bool { return r.Outcome == OutcomeFound }

// Goal returns the goal node, if any.
func (r *Result) Goal() (Node, bool) {
	if r.goal == NoParent {
		return Node{}, false
	}
	return r.tree.Node(r.goal), true
}

// Path returns the states from the initial state to the goal, or nil.
func (r *Result) Path() []engine.State {
	if r.goal == NoParent {
		return nil
	}
	states, _ := r.tree.Path(r.goal)
	return states
}

// Actions returns the actions from the initial state to the goal, or nil.
func (r *Result) Actions() []engine.Action {
	if r.goal == NoParent {
		return nil
	}
	_, actions := r.tree.Path(r.goal)
	return actions
}

// PathCost returns the cost of the solution, or 0 without one.
func (r *Result) PathCost() float64 {
	if r.goal == NoParent {
		return 0
	}
	return r.tree.Node(r.goal).PathCost
}

// Replay applies actions from start with p's transition model and returns
// every state passed through, start included.
func Replay(p engine.Problem, start engine.State, actions []engine.Action) []engine.State {
	states := make([]engine.State, 0, len(actions)+1)
	states = append(states, start)
	cur := start
	for _, a := range actions {
		cur = p.Result(cur, a)
		states = append(states, cur)
	}
	return states
}
