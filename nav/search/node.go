package search

import "github.com/wricardo/mcp-training/robotnav/nav/engine"

// NodeID indexes a node inside a Tree.
type NodeID int

// NoParent marks a root node.
const NoParent NodeID = -1

// Node is one entry of the search tree. Parent always refers to a node
// created earlier in the same Tree.
type Node struct {
	State    engine.State
	Parent   NodeID
	Action   engine.Action
	PathCost float64
	Depth    int
}

// Tree is an append-only arena of search nodes.
type Tree struct {
	nodes []Node
}

func newTree() *Tree {
	return &Tree{nodes: make([]Node, 0, 64)}
}

// Len returns the number of nodes created so far.
func (t *Tree) Len() int { return len(t.nodes) }

// Node returns the node with the given id.
func (t *Tree) Node(id NodeID) Node { return t.nodes[id] }

// State is shorthand for t.Node(id).State.
func (t *Tree) State(id NodeID) engine.State { return t.nodes[id].State }

// Root adds a node without parent or action at zero cost.
func (t *Tree) Root(s engine.State) NodeID {
	t.nodes = append(t.nodes, Node{State: s, Parent: NoParent})
	return NodeID(len(t.nodes) - 1)
}

// Child adds a node reached from parent by a at the given step cost.
func (t *Tree) Child(parent NodeID, a engine.Action, s engine.State, step float64) NodeID {
	p := t.nodes[parent]
	t.nodes = append(t.nodes, Node{
		State:    s,
		Parent:   parent,
		Action:   a,
		PathCost: p.PathCost + step,
		Depth:    p.Depth + 1,
	})
	return NodeID(len(t.nodes) - 1)
}

// Expand creates one child per legal action of the node's state, in the
// problem's action order.
func (t *Tree) Expand(p engine.Problem, id NodeID) []NodeID {
	s := t.nodes[id].State
	actions := p.Actions(s)
	children := make([]NodeID, 0, len(actions))
	for _, a := range actions {
		next := p.Result(s, a)
		children = append(children, t.Child(id, a, next, p.StepCost(s, a, next)))
	}
	return children
}

// Path returns the states and actions from the root to id. A root node
// yields one state and no actions.
func (t *Tree) Path(id NodeID) ([]engine.State, []engine.Action) {
	depth := t.nodes[id].Depth
	states := make([]engine.State, depth+1)
	actions := make([]engine.Action, depth)
	for cur, i := id, depth; cur != NoParent; cur, i = t.nodes[cur].Parent, i-1 {
		n := t.nodes[cur]
		states[i] = n.State
		if i > 0 {
			actions[i-1] = n.Action
		}
	}
	return states, actions
}
