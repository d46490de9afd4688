package search

import (
	"math"

	"github.com/wricardo/mcp-training/robotnav/nav/engine"
)

// frontSearch is one direction of a bidirectional search.
type frontSearch struct {
	frontier *PriorityQueue
	explored map[engine.State]NodeID
	targets  []engine.State
	visited  []engine.State
}

func newFrontSearch(targets []engine.State) *frontSearch {
	return &frontSearch{
		frontier: NewPriorityQueue(),
		explored: make(map[engine.State]NodeID),
		targets:  targets,
	}
}

func (f *frontSearch) score(t *Tree, id NodeID, h Heuristic) float64 {
	n := t.Node(id)
	return n.PathCost + h(n.State, f.targets)
}

func (f *frontSearch) pop(t *Tree) NodeID {
	id, _ := f.frontier.Pop()
	s := t.State(id)
	f.visited = append(f.visited, s)
	f.explored[s] = id
	return id
}

func (f *frontSearch) expand(p engine.Problem, t *Tree, id NodeID, h Heuristic) {
	s := t.State(id)
	for _, a := range p.Actions(s) {
		next := p.Result(s, a)
		if _, seen := f.explored[next]; seen {
			continue
		}
		child := t.Child(id, a, next, p.StepCost(s, a, next))
		score := f.score(t, child, h)
		if old, queued := f.frontier.PriorityOf(next); !queued || score < old {
			f.frontier.Push(next, child, score)
		}
	}
}

// meeting pairs a forward node with the backward node at the same state.
// back is NoParent when the forward node is itself a goal.
type meeting struct {
	fwd, back NodeID
	cost      float64
}

// bidirectionalAStar runs A* forward from the initial state and backward
// from every traversable goal, popping one node per direction each round.
// A meeting happens when a popped state has already been explored by the
// other direction. Unless firstMeeting is set, the search keeps going until
// no frontier can yield a cheaper meeting.
func bidirectionalAStar(p engine.Problem, h Heuristic, firstMeeting bool) *Result {
	t := newTree()
	r := newResult(t)

	start := p.Initial()
	root := t.Root(start)
	if p.GoalTest(start) {
		r.visit(start)
		return r.found(root)
	}

	fwd := newFrontSearch(p.Goals())
	bwd := newFrontSearch([]engine.State{start})

	fwd.frontier.Push(start, root, fwd.score(t, root, h))
	for _, g := range p.Goals() {
		if !p.Traversable(g) || bwd.frontier.Contains(g) {
			continue
		}
		id := t.Root(g)
		bwd.frontier.Push(g, id, bwd.score(t, id, h))
	}

	best := meeting{fwd: NoParent, back: NoParent, cost: math.Inf(1)}
	consider := func(fid, bid NodeID) {
		cost := t.Node(fid).PathCost
		if bid != NoParent {
			cost += t.Node(bid).PathCost
		}
		if cost < best.cost {
			best = meeting{fwd: fid, back: bid, cost: cost}
		}
	}

	for fwd.frontier.Len() > 0 && bwd.frontier.Len() > 0 {
		if best.fwd != NoParent && best.cost <= lowerBound(fwd.frontier, bwd.frontier) {
			break
		}

		fid := fwd.pop(t)
		bid := bwd.pop(t)
		fs, bs := t.State(fid), t.State(bid)

		if other, ok := bwd.explored[fs]; ok {
			consider(fid, other)
		}
		if other, ok := fwd.explored[bs]; ok {
			consider(other, bid)
		}
		if firstMeeting {
			if best.fwd != NoParent {
				break
			}
		} else if p.GoalTest(fs) {
			consider(fid, NoParent)
		}

		fwd.expand(p, t, fid, h)
		bwd.expand(p, t, bid, h)
	}

	r.Visited = append(fwd.visited, bwd.visited...)
	r.NodesVisited = len(r.Visited)
	if best.fwd == NoParent {
		return r
	}
	return r.found(mergePaths(p, t, best.fwd, best.back))
}

func lowerBound(a, b *PriorityQueue) float64 {
	fa, _ := a.Peek()
	fb, _ := b.Peek()
	return math.Max(fa, fb)
}

// mergePaths extends the forward node with the backward chain above back,
// reversing each backward action. The backward meeting node itself is
// dropped since it shares its state with fwd.
func mergePaths(p engine.Problem, t *Tree, fwd, back NodeID) NodeID {
	cur := fwd
	if back == NoParent {
		return cur
	}
	for n := t.Node(back); n.Parent != NoParent; n = t.Node(n.Parent) {
		from := t.State(cur)
		a := n.Action.Reverse()
		next := t.State(n.Parent)
		cur = t.Child(cur, a, next, p.StepCost(from, a, next))
	}
	return cur
}
