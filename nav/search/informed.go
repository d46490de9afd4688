package search

import "github.com/wricardo/mcp-training/robotnav/nav/engine"

// EvalFunc scores a node; lower values are expanded first.
type EvalFunc func(t *Tree, id NodeID) float64

// BestFirst runs graph search ordered by f. A frontier entry is replaced
// when its state is generated again with a lower score; explored states
// are never re-queued.
func BestFirst(p engine.Problem, f EvalFunc) *Result {
	t := newTree()
	r := newResult(t)

	frontier := NewPriorityQueue()
	root := t.Root(p.Initial())
	frontier.Push(p.Initial(), root, f(t, root))
	explored := make(map[engine.State]struct{})

	for frontier.Len() > 0 {
		id, _ := frontier.Pop()
		s := t.State(id)
		r.visit(s)
		if p.GoalTest(s) {
			return r.found(id)
		}
		explored[s] = struct{}{}

		for _, a := range p.Actions(s) {
			next := p.Result(s, a)
			if _, seen := explored[next]; seen {
				continue
			}
			child := t.Child(id, a, next, p.StepCost(s, a, next))
			score := f(t, child)
			if old, queued := frontier.PriorityOf(next); !queued || score < old {
				frontier.Push(next, child, score)
			}
		}
	}
	return r
}

func greedyBestFirst(p engine.Problem, h Heuristic) *Result {
	goals := p.Goals()
	return BestFirst(p, func(t *Tree, id NodeID) float64 {
		return h(t.State(id), goals)
	})
}

func aStar(p engine.Problem, h Heuristic) *Result {
	goals := p.Goals()
	return BestFirst(p, func(t *Tree, id NodeID) float64 {
		n := t.Node(id)
		return n.PathCost + h(n.State, goals)
	})
}
