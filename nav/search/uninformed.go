package search

import "github.com/wricardo/mcp-training/robotnav/nav/engine"

// breadthFirst tests children for the goal when they are generated, so the
// goal node itself is counted as visited without being expanded.
func breadthFirst(p engine.Problem) *Result {
	t := newTree()
	r := newResult(t)

	root := t.Root(p.Initial())
	if p.GoalTest(p.Initial()) {
		r.visit(p.Initial())
		return r.found(root)
	}

	frontier := newFIFOFrontier()
	frontier.push(t, root)
	explored := make(map[engine.State]struct{})

	for frontier.len() > 0 {
		id := frontier.pop(t)
		s := t.State(id)
		r.visit(s)
		explored[s] = struct{}{}

		for _, child := range t.Expand(p, id) {
			cs := t.State(child)
			if _, seen := explored[cs]; seen || frontier.contains(cs) {
				continue
			}
			if p.GoalTest(cs) {
				r.visit(cs)
				return r.found(child)
			}
			frontier.push(t, child)
		}
	}
	return r
}

// depthFirst tests for the goal when a node is popped.
func depthFirst(p engine.Problem) *Result {
	t := newTree()
	r := newResult(t)

	frontier := newLIFOFrontier()
	frontier.push(t, t.Root(p.Initial()))
	explored := make(map[engine.State]struct{})

	for frontier.len() > 0 {
		id := frontier.pop(t)
		s := t.State(id)
		r.visit(s)
		if p.GoalTest(s) {
			return r.found(id)
		}
		explored[s] = struct{}{}

		for _, child := range t.Expand(p, id) {
			cs := t.State(child)
			if _, seen := explored[cs]; seen || frontier.contains(cs) {
				continue
			}
			frontier.push(t, child)
		}
	}
	return r
}

// iterativeDeepening runs depth-limited searches with limits 0..maxDepth.
// Each round starts with a fresh tree and explored set; the visit
// statistics accumulate over all rounds.
func iterativeDeepening(p engine.Problem, maxDepth int, bound BoundPolicy) *Result {
	r := newResult(nil)

	for limit := 0; limit <= maxDepth; limit++ {
		t := newTree()
		r.tree = t
		dls := &depthLimited{problem: p, tree: t, result: r, explored: make(map[engine.State]struct{})}

		id, outcome := dls.search(t.Root(p.Initial()), limit)
		switch outcome {
		case OutcomeFound:
			return r.found(id)
		case OutcomeFailure:
			return r
		}
	}

	if bound == BoundCutoff {
		r.Outcome = OutcomeCutoff
	}
	return r
}

type depthLimited struct {
	problem  engine.Problem
	tree     *Tree
	result   *Result
	explored map[engine.State]struct{}
}

func (d *depthLimited) search(id NodeID, limit int) (NodeID, Outcome) {
	s := d.tree.State(id)
	d.result.visit(s)
	if d.problem.GoalTest(s) {
		return id, OutcomeFound
	}
	if limit == 0 {
		return NoParent, OutcomeCutoff
	}
	d.explored[s] = struct{}{}

	cutoff := false
	for _, a := range d.problem.Actions(s) {
		next := d.problem.Result(s, a)
		if _, seen := d.explored[next]; seen {
			continue
		}
		child := d.tree.Child(id, a, next, d.problem.StepCost(s, a, next))
		found, outcome := d.search(child, limit-1)
		switch outcome {
		case OutcomeFound:
			return found, OutcomeFound
		case OutcomeCutoff:
			cutoff = true
		}
	}
	if cutoff {
		return NoParent, OutcomeCutoff
	}
	return NoParent, OutcomeFailure
}
