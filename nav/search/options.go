package search

import (
	"fmt"

	"github.com/wricardo/mcp-training/robotnav/nav/engine"
)

// DefaultMaxDepth is the deepest limit iterative deepening tries by default.
const DefaultMaxDepth = 100

// Heuristic estimates the remaining cost from s to the closest of targets.
type Heuristic func(s engine.State, targets []engine.State) float64

// Manhattan is the default heuristic: the Manhattan distance to the nearest target.
func Manhattan(s engine.State, targets []engine.State) float64 {
	return float64(engine.NearestDistance(s, targets))
}

// BoundPolicy decides what iterative deepening reports when the last
// depth limit still cut off part of the tree.
type BoundPolicy int

const (
	// BoundCutoff reports OutcomeCutoff.
	BoundCutoff BoundPolicy = iota
	// BoundFailure reports OutcomeFailure.
	BoundFailure
)

type options struct {
	maxDepth     int
	bound        BoundPolicy
	heuristic    Heuristic
	firstMeeting bool
	err          error
}

// Option configures a search run.
type Option func(*options)

// WithMaxDepth sets the deepest limit used by iterative deepening.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		if depth < 0 {
			o.err = fmt.Errorf("%w: max depth %d is negative", ErrOptionViolation, depth)
			return
		}
		o.maxDepth = depth
	}
}

// WithBoundPolicy selects how iterative deepening reports a search that
// was still cutting off at the maximum depth.
func WithBoundPolicy(p BoundPolicy) Option {
	return func(o *options) {
		if p != BoundCutoff && p != BoundFailure {
			o.err = fmt.Errorf("%w: unknown bound policy %d", ErrOptionViolation, int(p))
			return
		}
		o.bound = p
	}
}

// WithHeuristic replaces the Manhattan heuristic for the informed searches.
func WithHeuristic(h Heuristic) Option {
	return func(o *options) {
		if h == nil {
			o.err = fmt.Errorf("%w: nil heuristic", ErrOptionViolation)
			return
		}
		o.heuristic = h
	}
}

// WithFirstMeeting makes bidirectional A* stop at the first meeting state
// instead of continuing until no cheaper meeting is possible.
func WithFirstMeeting() Option {
	return func(o *options) { o.firstMeeting = true }
}

func buildOptions(opts []Option) (options, error) {
	o := options{
		maxDepth:  DefaultMaxDepth,
		bound:     BoundCutoff,
		heuristic: Manhattan,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&o)
		if o.err != nil {
			return o, o.err
		}
	}
	return o, nil
}
