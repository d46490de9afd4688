package engine

// Problem is the contract every search algorithm works against.
type Problem interface {
	// Initial returns the start state.
	Initial() State
	// Goals returns the goal states in declaration order.
	Goals() []State
	// GoalTest reports whether s is one of the goals.
	GoalTest(s State) bool
	// Actions returns the legal actions from s in expansion order.
	Actions(s State) []Action
	// Result applies a to s. Unknown actions leave s unchanged.
	Result(s State, a Action) State
	// StepCost is the cost of moving from s to next with a.
	StepCost(s State, a Action, next State) float64
	// Traversable reports whether the robot may stand on s.
	Traversable(s State) bool
}

// StepCostFunc overrides the unit step cost of a GridProblem
type StepCostFunc func(s State, a Action, next State) float64

// ProblemOption configures a GridProblem
type ProblemOption func(*GridProblem)

// WithStepCost replaces the unit step cost
func WithStepCost(fn StepCostFunc) ProblemOption {
	return func(p *GridProblem) {
		if fn != nil {
			p.stepCost = fn
		}
	}
}

// GridProblem moves a robot one cell at a time on a Grid
type GridProblem struct {
	grid     *Grid
	initial  State
	goals    []State
	goalSet  map[State]struct{}
	stepCost StepCostFunc
}

// NewGridProblem creates a problem over grid. A single goal and several
// goals are handled the same way.
func NewGridProblem(grid *Grid, initial State, goals []State, opts ...ProblemOption) *GridProblem {
	p := &GridProblem{
		grid:    grid,
		initial: initial,
		goals:   append([]State(nil), goals...),
		goalSet: make(map[State]struct{}, len(goals)),
	}
	for _, g := range goals {
		p.goalSet[g] = struct{}{}
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Grid returns the underlying grid
func (p *GridProblem) Grid() *Grid { return p.grid }

func (p *GridProblem) Initial() State { return p.initial }

func (p *GridProblem) Goals() []State { return p.goals }

func (p *GridProblem) GoalTest(s State) bool {
	_, ok := p.goalSet[s]
	return ok
}

func (p *GridProblem) Actions(s State) []Action {
	actions := make([]Action, 0, len(Actions))
	for _, a := range Actions {
		next := s.Move(a)
		if p.grid.IsMovable(next.X, next.Y) {
			actions = append(actions, a)
		}
	}
	return actions
}

func (p *GridProblem) Result(s State, a Action) State {
	return s.Move(a)
}

func (p *GridProblem) StepCost(s State, a Action, next State) float64 {
	if p.stepCost != nil {
		return p.stepCost(s, a, next)
	}
	return 1
}

func (p *GridProblem) Traversable(s State) bool {
	return p.grid.IsMovable(s.X, s.Y)
}
