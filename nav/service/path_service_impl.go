package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wricardo/mcp-training/robotnav/nav/engine"
	"github.com/wricardo/mcp-training/robotnav/nav/search"
)

// pathServiceImpl implements the PathService interface
type pathServiceImpl struct {
	maps MapManager
	cfg  Config
}

// NewPathService creates a new path service instance
func NewPathService(maps MapManager, cfg Config) PathService {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = search.DefaultMaxDepth
	}
	return &pathServiceImpl{
		maps: maps,
		cfg:  cfg,
	}
}

// Search builds the grid described by req and runs the requested algorithm
func (s *pathServiceImpl) Search(ctx context.Context, req *SearchRequest) (*SearchResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty request", ErrInvalidRequest)
	}
	alg, err := parseAlgorithm(req.Algorithm)
	if err != nil {
		return nil, err
	}
	problem, err := buildProblem(req)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, "", alg, problem, s.options(req.MaxDepth))
}

// SearchMap runs algorithm on a stored map. An empty name selects the default map.
func (s *pathServiceImpl) SearchMap(ctx context.Context, mapName, algorithm string) (*SearchResponse, error) {
	alg, err := parseAlgorithm(algorithm)
	if err != nil {
		return nil, err
	}
	def, err := s.LoadMap(ctx, mapName)
	if err != nil {
		return nil, err
	}
	problem, err := def.BuildProblem()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMap, err)
	}
	return s.run(ctx, def.Name, alg, problem, s.options(0))
}

// Compare runs several algorithms concurrently on one map. Each search has
// its own tree and statistics; only the read-only problem is shared.
func (s *pathServiceImpl) Compare(ctx context.Context, req *CompareRequest) (*CompareResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty request", ErrInvalidRequest)
	}

	algs := search.Algorithms()
	if len(req.Algorithms) > 0 {
		algs = algs[:0:0]
		for _, token := range req.Algorithms {
			alg, err := parseAlgorithm(token)
			if err != nil {
				return nil, err
			}
			algs = append(algs, alg)
		}
	}

	var (
		problem engine.Problem
		mapName string
		err     error
	)
	maxDepth := req.MaxDepth
	if req.Search != nil {
		problem, err = buildProblem(req.Search)
		if maxDepth == 0 {
			maxDepth = req.Search.MaxDepth
		}
	} else {
		var def *engine.MapDefinition
		def, err = s.LoadMap(ctx, req.MapName)
		if err == nil {
			mapName = def.Name
			problem, err = def.BuildProblem()
		}
	}
	if err != nil {
		return nil, err
	}

	results := make([]*SearchResponse, len(algs))
	g, gctx := errgroup.WithContext(ctx)
	for i, alg := range algs {
		g.Go(func() error {
			resp, err := s.run(gctx, mapName, alg, problem, s.options(maxDepth))
			if err != nil {
				return fmt.Errorf("%s: %w", alg, err)
			}
			results[i] = resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &CompareResponse{MapName: mapName, Results: results}
	fewest, shortest := -1, -1
	for i, r := range results {
		if !r.Success {
			continue
		}
		if fewest < 0 || r.TotalNodes < results[fewest].TotalNodes {
			fewest = i
		}
		if shortest < 0 || r.PathCost < results[shortest].PathCost {
			shortest = i
		}
	}
	if fewest >= 0 {
		out.FewestNodes = results[fewest].Algorithm
		out.ShortestPath = results[shortest].Algorithm
	}
	return out, nil
}

// ListAlgorithms describes every available strategy
func (s *pathServiceImpl) ListAlgorithms(ctx context.Context) []*AlgorithmInfo {
	algs := search.Algorithms()
	out := make([]*AlgorithmInfo, 0, len(algs))
	for _, a := range algs {
		out = append(out, &AlgorithmInfo{
			Token:       a.String(),
			Name:        a.Name(),
			Description: a.Description(),
			Aliases:     a.Aliases(),
			Optimal:     a == search.BreadthFirst || a == search.AStar || a == search.BidirectionalAStar,
		})
	}
	return out
}

// ListMaps returns all stored maps
func (s *pathServiceImpl) ListMaps(ctx context.Context) ([]*MapInfo, error) {
	return s.maps.ListMaps()
}

// LoadMap loads a stored map. An empty name selects the default map.
func (s *pathServiceImpl) LoadMap(ctx context.Context, mapName string) (*engine.MapDefinition, error) {
	if mapName == "" {
		if def := s.maps.GetDefault(); def != nil {
			return def, nil
		}
		return nil, fmt.Errorf("%w: no default map", ErrMapNotFound)
	}

	def, err := s.maps.LoadMap(mapName)
	if err != nil {
		if errors.Is(err, ErrMapNotFound) {
			if available, listErr := s.maps.ListMaps(); listErr == nil && len(available) > 0 {
				ids := make([]string, 0, len(available))
				for _, m := range available {
					ids = append(ids, m.MapID)
				}
				return nil, fmt.Errorf("%w: '%s'. Available maps: %v", ErrMapNotFound, mapName, ids)
			}
		}
		return nil, err
	}
	return def, nil
}

// SaveMap validates and stores a map definition
func (s *pathServiceImpl) SaveMap(ctx context.Context, mapName string, def *engine.MapDefinition) error {
	if err := engine.ValidateMapID(mapName); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMap, err)
	}
	if err := engine.ValidateMapDefinition(def); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMap, err)
	}
	return s.maps.SaveMap(mapName, def)
}

// RandomMap generates a map with clustered random walls, optionally saving it
func (s *pathServiceImpl) RandomMap(ctx context.Context, req *RandomMapRequest) (*engine.MapDefinition, error) {
	if req == nil {
		req = &RandomMapRequest{}
	}
	rows, cols := req.Rows, req.Cols
	if rows == 0 {
		rows = 10
	}
	if cols == 0 {
		cols = 10
	}
	density := req.Density
	if density == 0 {
		density = 0.25
	}
	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	start := engine.State{}
	if req.Start != nil {
		start = *req.Start
	}
	goals := req.Goals
	if len(goals) == 0 {
		goals = []engine.State{{X: cols - 1, Y: rows - 1}}
	}
	name := req.Name
	if name == "" {
		name = fmt.Sprintf("random-%d", seed)
	}

	def := &engine.MapDefinition{
		Name:        name,
		Description: fmt.Sprintf("Random %dx%d map, density %.2f, seed %d", rows, cols, density, seed),
		Rows:        rows,
		Cols:        cols,
		Start:       start,
		Goals:       goals,
	}
	if err := engine.ValidateMapDefinition(def); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	def.Walls = engine.RandomWalls(rows, cols, density, seed, append([]engine.State{start}, goals...)...)

	if req.Save {
		if err := s.maps.SaveMap(name, def); err != nil {
			return nil, fmt.Errorf("failed to save map %s: %w", name, err)
		}
	}
	return def, nil
}

func (s *pathServiceImpl) options(maxDepth int) []search.Option {
	if maxDepth <= 0 {
		maxDepth = s.cfg.MaxDepth
	}
	return []search.Option{
		search.WithMaxDepth(maxDepth),
		search.WithBoundPolicy(s.cfg.BoundPolicy),
	}
}

type runOutcome struct {
	result  *search.Result
	err     error
	elapsed time.Duration
}

// run executes one search on its own goroutine so the caller can give up
// at its deadline. The search itself runs to completion regardless.
func (s *pathServiceImpl) run(ctx context.Context, mapName string, alg search.Algorithm, p engine.Problem, opts []search.Option) (*SearchResponse, error) {
	if s.cfg.SearchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.SearchTimeout)
		defer cancel()
	}

	done := make(chan runOutcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- runOutcome{err: fmt.Errorf("search %s panicked: %v", alg, r)}
			}
		}()
		started := time.Now()
		res, err := alg.Run(p, opts...)
		done <- runOutcome{result: res, err: err, elapsed: time.Since(started)}
	}()

	var out runOutcome
	select {
	case <-ctx.Done():
		log.Printf("[SEARCH] algo=%s map=%s status=abandoned err=%v", alg, mapOrInline(mapName), ctx.Err())
		return nil, ctx.Err()
	case out = <-done:
	}
	if out.err != nil {
		if errors.Is(out.err, search.ErrOptionViolation) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, out.err)
		}
		return nil, out.err
	}

	resp := newSearchResponse(out.result, out.elapsed)
	resp.MapName = mapName

	log.Printf("[SEARCH] algo=%s map=%s nodes=%d outcome=%s path=%d elapsed=%s",
		alg, mapOrInline(mapName), resp.TotalNodes, resp.Outcome, len(resp.Actions), out.elapsed.Round(time.Microsecond))
	return resp, nil
}

func mapOrInline(name string) string {
	if name == "" {
		return "inline"
	}
	return name
}

func newSearchResponse(r *search.Result, elapsed time.Duration) *SearchResponse {
	resp := &SearchResponse{
		Path:         []engine.State{},
		Actions:      []engine.Action{},
		TotalNodes:   r.NodesVisited,
		VisitedNodes: r.Visited,
		Success:      r.Success(),
		Algorithm:    r.Algorithm.String(),
		Outcome:      r.Outcome.String(),
		ElapsedMS:    float64(elapsed.Microseconds()) / 1000,
	}
	if resp.VisitedNodes == nil {
		resp.VisitedNodes = []engine.State{}
	}

	switch r.Outcome {
	case search.OutcomeFound:
		resp.Path = r.Path()
		resp.Actions = r.Actions()
		resp.PathCost = r.PathCost()
		resp.Message = MessageFound
	case search.OutcomeCutoff:
		resp.Message = MessageCutoff
	default:
		resp.Message = MessageNoPath
	}
	return resp
}

func parseAlgorithm(token string) (search.Algorithm, error) {
	alg, err := search.ParseAlgorithm(token)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return alg, nil
}

// buildProblem turns an inline request into a grid problem. Walls outside
// the grid are ignored.
func buildProblem(req *SearchRequest) (*engine.GridProblem, error) {
	if len(req.Goals) == 0 {
		return nil, fmt.Errorf("%w: at least one goal is required", ErrInvalidRequest)
	}

	var (
		grid *engine.Grid
		err  error
	)
	if len(req.Grid) > 0 {
		grid, err = engine.GridFromMatrix(req.Grid)
	} else {
		grid, err = engine.NewGrid(req.Rows, req.Cols)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	for _, r := range req.RectWalls {
		grid.CreateWall(r.X, r.Y, r.Width, r.Height)
	}
	grid.CreateWallWithPositions(req.Walls)

	return engine.NewGridProblem(grid, req.Start, req.Goals), nil
}

// Describe renders a map definition as text with S for the start, G for
// goals and # for walls. Cells listed in path are drawn as *.
func Describe(def *engine.MapDefinition, path []engine.State) string {
	grid, err := def.BuildGrid()
	if err != nil {
		return err.Error()
	}

	marks := make(map[engine.State]byte)
	for _, s := range path {
		marks[s] = '*'
	}
	for _, g := range def.Goals {
		marks[g] = 'G'
	}
	marks[def.Start] = 'S'

	var sb strings.Builder
	for y := 0; y < grid.Rows; y++ {
		for x := 0; x < grid.Cols; x++ {
			if m, ok := marks[engine.State{X: x, Y: y}]; ok {
				sb.WriteByte(m)
			} else if !grid.IsMovable(x, y) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
