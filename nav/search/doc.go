// Package search implements the path-finding strategies used by the robot
// navigator: breadth-first, depth-first, iterative deepening, greedy
// best-first, A* and bidirectional A*.
//
// Every strategy works against engine.Problem and returns a *Result holding
// the outcome, the visit statistics of that one invocation and, on success,
// the goal node from which Path and Actions are reconstructed. Search nodes
// live in an index-based Tree owned by the Result.
//
//	res, err := search.AStar.Run(problem)
//	if err != nil {
//		return err
//	}
//	if res.Success() {
//		fmt.Println(res.Actions(), res.NodesVisited)
//	}
//
// Strategies are pure functions of their input; concurrent runs on the same
// problem are safe as long as the grid is not mutated.
package search
