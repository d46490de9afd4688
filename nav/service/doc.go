// Package service provides the path-finding operations shared by every
// transport of the robot navigator.
//
// The service package implements:
//   - Inline searches over a grid described in the request
//   - Searches over stored maps loaded through a MapManager
//   - Concurrent comparison of several algorithms on one map
//   - Random map generation
//
// Core Interfaces:
//
// PathService is the main interface used by the HTTP, WebSocket, MCP and
// command line front ends. MapManager loads and stores map definitions.
//
// Usage:
//
//	maps, err := config.NewManager("maps")
//	if err != nil {
//		log.Fatal(err)
//	}
//	svc := service.NewPathService(maps, service.DefaultConfig())
//
//	resp, err := svc.SearchMap(ctx, "map1", "astar")
//
// Every search builds its own tree and statistics, so a PathService is safe
// for concurrent use.
package service
