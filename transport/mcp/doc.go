// Package mcp exposes the robot navigator to AI agents over the Model
// Context Protocol.
//
// The Client is a thin proxy: every tool calls the REST API and renders
// the JSON answer as text, with maps drawn as ASCII grids.
//
// MCP Tools:
//   - find_path: Search an inline grid
//   - search_map: Search a stored map
//   - compare_algorithms: Compare algorithms on one map
//   - list_maps, get_map: Browse stored maps
//   - list_algorithms: Describe the available algorithms
//   - random_map: Generate a map
//   - pathfinding_instructions: Explain formats and algorithms
//
// Transport Modes:
//
// The MCP server returned by GetMCPServer can be served over stdio with
// server.ServeStdio or mounted on the HTTP server at /mcp.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
