package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/mcp-training/robotnav/nav/engine"
	"github.com/wricardo/mcp-training/robotnav/nav/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			// Longer than the server's default search timeout
			Timeout: 45 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Robot Navigator",
		"2.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Robot Navigator - MCP Interface

This is a thin client that proxies all requests to the REST API server.

A robot moves on a 2D grid one cell at a time (UP, DOWN, LEFT, RIGHT) and must reach
any one of the goal cells. Positions are [x, y] with x the column and y the row.

AVAILABLE TOOLS:
- find_path: Search a grid you describe inline
- search_map: Search a stored map with a chosen algorithm
- compare_algorithms: Run several algorithms on one map and compare node counts
- list_maps: List stored maps
- get_map: Show a stored map as ASCII
- list_algorithms: List search algorithms and their tokens
- random_map: Generate a random map
- pathfinding_instructions: Explain the map format, algorithms and output`),
	)

	c.registerTools()
}

var positionSchema = map[string]interface{}{
	"type":        "array",
	"items":       map[string]interface{}{"type": "integer"},
	"minItems":    2,
	"maxItems":    2,
	"description": "[x, y] with x the column and y the row",
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	algorithmProp := map[string]interface{}{
		"type":        "string",
		"description": "Algorithm token: bfs, dfs, gbfs, astar, cus1 (iterative deepening) or cus2 (bidirectional A*)",
	}

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "find_path",
		Description: "Find a path on a grid described inline",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"rows": map[string]interface{}{
					"type":        "integer",
					"description": "Number of rows (ignored when grid is given)",
				},
				"cols": map[string]interface{}{
					"type":        "integer",
					"description": "Number of columns (ignored when grid is given)",
				},
				"grid": map[string]interface{}{
					"type":        "array",
					"description": "Optional occupancy matrix, one array per row, 1 for a wall",
					"items": map[string]interface{}{
						"type":  "array",
						"items": map[string]interface{}{"type": "integer"},
					},
				},
				"start": positionSchema,
				"goals": map[string]interface{}{
					"type":        "array",
					"description": "Goal positions, each [x, y]",
					"items":       positionSchema,
				},
				"walls": map[string]interface{}{
					"type":        "array",
					"description": "Wall cells, each [row, col]",
					"items": map[string]interface{}{
						"type":  "array",
						"items": map[string]interface{}{"type": "integer"},
					},
				},
				"rect_walls": map[string]interface{}{
					"type":        "array",
					"description": "Rectangular walls, each [x, y, width, height]",
					"items": map[string]interface{}{
						"type":  "array",
						"items": map[string]interface{}{"type": "integer"},
					},
				},
				"algorithm": algorithmProp,
				"max_depth": map[string]interface{}{
					"type":        "integer",
					"description": "Depth limit for iterative deepening (optional)",
				},
			},
			Required: []string{"start", "goals", "algorithm"},
		},
	}, c.handleFindPath)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "search_map",
		Description: "Search a stored map and show the path on the grid",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"map_name": map[string]interface{}{
					"type":        "string",
					"description": "Map id from list_maps",
				},
				"algorithm": algorithmProp,
			},
			Required: []string{"map_name", "algorithm"},
		},
	}, c.handleSearchMap)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "compare_algorithms",
		Description: "Run several algorithms on a stored map and compare nodes visited and path cost",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"map_name": map[string]interface{}{
					"type":        "string",
					"description": "Map id from list_maps (default map when empty)",
				},
				"algorithms": map[string]interface{}{
					"type":        "array",
					"description": "Algorithm tokens to run (all when empty)",
					"items":       map[string]interface{}{"type": "string"},
				},
			},
		},
	}, c.handleCompare)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_maps",
		Description: "List stored maps",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListMaps)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_map",
		Description: "Show a stored map as ASCII (S start, G goal, # wall, . free)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"map_name": map[string]interface{}{
					"type":        "string",
					"description": "Map id from list_maps",
				},
			},
			Required: []string{"map_name"},
		},
	}, c.handleGetMap)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_algorithms",
		Description: "List search algorithms, their tokens and aliases",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListAlgorithms)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "random_map",
		Description: "Generate a map with clustered random walls",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Map name (generated from the seed when empty)",
				},
				"rows": map[string]interface{}{
					"type":        "integer",
					"description": "Number of rows (default 10)",
				},
				"cols": map[string]interface{}{
					"type":        "integer",
					"description": "Number of columns (default 10)",
				},
				"density": map[string]interface{}{
					"type":        "number",
					"description": "Fraction of cells to wall, up to 0.9 (default 0.25)",
				},
				"seed": map[string]interface{}{
					"type":        "integer",
					"description": "Random seed for reproducible maps",
				},
				"save": map[string]interface{}{
					"type":        "boolean",
					"description": "Store the map so search_map can use it",
				},
			},
		},
	}, c.handleRandomMap)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "pathfinding_instructions",
		Description: "Explain the map format, the algorithms and how to read results",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

// decodeArgs re-encodes tool arguments into a request struct
func decodeArgs(args map[string]interface{}, v interface{}) error {
	data, err := json.Marshal(args)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// Tool handlers

func (c *Client) handleFindPath(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var req service.SearchRequest
	if err := decodeArgs(arguments(request), &req); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var resp service.SearchResponse
	if err := c.apiCall(ctx, "POST", "/api/search", &req, &resp); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSearchResponse(&resp)
	if def := requestMap(&req); def != nil {
		result += "\n" + service.Describe(def, resp.Path)
	}
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleSearchMap(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	mapName, _ := args["map_name"].(string)
	algorithm, _ := args["algorithm"].(string)
	if mapName == "" {
		return mcp.NewToolResultError("map_name is required"), nil
	}

	var resp service.SearchResponse
	body := map[string]string{"algorithm": algorithm}
	if err := c.apiCall(ctx, "POST", fmt.Sprintf("/api/maps/%s/search", url.PathEscape(mapName)), body, &resp); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSearchResponse(&resp)

	var def engine.MapDefinition
	if err := c.apiCall(ctx, "GET", fmt.Sprintf("/api/maps/%s", url.PathEscape(mapName)), nil, &def); err == nil {
		result += "\n" + service.Describe(&def, resp.Path)
	}
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleCompare(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var req service.CompareRequest
	if err := decodeArgs(arguments(request), &req); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var resp service.CompareResponse
	if err := c.apiCall(ctx, "POST", "/api/compare", &req, &resp); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatComparison(&resp)), nil
}

func (c *Client) handleListMaps(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var maps []service.MapInfo
	if err := c.apiCall(ctx, "GET", "/api/maps", nil, &maps); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Available Maps (%d):\n\n", len(maps))
	for _, m := range maps {
		fmt.Fprintf(&sb, "• %s - %s\n", m.MapID, m.Name)
		if m.Description != "" {
			fmt.Fprintf(&sb, "  %s\n", m.Description)
		}
		fmt.Fprintf(&sb, "  Grid: %dx%d, Goals: %d\n\n", m.Rows, m.Cols, m.Goals)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (c *Client) handleGetMap(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mapName, _ := arguments(request)["map_name"].(string)
	if mapName == "" {
		return mcp.NewToolResultError("map_name is required"), nil
	}

	var def engine.MapDefinition
	if err := c.apiCall(ctx, "GET", fmt.Sprintf("/api/maps/%s", url.PathEscape(mapName)), nil, &def); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMap(&def)), nil
}

func (c *Client) handleListAlgorithms(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var algs []service.AlgorithmInfo
	if err := c.apiCall(ctx, "GET", "/api/algorithms", nil, &algs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	sb.WriteString("Search Algorithms:\n\n")
	for _, a := range algs {
		optimal := ""
		if a.Optimal {
			optimal = " (shortest path)"
		}
		fmt.Fprintf(&sb, "• %s - %s%s\n  %s\n", a.Token, a.Name, optimal, a.Description)
		if len(a.Aliases) > 0 {
			fmt.Fprintf(&sb, "  Aliases: %s\n", strings.Join(a.Aliases, ", "))
		}
		sb.WriteString("\n")
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (c *Client) handleRandomMap(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var req service.RandomMapRequest
	if err := decodeArgs(arguments(request), &req); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var def engine.MapDefinition
	if err := c.apiCall(ctx, "POST", "/api/maps/random", &req, &def); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatMap(&def)
	if req.Save {
		result = fmt.Sprintf("Saved as %s\n\n%s", def.Name, result)
	}
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Robot Navigator - Path Finding Instructions

THE PROBLEM:
A robot starts on one cell of a rectangular grid and must reach any one of the goal
cells. Each move goes one cell UP, DOWN, LEFT or RIGHT and costs 1. Walls and the grid
edge cannot be entered.

COORDINATES:
• Positions (start, goals, paths) are [x, y]: x is the column, y the row, (0,0) top left
• Wall cells are [row, col]
• Rectangular walls are [x, y, width, height] starting at the top left corner

GRID LEGEND:
• S - Start
• G - Goal
• # - Wall
• * - Cell on the path found
• . - Free cell

ALGORITHMS:
• bfs - Breadth-first search. Fewest moves. Expands level by level.
• dfs - Depth-first search. Finds a path quickly on open maps but not the shortest.
• gbfs - Greedy best-first. Follows the Manhattan distance to the nearest goal. Fast, not optimal.
• astar - A*. Orders by cost so far plus Manhattan distance. Fewest moves.
• cus1 - Iterative deepening. Depth-first rounds with a growing limit (max_depth caps it).
• cus2 - Bidirectional A*. Searches from the start and from the goals at once. Fewest moves.

READING RESULTS:
• Actions: the moves from start to goal
• Total nodes: how many nodes the search visited
• Outcome: found, failure (no path exists) or cutoff (iterative deepening hit max_depth)

TIPS:
• Use compare_algorithms to see how many nodes each strategy visits on the same map
• Use get_map before searching to see the layout
• Use random_map with a seed to reproduce a map`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting

func formatSearchResponse(resp *service.SearchResponse) string {
	var sb strings.Builder

	status := "✗"
	if resp.Success {
		status = "✓"
	}
	name := resp.Algorithm
	if resp.MapName != "" {
		name = fmt.Sprintf("%s on %s", resp.Algorithm, resp.MapName)
	}
	fmt.Fprintf(&sb, "%s %s: %s\n", status, name, resp.Message)
	fmt.Fprintf(&sb, "Outcome: %s\n", resp.Outcome)
	fmt.Fprintf(&sb, "Total nodes: %d\n", resp.TotalNodes)

	if resp.Success {
		actions := make([]string, len(resp.Actions))
		for i, a := range resp.Actions {
			actions[i] = string(a)
		}
		fmt.Fprintf(&sb, "Path length: %d (cost %g)\n", len(resp.Actions), resp.PathCost)
		fmt.Fprintf(&sb, "Actions: %s\n", strings.Join(actions, ", "))

		states := make([]string, len(resp.Path))
		for i, s := range resp.Path {
			states[i] = s.String()
		}
		fmt.Fprintf(&sb, "Path: %s\n", strings.Join(states, " -> "))
	}
	return sb.String()
}

func formatComparison(resp *service.CompareResponse) string {
	var sb strings.Builder
	if resp.MapName != "" {
		fmt.Fprintf(&sb, "Comparison on %s:\n\n", resp.MapName)
	} else {
		sb.WriteString("Comparison:\n\n")
	}

	fmt.Fprintf(&sb, "%-8s %-8s %8s %8s %10s\n", "algo", "outcome", "nodes", "length", "ms")
	for _, r := range resp.Results {
		length := "-"
		if r.Success {
			length = fmt.Sprintf("%d", len(r.Actions))
		}
		fmt.Fprintf(&sb, "%-8s %-8s %8d %8s %10.3f\n", r.Algorithm, r.Outcome, r.TotalNodes, length, r.ElapsedMS)
	}

	if resp.FewestNodes != "" {
		fmt.Fprintf(&sb, "\nFewest nodes: %s\nShortest path: %s\n", resp.FewestNodes, resp.ShortestPath)
	} else {
		sb.WriteString("\nNo algorithm found a path.\n")
	}
	return sb.String()
}

func formatMap(def *engine.MapDefinition) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Map: %s\n", def.Name)
	if def.Description != "" {
		fmt.Fprintf(&sb, "%s\n", def.Description)
	}
	fmt.Fprintf(&sb, "Size: %d rows x %d cols\n", def.Rows, def.Cols)
	fmt.Fprintf(&sb, "Start: %s\n", def.Start)

	goals := make([]string, len(def.Goals))
	for i, g := range def.Goals {
		goals[i] = g.String()
	}
	fmt.Fprintf(&sb, "Goals: %s\n\n", strings.Join(goals, " | "))
	sb.WriteString(service.Describe(def, nil))
	return sb.String()
}

// requestMap builds a map definition for rendering an inline request. It
// returns nil when the request does not describe a valid grid.
func requestMap(req *service.SearchRequest) *engine.MapDefinition {
	def := &engine.MapDefinition{
		Name:      "inline",
		Rows:      req.Rows,
		Cols:      req.Cols,
		Start:     req.Start,
		Goals:     req.Goals,
		Walls:     req.Walls,
		RectWalls: req.RectWalls,
	}
	if len(req.Grid) > 0 {
		grid, err := engine.GridFromMatrix(req.Grid)
		if err != nil {
			return nil
		}
		def.Rows, def.Cols = grid.Rows, grid.Cols
		def.Walls = append(grid.Walls(), req.Walls...)
	}
	if engine.ValidateMapDefinition(def) != nil {
		return nil
	}
	return def
}
