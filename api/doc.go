// Package api provides the HTTP REST API of the robot navigator.
//
// Endpoints:
//
// Searching:
//   - POST /search - Inline search with the legacy front end contract
//   - POST /api/search - Inline search
//   - POST /api/compare - Run several algorithms on one map
//   - GET /api/algorithms - List available algorithms
//
// Maps:
//   - GET /api/maps - List stored maps
//   - POST /api/maps - Save a map definition
//   - POST /api/maps/random - Generate a random map
//   - GET /api/maps/{name} - Get a stored map
//   - POST /api/maps/{name}/search - Search a stored map
//
// Other:
//   - GET /api/health - Health check
//   - GET /ws?channel=<name> - Stream search results over WebSocket
//
// Request/Response Format:
//
// All endpoints accept and return JSON. States are [x, y] pairs, wall cells
// [row, col] pairs and rectangular walls [x, y, width, height]:
//
//	{
//	  "rows": 5, "cols": 11,
//	  "start": [0, 1],
//	  "goals": [[7, 0], [10, 3]],
//	  "rect_walls": [[2, 0, 2, 2]],
//	  "algorithm": "astar"
//	}
//
// Error Handling:
//
// Errors are returned as {"error": "message"} with 400 for invalid
// requests or maps, 404 for unknown maps, 504 when a search exceeds its
// deadline and 500 otherwise. POST /search instead always answers with a
// search response whose message starts with "Error: ".
package api
