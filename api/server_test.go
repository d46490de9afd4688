package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/wricardo/mcp-training/robotnav/nav/engine"
	"github.com/wricardo/mcp-training/robotnav/nav/service"
	"github.com/wricardo/mcp-training/robotnav/transport/websocket"
)

// MockPathService implements service.PathService for testing
type MockPathService struct {
	SearchFunc         func(ctx context.Context, req *service.SearchRequest) (*service.SearchResponse, error)
	SearchMapFunc      func(ctx context.Context, mapName, algorithm string) (*service.SearchResponse, error)
	CompareFunc        func(ctx context.Context, req *service.CompareRequest) (*service.CompareResponse, error)
	ListAlgorithmsFunc func(ctx context.Context) []*service.AlgorithmInfo

	ListMapsFunc  func(ctx context.Context) ([]*service.MapInfo, error)
	LoadMapFunc   func(ctx context.Context, mapName string) (*engine.MapDefinition, error)
	SaveMapFunc   func(ctx context.Context, mapName string, def *engine.MapDefinition) error
	RandomMapFunc func(ctx context.Context, req *service.RandomMapRequest) (*engine.MapDefinition, error)
}

func foundResponse(mapName string) *service.SearchResponse {
	return &service.SearchResponse{
		Path:         []engine.State{{X: 0, Y: 0}, {X: 1, Y: 0}},
		Actions:      []engine.Action{engine.Right},
		TotalNodes:   2,
		VisitedNodes: []engine.State{{X: 0, Y: 0}, {X: 1, Y: 0}},
		Success:      true,
		Message:      service.MessageFound,
		Algorithm:    "bfs",
		Outcome:      "found",
		PathCost:     1,
		MapName:      mapName,
	}
}

func (m *MockPathService) Search(ctx context.Context, req *service.SearchRequest) (*service.SearchResponse, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, req)
	}
	return foundResponse(""), nil
}

func (m *MockPathService) SearchMap(ctx context.Context, mapName, algorithm string) (*service.SearchResponse, error) {
	if m.SearchMapFunc != nil {
		return m.SearchMapFunc(ctx, mapName, algorithm)
	}
	return foundResponse(mapName), nil
}

func (m *MockPathService) Compare(ctx context.Context, req *service.CompareRequest) (*service.CompareResponse, error) {
	if m.CompareFunc != nil {
		return m.CompareFunc(ctx, req)
	}
	return &service.CompareResponse{
		MapName:      req.MapName,
		Results:      []*service.SearchResponse{foundResponse(req.MapName)},
		FewestNodes:  "bfs",
		ShortestPath: "bfs",
	}, nil
}

func (m *MockPathService) ListAlgorithms(ctx context.Context) []*service.AlgorithmInfo {
	if m.ListAlgorithmsFunc != nil {
		return m.ListAlgorithmsFunc(ctx)
	}
	return []*service.AlgorithmInfo{{Token: "bfs", Name: "Breadth-First Search", Optimal: true}}
}

func (m *MockPathService) ListMaps(ctx context.Context) ([]*service.MapInfo, error) {
	if m.ListMapsFunc != nil {
		return m.ListMapsFunc(ctx)
	}
	return []*service.MapInfo{}, nil
}

func (m *MockPathService) LoadMap(ctx context.Context, mapName string) (*engine.MapDefinition, error) {
	if m.LoadMapFunc != nil {
		return m.LoadMapFunc(ctx, mapName)
	}
	def := engine.DefaultMap()
	def.Name = mapName
	return def, nil
}

func (m *MockPathService) SaveMap(ctx context.Context, mapName string, def *engine.MapDefinition) error {
	if m.SaveMapFunc != nil {
		return m.SaveMapFunc(ctx, mapName, def)
	}
	return nil
}

func (m *MockPathService) RandomMap(ctx context.Context, req *service.RandomMapRequest) (*engine.MapDefinition, error) {
	if m.RandomMapFunc != nil {
		return m.RandomMapFunc(ctx, req)
	}
	def := engine.DefaultMap()
	def.Name = "random-1"
	return def, nil
}

// Test helpers
func setupTestServer(t *testing.T, mockService *MockPathService, opts ...Option) (*Server, *websocket.Hub) {
	hub := websocket.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return NewServer(mockService, hub, opts...), hub
}

func makeRequest(method, path string, body interface{}) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), target); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
}

// Search Tests

func TestSearch(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		requestBody    interface{}
		setupMock      func(*MockPathService)
		expectedStatus int
		validateResp   func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "Search inline grid",
			path: "/api/search",
			requestBody: map[string]interface{}{
				"rows":      3,
				"cols":      3,
				"start":     []int{0, 0},
				"goals":     [][]int{{2, 2}},
				"algorithm": "astar",
			},
			setupMock: func(m *MockPathService) {
				m.SearchFunc = func(ctx context.Context, req *service.SearchRequest) (*service.SearchResponse, error) {
					if req.Algorithm != "astar" || req.Rows != 3 || len(req.Goals) != 1 {
						t.Errorf("Unexpected request %+v", req)
					}
					if req.Goals[0] != (engine.State{X: 2, Y: 2}) {
						t.Errorf("Expected goal (2,2), got %v", req.Goals[0])
					}
					return foundResponse(""), nil
				}
			},
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp service.SearchResponse
				parseResponse(t, w, &resp)
				if !resp.Success || resp.TotalNodes != 2 {
					t.Errorf("Unexpected response %+v", resp)
				}
			},
		},
		{
			name:        "Invalid request maps to 400",
			path:        "/api/search",
			requestBody: map[string]interface{}{"algorithm": "teleport"},
			setupMock: func(m *MockPathService) {
				m.SearchFunc = func(ctx context.Context, req *service.SearchRequest) (*service.SearchResponse, error) {
					return nil, fmt.Errorf("%w: unknown search method", service.ErrInvalidRequest)
				}
			},
			expectedStatus: http.StatusBadRequest,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp map[string]string
				parseResponse(t, w, &resp)
				if !strings.Contains(resp["error"], "unknown search method") {
					t.Errorf("Unexpected error %q", resp["error"])
				}
			},
		},
		{
			name:        "Deadline maps to 504",
			path:        "/api/search",
			requestBody: map[string]interface{}{"algorithm": "dfs"},
			setupMock: func(m *MockPathService) {
				m.SearchFunc = func(ctx context.Context, req *service.SearchRequest) (*service.SearchResponse, error) {
					return nil, context.DeadlineExceeded
				}
			},
			expectedStatus: http.StatusGatewayTimeout,
		},
		{
			name:        "Legacy endpoint reports errors in message",
			path:        "/search",
			requestBody: map[string]interface{}{"algorithm": "nope"},
			setupMock: func(m *MockPathService) {
				m.SearchFunc = func(ctx context.Context, req *service.SearchRequest) (*service.SearchResponse, error) {
					return nil, fmt.Errorf("%w: bad method", service.ErrInvalidRequest)
				}
			},
			expectedStatus: http.StatusBadRequest,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp service.SearchResponse
				parseResponse(t, w, &resp)
				if resp.Success || !strings.HasPrefix(resp.Message, "Error: ") {
					t.Errorf("Expected failed search with error message, got %+v", resp)
				}
				if resp.Path == nil || resp.VisitedNodes == nil {
					t.Error("Expected empty lists in failed legacy response")
				}
			},
		},
		{
			name:           "Legacy endpoint success",
			path:           "/search",
			requestBody:    map[string]interface{}{"algorithm": "bfs", "rows": 1, "cols": 2, "goals": [][]int{{1, 0}}},
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp service.SearchResponse
				parseResponse(t, w, &resp)
				if resp.Message != service.MessageFound {
					t.Errorf("Unexpected message %q", resp.Message)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockPathService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			server, _ := setupTestServer(t, mockService)
			w := httptest.NewRecorder()
			server.ServeHTTP(w, makeRequest("POST", tt.path, tt.requestBody))

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.validateResp != nil {
				tt.validateResp(t, w)
			}
		})
	}
}

func TestSearch_MalformedBody(t *testing.T) {
	server, _ := setupTestServer(t, &MockPathService{})

	for _, path := range []string{"/api/search", "/search"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", path, strings.NewReader("{not json"))
		server.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", path, w.Code)
		}
	}
}

func TestSearchMap(t *testing.T) {
	mock := &MockPathService{}
	var gotMap, gotAlg string
	mock.SearchMapFunc = func(ctx context.Context, mapName, algorithm string) (*service.SearchResponse, error) {
		gotMap, gotAlg = mapName, algorithm
		if mapName == "missing" {
			return nil, fmt.Errorf("%w: '%s'", service.ErrMapNotFound, mapName)
		}
		return foundResponse(mapName), nil
	}
	server, _ := setupTestServer(t, mock)

	w := httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("POST", "/api/maps/map3.json/search", map[string]string{"algorithm": "gbfs"}))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if gotMap != "map3" || gotAlg != "gbfs" {
		t.Errorf("Expected map3/gbfs, got %s/%s", gotMap, gotAlg)
	}

	w = httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("POST", "/api/maps/map3/search?algorithm=cus1", nil))
	if w.Code != http.StatusOK || gotAlg != "cus1" {
		t.Errorf("Expected query algorithm cus1, got %d %s", w.Code, gotAlg)
	}

	w = httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("POST", "/api/maps/map3/search", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 without algorithm, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("POST", "/api/maps/missing/search", map[string]string{"algorithm": "bfs"}))
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for missing map, got %d", w.Code)
	}
}

func TestSearchMap_Broadcasts(t *testing.T) {
	server, hub := setupTestServer(t, &MockPathService{})

	w := httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("POST", "/api/maps/map1/search", map[string]string{"algorithm": "bfs"}))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	// No subscribers; the broadcast must not block the handler
	if hub.ClientCount("map1") != 0 {
		t.Errorf("Expected no clients, got %d", hub.ClientCount("map1"))
	}
}

func TestCompare(t *testing.T) {
	mock := &MockPathService{}
	mock.CompareFunc = func(ctx context.Context, req *service.CompareRequest) (*service.CompareResponse, error) {
		if req.MapName != "map7" || len(req.Algorithms) != 2 {
			t.Errorf("Unexpected compare request %+v", req)
		}
		return &service.CompareResponse{
			MapName:      "map7",
			Results:      []*service.SearchResponse{foundResponse("map7"), foundResponse("map7")},
			FewestNodes:  "astar",
			ShortestPath: "bfs",
		}, nil
	}
	server, _ := setupTestServer(t, mock)

	w := httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("POST", "/api/compare", map[string]interface{}{
		"map_name":   "map7",
		"algorithms": []string{"bfs", "astar"},
	}))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp service.CompareResponse
	parseResponse(t, w, &resp)
	if len(resp.Results) != 2 || resp.FewestNodes != "astar" {
		t.Errorf("Unexpected compare response %+v", resp)
	}
}

func TestListAlgorithms(t *testing.T) {
	server, _ := setupTestServer(t, &MockPathService{})

	w := httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("GET", "/api/algorithms", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var algs []service.AlgorithmInfo
	parseResponse(t, w, &algs)
	if len(algs) != 1 || algs[0].Token != "bfs" {
		t.Errorf("Unexpected algorithms %+v", algs)
	}
}

// Map Tests

func TestListMaps(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(*MockPathService)
		expectedStatus int
		expectedCount  int
	}{
		{
			name: "List maps",
			setupMock: func(m *MockPathService) {
				m.ListMapsFunc = func(ctx context.Context) ([]*service.MapInfo, error) {
					return []*service.MapInfo{{MapID: "map1"}, {MapID: "map2"}}, nil
				}
			},
			expectedStatus: http.StatusOK,
			expectedCount:  2,
		},
		{
			name: "Nil list encodes as empty array",
			setupMock: func(m *MockPathService) {
				m.ListMapsFunc = func(ctx context.Context) ([]*service.MapInfo, error) {
					return nil, nil
				}
			},
			expectedStatus: http.StatusOK,
			expectedCount:  0,
		},
		{
			name: "Handle service error",
			setupMock: func(m *MockPathService) {
				m.ListMapsFunc = func(ctx context.Context) ([]*service.MapInfo, error) {
					return nil, fmt.Errorf("disk error")
				}
			},
			expectedStatus: http.StatusInternalServerError,
			expectedCount:  -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockPathService{}
			tt.setupMock(mockService)
			server, _ := setupTestServer(t, mockService)

			w := httptest.NewRecorder()
			server.ServeHTTP(w, makeRequest("GET", "/api/maps", nil))

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if tt.expectedCount < 0 {
				return
			}
			var maps []service.MapInfo
			parseResponse(t, w, &maps)
			if maps == nil || len(maps) != tt.expectedCount {
				t.Errorf("Expected %d maps, got %v", tt.expectedCount, maps)
			}
		})
	}
}

func TestGetMap(t *testing.T) {
	mock := &MockPathService{}
	mock.LoadMapFunc = func(ctx context.Context, mapName string) (*engine.MapDefinition, error) {
		if mapName != "map2" {
			return nil, service.ErrMapNotFound
		}
		return &engine.MapDefinition{Name: "Map 2", Rows: 6, Cols: 8, Goals: []engine.State{{X: 7, Y: 5}}}, nil
	}
	server, _ := setupTestServer(t, mock)

	w := httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("GET", "/api/maps/map2.txt", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var def engine.MapDefinition
	parseResponse(t, w, &def)
	if def.Rows != 6 || def.Cols != 8 {
		t.Errorf("Unexpected map %+v", def)
	}

	w = httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("GET", "/api/maps/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestCreateMap(t *testing.T) {
	var saved string
	mock := &MockPathService{}
	mock.SaveMapFunc = func(ctx context.Context, mapName string, def *engine.MapDefinition) error {
		if def.Rows == 0 {
			return fmt.Errorf("%w: rows must be positive", service.ErrInvalidMap)
		}
		saved = mapName
		return nil
	}
	server, _ := setupTestServer(t, mock)

	w := httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("POST", "/api/maps", map[string]interface{}{
		"name":  "custom",
		"rows":  3,
		"cols":  3,
		"start": []int{0, 0},
		"goals": [][]int{{2, 2}},
	}))
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if saved != "custom" {
		t.Errorf("Expected map custom to be saved, got %q", saved)
	}

	w = httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("POST", "/api/maps", map[string]interface{}{"rows": 3}))
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing name, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("POST", "/api/maps", map[string]interface{}{"name": "bad"}))
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for invalid map, got %d", w.Code)
	}

	saved = ""
	for _, name := range []string{"../escaped", "nested/inner"} {
		w = httptest.NewRecorder()
		server.ServeHTTP(w, makeRequest("POST", "/api/maps", map[string]interface{}{
			"name":  name,
			"rows":  3,
			"cols":  3,
			"start": []int{0, 0},
			"goals": [][]int{{2, 2}},
		}))
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 for map name %q, got %d", name, w.Code)
		}
	}
	if saved != "" {
		t.Errorf("Expected no save for path-like names, got %q", saved)
	}
}

func TestRandomMap(t *testing.T) {
	mock := &MockPathService{}
	mock.RandomMapFunc = func(ctx context.Context, req *service.RandomMapRequest) (*engine.MapDefinition, error) {
		return &engine.MapDefinition{Name: fmt.Sprintf("random-%d", req.Seed), Rows: req.Rows, Cols: req.Cols}, nil
	}
	server, _ := setupTestServer(t, mock)

	w := httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("POST", "/api/maps/random", map[string]interface{}{"rows": 4, "cols": 6, "seed": 7}))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var def engine.MapDefinition
	parseResponse(t, w, &def)
	if def.Name != "random-7" || def.Rows != 4 {
		t.Errorf("Unexpected random map %+v", def)
	}

	w = httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("POST", "/api/maps/random", map[string]interface{}{"save": true}))
	if w.Code != http.StatusCreated {
		t.Errorf("Expected 201 for saved map, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	server.ServeHTTP(w, httptest.NewRequest("POST", "/api/maps/random", nil))
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 without body, got %d", w.Code)
	}
}

// Middleware Tests

func TestCORS(t *testing.T) {
	server, _ := setupTestServer(t, &MockPathService{}, WithAllowedOrigins([]string{"http://allowed.test"}))

	req := makeRequest("OPTIONS", "/api/search", nil)
	req.Header.Set("Origin", "http://allowed.test")
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Errorf("Expected 204 for preflight, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "http://allowed.test" {
		t.Errorf("Expected allowed origin header, got %q", w.Header().Get("Access-Control-Allow-Origin"))
	}

	req = makeRequest("GET", "/api/health", nil)
	req.Header.Set("Origin", "http://evil.test")
	w = httptest.NewRecorder()
	server.ServeHTTP(w, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("Unexpected CORS header for disallowed origin")
	}
}

func TestCORS_DefaultOrigins(t *testing.T) {
	server, _ := setupTestServer(t, &MockPathService{})

	for _, origin := range []string{"http://localhost:5173", "https://path-finding-nu.vercel.app"} {
		req := makeRequest("GET", "/api/health", nil)
		req.Header.Set("Origin", origin)
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != origin {
			t.Errorf("Expected origin %s to be allowed, got %q", origin, got)
		}
	}
}

func TestRecovery(t *testing.T) {
	mock := &MockPathService{}
	mock.ListAlgorithmsFunc = func(ctx context.Context) []*service.AlgorithmInfo {
		panic("boom")
	}
	server, _ := setupTestServer(t, mock)

	w := httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("GET", "/api/algorithms", nil))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500 after panic, got %d", w.Code)
	}
	var resp map[string]string
	parseResponse(t, w, &resp)
	if resp["error"] == "" {
		t.Error("Expected error body after panic")
	}
}

func TestHealth(t *testing.T) {
	server, _ := setupTestServer(t, &MockPathService{})

	w := httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("GET", "/api/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var resp map[string]string
	parseResponse(t, w, &resp)
	if resp["status"] != "healthy" {
		t.Errorf("Expected healthy, got %q", resp["status"])
	}
}

func TestWebSocket_NoHub(t *testing.T) {
	server := NewServer(&MockPathService{}, nil)

	w := httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("GET", "/ws?channel=map1", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 without hub, got %d", w.Code)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("wrap: %w", service.ErrInvalidRequest), http.StatusBadRequest},
		{service.ErrInvalidMap, http.StatusBadRequest},
		{service.ErrMapNotFound, http.StatusNotFound},
		{fmt.Errorf("slow: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{fmt.Errorf("other"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestServerTimeoutPropagates(t *testing.T) {
	mock := &MockPathService{}
	mock.SearchFunc = func(ctx context.Context, req *service.SearchRequest) (*service.SearchResponse, error) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Second):
			return foundResponse(""), nil
		}
	}
	server, _ := setupTestServer(t, mock)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	req := makeRequest("POST", "/api/search", map[string]string{"algorithm": "bfs"}).WithContext(ctx)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	if w.Code != http.StatusGatewayTimeout {
		t.Errorf("Expected 504, got %d", w.Code)
	}
}
