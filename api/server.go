package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/wricardo/mcp-training/robotnav/nav/engine"
	"github.com/wricardo/mcp-training/robotnav/nav/service"
	"github.com/wricardo/mcp-training/robotnav/transport/websocket"
)

// InlineChannel is the websocket channel for searches on request grids
const InlineChannel = "inline"

// DefaultAllowedOrigins are the development and deployed front end origins
var DefaultAllowedOrigins = []string{
	"http://localhost:5173",
	"http://127.0.0.1:5173",
	"http://localhost:3000",
	"https://path-finding-nu.vercel.app",
	"https://path-finding-backend.onrender.com",
}

// Server represents the REST API server
type Server struct {
	service        service.PathService
	hub            *websocket.Hub
	router         *mux.Router
	allowedOrigins map[string]bool
}

// Option configures a Server
type Option func(*Server)

// WithAllowedOrigins replaces the CORS origin list. "*" allows any origin.
func WithAllowedOrigins(origins []string) Option {
	return func(s *Server) {
		s.allowedOrigins = make(map[string]bool, len(origins))
		for _, o := range origins {
			if o = strings.TrimSpace(o); o != "" {
				s.allowedOrigins[o] = true
			}
		}
	}
}

// NewServer creates a new API server. hub may be nil.
func NewServer(pathService service.PathService, hub *websocket.Hub, opts ...Option) *Server {
	s := &Server{
		service: pathService,
		hub:     hub,
		router:  mux.NewRouter(),
	}
	WithAllowedOrigins(DefaultAllowedOrigins)(s)
	for _, opt := range opts {
		opt(s)
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	s.router.Use(s.recoveryMiddleware, s.loggingMiddleware, s.corsMiddleware)

	// Legacy front end endpoint
	s.router.HandleFunc("/search", s.handleLegacySearch).Methods("POST", "OPTIONS")

	api := s.router.PathPrefix("/api").Subrouter()

	// Searching
	api.HandleFunc("/search", s.handleSearch).Methods("POST", "OPTIONS")
	api.HandleFunc("/compare", s.handleCompare).Methods("POST", "OPTIONS")
	api.HandleFunc("/algorithms", s.handleListAlgorithms).Methods("GET")

	// Maps (random must be before {name} pattern)
	api.HandleFunc("/maps", s.handleListMaps).Methods("GET")
	api.HandleFunc("/maps", s.handleCreateMap).Methods("POST", "OPTIONS")
	api.HandleFunc("/maps/random", s.handleRandomMap).Methods("POST", "OPTIONS")
	api.HandleFunc("/maps/{name}", s.handleGetMap).Methods("GET")
	api.HandleFunc("/maps/{name}/search", s.handleSearchMap).Methods("POST", "OPTIONS")

	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Middleware

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" && (s.allowedOrigins["*"] || s.allowedOrigins[origin]) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Add("Vary", "Origin")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("[PANIC] %s %s: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())
				respondError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Hijacked websocket connections are logged by the hub
		if r.URL.Path == "/ws" {
			next.ServeHTTP(w, r)
			return
		}
		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("[HTTP] %s %s status=%d elapsed=%s", r.Method, r.URL.Path, rec.status, time.Since(started).Round(time.Microsecond))
	})
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// statusFor maps service errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidRequest), errors.Is(err, service.ErrInvalidMap):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrMapNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func respondServiceError(w http.ResponseWriter, err error) {
	respondError(w, statusFor(err), err.Error())
}

// decodeBody decodes an optional JSON body. An empty body leaves v untouched.
func decodeBody(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (s *Server) publish(resp *service.SearchResponse) {
	if s.hub == nil {
		return
	}
	channel := resp.MapName
	if channel == "" {
		channel = InlineChannel
	}
	s.hub.BroadcastResult(channel, resp)
}

// Search Handlers

// handleLegacySearch keeps the legacy front end contract: every outcome
// is a SearchResponse, with errors reported in the message.
func (s *Server) handleLegacySearch(w http.ResponseWriter, r *http.Request) {
	var req service.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, failedSearch(fmt.Errorf("invalid request body: %w", err)))
		return
	}

	resp, err := s.service.Search(r.Context(), &req)
	if err != nil {
		respondJSON(w, statusFor(err), failedSearch(err))
		return
	}

	s.publish(resp)
	respondJSON(w, http.StatusOK, resp)
}

func failedSearch(err error) *service.SearchResponse {
	return &service.SearchResponse{
		Path:         []engine.State{},
		Actions:      []engine.Action{},
		VisitedNodes: []engine.State{},
		Success:      false,
		Message:      "Error: " + err.Error(),
	}
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req service.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := s.service.Search(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	s.publish(resp)
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSearchMap(w http.ResponseWriter, r *http.Request) {
	mapName := trimMapExt(mux.Vars(r)["name"])

	var req struct {
		Algorithm string `json:"algorithm"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Algorithm == "" {
		req.Algorithm = r.URL.Query().Get("algorithm")
	}
	if req.Algorithm == "" {
		respondError(w, http.StatusBadRequest, "algorithm is required")
		return
	}

	resp, err := s.service.SearchMap(r.Context(), mapName, req.Algorithm)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	s.publish(resp)
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req service.CompareRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := s.service.Compare(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	for _, result := range resp.Results {
		s.publish(result)
	}

	log.Printf("[COMPARE] map=%s algos=%d fewest=%s shortest=%s",
		resp.MapName, len(resp.Results), resp.FewestNodes, resp.ShortestPath)
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListAlgorithms(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.service.ListAlgorithms(r.Context()))
}

// Map Handlers

func (s *Server) handleListMaps(w http.ResponseWriter, r *http.Request) {
	maps, err := s.service.ListMaps(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if maps == nil {
		maps = []*service.MapInfo{}
	}

	respondJSON(w, http.StatusOK, maps)
}

func (s *Server) handleGetMap(w http.ResponseWriter, r *http.Request) {
	mapName := trimMapExt(mux.Vars(r)["name"])

	def, err := s.service.LoadMap(r.Context(), mapName)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, def)
}

func (s *Server) handleCreateMap(w http.ResponseWriter, r *http.Request) {
	var def engine.MapDefinition
	if err := json.NewDecoder(r.Body).Decode(&def); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if def.Name == "" {
		respondError(w, http.StatusBadRequest, "Map name is required")
		return
	}
	if err := engine.ValidateMapID(def.Name); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.service.SaveMap(r.Context(), def.Name, &def); err != nil {
		respondServiceError(w, err)
		return
	}

	if s.hub != nil {
		s.hub.BroadcastEvent(websocket.AllChannel, websocket.EventMapSaved, map[string]string{"map_id": def.Name})
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Map saved successfully",
		"map_id":  def.Name,
	})
}

func (s *Server) handleRandomMap(w http.ResponseWriter, r *http.Request) {
	var req service.RandomMapRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	def, err := s.service.RandomMap(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	status := http.StatusOK
	if req.Save {
		status = http.StatusCreated
	}
	respondJSON(w, status, def)
}

func trimMapExt(name string) string {
	return strings.TrimSuffix(strings.TrimSuffix(name, ".json"), ".txt")
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		http.Error(w, "websocket hub not available", http.StatusServiceUnavailable)
		return
	}

	channel := r.URL.Query().Get("channel")
	if channel == "" {
		channel = websocket.AllChannel
	}

	s.hub.ServeWS(w, r, channel)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
