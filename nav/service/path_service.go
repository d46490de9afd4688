package service

import (
	"context"
	"time"

	"github.com/wricardo/mcp-training/robotnav/nav/engine"
	"github.com/wricardo/mcp-training/robotnav/nav/search"
)

// PathService defines all path-finding operations exposed to transports
type PathService interface {
	// Searching
	Search(ctx context.Context, req *SearchRequest) (*SearchResponse, error)
	SearchMap(ctx context.Context, mapName, algorithm string) (*SearchResponse, error)
	Compare(ctx context.Context, req *CompareRequest) (*CompareResponse, error)
	ListAlgorithms(ctx context.Context) []*AlgorithmInfo

	// Maps
	ListMaps(ctx context.Context) ([]*MapInfo, error)
	LoadMap(ctx context.Context, mapName string) (*engine.MapDefinition, error)
	SaveMap(ctx context.Context, mapName string, def *engine.MapDefinition) error
	RandomMap(ctx context.Context, req *RandomMapRequest) (*engine.MapDefinition, error)
}

// MapManager handles map preset loading and storage
type MapManager interface {
	LoadMap(name string) (*engine.MapDefinition, error)
	ListMaps() ([]*MapInfo, error)
	GetDefault() *engine.MapDefinition
	SaveMap(name string, def *engine.MapDefinition) error
}

// Config tunes searches run by the service
type Config struct {
	// MaxDepth is the iterative deepening limit when a request sets none.
	MaxDepth int
	// SearchTimeout bounds how long a caller waits for one search. Zero
	// means no limit beyond the caller's context.
	SearchTimeout time.Duration
	// BoundPolicy selects how iterative deepening reports a search still
	// cutting off at MaxDepth.
	BoundPolicy search.BoundPolicy
}

// DefaultConfig returns the configuration used when none is supplied
func DefaultConfig() Config {
	return Config{
		MaxDepth:      search.DefaultMaxDepth,
		SearchTimeout: 30 * time.Second,
		BoundPolicy:   search.BoundCutoff,
	}
}
