package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/wricardo/mcp-training/robotnav/nav/engine"
	"github.com/wricardo/mcp-training/robotnav/nav/mapfile"
	"github.com/wricardo/mcp-training/robotnav/nav/service"
)

var (
	ErrMapNotFound = service.ErrMapNotFound
	ErrInvalidMap  = service.ErrInvalidMap
)

// Map file extensions in lookup order
const (
	extJSON = ".json"
	extText = ".txt"
)

// Manager handles map loading and caching
type Manager struct {
	mapsDir    string
	defaultMap *engine.MapDefinition
	maps       map[string]*engine.MapDefinition
	mu         sync.RWMutex
}

// NewManager creates a new map manager reading from mapsDir
func NewManager(mapsDir string) (*Manager, error) {
	if _, err := os.Stat(mapsDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("maps directory does not exist: %s", mapsDir)
	}

	m := &Manager{
		mapsDir: mapsDir,
		maps:    make(map[string]*engine.MapDefinition),
	}

	if err := m.loadDefaultMap(); err != nil {
		return nil, fmt.Errorf("failed to load default map: %w", err)
	}

	return m, nil
}

// Dir returns the directory maps are read from
func (m *Manager) Dir() string {
	return m.mapsDir
}

// LoadMap loads a map by name. The name may carry a .json or .txt
// extension; without one, name.json is tried before name.txt.
func (m *Manager) LoadMap(name string) (*engine.MapDefinition, error) {
	if err := engine.ValidateMapID(name); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMap, err)
	}
	id := mapID(name)

	m.mu.RLock()
	if def, exists := m.maps[id]; exists {
		m.mu.RUnlock()
		return def, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if def, exists := m.maps[id]; exists {
		return def, nil
	}

	def, err := m.readMap(name)
	if err != nil {
		return nil, err
	}

	m.maps[id] = def
	return def, nil
}

// ReloadMap drops a cached map and reads it again from disk
func (m *Manager) ReloadMap(name string) error {
	m.mu.Lock()
	delete(m.maps, mapID(name))
	m.mu.Unlock()

	_, err := m.LoadMap(name)
	return err
}

func (m *Manager) readMap(name string) (*engine.MapDefinition, error) {
	candidates := []string{name}
	if ext := filepath.Ext(name); ext != extJSON && ext != extText {
		candidates = []string{name + extJSON, name + extText}
	}

	for _, filename := range candidates {
		path := filepath.Join(m.mapsDir, filename)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		def, err := ReadMapFile(path)
		if err != nil {
			return nil, err
		}
		if err := m.ValidateMap(def); err != nil {
			return nil, err
		}
		return def, nil
	}
	return nil, ErrMapNotFound
}

// ReadMapFile parses a .txt or .json map file without validating it. A map
// without a name is named after the file.
func ReadMapFile(path string) (*engine.MapDefinition, error) {
	if filepath.Ext(path) == extText {
		def, err := mapfile.ParseFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidMap, err)
		}
		return def, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read map file: %w", err)
	}

	var def engine.MapDefinition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("%w: failed to parse map: %v", ErrInvalidMap, err)
	}
	if def.Name == "" {
		def.Name = mapID(filepath.Base(path))
	}
	return &def, nil
}

// ValidateMap checks a definition before it is cached or saved
func (m *Manager) ValidateMap(def *engine.MapDefinition) error {
	if err := engine.ValidateMapDefinition(def); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMap, err)
	}
	return nil
}

// ListMaps returns information about all available maps, sorted by id.
// Files that fail to load are skipped.
func (m *Manager) ListMaps() ([]*service.MapInfo, error) {
	entries, err := os.ReadDir(m.mapsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read maps directory: %w", err)
	}

	var maps []*service.MapInfo
	seen := make(map[string]bool)

	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != extJSON && ext != extText) {
			continue
		}

		id := mapID(entry.Name())
		if seen[id] {
			continue
		}

		def, err := m.LoadMap(entry.Name())
		if err != nil {
			continue
		}
		seen[id] = true

		maps = append(maps, &service.MapInfo{
			Filename:    entry.Name(),
			MapID:       id,
			Name:        def.Name,
			Description: def.Description,
			Rows:        def.Rows,
			Cols:        def.Cols,
			Goals:       len(def.Goals),
		})
	}

	sort.Slice(maps, func(i, j int) bool { return maps[i].MapID < maps[j].MapID })
	return maps, nil
}

// GetDefault returns the default map
func (m *Manager) GetDefault() *engine.MapDefinition {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultMap
}

// SetDefault sets the default map by name
func (m *Manager) SetDefault(name string) error {
	def, err := m.LoadMap(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultMap = def
	return nil
}

// RefreshCache drops every cached map and reloads the default
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.maps = make(map[string]*engine.MapDefinition)
	m.mu.Unlock()

	return m.loadDefaultMap()
}

// loadDefaultMap picks default, then the first listed map, then the
// built-in map.
func (m *Manager) loadDefaultMap() error {
	def, err := m.LoadMap("default")
	if err != nil {
		maps, listErr := m.ListMaps()
		if listErr != nil || len(maps) == 0 {
			def = engine.DefaultMap()
		} else if def, err = m.LoadMap(maps[0].Filename); err != nil {
			def = engine.DefaultMap()
		}
	}

	m.mu.Lock()
	m.defaultMap = def
	m.mu.Unlock()
	return nil
}

// SaveMap writes a map to disk. A .txt name is written in the text format,
// anything else as indented JSON.
func (m *Manager) SaveMap(name string, def *engine.MapDefinition) error {
	if err := engine.ValidateMapID(name); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMap, err)
	}
	if err := m.ValidateMap(def); err != nil {
		return err
	}

	filename := name
	if ext := filepath.Ext(name); ext != extJSON && ext != extText {
		filename = name + extJSON
	}
	path := filepath.Join(m.mapsDir, filename)

	var data []byte
	if filepath.Ext(filename) == extText {
		var sb strings.Builder
		if err := mapfile.Write(&sb, def); err != nil {
			return fmt.Errorf("failed to encode map: %w", err)
		}
		data = []byte(sb.String())
	} else {
		var err error
		data, err = json.MarshalIndent(def, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal map: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write map file: %w", err)
	}

	m.mu.Lock()
	m.maps[mapID(name)] = def
	m.mu.Unlock()

	return nil
}

func mapID(name string) string {
	ext := filepath.Ext(name)
	if ext == extJSON || ext == extText {
		return strings.TrimSuffix(name, ext)
	}
	return name
}
