package mapfile

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/wricardo/mcp-training/robotnav/nav/engine"
)

const sampleMap = `# sample map
[5,11]
(0,1)
(7,0) | (10,3)

(2,0,2,2)
(8,0,1,2)
# trailing comment
(10,0,1,1)
`

func TestParse(t *testing.T) {
	def, err := Parse(strings.NewReader(sampleMap))
	if err != nil {
		t.Fatalf("Failed to parse map: %v", err)
	}

	if def.Rows != 5 || def.Cols != 11 {
		t.Errorf("Expected 5x11, got %dx%d", def.Rows, def.Cols)
	}
	if def.Start != (engine.State{X: 0, Y: 1}) {
		t.Errorf("Expected start (0,1), got %v", def.Start)
	}
	wantGoals := []engine.State{{X: 7, Y: 0}, {X: 10, Y: 3}}
	if !reflect.DeepEqual(def.Goals, wantGoals) {
		t.Errorf("Expected goals %v, got %v", wantGoals, def.Goals)
	}
	if len(def.RectWalls) != 3 {
		t.Fatalf("Expected 3 walls, got %d", len(def.RectWalls))
	}
	if def.RectWalls[1] != (engine.Rect{X: 8, Y: 0, Width: 1, Height: 2}) {
		t.Errorf("Unexpected second wall %+v", def.RectWalls[1])
	}
}

func TestParse_SkipsMalformedWalls(t *testing.T) {
	input := "[3,3]\n(0,0)\n(2,2)\n(1,1)\n(0,a,1,1)\n(1,0,1,1)\n"
	def, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Failed to parse map: %v", err)
	}
	if len(def.RectWalls) != 1 {
		t.Errorf("Expected 1 valid wall, got %d", len(def.RectWalls))
	}
}

func TestParse_MalformedHeader(t *testing.T) {
	tests := map[string]string{
		"too short":   "[3,3]\n(0,0)\n",
		"bad size":    "[3]\n(0,0)\n(1,1)\n",
		"bad start":   "[3,3]\n(x,0)\n(1,1)\n",
		"bad goal":    "[3,3]\n(0,0)\n(1,1) | (2)\n",
		"only blanks": "\n\n# nothing\n",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(input))
			if !errors.Is(err, ErrMalformedFile) {
				t.Errorf("Expected ErrMalformedFile, got %v", err)
			}
		})
	}
}

func TestParseFile_NamesMapAfterFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corridor.txt")
	if err := os.WriteFile(path, []byte("[1,4]\n(0,0)\n(3,0)\n"), 0644); err != nil {
		t.Fatalf("Failed to write map: %v", err)
	}

	def, err := ParseFile(path)
	if err != nil {
		t.Fatalf("Failed to parse file: %v", err)
	}
	if def.Name != "corridor" {
		t.Errorf("Expected name corridor, got %q", def.Name)
	}

	named := filepath.Join(dir, "named.txt")
	if err := os.WriteFile(named, []byte("# name: Long Hall\n# description: one row\n[1,4]\n(0,0)\n(3,0)\n"), 0644); err != nil {
		t.Fatalf("Failed to write map: %v", err)
	}
	def, err = ParseFile(named)
	if err != nil {
		t.Fatalf("Failed to parse file: %v", err)
	}
	if def.Name != "Long Hall" || def.Description != "one row" {
		t.Errorf("Expected directives to set metadata, got %q %q", def.Name, def.Description)
	}

	if _, err := ParseFile(filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestWriteThenParse(t *testing.T) {
	def := &engine.MapDefinition{
		Name:        "written",
		Description: "round trip",
		Rows:        4,
		Cols:        6,
		Start:       engine.State{X: 0, Y: 3},
		Goals:       []engine.State{{X: 5, Y: 0}},
		RectWalls:   []engine.Rect{{X: 1, Y: 0, Width: 1, Height: 3}},
		Walls:       []engine.Cell{{Row: 2, Col: 4}},
	}

	var buf bytes.Buffer
	if err := Write(&buf, def); err != nil {
		t.Fatalf("Failed to write map: %v", err)
	}

	parsed, err := Parse(&buf)
	if err != nil {
		t.Fatalf("Failed to parse written map: %v", err)
	}

	g1, _ := def.BuildGrid()
	g2, _ := parsed.BuildGrid()
	if g1.String() != g2.String() {
		t.Errorf("Grids differ after round trip:\n%s\nvs\n%s", g1, g2)
	}
	if parsed.Name != def.Name || parsed.Description != def.Description {
		t.Errorf("Metadata changed: %q %q", parsed.Name, parsed.Description)
	}
	if parsed.Start != def.Start || !reflect.DeepEqual(parsed.Goals, def.Goals) {
		t.Errorf("Start or goals changed: %v %v", parsed.Start, parsed.Goals)
	}
}
