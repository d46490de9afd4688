package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeMaps(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	return dir
}

const detourMap = `# name: detour
[3,3]
(0,0)
(2,0)
(1,0,1,2)
`

const walledMap = `# name: walled
[1,3]
(0,0)
(2,0)
(1,0,1,1)
`

func TestAnalyze_AllMaps(t *testing.T) {
	dir := writeMaps(t, map[string]string{
		"detour.txt": detourMap,
		"walled.txt": walledMap,
	})

	var out bytes.Buffer
	if err := analyze(context.Background(), &out, dir, nil, nil); err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	text := out.String()
	for _, want := range []string{
		"=== Analyzing detour ===",
		"=== Analyzing walled ===",
		"Grid Size: 3 x 3",
		"Walls: 2 of 9 cells",
		"✅ Shortest path: bfs",
		"Detour: shortest path 6 vs Manhattan lower bound 2",
		"⚠️  No algorithm found a path",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in output:\n%s", want, text)
		}
	}

	for _, alg := range []string{"bfs", "dfs", "gbfs", "astar", "cus1", "cus2"} {
		if !strings.Contains(text, "\n"+alg+" ") {
			t.Errorf("Expected a row for %s", alg)
		}
	}
}

func TestAnalyze_SelectedMapAndAlgorithms(t *testing.T) {
	dir := writeMaps(t, map[string]string{
		"detour.txt": detourMap,
		"walled.txt": walledMap,
	})

	var out bytes.Buffer
	if err := analyze(context.Background(), &out, dir, []string{"astar"}, []string{"detour.txt"}); err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	text := out.String()
	if strings.Contains(text, "walled") {
		t.Errorf("Expected only the selected map, got:\n%s", text)
	}
	if !strings.Contains(text, "✅ Fewest nodes: astar") {
		t.Errorf("Expected astar summary, got:\n%s", text)
	}
	if strings.Contains(text, "\nbfs ") {
		t.Errorf("Expected only astar rows, got:\n%s", text)
	}
}

func TestAnalyze_UnknownMap(t *testing.T) {
	dir := writeMaps(t, map[string]string{"detour.txt": detourMap})

	var out bytes.Buffer
	if err := analyze(context.Background(), &out, dir, nil, []string{"missing"}); err != nil {
		t.Fatalf("analyze should report per-map errors inline, got: %v", err)
	}
	if !strings.Contains(out.String(), "Error: map not found") {
		t.Errorf("Expected map not found error, got:\n%s", out.String())
	}
}

func TestAnalyze_MissingDir(t *testing.T) {
	err := analyze(context.Background(), &bytes.Buffer{}, filepath.Join(t.TempDir(), "nope"), nil, nil)
	if err == nil {
		t.Error("Expected error for missing maps directory")
	}
}

func TestCommand(t *testing.T) {
	dir := writeMaps(t, map[string]string{"detour.txt": detourMap})

	var out bytes.Buffer
	cmd := newCommand()
	cmd.Writer = &out

	args := []string{"analyze", "--maps-dir", dir, "--algorithms", "bfs", "--algorithms", "cus2", "detour"}
	if err := cmd.Run(context.Background(), args); err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if !strings.Contains(out.String(), "cus2") || strings.Contains(out.String(), "\ndfs ") {
		t.Errorf("Unexpected output:\n%s", out.String())
	}
}
