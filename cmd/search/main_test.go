package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/mcp-training/robotnav/nav/service"
)

const corridor = `# name: corridor
[1,4]
(0,0)
(3,0)
`

const blocked = `# name: blocked
[1,4]
(0,0)
(3,0)
(2,0,1,1)
`

func writeMap(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunSearch_Found(t *testing.T) {
	file := writeMap(t, "corridor.txt", corridor)

	var out bytes.Buffer
	require.NoError(t, runSearch(context.Background(), &out, file, "bfs", 0, false))

	text := out.String()
	assert.Contains(t, text, "Path to goal: [RIGHT, RIGHT, RIGHT]")
	assert.Contains(t, text, "Path states: (0,0) -> (1,0) -> (2,0) -> (3,0)")
	assert.Contains(t, text, "Map Size: (1, 4)")
	assert.Contains(t, text, "Initial State: (0,0)")
	assert.Contains(t, text, "Goal States: (3,0)")
	assert.Contains(t, text, "Walls: none")
}

func TestRunSearch_NoPath(t *testing.T) {
	file := writeMap(t, "blocked.txt", blocked)

	var out bytes.Buffer
	require.NoError(t, runSearch(context.Background(), &out, file, "astar", 0, false))

	text := out.String()
	assert.Contains(t, text, service.MessageNoPath)
	assert.Contains(t, text, "Walls: (2,0,1,1)")
	assert.NotContains(t, text, "Path to goal")
}

func TestRunSearch_Cutoff(t *testing.T) {
	file := writeMap(t, "corridor.txt", corridor)

	var out bytes.Buffer
	require.NoError(t, runSearch(context.Background(), &out, file, "cus1", 1, false))

	assert.Contains(t, out.String(), service.MessageCutoff)
}

func TestRunSearch_JSON(t *testing.T) {
	file := writeMap(t, "corridor.txt", corridor)

	var out bytes.Buffer
	require.NoError(t, runSearch(context.Background(), &out, file, "cus2", 0, true))

	var resp service.SearchResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "corridor", resp.MapName)
	assert.Equal(t, "cus2", resp.Algorithm)
	assert.Len(t, resp.Actions, 3)
	assert.Equal(t, resp.TotalNodes, len(resp.VisitedNodes))
}

func TestRunSearch_Errors(t *testing.T) {
	file := writeMap(t, "corridor.txt", corridor)

	err := runSearch(context.Background(), &bytes.Buffer{}, file, "dijkstra", 0, false)
	assert.ErrorIs(t, err, service.ErrInvalidRequest)

	err = runSearch(context.Background(), &bytes.Buffer{}, filepath.Join(t.TempDir(), "missing.json"), "bfs", 0, false)
	assert.Error(t, err)
}

func TestCommand(t *testing.T) {
	file := writeMap(t, "corridor.txt", corridor)

	var out bytes.Buffer
	cmd := newCommand()
	cmd.Writer = &out

	require.NoError(t, cmd.Run(context.Background(), []string{"search", "--max-depth", "10", file, "dfs"}))
	assert.Contains(t, out.String(), "Path to goal:")

	cmd = newCommand()
	cmd.Writer = &bytes.Buffer{}
	assert.Error(t, cmd.Run(context.Background(), []string{"search", file}))
}
