// Package mapfile reads and writes the plain-text map format:
//
//	[rows,cols]
//	(x,y)                  start
//	(x,y) | (x,y) | ...    goals
//	(x,y,w,h)              one rectangular wall per line
//
// Blank lines and lines starting with '#' are ignored, except for the
// "# name:" and "# description:" directives which set the map's metadata.
package mapfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/wricardo/mcp-training/robotnav/nav/engine"
)

// ErrMalformedFile is returned when a header line cannot be parsed.
var ErrMalformedFile = errors.New("mapfile: malformed map file")

// ParseFile reads the map file at path. Maps without a name directive are
// named after the file.
func ParseFile(path string) (*engine.MapDefinition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	def, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if def.Name == "" {
		def.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return def, nil
}

type line struct {
	no   int
	text string
}

// Parse reads a map in text form. Wall lines that do not hold exactly four
// integers are skipped.
func Parse(r io.Reader) (*engine.MapDefinition, error) {
	var (
		lines []line
		meta  = make(map[string]string)
	)
	sc := bufio.NewScanner(r)
	for no := 1; sc.Scan(); no++ {
		text := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(text, "#") {
			if key, value, ok := directive(text); ok {
				meta[key] = value
			}
			continue
		}
		if text == "" {
			continue
		}
		lines = append(lines, line{no: no, text: text})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(lines) < 3 {
		return nil, fmt.Errorf("%w: need size, start and goal lines, got %d lines", ErrMalformedFile, len(lines))
	}

	size, err := tuple(lines[0], 2)
	if err != nil {
		return nil, err
	}
	start, err := tuple(lines[1], 2)
	if err != nil {
		return nil, err
	}

	def := &engine.MapDefinition{
		Name:        meta["name"],
		Description: meta["description"],
		Rows:        size[0],
		Cols:        size[1],
		Start:       engine.State{X: start[0], Y: start[1]},
	}

	for _, part := range strings.Split(lines[2].text, "|") {
		g, err := tuple(line{no: lines[2].no, text: strings.TrimSpace(part)}, 2)
		if err != nil {
			return nil, err
		}
		def.Goals = append(def.Goals, engine.State{X: g[0], Y: g[1]})
	}

	for _, l := range lines[3:] {
		w, err := tuple(l, 4)
		if err != nil {
			continue
		}
		def.RectWalls = append(def.RectWalls, engine.Rect{X: w[0], Y: w[1], Width: w[2], Height: w[3]})
	}
	return def, nil
}

func directive(text string) (key, value string, ok bool) {
	key, value, ok = strings.Cut(strings.TrimSpace(strings.TrimPrefix(text, "#")), ":")
	if !ok {
		return "", "", false
	}
	key = strings.ToLower(strings.TrimSpace(key))
	if key != "name" && key != "description" {
		return "", "", false
	}
	return key, strings.TrimSpace(value), true
}

func tuple(l line, n int) ([]int, error) {
	trimmed := strings.Trim(l.text, "[]() ")
	parts := strings.Split(trimmed, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("%w: line %d: expected %d values in %q", ErrMalformedFile, l.no, n, l.text)
	}
	out := make([]int, n)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %q is not an integer", ErrMalformedFile, l.no, p)
		}
		out[i] = v
	}
	return out, nil
}

// Write emits def in text form. Single cell walls are written as 1x1
// rectangles.
func Write(w io.Writer, def *engine.MapDefinition) error {
	bw := bufio.NewWriter(w)
	if def.Name != "" {
		fmt.Fprintf(bw, "# name: %s\n", def.Name)
	}
	if def.Description != "" {
		fmt.Fprintf(bw, "# description: %s\n", def.Description)
	}
	fmt.Fprintf(bw, "[%d,%d]\n", def.Rows, def.Cols)
	fmt.Fprintf(bw, "(%d,%d)\n", def.Start.X, def.Start.Y)

	goals := make([]string, len(def.Goals))
	for i, g := range def.Goals {
		goals[i] = fmt.Sprintf("(%d,%d)", g.X, g.Y)
	}
	fmt.Fprintln(bw, strings.Join(goals, " | "))

	for _, r := range def.RectWalls {
		fmt.Fprintf(bw, "(%d,%d,%d,%d)\n", r.X, r.Y, r.Width, r.Height)
	}
	for _, c := range def.Walls {
		fmt.Fprintf(bw, "(%d,%d,1,1)\n", c.Col, c.Row)
	}
	return bw.Flush()
}
