// Package level decodes tile-map level files and builds the collision grid
// from their physics layers. Structural problems (layer length not matching
// the map dimensions, bad cell sizes) are rejected here at load time so the
// collision core never sees malformed geometry.
package level

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gridlockgames/collider/collision"
)

// TileSize is the default cell size in world units, matching the level
// editor's 32px tiles.
const TileSize = 32.0

// Level is a tile map stored as JSON. Each layer is a flat row-major array
// of length Width*Height; -1 and 0 are empty, values >= 1 are tile ids.
type Level struct {
	Name   string  `json:"name,omitempty"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Layers [][]int `json:"layers"`

	// LayerMeta marks which layers carry physics. Layers without metadata
	// are decoration only.
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`

	// Player spawn in tile coordinates.
	SpawnX int `json:"spawn_x,omitempty"`
	SpawnY int `json:"spawn_y,omitempty"`

	// Entities are initial object placements consumed by the simulation
	// layer (platforms, pickups, enemies).
	Entities []Entity `json:"entities,omitempty"`
}

type LayerMeta struct {
	Physics bool   `json:"physics"`
	Color   string `json:"color,omitempty"`
}

// Entity is a placed object. Props carries type-specific fields (platform
// paths, speeds) the loader passes through untouched.
type Entity struct {
	Type  string                 `json:"type"`
	X     int                    `json:"x"`
	Y     int                    `json:"y"`
	Props map[string]interface{} `json:"props,omitempty"`
}

// Load reads a level from a JSON file on disk.
func Load(path string) (*Level, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("level: read %s: %w", path, err)
	}
	lvl, err := Decode(b)
	if err != nil {
		return nil, fmt.Errorf("level: %s: %w", path, err)
	}
	if lvl.Name == "" {
		lvl.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return lvl, nil
}

// LoadFS reads a level from an fs.FS (e.g. the embedded levels).
func LoadFS(fsys fs.FS, name string) (*Level, error) {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("level: read %s: %w", name, err)
	}
	lvl, err := Decode(b)
	if err != nil {
		return nil, fmt.Errorf("level: %s: %w", name, err)
	}
	if lvl.Name == "" {
		lvl.Name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	return lvl, nil
}

// Decode parses and validates level JSON.
func Decode(b []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(b, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

// Validate checks the structural invariants the collision core depends on.
func (l *Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("dimensions %dx%d invalid", l.Width, l.Height)
	}
	want := l.Width * l.Height
	for i, layer := range l.Layers {
		if len(layer) != want {
			return fmt.Errorf("layer %d has %d cells, want %d", i, len(layer), want)
		}
	}
	if l.SpawnX < 0 || l.SpawnY < 0 || l.SpawnX >= l.Width || l.SpawnY >= l.Height {
		return fmt.Errorf("spawn (%d,%d) outside %dx%d map", l.SpawnX, l.SpawnY, l.Width, l.Height)
	}
	return nil
}

// BuildGrid merges every physics layer into a single solidity grid with the
// given cell size. A cell is solid when any physics layer has a tile there.
func (l *Level) BuildGrid(cellW, cellH float64) (*collision.TileGrid, error) {
	cells := make([]int, l.Width*l.Height)
	for i, layer := range l.Layers {
		if i >= len(l.LayerMeta) || !l.LayerMeta[i].Physics {
			continue
		}
		for idx, v := range layer {
			if v > 0 && cells[idx] == 0 {
				cells[idx] = v
			}
		}
	}
	return collision.NewTileGrid(l.Width, l.Height, cellW, cellH, cells)
}

// SpawnWorld returns the spawn point in world units for the cell size.
func (l *Level) SpawnWorld(cellW, cellH float64) (float64, float64) {
	return float64(l.SpawnX) * cellW, float64(l.SpawnY) * cellH
}
