// Package collision implements the deterministic 2D collision core: a static
// tile grid, per-frame dynamic surfaces, a shared raycaster, swept movement
// resolution with per-surface contact tracking, and entity-pair hit testing.
//
// All of it runs synchronously inside one simulation step. Degenerate inputs
// (missing grid, zero-size boxes, zero-length rays) resolve to "no collision"
// rather than errors so that a partially loaded level never takes down the
// frame loop; structural problems are rejected once at construction time.
package collision

import (
	"fmt"

	"github.com/jakecoffman/cp"
)

// TileGrid is the immutable solidity lookup for a level. Cells holds one int
// per cell in row-major order; values greater than zero are solid, zero and
// negative values are empty (the level format writes -1 for "no tile").
type TileGrid struct {
	Width      int
	Height     int
	CellWidth  float64
	CellHeight float64

	cells []int
}

// NewTileGrid validates the dimensions against the flat cell array and
// returns the grid. Mismatches are load-time errors, never a per-frame
// concern.
func NewTileGrid(width, height int, cellW, cellH float64, cells []int) (*TileGrid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("collision: grid dimensions %dx%d invalid", width, height)
	}
	if cellW <= 0 || cellH <= 0 {
		return nil, fmt.Errorf("collision: cell size %gx%g invalid", cellW, cellH)
	}
	if len(cells) != width*height {
		return nil, fmt.Errorf("collision: cell array length %d != %d*%d", len(cells), width, height)
	}
	copied := append([]int(nil), cells...)
	return &TileGrid{
		Width:      width,
		Height:     height,
		CellWidth:  cellW,
		CellHeight: cellH,
		cells:      copied,
	}, nil
}

// IsSolid reports whether the tile at (tx, ty) blocks movement.
// Out-of-range coordinates are never solid.
func (g *TileGrid) IsSolid(tx, ty int) bool {
	if g == nil || tx < 0 || ty < 0 || tx >= g.Width || ty >= g.Height {
		return false
	}
	return g.cells[ty*g.Width+tx] > 0
}

// SolidAt reports whether the world-space point lies inside a solid tile.
func (g *TileGrid) SolidAt(x, y float64) bool {
	if g == nil {
		return false
	}
	return g.IsSolid(g.TileAt(x, y))
}

// TileAt converts a world-space point to tile coordinates.
func (g *TileGrid) TileAt(x, y float64) (int, int) {
	if g == nil || g.CellWidth <= 0 || g.CellHeight <= 0 {
		return -1, -1
	}
	tx := int(x / g.CellWidth)
	ty := int(y / g.CellHeight)
	if x < 0 {
		tx--
	}
	if y < 0 {
		ty--
	}
	return tx, ty
}

// WorldWidth returns the level width in world units.
func (g *TileGrid) WorldWidth() float64 {
	if g == nil {
		return 0
	}
	return float64(g.Width) * g.CellWidth
}

// WorldHeight returns the level height in world units.
func (g *TileGrid) WorldHeight() float64 {
	if g == nil {
		return 0
	}
	return float64(g.Height) * g.CellHeight
}

// SweepResult reports which sides of a box are blocked by solid tiles.
type SweepResult struct {
	Grounded  bool
	Ceiling   bool
	LeftWall  bool
	RightWall bool
	// Normal is the sum of blocked-side normals, normalized when non-zero.
	Normal cp.Vector
}

// SweepBox probes the tiles overlapping the box's leading edges in the
// direction of travel. Only the edges whose velocity component is nonzero are
// tested. This is a cheap discrete same-frame probe for movement code; it
// does not prevent tunneling — that is the raycaster's and resolver's job.
func (g *TileGrid) SweepBox(x, y, w, h, vx, vy float64) SweepResult {
	var res SweepResult
	if g == nil || w <= 0 || h <= 0 {
		return res
	}

	if vx > 0 {
		if g.edgeBlockedVertical(x+w+vx, y, h) {
			res.RightWall = true
			res.Normal = res.Normal.Add(cp.Vector{X: -1, Y: 0})
		}
	} else if vx < 0 {
		if g.edgeBlockedVertical(x+vx, y, h) {
			res.LeftWall = true
			res.Normal = res.Normal.Add(cp.Vector{X: 1, Y: 0})
		}
	}

	if vy > 0 {
		if g.edgeBlockedHorizontal(y+h+vy, x, w) {
			res.Grounded = true
			res.Normal = res.Normal.Add(cp.Vector{X: 0, Y: -1})
		}
	} else if vy < 0 {
		if g.edgeBlockedHorizontal(y+vy, x, w) {
			res.Ceiling = true
			res.Normal = res.Normal.Add(cp.Vector{X: 0, Y: 1})
		}
	}

	if res.Normal.X != 0 || res.Normal.Y != 0 {
		res.Normal = res.Normal.Normalize()
	}
	return res
}

// edgeBlockedVertical tests the vertical edge segment at world x spanning
// [y, y+h) against solid tiles.
func (g *TileGrid) edgeBlockedVertical(x, y, h float64) bool {
	tx, ty0 := g.TileAt(x, y)
	// The far end is exclusive so a box resting flush with a tile boundary
	// does not register the neighboring row.
	_, ty1 := g.TileAt(x, y+h-boundaryNudge)
	for ty := ty0; ty <= ty1; ty++ {
		if g.IsSolid(tx, ty) {
			return true
		}
	}
	return false
}

// edgeBlockedHorizontal tests the horizontal edge segment at world y spanning
// [x, x+w) against solid tiles.
func (g *TileGrid) edgeBlockedHorizontal(y, x, w float64) bool {
	tx0, ty := g.TileAt(x, y)
	tx1, _ := g.TileAt(x+w-boundaryNudge, y)
	for tx := tx0; tx <= tx1; tx++ {
		if g.IsSolid(tx, ty) {
			return true
		}
	}
	return false
}

// boundaryNudge keeps exclusive edge ends from spilling into the next cell.
const boundaryNudge = 1e-9
