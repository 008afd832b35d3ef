package collision

import (
	"math"

	"github.com/jakecoffman/cp"
)

// RayHit is the result of a raycast. When Hit is false the other fields are
// zero values.
type RayHit struct {
	Hit      bool
	Point    cp.Vector
	Normal   cp.Vector
	Distance float64
}

// Raycast casts a ray against the tile grid and the current frame's
// temporary surfaces, returning the nearest hit along the segment. The
// direction must be pre-normalized by the caller; zero-length directions and
// non-positive distances return no hit. Ties at identical distance resolve
// to the tile hit (tiles are tested first, surfaces win only when strictly
// nearer), which keeps results deterministic.
func (w *World) Raycast(origin, dir cp.Vector, maxDist float64) RayHit {
	if w == nil {
		return RayHit{}
	}
	return w.cast(origin, dir, maxDist, 0, cp.Vector{})
}

// cast is the shared raycast with an owner exclusion and a motion filter.
// Surfaces whose normal does not oppose the filter vector are ignored; a
// zero filter admits everything. Tile geometry is never filtered.
func (w *World) cast(origin, dir cp.Vector, maxDist float64, exclude uint64, filter cp.Vector) RayHit {
	if w == nil || maxDist <= 0 {
		return RayHit{}
	}
	if dir.X == 0 && dir.Y == 0 {
		return RayHit{}
	}

	best := w.grid.castGrid(origin, dir, maxDist)

	for _, s := range w.surfaces.Surfaces() {
		if exclude != 0 && s.Owner == exclude {
			continue
		}
		if (filter.X != 0 || filter.Y != 0) && s.Normal.Dot(filter) >= 0 {
			continue
		}
		t, ok := raySegment(origin, dir, maxDist, s.Start, s.End)
		if !ok {
			continue
		}
		if best.Hit && t >= best.Distance {
			continue
		}
		best = RayHit{
			Hit:      true,
			Point:    origin.Add(dir.Mult(t)),
			Normal:   s.Normal,
			Distance: t,
		}
	}

	return best
}

// castGrid walks the ray through the grid one cell boundary at a time (DDA)
// and returns the first solid cell crossing. Exact traversal: no step size,
// no cells skipped regardless of ray length.
func (g *TileGrid) castGrid(origin, dir cp.Vector, maxDist float64) RayHit {
	if g == nil || g.Width <= 0 || g.Height <= 0 {
		return RayHit{}
	}
	if dir.X == 0 && dir.Y == 0 {
		return RayHit{}
	}

	tx, ty := g.TileAt(origin.X, origin.Y)
	if g.IsSolid(tx, ty) {
		// Ray starts embedded in solid geometry: report an immediate hit
		// with a normal opposing the travel direction.
		return RayHit{Hit: true, Point: origin, Normal: opposingAxisNormal(dir)}
	}

	stepX, stepY := 0, 0
	tMaxX, tMaxY := math.Inf(1), math.Inf(1)
	tDeltaX, tDeltaY := math.Inf(1), math.Inf(1)

	if dir.X > 0 {
		stepX = 1
		tMaxX = (float64(tx+1)*g.CellWidth - origin.X) / dir.X
		tDeltaX = g.CellWidth / dir.X
	} else if dir.X < 0 {
		stepX = -1
		tMaxX = (origin.X - float64(tx)*g.CellWidth) / -dir.X
		tDeltaX = g.CellWidth / -dir.X
	}
	if dir.Y > 0 {
		stepY = 1
		tMaxY = (float64(ty+1)*g.CellHeight - origin.Y) / dir.Y
		tDeltaY = g.CellHeight / dir.Y
	} else if dir.Y < 0 {
		stepY = -1
		tMaxY = (origin.Y - float64(ty)*g.CellHeight) / -dir.Y
		tDeltaY = g.CellHeight / -dir.Y
	}

	for {
		if tMaxX <= tMaxY {
			t := tMaxX
			if t > maxDist {
				return RayHit{}
			}
			tx += stepX
			tMaxX += tDeltaX
			if g.IsSolid(tx, ty) {
				// Pin the crossed coordinate to the exact cell boundary so
				// snapped positions are bit-stable across runs.
				boundary := float64(tx) * g.CellWidth
				if stepX < 0 {
					boundary = float64(tx+1) * g.CellWidth
				}
				return RayHit{
					Hit:      true,
					Point:    cp.Vector{X: boundary, Y: origin.Y + dir.Y*t},
					Normal:   cp.Vector{X: float64(-stepX), Y: 0},
					Distance: t,
				}
			}
		} else {
			t := tMaxY
			if t > maxDist {
				return RayHit{}
			}
			ty += stepY
			tMaxY += tDeltaY
			if g.IsSolid(tx, ty) {
				boundary := float64(ty) * g.CellHeight
				if stepY < 0 {
					boundary = float64(ty+1) * g.CellHeight
				}
				return RayHit{
					Hit:      true,
					Point:    cp.Vector{X: origin.X + dir.X*t, Y: boundary},
					Normal:   cp.Vector{X: 0, Y: float64(-stepY)},
					Distance: t,
				}
			}
		}
	}
}

// raySegment intersects the ray (origin, dir, maxDist) with the segment
// (a, b). Returns the ray parameter of the crossing, or false when they do
// not meet inside both ranges. Parallel and colinear cases report no hit.
func raySegment(origin, dir cp.Vector, maxDist float64, a, b cp.Vector) (float64, bool) {
	edge := b.Sub(a)
	denom := dir.Cross(edge)
	if denom == 0 {
		return 0, false
	}
	ao := a.Sub(origin)
	t := ao.Cross(edge) / denom
	u := ao.Cross(dir) / denom
	if t < 0 || t > maxDist || u < 0 || u > 1 {
		return 0, false
	}
	return t, true
}

// opposingAxisNormal returns a unit axis normal opposing the dominant
// component of dir, used when a ray begins inside solid geometry.
func opposingAxisNormal(dir cp.Vector) cp.Vector {
	if math.Abs(dir.X) >= math.Abs(dir.Y) {
		if dir.X >= 0 {
			return cp.Vector{X: -1, Y: 0}
		}
		return cp.Vector{X: 1, Y: 0}
	}
	if dir.Y >= 0 {
		return cp.Vector{X: 0, Y: -1}
	}
	return cp.Vector{X: 0, Y: 1}
}
