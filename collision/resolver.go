package collision

import (
	"math"

	"github.com/jakecoffman/cp"
)

// ResolveBackground sweeps a body from its previous position to its current
// (candidate) position against the tile grid, the level bounds, and this
// frame's temporary surfaces. On return the body holds the corrected
// position, refreshed contact timestamps for every side that was hit, and
// the merged contact normal. Runs once per entity per frame.
//
// The dominant axis is swept first; the second sweep operates on the
// already-snapped result, which matters for diagonal motion. A final
// alignment pass through the box centerlines catches corner tunneling the
// two edge sweeps can miss.
func (w *World) ResolveBackground(b *Body, now float64) {
	if w == nil || b == nil {
		return
	}

	// Degenerate configurations degrade to position tracking only: an
	// uninitialized grid or a zero-area box must never crash or block the
	// frame loop.
	if w.grid == nil || w.grid.Width <= 0 || w.grid.Height <= 0 || b.W <= 0 || b.H <= 0 {
		b.Normal = cp.Vector{}
		b.prev = b.Pos
		b.prevSet = true
		return
	}

	// First resolution after spawn: record the position and report nothing.
	if !b.prevSet {
		b.Normal = cp.Vector{}
		b.prev = b.Pos
		b.prevSet = true
		return
	}

	prev := b.prev
	delta := b.Pos.Sub(prev)

	var hitX, hitY cp.Vector
	if delta.X != 0 || delta.Y != 0 {
		if math.Abs(delta.X) > math.Abs(delta.Y) {
			hitX = w.sweepHorizontal(b, prev, delta.X)
			hitY = w.sweepVertical(b, prev, delta.Y)
		} else {
			hitY = w.sweepVertical(b, prev, delta.Y)
			hitX = w.sweepHorizontal(b, prev, delta.X)
		}
	}

	hitX, hitY = w.clampToBounds(b, hitX, hitY)

	if delta.X != 0 && delta.Y != 0 {
		if n := w.alignVertical(b, delta.Y); n.X != 0 || n.Y != 0 {
			hitY = n
		}
		if n := w.alignHorizontal(b, delta.X); n.X != 0 || n.Y != 0 {
			hitX = n
		}
	}

	merged := hitX.Add(hitY)
	if merged.X != 0 || merged.Y != 0 {
		merged = merged.Normalize()
	}
	b.Normal = merged

	if hitX.X > 0 {
		b.stamp(SideLeftWall, now)
	} else if hitX.X < 0 {
		b.stamp(SideRightWall, now)
	}
	if hitY.Y < 0 {
		b.stamp(SideFloor, now)
	} else if hitY.Y > 0 {
		b.stamp(SideCeiling, now)
	}

	b.prev = b.Pos
}

// sweepHorizontal casts from the previous-frame box center to the candidate
// position's leading horizontal edge and snaps the body so that edge rests
// at the hit point. The motion filter admits only surfaces opposing
// horizontal travel. Returns the hit normal, or zero.
func (w *World) sweepHorizontal(b *Body, prev cp.Vector, dx float64) cp.Vector {
	if dx == 0 {
		return cp.Vector{}
	}
	s := 1.0
	if dx < 0 {
		s = -1.0
	}

	origin := cp.Vector{
		X: prev.X + b.OffsetX + b.W/2,
		Y: prev.Y + b.OffsetY + b.H/2,
	}
	rect := b.Rect()
	target := rect.X
	if s > 0 {
		target = rect.X + rect.Width
	}
	maxDist := (target - origin.X) * s
	if maxDist <= 0 {
		return cp.Vector{}
	}

	hit := w.cast(origin, cp.Vector{X: s, Y: 0}, maxDist, b.Owner, cp.Vector{X: s, Y: 0})
	if !hit.Hit {
		return cp.Vector{}
	}
	if s > 0 {
		b.Pos.X = hit.Point.X - b.W - b.OffsetX
	} else {
		b.Pos.X = hit.Point.X - b.OffsetX
	}
	return hit.Normal
}

// sweepVertical is the symmetric sweep for the top/bottom edge.
func (w *World) sweepVertical(b *Body, prev cp.Vector, dy float64) cp.Vector {
	if dy == 0 {
		return cp.Vector{}
	}
	s := 1.0
	if dy < 0 {
		s = -1.0
	}

	origin := cp.Vector{
		X: prev.X + b.OffsetX + b.W/2,
		Y: prev.Y + b.OffsetY + b.H/2,
	}
	rect := b.Rect()
	target := rect.Y
	if s > 0 {
		target = rect.Y + rect.Height
	}
	maxDist := (target - origin.Y) * s
	if maxDist <= 0 {
		return cp.Vector{}
	}

	hit := w.cast(origin, cp.Vector{X: 0, Y: s}, maxDist, b.Owner, cp.Vector{X: 0, Y: s})
	if !hit.Hit {
		return cp.Vector{}
	}
	if s > 0 {
		b.Pos.Y = hit.Point.Y - b.H - b.OffsetY
	} else {
		b.Pos.Y = hit.Point.Y - b.OffsetY
	}
	return hit.Normal
}

// clampToBounds treats the level's left, right and top edges as implicit
// solid walls, synthesizing boundary normals identical to tile hits. The
// bottom edge stays open: falling out of the world is a gameplay condition,
// not a collision.
func (w *World) clampToBounds(b *Body, hitX, hitY cp.Vector) (cp.Vector, cp.Vector) {
	rect := b.Rect()
	worldW := w.grid.WorldWidth()

	if rect.X < 0 {
		b.Pos.X = -b.OffsetX
		hitX = cp.Vector{X: 1, Y: 0}
	} else if rect.X+rect.Width > worldW {
		b.Pos.X = worldW - b.W - b.OffsetX
		hitX = cp.Vector{X: -1, Y: 0}
	}
	if rect.Y < 0 {
		b.Pos.Y = -b.OffsetY
		hitY = cp.Vector{X: 0, Y: 1}
	}
	return hitX, hitY
}

// alignVertical casts through the vertical centerline of the already-snapped
// box, spanning its full height from the trailing edge toward travel. A hit
// re-snaps the vertical axis and overwrites its normal. This catches corner
// and tunneling cases during diagonal motion.
func (w *World) alignVertical(b *Body, dy float64) cp.Vector {
	s := 1.0
	if dy < 0 {
		s = -1.0
	}
	rect := b.Rect()
	originY := rect.Y
	if s < 0 {
		originY = rect.Y + rect.Height
	}
	// Nudge the origin off the trailing edge: an edge resting flush on a
	// cell boundary must not read as embedded in the neighboring cell.
	origin := cp.Vector{X: rect.CenterX(), Y: originY + s*boundaryNudge}

	hit := w.cast(origin, cp.Vector{X: 0, Y: s}, rect.Height, b.Owner, cp.Vector{X: 0, Y: s})
	if !hit.Hit {
		return cp.Vector{}
	}
	if s > 0 {
		b.Pos.Y = hit.Point.Y - b.H - b.OffsetY
	} else {
		b.Pos.Y = hit.Point.Y - b.OffsetY
	}
	return hit.Normal
}

// alignHorizontal is the matching centerline cast along the travel
// direction's horizontal axis.
func (w *World) alignHorizontal(b *Body, dx float64) cp.Vector {
	s := 1.0
	if dx < 0 {
		s = -1.0
	}
	rect := b.Rect()
	originX := rect.X
	if s < 0 {
		originX = rect.X + rect.Width
	}
	origin := cp.Vector{X: originX + s*boundaryNudge, Y: rect.CenterY()}

	hit := w.cast(origin, cp.Vector{X: s, Y: 0}, rect.Width, b.Owner, cp.Vector{X: s, Y: 0})
	if !hit.Hit {
		return cp.Vector{}
	}
	if s > 0 {
		b.Pos.X = hit.Point.X - b.W - b.OffsetX
	} else {
		b.Pos.X = hit.Point.X - b.OffsetX
	}
	return hit.Normal
}
