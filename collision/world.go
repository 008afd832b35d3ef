package collision

import "github.com/jakecoffman/cp"

// World ties the static grid, the per-frame surface arena, the raycaster and
// the hit registry into one collision space. One World exists per loaded
// level; everything on it runs synchronously inside a simulation step.
type World struct {
	grid     *TileGrid
	surfaces SurfaceSet
	registry HitRegistry

	// ContactDecay is the window within which a contact timestamp still
	// counts as touching. Zero means DefaultContactDecay.
	ContactDecay float64
}

// NewWorld creates a collision world for the grid. A nil grid is legal and
// yields a world where every query degrades to "no collision"; a live level
// must never run that way.
func NewWorld(grid *TileGrid) *World {
	return &World{grid: grid}
}

// Grid returns the static tile grid, or nil when none is loaded.
func (w *World) Grid() *TileGrid {
	if w == nil {
		return nil
	}
	return w.grid
}

// BeginFrame clears the per-frame state: temporary surfaces and hit
// registrations. Call once at the top of each simulation step, before
// dynamic solids submit surfaces and before any resolution runs.
func (w *World) BeginFrame() {
	if w == nil {
		return
	}
	w.surfaces.Reset()
	w.registry.Reset()
}

// SubmitSurface adds a temporary surface for this frame. Dynamic solids call
// this once per frame, before resolution.
func (w *World) SubmitSurface(start, end, normal cp.Vector, owner uint64) {
	if w == nil {
		return
	}
	w.surfaces.Submit(start, end, normal, owner)
}

// Surfaces exposes this frame's surface arena (read-only use).
func (w *World) Surfaces() []Surface {
	if w == nil {
		return nil
	}
	return w.surfaces.Surfaces()
}

// SweepBox is the discrete leading-edge probe against the tile grid.
func (w *World) SweepBox(x, y, width, height, vx, vy float64) SweepResult {
	if w == nil {
		return SweepResult{}
	}
	return w.grid.SweepBox(x, y, width, height, vx, vy)
}

// RegisterForHitTesting queues an entity for this frame's hit pass.
func (w *World) RegisterForHitTesting(owner uint64, pos cp.Vector, volumes *VolumeSet, onHit HitCallback) {
	if w == nil {
		return
	}
	w.registry.Register(owner, pos, volumes, onHit)
}

// RunHitTests runs the registry pass once, after all entities have settled.
func (w *World) RunHitTests() {
	if w == nil {
		return
	}
	w.registry.Run()
}

// IsTouching reports whether the body touched the given side within the
// world's contact decay window of now.
func (w *World) IsTouching(b *Body, side Side, now float64) bool {
	if w == nil || b == nil {
		return false
	}
	return b.IsTouching(side, now, w.ContactDecay)
}
