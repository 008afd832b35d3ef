package collision

import "github.com/jakecoffman/cp"

// Surface is a one-frame line segment with an outward normal, submitted by a
// dynamic solid (moving platform, door). Owner identifies the submitting
// entity so it can be excluded from its own sweeps; it carries no ownership
// semantics beyond that.
type Surface struct {
	Start  cp.Vector
	End    cp.Vector
	Normal cp.Vector
	Owner  uint64
}

// SurfaceSet is the per-frame arena of temporary surfaces. It is owned by
// the World, cleared at frame start, filled by dynamic-solid owners before
// resolution runs, and must not be mutated mid-sweep. Iteration follows
// submission order, which keeps raycast tie-breaking deterministic.
type SurfaceSet struct {
	surfaces []Surface
}

// Reset clears the arena for a new frame. The backing array is retained.
func (s *SurfaceSet) Reset() {
	if s == nil {
		return
	}
	s.surfaces = s.surfaces[:0]
}

// Submit adds a surface for the current frame. Degenerate segments and
// zero normals are dropped; owners resubmit every frame a surface should
// remain solid.
func (s *SurfaceSet) Submit(start, end, normal cp.Vector, owner uint64) {
	if s == nil {
		return
	}
	if start.X == end.X && start.Y == end.Y {
		return
	}
	if normal.X == 0 && normal.Y == 0 {
		return
	}
	s.surfaces = append(s.surfaces, Surface{
		Start:  start,
		End:    end,
		Normal: normal.Normalize(),
		Owner:  owner,
	})
}

// Surfaces returns the live surfaces in submission order.
func (s *SurfaceSet) Surfaces() []Surface {
	if s == nil {
		return nil
	}
	return s.surfaces
}

// Len returns the number of live surfaces.
func (s *SurfaceSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.surfaces)
}
