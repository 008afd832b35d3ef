package collision

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Circle is a convex collision volume in entity-local space.
type Circle struct {
	Offset cp.Vector
	Radius float64
}

// At returns the circle translated into world space.
func (c Circle) At(pos cp.Vector) Circle {
	return Circle{Offset: c.Offset.Add(pos), Radius: c.Radius}
}

// Overlaps reports whether two world-space circles overlap. Zero-radius
// circles never overlap anything (degenerate geometry is conservative).
func (c Circle) Overlaps(other Circle) bool {
	if c.Radius <= 0 || other.Radius <= 0 {
		return false
	}
	d := c.Offset.Sub(other.Offset)
	r := c.Radius + other.Radius
	return d.LengthSq() <= r*r
}

// VolumeSet holds an entity's attack and vulnerability volumes plus a cached
// bounding circle enclosing the union of both sets. The bound is recomputed
// lazily when the sets change, not every frame.
type VolumeSet struct {
	attacks []Circle
	vulns   []Circle

	bound  Circle
	dirty  bool
	hasAny bool
}

// AddAttack appends an attack volume.
func (vs *VolumeSet) AddAttack(c Circle) {
	if vs == nil || c.Radius <= 0 {
		return
	}
	vs.attacks = append(vs.attacks, c)
	vs.dirty = true
	vs.hasAny = true
}

// AddVulnerability appends a vulnerability volume.
func (vs *VolumeSet) AddVulnerability(c Circle) {
	if vs == nil || c.Radius <= 0 {
		return
	}
	vs.vulns = append(vs.vulns, c)
	vs.dirty = true
	vs.hasAny = true
}

// Clear removes all volumes.
func (vs *VolumeSet) Clear() {
	if vs == nil {
		return
	}
	vs.attacks = vs.attacks[:0]
	vs.vulns = vs.vulns[:0]
	vs.bound = Circle{}
	vs.dirty = false
	vs.hasAny = false
}

// Attacks returns the attack volumes in insertion order.
func (vs *VolumeSet) Attacks() []Circle {
	if vs == nil {
		return nil
	}
	return vs.attacks
}

// Vulnerabilities returns the vulnerability volumes in insertion order.
func (vs *VolumeSet) Vulnerabilities() []Circle {
	if vs == nil {
		return nil
	}
	return vs.vulns
}

// Bounding returns the entity-local bounding circle enclosing every volume
// in the set, or a zero circle when the set is empty. Not the minimal
// enclosing circle, but always enclosing: centered on the volume extents'
// midpoint with radius covering the farthest volume edge.
func (vs *VolumeSet) Bounding() Circle {
	if vs == nil || !vs.hasAny {
		return Circle{}
	}
	if vs.dirty {
		vs.bound = enclosingCircle(vs.attacks, vs.vulns)
		vs.dirty = false
	}
	return vs.bound
}

func enclosingCircle(groups ...[]Circle) Circle {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	n := 0
	for _, g := range groups {
		for _, c := range g {
			minX = math.Min(minX, c.Offset.X-c.Radius)
			minY = math.Min(minY, c.Offset.Y-c.Radius)
			maxX = math.Max(maxX, c.Offset.X+c.Radius)
			maxY = math.Max(maxY, c.Offset.Y+c.Radius)
			n++
		}
	}
	if n == 0 {
		return Circle{}
	}
	center := cp.Vector{X: (minX + maxX) / 2, Y: (minY + maxY) / 2}
	radius := 0.0
	for _, g := range groups {
		for _, c := range g {
			r := c.Offset.Sub(center).Length() + c.Radius
			radius = math.Max(radius, r)
		}
	}
	return Circle{Offset: center, Radius: radius}
}
