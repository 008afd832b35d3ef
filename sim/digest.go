package sim

import (
	"encoding/binary"
	"hash/fnv"
	"math"

	"github.com/gridlockgames/collider/collision"
	"github.com/gridlockgames/collider/ecs"
	"github.com/gridlockgames/collider/ecs/component"
)

// Digest accumulates a 64-bit fingerprint of simulation state across frames.
// Two runs of the same level, tuning and scenario must produce the same
// digest bit for bit; replays and regression tests compare these.
type Digest struct {
	h   uint64
	buf [8]byte
	ok  bool
}

func NewDigest() *Digest {
	return &Digest{h: fnv.New64a().Sum64(), ok: true}
}

func (d *Digest) writeUint64(v uint64) {
	// Inline FNV-1a so we never allocate per frame.
	const prime = 1099511628211
	binary.LittleEndian.PutUint64(d.buf[:], v)
	for _, b := range d.buf {
		d.h ^= uint64(b)
		d.h *= prime
	}
}

func (d *Digest) writeFloat(v float64) {
	d.writeUint64(math.Float64bits(v))
}

// Observe folds one frame of the simulation into the digest: every body's
// position and contact sides, in slot order.
func (d *Digest) Observe(s *Sim) {
	if d == nil || !d.ok || s == nil {
		return
	}
	d.writeUint64(uint64(s.Clock.Frame))
	for _, e := range s.Actors() {
		body := s.Body(e)
		if body == nil {
			continue
		}
		d.writeUint64(uint64(e))
		d.writeFloat(body.Pos.X)
		d.writeFloat(body.Pos.Y)
		for _, side := range []collision.Side{collision.SideFloor, collision.SideCeiling, collision.SideLeftWall, collision.SideRightWall} {
			if s.Collision.IsTouching(body, side, s.Clock.Time) {
				d.writeUint64(1)
			} else {
				d.writeUint64(0)
			}
		}
	}
	for _, e := range s.World.Query(component.PlatformComponent.Kind(), component.TransformComponent.Kind()) {
		tr := ecs.GetPtr(s.World, e, component.TransformComponent)
		if tr == nil {
			continue
		}
		d.writeUint64(uint64(e))
		d.writeFloat(tr.X)
		d.writeFloat(tr.Y)
	}
}

// Sum returns the current fingerprint.
func (d *Digest) Sum() uint64 {
	if d == nil {
		return 0
	}
	return d.h
}
