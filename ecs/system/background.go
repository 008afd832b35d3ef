package system

import (
	"github.com/gridlockgames/collider/collision"
	"github.com/gridlockgames/collider/ecs"
	"github.com/gridlockgames/collider/ecs/component"
)

// Background resolves every entity's candidate position against the static
// level and this frame's temporary surfaces, then mirrors the corrected
// position onto the transform. Runs once per entity per frame, after
// movement and platform submission.
type Background struct {
	cw    *collision.World
	clock *ecs.Clock
}

func NewBackground(cw *collision.World, clock *ecs.Clock) *Background {
	return &Background{cw: cw, clock: clock}
}

func (b *Background) Update(w *ecs.World) {
	if b == nil || w == nil || b.cw == nil || b.clock == nil {
		return
	}
	now := b.clock.Time

	ecs.ForEach2(w, component.PhysicsBodyComponent, component.TransformComponent, func(e ecs.Entity, pb *component.PhysicsBody, tr *component.Transform) {
		if pb.Body == nil {
			return
		}
		b.cw.ResolveBackground(pb.Body, now)
		tr.X = pb.Body.Pos.X
		tr.Y = pb.Body.Pos.Y
	})
}
