package system

import (
	"github.com/gridlockgames/collider/collision"
	"github.com/gridlockgames/collider/ecs"
	"github.com/gridlockgames/collider/ecs/component"
)

// HitTest rebuilds the hit registry from scratch each frame and runs the
// pair pass once, after all entities have settled. Candidates surface as
// world events; whatever policy reacts to them lives outside this package.
type HitTest struct {
	cw *collision.World
}

func NewHitTest(cw *collision.World) *HitTest {
	return &HitTest{cw: cw}
}

func (h *HitTest) Update(w *ecs.World) {
	if h == nil || w == nil || h.cw == nil {
		return
	}

	events := w.Events()
	ecs.ForEach2(w, component.VolumesComponent, component.PhysicsBodyComponent, func(e ecs.Entity, vol *component.Volumes, pb *component.PhysicsBody) {
		if vol.Set == nil || pb.Body == nil {
			return
		}
		h.cw.RegisterForHitTesting(uint64(e), pb.Body.Pos, vol.Set, func(c collision.HitCandidate) {
			events.Push(ecs.Event{
				Type: ecs.EventHit,
				Data: ecs.HitEvent{
					Attacker: ecs.Entity(c.Attacker),
					Victim:   ecs.Entity(c.Victim),
				},
			})
		})
	})

	h.cw.RunHitTests()
}
