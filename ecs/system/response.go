package system

import (
	"github.com/gridlockgames/collider/collision"
	"github.com/gridlockgames/collider/ecs"
	"github.com/gridlockgames/collider/ecs/component"
)

// Response is the physics-integration step consuming the resolver's contact
// flags: velocity into a surface touched this frame is zeroed. This is the
// approximate contact response the collision core itself stays out of.
type Response struct {
	cw    *collision.World
	clock *ecs.Clock
}

func NewResponse(cw *collision.World, clock *ecs.Clock) *Response {
	return &Response{cw: cw, clock: clock}
}

func (r *Response) Update(w *ecs.World) {
	if r == nil || w == nil || r.cw == nil || r.clock == nil {
		return
	}
	now := r.clock.Time

	ecs.ForEach2(w, component.PhysicsBodyComponent, component.VelocityComponent, func(e ecs.Entity, pb *component.PhysicsBody, v *component.Velocity) {
		body := pb.Body
		if body == nil {
			return
		}
		if v.Y > 0 && body.LastTouched(collision.SideFloor) == now {
			v.Y = 0
		}
		if v.Y < 0 && body.LastTouched(collision.SideCeiling) == now {
			v.Y = 0
		}
		if v.X > 0 && body.LastTouched(collision.SideRightWall) == now {
			v.X = 0
		}
		if v.X < 0 && body.LastTouched(collision.SideLeftWall) == now {
			v.X = 0
		}
	})
}
