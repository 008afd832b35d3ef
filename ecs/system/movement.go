// Package system holds the per-frame systems that drive the collision core:
// velocity integration, platform surface submission, background resolution,
// contact response, and hit testing.
package system

import (
	"github.com/gridlockgames/collider/config"
	"github.com/gridlockgames/collider/ecs"
	"github.com/gridlockgames/collider/ecs/component"
)

// Movement integrates velocities into candidate positions. Gravity uses the
// kinematic displacement form (v*t + a*t^2/2) so results are independent of
// where in the frame the velocity update lands.
type Movement struct {
	clock  *ecs.Clock
	tuning config.Tuning
}

func NewMovement(clock *ecs.Clock, tuning config.Tuning) *Movement {
	return &Movement{clock: clock, tuning: tuning}
}

func (m *Movement) Update(w *ecs.World) {
	if m == nil || w == nil || m.clock == nil {
		return
	}
	dt := m.clock.Step

	ecs.ForEach2(w, component.PhysicsBodyComponent, component.VelocityComponent, func(e ecs.Entity, pb *component.PhysicsBody, v *component.Velocity) {
		if pb.Body == nil {
			return
		}

		accel := 0.0
		if g, ok := ecs.Get(w, e, component.GravityComponent); ok && !g.Disabled {
			scale := g.Scale
			if scale == 0 {
				scale = 1
			}
			accel = m.tuning.Gravity * scale
		}

		pb.Body.Pos.X += v.X * dt
		pb.Body.Pos.Y += v.Y*dt + 0.5*accel*dt*dt

		v.Y += accel * dt
		if m.tuning.TerminalVelocity > 0 && v.Y > m.tuning.TerminalVelocity {
			v.Y = m.tuning.TerminalVelocity
		}
	})
}
