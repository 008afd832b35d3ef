package system

import (
	"github.com/jakecoffman/cp"

	"github.com/gridlockgames/collider/collision"
	"github.com/gridlockgames/collider/common"
	"github.com/gridlockgames/collider/ecs"
	"github.com/gridlockgames/collider/ecs/component"
)

// Platforms advances moving platforms along their ping-pong paths and
// submits their walkable tops to the collision world as temporary surfaces.
// Runs before resolution so riders see this frame's geometry.
type Platforms struct {
	cw    *collision.World
	clock *ecs.Clock
}

func NewPlatforms(cw *collision.World, clock *ecs.Clock) *Platforms {
	return &Platforms{cw: cw, clock: clock}
}

func (p *Platforms) Update(w *ecs.World) {
	if p == nil || w == nil || p.cw == nil || p.clock == nil {
		return
	}
	dt := p.clock.Step

	ecs.ForEach2(w, component.PlatformComponent, component.TransformComponent, func(e ecs.Entity, pl *component.Platform, tr *component.Transform) {
		if pl.Dir == 0 {
			pl.Dir = 1
		}

		length := cp.Vector{X: pl.ToX - pl.FromX, Y: pl.ToY - pl.FromY}.Length()
		if length > 0 && pl.Speed > 0 {
			pl.T += pl.Dir * pl.Speed * dt / length
			// Ping-pong at the ends.
			if pl.T > 1 {
				pl.T = 2 - pl.T
				pl.Dir = -pl.Dir
			} else if pl.T < 0 {
				pl.T = -pl.T
				pl.Dir = -pl.Dir
			}
		}

		tr.X = common.Lerp(pl.FromX, pl.ToX, pl.T)
		tr.Y = common.Lerp(pl.FromY, pl.ToY, pl.T)

		if pl.Width <= 0 {
			return
		}
		p.cw.SubmitSurface(
			cp.Vector{X: tr.X, Y: tr.Y},
			cp.Vector{X: tr.X + pl.Width, Y: tr.Y},
			cp.Vector{X: 0, Y: -1},
			uint64(e),
		)
	})
}
