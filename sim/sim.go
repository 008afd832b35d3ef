// Package sim assembles a runnable simulation: a level's collision world,
// the ECS scheduler, and the systems that drive the collision core once per
// entity per frame. It is the frame driver the engine's tools and tests
// share.
package sim

import (
	"fmt"
	"log"

	"github.com/jakecoffman/cp"

	"github.com/gridlockgames/collider/collision"
	"github.com/gridlockgames/collider/config"
	"github.com/gridlockgames/collider/ecs"
	"github.com/gridlockgames/collider/ecs/component"
	"github.com/gridlockgames/collider/ecs/system"
	"github.com/gridlockgames/collider/level"
)

// Sim owns one running simulation.
type Sim struct {
	World     *ecs.World
	Collision *collision.World
	Clock     *ecs.Clock
	Tuning    config.Tuning

	scheduler *ecs.Scheduler
	lvl       *level.Level
}

// New builds a simulation for the level. Entities placed in the level file
// are spawned immediately; platform paths and actor sizes come from their
// props.
func New(lvl *level.Level, tuning config.Tuning) (*Sim, error) {
	if lvl == nil {
		return nil, fmt.Errorf("sim: nil level")
	}
	if err := tuning.Validate(); err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}

	grid, err := lvl.BuildGrid(tuning.CellSize, tuning.CellSize)
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}

	cw := collision.NewWorld(grid)
	cw.ContactDecay = tuning.ContactDecay

	w := ecs.NewWorld()
	clock := &ecs.Clock{Step: tuning.TimeStep}

	s := &Sim{
		World:     w,
		Collision: cw,
		Clock:     clock,
		Tuning:    tuning,
		lvl:       lvl,
		scheduler: ecs.NewScheduler(
			system.NewPlatforms(cw, clock),
			system.NewMovement(clock, tuning),
			system.NewBackground(cw, clock),
			system.NewResponse(cw, clock),
			system.NewHitTest(cw),
		),
	}

	for _, ent := range lvl.Entities {
		if err := s.spawnPlaced(ent, tuning.CellSize); err != nil {
			log.Printf("sim: skipping %q at (%d,%d): %v", ent.Type, ent.X, ent.Y, err)
		}
	}

	return s, nil
}

func (s *Sim) spawnPlaced(ent level.Entity, cell float64) error {
	x := float64(ent.X) * cell
	y := float64(ent.Y) * cell

	switch ent.Type {
	case "platform":
		e := ecs.CreateEntity(s.World)
		pl := component.Platform{
			FromX: x,
			FromY: y,
			ToX:   propFloat(ent.Props, "to_x", float64(ent.X)) * cell,
			ToY:   propFloat(ent.Props, "to_y", float64(ent.Y)) * cell,
			Speed: propFloat(ent.Props, "speed", 32),
			Width: propFloat(ent.Props, "width", cell*3),
			Dir:   1,
		}
		if err := ecs.Add(s.World, e, component.PlatformComponent, pl); err != nil {
			return err
		}
		return ecs.Add(s.World, e, component.TransformComponent, component.Transform{X: x, Y: y})
	case "actor":
		w := propFloat(ent.Props, "width", cell)
		h := propFloat(ent.Props, "height", cell)
		_, err := s.SpawnActor(x, y, w, h)
		return err
	default:
		return fmt.Errorf("unknown entity type")
	}
}

// SpawnActor creates a moving entity with a collision body, velocity and
// gravity at the given world position.
func (s *Sim) SpawnActor(x, y, w, h float64) (ecs.Entity, error) {
	e := ecs.CreateEntity(s.World)
	body := collision.NewBody(uint64(e), x, y, w, h)
	if err := ecs.Add(s.World, e, component.PhysicsBodyComponent, component.PhysicsBody{Body: body}); err != nil {
		return 0, err
	}
	if err := ecs.Add(s.World, e, component.TransformComponent, component.Transform{X: x, Y: y}); err != nil {
		return 0, err
	}
	if err := ecs.Add(s.World, e, component.VelocityComponent, component.Velocity{}); err != nil {
		return 0, err
	}
	if err := ecs.Add(s.World, e, component.GravityComponent, component.Gravity{}); err != nil {
		return 0, err
	}
	return e, nil
}

// SpawnAtLevelSpawn creates an actor at the level's spawn tile.
func (s *Sim) SpawnAtLevelSpawn(w, h float64) (ecs.Entity, error) {
	x, y := s.lvl.SpawnWorld(s.Tuning.CellSize, s.Tuning.CellSize)
	return s.SpawnActor(x, y, w, h)
}

// Actors returns every entity with a collision body, in slot order.
func (s *Sim) Actors() []ecs.Entity {
	return s.World.Query(component.PhysicsBodyComponent.Kind())
}

// SetVelocity overwrites an actor's velocity.
func (s *Sim) SetVelocity(e ecs.Entity, vx, vy float64) {
	if v := ecs.GetPtr(s.World, e, component.VelocityComponent); v != nil {
		v.X = vx
		v.Y = vy
	}
}

// Body returns an actor's collision body, or nil.
func (s *Sim) Body(e ecs.Entity) *collision.Body {
	if pb := ecs.GetPtr(s.World, e, component.PhysicsBodyComponent); pb != nil {
		return pb.Body
	}
	return nil
}

// Step advances the simulation one fixed step and returns the events the
// frame produced (hit candidates and anything else systems emitted).
func (s *Sim) Step() []ecs.Event {
	s.Clock.Advance()
	s.Collision.BeginFrame()
	s.scheduler.Update(s.World)
	return s.World.Events().Drain()
}

// Position returns an actor's resolved position.
func (s *Sim) Position(e ecs.Entity) (cp.Vector, bool) {
	body := s.Body(e)
	if body == nil {
		return cp.Vector{}, false
	}
	return body.Pos, true
}

func propFloat(props map[string]interface{}, key string, fallback float64) float64 {
	if props == nil {
		return fallback
	}
	v, ok := props[key]
	if !ok {
		return fallback
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return fallback
	}
}
