package sim

import (
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/gridlockgames/collider/collision"
	"github.com/gridlockgames/collider/config"
	"github.com/gridlockgames/collider/ecs"
	"github.com/gridlockgames/collider/ecs/component"
	"github.com/gridlockgames/collider/level"
	"github.com/gridlockgames/collider/levels"
	"github.com/gridlockgames/collider/scenarios"
)

// 8x6 map, 32-unit cells: solid floor on the bottom row, spawn at (1,3).
const testLevelJSON = `{
	"name": "box",
	"width": 8,
	"height": 6,
	"layers": [[
		0,0,0,0,0,0,0,0,
		0,0,0,0,0,0,0,0,
		0,0,0,0,0,0,0,0,
		0,0,0,0,0,0,0,0,
		0,0,0,0,0,0,0,0,
		1,1,1,1,1,1,1,1
	]],
	"layer_meta": [{"physics": true}],
	"spawn_x": 1,
	"spawn_y": 3
}`

func testLevel(t *testing.T) *level.Level {
	t.Helper()
	lvl, err := level.Decode([]byte(testLevelJSON))
	if err != nil {
		t.Fatalf("decode test level: %v", err)
	}
	return lvl
}

func TestActorFallsAndLands(t *testing.T) {
	s, err := New(testLevel(t), config.Default())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e, err := s.SpawnAtLevelSpawn(32, 32)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}

	for i := 0; i < 120; i++ {
		s.Step()
	}

	body := s.Body(e)
	// Floor top is at y=160; a 32-unit body rests with its origin at 128.
	if body.Pos.Y != 128 {
		t.Fatalf("rest y = %v, want 128", body.Pos.Y)
	}
	if body.Pos.X != 32 {
		t.Fatalf("x drifted: %v", body.Pos.X)
	}
	if !s.Collision.IsTouching(body, collision.SideFloor, s.Clock.Time) {
		t.Fatalf("landed body not grounded")
	}

	v, _ := ecs.Get(s.World, e, component.VelocityComponent)
	if v.Y != 0 {
		t.Fatalf("contact response left vertical velocity %v", v.Y)
	}
}

func TestRunningActorStopsAtWorldEdge(t *testing.T) {
	s, err := New(testLevel(t), config.Default())
	if err != nil {
		t.Fatal(err)
	}
	e, err := s.SpawnAtLevelSpawn(32, 32)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 300; i++ {
		s.SetVelocity(e, 200, 0)
		s.Step()
	}

	body := s.Body(e)
	// World is 256 wide; the right boundary clamps the 32-unit body at 224.
	if body.Pos.X != 224 {
		t.Fatalf("x = %v, want clamped 224", body.Pos.X)
	}
	if !s.Collision.IsTouching(body, collision.SideRightWall, s.Clock.Time) {
		t.Fatalf("boundary clamp should stamp the right wall")
	}
}

func TestPlatformSubmitsSurfaceEveryFrame(t *testing.T) {
	lvl := testLevel(t)
	lvl.Entities = []level.Entity{{
		Type: "platform", X: 2, Y: 2,
		Props: map[string]interface{}{"to_x": 5.0, "to_y": 2.0, "speed": 48.0, "width": 96.0},
	}}

	s, err := New(lvl, config.Default())
	if err != nil {
		t.Fatal(err)
	}

	var prevX float64
	for i := 0; i < 60; i++ {
		s.Step()
		surfaces := s.Collision.Surfaces()
		if len(surfaces) != 1 {
			t.Fatalf("frame %d: %d surfaces, want 1", i, len(surfaces))
		}
		sf := surfaces[0]
		if sf.Normal != (cp.Vector{X: 0, Y: -1}) {
			t.Fatalf("surface normal = %+v", sf.Normal)
		}
		if sf.Start.X < 64 || sf.Start.X > 160 {
			t.Fatalf("platform left the path: %+v", sf.Start)
		}
		if i > 0 && sf.Start.X == prevX {
			t.Fatalf("frame %d: platform did not move", i)
		}
		prevX = sf.Start.X
	}
}

func TestActorRidesOntoPlatformSurface(t *testing.T) {
	lvl := testLevel(t)
	// Static platform (from == to) at row 2 under the spawn column.
	lvl.Entities = []level.Entity{{
		Type: "platform", X: 0, Y: 2,
		Props: map[string]interface{}{"to_x": 0.0, "to_y": 2.0, "speed": 0.0, "width": 128.0},
	}}

	s, err := New(lvl, config.Default())
	if err != nil {
		t.Fatal(err)
	}
	e, err := s.SpawnActor(32, 0, 32, 32)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 120; i++ {
		s.Step()
	}

	body := s.Body(e)
	// Platform top is at y=64; the body rests at 32, not on the floor below.
	if body.Pos.Y != 32 {
		t.Fatalf("rest y = %v, want 32 on the platform", body.Pos.Y)
	}
	if !s.Collision.IsTouching(body, collision.SideFloor, s.Clock.Time) {
		t.Fatalf("platform contact should read as grounded")
	}
}

func TestHitEventsFlowThroughStep(t *testing.T) {
	s, err := New(testLevel(t), config.Default())
	if err != nil {
		t.Fatal(err)
	}

	spawn := func(x float64) ecs.Entity {
		e, err := s.SpawnActor(x, 32, 16, 16)
		if err != nil {
			t.Fatal(err)
		}
		vs := &collision.VolumeSet{}
		vs.AddAttack(collision.Circle{Offset: cp.Vector{X: 8, Y: 8}, Radius: 10})
		vs.AddVulnerability(collision.Circle{Offset: cp.Vector{X: 8, Y: 8}, Radius: 10})
		if err := ecs.Add(s.World, e, component.VolumesComponent, component.Volumes{Set: vs}); err != nil {
			t.Fatal(err)
		}
		return e
	}
	a := spawn(32)
	b := spawn(40)

	events := s.Step()
	var hits []ecs.HitEvent
	for _, evt := range events {
		if evt.Type == ecs.EventHit {
			hits = append(hits, evt.Data.(ecs.HitEvent))
		}
	}

	if len(hits) != 2 {
		t.Fatalf("got %d hit events, want 2 (both roles)", len(hits))
	}
	if hits[0].Attacker != a || hits[0].Victim != b {
		t.Fatalf("first hit = %+v, want %v -> %v", hits[0], a, b)
	}
	if hits[1].Attacker != b || hits[1].Victim != a {
		t.Fatalf("second hit = %+v, want %v -> %v", hits[1], b, a)
	}
}

func TestScenarioDrivesActors(t *testing.T) {
	src := []byte(`
tick := func(engine, state) {
	if is_undefined(state.frames) {
		state.frames = 0
	}
	state.frames += 1
	engine.set_velocity(0, 100.0, 0.0)
}
`)
	scn, err := NewScenario("test", src)
	if err != nil {
		t.Fatalf("NewScenario: %v", err)
	}

	s, err := New(testLevel(t), config.Default())
	if err != nil {
		t.Fatal(err)
	}
	e, err := s.SpawnAtLevelSpawn(32, 32)
	if err != nil {
		t.Fatal(err)
	}

	start := s.Body(e).Pos.X
	for i := 0; i < 30; i++ {
		if err := scn.Tick(s); err != nil {
			t.Fatalf("Tick: %v", err)
		}
		s.Step()
	}

	if got := s.Body(e).Pos.X; got <= start {
		t.Fatalf("scenario velocity had no effect: x %v -> %v", start, got)
	}
}

func TestScenarioCompileError(t *testing.T) {
	if _, err := NewScenario("bad", []byte(`tick := func(`)); err == nil {
		t.Fatalf("invalid script compiled")
	}
}

func TestDeterministicDigest(t *testing.T) {
	run := func() uint64 {
		lvl, err := levels.Load("cistern")
		if err != nil {
			t.Fatalf("load cistern: %v", err)
		}
		s, err := New(lvl, config.Default())
		if err != nil {
			t.Fatal(err)
		}
		if _, err := s.SpawnAtLevelSpawn(32, 32); err != nil {
			t.Fatal(err)
		}
		src, err := scenarios.Load("patrol")
		if err != nil {
			t.Fatal(err)
		}
		scn, err := NewScenario("patrol", src)
		if err != nil {
			t.Fatal(err)
		}

		d := NewDigest()
		for i := 0; i < 1000; i++ {
			if err := scn.Tick(s); err != nil {
				t.Fatal(err)
			}
			s.Step()
			d.Observe(s)
		}
		return d.Sum()
	}

	first := run()
	for i := 0; i < 3; i++ {
		if again := run(); again != first {
			t.Fatalf("run %d digest %016x, want %016x", i, again, first)
		}
	}
}
