package sim

import (
	"fmt"
	"os"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/gridlockgames/collider/collision"
)

// Scenario is a compiled tengo script that drives actors each frame. The
// script defines a top-level `tick(engine, state)` function; the engine map
// exposes read and command functions over the running simulation, and state
// persists across frames.
type Scenario struct {
	name     string
	compiled *tengo.Compiled
	state    *tengo.Map
}

const scenarioDispatchScript = `
tick(__engine, __state)
`

// LoadScenario reads and compiles a scenario script from disk.
func LoadScenario(path string) (*Scenario, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	return NewScenario(path, src)
}

// NewScenario compiles a scenario script. Compilation happens once; Tick
// reuses the compiled program.
func NewScenario(name string, src []byte) (*Scenario, error) {
	script := tengo.NewScript(append(append([]byte(nil), src...), []byte("\n"+scenarioDispatchScript)...))
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", name, err)
	}

	return &Scenario{
		name:     name,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

// Tick runs the scenario's tick function against the simulation. Call once
// per frame, before Step.
func (sc *Scenario) Tick(s *Sim) error {
	if sc == nil || sc.compiled == nil || s == nil {
		return fmt.Errorf("scenario: nil")
	}

	engine := buildScenarioEngine(s)
	if err := sc.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := sc.compiled.Set("__state", sc.state); err != nil {
		return err
	}
	if err := sc.compiled.Run(); err != nil {
		return fmt.Errorf("scenario %s: %w", sc.name, err)
	}
	return nil
}

func buildScenarioEngine(s *Sim) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}
	actors := s.Actors()

	values["frame"] = &tengo.UserFunction{Name: "frame", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(s.Clock.Frame)}, nil
	}}

	values["time"] = &tengo.UserFunction{Name: "time", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: s.Clock.Time}, nil
	}}

	values["actor_count"] = &tengo.UserFunction{Name: "actor_count", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(len(actors))}, nil
	}}

	values["get_position"] = &tengo.UserFunction{Name: "get_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		i, ok := argIndex(args, len(actors))
		if !ok {
			return tengo.UndefinedValue, nil
		}
		body := s.Body(actors[i])
		if body == nil {
			return tengo.UndefinedValue, nil
		}
		return &tengo.Array{Value: []tengo.Object{
			&tengo.Float{Value: body.Pos.X},
			&tengo.Float{Value: body.Pos.Y},
		}}, nil
	}}

	values["set_velocity"] = &tengo.UserFunction{Name: "set_velocity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		i, ok := argIndex(args, len(actors))
		if !ok || len(args) < 3 {
			return tengo.FalseValue, nil
		}
		vx, okX := argFloat(args[1])
		vy, okY := argFloat(args[2])
		if !okX || !okY {
			return tengo.FalseValue, nil
		}
		s.SetVelocity(actors[i], vx, vy)
		return tengo.TrueValue, nil
	}}

	values["touching"] = &tengo.UserFunction{Name: "touching", Value: func(args ...tengo.Object) (tengo.Object, error) {
		i, ok := argIndex(args, len(actors))
		if !ok || len(args) < 2 {
			return tengo.FalseValue, nil
		}
		side, ok := sideByName(argString(args[1]))
		if !ok {
			return tengo.FalseValue, nil
		}
		body := s.Body(actors[i])
		if body != nil && s.Collision.IsTouching(body, side, s.Clock.Time) {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func sideByName(name string) (collision.Side, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "floor":
		return collision.SideFloor, true
	case "ceiling":
		return collision.SideCeiling, true
	case "left":
		return collision.SideLeftWall, true
	case "right":
		return collision.SideRightWall, true
	default:
		return 0, false
	}
}

func argIndex(args []tengo.Object, n int) (int, bool) {
	if len(args) < 1 {
		return 0, false
	}
	v, ok := args[0].(*tengo.Int)
	if !ok || v.Value < 0 || int(v.Value) >= n {
		return 0, false
	}
	return int(v.Value), true
}

func argFloat(obj tengo.Object) (float64, bool) {
	switch v := obj.(type) {
	case *tengo.Float:
		return v.Value, true
	case *tengo.Int:
		return float64(v.Value), true
	default:
		return 0, false
	}
}

func argString(obj tengo.Object) string {
	if v, ok := obj.(*tengo.String); ok {
		return v.Value
	}
	if obj == nil {
		return ""
	}
	return strings.Trim(obj.String(), "\"")
}
