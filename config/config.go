// Package config loads engine tuning from yaml specs. A default spec is
// embedded; files on disk override it field by field.
package config

import (
	"embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultFS embed.FS

// Tuning holds the simulation constants consumed by the movement systems
// and the collision world.
type Tuning struct {
	// TimeStep is the fixed simulation step in seconds.
	TimeStep float64 `yaml:"time_step"`
	// Gravity is downward acceleration in world units per second squared.
	Gravity float64 `yaml:"gravity"`
	// TerminalVelocity caps downward speed.
	TerminalVelocity float64 `yaml:"terminal_velocity"`
	// ContactDecay is how long a contact timestamp counts as touching.
	ContactDecay float64 `yaml:"contact_decay"`
	// CellSize is the tile size in world units.
	CellSize float64 `yaml:"cell_size"`
}

// Default returns the embedded tuning spec.
func Default() Tuning {
	data, err := defaultFS.ReadFile("default.yaml")
	if err != nil {
		// The default spec is compiled in; failing to read it is a build
		// defect, not a runtime condition.
		panic(fmt.Sprintf("config: embedded default.yaml: %v", err))
	}
	var t Tuning
	if err := yaml.Unmarshal(data, &t); err != nil {
		panic(fmt.Sprintf("config: embedded default.yaml: %v", err))
	}
	return t
}

// Load reads a tuning spec from disk, layered over the defaults: fields the
// file omits keep their default values.
func Load(path string) (Tuning, error) {
	t := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("config: %s: %w", path, err)
	}
	return t, nil
}

// LoadSpec reads any yaml spec file into T.
func LoadSpec[T any](path string) (T, error) {
	var zero T
	data, err := os.ReadFile(path)
	if err != nil {
		return zero, fmt.Errorf("config: load %s: %w", path, err)
	}
	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	return spec, nil
}

// Validate rejects values the simulation cannot run with.
func (t Tuning) Validate() error {
	if t.TimeStep <= 0 {
		return fmt.Errorf("time_step %g must be positive", t.TimeStep)
	}
	if t.CellSize <= 0 {
		return fmt.Errorf("cell_size %g must be positive", t.CellSize)
	}
	if t.ContactDecay < 0 {
		return fmt.Errorf("contact_decay %g must not be negative", t.ContactDecay)
	}
	return nil
}
