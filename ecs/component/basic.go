package component

// Transform is the entity's world position (top-left origin), mirrored from
// the resolved collision body after each frame.
type Transform struct {
	X, Y float64
}

var TransformComponent = NewComponent[Transform]()

// Velocity in world units per second.
type Velocity struct {
	X, Y float64
}

var VelocityComponent = NewComponent[Velocity]()

// Gravity opts an entity into gravity. Scale 0 means full strength.
type Gravity struct {
	Disabled bool
	Scale    float64
}

var GravityComponent = NewComponent[Gravity]()
