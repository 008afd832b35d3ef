package component

import "github.com/gridlockgames/collider/collision"

// PhysicsBody links an entity to its collision bounding state. The body is
// owned by the entity and mutated only by the background resolution system.
type PhysicsBody struct {
	Body *collision.Body
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

// Volumes links an entity to its attack/vulnerability volume set for the
// per-frame hit pass.
type Volumes struct {
	Set *collision.VolumeSet
}

var VolumesComponent = NewComponent[Volumes]()

// Platform is a dynamic solid riding a ping-pong path between two points.
// Its walkable top is submitted to the collision world as a temporary
// surface every frame.
type Platform struct {
	FromX, FromY float64
	ToX, ToY     float64
	Speed        float64
	Width        float64

	// Progress along the path in [0,1] and current direction (+1/-1).
	T   float64
	Dir float64
}

var PlatformComponent = NewComponent[Platform]()
