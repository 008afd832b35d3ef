package collision

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/gridlockgames/collider/common"
)

// Side identifies one of the four contact surfaces tracked per body.
type Side int

const (
	SideFloor Side = iota
	SideCeiling
	SideLeftWall
	SideRightWall
)

func (s Side) String() string {
	switch s {
	case SideFloor:
		return "floor"
	case SideCeiling:
		return "ceiling"
	case SideLeftWall:
		return "left_wall"
	case SideRightWall:
		return "right_wall"
	default:
		return "unknown"
	}
}

// DefaultContactDecay is how long after a contact timestamp a surface still
// counts as touched. A stamp equal to the current simulation time means
// "touching this frame"; the window tolerates one-frame query skew.
const DefaultContactDecay = 0.3

// Body is the bounding state the resolver reads and writes on a moving
// entity. Pos is the entity origin; the collision rectangle is Pos offset by
// OffsetX/OffsetY with size W x H. The previous position is resolver-private
// and persists across frames; the first resolution after a spawn or teleport
// only records it (no phantom collisions from an undefined previous state).
type Body struct {
	Pos     cp.Vector
	W, H    float64
	OffsetX float64
	OffsetY float64

	// Owner identifies the entity for surface self-exclusion.
	Owner uint64

	// Normal is the merged contact normal from the latest resolution: zero
	// when nothing was hit, otherwise unit length. It approximates local
	// surface slope and is meant for qualitative direction only.
	Normal cp.Vector

	floorTime   float64
	ceilingTime float64
	leftTime    float64
	rightTime   float64

	prev    cp.Vector
	prevSet bool
}

// NewBody creates a body at the given origin. Contact timestamps start far
// in the past so nothing reads as touched before the first real contact.
func NewBody(owner uint64, x, y, w, h float64) *Body {
	b := &Body{
		Pos:   cp.Vector{X: x, Y: y},
		W:     w,
		H:     h,
		Owner: owner,
	}
	b.clearContacts()
	return b
}

func (b *Body) clearContacts() {
	past := math.Inf(-1)
	b.floorTime = past
	b.ceilingTime = past
	b.leftTime = past
	b.rightTime = past
}

// Rect returns the collision rectangle in world space.
func (b *Body) Rect() common.Rect {
	if b == nil {
		return common.Rect{}
	}
	return common.Rect{
		X:      b.Pos.X + b.OffsetX,
		Y:      b.Pos.Y + b.OffsetY,
		Width:  b.W,
		Height: b.H,
	}
}

// BB returns the collision rectangle as a cp bounding box (L/R along X,
// B = top edge, T = bottom edge in this engine's Y-down world).
func (b *Body) BB() cp.BB {
	r := b.Rect()
	return cp.BB{L: r.X, B: r.Y, R: r.X + r.Width, T: r.Y + r.Height}
}

// Center returns the center of the collision rectangle.
func (b *Body) Center() cp.Vector {
	r := b.Rect()
	return cp.Vector{X: r.CenterX(), Y: r.CenterY()}
}

// Teleport moves the body without sweeping: both the position and the
// resolver's previous position are set, so the next resolution sees no
// motion to resolve.
func (b *Body) Teleport(pos cp.Vector) {
	if b == nil {
		return
	}
	b.Pos = pos
	b.prev = pos
	b.prevSet = true
}

// Previous returns the resolver's previous position and whether it has been
// initialized.
func (b *Body) Previous() (cp.Vector, bool) {
	if b == nil {
		return cp.Vector{}, false
	}
	return b.prev, b.prevSet
}

// LastTouched returns the simulation time the side was last in contact, or
// -Inf if never.
func (b *Body) LastTouched(side Side) float64 {
	if b == nil {
		return math.Inf(-1)
	}
	switch side {
	case SideFloor:
		return b.floorTime
	case SideCeiling:
		return b.ceilingTime
	case SideLeftWall:
		return b.leftTime
	case SideRightWall:
		return b.rightTime
	default:
		return math.Inf(-1)
	}
}

// IsTouching reports whether the side was in contact within the decay
// window of now. Pass decay <= 0 for the default window.
func (b *Body) IsTouching(side Side, now, decay float64) bool {
	if b == nil {
		return false
	}
	if decay <= 0 {
		decay = DefaultContactDecay
	}
	return math.Abs(now-b.LastTouched(side)) < decay
}

func (b *Body) stamp(side Side, now float64) {
	switch side {
	case SideFloor:
		b.floorTime = now
	case SideCeiling:
		b.ceilingTime = now
	case SideLeftWall:
		b.leftTime = now
	case SideRightWall:
		b.rightTime = now
	}
}
