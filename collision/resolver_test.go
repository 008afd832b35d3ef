package collision

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

// 10x10 grid, 25-unit cells (world 250x250). Floor row at y >= 200, wall
// column at x >= 150 above the floor.
func resolverWorld(t *testing.T) *World {
	t.Helper()
	rows := []string{
		"..........",
		"..........",
		"..........",
		"......#...",
		"......#...",
		"......#...",
		"......#...",
		"......#...",
		"##########",
		"##########",
	}
	return NewWorld(gridFromRows(t, 25, rows))
}

// newResolvedBody creates a body and runs the bootstrap resolution so the
// next resolve sweeps from pos.
func newResolvedBody(t *testing.T, w *World, owner uint64, x, y, bw, bh float64) *Body {
	t.Helper()
	b := NewBody(owner, x, y, bw, bh)
	w.ResolveBackground(b, 0)
	if b.Pos != vec(x, y) {
		t.Fatalf("bootstrap moved the body: %+v", b.Pos)
	}
	return b
}

func TestResolveFallingOntoFloor(t *testing.T) {
	w := resolverWorld(t)
	b := newResolvedBody(t, w, 1, 100, 160, 32, 32)

	b.Pos = vec(100, 210)
	w.ResolveBackground(b, 1.0)

	if b.Pos != vec(100, 168) {
		t.Fatalf("pos = %+v, want (100,168)", b.Pos)
	}
	if b.Normal != vec(0, -1) {
		t.Fatalf("normal = %+v, want (0,-1)", b.Normal)
	}
	if b.LastTouched(SideFloor) != 1.0 {
		t.Fatalf("floor stamp = %v, want 1.0", b.LastTouched(SideFloor))
	}
	if !math.IsInf(b.LastTouched(SideCeiling), -1) {
		t.Fatalf("ceiling should be untouched")
	}
}

func TestResolveRunningIntoWall(t *testing.T) {
	w := resolverWorld(t)
	b := newResolvedBody(t, w, 1, 60, 100, 32, 32)

	b.Pos = vec(140, 100)
	w.ResolveBackground(b, 2.0)

	// Wall column starts at x=150; the right edge rests there.
	if b.Pos != vec(118, 100) {
		t.Fatalf("pos = %+v, want (118,100)", b.Pos)
	}
	if b.Normal != vec(-1, 0) {
		t.Fatalf("normal = %+v, want (-1,0)", b.Normal)
	}
	if b.LastTouched(SideRightWall) != 2.0 {
		t.Fatalf("right wall stamp = %v", b.LastTouched(SideRightWall))
	}
}

func TestResolveWallSnap32Grid(t *testing.T) {
	// 32-unit cells with a wall column starting at x=128. A 32-wide body
	// whose candidate position is 140 comes to rest at 96.
	rows := []string{
		"........",
		"....#...",
		"....#...",
		"........",
	}
	w := NewWorld(gridFromRows(t, 32, rows))
	b := newResolvedBody(t, w, 1, 60, 48, 32, 32)

	b.Pos = vec(140, 48)
	w.ResolveBackground(b, 1.0)

	if b.Pos != vec(96, 48) {
		t.Fatalf("pos = %+v, want (96,48)", b.Pos)
	}
	if b.Normal != vec(-1, 0) {
		t.Fatalf("normal = %+v, want (-1,0)", b.Normal)
	}
	if b.LastTouched(SideRightWall) != 1.0 {
		t.Fatalf("right wall not stamped")
	}
}

func TestResolveNoTunnelingAcrossStepSizes(t *testing.T) {
	for _, dx := range []float64{20, 75, 130, 500} {
		w := resolverWorld(t)
		b := newResolvedBody(t, w, 1, 60, 100, 32, 32)

		b.Pos = vec(60+dx, 100)
		w.ResolveBackground(b, 1.0)

		if b.Pos.X > 118 {
			t.Fatalf("dx=%g tunneled through the wall: %+v", dx, b.Pos)
		}
		if dx >= 58 && b.Pos.X != 118 {
			t.Fatalf("dx=%g should rest against the wall at 118, got %+v", dx, b.Pos)
		}
	}
}

func TestResolveDiagonalLanding(t *testing.T) {
	w := resolverWorld(t)
	b := newResolvedBody(t, w, 1, 50, 160, 32, 32)

	b.Pos = vec(80, 195)
	w.ResolveBackground(b, 1.0)

	if b.Pos != vec(80, 168) {
		t.Fatalf("pos = %+v, want (80,168)", b.Pos)
	}
	if b.Normal != vec(0, -1) {
		t.Fatalf("normal = %+v, want (0,-1)", b.Normal)
	}
	if b.LastTouched(SideFloor) != 1.0 {
		t.Fatalf("floor not stamped")
	}
}

func TestResolveCornerMergedNormal(t *testing.T) {
	w := resolverWorld(t)
	// Start near the wall/floor corner and push into both.
	b := newResolvedBody(t, w, 1, 110, 160, 32, 32)

	b.Pos = vec(145, 205)
	w.ResolveBackground(b, 1.0)

	if b.Pos != vec(118, 168) {
		t.Fatalf("pos = %+v, want (118,168)", b.Pos)
	}
	want := vec(-1, -1).Normalize()
	if math.Abs(b.Normal.X-want.X) > 1e-12 || math.Abs(b.Normal.Y-want.Y) > 1e-12 {
		t.Fatalf("normal = %+v, want %+v", b.Normal, want)
	}
	if length := b.Normal.Length(); math.Abs(length-1) > 1e-12 {
		t.Fatalf("merged normal not unit length: %v", length)
	}
	if b.LastTouched(SideFloor) != 1.0 || b.LastTouched(SideRightWall) != 1.0 {
		t.Fatalf("both floor and right wall should be stamped")
	}
}

func TestResolveIdempotentWhenStationary(t *testing.T) {
	w := resolverWorld(t)
	b := newResolvedBody(t, w, 1, 100, 160, 32, 32)

	b.Pos = vec(100, 210)
	w.ResolveBackground(b, 1.0)
	settled := b.Pos

	w.ResolveBackground(b, 2.0)
	if b.Pos != settled {
		t.Fatalf("stationary resolve moved the body: %+v -> %+v", settled, b.Pos)
	}
	if b.Normal != (cp.Vector{}) {
		t.Fatalf("stationary resolve reported contact normal %+v", b.Normal)
	}
	// No motion means no fresh stamp.
	if b.LastTouched(SideFloor) != 1.0 {
		t.Fatalf("floor stamp changed without motion: %v", b.LastTouched(SideFloor))
	}
}

func TestResolveTeleportSkipsSweep(t *testing.T) {
	w := resolverWorld(t)
	b := newResolvedBody(t, w, 1, 60, 100, 32, 32)

	// Teleport to the far side of the wall; no sweep, no contact.
	b.Teleport(vec(200, 100))
	w.ResolveBackground(b, 1.0)

	if b.Pos != vec(200, 100) {
		t.Fatalf("teleport swept: %+v", b.Pos)
	}
	if !math.IsInf(b.LastTouched(SideRightWall), -1) {
		t.Fatalf("teleport stamped a contact")
	}
}

func TestResolveBoundaryClamps(t *testing.T) {
	cases := []struct {
		name     string
		from, to cp.Vector
		wantPos  cp.Vector
		wantSide Side
		wantN    cp.Vector
	}{
		{
			name: "left_edge",
			from: vec(20, 100), to: vec(-30, 100),
			wantPos: vec(0, 100), wantSide: SideLeftWall, wantN: vec(1, 0),
		},
		{
			name: "top_edge",
			from: vec(100, 20), to: vec(100, -15),
			wantPos: vec(100, 0), wantSide: SideCeiling, wantN: vec(0, 1),
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := resolverWorld(t)
			b := newResolvedBody(t, w, 1, c.from.X, c.from.Y, 32, 32)

			b.Pos = c.to
			w.ResolveBackground(b, 1.0)

			if b.Pos != c.wantPos {
				t.Fatalf("pos = %+v, want %+v", b.Pos, c.wantPos)
			}
			if b.Normal != c.wantN {
				t.Fatalf("normal = %+v, want %+v", b.Normal, c.wantN)
			}
			if b.LastTouched(c.wantSide) != 1.0 {
				t.Fatalf("%v not stamped", c.wantSide)
			}
		})
	}
}

func TestResolveBottomEdgeOpen(t *testing.T) {
	rows := []string{
		"....",
		"....",
		"....",
		"....",
	}
	w := NewWorld(gridFromRows(t, 25, rows))
	b := newResolvedBody(t, w, 1, 30, 60, 16, 16)

	b.Pos = vec(30, 300)
	w.ResolveBackground(b, 1.0)

	if b.Pos != vec(30, 300) {
		t.Fatalf("bottom edge should be open, pos = %+v", b.Pos)
	}
	if b.Normal != (cp.Vector{}) {
		t.Fatalf("fell out of the world but reported contact %+v", b.Normal)
	}
}

func TestResolveAgainstSurface(t *testing.T) {
	t.Run("lands_on_platform_top", func(t *testing.T) {
		w := resolverWorld(t)
		b := newResolvedBody(t, w, 1, 100, 100, 32, 32)

		w.SubmitSurface(vec(60, 150), vec(160, 150), vec(0, -1), 99)
		b.Pos = vec(100, 160)
		w.ResolveBackground(b, 1.0)

		if b.Pos != vec(100, 118) {
			t.Fatalf("pos = %+v, want (100,118)", b.Pos)
		}
		if b.LastTouched(SideFloor) != 1.0 {
			t.Fatalf("platform contact should stamp the floor")
		}
	})

	t.Run("own_surface_excluded", func(t *testing.T) {
		w := resolverWorld(t)
		b := newResolvedBody(t, w, 99, 100, 100, 32, 32)

		w.SubmitSurface(vec(60, 150), vec(160, 150), vec(0, -1), 99)
		b.Pos = vec(100, 160)
		w.ResolveBackground(b, 1.0)

		if b.Pos != vec(100, 160) {
			t.Fatalf("body collided with its own surface: %+v", b.Pos)
		}
	})

	t.Run("one_sided_from_below", func(t *testing.T) {
		w := resolverWorld(t)
		b := newResolvedBody(t, w, 1, 100, 160, 32, 32)

		// The platform top faces up (normal (0,-1)); rising motion does not
		// oppose it, so the body passes through from below.
		w.SubmitSurface(vec(60, 150), vec(160, 150), vec(0, -1), 99)
		b.Pos = vec(100, 110)
		w.ResolveBackground(b, 1.0)

		if b.Pos != vec(100, 110) {
			t.Fatalf("rising body should pass through a floor surface: %+v", b.Pos)
		}
	})
}

func TestResolveDegenerateInputs(t *testing.T) {
	t.Run("nil_grid_tracks_position", func(t *testing.T) {
		w := NewWorld(nil)
		b := NewBody(1, 10, 10, 16, 16)
		w.ResolveBackground(b, 0)

		b.Pos = vec(500, 500)
		w.ResolveBackground(b, 1.0)
		if b.Pos != vec(500, 500) {
			t.Fatalf("nil grid should not constrain movement: %+v", b.Pos)
		}
	})

	t.Run("zero_size_body", func(t *testing.T) {
		w := resolverWorld(t)
		b := NewBody(1, 100, 160, 0, 0)
		w.ResolveBackground(b, 0)

		b.Pos = vec(100, 300)
		w.ResolveBackground(b, 1.0)
		if b.Pos != vec(100, 300) {
			t.Fatalf("zero-size body swept: %+v", b.Pos)
		}
	})

	t.Run("nil_body", func(t *testing.T) {
		w := resolverWorld(t)
		w.ResolveBackground(nil, 0)
	})
}

func TestIsTouchingDecayWindow(t *testing.T) {
	w := resolverWorld(t)
	w.ContactDecay = 0.3
	b := newResolvedBody(t, w, 1, 100, 160, 32, 32)

	b.Pos = vec(100, 210)
	w.ResolveBackground(b, 1.0)

	cases := []struct {
		now  float64
		want bool
	}{
		{1.0, true},
		{1.2, true},
		{1.4, false},
	}
	for _, c := range cases {
		if got := w.IsTouching(b, SideFloor, c.now); got != c.want {
			t.Fatalf("IsTouching(floor, %g) = %v, want %v", c.now, got, c.want)
		}
	}
	if w.IsTouching(b, SideCeiling, 1.0) {
		t.Fatalf("ceiling was never touched")
	}
}
