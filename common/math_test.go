package common

import "testing"

func TestLerp(t *testing.T) {
	cases := []struct {
		a, b, t, want float64
	}{
		{0, 10, 0, 0},
		{0, 10, 1, 10},
		{0, 10, 0.5, 5},
		{-4, 4, 0.25, -2},
	}
	for _, c := range cases {
		if got := Lerp(c.a, c.b, c.t); got != c.want {
			t.Fatalf("Lerp(%g,%g,%g) = %g, want %g", c.a, c.b, c.t, got, c.want)
		}
	}
}

func TestClamp(t *testing.T) {
	cases := []struct {
		v, lo, hi, want float64
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
	}
	for _, c := range cases {
		if got := Clamp(c.v, c.lo, c.hi); got != c.want {
			t.Fatalf("Clamp(%g,%g,%g) = %g, want %g", c.v, c.lo, c.hi, got, c.want)
		}
	}
}

func TestApproxEqual(t *testing.T) {
	if !ApproxEqual(1.0, 1.0+Epsilon/2) {
		t.Fatalf("values inside epsilon should compare equal")
	}
	if ApproxEqual(1.0, 1.1) {
		t.Fatalf("distinct values compared equal")
	}
}

func TestSign(t *testing.T) {
	if Sign(3) != 1 || Sign(-0.5) != -1 || Sign(0) != 0 {
		t.Fatalf("Sign(3)=%g Sign(-0.5)=%g Sign(0)=%g", Sign(3), Sign(-0.5), Sign(0))
	}
}

func TestRect(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	b := Rect{X: 5, Y: 5, Width: 10, Height: 10}
	c := Rect{X: 20, Y: 20, Width: 5, Height: 5}

	if !a.Intersects(b) || !b.Intersects(a) {
		t.Fatalf("overlapping rects should intersect")
	}
	if a.Intersects(c) {
		t.Fatalf("disjoint rects should not intersect")
	}
	if a.CenterX() != 5 || a.CenterY() != 5 {
		t.Fatalf("center = (%g,%g), want (5,5)", a.CenterX(), a.CenterY())
	}
}
