package gamemath

import (
	"math"
	"testing"
)

func TestLerpEndpoints(t *testing.T) {
	if got := Lerp(2, 8, 0); got != 2 {
		t.Fatalf("Lerp at t=0 = %v, want 2", got)
	}
	if got := Lerp(2, 8, 1); got != 8 {
		t.Fatalf("Lerp at t=1 = %v, want 8", got)
	}
	if got := Lerp(2, 8, 0.5); got != 5 {
		t.Fatalf("Lerp at t=0.5 = %v, want 5", got)
	}
}

func TestWrapAngle(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0},
		{2 * math.Pi, 0},
		{-math.Pi / 2, 3 * math.Pi / 2},
		{5 * math.Pi, math.Pi},
	}
	for _, c := range cases {
		if got := WrapAngle(c.in); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("WrapAngle(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestAngleDiffShortestPath(t *testing.T) {
	// Crossing the 0/2π boundary must go the short way.
	d := AngleDiff(0.1, 2*math.Pi-0.1)
	if math.Abs(d-(-0.2)) > 1e-9 {
		t.Fatalf("AngleDiff(0.1, 2π-0.1) = %v, want -0.2", d)
	}
	d = AngleDiff(2*math.Pi-0.1, 0.1)
	if math.Abs(d-0.2) > 1e-9 {
		t.Fatalf("AngleDiff(2π-0.1, 0.1) = %v, want 0.2", d)
	}
}

func TestAngleDiffNeverExceedsPi(t *testing.T) {
	for a := 0.0; a < 2*math.Pi; a += 0.37 {
		for b := 0.0; b < 2*math.Pi; b += 0.41 {
			if d := AngleDiff(a, b); math.Abs(d) > math.Pi+1e-9 {
				t.Fatalf("AngleDiff(%v, %v) = %v exceeds π", a, b, d)
			}
		}
	}
}

func TestLerpAngleAcrossBoundary(t *testing.T) {
	got := LerpAngle(2*math.Pi-0.1, 0.1, 0.5)
	if math.Abs(got) > 1e-9 && math.Abs(got-2*math.Pi) > 1e-9 {
		t.Fatalf("LerpAngle midpoint across boundary = %v, want ~0", got)
	}
}

func TestSmoothstep(t *testing.T) {
	if got := Smoothstep(0, 1, -1); got != 0 {
		t.Fatalf("Smoothstep below edge = %v, want 0", got)
	}
	if got := Smoothstep(0, 1, 2); got != 1 {
		t.Fatalf("Smoothstep above edge = %v, want 1", got)
	}
	if got := Smoothstep(0, 1, 0.5); math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("Smoothstep midpoint = %v, want 0.5", got)
	}
}

func TestSwayParamsStable(t *testing.T) {
	p1, a1 := SwayParams("ship-42")
	p2, a2 := SwayParams("ship-42")
	if p1 != p2 || a1 != a2 {
		t.Fatalf("SwayParams not stable: (%v,%v) vs (%v,%v)", p1, a1, p2, a2)
	}
	if p1 < 0 || p1 >= 2*math.Pi {
		t.Fatalf("phase %v out of [0, 2π)", p1)
	}
	if a1 < 0.6 || a1 >= 1.4 {
		t.Fatalf("amplitude %v out of [0.6, 1.4)", a1)
	}
	p3, _ := SwayParams("ship-43")
	if p1 == p3 {
		t.Fatalf("expected different ids to usually hash to different phases")
	}
}
