package game

import (
	"math"
	"testing"
)

func TestCannonballSpawnOffset(t *testing.T) {
	// Facing +X, left broadside fires at rotation + 1 rad.
	c := NewCannonball(5, 5, 0, SideLeft)

	wantX := 5 + math.Cos(1.0)*spawnOffset
	wantY := 5 + math.Sin(1.0)*spawnOffset
	if math.Abs(c.X-wantX) > 1e-9 || math.Abs(c.Y-wantY) > 1e-9 {
		t.Fatalf("spawn at (%v,%v), want (%v,%v)", c.X, c.Y, wantX, wantY)
	}

	wantVX := math.Cos(1.0) * cannonballSpeed
	wantVY := math.Sin(1.0) * cannonballSpeed
	if math.Abs(c.VelocityX-wantVX) > 1e-9 || math.Abs(c.VelocityY-wantVY) > 1e-9 {
		t.Fatalf("velocity (%v,%v), want (%v,%v)", c.VelocityX, c.VelocityY, wantVX, wantVY)
	}

	r := NewCannonball(5, 5, 0, SideRight)
	if r.Y >= 5 {
		t.Fatalf("right broadside should fire toward -Y when facing +X, got Y=%v", r.Y)
	}
}

func TestCannonballAdvanceAndExpiry(t *testing.T) {
	c := NewRemoteCannonball(0, 0, 0, SideLeft, 1, 0)

	if !c.Advance(0.5) {
		t.Fatal("ball expired immediately")
	}
	if math.Abs(c.X-0.5) > 1e-9 {
		t.Fatalf("X = %v after 0.5s at vx=1, want 0.5", c.X)
	}

	for i := 0; i < 9; i++ {
		c.Advance(0.5)
	}
	if c.Advance(0.5) {
		t.Fatalf("ball still alive at age %v, lifetime %v", c.Age, c.Lifetime)
	}
}

func TestCannonballFadeWindow(t *testing.T) {
	c := NewRemoteCannonball(0, 0, 0, SideLeft, 0, 0)

	c.Advance(c.Lifetime - cannonballFade)
	if c.Alpha != 1 {
		t.Fatalf("alpha %v before fade window, want 1", c.Alpha)
	}

	c.Advance(cannonballFade / 2)
	if c.Alpha >= 1 || c.Alpha <= 0 {
		t.Fatalf("alpha %v mid-fade, want in (0, 1)", c.Alpha)
	}

	c.Advance(cannonballFade)
	if c.Alpha > 1e-6 {
		t.Fatalf("alpha %v past lifetime, want ~0", c.Alpha)
	}
}

func TestSetAgeFastForwardsFade(t *testing.T) {
	c := NewRemoteCannonball(0, 0, 0, SideLeft, 0, 0)
	c.SetAge(cannonballLifetime - cannonballFade/2)
	if c.Alpha >= 1 {
		t.Fatalf("alpha %v after jumping into fade window, want < 1", c.Alpha)
	}
}
