package game

import (
	"math"
	"testing"
)

func step(s *Ship, in ShipInput, frames int) {
	for i := 0; i < frames; i++ {
		s.Update(1.0/60.0, in)
	}
}

func TestShipAcceleratesForward(t *testing.T) {
	s := NewShip(8, 8)
	step(s, ShipInput{Throttle: 1}, 120)

	if s.X <= 8 {
		t.Fatalf("ship facing +X under full throttle did not move forward: X=%v", s.X)
	}
	if math.Abs(s.Y-8) > 0.01 {
		t.Fatalf("ship drifted off axis: Y=%v", s.Y)
	}
	if s.VelocityX <= 0 {
		t.Fatalf("derived velocity %v, want > 0", s.VelocityX)
	}
	if s.WakeFade <= 0 {
		t.Fatal("wake fade should build up while moving")
	}
}

func TestShipReverseIsSlower(t *testing.T) {
	fwd := NewShip(8, 8)
	step(fwd, ShipInput{Throttle: 1}, 180)
	forwardDist := fwd.X - 8

	rev := NewShip(8, 8)
	step(rev, ShipInput{Throttle: -3}, 180)
	reverseDist := 8 - rev.X

	if reverseDist <= 0 {
		t.Fatalf("ship did not reverse: X=%v", rev.X)
	}
	if reverseDist >= forwardDist {
		t.Fatalf("reverse (%v) should cover less water than forward (%v)", reverseDist, forwardDist)
	}
}

func TestShipSteeringTurns(t *testing.T) {
	s := NewShip(8, 8)
	step(s, ShipInput{Steer: 1}, 60)

	if s.Rotation == 0 {
		t.Fatal("steering did not rotate the ship")
	}
	if s.Rotation < 0 || s.Rotation >= 2*math.Pi {
		t.Fatalf("rotation %v not normalized", s.Rotation)
	}
}

func TestShipClampedToWorld(t *testing.T) {
	s := NewShip(WorldWidth-0.6, 8)
	step(s, ShipInput{Throttle: 1}, 600)

	if s.X > WorldWidth-worldMargin {
		t.Fatalf("ship escaped the world: X=%v", s.X)
	}
}

func TestCameraFollowsSmoothly(t *testing.T) {
	s := NewShip(2, 2)
	step(s, ShipInput{Throttle: 1}, 30)

	if s.CameraX == 2 && s.CameraY == 2 {
		t.Fatal("camera never moved")
	}
	if s.CameraX > s.X {
		t.Fatalf("camera (%v) should lag behind the ship (%v)", s.CameraX, s.X)
	}
}
