package game

import (
	"math"

	"github.com/apmckelvey/boat-man-shooters/shared/gamemath"
)

// World bounds in world units. Ships are clamped half a unit inside.
const (
	WorldWidth  = 16.0
	WorldHeight = 16.0
	worldMargin = 0.5
)

// Movement tuning, matched to how the boats have always felt.
const (
	shipForwardSpeed    = 0.5
	shipBackwardSpeed   = 0.08
	shipRotationSpeed   = 2.5
	shipRotationSmooth  = 0.15
	shipAcceleration    = 3.0
	shipDeceleration    = 4.0
	shipWakeFadeRate    = 3.5
	shipCameraSmoothing = 0.12
	maxReverseThrottle  = -3.0
	maxForwardThrottle  = 1.0
)

// ShipInput is one frame of control state, already abstracted away from
// keyboard/controller devices. Steer > 0 turns counterclockwise; Throttle
// ranges from maxReverseThrottle to maxForwardThrottle.
type ShipInput struct {
	Steer    float64
	Throttle float64
}

// Ship is the locally-simulated boat. Simple Euler integration; the sync
// core reads X/Y/Rotation each push cycle.
type Ship struct {
	X, Y           float64
	Rotation       float64
	TargetRotation float64

	currentVelocity float64
	targetVelocity  float64

	VelocityX float64
	VelocityY float64
	WakeFade  float64

	CameraX, CameraY float64

	prevX, prevY float64
}

func NewShip(x, y float64) *Ship {
	return &Ship{
		X: x, Y: y,
		CameraX: x, CameraY: y,
		prevX: x, prevY: y,
	}
}

// Update advances the ship by dt seconds under the given input.
func (s *Ship) Update(dt float64, in ShipInput) {
	s.TargetRotation += gamemath.Clamp(in.Steer, -1, 1) * shipRotationSpeed * dt
	s.Rotation = gamemath.LerpAngle(s.Rotation, s.TargetRotation, shipRotationSmooth)
	s.TargetRotation = gamemath.WrapAngle(s.TargetRotation)

	s.prevX, s.prevY = s.X, s.Y

	s.targetVelocity = gamemath.Clamp(in.Throttle, maxReverseThrottle, maxForwardThrottle)

	if s.targetVelocity > s.currentVelocity {
		s.currentVelocity = math.Min(s.currentVelocity+shipAcceleration*dt, s.targetVelocity)
	} else {
		s.currentVelocity = math.Max(s.currentVelocity-shipDeceleration*dt, s.targetVelocity)
	}

	targetWake := gamemath.Smoothstep(0, 0.2, math.Abs(s.currentVelocity))
	if targetWake > s.WakeFade {
		s.WakeFade = math.Min(s.WakeFade+shipWakeFadeRate*dt, targetWake)
	} else {
		s.WakeFade = math.Max(s.WakeFade-shipWakeFadeRate*dt, targetWake)
	}

	// Reverse uses a much lower hull speed than forward.
	if s.currentVelocity > 0 {
		s.X += math.Cos(s.Rotation) * shipForwardSpeed * s.currentVelocity * dt
		s.Y += math.Sin(s.Rotation) * shipForwardSpeed * s.currentVelocity * dt
	} else if s.currentVelocity < 0 {
		s.X += math.Cos(s.Rotation) * shipBackwardSpeed * s.currentVelocity * dt
		s.Y += math.Sin(s.Rotation) * shipBackwardSpeed * s.currentVelocity * dt
	}

	s.VelocityX = (s.X - s.prevX) / (dt + 1e-6)
	s.VelocityY = (s.Y - s.prevY) / (dt + 1e-6)

	s.X = gamemath.Clamp(s.X, worldMargin, WorldWidth-worldMargin)
	s.Y = gamemath.Clamp(s.Y, worldMargin, WorldHeight-worldMargin)

	s.CameraX += (s.X - s.CameraX) * shipCameraSmoothing
	s.CameraY += (s.Y - s.CameraY) * shipCameraSmoothing
}

// Position returns the state the replication loop publishes.
func (s *Ship) Position() (x, y, rotation float64) {
	return s.X, s.Y, s.Rotation
}
