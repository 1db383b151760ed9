// Package game holds the headless simulation pieces the sync core feeds and
// consumes: the locally-controlled boat, cannonballs, the item field, and
// the persisted player profile. Rendering, audio, and input live outside
// this module.
package game

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Side selects which broadside a cannonball leaves from.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

const (
	cannonballSpeed    = 1.0
	cannonballLifetime = 5.0
	cannonballFade     = 1.0 // fade-out window before expiry
	spawnOffset        = 0.15
)

// Cannonball is a projectile in flight, local or remote. Motion is plain
// linear integration; Alpha ramps to zero over the final fade window so the
// renderer can dissolve it instead of popping.
type Cannonball struct {
	X, Y      float64
	Rotation  float64
	Side      Side
	VelocityX float64
	VelocityY float64
	Lifetime  float64
	Age       float64
	Alpha     float64

	fade *gween.Tween
}

// NewCannonball spawns a ball off the firing ship's side. The muzzle sits
// spawnOffset world units out at rotation ± 1 rad depending on the side,
// and the ball flies along that same bearing.
func NewCannonball(x, y, rotation float64, side Side) *Cannonball {
	angleOffset := 1.0
	if side == SideRight {
		angleOffset = -1.0
	}
	spawnAngle := rotation + angleOffset

	return newBall(
		x+math.Cos(spawnAngle)*spawnOffset,
		y+math.Sin(spawnAngle)*spawnOffset,
		rotation, side,
		math.Cos(spawnAngle)*cannonballSpeed,
		math.Sin(spawnAngle)*cannonballSpeed,
	)
}

// NewRemoteCannonball reconstructs a ball from replicated row fields. The
// row's velocity is used as-is; the spawn offset was already applied by the
// firing client.
func NewRemoteCannonball(x, y, rotation float64, side Side, vx, vy float64) *Cannonball {
	return newBall(x, y, rotation, side, vx, vy)
}

func newBall(x, y, rotation float64, side Side, vx, vy float64) *Cannonball {
	return &Cannonball{
		X:         x,
		Y:         y,
		Rotation:  rotation,
		Side:      side,
		VelocityX: vx,
		VelocityY: vy,
		Lifetime:  cannonballLifetime,
		Alpha:     1,
		fade:      gween.New(1, 0, float32(cannonballFade), ease.Linear),
	}
}

// Advance integrates one frame of flight. Returns false once the ball has
// outlived its lifetime and should be dropped.
func (c *Cannonball) Advance(dt float64) bool {
	c.X += c.VelocityX * dt
	c.Y += c.VelocityY * dt
	c.Age += dt
	c.advanceFade(dt)
	return c.Age < c.Lifetime
}

// SetAge jumps the ball to a given age without moving it. Used when a
// remote ball is discovered some time after it was fired.
func (c *Cannonball) SetAge(age float64) {
	dt := age - c.Age
	if dt <= 0 {
		c.Age = age
		return
	}
	c.Age = age
	c.advanceFade(dt)
}

func (c *Cannonball) advanceFade(dt float64) {
	fadeStart := c.Lifetime - cannonballFade
	if c.Age <= fadeStart {
		return
	}
	// Only the slice of dt spent inside the fade window counts.
	over := c.Age - fadeStart
	if over < dt {
		dt = over
	}
	a, _ := c.fade.Update(float32(dt))
	c.Alpha = float64(a)
}
