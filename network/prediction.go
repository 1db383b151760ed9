package network

import (
	"math"

	"github.com/apmckelvey/boat-man-shooters/shared/gamemath"
	"github.com/apmckelvey/boat-man-shooters/shared/netconfig"
)

// Positional errors below this are left to the velocity blend alone.
const minCorrectionError = 0.001

// Oversized errors ramp the correction strength toward this ceiling.
const maxCorrectionStrength = 0.3

// ShipView is the per-frame display record for one remote ship. Sway phase
// and amplitude are cosmetic, derived purely from the id.
type ShipView struct {
	ID        string
	Name      string
	X, Y      float64
	Rot       float64
	Speed     float64
	SwayPhase float64
	SwayAmp   float64
}

// Predictor turns snapshot histories into smooth display state. Call Update
// once per render frame from the simulation thread; it is the sole
// foreground reader of the manager's ship collection.
type Predictor struct {
	views map[string]ShipView
}

func NewPredictor() *Predictor {
	return &Predictor{views: make(map[string]ShipView)}
}

// Views returns the display records built by the last Update. The map is
// replaced wholesale each frame, so callers may hold it across the frame.
func (p *Predictor) Views() map[string]ShipView {
	return p.views
}

// Update advances every remote ship's display state by dt and prunes ships
// whose history has gone stale. It interpolates at renderTime = now −
// InterpDelay: slightly in the past, so there is usually a snapshot pair to
// interpolate between and extrapolation is the exception, not the rule.
func (p *Predictor) Update(dt float64, m *Manager) {
	now := m.nowFn()
	renderTime := now - m.cfg.InterpDelay
	views := make(map[string]ShipView)

	m.mu.Lock()
	defer m.mu.Unlock()

	for id, ship := range m.ships {
		if ship.History.Len() == 0 {
			continue
		}

		updateTarget(ship.History, &ship.Target, renderTime, m.cfg)
		advanceState(&ship.State, &ship.Target, dt, m.cfg)

		phase, amp := gamemath.SwayParams(id)
		views[id] = ShipView{
			ID:        id,
			Name:      ship.Name,
			X:         ship.State.X,
			Y:         ship.State.Y,
			Rot:       ship.State.Rot,
			Speed:     math.Hypot(ship.State.VX, ship.State.VY),
			SwayPhase: phase,
			SwayAmp:   amp,
		}
	}

	// Sole removal path for remote ships: newest snapshot too old.
	cutoff := now - m.cfg.StaleCutoff
	for id, ship := range m.ships {
		if ship.History.Len() > 0 && ship.History.Newest().TS < cutoff {
			delete(m.ships, id)
		}
	}

	p.views = views
}

// updateTarget recomputes the target pose and velocity from history. Three
// regimes: interpolation between a bracketing pair, a snap when renderTime
// predates all data, and damped extrapolation when data is lagging.
func updateTarget(h *History, target *Motion, renderTime float64, cfg netconfig.Config) {
	if s0, s1, ok := h.Bracket(renderTime); ok {
		dtNet := math.Max(1e-6, s1.TS-s0.TS)
		alpha := gamemath.Clamp((renderTime-s0.TS)/dtNet, 0, 1)

		target.X = gamemath.Lerp(s0.X, s1.X, alpha)
		target.Y = gamemath.Lerp(s0.Y, s1.Y, alpha)
		target.Rot = gamemath.LerpAngle(s0.Rot, s1.Rot, alpha)

		target.VX = (s1.X - s0.X) / dtNet
		target.VY = (s1.Y - s0.Y) / dtNet
		target.VRot = gamemath.AngleDiff(s0.Rot, s1.Rot) / dtNet
		return
	}

	if renderTime <= h.Oldest().TS {
		s := h.Oldest()
		target.X, target.Y, target.Rot = s.X, s.Y, s.Rot
		target.VX, target.VY, target.VRot = 0, 0, 0
		return
	}

	// Data is lagging: dead-reckon from the last two snapshots, with the
	// step damped so sustained packet loss cannot fling the boat.
	last := h.Newest()
	if h.Len() >= 2 {
		prev := h.At(h.Len() - 2)
		dtNet := math.Max(1e-6, last.TS-prev.TS)
		target.VX = (last.X - prev.X) / dtNet
		target.VY = (last.Y - prev.Y) / dtNet
		target.VRot = gamemath.AngleDiff(prev.Rot, last.Rot) / dtNet
	} else {
		target.VX, target.VY, target.VRot = 0, 0, 0
	}

	extra := gamemath.Clamp(renderTime-last.TS, 0, cfg.MaxExtrapolation)
	damping := math.Max(0.3, 1.0-(extra/cfg.MaxExtrapolation)*0.6)

	target.X = last.X + target.VX*extra*damping
	target.Y = last.Y + target.VY*extra*damping
	target.Rot = gamemath.WrapAngle(last.Rot + target.VRot*extra*damping)
}

// advanceState integrates the display state by its own velocity, then
// blends velocity and pose toward the target. Position correction scales up
// when the error is large so a stalled boat snaps back quickly while
// ordinary jitter stays smooth.
func advanceState(state, target *Motion, dt float64, cfg netconfig.Config) {
	state.X += state.VX * dt
	state.Y += state.VY * dt
	state.Rot = gamemath.WrapAngle(state.Rot + state.VRot*dt)

	state.VX = gamemath.Lerp(state.VX, target.VX, cfg.VelocityCorrection)
	state.VY = gamemath.Lerp(state.VY, target.VY, cfg.VelocityCorrection)
	state.VRot = gamemath.Lerp(state.VRot, target.VRot, cfg.VelocityCorrection)

	errDist := math.Hypot(target.X-state.X, target.Y-state.Y)
	if errDist > minCorrectionError {
		strength := cfg.PositionCorrection
		if errDist > cfg.MaxPositionError {
			over := gamemath.Clamp((errDist-cfg.MaxPositionError)/cfg.MaxPositionError, 0, 1)
			strength = gamemath.Lerp(cfg.PositionCorrection, maxCorrectionStrength, over)
		}
		state.X = gamemath.Lerp(state.X, target.X, strength)
		state.Y = gamemath.Lerp(state.Y, target.Y, strength)
	}

	state.Rot = gamemath.LerpAngle(state.Rot, target.Rot, cfg.RotationCorrection)
}
