// Package gamemath provides math helpers shared between the sync core,
// the relay, and headless clients. It must stay dependency-free so the
// relay binary builds without any game packages.
package gamemath

import "math"

const twoPi = 2 * math.Pi

// Lerp linearly interpolates between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// WrapAngle normalizes an angle into [0, 2π).
func WrapAngle(a float64) float64 {
	a = math.Mod(a, twoPi)
	if a < 0 {
		a += twoPi
	}
	return a
}

// AngleDiff returns the shortest signed rotation from a to b, in (-π, π].
func AngleDiff(a, b float64) float64 {
	d := math.Mod(b-a, twoPi)
	if d < 0 {
		d += twoPi
	}
	if d > math.Pi {
		d -= twoPi
	}
	return d
}

// LerpAngle interpolates between two angles along the shortest arc.
// The result is normalized into [0, 2π).
func LerpAngle(a, b, t float64) float64 {
	return WrapAngle(a + AngleDiff(a, b)*t)
}

// Smoothstep is the classic Hermite smoothstep of x across [edge0, edge1].
func Smoothstep(edge0, edge1, x float64) float64 {
	t := Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}
